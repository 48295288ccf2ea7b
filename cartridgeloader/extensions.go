// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cartridgeloader

// FileExtensions is the list of file extensions recognised as cartridge ROM
// images by this package. Unlike the distillation this is modelled on,
// Dragon/CoCo cartridges do not encode a bank-switching scheme in their
// extension: "-cart-type" on the CLI decides that (see cmd/dgnemu).
var FileExtensions = [...]string{".ROM", ".BIN", ".CCC", ".DGN"}

// HardDiskExtensions is recognised for IDE hard-disk cartridge images.
var HardDiskExtensions = [...]string{".IMG"}
