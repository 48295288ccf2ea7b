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

// Package cartridgeloader reads cartridge ROM images and IDE hard-disk
// images from disk so that the hardware/cartridge package can build its
// Part tree without itself depending on the filesystem.
//
// # ROM images
//
// A ROM image is any file up to 32 KiB. Some dumps are preceded by a
// 256-byte leader of header bytes a real cartridge board never exposed to
// the bus; a Loader strips it automatically whenever doing so leaves a
// length matching a genuine ROM size (a power of two).
//
// # Hard disk images
//
// NewHardDiskLoader creates the backing file for an IDE cartridge model
// (conventionally "hd0.img") if it does not already exist: a flat 10 MiB
// file stamped with an "ACME ZIPPIBUS" signature header, so a cartridge can
// treat a fresh install the same as a restored one.
package cartridgeloader
