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

// Package dbgmem sits between the GDB stub and the machine's memory,
// giving the stub's m/M packets a side-effect-free way to read and write
// RAM: no breakpoint fires, no PIA pre-read hook runs, and the scheduler
// tick does not advance.
//
// DbgMem wraps whatever implements bus.DebuggerBus (the machine composer,
// in this build) and exposes byte-range Peek/Poke on top of its single-byte
// Peek/Poke, matching the shape of the GDB m/M commands directly.
package dbgmem
