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

// Package bus is used to define access patterns for different areas of the
// emulation to machine memory. For example, the SAM accesses memory
// differently to the CPU, and a cartridge sees a per-cycle (A, P2, R2, D)
// tuple rather than a plain Read/Write. By restricting access to memory
// from a given part to a narrow interface, each part only sees the
// operations relevant to it.
//
// DebuggerBus is for the exclusive use of debuggers and exposes a Peek()
// and Poke() function that never perturbs the event scheduler.
package bus
