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

// Package registers implements the register file of the 6809/6309/6803
// family: the 8 bit accumulators (A, B, DP), the 16 bit index/stack/program
// counter registers (X, Y, U, S, PC, and on the 6309 also V and W), and the
// condition code register (CC).
//
// Each register type defines Load/Value/Address/String the same way
// regardless of width, so that callers working generically (the GDB stub's
// register file dump, for instance) do not need a type switch.
package registers
