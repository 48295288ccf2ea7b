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

// Package machine composes a CPU, SAM, pair of PIAs, VDG and cartridge bus
// into one addressable Dragon/CoCo/MC-10 system. It owns RAM, holds the
// architecture policy table that narrows the generic memory map for a
// specific model, drives the CPU's per-cycle bus delegate through the SAM,
// and exposes the bus.CPUBus/bus.DebuggerBus contracts the CPU and the GDB
// stub need.
package machine
