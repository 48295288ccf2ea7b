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

// Package clocks defines the constant values that define the speed of the
// SAM bus clock and the tick unit used by the event scheduler.
//
// The CPU crystal on a Dragon/CoCo is divided down to produce two MPU
// clock rates, slow (0.895 MHz, used whenever the video address space is
// being accessed so VDG and CPU can share the bus) and fast (1.789 MHz,
// double rate, used when SAM knows video and CPU cannot collide). The
// scheduler's tick is defined as 1/16th of a slow cycle - the smallest unit
// the SAM interleave table in hardware/sam ever divides a cycle into -
// which keeps every cycle count in that table an exact integer.
package clocks

const (
	// MPUClockSlow is the CPU clock rate, in MHz, when SAM has selected the
	// slow cycle (shared with VDG video fetches).
	MPUClockSlow = 0.894886

	// MPUClockFast is the CPU clock rate, in MHz, when SAM has selected the
	// fast cycle (VDG fetches cannot collide with this access).
	MPUClockFast = MPUClockSlow * 2
)

// TicksPerSlowCycle is the scheduler tick count of a single slow SAM cycle.
// Every entry in the SAM cycle-interleave table (see hardware/sam) is a
// multiple of a sixteenth of this, which is why the tick unit is defined as
// 1/16 of a slow cycle rather than as a fixed nanosecond value.
const TicksPerSlowCycle = 16
