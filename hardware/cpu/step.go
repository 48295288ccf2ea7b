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

package cpu

import (
	"fmt"

	"github.com/dgn09/core/curated"
	"github.com/dgn09/core/hardware/cpu/execution"
	"github.com/dgn09/core/hardware/cpu/instructions"
)

// SetCycleCallback installs the function called once per bus cycle. The SAM
// uses this to keep the event scheduler and video address generator in lock
// step with CPU activity.
func (mc *CPU) SetCycleCallback(f func() error) {
	mc.cycleCallback = f
}

// ExecuteInstruction steps the CPU by exactly one instruction (or, while
// parked in SYNC/CWAI or HALT, by one poll of the interrupt lines) and
// returns a copy of the execution.Result describing what happened.
//
// Interrupts are serviced at instruction boundaries with fixed priority
// HALT > NMI > FIRQ > IRQ. A serviced interrupt counts as the step; the
// interrupted instruction begins on the following call.
func (mc *CPU) ExecuteInstruction() (execution.Result, error) {
	mc.LastResult.Reset()

	if mc.InstructionHook != nil && !mc.InstructionHook(mc) {
		mc.StopRequested = true
		mc.LastResult.Final = true
		return mc.LastResult, nil
	}

	diverted, err := mc.dispatchInterrupts()
	if err != nil {
		return mc.LastResult, err
	}
	if diverted {
		mc.LastResult.Final = true
		mc.runPostHook()
		return mc.LastResult, nil
	}

	if mc.waiting {
		// Parked: burn a single cycle polling the request lines, fetching
		// nothing. dispatchInterrupts above already cleared mc.waiting if
		// an unmasked line woke the CPU this very call.
		mc.LastResult.Cycles = 1
		mc.LastResult.Final = true
		mc.runPostHook()
		return mc.LastResult, nil
	}

	mc.LastResult.Address = mc.PC.Value()

	opcode, err := mc.fetchPC8()
	if err != nil {
		return mc.LastResult, err
	}

	page := 0
	if opcode == 0x10 {
		page = 2
		opcode, err = mc.fetchPC8()
		if err != nil {
			return mc.LastResult, err
		}
	} else if opcode == 0x11 {
		page = 3
		opcode, err = mc.fetchPC8()
		if err != nil {
			return mc.LastResult, err
		}
	}

	defn := instructions.ByPage[page][opcode]
	if defn == nil {
		return mc.LastResult, curated.Errorf(curated.UnimplementedOpcode, fmt.Sprintf("page %d opcode $%02x", page, opcode))
	}
	mc.LastResult.Defn = defn
	if defn.Undocumented {
		mc.LastResult.CPUBug = execution.UndocumentedOpcodeBug
	}

	if err := mc.execute(defn); err != nil {
		return mc.LastResult, err
	}

	mc.LastResult.Final = true

	if err := mc.LastResult.IsValid(); err != nil {
		return mc.LastResult, err
	}

	mc.runPostHook()
	return mc.LastResult, nil
}

// runPostHook invokes InstructionPostHook, if set, and latches
// StopRequested when it asks the CPU to stop.
func (mc *CPU) runPostHook() {
	if mc.InstructionPostHook != nil && !mc.InstructionPostHook(mc) {
		mc.StopRequested = true
	}
}
