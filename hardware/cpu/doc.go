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

// Package cpu emulates the Motorola 6809 (and Hitachi 6309 superset) found
// in the Dragon and Tandy Color Computer family. Instruction decode works
// the same way on every 8-bit processor of the era: the byte at PC is
// fetched, looked up in the instruction table (sub-package instructions),
// and the resulting Definition drives execution forward.
//
// A CPU requires a bus.CPUBus implementation, passed to NewCPU together
// with the Instance; the machine package's Machine implements it and routes
// each access through the SAM. See the bus package for the contract.
//
// ExecuteInstruction steps the CPU by exactly one instruction (or by one
// poll of the interrupt lines while parked in SYNC/CWAI/HALT) and returns
// an execution.Result describing what happened. SetCycleCallback installs
// the function invoked once per bus cycle -- the SAM uses this to keep its
// event scheduler and video address generator in lock step with CPU
// activity.
//
//	mc := cpu.NewCPU(instance, mem)
//	mc.SetCycleCallback(func() error {
//		ticks++
//		return nil
//	})
//	for running {
//		mc.ExecuteInstruction()
//	}
//
// LastResult can be probed for information about the most recently
// executed instruction, or the one in progress when read from inside the
// cycle callback; the GDB stub and any tracing hook use it the same way a
// debugger front end would.
//
// InstructionHook and InstructionPostHook bracket every instruction (see
// step.go) and may each request the CPU stop by returning false; the
// machine's run loop honours StopRequested between instructions.
package cpu
