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

package machine

import (
	"github.com/dgn09/core/debugger/govern"
)

// RunUntil drives the CPU instruction by instruction, consulting state()
// before every fetch. It returns when state() reports govern.Stopped (the
// caller -- typically the GDB stub holding the run-lock -- has asked the
// machine to pause) or when an instruction returns an error.
//
// state is polled rather than passed once because a breakpoint Handler (run
// from within CheckFetch, itself called from inside this loop) is exactly
// the mechanism that flips a Running machine back to Stopped.
func (m *Machine) RunUntil(state func() govern.RunState) error {
	for {
		switch state() {
		case govern.Stopped:
			return nil
		case govern.SingleStep:
			if err := m.step(); err != nil {
				return err
			}
			return nil
		default: // govern.Running
			if err := m.step(); err != nil {
				return err
			}
			if m.CPU.StopRequested {
				m.CPU.StopRequested = false
				return nil
			}
		}
	}
}

// step executes exactly one instruction, checking any fetch breakpoint at
// the current PC before the CPU commits to it.
func (m *Machine) step() error {
	m.Debugger.CheckFetch(m.CPU.PC.Value())
	_, err := m.CPU.ExecuteInstruction()
	return err
}
