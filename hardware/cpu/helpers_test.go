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

// helpers_test.go contains shared support code for the cpu_test package: a
// small instance/CPU/memory rig, and a step() helper that runs one
// instruction and fails the test on error.

package cpu_test

import (
	"testing"

	"github.com/dgn09/core/hardware/cpu"
	"github.com/dgn09/core/hardware/cpu/execution"
	"github.com/dgn09/core/hardware/instance"
)

// newTestCPU returns a CPU plumbed into a fresh 64K mockMem, with PC parked
// at origin ready for the test to write instructions and step through them.
func newTestCPU(origin uint16) (*cpu.CPU, *mockMem) {
	mem := newMockMem()
	mc := cpu.NewCPU(instance.NewInstance("cpu_test"), mem)
	mc.LoadPC(origin)
	return mc, mem
}

// step runs exactly one instruction, failing the test immediately if the
// step errors or never finalises.
func step(t *testing.T, mc *cpu.CPU) execution.Result {
	t.Helper()
	result, err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatalf("ExecuteInstruction failed: %v", err)
	}
	if !result.Final {
		t.Fatalf("ExecuteInstruction did not finalise")
	}
	return result
}
