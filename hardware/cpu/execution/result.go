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

package execution

import (
	"github.com/dgn09/core/hardware/cpu/instructions"
)

// Result records the state/result of each instruction executed on the CPU,
// including the address it was read from, a reference to the instruction
// definition, and other execution details.
//
// Result is updated every cycle during the execution of the emulated CPU.
// As execution continues, more information is acquired and detail added to
// the Result.
//
// The Final field indicates whether the last cycle of the instruction has
// been executed. An instance of Result with a Final value of false can
// still be used, but with the caveat that the information is incomplete.
// A Defn of nil means the opcode hasn't even been decoded yet.
type Result struct {
	// a reference to the instruction definition
	Defn *instructions.Definition

	// the number of bytes read during instruction decode; if this value is
	// less than Defn.Bytes the instruction has not yet been fully decoded
	ByteCount int

	// the address at which the instruction began
	Address uint16

	// instruction data is the actual instruction data: for direct/extended
	// addressing this is the operand address, for immediate addressing the
	// immediate value, for indexed addressing the effective address (the
	// postbyte itself is in IndexedPostbyte), for relative addressing the
	// branch displacement
	InstructionData uint32

	// the indexed addressing postbyte, valid only when
	// Defn.AddressingMode == instructions.Indexed
	IndexedPostbyte uint8

	// the actual number of cycles taken by the instruction; usually the
	// same as Defn.Cycles, but indexed addressing modes add a
	// postbyte-dependent number of extra cycles, and CWAI/SYNC/RTI add a
	// variable number while honouring interrupts
	Cycles int

	// whether a known quirky code path (in the emulated CPU) was triggered
	CPUBug Bug

	// error string, normally a bus access error
	Error string

	// whether a branch instruction's condition test passed (ie. branched)
	// or not; testing of this field should be used in conjunction with
	// Defn.IsBranch()
	BranchSuccess bool

	// whether this data has been finalised; some fields in this struct will
	// be undefined if Final is false
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	r.Defn = nil
	r.ByteCount = 0
	r.Address = 0
	r.InstructionData = 0
	r.IndexedPostbyte = 0
	r.Cycles = 0
	r.CPUBug = NoBug
	r.Error = ""
	r.BranchSuccess = false
	r.Final = false
}
