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

package instructions_test

import (
	"testing"

	"github.com/dgn09/core/hardware/cpu/instructions"
)

func TestPageZeroIsFullyPopulated(t *testing.T) {
	page := instructions.ByPage[0]
	for i := 0; i < 256; i++ {
		// $10 and $11 are the page 2/3 prefix bytes: ExecuteInstruction
		// consumes them before ever consulting the page 0 table, so they
		// carry no definition of their own.
		if i == 0x10 || i == 0x11 {
			continue
		}
		if page[i] == nil {
			t.Fatalf("opcode %02x has no page 0 definition", i)
		}
	}
}

func TestLongBranchIsRelative(t *testing.T) {
	def := instructions.ByPage[2][0x26]
	if def == nil {
		t.Fatal("expected a definition for page 2 opcode 26 (LBNE)")
	}
	if def.Operator != instructions.LBNE {
		t.Errorf("expected LBNE, got %s", def.Operator)
	}
	if !def.IsBranch() {
		t.Error("expected LBNE to be classified as a branch")
	}
}

func TestSWI2IsPageTwo(t *testing.T) {
	def := instructions.ByPage[2][0x3f]
	if def == nil || def.Operator != instructions.SWI2 {
		t.Fatal("expected SWI2 at page 2 opcode 3f")
	}
}

func TestJSRDirectIsSubroutine(t *testing.T) {
	def := instructions.ByPage[0][0x9d]
	if def == nil {
		t.Fatal("expected a definition for opcode 9d (JSR direct)")
	}
	if def.Operator != instructions.JSR {
		t.Errorf("expected JSR, got %s", def.Operator)
	}
	if def.Effect != instructions.Subroutine {
		t.Errorf("expected Subroutine effect, got %s", def.Effect)
	}
	if def.AddressingMode != instructions.Direct {
		t.Errorf("expected Direct addressing, got %s", def.AddressingMode)
	}
}
