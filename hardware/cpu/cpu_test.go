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

package cpu_test

import (
	"testing"
)

func TestLDAImmediate(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mem.putInstructions(0x1000, 0x86, 0x42) // LDA #$42
	step(t, mc)
	if mc.A.Value() != 0x42 {
		t.Errorf("A = %#02x, want 0x42", mc.A.Value())
	}
	if mc.CC.Zero || mc.CC.Sign {
		t.Errorf("unexpected flags: %s", mc.CC)
	}
}

func TestLDANegativeSetsSign(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mem.putInstructions(0x1000, 0x86, 0x80)
	step(t, mc)
	if !mc.CC.Sign {
		t.Error("expected Sign flag set for 0x80")
	}
}

func TestSTADirect(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.DP.Load(0x00)
	mem.putInstructions(0x1000, 0x86, 0x55, 0x97, 0x80) // LDA #$55 ; STA $80
	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x0080, 0x55)
}

func TestADDAWithCarry(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mem.putInstructions(0x1000, 0x86, 0xff, 0x8b, 0x01) // LDA #$ff ; ADDA #$01
	step(t, mc)
	step(t, mc)
	if mc.A.Value() != 0x00 {
		t.Errorf("A = %#02x, want 0x00", mc.A.Value())
	}
	if !mc.CC.Carry || !mc.CC.Zero {
		t.Errorf("expected Carry and Zero set: %s", mc.CC)
	}
}

func TestIndexedPostIncrement(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.LoadPC(0x1000)
	mc.X.Load(0x2000)
	mem.internal[0x2000] = 0x11
	mem.internal[0x2001] = 0x22
	mem.putInstructions(0x1000, 0xa6, 0x81) // LDA ,X++
	result := step(t, mc)
	if mc.A.Value() != 0x11 {
		t.Errorf("A = %#02x, want 0x11", mc.A.Value())
	}
	if mc.X.Value() != 0x2002 {
		t.Errorf("X = %#04x, want 0x2002", mc.X.Value())
	}
	if result.Cycles < 7 {
		t.Errorf("cycles = %d, want at least base+3 for ,R++", result.Cycles)
	}
}

func TestBranchTaken(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mem.putInstructions(0x1000, 0x86, 0x00, 0x27, 0x02, 0x86, 0xff, 0x86, 0x11)
	// LDA #$00 ; BEQ +2 ; LDA #$ff ; LDA #$11
	step(t, mc)
	result := step(t, mc)
	if !result.BranchSuccess {
		t.Error("expected BEQ to branch when Zero is set")
	}
	step(t, mc)
	if mc.A.Value() != 0x11 {
		t.Errorf("A = %#02x, want 0x11 (branch should have skipped the LDA #$ff)", mc.A.Value())
	}
}

func TestJSRandRTS(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.S.Load(0x3000)
	mem.putInstructions(0x1000, 0xbd, 0x20, 0x00) // JSR $2000
	mem.putInstructions(0x2000, 0x39)             // RTS
	step(t, mc)
	if mc.PC.Value() != 0x2000 {
		t.Fatalf("PC = %#04x, want 0x2000", mc.PC.Value())
	}
	step(t, mc)
	if mc.PC.Value() != 0x1003 {
		t.Errorf("PC = %#04x, want 0x1003 after RTS", mc.PC.Value())
	}
}

func TestPSHSandPULS(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.S.Load(0x3000)
	mc.A.Load(0xaa)
	mc.B.Load(0xbb)
	mem.putInstructions(0x1000, 0x34, 0x06) // PSHS A,B
	step(t, mc)
	if mc.S.Value() != 0x2ffe {
		t.Fatalf("S = %#04x, want 0x2ffe after pushing 2 bytes", mc.S.Value())
	}
	mc.A.Load(0)
	mc.B.Load(0)
	mem.putInstructions(0x1002, 0x35, 0x06) // PULS A,B
	step(t, mc)
	if mc.A.Value() != 0xaa || mc.B.Value() != 0xbb {
		t.Errorf("A=%#02x B=%#02x, want A=aa B=bb after PULS", mc.A.Value(), mc.B.Value())
	}
	if mc.S.Value() != 0x3000 {
		t.Errorf("S = %#04x, want 0x3000 restored", mc.S.Value())
	}
}

func TestEXG(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.X.Load(0x1234)
	mc.Y.Load(0x5678)
	mem.putInstructions(0x1000, 0x1e, 0x12) // EXG X,Y
	step(t, mc)
	if mc.X.Value() != 0x5678 || mc.Y.Value() != 0x1234 {
		t.Errorf("X=%#04x Y=%#04x after EXG, want swapped", mc.X.Value(), mc.Y.Value())
	}
}

func TestIRQStacksFullState(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.S.Load(0x3000)
	mc.CC.IRQMask = false
	mem.putInstructions(0xfff8, 0x20, 0x00) // IRQ vector -> $2000
	mem.putInstructions(0x1000, 0x12)       // NOP, never reached
	mc.RequestIRQ(true)
	result, err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatalf("ExecuteInstruction: %v", err)
	}
	if !result.Final {
		t.Fatal("expected interrupt dispatch to finalise the step")
	}
	if mc.PC.Value() != 0x2000 {
		t.Errorf("PC = %#04x, want 0x2000 (IRQ vector target)", mc.PC.Value())
	}
	if !mc.CC.IRQMask || !mc.CC.FIRQMask {
		t.Error("expected IRQ entry to mask both IRQ and FIRQ")
	}
	if mc.S.Value() != 0x3000-12 {
		t.Errorf("S = %#04x, want %#04x after full 12 byte stack", mc.S.Value(), 0x3000-12)
	}
}

func TestRTIRestoresFullState(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.S.Load(0x3000)
	mc.CC.IRQMask = false
	mem.putInstructions(0xfff8, 0x20, 0x00)
	mc.RequestIRQ(true)
	if _, err := mc.ExecuteInstruction(); err != nil {
		t.Fatalf("interrupt dispatch: %v", err)
	}
	mc.RequestIRQ(false)
	mem.putInstructions(0x2000, 0x3b) // RTI
	step(t, mc)
	if mc.PC.Value() != 0x1000 {
		t.Errorf("PC = %#04x, want 0x1000 restored by RTI", mc.PC.Value())
	}
	if mc.S.Value() != 0x3000 {
		t.Errorf("S = %#04x, want 0x3000 fully unwound", mc.S.Value())
	}
}

func TestSWIEntersWithMasksSet(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.S.Load(0x3000)
	mem.putInstructions(0xfffa, 0x40, 0x00)
	mem.putInstructions(0x1000, 0x3f) // SWI
	step(t, mc)
	if mc.PC.Value() != 0x4000 {
		t.Errorf("PC = %#04x, want 0x4000 (SWI vector target)", mc.PC.Value())
	}
	if !mc.CC.IRQMask || !mc.CC.FIRQMask {
		t.Error("expected SWI to set both interrupt masks")
	}
}

func TestCWAIParksThenWakesOnIRQ(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mc.S.Load(0x3000)
	mem.putInstructions(0x1000, 0x3c, 0xaf) // CWAI #$af (clear I and F)
	step(t, mc)

	mem.putInstructions(0xfff8, 0x20, 0x00)
	mc.RequestIRQ(true)
	result, err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatalf("ExecuteInstruction: %v", err)
	}
	if !result.Final {
		t.Fatal("expected wake-up step to finalise")
	}
	if mc.PC.Value() != 0x2000 {
		t.Errorf("PC = %#04x, want 0x2000 after CWAI wakes on IRQ", mc.PC.Value())
	}
}

func TestHaltFreezesExecution(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	mem.putInstructions(0x1000, 0x86, 0x42)
	mc.RequestHalt(true)
	step(t, mc)
	if mc.PC.Value() != 0x1000 {
		t.Errorf("PC = %#04x, want unchanged 0x1000 while halted", mc.PC.Value())
	}
	if !mc.Halted {
		t.Error("expected Halted to be true")
	}
}

func TestUnimplementedOpcodeErrors(t *testing.T) {
	mc, mem := newTestCPU(0x1000)
	// $10 (page 2 prefix) followed by $00, which has no page 2 definition
	mem.putInstructions(0x1000, 0x10, 0x00)
	if _, err := mc.ExecuteInstruction(); err == nil {
		t.Error("expected an error decoding an unimplemented page 2 opcode")
	}
}
