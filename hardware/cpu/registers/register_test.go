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

package registers_test

import (
	"testing"

	"github.com/dgn09/core/hardware/cpu/registers"
)

func TestRegisterAddOverflow(t *testing.T) {
	a := registers.NewRegister(0x7f, "A")
	carry, overflow := a.Add(0x01, false)
	if a.Value() != 0x80 {
		t.Errorf("expected 0x80, got %02x", a.Value())
	}
	if carry {
		t.Error("did not expect carry")
	}
	if !overflow {
		t.Error("expected signed overflow crossing 0x7f -> 0x80")
	}
}

func TestRegisterAddCarry(t *testing.T) {
	a := registers.NewRegister(0xff, "A")
	carry, _ := a.Add(0x01, false)
	if a.Value() != 0x00 {
		t.Errorf("expected wraparound to 0x00, got %02x", a.Value())
	}
	if !carry {
		t.Error("expected carry out of bit 7")
	}
}

func TestRegisterHalfCarry(t *testing.T) {
	a := registers.NewRegister(0x0f, "A")
	if !a.HalfCarry(0x01, false) {
		t.Error("expected half carry out of bit 3")
	}
}

func TestStackPointerPushPull(t *testing.T) {
	sp := registers.NewStackPointer(0x8000, "S")
	addr := sp.Push()
	if addr != 0x7fff {
		t.Errorf("expected push address 0x7fff, got %04x", addr)
	}
	if sp.Value() != 0x7fff {
		t.Errorf("expected stack pointer at 0x7fff, got %04x", sp.Value())
	}

	addr = sp.Pull()
	if addr != 0x7fff {
		t.Errorf("expected pull address 0x7fff, got %04x", addr)
	}
	if sp.Value() != 0x8000 {
		t.Errorf("expected stack pointer restored to 0x8000, got %04x", sp.Value())
	}
}

func TestStatusRegisterRoundTrip(t *testing.T) {
	var sr registers.StatusRegister
	sr.Entire = true
	sr.Zero = true
	sr.Carry = true

	v := sr.Value()

	var sr2 registers.StatusRegister
	sr2.Load(v)

	if sr2 != sr {
		t.Errorf("round trip mismatch: %#v != %#v", sr2, sr)
	}
}

func TestStatusRegisterResetMasksInterrupts(t *testing.T) {
	sr := registers.NewStatusRegister()
	if !sr.FIRQMask || !sr.IRQMask {
		t.Error("expected F and I to be set after reset")
	}
	if sr.Entire || sr.HalfCarry || sr.Sign || sr.Zero || sr.Overflow || sr.Carry {
		t.Error("expected every other flag clear after reset")
	}
}
