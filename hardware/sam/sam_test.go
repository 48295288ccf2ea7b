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

package sam_test

import (
	"testing"

	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/sam"
)

// TestCycleTicksInterleave drives CycleTicks through a sequence of fast/slow
// requests and checks the resulting tick cost against the 16/15/17/25/8
// interleave table, including the re-phase penalty that only applies after
// an odd run of fast cycles.
func TestCycleTicksInterleave(t *testing.T) {
	s := sam.NewSAM(instance.NewInstance("test"))

	fasts := []bool{false, true, true, false, true, false}
	want := []int{16, 15, 8, 17, 15, 25}

	for i, fast := range fasts {
		got := s.CycleTicks(fast)
		if got != want[i] {
			t.Fatalf("call %d (fast=%v): got %d ticks, want %d", i, fast, got, want[i])
		}
	}
}

// TestTranslateRAM64KIsIdentity checks that RAM_TRANSLATE is a no-op for the
// 64K organisation (row and column masks partition the full 16-bit address,
// column shift is zero) when the page bit is clear.
func TestTranslateRAM64KIsIdentity(t *testing.T) {
	s := sam.NewSAM(instance.NewInstance("test"))
	s.Register.Value = 2 << 12 // M1:M0 = 10 -> RAM64K

	for _, addr := range []uint16{0x0000, 0x1234, 0x8000, 0xffff} {
		if got := s.Translate(addr); got != addr {
			t.Errorf("Translate(%#04x) = %#04x, want %#04x", addr, got, addr)
		}
	}
}

// TestTranslateRAM4KAliasing checks the documented aliasing property of a
// smaller RAM organisation: address bits outside the row/column masks don't
// reach a 4K DRAM's address pins at all, so two addresses differing only in
// those bits must translate identically.
func TestTranslateRAM4KAliasing(t *testing.T) {
	s := sam.NewSAM(instance.NewInstance("test"))
	s.Register.Value = 0 << 12 // M1:M0 = 00 -> RAM4K

	addr := uint16(0x0001)
	aliased := addr | 0xffc0 // set every bit outside RAM4K's row/col masks

	got, wantAliased := s.Translate(addr), s.Translate(aliased)
	if got != wantAliased {
		t.Fatalf("Translate(%#04x) = %#04x, Translate(%#04x) = %#04x; expected aliasing", addr, got, aliased, wantAliased)
	}
	if got != 0x0041 {
		t.Fatalf("Translate(%#04x) = %#04x, want %#04x", addr, got, 0x0041)
	}
}

// TestVideoCounterCascadeRepeatsRowUnderYDivide reproduces the spec's
// counter-cascade scenario: with the SAM video mode set to CG1 (Y divide-by-
// 2, X divide-by-1), fetching three successive 16-byte windows must return
// the same base address twice before advancing -- Y advancing every other
// row -- rather than advancing linearly every call.
func TestVideoCounterCascadeRepeatsRowUnderYDivide(t *testing.T) {
	s := sam.NewSAM(instance.NewInstance("test"))

	// V1 selects CG1 (video mode 0b010): strobe address 3 sets bit 1.
	s.WriteStrobe(3)
	s.FSEdge()

	var bases []uint16
	remaining := 48
	for remaining > 0 {
		base, count := s.VDGBytes(remaining)
		if count == 0 {
			t.Fatalf("VDGBytes made no progress with %d bytes remaining", remaining)
		}
		bases = append(bases, base)
		remaining -= count
	}

	want := []uint16{0x0000, 0x0000, 0x0010}
	if len(bases) != len(want) {
		t.Fatalf("got %d chunks %v, want %d chunks %v", len(bases), bases, len(want), want)
	}
	for i := range want {
		if bases[i] != want[i] {
			t.Errorf("chunk %d base = %#04x, want %#04x (full sequence %v)", i, bases[i], want[i], bases)
		}
	}
}

// TestVideoCounterCascadeAdvancesEveryWindowWhenUndivided checks the
// degenerate case (CG2, divide-by-1 on both axes) where every 16-byte
// window completes the divide cycle immediately, so the video address
// advances linearly with no repeats.
func TestVideoCounterCascadeAdvancesEveryWindowWhenUndivided(t *testing.T) {
	s := sam.NewSAM(instance.NewInstance("test"))

	// V2 selects CG2 (video mode 0b100): strobe address 5 sets bit 2.
	s.WriteStrobe(5)
	s.FSEdge()

	var bases []uint16
	remaining := 48
	for remaining > 0 {
		base, count := s.VDGBytes(remaining)
		bases = append(bases, base)
		remaining -= count
	}

	want := []uint16{0x0000, 0x0010, 0x0020}
	if len(bases) != len(want) {
		t.Fatalf("got %d chunks %v, want %d chunks %v", len(bases), bases, len(want), want)
	}
	for i := range want {
		if bases[i] != want[i] {
			t.Errorf("chunk %d base = %#04x, want %#04x (full sequence %v)", i, bases[i], want[i], bases)
		}
	}
}

// TestFastRateVideoAddressTracksCPU checks the documented fast-MPU-mode
// quirk: VDGBytes returns whatever address the CPU last placed on the bus
// instead of advancing the counter cascade.
func TestFastRateVideoAddressTracksCPU(t *testing.T) {
	s := sam.NewSAM(instance.NewInstance("test"))
	s.Register.Strobe(23) // odd address, bit 11 (TY) -> fast rate

	s.NoteCPUAddress(0x4000)
	base, count := s.VDGBytes(8)
	if base != 0x4000 || count != 8 {
		t.Fatalf("VDGBytes in fast mode = (%#04x, %d), want (0x4000, 8)", base, count)
	}
}
