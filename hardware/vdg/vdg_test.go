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

package vdg_test

import (
	"testing"

	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/vdg"
)

const (
	visibleLines = 192
	totalLines   = 262
)

// TestFetchCadenceByMode table-drives the row-repeat/bytes-per-row behaviour
// for each VDG mode family: a row is fetched only on the first of its
// repeated physical lines, and the byte count requested matches the mode's
// resolution.
func TestFetchCadenceByMode(t *testing.T) {
	tests := []struct {
		name         string
		mode         vdg.Mode
		wantFetches  int
		wantRowBytes int
	}{
		{"alphanumeric", vdg.Mode{GnA: false}, visibleLines / 12, 32},
		{"CG1 (GM0)", vdg.Mode{GnA: true, GM: 0}, visibleLines / 3, 16},
		{"RG2/3 (GM2)", vdg.Mode{GnA: true, GM: 2}, visibleLines / 2, 32},
		{"RG6 (GM4)", vdg.Mode{GnA: true, GM: 4}, visibleLines / 1, 32},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := vdg.NewVDG(instance.NewInstance("test"))
			v.Mode = tc.mode

			fetches := 0
			var gotN int
			v.Fetch = func(n int) ([]uint8, int) {
				fetches++
				gotN = n
				return make([]uint8, n), n
			}

			for i := 0; i < totalLines; i++ {
				v.Step()
			}

			if fetches != tc.wantFetches {
				t.Fatalf("got %d fetches over one frame, want %d", fetches, tc.wantFetches)
			}
			if gotN != tc.wantRowBytes {
				t.Fatalf("fetch requested %d bytes, want %d", gotN, tc.wantRowBytes)
			}
		})
	}
}

// TestScanlineDeliveredOncePerFetchedRow checks that Scanline is called
// exactly once for every row the VDG fetches, not once per physical line.
func TestScanlineDeliveredOncePerFetchedRow(t *testing.T) {
	v := vdg.NewVDG(instance.NewInstance("test"))
	v.Mode = vdg.Mode{GnA: true, GM: 2} // rowsPerLine 2, bytesPerLine 32

	v.Fetch = func(n int) ([]uint8, int) { return make([]uint8, n), n }

	scanlines := 0
	v.Scanline = func(row []uint8, mode vdg.Mode, burstPhase int) {
		scanlines++
		if len(row) != 32 {
			t.Errorf("scanline %d got row of %d bytes, want 32", scanlines, len(row))
		}
	}

	for i := 0; i < totalLines; i++ {
		v.Step()
	}

	wantScanlines := visibleLines / 2
	if scanlines != wantScanlines {
		t.Fatalf("got %d scanlines, want %d", scanlines, wantScanlines)
	}
}

// TestHSFiresEveryVisibleLineAndFSAtVblank checks the edge cadence over one
// full frame: HS fires once per visible line (192 in all, the last on the
// same step as the FS edge into vertical blank), and FS fires exactly once.
func TestHSFiresEveryVisibleLineAndFSAtVblank(t *testing.T) {
	v := vdg.NewVDG(instance.NewInstance("test"))
	v.Mode = vdg.Mode{GnA: false}

	hsCount, fsCount := 0, 0
	v.HS = func() { hsCount++ }
	v.FS = func() { fsCount++ }

	for i := 0; i < totalLines; i++ {
		v.Step()
	}

	if hsCount != visibleLines {
		t.Errorf("got %d HS edges, want %d", hsCount, visibleLines)
	}
	if fsCount != 1 {
		t.Errorf("got %d FS edges, want 1", fsCount)
	}
}

// TestCurrentLineWrapsAfterTotalLines checks that the scanline counter
// returns to 0 once a full frame (including vertical blank) has elapsed.
func TestCurrentLineWrapsAfterTotalLines(t *testing.T) {
	v := vdg.NewVDG(instance.NewInstance("test"))

	for i := 0; i < totalLines-1; i++ {
		v.Step()
	}
	if v.CurrentLine() != totalLines-1 {
		t.Fatalf("CurrentLine() = %d, want %d", v.CurrentLine(), totalLines-1)
	}

	v.Step()
	if v.CurrentLine() != 0 {
		t.Fatalf("CurrentLine() = %d after wrap, want 0", v.CurrentLine())
	}
}

// TestSnapshotAndPlumbRestoreDelegates checks that a snapshotted VDG carries
// its mode and counters forward, and that Plumb re-attaches fresh delegates
// after a restore rather than leaving the copy's stale closures in place.
func TestSnapshotAndPlumbRestoreDelegates(t *testing.T) {
	v := vdg.NewVDG(instance.NewInstance("test"))
	v.Mode = vdg.Mode{GnA: true, GM: 2}
	v.Step()
	v.Step()

	snap := v.Snapshot()
	if snap.CurrentLine() != v.CurrentLine() {
		t.Fatalf("snapshot CurrentLine() = %d, want %d", snap.CurrentLine(), v.CurrentLine())
	}

	fetched := false
	snap.Plumb(
		func(n int) ([]uint8, int) { fetched = true; return make([]uint8, n), n },
		func() {},
		func() {},
		func([]uint8, vdg.Mode, int) {},
	)

	for i := 0; i < totalLines; i++ {
		snap.Step()
	}
	if !fetched {
		t.Fatalf("expected snapshot's re-plumbed Fetch delegate to be invoked")
	}
}
