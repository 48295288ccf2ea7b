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

// Package vdg implements the MC6847 Video Display Generator's timing state
// machine: the scanline/row counters and HS/FS edge generation. Pixel
// synthesis and NTSC colour-burst rendering are left to an external
// renderer; the VDG only issues a fetch callback for each row of display
// bytes and an edge-tagged "scanline ready" callback to that renderer.
package vdg

import "github.com/dgn09/core/hardware/instance"

// Mode captures the GM2 GM1 GM0 GnA CSS INT/EXT input lines that select a
// scanline's display category, resolution and palette.
type Mode struct {
	GM        uint8 // GM2:GM1:GM0, 3 bits
	GnA       bool  // graphics/not-alpha
	CSS       bool  // colour set select
	ExternalA bool  // INT/EXT: external character generator selected
}

// rowsPerLine gives the number of VDG scanlines a single fetched row covers
// before the next row fetch, mirroring the 6847's per-mode vertical
// resolution (alphanumeric text repeats a row 12 times; the graphics modes
// repeat 1, 2 or 3 times depending on resolution).
func (m Mode) rowsPerLine() int {
	if !m.GnA {
		return 12
	}
	switch m.GM {
	case 0, 1:
		return 3
	case 2, 3:
		return 2
	default:
		return 1
	}
}

// bytesPerLine gives the number of display bytes the VDG fetches per text/
// graphics row.
func (m Mode) bytesPerLine() int {
	if !m.GnA {
		return 32
	}
	switch m.GM {
	case 0:
		return 16
	default:
		return 32
	}
}

// FetchFunc obtains n display bytes from the machine's current VDG address,
// returning the actual count serviced (bounded by the SAM's 16-byte
// boundary rule) and advancing the address for the next call.
type FetchFunc func(n int) (data []uint8, serviced int)

// EdgeFunc is called on an HS (low argument false->true transition at end
// of a visible row) or FS (start of vertical blank) edge.
type EdgeFunc func()

// ScanlineFunc delivers one fetched row to the external renderer, tagged
// with the colour-burst phase the hardware would present for it.
type ScanlineFunc func(row []uint8, mode Mode, burstPhase int)

const (
	visibleLines   = 192
	totalLines     = 262
	vblankStart    = 192
)

// VDG is the scanline timing state machine.
type VDG struct {
	instance *instance.Instance

	Mode Mode

	line      int
	lineInRow int

	Fetch      FetchFunc
	HS         EdgeFunc
	FS         EdgeFunc
	Scanline   ScanlineFunc

	burstPhase int
}

// NewVDG is the preferred method of initialisation for VDG.
func NewVDG(instance *instance.Instance) *VDG {
	return &VDG{instance: instance}
}

// Snapshot creates a copy of the VDG in its current state. Fetch/HS/FS/
// Scanline delegates are copied by value; Plumb re-points them if they
// close over machine state that must target the restored machine.
func (v *VDG) Snapshot() *VDG {
	n := *v
	return &n
}

// Plumb re-installs the delegate functions after a Snapshot restore.
func (v *VDG) Plumb(fetch FetchFunc, hs, fs EdgeFunc, scanline ScanlineFunc) {
	v.Fetch = fetch
	v.HS = hs
	v.FS = fs
	v.Scanline = scanline
}

// Step advances the VDG by one scanline: fetches the row's display bytes
// (only on the first physical line of a repeated row), emits the row to
// the external renderer, and fires HS/FS edges at the appropriate line
// boundaries.
func (v *VDG) Step() {
	if v.lineInRow == 0 && v.line < vblankStart {
		n := v.Mode.bytesPerLine()
		var row []uint8
		if v.Fetch != nil {
			row, _ = v.Fetch(n)
		}
		if v.Scanline != nil {
			v.Scanline(row, v.Mode, v.burstPhase)
		}
		v.burstPhase = (v.burstPhase + 1) % 4
	}

	v.lineInRow++
	if v.lineInRow >= v.Mode.rowsPerLine() {
		v.lineInRow = 0
	}

	v.line++

	if v.line == vblankStart {
		if v.HS != nil {
			v.HS()
		}
		if v.FS != nil {
			v.FS()
		}
	} else if v.line < vblankStart {
		if v.HS != nil {
			v.HS()
		}
	}

	if v.line >= totalLines {
		v.line = 0
		v.lineInRow = 0
	}
}

// CurrentLine reports the VDG's current scanline counter, for tracing and
// the GDB stub's qxroar-style extensions.
func (v *VDG) CurrentLine() int { return v.line }
