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

// Package sam implements the 6883/SN74LS783 Synchronous Address
// Multiplexer: the bus arbiter that sits between the CPU and RAM/ROM/PIA/
// cartridge space on a Dragon or CoCo. It owns the video address counter
// cascade the VDG reads through, decides the CPU's effective clock rate for
// each cycle, and is the single point through which the machine's RAM
// organisation is translated to DRAM row/column form.
package sam

import (
	"github.com/dgn09/core/hardware/clocks"
	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/memory/memorymap"
)

// RAMOrganisation selects the DRAM chip organisation, set by SAM register
// bits TY0/TY1.
type RAMOrganisation int

const (
	RAM4K RAMOrganisation = iota
	RAM16K
	RAM64K
	RAM64KPaged
)

// translateEntry gives the row mask, column shift and column mask used by
// RAM_TRANSLATE for a given organisation, plus whether a RAS1 bank-select
// bit is consulted (smaller organisations alias a 64K DRAM bank in two
// halves).
type translateEntry struct {
	rowMask, colMask uint16
	colShift         uint
	usesRAS1         bool
}

var translateTable = map[RAMOrganisation]translateEntry{
	RAM4K:       {rowMask: 0x003f, colMask: 0x0fc0, colShift: 6, usesRAS1: true},
	RAM16K:      {rowMask: 0x007f, colMask: 0x3f80, colShift: 7, usesRAS1: true},
	RAM64K:      {rowMask: 0x00ff, colMask: 0xff00, colShift: 0, usesRAS1: false},
	RAM64KPaged: {rowMask: 0x00ff, colMask: 0xff00, colShift: 0, usesRAS1: false},
}

// Register is the SAM's 16-bit shadow of its write-only strobe bits at
// $FFC0-$FFDF: each pair of addresses (even clears, odd sets) toggles one
// bit of this value, never read directly by the CPU.
type Register struct {
	Value uint16
}

const (
	bitV0 = 0 // video mode bit 0
	bitV1 = 1
	bitV2 = 2
	bitF0 = 3 // video base bits
	bitF1 = 4
	bitF2 = 5
	bitF3 = 6
	bitF4 = 7
	bitF5 = 8
	bitF6 = 9
	bitP1 = 10 // page bit
	bitTY = 11 // MPU rate: 0 fast, 1 slow... actually R0/R1 below carry rate
	bitM0 = 12 // memory size bits
	bitM1 = 13
	bitR0 = 14 // MPU rate select strobe (fast/slow)
	bitR1 = 15 // map type
)

// VideoMode returns the 3-bit GM-equivalent video mode field (V2 V1 V0).
func (r Register) VideoMode() uint8 {
	return uint8(r.Value&0x7) // bits 0-2
}

// VideoBase returns the 7-bit video base address field (F6..F0), used to
// seed the B15_5 counter node on an FS edge.
func (r Register) VideoBase() uint8 {
	return uint8((r.Value >> bitF0) & 0x7f)
}

// RAMSize decodes the 2-bit memory size field.
func (r Register) RAMSize() RAMOrganisation {
	switch (r.Value >> bitM0) & 0x3 {
	case 0:
		return RAM4K
	case 1:
		return RAM16K
	case 2:
		return RAM64K
	default:
		return RAM64KPaged
	}
}

// FastRate reports whether the CPU rate strobe currently selects the fast
// (double) MPU clock.
func (r Register) FastRate() bool {
	return r.Value&(1<<bitTY) != 0
}

// MapType1 reports whether SAM is in map type 1, which forces fast mode and
// hides RAM entirely above $0000 in favour of ROM/cartridge decode.
func (r Register) MapType1() bool {
	return r.Value&(1<<bitR1) != 0
}

// AddressDependentRate reports whether the SAM should pick the CPU's clock
// rate for this cycle from the address being accessed rather than purely
// from the TY rate strobe -- the "address-dependent rate" field a real SAM
// exposes alongside the plain fast/slow strobe.
func (r Register) AddressDependentRate() bool {
	return r.Value&(1<<bitR0) != 0
}

// PageBit reports the state of the page-select bit, used by 64K-paged RAM
// organisation to choose between the two halves of a 128K expansion.
func (r Register) PageBit() bool {
	return r.Value&(1<<bitP1) != 0
}

// Strobe applies a write to one of the 32 SAM strobe addresses. addr must
// already be normalised to the $00-$1f range ($FFC0 subtracted).
func (r *Register) Strobe(addr uint16) {
	bit := addr >> 1
	if addr&1 == 0 {
		r.Value &^= 1 << bit
	} else {
		r.Value |= 1 << bit
	}
}

// counterNode models one stage of the VDG address counter cascade
// (B15_5, YDIV4, YDIV3, YDIV2, B4, XDIV3, XDIV2, B3_0). Each divides its
// input by valMod, wrapping and asserting output (a carry into the next
// stage) when it does.
type counterNode struct {
	value     uint16
	valMod    uint16
	outMask   uint16
	inputFrom *counterNode
}

func (n *counterNode) clock() (carry bool) {
	if n.valMod == 0 {
		return false
	}
	n.value++
	if n.value >= n.valMod {
		n.value = 0
		return true
	}
	return false
}

// SAM is the bus multiplexer and video address generator.
type SAM struct {
	instance *instance.Instance

	Register Register

	ram RAMOrganisation

	// extendSlowCycle tracks whether the previous cycle was fast, used by
	// the cycle-interleave table to detect the "trailing slow cycle after
	// an odd run of fast cycles" re-phase penalty.
	extendSlowCycle bool
	prevWasFast     bool

	// video address counter cascade. B15_5 is seeded from Register.VideoBase
	// on an FS edge; the rest step as bytes are serviced.
	b155, ydiv4, ydiv3, ydiv2, b4, xdiv3, xdiv2, b30 counterNode

	// videoAddress is the current VDG fetch address, exposed via
	// CurrentVideoAddress and mutated by VDGBytes.
	videoAddress uint16

	// lastCPUAddress, in fast MPU mode, is what VideoAddress() returns
	// instead of the counter cascade's output -- a faithful reproduction
	// of a real SAM quirk (see VDGBytes doc comment).
	lastCPUAddress uint16
}

// NewSAM is the preferred method of initialisation for SAM.
func NewSAM(instance *instance.Instance) *SAM {
	s := &SAM{instance: instance}
	s.wireCounters()
	s.SetVideoMode()
	return s
}

// Snapshot creates a copy of the SAM in its current state. The counter
// cascade's input_from pointers address the original SAM's nodes, so they
// are re-wired to point within the copy before it is handed back.
func (s *SAM) Snapshot() *SAM {
	n := *s
	n.wireCounters()
	return &n
}

// wireCounters links the video address counter cascade in true carry order,
// leaf to root: B3_0 (the edge that fires once per completed 16-byte fetch
// window, per VDGBytes) feeds XDIV2, which feeds XDIV3, then B4, then
// YDIV2, YDIV3, YDIV4, and finally B15_5. This is the input_from graph
// spec's counter tree describes; advanceCascade walks it rather than
// clocking a hardcoded chain. B3_0 and B15_5 are not mode-dependent -- B3_0
// is a plain divide-by-1 edge trigger (the within-window byte position is
// already tracked by videoAddress itself), and B15_5 is the free-running
// row accumulator seeded by FSEdge -- so their valMod is fixed here rather
// than in SetVideoMode.
func (s *SAM) wireCounters() {
	s.xdiv2.inputFrom = &s.b30
	s.xdiv3.inputFrom = &s.xdiv2
	s.b4.inputFrom = &s.xdiv3
	s.ydiv2.inputFrom = &s.b4
	s.ydiv3.inputFrom = &s.ydiv2
	s.ydiv4.inputFrom = &s.ydiv3
	s.b155.inputFrom = &s.ydiv4

	s.b30.valMod = 1
	s.b155.valMod = 0x0800
}

// videoModeDividers gives the Y and X divide ratios for each of the 8 VDG
// video modes; SetVideoMode applies them to the cascade whenever the SAM
// video mode changes.
var videoModeDividers = [8]struct{ y, x uint16 }{
	{12, 1}, // alphanumeric/semigraphics 4: divide-by-12 Y (text rows)
	{3, 2},  // semigraphics 6
	{2, 1},  // CG1 resolution
	{2, 2},  // RG1
	{1, 1},  // CG2
	{1, 2},  // RG2/CG3
	{1, 1},  // RG3
	{1, 2},  // RG6/CG6
}

// SetVideoMode re-wires the counter cascade divide ratios for the SAM video
// mode currently latched in Register. The mode's X ratio lands on XDIV2 and
// its Y ratio on YDIV2, the two stages nearest the leaf; XDIV3, B4, YDIV3
// and YDIV4 carry a fixed divide-by-1 (pass-through) for modes that don't
// need a second stage of either divider, the same way the real SAM's mode
// select bypasses unused stages rather than removing them from the chain.
func (s *SAM) SetVideoMode() {
	m := videoModeDividers[s.Register.VideoMode()&0x7]
	s.xdiv2.valMod = m.x
	s.xdiv3.valMod = 1
	s.b4.valMod = 1
	s.ydiv2.valMod = m.y
	s.ydiv3.valMod = 1
	s.ydiv4.valMod = 1
}

// cascadeOrder walks the counter cascade from root (B15_5) back to its leaf
// via input_from, then reverses it so callers can clock leaf-to-root. This
// is what makes input_from load-bearing: the clocking order is read from
// the wiring wireCounters set up, not hardcoded a second time.
func (s *SAM) cascadeOrder() []*counterNode {
	order := make([]*counterNode, 0, 8)
	for n := &s.b155; n != nil; n = n.inputFrom {
		order = append(order, n)
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// advanceCascade clocks the video address counter cascade once, rippling a
// carry leaf-to-root (B3_0 -> XDIV2 -> XDIV3 -> B4 -> YDIV2 -> YDIV3 ->
// YDIV4) until a stage fails to carry. It reports whether the ripple
// reached YDIV4 -- a full divide-by-X-then-divide-by-Y cycle -- in which
// case B15_5 is also clocked as the row accumulator. VDGBytes uses the
// return value to decide whether the video base advances to the next
// 16-byte window or repeats it, reproducing the real SAM's row/column reuse
// across scanlines.
func (s *SAM) advanceCascade() bool {
	order := s.cascadeOrder()
	for _, n := range order[:len(order)-1] {
		if !n.clock() {
			return false
		}
	}
	order[len(order)-1].clock()
	return true
}

// WriteStrobe applies a SAM register write. addr is the raw CPU address in
// $FFC0-$FFDF; it is masked down to the 5-bit strobe index here.
func (s *SAM) WriteStrobe(addr uint16) {
	s.Register.Strobe(addr & 0x1f)
	s.SetVideoMode()
}

// Segment classifies a CPU address into the SAM's dispatch segment for this
// cycle, and reports whether the access falls in the SAM strobe window
// (callers should apply WriteStrobe for writes in that case, ahead of any
// further dispatch).
func (s *SAM) Segment(addr uint16) (seg memorymap.Segment, isSAMStrobe bool) {
	if addr >= memorymap.SAMOrigin && addr <= memorymap.SAMMemtop {
		return memorymap.SegmentCatchAll, true
	}
	return memorymap.Classify(addr, s.Register.MapType1()), false
}

// CycleTicks implements the clock interleave table. fast
// selects whether the coming cycle will run at the fast rate; the return
// value is the number of scheduler ticks (1/16th of a slow cycle) this
// cycle costs, after which extend/prevWasFast bookkeeping is updated for
// the next call.
func (s *SAM) CycleTicks(fast bool) int {
	var ticks int
	switch {
	case !s.prevWasFast && !fast:
		ticks = clocks.TicksPerSlowCycle // 16: slow -> slow
	case !s.prevWasFast && fast:
		ticks = 15 // slow -> fast transition
	case s.prevWasFast && !fast:
		if s.extendSlowCycle {
			ticks = 25 // re-phase after an odd run of fast cycles
		} else {
			ticks = 17 // first slow cycle after a fast run
		}
	default:
		ticks = 8 // fast -> fast
	}

	if fast {
		s.extendSlowCycle = !s.extendSlowCycle
	} else {
		s.extendSlowCycle = false
	}
	s.prevWasFast = fast

	return ticks
}

// EffectiveFast reports whether the coming cycle should run at the fast
// rate: forced by map type 1, or by the CPU rate strobe, or by an
// address-dependent policy the machine composer may layer on top (e.g.
// ROM accesses are address-dependent-fast on some Dragon revisions).
func (s *SAM) EffectiveFast(addressDependentFast bool) bool {
	return s.Register.MapType1() || s.Register.FastRate() || addressDependentFast
}

// Translate implements RAM_TRANSLATE: it composes the column bits (shifted
// down and masked) with the row bits, for the RAM organisation currently
// latched in the SAM register.
func (s *SAM) Translate(addr uint16) uint16 {
	t := translateTable[s.Register.RAMSize()]
	col := (addr << t.colShift) & t.colMask
	row := addr & t.rowMask
	z := col | row
	if t.usesRAS1 && s.Register.PageBit() {
		z |= 0x8000
	}
	return z
}

// FSEdge reloads B15_5 from the latched video base address, as real
// hardware does at the start of vertical blank, and resets the rest of the
// cascade's counters for the new frame.
func (s *SAM) FSEdge() {
	s.b155.value = uint16(s.Register.VideoBase()) << 9
	s.ydiv4.value = 0
	s.ydiv3.value = 0
	s.ydiv2.value = 0
	s.b4.value = 0
	s.xdiv3.value = 0
	s.xdiv2.value = 0
	s.b30.value = 0
	s.videoAddress = s.b155.value
}

// HSEdge clears the configurable low-bit subset of the video address
// (CLR4/CLR3/CLRN) at the end of a visible scanline.
func (s *SAM) HSEdge(clrMask uint16) {
	s.videoAddress &^= clrMask
}

// VDGBytes returns the number of bytes (up to n) the VDG may fetch
// contiguously from the current video address before the next 16-byte
// boundary. Crossing that boundary clocks the counter cascade once; if the
// divide cycle hasn't completed, the same window is reused on the next
// call rather than the video address advancing past it. In fast MPU mode
// the SAM cannot actually service VDG fetches against its own counter --
// real hardware substitutes whatever address the CPU just placed on the
// bus, which is why V silently tracks lastCPUAddress instead; this is a
// faithful hardware quirk, not a simplification, and is deliberately
// preserved.
func (s *SAM) VDGBytes(n int) (base uint16, count int) {
	if s.Register.FastRate() {
		return s.lastCPUAddress, n
	}

	base = s.videoAddress
	remaining := 16 - int(base&0xf)
	if n > remaining {
		count = remaining
	} else {
		count = n
	}
	s.videoAddress += uint16(count)

	if s.videoAddress&0xf == 0 && !s.advanceCascade() {
		// The divide cycle hasn't completed (an X or Y repeat pass is still
		// outstanding): reuse this 16-byte window on the next call instead
		// of advancing past it.
		s.videoAddress -= 16
	}

	return base, count
}

// NoteCPUAddress records the address of the most recent CPU bus cycle, used
// by VDGBytes to reproduce the fast-mode V-tracks-CPU quirk.
func (s *SAM) NoteCPUAddress(addr uint16) { s.lastCPUAddress = addr }

// CurrentVideoAddress returns the address the VDG would next fetch from.
func (s *SAM) CurrentVideoAddress() uint16 { return s.videoAddress }
