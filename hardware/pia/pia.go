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

// Package pia implements the MC6821 Peripheral Interface Adapter used in
// pairs on the Dragon/CoCo (keyboard/joystick/cassette on PIA0, printer and
// the second joystick port on PIA1). Each half ("A side", "B side") is
// modelled independently; the electrical state of its 8 data pins is a
// (source, sink) mask pair rather than a single byte, so that open-collector
// behaviour and wired-OR buses (the CoCo's PIA0.PB6/PIA1.PB2 cross-connect,
// the Dragon centronics BUSY line) can be expressed exactly instead of
// collapsed into a single resolved value.
package pia

import "github.com/dgn09/core/hardware/instance"

// Half is one of the PIA's two identical 8-bit sides.
type Half struct {
	dataReg uint8
	ddr     uint8 // 1 bit = output
	control uint8

	// source/sink model an open-collector/pulled-up bus: the value read on
	// a pin is (source & sink). A peripheral drives 1s by setting its sink
	// bit for that pin (permitting the bus to float high) and drives 0s by
	// clearing it; Source is host-side pull-ups/drivers layered on top.
	inputSource uint8
	inputSink   uint8
	outputSource uint8
	outputSink   uint8

	c1, c2 bool // edge-latched control line state
	irq1, irq2 bool

	// DataPreRead runs immediately before a data-register read, so the
	// machine can update inputSource/inputSink atomically with the read
	// (keyboard matrix scan driven by the DDR-as-output side, joystick ADC
	// compare, printer BUSY).
	DataPreRead func(h *Half)

	// DataPostWrite runs immediately after a data-register write.
	DataPostWrite func(h *Half, value uint8)

	// ControlPostWrite runs immediately after a control-register write.
	ControlPostWrite func(h *Half, value uint8)
}

// Value returns the 8 bits presented to the CPU on a data-register read:
// output pins reflect what this half is driving, input pins reflect
// (source & sink).
func (h *Half) Value() uint8 {
	driven := h.outputSource & h.outputSink & h.ddr
	sensed := (h.inputSource & h.inputSink) &^ h.ddr
	return driven | sensed
}

// SetInput sets the source/sink mask presented to this half's input pins,
// normally called from DataPreRead.
func (h *Half) SetInput(source, sink uint8) {
	h.inputSource = source
	h.inputSink = sink
}

// DDR returns the data-direction register (1 = that bit is an output).
func (h *Half) DDR() uint8 { return h.ddr }

// controlBit2 selects, on a data-register address access, whether the CPU
// sees the data register (bit set) or the DDR (bit clear).
func (h *Half) controlBit2() bool { return h.control&0x04 != 0 }

// ca2cb2IsOutput reports whether control bits 3-5 configure CA2/CB2 as an
// output line rather than an input with edge detection.
func (h *Half) ca2cb2IsOutput() bool { return h.control&0x20 != 0 }

func edgeIsRising(control uint8, bit uint8) bool { return control&bit != 0 }

// readData implements a CPU read of the data/DDR register, running
// DataPreRead first and clearing the matching IRQ flag (a real 6821 clears
// its interrupt flag bits on a data-register read).
func (h *Half) readData() uint8 {
	if h.controlBit2() {
		if h.DataPreRead != nil {
			h.DataPreRead(h)
		}
		h.irq1 = false
		h.irq2 = false
		return h.Value()
	}
	return h.ddr
}

// writeData implements a CPU write of the data/DDR register.
func (h *Half) writeData(v uint8) {
	if h.controlBit2() {
		h.dataReg = v
		h.outputSource = v
		h.outputSink = 0xff
		if h.DataPostWrite != nil {
			h.DataPostWrite(h, v)
		}
		return
	}
	h.ddr = v
}

func (h *Half) readControl() uint8 {
	v := h.control & 0x3f
	if h.irq1 {
		v |= 0x80
	}
	if h.irq2 && !h.ca2cb2IsOutput() {
		v |= 0x40
	}
	return v
}

func (h *Half) writeControl(v uint8) {
	h.control = v & 0x3f
	if h.ControlPostWrite != nil {
		h.ControlPostWrite(h, v)
	}
}

// notifyEdge applies an external transition of the C1 (or C2, when
// configured as an input) control line, latching the matching IRQ flag if
// the transition matches the polarity configured in the control register.
func (h *Half) notifyEdge(c1 bool, rising bool, bit uint8) {
	want := edgeIsRising(h.control, bit)
	if rising == want {
		if c1 {
			h.irq1 = true
		} else {
			h.irq2 = true
		}
	}
}

// NotifyCA1/NotifyCB1 model an external edge on the corresponding control
// line (e.g. the VDG's HS/FS outputs wired to a PIA's CA1/CB1 on real
// hardware).
func (h *Half) NotifyCA1(rising bool) { h.notifyEdge(true, rising, 0x02) }
func (h *Half) NotifyCB1(rising bool) { h.notifyEdge(true, rising, 0x02) }

// NotifyCA2/NotifyCB2 model an external edge on CA2/CB2 when configured as
// an input.
func (h *Half) NotifyCA2(rising bool) {
	if !h.ca2cb2IsOutput() {
		h.notifyEdge(false, rising, 0x10)
	}
}
func (h *Half) NotifyCB2(rising bool) {
	if !h.ca2cb2IsOutput() {
		h.notifyEdge(false, rising, 0x10)
	}
}

// IRQ reports whether this half is currently asserting its interrupt line.
func (h *Half) IRQ() bool { return h.irq1 || h.irq2 }

// PIA is one MC6821: two independently addressed Halves mapped at
// origin+0 (A data/DDR), origin+1 (A control), origin+2 (B data/DDR),
// origin+3 (B control).
type PIA struct {
	instance *instance.Instance

	label string

	A Half
	B Half
}

// NewPIA is the preferred method of initialisation for PIA.
func NewPIA(instance *instance.Instance, label string) *PIA {
	return &PIA{instance: instance, label: label}
}

// Snapshot creates a copy of the PIA in its current state. The DataPreRead/
// DataPostWrite/ControlPostWrite delegates are function values copied by
// value; Plumb should be used to re-point them at the new machine instance
// after a Snapshot restore if they close over machine state.
func (p *PIA) Snapshot() *PIA {
	n := *p
	return &n
}

func (p *PIA) String() string { return p.label }

// Read implements a CPU read at one of the four addresses this PIA
// responds to (address already normalised to 0-3).
func (p *PIA) Read(reg uint8) uint8 {
	switch reg & 0x3 {
	case 0:
		return p.A.readData()
	case 1:
		return p.A.readControl()
	case 2:
		return p.B.readData()
	default:
		return p.B.readControl()
	}
}

// Write implements a CPU write at one of the four addresses this PIA
// responds to.
func (p *PIA) Write(reg uint8, v uint8) {
	switch reg & 0x3 {
	case 0:
		p.A.writeData(v)
	case 1:
		p.A.writeControl(v)
	case 2:
		p.B.writeData(v)
	default:
		p.B.writeControl(v)
	}
}

// IRQ reports whether either half of this PIA is currently requesting an
// interrupt -- the two halves' IRQA/IRQB outputs are normally wire-ORed
// onto the same 6809 IRQ or FIRQ line.
func (p *PIA) IRQ() bool { return p.A.IRQ() || p.B.IRQ() }
