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

package registers

import "strings"

// StatusRegister is the 6809/6309/6803 condition code register (CC), bit 7
// down to bit 0: E F H I N Z V C.
type StatusRegister struct {
	Entire    bool // E - full/short interrupt context indicator
	FIRQMask  bool // F - FIRQ disable
	HalfCarry bool // H - BCD adjust carry (nibble 3->4)
	IRQMask   bool // I - IRQ disable
	Sign      bool // N - negative
	Zero      bool // Z
	Overflow  bool // V
	Carry     bool // C
}

// NewStatusRegister creates a status register in its power-on state.
func NewStatusRegister() StatusRegister {
	var sr StatusRegister
	sr.Reset()
	return sr
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string { return "CC" }

// Reset sets FIRQMask and IRQMask (F and I are asserted out of reset,
// masking both interrupt lines until software clears them) and clears every
// other flag.
func (sr *StatusRegister) Reset() {
	*sr = StatusRegister{FIRQMask: true, IRQMask: true}
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}
	flag := func(set bool, c byte) {
		if set {
			s.WriteByte(c - 32) // upper case
		} else {
			s.WriteByte(c)
		}
	}
	flag(sr.Entire, 'e')
	flag(sr.FIRQMask, 'f')
	flag(sr.HalfCarry, 'h')
	flag(sr.IRQMask, 'i')
	flag(sr.Sign, 'n')
	flag(sr.Zero, 'z')
	flag(sr.Overflow, 'v')
	flag(sr.Carry, 'c')
	return s.String()
}

// Value packs the flags into a byte in the wire order E F H I N Z V C,
// matching how CC is pushed to the stack and read by the `g` GDB packet.
func (sr StatusRegister) Value() uint8 {
	var v uint8
	if sr.Entire {
		v |= 0x80
	}
	if sr.FIRQMask {
		v |= 0x40
	}
	if sr.HalfCarry {
		v |= 0x20
	}
	if sr.IRQMask {
		v |= 0x10
	}
	if sr.Sign {
		v |= 0x08
	}
	if sr.Zero {
		v |= 0x04
	}
	if sr.Overflow {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}
	return v
}

// Load unpacks a byte into the flags.
func (sr *StatusRegister) Load(v uint8) {
	sr.Entire = v&0x80 == 0x80
	sr.FIRQMask = v&0x40 == 0x40
	sr.HalfCarry = v&0x20 == 0x20
	sr.IRQMask = v&0x10 == 0x10
	sr.Sign = v&0x08 == 0x08
	sr.Zero = v&0x04 == 0x04
	sr.Overflow = v&0x02 == 0x02
	sr.Carry = v&0x01 == 0x01
}
