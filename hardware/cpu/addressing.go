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

package cpu

// indexedRegister is a narrow get/set handle onto one of the four registers
// addressable by the indexed postbyte's RR field.
type indexedRegister struct {
	get func() uint16
	set func(uint16)
}

func (mc *CPU) indexedRegisterByCode(code uint8) indexedRegister {
	switch code & 0x03 {
	case 0:
		return indexedRegister{mc.X.Value, mc.X.Load}
	case 1:
		return indexedRegister{mc.Y.Value, mc.Y.Load}
	case 2:
		return indexedRegister{mc.U.Value, mc.U.Load}
	default:
		return indexedRegister{mc.S.Value, mc.S.Load}
	}
}

func (mc *CPU) resolveDirect() (uint16, error) {
	off, err := mc.fetchPC8()
	if err != nil {
		return 0, err
	}
	return uint16(mc.DP.Value())<<8 | uint16(off), nil
}

func (mc *CPU) resolveExtended() (uint16, error) {
	return mc.fetchPC16()
}

// resolveIndexed decodes the indexed addressing postbyte grammar, returning
// the effective address and the number of cycles beyond the instruction's
// base Definition.Cycles that the chosen sub-mode costs.
func (mc *CPU) resolveIndexed() (uint16, int, error) {
	postbyte, err := mc.fetchPC8()
	if err != nil {
		return 0, 0, err
	}
	mc.LastResult.IndexedPostbyte = postbyte

	regCode := (postbyte >> 5) & 0x03
	reg := mc.indexedRegisterByCode(regCode)

	if postbyte&0x80 == 0 {
		// 5 bit signed constant offset; no indirection possible in this mode
		offset := int32(int8(postbyte<<3)) >> 3
		addr := uint16(int32(reg.get()) + offset)
		return addr, 1, nil
	}

	indirect := postbyte&0x10 != 0
	var addr uint16
	extra := 0

	switch postbyte & 0x0f {
	case 0x00: // ,R+
		addr = reg.get()
		reg.set(addr + 1)
		extra = 2
	case 0x01: // ,R++
		addr = reg.get()
		reg.set(addr + 2)
		extra = 3
	case 0x02: // ,-R
		reg.set(reg.get() - 1)
		addr = reg.get()
		extra = 2
	case 0x03: // ,--R
		reg.set(reg.get() - 2)
		addr = reg.get()
		extra = 3
	case 0x04: // ,R
		addr = reg.get()
	case 0x05: // B,R
		addr = uint16(int32(reg.get()) + int32(int8(mc.B.Value())))
		extra = 1
	case 0x06: // A,R
		addr = uint16(int32(reg.get()) + int32(int8(mc.A.Value())))
		extra = 1
	case 0x08: // n8,R
		off, err := mc.fetchPC8()
		if err != nil {
			return 0, 0, err
		}
		addr = uint16(int32(reg.get()) + int32(int8(off)))
		extra = 1
	case 0x09: // n16,R
		off, err := mc.fetchPC16()
		if err != nil {
			return 0, 0, err
		}
		addr = uint16(int32(reg.get()) + int32(int16(off)))
		extra = 4
	case 0x0b: // D,R
		d := int32(int16(uint16(mc.A.Value())<<8 | uint16(mc.B.Value())))
		addr = uint16(int32(reg.get()) + d)
		extra = 4
	case 0x0c: // n8,PC
		off, err := mc.fetchPC8()
		if err != nil {
			return 0, 0, err
		}
		addr = uint16(int32(mc.PC.Value()) + int32(int8(off)))
		extra = 1
	case 0x0d: // n16,PC
		off, err := mc.fetchPC16()
		if err != nil {
			return 0, 0, err
		}
		addr = uint16(int32(mc.PC.Value()) + int32(int16(off)))
		extra = 5
	case 0x0f: // [n16] extended indirect; R bits are ignored, always indirect
		off, err := mc.fetchPC16()
		if err != nil {
			return 0, 0, err
		}
		addr = off
		extra = 2
		indirect = true
	default:
		// 0x07, 0x0a, 0x0e are undefined submodes; fall back to ,R so that
		// decode always terminates deterministically
		addr = reg.get()
	}

	if indirect {
		ptr, err := mc.read16(addr)
		if err != nil {
			return 0, 0, err
		}
		addr = ptr
		extra += 3
	}

	return addr, extra, nil
}
