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

import (
	"fmt"

	"github.com/dgn09/core/hardware/cpu/instructions"
	"github.com/dgn09/core/hardware/cpu/registers"
)

func (mc *CPU) setNZ8(v uint8) {
	mc.CC.Zero = v == 0
	mc.CC.Sign = v&0x80 == 0x80
}

func (mc *CPU) setNZ16(v uint16) {
	mc.CC.Zero = v == 0
	mc.CC.Sign = v&0x8000 == 0x8000
}

// d returns the 16 bit accumulator pair A:B.
func (mc *CPU) d() uint16 { return uint16(mc.A.Value())<<8 | uint16(mc.B.Value()) }

func (mc *CPU) loadD(v uint16) {
	mc.A.Load(uint8(v >> 8))
	mc.B.Load(uint8(v))
}

// execute resolves the addressing mode named by defn and dispatches to the
// operator implementation.
func (mc *CPU) execute(defn *instructions.Definition) error {
	mc.LastResult.Cycles = defn.Cycles

	switch defn.AddressingMode {
	case instructions.Implied:
		return mc.executeImplied(defn)
	case instructions.Immediate:
		return mc.executeImmediate(defn)
	case instructions.Relative:
		return mc.executeRelative(defn)
	case instructions.Direct:
		addr, err := mc.resolveDirect()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(addr)
		return mc.executeMemory(defn, addr)
	case instructions.Absolute:
		addr, err := mc.resolveExtended()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(addr)
		return mc.executeMemory(defn, addr)
	case instructions.Indexed:
		addr, extra, err := mc.resolveIndexed()
		if err != nil {
			return err
		}
		mc.LastResult.Cycles += extra
		mc.LastResult.InstructionData = uint32(addr)
		return mc.executeMemory(defn, addr)
	}

	return fmt.Errorf("cpu: unhandled addressing mode %s", defn.AddressingMode)
}

// rmw8 reads the byte at addr, applies fn to a scratch register loaded with
// that value, then writes the (possibly unchanged) result back. The write
// always happens, including for TST, which leaves the value unchanged.
func (mc *CPU) rmw8(addr uint16, fn func(r *registers.Register)) error {
	v, err := mc.read8(addr)
	if err != nil {
		return err
	}
	var tmp registers.Register
	tmp.Load(v)
	fn(&tmp)
	return mc.write8(addr, tmp.Value())
}

func (mc *CPU) executeModify8(op instructions.Operator, tmp *registers.Register) {
	switch op {
	case instructions.NEG, instructions.NEGA, instructions.NEGB:
		carry, overflow := tmp.Negate(0)
		mc.CC.Carry, mc.CC.Overflow = carry, overflow
	case instructions.COM, instructions.COMA, instructions.COMB:
		tmp.Complement()
		mc.CC.Carry, mc.CC.Overflow = true, false
	case instructions.LSR, instructions.LSRA, instructions.LSRB:
		mc.CC.Carry = tmp.LSR()
	case instructions.ROR, instructions.RORA, instructions.RORB:
		mc.CC.Carry = tmp.ROR(mc.CC.Carry)
	case instructions.ASR, instructions.ASRA, instructions.ASRB:
		mc.CC.Carry = tmp.ASR()
	case instructions.ASL, instructions.ASLA, instructions.ASLB:
		sign := tmp.IsNegative()
		carry := tmp.ASL()
		mc.CC.Carry = carry
		mc.CC.Overflow = sign != tmp.IsNegative()
	case instructions.ROL, instructions.ROLA, instructions.ROLB:
		sign := tmp.IsNegative()
		carry := tmp.ROL(mc.CC.Carry)
		mc.CC.Carry = carry
		mc.CC.Overflow = sign != tmp.IsNegative()
	case instructions.DEC, instructions.DECA, instructions.DECB:
		mc.CC.Overflow = tmp.Decrement()
	case instructions.INC, instructions.INCA, instructions.INCB:
		mc.CC.Overflow = tmp.Increment()
	case instructions.TST, instructions.TSTA, instructions.TSTB:
		// no mutation; flags only
	case instructions.CLR, instructions.CLRA, instructions.CLRB:
		tmp.Load(0)
		mc.CC.Carry, mc.CC.Overflow = false, false
	}
	mc.setNZ8(tmp.Value())
}

var modify8Operators = map[instructions.Operator]bool{
	instructions.NEG: true, instructions.COM: true, instructions.LSR: true,
	instructions.ROR: true, instructions.ASR: true, instructions.ASL: true,
	instructions.ROL: true, instructions.DEC: true, instructions.INC: true,
	instructions.TST: true, instructions.CLR: true,
}

// alu8 applies an 8 bit accumulator operator against value, mutating reg and
// CC as appropriate. Used for both the A and B accumulator forms and for
// direct/indexed/extended operands loaded from memory.
func (mc *CPU) alu8(op instructions.Operator, reg *registers.Register, value uint8) {
	switch op {
	case instructions.SUBA, instructions.SUBB:
		carry, overflow := reg.Subtract(value, false)
		mc.CC.Carry, mc.CC.Overflow = carry, overflow
		mc.setNZ8(reg.Value())
	case instructions.SBCA, instructions.SBCB:
		carry, overflow := reg.Subtract(value, mc.CC.Carry)
		mc.CC.Carry, mc.CC.Overflow = carry, overflow
		mc.setNZ8(reg.Value())
	case instructions.CMPA, instructions.CMPB:
		var tmp registers.Register
		tmp.Load(reg.Value())
		carry, overflow := tmp.Subtract(value, false)
		mc.CC.Carry, mc.CC.Overflow = carry, overflow
		mc.setNZ8(tmp.Value())
	case instructions.ADDA, instructions.ADDB:
		half := reg.HalfCarry(value, false)
		carry, overflow := reg.Add(value, false)
		mc.CC.Carry, mc.CC.Overflow, mc.CC.HalfCarry = carry, overflow, half
		mc.setNZ8(reg.Value())
	case instructions.ADCA, instructions.ADCB:
		half := reg.HalfCarry(value, mc.CC.Carry)
		carry, overflow := reg.Add(value, mc.CC.Carry)
		mc.CC.Carry, mc.CC.Overflow, mc.CC.HalfCarry = carry, overflow, half
		mc.setNZ8(reg.Value())
	case instructions.ANDA, instructions.ANDB:
		reg.AND(value)
		mc.CC.Overflow = false
		mc.setNZ8(reg.Value())
	case instructions.ORAA, instructions.ORB:
		reg.ORA(value)
		mc.CC.Overflow = false
		mc.setNZ8(reg.Value())
	case instructions.EORA, instructions.EORB:
		reg.EOR(value)
		mc.CC.Overflow = false
		mc.setNZ8(reg.Value())
	case instructions.BITA, instructions.BITB:
		var tmp registers.Register
		tmp.Load(reg.Value())
		tmp.AND(value)
		mc.CC.Overflow = false
		mc.setNZ8(tmp.Value())
	case instructions.LDA, instructions.LDB:
		reg.Load(value)
		mc.CC.Overflow = false
		mc.setNZ8(reg.Value())
	}
}

// accumulatorFor maps an A or B flavoured operator to the relevant register.
func (mc *CPU) accumulatorFor(op instructions.Operator) *registers.Register {
	switch op {
	case instructions.SUBA, instructions.SBCA, instructions.CMPA, instructions.ADDA,
		instructions.ADCA, instructions.ANDA, instructions.ORAA, instructions.EORA,
		instructions.BITA, instructions.LDA, instructions.STA,
		instructions.NEGA, instructions.COMA, instructions.LSRA, instructions.RORA,
		instructions.ASRA, instructions.ASLA, instructions.ROLA, instructions.DECA,
		instructions.INCA, instructions.TSTA, instructions.CLRA:
		return &mc.A
	default:
		return &mc.B
	}
}

func (mc *CPU) executeMemory(defn *instructions.Definition, addr uint16) error {
	op := defn.Operator

	if modify8Operators[op] {
		return mc.rmw8(addr, func(r *registers.Register) { mc.executeModify8(op, r) })
	}

	switch op {
	case instructions.JMP:
		mc.PC.Load(addr)
		return nil

	case instructions.JSR:
		if err := mc.push16S(mc.PC.Value()); err != nil {
			return err
		}
		mc.PC.Load(addr)
		return nil

	case instructions.STA, instructions.STB:
		reg := mc.accumulatorFor(op)
		mc.CC.Overflow = false
		mc.setNZ8(reg.Value())
		return mc.write8(addr, reg.Value())

	case instructions.LDA, instructions.LDB,
		instructions.SUBA, instructions.SBCA, instructions.CMPA, instructions.ADDA,
		instructions.ADCA, instructions.ANDA, instructions.ORAA, instructions.EORA, instructions.BITA,
		instructions.SUBB, instructions.SBCB, instructions.CMPB, instructions.ADDB,
		instructions.ADCB, instructions.ANDB, instructions.ORB, instructions.EORB, instructions.BITB:
		v, err := mc.read8(addr)
		if err != nil {
			return err
		}
		mc.alu8(op, mc.accumulatorFor(op), v)
		return nil

	case instructions.LDD:
		v, err := mc.read16(addr)
		if err != nil {
			return err
		}
		mc.loadD(v)
		mc.CC.Overflow = false
		mc.setNZ16(v)
		return nil

	case instructions.STD:
		mc.CC.Overflow = false
		mc.setNZ16(mc.d())
		return mc.write16(addr, mc.d())

	case instructions.ADDD:
		v, err := mc.read16(addr)
		if err != nil {
			return err
		}
		sum := uint32(mc.d()) + uint32(v)
		mc.CC.Carry = sum > 0xffff
		mc.CC.Overflow = ((uint32(mc.d()) ^ uint32(sum)) & (uint32(v) ^ uint32(sum)) & 0x8000) != 0
		mc.loadD(uint16(sum))
		mc.setNZ16(mc.d())
		return nil

	case instructions.SUBD:
		v, err := mc.read16(addr)
		if err != nil {
			return err
		}
		before := mc.d()
		diff := uint32(before) - uint32(v)
		mc.CC.Carry = diff > 0xffff
		mc.CC.Overflow = ((uint32(before) ^ uint32(v)) & (uint32(before) ^ diff) & 0x8000) != 0
		mc.loadD(uint16(diff))
		mc.setNZ16(mc.d())
		return nil

	case instructions.CMPD:
		v, err := mc.read16(addr)
		if err != nil {
			return err
		}
		before := mc.d()
		diff := uint32(before) - uint32(v)
		mc.CC.Carry = diff > 0xffff
		mc.CC.Overflow = ((uint32(before) ^ uint32(v)) & (uint32(before) ^ diff) & 0x8000) != 0
		mc.setNZ16(uint16(diff))
		return nil

	case instructions.LDX, instructions.LDY, instructions.LDU, instructions.LDS:
		v, err := mc.read16(addr)
		if err != nil {
			return err
		}
		mc.indexedStyleRegister(op).set(v)
		mc.CC.Overflow = false
		mc.setNZ16(v)
		return nil

	case instructions.STX, instructions.STY, instructions.STU, instructions.STS:
		v := mc.indexedStyleRegister(op).get()
		mc.CC.Overflow = false
		mc.setNZ16(v)
		return mc.write16(addr, v)

	case instructions.LEAX:
		mc.X.Load(addr)
		mc.CC.Zero = mc.X.IsZero()
		return nil

	case instructions.LEAY:
		mc.Y.Load(addr)
		mc.CC.Zero = mc.Y.IsZero()
		return nil

	case instructions.LEAU:
		mc.U.Load(addr)
		return nil

	case instructions.LEAS:
		mc.S.Load(addr)
		return nil

	case instructions.CMPX, instructions.CMPY, instructions.CMPU, instructions.CMPS:
		v, err := mc.read16(addr)
		if err != nil {
			return err
		}
		before := mc.indexedStyleRegister(op).get()
		diff := uint32(before) - uint32(v)
		mc.CC.Carry = diff > 0xffff
		mc.CC.Overflow = ((uint32(before) ^ uint32(v)) & (uint32(before) ^ diff) & 0x8000) != 0
		mc.setNZ16(uint16(diff))
		return nil
	}

	return fmt.Errorf("cpu: unhandled memory operator %s", op)
}

// indexedStyleRegister maps an X/Y/U/S flavoured load/store/compare operator
// to the relevant 16 bit register.
func (mc *CPU) indexedStyleRegister(op instructions.Operator) indexedRegister {
	switch op {
	case instructions.LDX, instructions.STX, instructions.CMPX:
		return indexedRegister{mc.X.Value, mc.X.Load}
	case instructions.LDY, instructions.STY, instructions.CMPY:
		return indexedRegister{mc.Y.Value, mc.Y.Load}
	case instructions.LDU, instructions.STU, instructions.CMPU:
		return indexedRegister{mc.U.Value, mc.U.Load}
	default:
		return indexedRegister{mc.S.Value, mc.S.Load}
	}
}
