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
)

// executeImplied handles every inherent instruction: those that name no
// operand bytes at all.
func (mc *CPU) executeImplied(defn *instructions.Definition) error {
	op := defn.Operator

	switch op {
	case instructions.NOP, instructions.NOPA, instructions.NOPB, instructions.RESET:
		return nil

	case instructions.SYNC:
		mc.waiting = true
		mc.waitIsCwai = false
		return nil

	case instructions.DAA:
		return mc.decimalAdjust()

	case instructions.SEX:
		if mc.B.Value()&0x80 != 0 {
			mc.A.Load(0xff)
		} else {
			mc.A.Load(0)
		}
		mc.setNZ16(mc.d())
		return nil

	case instructions.ABX:
		mc.X.Load(mc.X.Value() + uint16(mc.B.Value()))
		return nil

	case instructions.RTS:
		pc, err := mc.pull16S()
		if err != nil {
			return err
		}
		mc.PC.Load(pc)
		return nil

	case instructions.RTI:
		cycles, err := mc.returnFromInterrupt()
		if err != nil {
			return err
		}
		mc.LastResult.Cycles = cycles
		return nil

	case instructions.MUL:
		product := uint16(mc.A.Value()) * uint16(mc.B.Value())
		mc.loadD(product)
		mc.CC.Carry = mc.B.Value()&0x80 != 0
		mc.CC.Zero = product == 0
		return nil

	case instructions.SWI:
		return mc.softwareInterrupt(vectorSWI)
	case instructions.SWI2:
		return mc.softwareInterrupt(vectorSWI2)
	case instructions.SWI3:
		return mc.softwareInterrupt(vectorSWI3)

	case instructions.NEGA, instructions.COMA, instructions.LSRA, instructions.RORA,
		instructions.ASRA, instructions.ASLA, instructions.ROLA, instructions.DECA,
		instructions.INCA, instructions.TSTA, instructions.CLRA:
		mc.executeModify8(op, &mc.A)
		return nil

	case instructions.NEGB, instructions.COMB, instructions.LSRB, instructions.RORB,
		instructions.ASRB, instructions.ASLB, instructions.ROLB, instructions.DECB,
		instructions.INCB, instructions.TSTB, instructions.CLRB:
		mc.executeModify8(op, &mc.B)
		return nil
	}

	return fmt.Errorf("cpu: unhandled implied operator %s", op)
}

// decimalAdjust implements DAA, adjusting A after a BCD addition using the
// half carry and carry flags left by the preceding ADDA/ADCA.
func (mc *CPU) decimalAdjust() error {
	v := mc.A.Value()
	correction := uint16(0)
	carry := mc.CC.Carry

	lowNibble := v & 0x0f
	highNibble := v >> 4

	if mc.CC.HalfCarry || lowNibble > 9 {
		correction |= 0x06
	}
	if carry || highNibble > 9 || (highNibble == 9 && lowNibble > 9) {
		correction |= 0x60
	}

	sum := uint16(v) + correction
	mc.CC.Carry = carry || sum > 0xff
	mc.A.Load(uint8(sum))
	mc.setNZ8(mc.A.Value())
	return nil
}

// registerByCode decodes the 4 bit register selector used by EXG and TFR.
func (mc *CPU) registerByCode(code uint8) (get func() uint16, set func(uint16), width int) {
	switch code & 0x0f {
	case 0x0:
		return mc.d, mc.loadD, 16
	case 0x1:
		return mc.X.Value, mc.X.Load, 16
	case 0x2:
		return mc.Y.Value, mc.Y.Load, 16
	case 0x3:
		return mc.U.Value, mc.U.Load, 16
	case 0x4:
		return mc.S.Value, mc.S.Load, 16
	case 0x5:
		return mc.PC.Value, mc.PC.Load, 16
	case 0x8:
		return func() uint16 { return uint16(mc.A.Value()) }, func(v uint16) { mc.A.Load(uint8(v)) }, 8
	case 0x9:
		return func() uint16 { return uint16(mc.B.Value()) }, func(v uint16) { mc.B.Load(uint8(v)) }, 8
	case 0xa:
		return func() uint16 { return uint16(mc.CC.Value()) }, func(v uint16) { mc.CC.Load(uint8(v)) }, 8
	case 0xb:
		return func() uint16 { return uint16(mc.DP.Value()) }, func(v uint16) { mc.DP.Load(uint8(v)) }, 8
	default:
		// 0x6, 0x7 (undefined on the 6809) and 0xc-0xf (6309 E/F/V/W,
		// reachable only when Native6309 is set) fall back to a
		// discarded scratch value so decode always terminates
		var scratch uint16
		return func() uint16 { return scratch }, func(v uint16) { scratch = v }, 16
	}
}

// executeImmediate handles instructions whose operand follows the opcode
// directly in the instruction stream: true immediate operands, the
// PSHS/PULS/PSHU/PULU register mask, and the EXG/TFR register postbyte.
func (mc *CPU) executeImmediate(defn *instructions.Definition) error {
	op := defn.Operator

	switch op {
	case instructions.ORCC:
		v, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		mc.CC.Load(mc.CC.Value() | v)
		return nil

	case instructions.ANDCC:
		v, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		mc.CC.Load(mc.CC.Value() & v)
		return nil

	case instructions.CWAI:
		v, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		mc.CC.Load(mc.CC.Value() & v)
		if err := mc.pushFullState(); err != nil {
			return err
		}
		mc.waiting = true
		mc.waitIsCwai = true
		return nil

	case instructions.EXG:
		postbyte, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		return mc.exchange(postbyte)

	case instructions.TFR:
		postbyte, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		return mc.transfer(postbyte)

	case instructions.PSHS:
		mask, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		return mc.pushRegisters(mask, true)

	case instructions.PULS:
		mask, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		return mc.pullRegisters(mask, true)

	case instructions.PSHU:
		mask, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		return mc.pushRegisters(mask, false)

	case instructions.PULU:
		mask, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		return mc.pullRegisters(mask, false)

	case instructions.LDA, instructions.SUBA, instructions.SBCA, instructions.CMPA,
		instructions.ADDA, instructions.ADCA, instructions.ANDA, instructions.ORAA,
		instructions.EORA, instructions.BITA:
		v, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		mc.alu8(op, &mc.A, v)
		return nil

	case instructions.LDB, instructions.SUBB, instructions.SBCB, instructions.CMPB,
		instructions.ADDB, instructions.ADCB, instructions.ANDB, instructions.ORB,
		instructions.EORB, instructions.BITB:
		v, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		mc.alu8(op, &mc.B, v)
		return nil

	case instructions.LDD, instructions.ADDD, instructions.SUBD, instructions.CMPD:
		v, err := mc.fetchPC16()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		return mc.immediate16(op, v)

	case instructions.LDX, instructions.CMPX:
		v, err := mc.fetchPC16()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		return mc.immediate16SStyle(op, indexedRegister{mc.X.Value, mc.X.Load}, v)

	case instructions.LDY, instructions.CMPY:
		v, err := mc.fetchPC16()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		return mc.immediate16SStyle(op, indexedRegister{mc.Y.Value, mc.Y.Load}, v)

	case instructions.LDU, instructions.CMPU:
		v, err := mc.fetchPC16()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		return mc.immediate16SStyle(op, indexedRegister{mc.U.Value, mc.U.Load}, v)

	case instructions.LDS, instructions.CMPS:
		v, err := mc.fetchPC16()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		return mc.immediate16SStyle(op, indexedRegister{mc.S.Value, mc.S.Load}, v)
	}

	return fmt.Errorf("cpu: unhandled immediate operator %s", op)
}

func (mc *CPU) immediate16(op instructions.Operator, v uint16) error {
	switch op {
	case instructions.LDD:
		mc.loadD(v)
		mc.CC.Overflow = false
		mc.setNZ16(v)
	case instructions.ADDD:
		sum := uint32(mc.d()) + uint32(v)
		mc.CC.Carry = sum > 0xffff
		mc.CC.Overflow = ((uint32(mc.d()) ^ sum) & (uint32(v) ^ sum) & 0x8000) != 0
		mc.loadD(uint16(sum))
		mc.setNZ16(mc.d())
	case instructions.SUBD:
		before := mc.d()
		diff := uint32(before) - uint32(v)
		mc.CC.Carry = diff > 0xffff
		mc.CC.Overflow = ((uint32(before) ^ uint32(v)) & (uint32(before) ^ diff) & 0x8000) != 0
		mc.loadD(uint16(diff))
		mc.setNZ16(mc.d())
	case instructions.CMPD:
		before := mc.d()
		diff := uint32(before) - uint32(v)
		mc.CC.Carry = diff > 0xffff
		mc.CC.Overflow = ((uint32(before) ^ uint32(v)) & (uint32(before) ^ diff) & 0x8000) != 0
		mc.setNZ16(uint16(diff))
	}
	return nil
}

// immediate16SStyle applies LDx/CMPx against a 16 bit register addressed
// through the generic get/set handle shared with indexed addressing.
func (mc *CPU) immediate16SStyle(op instructions.Operator, reg indexedRegister, v uint16) error {
	switch op {
	case instructions.LDY, instructions.LDU, instructions.LDS:
		reg.set(v)
		mc.CC.Overflow = false
		mc.setNZ16(v)
	case instructions.CMPY, instructions.CMPU, instructions.CMPS:
		before := reg.get()
		diff := uint32(before) - uint32(v)
		mc.CC.Carry = diff > 0xffff
		mc.CC.Overflow = ((uint32(before) ^ uint32(v)) & (uint32(before) ^ diff) & 0x8000) != 0
		mc.setNZ16(uint16(diff))
	}
	return nil
}

// exchange implements EXG: the two nibbles of postbyte each select a
// register, and the two registers swap contents. Registers of mismatched
// width still exchange; the 8 bit register's missing half is treated as
// all-ones, matching the documented (if rarely used) 6809 behaviour.
func (mc *CPU) exchange(postbyte uint8) error {
	getA, setA, widthA := mc.registerByCode(postbyte >> 4)
	getB, setB, widthB := mc.registerByCode(postbyte & 0x0f)

	va, vb := getA(), getB()
	if widthA == 8 {
		va |= 0xff00
	}
	if widthB == 8 {
		vb |= 0xff00
	}

	setA(vb)
	setB(va)
	return nil
}

// transfer implements TFR: the source register (high nibble) is copied into
// the destination register (low nibble).
func (mc *CPU) transfer(postbyte uint8) error {
	getSrc, _, _ := mc.registerByCode(postbyte >> 4)
	_, setDst, _ := mc.registerByCode(postbyte & 0x0f)
	setDst(getSrc())
	return nil
}

// pushRegisters implements PSHS/PSHU. The mask's bits, high to low, are
// PC U/S Y X DP B A CC; when pushing to S the U register itself is
// eligible (and vice versa for PSHU and the S register).
func (mc *CPU) pushRegisters(mask uint8, toS bool) error {
	push := mc.pushS
	if !toS {
		push = mc.pushU
	}
	push16 := func(v uint16) error {
		if err := push(uint8(v)); err != nil {
			return err
		}
		mc.LastResult.Cycles += 2
		return push(uint8(v >> 8))
	}
	push8 := func(v uint8) error {
		mc.LastResult.Cycles++
		return push(v)
	}

	if mask&0x80 != 0 {
		if err := push16(mc.PC.Value()); err != nil {
			return err
		}
	}
	if mask&0x40 != 0 {
		if toS {
			if err := push16(mc.U.Value()); err != nil {
				return err
			}
		} else {
			if err := push16(mc.S.Value()); err != nil {
				return err
			}
		}
	}
	if mask&0x20 != 0 {
		if err := push16(mc.Y.Value()); err != nil {
			return err
		}
	}
	if mask&0x10 != 0 {
		if err := push16(mc.X.Value()); err != nil {
			return err
		}
	}
	if mask&0x08 != 0 {
		if err := push8(mc.DP.Value()); err != nil {
			return err
		}
	}
	if mask&0x04 != 0 {
		if err := push8(mc.B.Value()); err != nil {
			return err
		}
	}
	if mask&0x02 != 0 {
		if err := push8(mc.A.Value()); err != nil {
			return err
		}
	}
	if mask&0x01 != 0 {
		if err := push8(mc.CC.Value()); err != nil {
			return err
		}
	}
	return nil
}

// pullRegisters implements PULS/PULU, restoring registers in the reverse
// order to pushRegisters.
func (mc *CPU) pullRegisters(mask uint8, fromS bool) error {
	pull := mc.pullS
	if !fromS {
		pull = mc.pullU
	}
	pull16 := func() (uint16, error) {
		hi, err := pull()
		if err != nil {
			return 0, err
		}
		lo, err := pull()
		if err != nil {
			return 0, err
		}
		mc.LastResult.Cycles += 2
		return uint16(hi)<<8 | uint16(lo), nil
	}
	pull8 := func() (uint8, error) {
		v, err := pull()
		if err != nil {
			return 0, err
		}
		mc.LastResult.Cycles++
		return v, nil
	}

	if mask&0x01 != 0 {
		v, err := pull8()
		if err != nil {
			return err
		}
		mc.CC.Load(v)
	}
	if mask&0x02 != 0 {
		v, err := pull8()
		if err != nil {
			return err
		}
		mc.A.Load(v)
	}
	if mask&0x04 != 0 {
		v, err := pull8()
		if err != nil {
			return err
		}
		mc.B.Load(v)
	}
	if mask&0x08 != 0 {
		v, err := pull8()
		if err != nil {
			return err
		}
		mc.DP.Load(v)
	}
	if mask&0x10 != 0 {
		v, err := pull16()
		if err != nil {
			return err
		}
		mc.X.Load(v)
	}
	if mask&0x20 != 0 {
		v, err := pull16()
		if err != nil {
			return err
		}
		mc.Y.Load(v)
	}
	if mask&0x40 != 0 {
		v, err := pull16()
		if err != nil {
			return err
		}
		if fromS {
			mc.U.Load(v)
		} else {
			mc.S.Load(v)
		}
	}
	if mask&0x80 != 0 {
		v, err := pull16()
		if err != nil {
			return err
		}
		mc.PC.Load(v)
	}
	return nil
}

// executeRelative handles short and long branches, BSR and LBSR.
func (mc *CPU) executeRelative(defn *instructions.Definition) error {
	op := defn.Operator

	long := defn.Bytes >= 3
	var displacement int32
	if long {
		v, err := mc.fetchPC16()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		displacement = int32(int16(v))
	} else {
		v, err := mc.fetchPC8()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint32(v)
		displacement = int32(int8(v))
	}

	if op == instructions.BSR || op == instructions.LBSR {
		if err := mc.push16S(mc.PC.Value()); err != nil {
			return err
		}
		mc.PC.Load(uint16(int32(mc.PC.Value()) + displacement))
		return nil
	}

	taken := mc.branchCondition(op)
	mc.LastResult.BranchSuccess = taken
	if taken {
		mc.PC.Load(uint16(int32(mc.PC.Value()) + displacement))
	} else if long {
		// untaken long conditional branches still cost a cycle less than
		// the taken path; Defn.Cycles already reflects the taken cost
		mc.LastResult.Cycles--
	}
	return nil
}

// branchCondition evaluates the condition coded by a branch operator
// against the current CC flags.
func (mc *CPU) branchCondition(op instructions.Operator) bool {
	switch op {
	case instructions.BRA, instructions.LBRA:
		return true
	case instructions.BRN, instructions.LBRN:
		return false
	case instructions.BHI, instructions.LBHI:
		return !mc.CC.Carry && !mc.CC.Zero
	case instructions.BLS, instructions.LBLS:
		return mc.CC.Carry || mc.CC.Zero
	case instructions.BHS, instructions.LBHS:
		return !mc.CC.Carry
	case instructions.BLO, instructions.LBLO:
		return mc.CC.Carry
	case instructions.BNE, instructions.LBNE:
		return !mc.CC.Zero
	case instructions.BEQ, instructions.LBEQ:
		return mc.CC.Zero
	case instructions.BVC, instructions.LBVC:
		return !mc.CC.Overflow
	case instructions.BVS, instructions.LBVS:
		return mc.CC.Overflow
	case instructions.BPL, instructions.LBPL:
		return !mc.CC.Sign
	case instructions.BMI, instructions.LBMI:
		return mc.CC.Sign
	case instructions.BGE, instructions.LBGE:
		return mc.CC.Sign == mc.CC.Overflow
	case instructions.BLT, instructions.LBLT:
		return mc.CC.Sign != mc.CC.Overflow
	case instructions.BGT, instructions.LBGT:
		return !(mc.CC.Sign != mc.CC.Overflow) && !mc.CC.Zero
	case instructions.BLE, instructions.LBLE:
		return (mc.CC.Sign != mc.CC.Overflow) || mc.CC.Zero
	}
	return false
}
