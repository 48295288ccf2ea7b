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

// dispatchInterrupts is called at instruction boundaries (and continuously
// while parked in SYNC or CWAI) to apply the fixed priority order HALT > NMI
// > FIRQ > IRQ. It returns true if control was diverted into an interrupt
// handler and the caller should not proceed to a normal instruction fetch.
func (mc *CPU) dispatchInterrupts() (bool, error) {
	mc.Halted = mc.haltLine
	if mc.haltLine {
		return true, nil
	}

	// SYNC resumes at the next instruction the moment any request line is
	// asserted, whether or not that line is currently masked; only CWAI
	// waits specifically for an unmasked line to actually service it.
	if mc.waiting && !mc.waitIsCwai && (mc.nmiLine || mc.firqLine || mc.irqLine) {
		mc.waiting = false
	}

	wasCwai := mc.waiting && mc.waitIsCwai

	if mc.nmiLine && mc.nmiArmed {
		mc.nmiArmed = false
		mc.waiting = false
		if wasCwai {
			return true, mc.resumeFromCwai(vectorNMI)
		}
		return true, mc.enterInterrupt(vectorNMI, true)
	}

	if mc.firqLine && !mc.CC.FIRQMask {
		mc.waiting = false
		if wasCwai {
			return true, mc.resumeFromCwai(vectorFIRQ)
		}
		return true, mc.enterInterrupt(vectorFIRQ, false)
	}

	if mc.irqLine && !mc.CC.IRQMask {
		mc.waiting = false
		if wasCwai {
			return true, mc.resumeFromCwai(vectorIRQ)
		}
		return true, mc.enterInterrupt(vectorIRQ, true)
	}

	return false, nil
}

// resumeFromCwai vectors to an interrupt handler without stacking state a
// second time: CWAI already pushed the full register set before parking.
func (mc *CPU) resumeFromCwai(vector uint16) error {
	mc.waitIsCwai = false
	mc.CC.FIRQMask = true
	if vector != vectorFIRQ {
		mc.CC.IRQMask = true
	}
	return mc.LoadPCIndirect(vector)
}

// pushFullState stacks PC, U, Y, X, DP, B, A and CC in that order, the
// sequence used by NMI, IRQ and SWI/SWI2/SWI3. CC is pushed last, with its
// Entire bit set, so it ends up at the lowest address (closest to S).
func (mc *CPU) pushFullState() error {
	mc.CC.Entire = true
	if err := mc.push16S(mc.PC.Value()); err != nil {
		return err
	}
	if err := mc.push16S(mc.U.Value()); err != nil {
		return err
	}
	if err := mc.push16S(mc.Y.Value()); err != nil {
		return err
	}
	if err := mc.push16S(mc.X.Value()); err != nil {
		return err
	}
	if err := mc.pushS(mc.DP.Value()); err != nil {
		return err
	}
	if err := mc.pushS(mc.B.Value()); err != nil {
		return err
	}
	if err := mc.pushS(mc.A.Value()); err != nil {
		return err
	}
	return mc.pushS(mc.CC.Value())
}

// softwareInterrupt implements SWI/SWI2/SWI3: state is always stacked in
// full, unconditionally, regardless of the current interrupt masks. Only
// SWI itself (vectorSWI) sets FIRQMask and IRQMask on entry; SWI2 and SWI3
// leave the mask bits as the program left them.
func (mc *CPU) softwareInterrupt(vector uint16) error {
	if err := mc.pushFullState(); err != nil {
		return err
	}
	if vector == vectorSWI {
		mc.CC.FIRQMask = true
		mc.CC.IRQMask = true
	}
	return mc.LoadPCIndirect(vector)
}

// enterInterrupt stacks CPU state and vectors to the handler. full selects
// between the full eight register stack used by NMI, IRQ and SWI (E=1) and
// the two register PC/CC stack used by FIRQ (E=0).
func (mc *CPU) enterInterrupt(vector uint16, full bool) error {
	if full {
		if err := mc.pushFullState(); err != nil {
			return err
		}
	} else {
		mc.CC.Entire = false
		if err := mc.push16S(mc.PC.Value()); err != nil {
			return err
		}
		if err := mc.pushS(mc.CC.Value()); err != nil {
			return err
		}
	}

	mc.CC.FIRQMask = true
	if vector != vectorFIRQ {
		mc.CC.IRQMask = true
	}

	return mc.LoadPCIndirect(vector)
}

// returnFromInterrupt implements RTI: CC is always restored first, and if
// its Entire bit is set the remaining seven registers are restored too.
func (mc *CPU) returnFromInterrupt() (int, error) {
	ccValue, err := mc.pullS()
	if err != nil {
		return 0, err
	}
	mc.CC.Load(ccValue)

	if !mc.CC.Entire {
		pc, err := mc.pull16S()
		if err != nil {
			return 0, err
		}
		mc.PC.Load(pc)
		return 6, nil
	}

	a, err := mc.pullS()
	if err != nil {
		return 0, err
	}
	mc.A.Load(a)

	b, err := mc.pullS()
	if err != nil {
		return 0, err
	}
	mc.B.Load(b)

	dp, err := mc.pullS()
	if err != nil {
		return 0, err
	}
	mc.DP.Load(dp)

	x, err := mc.pull16S()
	if err != nil {
		return 0, err
	}
	mc.X.Load(x)

	y, err := mc.pull16S()
	if err != nil {
		return 0, err
	}
	mc.Y.Load(y)

	u, err := mc.pull16S()
	if err != nil {
		return 0, err
	}
	mc.U.Load(u)

	pc, err := mc.pull16S()
	if err != nil {
		return 0, err
	}
	mc.PC.Load(pc)

	return 15, nil
}
