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

package machine

// This file is the machine's half of the GDB remote stub's register
// access: debugger/gdb knows nothing about the CPU's actual field layout,
// it only ever asks for "the register block" or "register n" and gets
// back bytes already in GDB's wire order.
//
// Register indices 0-8 are CC A B DP X Y U S PC, matching the 14-byte 6809
// 'g' packet body. Indices 9-12 (MD E F V) are only meaningful when the
// machine's CPU part is a 6309; RegisterWidth still reports their width
// (1 1 1 2 bytes) so a caller building the 'g' packet's fixed-size
// placeholder for a 6809 target knows how many 'x' bytes to emit.
const (
	RegCC = iota
	RegA
	RegB
	RegDP
	RegX
	RegY
	RegU
	RegS
	RegPC
	RegMD
	RegE
	RegF
	RegV
	regCount
)

// RegisterWidth returns the width in bytes of register n, or 0 if n is out
// of range.
func RegisterWidth(n int) int {
	switch n {
	case RegCC, RegA, RegB, RegDP, RegMD, RegE, RegF:
		return 1
	case RegX, RegY, RegU, RegS, RegPC, RegV:
		return 2
	}
	return 0
}

// Has6309Registers reports whether this machine's CPU actually carries the
// MD/E/F/V extension registers.
func (m *Machine) Has6309Registers() bool { return m.CPU.Native6309 }

// Register returns the current value of register n, widened to uint16 (an
// 8-bit register's value occupies the low byte).
func (m *Machine) Register(n int) (value uint16, ok bool) {
	switch n {
	case RegCC:
		return uint16(m.CPU.CC.Value()), true
	case RegA:
		return uint16(m.CPU.A.Value()), true
	case RegB:
		return uint16(m.CPU.B.Value()), true
	case RegDP:
		return uint16(m.CPU.DP.Value()), true
	case RegX:
		return m.CPU.X.Value(), true
	case RegY:
		return m.CPU.Y.Value(), true
	case RegU:
		return m.CPU.U.Value(), true
	case RegS:
		return m.CPU.S.Value(), true
	case RegPC:
		return m.CPU.PC.Value(), true
	case RegMD:
		if !m.CPU.Native6309 {
			return 0, false
		}
		return uint16(m.CPU.MD), true
	case RegE:
		if !m.CPU.Native6309 {
			return 0, false
		}
		return uint16(m.CPU.E.Value()), true
	case RegF:
		if !m.CPU.Native6309 {
			return 0, false
		}
		return uint16(m.CPU.F.Value()), true
	case RegV:
		if !m.CPU.Native6309 {
			return 0, false
		}
		return m.CPU.V.Value(), true
	}
	return 0, false
}

// SetRegister writes register n. It is a no-op (ok=false) for a 6309-only
// register on a 6809 machine.
func (m *Machine) SetRegister(n int, value uint16) (ok bool) {
	switch n {
	case RegCC:
		m.CPU.CC.Load(uint8(value))
	case RegA:
		m.CPU.A.Load(uint8(value))
	case RegB:
		m.CPU.B.Load(uint8(value))
	case RegDP:
		m.CPU.DP.Load(uint8(value))
	case RegX:
		m.CPU.X.Load(value)
	case RegY:
		m.CPU.Y.Load(value)
	case RegU:
		m.CPU.U.Load(value)
	case RegS:
		m.CPU.S.Load(value)
	case RegPC:
		m.CPU.PC.Load(value)
	case RegMD:
		if !m.CPU.Native6309 {
			return false
		}
		m.CPU.MD = uint8(value)
	case RegE:
		if !m.CPU.Native6309 {
			return false
		}
		m.CPU.E.Load(uint8(value))
	case RegF:
		if !m.CPU.Native6309 {
			return false
		}
		m.CPU.F.Load(uint8(value))
	case RegV:
		if !m.CPU.Native6309 {
			return false
		}
		m.CPU.V.Load(value)
	default:
		return false
	}
	return true
}

// PC returns the current program counter, a convenience for callers (the
// GDB stub's breakpoint/step reporting) that would otherwise reach for
// Register(RegPC) every time.
func (m *Machine) PC() uint16 { return m.CPU.PC.Value() }

// Step executes exactly one instruction, honouring any fetch breakpoint at
// the current PC.
func (m *Machine) Step() error { return m.step() }

// SAMRegister returns the SAM's 16-bit shadow register, for the
// `qxroar.sam` GDB query.
func (m *Machine) SAMRegister() uint16 { return m.SAM.Register.Value }

// SetSAMRegister writes the SAM's shadow register directly (bypassing the
// normal per-bit strobe protocol) and re-derives the video mode divide
// ratios from it, for the `Qxroar.sam` GDB query.
func (m *Machine) SetSAMRegister(v uint16) {
	m.SAM.Register.Value = v
	m.SAM.SetVideoMode()
}
