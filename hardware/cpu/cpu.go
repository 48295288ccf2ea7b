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

	"github.com/dgn09/core/hardware/cpu/execution"
	"github.com/dgn09/core/hardware/cpu/registers"
	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/memory/bus"
)

const (
	vectorSWI3 = 0xfff2
	vectorSWI2 = 0xfff4
	vectorFIRQ = 0xfff6
	vectorIRQ  = 0xfff8
	vectorSWI  = 0xfffa
	vectorNMI  = 0xfffc
	vectorReset = 0xfffe
)

// CPU implements the 6809/6309 as found in the Dragon and Tandy CoCo family
// of home computers. Register logic is implemented by the Register types in
// the registers sub-package; the instruction table is supplied by the
// instructions sub-package.
type CPU struct {
	instance *instance.Instance

	PC registers.ProgramCounter
	A  registers.Register
	B  registers.Register
	DP registers.Register
	X  registers.Register16
	Y  registers.Register16
	U  registers.StackPointer
	S  registers.StackPointer
	CC registers.StatusRegister

	// 6309 extension registers. Present regardless of Native6309 so that a
	// machine can be reconfigured between 6809 and 6309 CPUs without
	// reallocating the CPU, but only meaningful when Native6309 is true.
	E registers.Register
	F registers.Register
	V registers.Register16
	W registers.Register16
	MD uint8

	// Native6309 selects 6309 semantics (extra registers, MD flags). The
	// machine composer sets this once at construction time according to the
	// model being emulated.
	Native6309 bool

	mem bus.CPUBus

	// cycleCallback is invoked once per bus cycle, after the access has been
	// applied to mem, so that the SAM can advance the event scheduler and
	// video address counters in lock step with the CPU.
	cycleCallback func() error

	// LastResult records detail about the most recently executed
	// instruction, used by the GDB stub and any tracing hook.
	LastResult execution.Result

	// level-sensitive request lines, driven by the machine wiring (PIAs,
	// cartridge bus, Multi-Pak Interface) via RequestHalt/RequestNMI/etc.
	haltLine bool
	nmiLine  bool
	nmiArmed bool
	firqLine bool
	irqLine  bool

	// waiting is true while the CPU is parked in SYNC or CWAI, not fetching
	// new instructions, merely polling the request lines every cycle.
	waiting    bool
	waitIsCwai bool

	// Halted reflects the current state of the halt line as last sampled;
	// exported so the GDB stub and machine can report it without reaching
	// into cpu internals.
	Halted bool

	// InstructionHook, when set, is called just before the opcode fetch of
	// every instruction (and before each poll while parked in SYNC/CWAI).
	// Returning false requests the CPU stop before fetching, leaving PC
	// unchanged; used by -trace and by a debugger's single-step front end.
	InstructionHook func(mc *CPU) bool

	// InstructionPostHook is called after an instruction retires (or after
	// an interrupt is dispatched, or a parked poll). Returning false
	// requests the CPU stop before the next instruction begins.
	InstructionPostHook func(mc *CPU) bool

	// StopRequested is set when either hook returns false; ExecuteInstruction
	// does not itself consult a "running" flag the way the source's state
	// machine field does; the machine's run loop checks StopRequested.
	StopRequested bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(instance *instance.Instance, mem bus.CPUBus) *CPU {
	mc := &CPU{
		instance: instance,
		mem:      mem,
	}
	mc.Reset()
	return mc
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb a new CPUBus into the CPU, for use after a Snapshot restore.
func (mc *CPU) Plumb(mem bus.CPUBus) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s DP=%s X=%s Y=%s U=%s S=%s CC=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A, mc.B.Label(), mc.B,
		mc.DP, mc.X, mc.Y, mc.U, mc.S, mc.CC)
}

// Reset reinitialises every register and interrupt line to their documented
// power-on/reset state. It does not itself fetch the reset vector; the
// machine is expected to follow Reset with LoadPCIndirect(vectorReset) once
// RAM and ROM are mapped.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()

	mc.A.Load(0)
	mc.B.Load(0)
	mc.DP.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.U.Load(0)
	mc.S.Load(0)
	mc.PC.Load(0)
	mc.CC.Reset()

	mc.E.Load(0)
	mc.F.Load(0)
	mc.V.Load(0)
	mc.W.Load(0)
	mc.MD = 0

	mc.haltLine = false
	mc.nmiLine = false
	mc.nmiArmed = false
	mc.firqLine = false
	mc.irqLine = false
	mc.waiting = false
	mc.waitIsCwai = false
	mc.Halted = false
}

// LoadPCIndirect loads the contents of the 16 bit address found at
// indirectAddress into the PC. Used to vector through the reset/NMI/IRQ/FIRQ
// table at $FFFx.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) error {
	hi, err := mc.read8(indirectAddress)
	if err != nil {
		return err
	}
	lo, err := mc.read8(indirectAddress + 1)
	if err != nil {
		return err
	}
	mc.PC.Load(uint16(hi)<<8 | uint16(lo))
	return nil
}

// LoadPC loads directAddress into the PC directly, bypassing any vector
// fetch. Used by the GDB stub's `P pc` register write and by JMP.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

// RequestHalt sets the level of the HALT line. While asserted the CPU
// tri-states its bus and performs no further cycles until released.
func (mc *CPU) RequestHalt(asserted bool) { mc.haltLine = asserted }

// RequestNMI sets the level of the non-maskable interrupt line. NMI is
// edge triggered and only arms after the stack pointer has first been
// loaded following reset, matching real 6809 behaviour.
func (mc *CPU) RequestNMI(asserted bool) { mc.nmiLine = asserted }

// RequestFIRQ sets the level of the fast interrupt request line.
func (mc *CPU) RequestFIRQ(asserted bool) { mc.firqLine = asserted }

// RequestIRQ sets the level of the interrupt request line.
func (mc *CPU) RequestIRQ(asserted bool) { mc.irqLine = asserted }

// read8 and write8 are the CPU's only point of contact with the bus. Cycle
// counting is not driven from here: Definition.Cycles already gives the
// total bus-cycle cost of an instruction's fixed part (including the dummy
// cycles real 6809 hardware spends with no corresponding Read/Write), and
// execute() seeds LastResult.Cycles with it; only the genuinely variable
// cases (indexed submodes, PSHS/PULS register lists, interrupt entry, CWAI
// /SYNC/RTI) add to it explicitly. cycleCallback, on the other hand, fires
// on every single access so the SAM can step the event scheduler and video
// address generator once per real bus cycle.
func (mc *CPU) read8(address uint16) (uint8, error) {
	val, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}
	if mc.cycleCallback != nil {
		if err := mc.cycleCallback(); err != nil {
			return 0, err
		}
	}
	return val, nil
}

func (mc *CPU) write8(address uint16, value uint8) error {
	if err := mc.mem.Write(address, value); err != nil {
		return err
	}
	if mc.cycleCallback != nil {
		if err := mc.cycleCallback(); err != nil {
			return err
		}
	}
	return nil
}

func (mc *CPU) read16(address uint16) (uint16, error) {
	hi, err := mc.read8(address)
	if err != nil {
		return 0, err
	}
	lo, err := mc.read8(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (mc *CPU) write16(address uint16, value uint16) error {
	if err := mc.write8(address, uint8(value>>8)); err != nil {
		return err
	}
	return mc.write8(address+1, uint8(value))
}

func (mc *CPU) fetchPC8() (uint8, error) {
	v, err := mc.read8(mc.PC.Value())
	if err != nil {
		return 0, err
	}
	mc.PC.Increment(1)
	mc.LastResult.ByteCount++
	return v, nil
}

func (mc *CPU) fetchPC16() (uint16, error) {
	hi, err := mc.fetchPC8()
	if err != nil {
		return 0, err
	}
	lo, err := mc.fetchPC8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// pushS pushes a byte to the hardware stack (S) and counts the cycle.
func (mc *CPU) pushS(v uint8) error { return mc.write8(mc.S.Push(), v) }

func (mc *CPU) pullS() (uint8, error) { return mc.read8(mc.S.Pull()) }

func (mc *CPU) pushU(v uint8) error { return mc.write8(mc.U.Push(), v) }

func (mc *CPU) pullU() (uint8, error) { return mc.read8(mc.U.Pull()) }

func (mc *CPU) push16S(v uint16) error {
	if err := mc.pushS(uint8(v)); err != nil {
		return err
	}
	return mc.pushS(uint8(v >> 8))
}

func (mc *CPU) pull16S() (uint16, error) {
	// Push order is low byte then high byte, so the high byte ends up
	// closest to the top of the (downward growing) stack and is the first
	// one popped back off.
	hi, err := mc.pullS()
	if err != nil {
		return 0, err
	}
	lo, err := mc.pullS()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
