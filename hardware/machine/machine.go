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

import (
	"github.com/dgn09/core/debugger"
	"github.com/dgn09/core/hardware/cartridge"
	"github.com/dgn09/core/hardware/cpu"
	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/memory/memorymap"
	"github.com/dgn09/core/hardware/pia"
	"github.com/dgn09/core/hardware/sam"
	"github.com/dgn09/core/hardware/scheduler"
	"github.com/dgn09/core/hardware/vdg"
)

// ticksPerScanline approximates one NTSC scanline (63.5us) in scheduler
// ticks at the slow MPU rate; it paces the VDG's Step, it does not feed
// back into the SAM's own cycle accounting.
const ticksPerScanline = 912

// Config selects the architecture, CPU part and ROM/RAM complement a
// Machine is built from.
type Config struct {
	Arch Arch

	// CPUModel overrides the architecture's default CPU part. An empty
	// value falls back to CPU6809, the only part every member of the
	// family actually carries.
	CPUModel CPUModel

	// RAMSizeK overrides the architecture's default RAM complement when
	// non-zero.
	RAMSizeK int

	// ROM0/ROM1 are the boot and cartridge-absent ROM images. A nil ROM0
	// leaves that window reading 0xff, which is enough to exercise the bus
	// without a BASIC image attached.
	ROM0 []uint8
	ROM1 []uint8

	// Cart, if non-nil, is plugged onto the cartridge bus in place of the
	// default cartridge.Null. Built by the caller (cmd/dgnemu) from
	// -cart/-cart-type/-mpi-slot/-mpi-load-cart.
	Cart cartridge.Cartridge
}

// Machine composes a CPU, SAM, pair of PIAs, VDG and cartridge bus into one
// addressable system and implements the bus.CPUBus/bus.DebuggerBus
// contracts the CPU and the GDB stub need.
type Machine struct {
	instance *instance.Instance
	policy   policy

	CPU        *cpu.CPU
	SAM        *sam.SAM
	PIA0, PIA1 *pia.PIA
	VDG        *vdg.VDG
	Cartridge  cartridge.Cartridge
	Scheduler  *scheduler.Scheduler
	Debugger   *debugger.Session

	ram  []uint8
	rom0 []uint8
	rom1 []uint8

	// lastFast records the rate the most recently dispatched Read/Write
	// cycle ran at, so the CPU's cycle callback (which carries no address)
	// knows how many ticks to advance the scheduler by.
	lastFast bool

	// scanlineEvent re-arms itself every ticksPerScanline ticks to drive
	// the VDG's Step.
	scanlineEvent *scheduler.Event
}

// New is the preferred method of initialisation for Machine.
func New(ins *instance.Instance, cfg Config) (*Machine, error) {
	p := policyFor(cfg.Arch)

	ramSizeK := p.ramSizeK
	if cfg.RAMSizeK > 0 {
		ramSizeK = cfg.RAMSizeK
	}

	cpuModel := cfg.CPUModel
	if cpuModel == "" {
		cpuModel = CPU6809
		if p.native6309 {
			cpuModel = CPU6309
		}
	}

	cart := cfg.Cart
	if cart == nil {
		cart = &cartridge.Null{}
	}

	m := &Machine{
		instance:  ins,
		policy:    p,
		SAM:       sam.NewSAM(ins),
		PIA0:      pia.NewPIA(ins, "PIA0"),
		PIA1:      pia.NewPIA(ins, "PIA1"),
		VDG:       vdg.NewVDG(ins),
		Cartridge: cart,
		Scheduler: scheduler.New(),
		Debugger:  debugger.NewSession(),
		ram:       make([]uint8, ramSizeK*1024),
		rom0:      cfg.ROM0,
		rom1:      cfg.ROM1,
	}

	m.CPU = cpu.NewCPU(ins, m)
	m.CPU.Native6309 = cpuModel == CPU6309
	m.CPU.SetCycleCallback(m.advance)
	m.VDG.Plumb(m.vdgFetch, m.vdgHSEdge, m.vdgFSEdge, nil)

	m.Reset(true)

	return m, nil
}

// Reset reinitialises every part. A hard reset reapplies the bootstrap RAM
// pattern real hardware powers up with (four bytes high, four bytes low,
// repeating every 512 bytes -- the result of the DRAM's refresh-counter
// power-on state, not anything BASIC relies on) and reloads PC from the
// reset vector; a soft reset leaves RAM contents alone.
func (m *Machine) Reset(hard bool) {
	if hard {
		for i := range m.ram {
			if i%8 < 4 {
				m.ram[i] = 0xff
			} else {
				m.ram[i] = 0x00
			}
		}
	}

	m.SAM.Register = sam.Register{}
	m.SAM.SetVideoMode()
	m.PIA0 = pia.NewPIA(m.instance, "PIA0")
	m.PIA1 = pia.NewPIA(m.instance, "PIA1")
	m.Cartridge.Reset(hard)
	m.Scheduler.Reset()

	m.CPU.Reset()
	if err := m.CPU.LoadPCIndirect(memorymap.VectorMemtop - 1); err != nil {
		m.CPU.LoadPC(0)
	}

	// the vector fetch runs through the bus and advances the scheduler; the
	// machine starts from tick zero
	m.Scheduler.Reset()
	m.scanlineEvent = m.Scheduler.Schedule(ticksPerScanline, m.stepScanline)
}

// stepScanline advances the VDG by one scanline and re-arms itself.
func (m *Machine) stepScanline() {
	m.VDG.Step()
	m.scanlineEvent = m.Scheduler.ScheduleAfter(ticksPerScanline, m.stepScanline)
}

// advance is the CPU's per-cycle bus delegate: it costs the cycle just
// serviced by Read/Write against the scheduler at the rate that cycle
// actually ran.
func (m *Machine) advance() error {
	ticks := m.SAM.CycleTicks(m.lastFast)
	m.Scheduler.Advance(uint64(ticks))
	return nil
}

// vdgFetch supplies the VDG with up to n contiguous display bytes from RAM,
// honouring the SAM's fast-mode address substitution quirk.
func (m *Machine) vdgFetch(n int) ([]uint8, int) {
	base, count := m.SAM.VDGBytes(n)
	data := make([]uint8, count)
	for i := 0; i < count; i++ {
		data[i] = m.ram[(base+uint16(i))&m.policy.ramMask]
	}
	return data, count
}

// vdgHSEdge runs at the end of every visible scanline.
func (m *Machine) vdgHSEdge() {
	m.SAM.HSEdge(0x000f)
}

// vdgFSEdge runs once per frame, at the start of vertical blank.
func (m *Machine) vdgFSEdge() {
	m.SAM.FSEdge()
}

// fastForAddress applies the SAM's address-dependent rate policy: when set,
// RAM cycles run fast and everything from $8000 up (ROM, cartridge, PIA)
// runs at the plain rate strobe, which is how real software gets the CPU
// running ahead of the VDG without outrunning paged ROM access times.
func (m *Machine) fastForAddress(address uint16) bool {
	if !m.SAM.Register.AddressDependentRate() {
		return m.SAM.EffectiveFast(false)
	}
	return m.SAM.EffectiveFast(address < memorymap.ROM0Origin)
}

// Read implements bus.CPUBus.
func (m *Machine) Read(address uint16) (uint8, error) {
	m.Debugger.CheckRead(address)
	m.SAM.NoteCPUAddress(address)
	m.lastFast = m.fastForAddress(address)

	p2 := memorymap.P2(address)
	r2 := memorymap.R2(address)

	seg, isSAMStrobe := m.SAM.Segment(address)

	var raw uint8 = 0xff
	switch {
	case isSAMStrobe:
		raw = 0xff
	case seg == memorymap.SegmentPIA0:
		raw = m.readPIA(m.PIA0, address)
	case seg == memorymap.SegmentPIA1:
		raw = m.readPIA(m.PIA1, address)
	case seg == memorymap.SegmentRAM:
		raw = m.ram[m.SAM.Translate(address)&m.policy.ramMask]
	case seg == memorymap.SegmentROM0:
		raw = romByte(m.rom0, address-memorymap.ROM0Origin)
	case seg == memorymap.SegmentROM1:
		raw = romByte(m.rom1, address-memorymap.CartridgeROMOrigin)
	}

	out, _ := m.Cartridge.Read(address, p2, r2, raw)
	return out, nil
}

// Write implements bus.CPUBus.
func (m *Machine) Write(address uint16, value uint8) error {
	m.Debugger.CheckWrite(address)
	m.SAM.NoteCPUAddress(address)
	m.lastFast = m.fastForAddress(address)

	p2 := memorymap.P2(address)
	r2 := memorymap.R2(address)

	seg, isSAMStrobe := m.SAM.Segment(address)
	if isSAMStrobe {
		m.SAM.WriteStrobe(address)
	}

	out := m.Cartridge.Write(address, p2, r2, value)

	switch seg {
	case memorymap.SegmentPIA0:
		m.writePIA(m.PIA0, address, out)
	case memorymap.SegmentPIA1:
		m.writePIA(m.PIA1, address, out)
	case memorymap.SegmentRAM:
		m.ram[m.SAM.Translate(address)&m.policy.ramMask] = out
	}

	return nil
}

// Peek implements bus.DebuggerBus: a side-effect-free read that never
// strobes the SAM, touches a PIA's edge logic, or perturbs the scheduler.
func (m *Machine) Peek(address uint16) (uint8, error) {
	seg, isSAMStrobe := m.SAM.Segment(address)
	switch {
	case isSAMStrobe:
		return uint8(m.SAM.Register.VideoMode()), nil
	case seg == memorymap.SegmentPIA0 || seg == memorymap.SegmentPIA1:
		p := m.PIA0
		if seg == memorymap.SegmentPIA1 {
			p = m.PIA1
		}
		reg := uint8(address) & 0x3
		h := &p.A
		if reg >= 2 {
			h = &p.B
		}
		// a data-register read through PIA.Read runs DataPreRead and clears
		// the IRQ flags; control and DDR reads have no side effects
		if reg&1 == 0 && p.Read(reg|1)&0x04 != 0 {
			return h.Value(), nil
		}
		return p.Read(reg), nil
	case seg == memorymap.SegmentRAM:
		return m.ram[m.SAM.Translate(address)&m.policy.ramMask], nil
	case seg == memorymap.SegmentROM0:
		return romByte(m.rom0, address-memorymap.ROM0Origin), nil
	case seg == memorymap.SegmentROM1:
		return romByte(m.rom1, address-memorymap.CartridgeROMOrigin), nil
	}
	return 0xff, nil
}

// Poke implements bus.DebuggerBus.
func (m *Machine) Poke(address uint16, value uint8) error {
	seg, _ := m.SAM.Segment(address)
	switch seg {
	case memorymap.SegmentRAM:
		m.ram[m.SAM.Translate(address)&m.policy.ramMask] = value
	case memorymap.SegmentPIA0:
		m.PIA0.Write(uint8(address), value)
	case memorymap.SegmentPIA1:
		m.PIA1.Write(uint8(address), value)
	}
	return nil
}

// readPIA narrows a full address down to the two-bit register select a PIA
// understands. relaxedPIADecode (the CoCo's cheaper address decode) skips
// nothing further here: both Dragon and CoCo select on bits 0-1 only, the
// difference is in which address lines the decoder gates on to assert
// chip-select at all, which Segment has already resolved.
func (m *Machine) readPIA(p *pia.PIA, address uint16) uint8 {
	return p.Read(uint8(address))
}

func (m *Machine) writePIA(p *pia.PIA, address uint16, value uint8) {
	p.Write(uint8(address), value)
}

func romByte(rom []uint8, offset uint16) uint8 {
	if len(rom) == 0 {
		return 0xff
	}
	return rom[int(offset)%len(rom)]
}
