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

package cartridge

import (
	"github.com/dgn09/core/cartridgeloader"
	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/memory/memorymap"
	"github.com/dgn09/core/logger"
)

const numSlots = 4

// MPI is the Multi-Pak Interface: a Cartridge that is itself a tree of up
// to four slot Cartridges. Only one MPI may be present in a given system;
// MPIs are not chained.
type MPI struct {
	instance *instance.Instance

	slots [numSlots]Cartridge

	// ctsRoute/p2Route are the low two bits of each nibble last written to
	// the routing register: ctsRoute selects which slot answers R2,
	// p2Route which slot answers P2.
	ctsRoute int
	p2Route  int

	// race selects RACE-cage routing semantics: a single write to $FEFF
	// sets both ctsRoute and p2Route from the same nibble, instead of the
	// Tandy MPI's $FF7F write setting them from (D>>4)&3 and D&3
	// respectively.
	race bool
}

// NewMPI is the preferred method of initialisation for MPI. Each of the
// four slots starts out holding Null{} until PlugIn installs a cartridge.
func NewMPI(instance *instance.Instance) *MPI {
	m := &MPI{instance: instance}
	for i := range m.slots {
		m.slots[i] = Null{}
	}
	return m
}

// SetRACE selects RACE-cage addressing ($FEFF, single nibble) instead of
// the default Tandy MPI addressing ($FF7F, two nibbles).
func (m *MPI) SetRACE(race bool) { m.race = race }

// PlugIn installs cart into slot (0-3), replacing whatever was there.
func (m *MPI) PlugIn(slot int, cart Cartridge) {
	if slot < 0 || slot >= numSlots {
		return
	}
	if cart == nil {
		cart = Null{}
	}
	m.slots[slot] = cart
}

// Slot returns the cartridge currently installed in slot, or nil if slot
// is out of range.
func (m *MPI) Slot(slot int) Cartridge {
	if slot < 0 || slot >= numSlots {
		return nil
	}
	return m.slots[slot]
}

func (m *MPI) writeRoute(d uint8) {
	if m.race {
		m.ctsRoute = int(d & 0x3)
		m.p2Route = int(d & 0x3)
	} else {
		m.ctsRoute = int((d >> 4) & 0x3)
		m.p2Route = int(d & 0x3)
	}
	logger.Logf(logger.Allow, "mpi", "routed R2->slot%d P2->slot%d", m.ctsRoute, m.p2Route)
}

func (m *MPI) isRouteAddress(a uint16) bool {
	if m.race {
		return a == memorymap.MPIRouteRACE
	}
	return a == memorymap.MPIRoute
}

// Read implements the Cartridge interface. R2 cycles are routed
// exclusively to the CTS slot, P2 cycles exclusively to the SCS (P2) slot;
// cycles asserting neither are broadcast to every slot for snooping.
func (m *MPI) Read(a uint16, p2, r2 bool, d uint8) (uint8, bool) {
	if r2 {
		return m.slots[m.ctsRoute].Read(a, p2, r2, d)
	}
	if p2 {
		return m.slots[m.p2Route].Read(a, p2, r2, d)
	}

	out := d
	extmem := false
	for _, s := range m.slots {
		v, e := s.Read(a, p2, r2, d)
		out = v
		extmem = extmem || e
	}
	return out, extmem
}

// Write implements the Cartridge interface, including the routing register
// write at $FF7F/$FEFF.
func (m *MPI) Write(a uint16, p2, r2 bool, d uint8) uint8 {
	if m.isRouteAddress(a) {
		m.writeRoute(d)
		return d
	}

	if r2 {
		return m.slots[m.ctsRoute].Write(a, p2, r2, d)
	}
	if p2 {
		return m.slots[m.p2Route].Write(a, p2, r2, d)
	}

	out := d
	for _, s := range m.slots {
		out = s.Write(a, p2, r2, d)
	}
	return out
}

// Reset propagates a reset to every slot.
func (m *MPI) Reset(hard bool) {
	for _, s := range m.slots {
		s.Reset(hard)
	}
}

// Attach/Detach are not meaningful for the MPI itself: it has no image of
// its own, only the slots plugged into it.
func (m *MPI) Attach(ld cartridgeloader.Loader) error { return nil }
func (m *MPI) Detach()                                {}

// FIRQ is routed only from the current CTS (R2) slot.
func (m *MPI) FIRQ() bool { return m.slots[m.ctsRoute].FIRQ() }

// NMI is the OR of all four slots.
func (m *MPI) NMI() bool {
	for _, s := range m.slots {
		if s.NMI() {
			return true
		}
	}
	return false
}

// Halt is the OR of all four slots.
func (m *MPI) Halt() bool {
	for _, s := range m.slots {
		if s.Halt() {
			return true
		}
	}
	return false
}

// Interfaces aggregates every slot's named interfaces.
func (m *MPI) Interfaces() []string {
	var out []string
	for _, s := range m.slots {
		out = append(out, s.Interfaces()...)
	}
	return out
}
