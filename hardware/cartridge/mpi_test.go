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

package cartridge_test

import (
	"testing"

	"github.com/dgn09/core/cartridgeloader"
	"github.com/dgn09/core/hardware/cartridge"
	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/memory/memorymap"
)

// taggedCart returns a fixed byte on read, tagged with its slot number, so
// routing can be observed without a real ROM image.
type taggedCart struct {
	id   uint8
	firq bool
}

func (c *taggedCart) Read(a uint16, p2, r2 bool, d uint8) (uint8, bool) { return c.id, true }
func (c *taggedCart) Write(a uint16, p2, r2 bool, d uint8) uint8        { return d }
func (c *taggedCart) Reset(hard bool)                                   {}
func (c *taggedCart) Attach(ld cartridgeloader.Loader) error             { return nil }
func (c *taggedCart) Detach()           {}
func (c *taggedCart) FIRQ() bool        { return c.firq }
func (c *taggedCart) NMI() bool         { return false }
func (c *taggedCart) Halt() bool        { return false }
func (c *taggedCart) Interfaces() []string { return nil }

func TestMPIRouting(t *testing.T) {
	inst := instance.NewInstance("test")
	m := cartridge.NewMPI(inst)

	carts := make([]*taggedCart, 4)
	for i := range carts {
		carts[i] = &taggedCart{id: uint8(i)}
		m.PlugIn(i, carts[i])
	}

	// write 0x23 to $FF7F routes R2->slot2, P2->slot3.
	m.Write(memorymap.MPIRoute, false, false, 0x23)

	v, _ := m.Read(memorymap.CartridgeROMOrigin, false, true, 0)
	if v != 2 {
		t.Fatalf("expected R2 cycle routed to slot 2, got slot %d", v)
	}

	v, _ = m.Read(memorymap.CartridgeIOOrigin+0x10, true, false, 0)
	if v != 3 {
		t.Fatalf("expected P2 cycle routed to slot 3, got slot %d", v)
	}
}

func TestMPIFIRQFromCTSSlotOnly(t *testing.T) {
	inst := instance.NewInstance("test")
	m := cartridge.NewMPI(inst)

	a := &taggedCart{id: 0, firq: true}
	b := &taggedCart{id: 1, firq: false}
	m.PlugIn(0, a)
	m.PlugIn(1, b)

	// default routing is slot 0; FIRQ should be visible.
	if !m.FIRQ() {
		t.Fatalf("expected FIRQ asserted from CTS slot 0")
	}

	// route R2 (and therefore FIRQ) to slot 1, which never asserts FIRQ.
	m.Write(memorymap.MPIRoute, false, false, 0x10)
	if m.FIRQ() {
		t.Fatalf("FIRQ should not be visible once routed away from the asserting slot")
	}
}
