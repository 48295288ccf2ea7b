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
	"io"

	"github.com/dgn09/core/cartridgeloader"
	"github.com/dgn09/core/curated"
	"github.com/dgn09/core/hardware/instance"
)

// ROM is the simplest cartridge model: a single flat image mapped into the
// R2 window starting at $C000, wrapping if the image is smaller than the
// window. It asserts EXTMEM for the whole of its mapped range so the
// machine composer's own ROM bank 1 decode never shows through underneath
// it, matching how a real cartridge's CTS line takes priority.
type ROM struct {
	instance *instance.Instance

	label string
	data  []byte

	firqLine bool
	nmiLine  bool
	haltLine bool
}

// NewROM is the preferred method of initialisation for ROM.
func NewROM(instance *instance.Instance, label string) *ROM {
	return &ROM{instance: instance, label: label}
}

// Attach reads the entirety of ld into the cartridge's ROM image.
func (c *ROM) Attach(ld cartridgeloader.Loader) error {
	if err := ld.Open(); err != nil {
		return err
	}
	data, err := io.ReadAll(ld)
	if err != nil {
		return curated.Errorf(curated.RomNotFound, err)
	}
	if len(data) == 0 {
		return curated.Errorf(curated.RomNotFound, "empty image")
	}
	c.data = data
	return nil
}

// Detach releases the loaded image; the cartridge reverts to Null-like
// behaviour (floating bus, no EXTMEM) until Attach is called again.
func (c *ROM) Detach() { c.data = nil }

// Reset is a no-op for a ROM-only cartridge: there is no internal state to
// clear beyond the image itself, which Attach/Detach already manage.
func (c *ROM) Reset(hard bool) {}

// Read services an R2 cycle by indexing into the image, wrapping for
// images smaller than the 16 KiB window. Cycles outside of R2 fall
// through untouched (this cartridge owns no I/O registers).
func (c *ROM) Read(a uint16, p2, r2 bool, d uint8) (uint8, bool) {
	if !r2 || len(c.data) == 0 {
		return d, false
	}
	off := int(a-0xc000) % len(c.data)
	return c.data[off], true
}

// Write is serviced identically to Read for address purposes, but a
// ROM-only cartridge never drives the bus back on a write: real mask ROM
// does not respond to CPU writes at all.
func (c *ROM) Write(a uint16, p2, r2 bool, d uint8) uint8 { return d }

func (c *ROM) FIRQ() bool { return c.firqLine }
func (c *ROM) NMI() bool  { return c.nmiLine }
func (c *ROM) Halt() bool { return c.haltLine }

func (c *ROM) Interfaces() []string { return nil }

func (c *ROM) String() string { return c.label }
