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

// Package cartridge implements the Dragon/CoCo cartridge bus and the
// Multi-Pak Interface (MPI) that can sit on it. Every attached part,
// including the MPI itself, implements the Cartridge interface; the MPI
// is distinguished only by holding four child Cartridges and routing
// cycles to them rather than servicing them directly.
package cartridge

import "github.com/dgn09/core/cartridgeloader"

// Cartridge is a Part that sees every CPU bus cycle, not just the ones
// addressed to cartridge space, so it may snoop all cycles even when P2
// and R2 are both deasserted.
type Cartridge interface {
	// Read services a read cycle. p2 is asserted for the $FF40-$FF5F I/O
	// window, r2 for the $C000-$FEFF ROM window. d is the value already on
	// the bus (from RAM/ROM decode, or floating); the cartridge returns the
	// value the bus should actually carry, and whether it asserts EXTMEM
	// to inhibit the host's own RAM decode for this cycle.
	Read(a uint16, p2, r2 bool, d uint8) (out uint8, extmem bool)

	// Write services a write cycle. The cartridge may drive the bus back
	// even on a nominally write-only cycle, so it returns the
	// possibly-modified D.
	Write(a uint16, p2, r2 bool, d uint8) (out uint8)

	// Reset reinitialises the cartridge. hard distinguishes a power-on
	// reset (RAM contents are not preserved) from a soft reset.
	Reset(hard bool)

	// Attach loads ld's image into the cartridge. A cartridge whose
	// Attach returns a non-nil error is not attached; the machine
	// continues without it.
	Attach(ld cartridgeloader.Loader) error

	// Detach releases any attached image.
	Detach()

	// FIRQ/NMI/Halt report the cartridge's current interrupt/stall output.
	FIRQ() bool
	NMI() bool
	Halt() bool

	// Interfaces names the optional named services this cartridge exposes
	// (e.g. "floppy", "sound") for host collaborators (disk controllers,
	// audio mixers) to discover.
	Interfaces() []string
}

// Null is the Cartridge that occupies an empty slot: it never asserts
// EXTMEM or any interrupt line, and a read of cartridge space with nothing
// attached leaves the bus floating at whatever value was already there.
type Null struct{}

func (Null) Read(a uint16, p2, r2 bool, d uint8) (uint8, bool) { return d, false }
func (Null) Write(a uint16, p2, r2 bool, d uint8) uint8        { return d }
func (Null) Reset(hard bool)                                  {}
func (Null) Attach(ld cartridgeloader.Loader) error            { return nil }
func (Null) Detach()                                          {}
func (Null) FIRQ() bool                                        { return false }
func (Null) NMI() bool                                          { return false }
func (Null) Halt() bool                                         { return false }
func (Null) Interfaces() []string                              { return nil }
