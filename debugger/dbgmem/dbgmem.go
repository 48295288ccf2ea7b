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

package dbgmem

import (
	"github.com/dgn09/core/curated"
	"github.com/dgn09/core/hardware/memory/bus"
)

// DbgMem is a front-end onto the machine's memory for the GDB stub's m/M
// packets: unlike the CPU's own bus access, Peek/Poke never perturb the
// scheduler tick or trigger breakpoints.
type DbgMem struct {
	Bus bus.DebuggerBus
}

// NewDbgMem is the preferred method of initialisation for DbgMem.
func NewDbgMem(b bus.DebuggerBus) DbgMem {
	return DbgMem{Bus: b}
}

// Peek returns the contents of address without triggering any side effect
// (breakpoints, PIA pre-read hooks, cartridge snooping).
func (d DbgMem) Peek(address uint16) (AddressInfo, error) {
	ai := AddressInfo{Address: address}

	v, err := d.Bus.Peek(address)
	if err != nil {
		return ai, curated.Errorf(curated.ReadError, err)
	}

	ai.Data = v
	ai.Peeked = true
	return ai, nil
}

// Poke writes value at address, again without triggering side effects.
func (d DbgMem) Poke(address uint16, value uint8) (AddressInfo, error) {
	ai := AddressInfo{Address: address}

	if err := d.Bus.Poke(address, value); err != nil {
		return ai, curated.Errorf(curated.WriteError, err)
	}

	ai.Data = value
	ai.Peeked = true
	return ai, nil
}

// PeekRange returns length bytes starting at address, used to service the
// GDB `m addr,len` packet. A length of zero returns an empty, non-nil
// slice.
func (d DbgMem) PeekRange(address uint16, length int) ([]uint8, error) {
	out := make([]uint8, 0, length)
	for i := 0; i < length; i++ {
		ai, err := d.Peek(address + uint16(i))
		if err != nil {
			return nil, err
		}
		out = append(out, ai.Data)
	}
	return out, nil
}

// PokeRange writes data starting at address, used to service the GDB
// `M addr,len:data` packet.
func (d DbgMem) PokeRange(address uint16, data []uint8) error {
	for i, v := range data {
		if _, err := d.Poke(address+uint16(i), v); err != nil {
			return err
		}
	}
	return nil
}
