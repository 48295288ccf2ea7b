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
	"fmt"
	"strings"

	"github.com/dgn09/core/hardware/memory/memorymap"
)

// AddressInfo is returned by dbgmem functions. It carries everything
// usefully known about an address reached through the GDB stub's m/M
// commands: the raw address, the SAM segment it decodes to, and (once a
// Peek has happened) the byte found there.
type AddressInfo struct {
	Address uint16
	Segment memorymap.Segment

	Peeked bool
	Data   uint8
}

func (ai AddressInfo) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%#04x", ai.Address))
	s.WriteString(fmt.Sprintf(" (%s)", ai.Segment.String()))
	if ai.Peeked {
		s.WriteString(fmt.Sprintf(" -> %#02x", ai.Data))
	}
	return s.String()
}
