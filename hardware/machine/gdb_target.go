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
	"github.com/dgn09/core/debugger/gdb"
)

// The methods in this file exist solely to satisfy gdb.Target -- they
// adapt the plain *debugger.Hook the Session hands out to the gdb
// package's opaque Hook so that package doesn't need to import debugger.

func (m *Machine) AddBreakpoint(address uint16, handler func()) gdb.Hook {
	return m.Debugger.AddBreakpoint(address, handler)
}

func (m *Machine) AddReadWatch(address uint16, handler func()) gdb.Hook {
	return m.Debugger.AddReadWatch(address, handler)
}

func (m *Machine) AddWriteWatch(address uint16, handler func()) gdb.Hook {
	return m.Debugger.AddWriteWatch(address, handler)
}

func (m *Machine) RemoveHook(h gdb.Hook) {
	if hook, ok := h.(*debugger.Hook); ok {
		m.Debugger.Remove(hook)
	}
}
