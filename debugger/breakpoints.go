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

// Package debugger implements the breakpoint/watchpoint engine: a session
// owns a set of address-triggered hooks consulted on every CPU read,
// write, and instruction fetch. This build's only consumer is the GDB
// remote stub in debugger/gdb, not an interactive command-line debugger,
// so the engine exposes a plain Go API rather than a command language.
package debugger

// Condition is consulted in addition to the address match; a nil Condition
// always matches. Handlers use it to express conditional breakpoint
// predicates without the engine needing to know what they inspect.
type Condition func() bool

// Hook is one address-triggered breakpoint or watchpoint.
type Hook struct {
	// Address/Mask select which accesses this hook fires for: an access to
	// addr matches when addr&Mask == Address&Mask. A mask of 0xffff (the
	// default via Add) requires an exact address match. Hooks are indexed
	// by the low byte of Address, so an access is only tested against
	// hooks whose Address has the same low byte as addr; a Mask that
	// clears any of the low eight bits does not widen the match beyond
	// that byte.
	Address uint16
	Mask    uint16

	Condition Condition

	// Handler runs when the hook fires. It may stop the CPU; the engine
	// itself does not know how to do that, so callers close Handler over
	// whatever stop mechanism the machine composer wired up.
	Handler func()
}

func (h *Hook) matches(addr uint16) bool {
	mask := h.Mask
	if mask == 0 {
		mask = 0xffff
	}
	if addr&mask != h.Address&mask {
		return false
	}
	if h.Condition != nil && !h.Condition() {
		return false
	}
	return true
}

// index buckets hooks by the low byte of their trigger address, giving
// amortised O(1) dispatch on every bus cycle.
type index [256][]*Hook

func (ix *index) add(h *Hook) {
	key := uint8(h.Address)
	ix[key] = append(ix[key], h)
}

func (ix *index) remove(h *Hook) {
	key := uint8(h.Address)
	bucket := ix[key]
	for i, c := range bucket {
		if c == h {
			ix[key] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

func (ix *index) check(addr uint16) {
	for _, h := range ix[uint8(addr)] {
		if h.matches(addr) {
			if h.Handler != nil {
				h.Handler()
			}
		}
	}
}

func (ix *index) list() []*Hook {
	var out []*Hook
	for _, bucket := range ix {
		out = append(out, bucket...)
	}
	return out
}

// Session owns the full set of breakpoints (checked on instruction fetch)
// and read/write watchpoints (checked on every matching bus cycle) for one
// machine.
type Session struct {
	fetch index
	read  index
	write index
}

// NewSession is the preferred method of initialisation for Session.
func NewSession() *Session {
	return &Session{}
}

// AddBreakpoint installs a fetch-address breakpoint and returns the handle
// used to remove it later.
func (s *Session) AddBreakpoint(address uint16, handler func()) *Hook {
	h := &Hook{Address: address, Mask: 0xffff, Handler: handler}
	s.fetch.add(h)
	return h
}

// AddReadWatch installs a read watchpoint.
func (s *Session) AddReadWatch(address uint16, handler func()) *Hook {
	h := &Hook{Address: address, Mask: 0xffff, Handler: handler}
	s.read.add(h)
	return h
}

// AddWriteWatch installs a write watchpoint.
func (s *Session) AddWriteWatch(address uint16, handler func()) *Hook {
	h := &Hook{Address: address, Mask: 0xffff, Handler: handler}
	s.write.add(h)
	return h
}

// AddList installs every hook in list against the named set ("break",
// "rwatch", "wwatch"), mirroring the GDB Z-packet's breakpoint-type field.
func (s *Session) AddList(kind string, list []*Hook) {
	var ix *index
	switch kind {
	case "break":
		ix = &s.fetch
	case "rwatch":
		ix = &s.read
	case "wwatch":
		ix = &s.write
	default:
		return
	}
	for _, h := range list {
		ix.add(h)
	}
}

// RemoveList uninstalls every hook in list from the named set.
func (s *Session) RemoveList(kind string, list []*Hook) {
	var ix *index
	switch kind {
	case "break":
		ix = &s.fetch
	case "rwatch":
		ix = &s.read
	case "wwatch":
		ix = &s.write
	default:
		return
	}
	for _, h := range list {
		ix.remove(h)
	}
}

// Remove uninstalls a single hook, regardless of which set it was added to.
func (s *Session) Remove(h *Hook) {
	s.fetch.remove(h)
	s.read.remove(h)
	s.write.remove(h)
}

// CheckFetch runs every matching breakpoint for an instruction-fetch
// address. This must run before the CPU commits the instruction at that
// address.
func (s *Session) CheckFetch(address uint16) { s.fetch.check(address) }

// CheckRead runs every matching read watchpoint. Bus access ordering
// within a cycle is RAM then this hook.
func (s *Session) CheckRead(address uint16) { s.read.check(address) }

// CheckWrite runs every matching write watchpoint. A breakpoint on a SAM
// strobe address (e.g. $FFC5) must fire on the cycle that performs the
// write, before the SAM's new mode takes effect -- so callers must invoke
// CheckWrite ahead of dispatching the write itself.
func (s *Session) CheckWrite(address uint16) { s.write.check(address) }

// Breakpoints lists every currently installed fetch breakpoint.
func (s *Session) Breakpoints() []*Hook { return s.fetch.list() }

// ReadWatches lists every currently installed read watchpoint.
func (s *Session) ReadWatches() []*Hook { return s.read.list() }

// WriteWatches lists every currently installed write watchpoint.
func (s *Session) WriteWatches() []*Hook { return s.write.list() }
