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

package debugger_test

import (
	"testing"

	"github.com/dgn09/core/debugger"
)

func TestBreakpointFires(t *testing.T) {
	s := debugger.NewSession()

	fired := false
	s.AddBreakpoint(0xb3b4, func() { fired = true })

	s.CheckFetch(0x1000)
	if fired {
		t.Fatalf("breakpoint fired for non-matching address")
	}

	s.CheckFetch(0xb3b4)
	if !fired {
		t.Fatalf("breakpoint did not fire for matching address")
	}
}

func TestBreakpointCondition(t *testing.T) {
	s := debugger.NewSession()

	allow := false
	fired := false
	h := s.AddBreakpoint(0x4000, func() { fired = true })
	h.Condition = func() bool { return allow }

	s.CheckFetch(0x4000)
	if fired {
		t.Fatalf("breakpoint fired despite false condition")
	}

	allow = true
	s.CheckFetch(0x4000)
	if !fired {
		t.Fatalf("breakpoint did not fire once condition became true")
	}
}

func TestWriteWatchOrdering(t *testing.T) {
	// a breakpoint on $FFC5 (a SAM mode strobe) must fire on the cycle
	// that writes the bit it watches, before anything observes the new
	// SAM mode.
	s := debugger.NewSession()

	var order []string
	s.AddWriteWatch(0xffc5, func() { order = append(order, "breakpoint") })

	// caller invokes CheckWrite before dispatching the write to SAM.
	s.CheckWrite(0xffc5)
	order = append(order, "sam-dispatch")

	if len(order) != 2 || order[0] != "breakpoint" || order[1] != "sam-dispatch" {
		t.Fatalf("unexpected ordering: %v", order)
	}
}

func TestRemoveList(t *testing.T) {
	s := debugger.NewSession()

	fired := 0
	h1 := s.AddBreakpoint(0x2000, func() { fired++ })
	s.AddBreakpoint(0x2001, func() { fired++ })

	s.RemoveList("break", []*debugger.Hook{h1})

	s.CheckFetch(0x2000)
	s.CheckFetch(0x2001)

	if fired != 1 {
		t.Fatalf("expected exactly one surviving breakpoint to fire, got %d", fired)
	}
}

func TestBreakpointsListing(t *testing.T) {
	s := debugger.NewSession()
	if len(s.Breakpoints()) != 0 {
		t.Fatalf("new session should start with no breakpoints")
	}
	s.AddBreakpoint(0x9000, nil)
	if len(s.Breakpoints()) != 1 {
		t.Fatalf("expected one breakpoint after Add")
	}
}
