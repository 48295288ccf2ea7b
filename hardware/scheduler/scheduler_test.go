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

package scheduler_test

import (
	"testing"

	"github.com/dgn09/core/hardware/scheduler"
)

func TestFiresInTickOrderRegardlessOfEnqueueOrder(t *testing.T) {
	s := scheduler.New()

	var fired []int

	// enqueue tick 1 before tick 0.
	s.Schedule(1, func() { fired = append(fired, 1) })
	s.Schedule(0, func() { fired = append(fired, 0) })

	s.Advance(1)

	if len(fired) != 2 || fired[0] != 0 || fired[1] != 1 {
		t.Fatalf("expected [0 1], got %v", fired)
	}
}

func TestEventsAtSameTickFireInScheduleOrder(t *testing.T) {
	s := scheduler.New()

	var fired []string
	s.Schedule(5, func() { fired = append(fired, "first") })
	s.Schedule(5, func() { fired = append(fired, "second") })

	s.Advance(5)

	if len(fired) != 2 || fired[0] != "first" || fired[1] != "second" {
		t.Fatalf("expected [first second], got %v", fired)
	}
}

func TestFutureEventDoesNotFireEarly(t *testing.T) {
	s := scheduler.New()

	fired := false
	s.Schedule(10, func() { fired = true })

	s.Advance(9)
	if fired {
		t.Fatalf("event fired before its tick")
	}

	s.Advance(1)
	if !fired {
		t.Fatalf("event did not fire once its tick was reached")
	}
}

func TestPeriodicHandlerRequeuesItself(t *testing.T) {
	s := scheduler.New()

	count := 0
	var tick scheduler.Handler
	tick = func() {
		count++
		if count < 3 {
			s.ScheduleAfter(10, tick)
		}
	}
	s.ScheduleAfter(10, tick)

	for i := 0; i < 3; i++ {
		s.Advance(10)
	}

	if count != 3 {
		t.Fatalf("expected periodic handler to fire 3 times, fired %d", count)
	}
}

func TestCancelRemovesPendingEvent(t *testing.T) {
	s := scheduler.New()

	fired := false
	ev := s.Schedule(5, func() { fired = true })
	s.Cancel(ev)

	s.Advance(5)
	if fired {
		t.Fatalf("cancelled event should not fire")
	}
}

func TestResetClearsQueueAndTick(t *testing.T) {
	s := scheduler.New()

	fired := false
	s.Schedule(5, func() { fired = true })
	s.Advance(1)

	s.Reset()
	if s.CurrentTick() != 0 {
		t.Fatalf("expected tick to be zero after reset, got %d", s.CurrentTick())
	}
	if s.Pending() {
		t.Fatalf("expected queue to be empty after reset")
	}

	s.Advance(10)
	if fired {
		t.Fatalf("event scheduled before reset should not fire afterwards")
	}
}
