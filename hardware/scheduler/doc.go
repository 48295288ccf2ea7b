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

// Package scheduler implements a monotonic tick counter (advanced only
// from the SAM's per-cycle delegate) plus a single ordered list of
// deferred callbacks.
//
// It is a per-domain list of scheduled callbacks a clock delegate ticks
// down, generalised from a per-event countdown to an absolute at_tick so
// that events enqueued out of order still fire in tick order, and so that
// VDG/timer callbacks can be scheduled arbitrarily far ahead rather than
// only "n cycles from now against a ticker that is ticked every cycle".
package scheduler
