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

// Package govern defines the run-lock states shared between the machine's
// main loop and the GDB stub goroutine. The GDB stub is the only consumer
// of these values today (there is no interactive console in this build) but
// the type lives in its own package so that neither side needs to import
// the other's package to agree on the vocabulary.
package govern

// RunState is returned by a run-lock acquisition and tells the machine loop
// how to proceed until the lock is released again.
type RunState int

const (
	// Stopped means the machine must not execute any further instructions.
	// The GDB stub is free to read and write registers and RAM.
	Stopped RunState = iota

	// Running means the machine should execute instructions without limit
	// until the run-lock is re-examined (i.e. until a breakpoint fires or
	// the stub requests a stop).
	Running

	// SingleStep means the machine should execute exactly one instruction
	// and then return to Stopped.
	SingleStep
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	case SingleStep:
		return "SingleStep"
	}
	return ""
}
