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

package registers

// StackPointer is a full 16 bit stack pointer (S or U on the 6809/6309).
// Unlike the 6502's page-one stack, the 6809 stacks may point anywhere in
// the 64K address space.
type StackPointer struct {
	Register16
}

// NewStackPointer creates a new stack pointer register with the given
// label ("S" or "U").
func NewStackPointer(val uint16, label string) StackPointer {
	return StackPointer{Register16: NewRegister16(val, label)}
}

// Push reserves one byte below the current stack pointer and returns the
// address to write it to. The 6809 stack grows downward.
func (sp *StackPointer) Push() uint16 {
	sp.value--
	return sp.value
}

// Pull returns the address to read the next stacked byte from and advances
// the stack pointer back over it.
func (sp *StackPointer) Pull() uint16 {
	addr := sp.value
	sp.value++
	return addr
}
