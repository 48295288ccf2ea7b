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

package instructions

// AddressingMode describes the method of memory addressing used by an instruction.
type AddressingMode int

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "Implied"
	case Immediate:
		return "Immediate"
	case Relative:
		return "Relative"
	case Direct:
		return "Direct"
	case Indexed:
		return "Indexed"
	case Absolute:
		return "Absolute"
	}
	return "unknown addressing mode"
}

const (
	// Implied covers inherent instructions that name no operand (ABX, DAA,
	// RTS, the A/B accumulator single-register forms, and so on).
	Implied AddressingMode = iota

	// Immediate instructions carry their operand in the bytes following the
	// opcode; PSHS/PULS/PSHU/PULU and EXG/TFR also use this mode to name
	// their postbyte even though it isn't a numeric operand.
	Immediate

	// Relative is used exclusively by branch and BSR/LBSR instructions: the
	// operand is a signed displacement added to the program counter.
	Relative

	// Direct addresses the zero page named by DP:operand.
	Direct

	// Indexed covers the full 6809 indexed postbyte grammar: constant and
	// accumulator offsets from X/Y/U/S or PC, auto increment/decrement, and
	// indirection through any of those forms.
	Indexed

	// Absolute (extended addressing, in Motorola's own terminology) carries
	// a full 16 bit address following the opcode.
	Absolute
)
