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

package execution

// The 6809/6309 have a handful of well known quirks that catch emulator
// authors out. Bug records when one of these paths was taken so that a
// debugger or test harness can single them out instead of treating them as
// ordinary execution.
type Bug string

const (
	NoBug Bug = ""

	// UndocumentedOpcodeBug marks execution of an opcode slot that has no
	// official mnemonic. On real silicon these slots behave as duplicates of
	// a documented instruction (or as an extra NOP); the emulator reproduces
	// that rather than treating them as illegal.
	UndocumentedOpcodeBug Bug = "undocumented opcode"

	// SetGeneralRegisterOffsetBug marks the 6309 TFR/EXG register select
	// nibble 0x0b-0x0f range, where at least one widely cited reference
	// disassembly disagrees with Motorola's own data sheet about which
	// register the nibble names. The emulator follows the data sheet
	// ordering; no code path in the cpu package sets this value.
	SetGeneralRegisterOffsetBug Bug = "6309 general register offset ambiguity"

	// CWAISPuriousStackBug marks CWAI's documented-but-easy-to-miss quirk of
	// pushing the entire machine state to the stack even though bits of CC
	// may mask the very interrupt being waited for. No code path in the cpu
	// package sets this value.
	CWAISPuriousStackBug Bug = "CWAI full stack push while masked"
)
