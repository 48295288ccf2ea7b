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

package curated

// Sentinel patterns for Errorf(). Grouped by the subsystem that raises them.
// Callers switch on these with Is()/Has() rather than comparing formatted
// strings.
const (
	// GDB transport. BadPacketChecksum, ReadError and WriteError close the
	// debugger session and the machine resumes; BreakRequested stops the
	// machine and keeps the session open.
	BadPacketChecksum = "gdb: bad packet checksum: %v"
	BreakRequested    = "gdb: break requested"
	ReadError         = "gdb: read error: %v"
	WriteError        = "gdb: write error: %v"

	// cartridge / ROM loading. Warnings, not fatal - emulation continues
	// without the affected part.
	RomNotFound = "cartridge: rom image not found: %v"
	InvalidCRC  = "cartridge: rom image has unrecognised crc: %v"

	// snapshot (de)serialisation.
	RAMSizeMismatch          = "snapshot: ram size does not match machine configuration: %v"
	SerialisationFormatError = "snapshot: unrecognised tag in stream: %v"

	// machine composition. Fatal: the machine refuses to boot.
	PartFinishFailed = "machine: part failed to finish initialisation: %v"

	// CPU decode. The opcode/page pair has no entry in the instruction table.
	UnimplementedOpcode = "cpu: unimplemented opcode: %v"
)
