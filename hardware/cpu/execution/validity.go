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

import "fmt"

// IsValid checks whether the instance of Result contains information
// consistent with the instruction definition.
func (r Result) IsValid() error {
	if r.Defn == nil {
		return fmt.Errorf("cpu: execution result has no instruction definition")
	}

	if !r.Final {
		return fmt.Errorf("cpu: execution not finalised (bad opcode?)")
	}

	// Defn.Bytes counts an indexed instruction up to its postbyte; the
	// postbyte may be followed by one or two offset bytes
	extraBytes := 0
	if r.Defn.AddressingMode.String() == "Indexed" {
		extraBytes = 2
	}
	if r.ByteCount < r.Defn.Bytes || r.ByteCount > r.Defn.Bytes+extraBytes {
		return fmt.Errorf("cpu: unexpected number of bytes read during decode (%d instead of %d)", r.ByteCount, r.Defn.Bytes)
	}

	// CWAI, SYNC and RTI have a variable cycle count that depends on when
	// (or whether) an interrupt arrives, so the base Defn.Cycles value is
	// only a lower bound for them
	switch r.Defn.Operator.String() {
	case "cwai", "sync", "rti", "pshs", "puls", "pshu", "pulu":
		// PSHS/PULS/PSHU/PULU cost one extra cycle per 8 bit register and
		// two per 16 bit register beyond the fixed opcode/postbyte
		// overhead captured in Defn.Cycles, depending on the postbyte mask
		if r.Cycles < r.Defn.Cycles {
			return fmt.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d less than minimum %d)",
				r.Defn.OpCode, r.Defn.Operator, r.Cycles, r.Defn.Cycles)
		}
		return nil
	}

	// an untaken long conditional branch (LBcc, not LBRA/LBSR) costs one
	// cycle less than Defn.Cycles, which reflects the taken cost
	if r.Defn.AddressingMode.String() == "Relative" && r.Defn.Bytes >= 3 && !r.BranchSuccess {
		switch r.Defn.Operator.String() {
		case "lbra", "lbsr":
		default:
			if r.Cycles != r.Defn.Cycles-1 {
				return fmt.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
					r.Defn.OpCode, r.Defn.Operator, r.Cycles, r.Defn.Cycles-1)
			}
			return nil
		}
	}

	// indexed addressing's postbyte selects a submode with its own extra
	// cycle cost (0 to 8 cycles beyond the base indexed cost captured in
	// Defn.Cycles, the most being [n16,PC])
	if r.Defn.AddressingMode.String() == "Indexed" {
		if r.Cycles < r.Defn.Cycles || r.Cycles > r.Defn.Cycles+8 {
			return fmt.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d outside expected range starting at %d)",
				r.Defn.OpCode, r.Defn.Operator, r.Cycles, r.Defn.Cycles)
		}
		return nil
	}

	if r.Cycles != r.Defn.Cycles {
		return fmt.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
			r.Defn.OpCode, r.Defn.Operator, r.Cycles, r.Defn.Cycles)
	}

	return nil
}
