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

package machine

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dgn09/core/curated"
)

// Snapshot tags. The teacher never serialises a Part tree to disk (every
// component's Snapshot() method returns an in-memory deep copy for the
// debugger's use), so this wire format is new: one tagged, length-prefixed
// record per Part, in a fixed order, closed by tagEnd.
type snapshotTag uint8

const (
	tagRAM snapshotTag = iota + 1
	tagCPU
	tagSAM
	tagPIA0
	tagPIA1
	tagEnd
)

// WriteSnapshot serialises the machine's full state to w.
func (m *Machine) WriteSnapshot(w io.Writer) error {
	if err := writeRecord(w, tagRAM, m.ram); err != nil {
		return err
	}
	if err := writeRecord(w, tagCPU, m.snapshotCPU()); err != nil {
		return err
	}
	if err := writeRecord(w, tagSAM, m.snapshotSAM()); err != nil {
		return err
	}
	if err := writeRecord(w, tagPIA0, m.snapshotPIA(m.PIA0)); err != nil {
		return err
	}
	if err := writeRecord(w, tagPIA1, m.snapshotPIA(m.PIA1)); err != nil {
		return err
	}
	return writeRecord(w, tagEnd, nil)
}

// ReadSnapshot restores the machine's full state from r. It returns
// curated.RAMSizeMismatch if the stream's RAM record doesn't match this
// machine's configured RAM complement, and curated.SerialisationFormatError
// for any tag it doesn't recognise.
func (m *Machine) ReadSnapshot(r io.Reader) error {
	for {
		tag, value, err := readRecord(r)
		if err != nil {
			return err
		}
		switch snapshotTag(tag) {
		case tagEnd:
			return nil
		case tagRAM:
			if len(value) != len(m.ram) {
				return curated.Errorf(curated.RAMSizeMismatch, len(value))
			}
			copy(m.ram, value)
		case tagCPU:
			m.restoreCPU(value)
		case tagSAM:
			m.restoreSAM(value)
		case tagPIA0:
			m.restorePIA(m.PIA0, value)
		case tagPIA1:
			m.restorePIA(m.PIA1, value)
		default:
			return curated.Errorf(curated.SerialisationFormatError, tag)
		}
	}
}

func writeRecord(w io.Writer, tag snapshotTag, value []uint8) error {
	var hdr [5]uint8
	hdr[0] = uint8(tag)
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(value)))
	if _, err := w.Write(hdr[:]); err != nil {
		return curated.Errorf(curated.WriteError, err)
	}
	if len(value) == 0 {
		return nil
	}
	if _, err := w.Write(value); err != nil {
		return curated.Errorf(curated.WriteError, err)
	}
	return nil
}

func readRecord(r io.Reader) (tag uint8, value []uint8, err error) {
	var hdr [5]uint8
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, curated.Errorf(curated.ReadError, err)
	}
	length := binary.BigEndian.Uint32(hdr[1:])
	value = make([]uint8, length)
	if length > 0 {
		if _, err := io.ReadFull(r, value); err != nil {
			return 0, nil, curated.Errorf(curated.ReadError, err)
		}
	}
	return hdr[0], value, nil
}

// snapshotCPU packs the register file as CC A B DP X Y U S PC, followed by
// the 6309 extension registers MD E F V W whenever Native6309 is set: 14
// bytes, or 21 with the extension. The first 19 bytes follow the register
// order of the `g` GDB packet (see debugger/gdb), which has no W.
func (m *Machine) snapshotCPU() []uint8 {
	buf := new(bytes.Buffer)
	buf.WriteByte(m.CPU.CC.Value())
	buf.WriteByte(m.CPU.A.Value())
	buf.WriteByte(m.CPU.B.Value())
	buf.WriteByte(m.CPU.DP.Value())
	binary.Write(buf, binary.BigEndian, m.CPU.X.Value())
	binary.Write(buf, binary.BigEndian, m.CPU.Y.Value())
	binary.Write(buf, binary.BigEndian, m.CPU.U.Value())
	binary.Write(buf, binary.BigEndian, m.CPU.S.Value())
	binary.Write(buf, binary.BigEndian, m.CPU.PC.Value())
	if m.CPU.Native6309 {
		buf.WriteByte(m.CPU.MD)
		buf.WriteByte(m.CPU.E.Value())
		buf.WriteByte(m.CPU.F.Value())
		binary.Write(buf, binary.BigEndian, m.CPU.V.Value())
		binary.Write(buf, binary.BigEndian, m.CPU.W.Value())
	}
	return buf.Bytes()
}

func (m *Machine) restoreCPU(data []uint8) {
	if len(data) < 14 {
		return
	}
	m.CPU.CC.Load(data[0])
	m.CPU.A.Load(data[1])
	m.CPU.B.Load(data[2])
	m.CPU.DP.Load(data[3])
	m.CPU.X.Load(binary.BigEndian.Uint16(data[4:6]))
	m.CPU.Y.Load(binary.BigEndian.Uint16(data[6:8]))
	m.CPU.U.Load(binary.BigEndian.Uint16(data[8:10]))
	m.CPU.S.Load(binary.BigEndian.Uint16(data[10:12]))
	m.CPU.PC.Load(binary.BigEndian.Uint16(data[12:14]))
	if m.CPU.Native6309 && len(data) >= 14+7 {
		d := data[14:]
		m.CPU.MD = d[0]
		m.CPU.E.Load(d[1])
		m.CPU.F.Load(d[2])
		m.CPU.V.Load(binary.BigEndian.Uint16(d[3:5]))
		m.CPU.W.Load(binary.BigEndian.Uint16(d[5:7]))
	}
}

// snapshotSAM packs the 16-bit shadow register; the video counter cascade
// is not part of the wire format since it is fully determined by the
// register plus the FS/HS edges that have happened since, and a restored
// machine will simply rebuild it from the next FS edge.
func (m *Machine) snapshotSAM() []uint8 {
	buf := make([]uint8, 2)
	binary.BigEndian.PutUint16(buf, m.SAM.Register.Value)
	return buf
}

func (m *Machine) restoreSAM(data []uint8) {
	if len(data) < 2 {
		return
	}
	m.SAM.Register.Value = binary.BigEndian.Uint16(data)
	m.SAM.SetVideoMode()
}

// snapshotPIA packs the four register addresses as a CPU read sees them:
// for each half, whichever of the data register or the DDR control bit 2
// selects, then the control register. The unselected one is not saved.
func (m *Machine) snapshotPIA(p interface {
	Read(reg uint8) uint8
}) []uint8 {
	buf := make([]uint8, 4)
	buf[0] = p.Read(0)
	buf[1] = p.Read(1)
	buf[2] = p.Read(2)
	buf[3] = p.Read(3)
	return buf
}

func (m *Machine) restorePIA(p interface {
	Write(reg uint8, v uint8)
}, data []uint8) {
	if len(data) < 4 {
		return
	}
	p.Write(1, data[1])
	p.Write(0, data[0])
	p.Write(3, data[3])
	p.Write(2, data[2])
}
