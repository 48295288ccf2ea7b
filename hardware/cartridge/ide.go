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

package cartridge

import (
	"os"

	"github.com/dgn09/core/cartridgeloader"
	"github.com/dgn09/core/hardware/instance"
)

// ideRegisterCount is the number of task-file registers a CoCo IDE
// interface exposes in its P2 I/O window (data, error/features, sector
// count, LBA low/mid/high, device/head, status/command).
const ideRegisterCount = 8

// IDE is a minimal IDE/ATA hard-disk cartridge model: enough task-file
// register decode to let a disk driver select an LBA sector and transfer
// its 512 bytes, backed by the flat image cartridgeloader.NewHardDiskLoader
// creates or opens. Only the READ SECTOR command is implemented: bytes
// written to the data register are latched but never written back to the
// image, and disk controller timing is not modelled. This model exists to
// exercise the hd0.img lifecycle at the cartridge-bus level.
type IDE struct {
	instance *instance.Instance

	file *os.File

	registers [ideRegisterCount]uint8
	lba       uint32
	sector    [512]byte
	sectorPos int

	interfaces []string
}

// NewIDE is the preferred method of initialisation for IDE.
func NewIDE(instance *instance.Instance) *IDE {
	return &IDE{instance: instance, interfaces: []string{"harddisk"}}
}

// Attach opens (creating if necessary) the backing hd0.img file named by
// ld.Filename.
func (c *IDE) Attach(ld cartridgeloader.Loader) error {
	f, _, err := cartridgeloader.NewHardDiskLoader(ld.Filename)
	if err != nil {
		return err
	}
	c.file = f
	return nil
}

// Detach closes the backing file.
func (c *IDE) Detach() {
	if c.file != nil {
		c.file.Close()
		c.file = nil
	}
}

// Reset clears the task-file registers but leaves the backing file open
// (a hard reset of the host does not reformat the disk).
func (c *IDE) Reset(hard bool) {
	c.registers = [ideRegisterCount]uint8{}
	c.sectorPos = 0
}

func (c *IDE) regIndex(a uint16) (int, bool) {
	off := int(a & 0xf)
	if off >= ideRegisterCount {
		return 0, false
	}
	return off, true
}

// Read services the P2 task-file window; R2 (ROM space) and snoop cycles
// are untouched.
func (c *IDE) Read(a uint16, p2, r2 bool, d uint8) (uint8, bool) {
	if !p2 {
		return d, false
	}
	idx, ok := c.regIndex(a)
	if !ok {
		return d, false
	}
	if idx == 0 && c.file != nil {
		v := c.sector[c.sectorPos]
		c.sectorPos = (c.sectorPos + 1) % len(c.sector)
		return v, true
	}
	return c.registers[idx], true
}

// Write services the P2 task-file window. Writing the command register
// (offset 7) with 0x20 ("READ SECTOR") loads the 512-byte sector named by
// the LBA registers from the backing file.
func (c *IDE) Write(a uint16, p2, r2 bool, d uint8) uint8 {
	if !p2 {
		return d
	}
	idx, ok := c.regIndex(a)
	if !ok {
		return d
	}
	c.registers[idx] = d

	switch idx {
	case 3:
		c.lba = c.lba&0xffffff00 | uint32(d)
	case 4:
		c.lba = c.lba&0xffff00ff | uint32(d)<<8
	case 5:
		c.lba = c.lba&0xff00ffff | uint32(d)<<16
	case 7:
		if d == 0x20 && c.file != nil {
			c.sectorPos = 0
			off := int64(c.lba)*int64(len(c.sector)) + 16 // past the signature header
			c.file.ReadAt(c.sector[:], off)
		}
	}
	return d
}

func (c *IDE) FIRQ() bool { return false }
func (c *IDE) NMI() bool  { return false }
func (c *IDE) Halt() bool { return false }

func (c *IDE) Interfaces() []string { return c.interfaces }
