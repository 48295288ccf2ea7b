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

package cartridgeloader

import (
	"os"

	"github.com/dgn09/core/curated"
	"github.com/dgn09/core/logger"
)

// hardDiskSize is the size of an auto-created IDE hard-disk image.
const hardDiskSize = 10 * 1024 * 1024

// hardDiskSignature is stamped at the start of a freshly created image so a
// cartridge model can distinguish "blank, never formatted" media from a
// zeroed-out restore.
var hardDiskSignature = [16]byte{'A', 'C', 'M', 'E', ' ', 'Z', 'I', 'P', 'P', 'I', 'B', 'U', 'S', 0, 0, 0}

// NewHardDiskLoader opens (creating if necessary) the flat backing file an
// IDE cartridge model uses for its hard disk. A freshly created image is
// sized to hardDiskSize and stamped with hardDiskSignature; an existing
// image is opened as-is regardless of size.
func NewHardDiskLoader(filename string) (*os.File, bool, error) {
	f, err := os.OpenFile(filename, os.O_RDWR, 0o644)
	if err == nil {
		return f, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, curated.Errorf("cartridgeloader: %v", err)
	}

	f, err = os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, false, curated.Errorf("cartridgeloader: %v", err)
	}

	if _, err := f.Write(hardDiskSignature[:]); err != nil {
		f.Close()
		return nil, false, curated.Errorf("cartridgeloader: %v", err)
	}
	if err := f.Truncate(hardDiskSize); err != nil {
		f.Close()
		return nil, false, curated.Errorf("cartridgeloader: %v", err)
	}

	logger.Logf(logger.Allow, "cartridgeloader", "created hard disk image %s (%d bytes)", filename, hardDiskSize)

	return f, true, nil
}
