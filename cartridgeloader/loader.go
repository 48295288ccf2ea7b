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
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgn09/core/curated"
	"github.com/dgn09/core/logger"
)

// leaderSize is the length of the header some ROM dumps prepend ahead of
// the image a real cartridge board exposes to the bus.
const leaderSize = 256

// maxROMSize is the largest cartridge ROM image this loader will accept.
const maxROMSize = 32 * 1024

// Loader abstracts the ways cartridge ROM data can be loaded into the
// emulation: from a file on disk or from data embedded in the binary with
// go:embed. It implements io.ReadSeeker over the (leader-stripped) image.
type Loader struct {
	io.ReadSeeker

	// Name is how the cartridge should be referred to outside of this
	// package (CLI banners, log tags).
	Name string

	// Filename is the path data was loaded from, or the name given to
	// NewLoaderFromData for embedded data.
	Filename string

	// CartType is the explicit "-cart-type" mapper selection, or "" to let
	// the machine composer pick a default for an image this size.
	CartType string

	// HashSHA1/HashMD5 identify the loaded image (for ROM CRC database
	// lookups, which are an external collaborator).
	HashSHA1 string
	HashMD5  string

	// Data is the cartridge image after leader stripping. The
	// pointer-to-slice indirection lets a Loader be passed by value while
	// still letting Open populate the data for every copy.
	Data *[]byte

	data *bytes.Buffer

	embedded bool
}

// NewLoaderFromFilename is the preferred method of initialisation for the
// Loader type when loading a ROM image from a file.
func NewLoaderFromFilename(filename string, cartType string) (Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return Loader{}, curated.Errorf(curated.RomNotFound, "")
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return Loader{}, curated.Errorf(curated.RomNotFound, filename)
	}

	data := make([]byte, 0)
	return Loader{
		Filename: abs,
		CartType: strings.TrimSpace(strings.ToUpper(cartType)),
		Data:     &data,
	}, nil
}

// NewLoaderFromData is the preferred method of initialisation for the
// Loader type when loading a ROM image embedded with go:embed.
func NewLoaderFromData(name string, data []byte, cartType string) (Loader, error) {
	if len(data) == 0 {
		return Loader{}, curated.Errorf("cartridgeloader: embedded data is empty for %s", name)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Loader{}, curated.Errorf("cartridgeloader: no name for embedded data")
	}

	data = stripLeader(data)

	ld := Loader{
		Filename: name,
		CartType: strings.TrimSpace(strings.ToUpper(cartType)),
		Data:     &data,
		data:     bytes.NewBuffer(data),
		embedded: true,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(data)),
		HashMD5:  fmt.Sprintf("%x", md5.Sum(data)),
	}
	ld.Name = decideOnName(ld)
	return ld, nil
}

// stripLeader removes a 256-byte leader when doing so leaves an image whose
// length is itself a power of two -- the shape of every genuine Dragon/CoCo
// ROM size (2K/4K/8K/16K/32K).
func stripLeader(data []byte) []byte {
	if len(data) <= leaderSize {
		return data
	}
	if isPowerOfTwo(len(data) - leaderSize) {
		return data[leaderSize:]
	}
	return data
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Close releases any resources associated with the Loader. Embedded data
// holds nothing to release; implements io.Closer.
func (ld Loader) Close() error {
	return nil
}

// Read implements io.Reader over the (leader-stripped) cartridge image.
func (ld Loader) Read(p []byte) (int, error) {
	if ld.data == nil {
		return 0, io.EOF
	}
	return ld.data.Read(p)
}

// Seek implements io.Seeker. bytes.Buffer does not support seeking
// backwards once read, so Seek only supports SeekStart on the original
// image by re-slicing from Data.
func (ld *Loader) Seek(offset int64, whence int) (int64, error) {
	if ld.Data == nil {
		return 0, nil
	}
	if whence != io.SeekStart {
		return 0, curated.Errorf("cartridgeloader: only SeekStart is supported")
	}
	if offset < 0 || offset > int64(len(*ld.Data)) {
		return 0, curated.Errorf("cartridgeloader: seek offset out of range")
	}
	ld.data = bytes.NewBuffer((*ld.Data)[offset:])
	return offset, nil
}

// Open reads the cartridge image from disk (a no-op for embedded data),
// strips a leader if present, verifies the size limit, and populates
// Data/HashSHA1/HashMD5.
func (ld *Loader) Open() error {
	if ld.embedded {
		return nil
	}

	if ld.Data != nil && len(*ld.Data) > 0 {
		return nil
	}

	f, err := os.Open(ld.Filename)
	if err != nil {
		return curated.Errorf(curated.RomNotFound, ld.Filename)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return curated.Errorf(curated.RomNotFound, ld.Filename)
	}

	raw = stripLeader(raw)
	if len(raw) > maxROMSize {
		return curated.Errorf("cartridgeloader: %s exceeds %d bytes", ld.Filename, maxROMSize)
	}

	*ld.Data = raw
	ld.data = bytes.NewBuffer(raw)

	ld.HashSHA1 = fmt.Sprintf("%x", sha1.Sum(raw))
	ld.HashMD5 = fmt.Sprintf("%x", md5.Sum(raw))
	ld.Name = decideOnName(*ld)

	logger.Logf(logger.Allow, "cartridgeloader", "loaded %s (%d bytes, sha1 %s)", ld.Filename, len(raw), ld.HashSHA1)

	return nil
}
