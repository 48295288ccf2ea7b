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
	"path/filepath"
	"slices"
	"strings"
)

// decideOnName derives the display name used to refer to a cartridge
// outside of this package (CLI output, log tags, GDB session info).
func decideOnName(ld Loader) string {
	if ld.embedded {
		return ld.Filename
	}

	if len(strings.TrimSpace(ld.Filename)) == 0 {
		return ""
	}

	return NameFromFilename(ld.Filename)
}

// NameFromFilename converts a filename to a shortened version suitable for
// display, stripping a recognised ROM image extension if present.
func NameFromFilename(filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(filename)
	if slices.Contains(FileExtensions[:], ext) {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
