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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgn09/core/logger"
)

func TestCentralLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	if w.String() != "" {
		t.Errorf("expected empty log, got %q", w.String())
	}

	log.Log(logger.Allow, "SAM", "strobe $ffc1")
	log.Write(w)
	if w.String() != "SAM: strobe $ffc1\n" {
		t.Errorf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	log.Log(logger.Allow, "PIA0", "ca1 edge")
	log.Write(w)
	if w.String() != "SAM: strobe $ffc1\nPIA0: ca1 edge\n" {
		t.Errorf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	log.Tail(w, 1)
	if w.String() != "PIA0: ca1 edge\n" {
		t.Errorf("unexpected tail: %q", w.String())
	}

	w.Reset()
	log.Tail(w, 0)
	if w.String() != "" {
		t.Errorf("expected empty tail, got %q", w.String())
	}
}

func TestWraparound(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")

	log.Write(w)
	if w.String() != "b: 2\nc: 3\n" {
		t.Errorf("expected oldest entry to be evicted, got %q", w.String())
	}
}

type prohibitLogging bool

func (p prohibitLogging) AllowLogging() bool { return bool(p) }

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(prohibitLogging(false), "tag", "detail")
	log.Write(w)
	if w.String() != "" {
		t.Errorf("expected suppressed entry, got %q", w.String())
	}

	log.Log(prohibitLogging(true), "tag", "detail")
	log.Write(w)
	if w.String() != "tag: detail\n" {
		t.Errorf("unexpected log contents: %q", w.String())
	}
}

func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	err := errors.New("rom image not found")
	log.Log(logger.Allow, "cartridge", err)
	log.Write(w)
	if w.String() != "cartridge: rom image not found\n" {
		t.Errorf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	log.Clear()
	log.Logf(logger.Allow, "cartridge", "wrapped: %v", err)
	log.Write(w)
	if w.String() != "cartridge: wrapped: rom image not found\n" {
		t.Errorf("unexpected log contents: %q", w.String())
	}
}
