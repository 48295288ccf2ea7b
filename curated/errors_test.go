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

package curated_test

import (
	"fmt"
	"testing"

	"github.com/dgn09/core/curated"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	if e.Error() != "test error: foo" {
		t.Errorf("unexpected message: %q", e.Error())
	}

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testError, e)
	if f.Error() != "test error: foo" {
		t.Errorf("unexpected message: %q", f.Error())
	}
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	if !curated.Is(e, testError) {
		t.Error("expected Is() to match")
	}

	// Has() should fail because we haven't included testErrorB anywhere in the error
	if curated.Has(e, testErrorB) {
		t.Error("did not expect Has() to match")
	}

	// wrapping an error in a different pattern: Is() matches only the
	// outer pattern, Has() matches both
	f := curated.Errorf(testErrorB, e)
	if curated.Is(f, testError) {
		t.Error("did not expect Is() to match")
	}
	if !curated.Is(f, testErrorB) {
		t.Error("expected Is() to match")
	}
	if !curated.Has(f, testError) {
		t.Error("expected Has() to match")
	}
	if !curated.Has(f, testErrorB) {
		t.Error("expected Has() to match")
	}

	if !curated.IsAny(e) || !curated.IsAny(f) {
		t.Error("expected IsAny() to be true for curated errors")
	}
}

func TestPlainErrors(t *testing.T) {
	e := fmt.Errorf("plain test error")
	if curated.IsAny(e) {
		t.Error("did not expect plain error to be curated")
	}

	if curated.Has(e, testError) {
		t.Error("did not expect Has() to match a plain error")
	}
}

func TestWrapping(t *testing.T) {
	a := 10
	e := curated.Errorf("error: value = %d", a)
	f := curated.Errorf("fatal: %v", e)

	if !curated.Has(f, "error: value = %d") {
		t.Error("expected Has() to match")
	}
	if curated.Is(f, "error: value = %d") {
		t.Error("did not expect Is() to match")
	}
	if !curated.Has(f, "fatal: %v") {
		t.Error("expected Has() to match")
	}
	if !curated.Is(f, "fatal: %v") {
		t.Error("expected Is() to match")
	}

	if f.Error() != "fatal: error: value = 10" {
		t.Errorf("unexpected message: %q", f.Error())
	}
}
