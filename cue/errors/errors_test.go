// Copyright 2024 The Implicore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"testing"

	"github.com/implicore/implicore/cue/token"
)

func TestNewfCarriesPosition(t *testing.T) {
	pos := token.NewPos("scenario.yaml", 3, 7, 42)
	err := Newf(pos, "no candidate for %s", "Ordering")

	if err.Position() != pos {
		t.Errorf("Position() = %v, want %v", err.Position(), pos)
	}
	if got, want := err.Error(), "no candidate for Ordering"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapfPrefixesAndUnwraps(t *testing.T) {
	inner := Newf(token.NoPos, "inner detail")
	outer := Wrapf(inner, token.NoPos, "loading scenario")

	if got, want := outer.Error(), "loading scenario: inner detail"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(outer, inner) {
		t.Error("Is(outer, inner) should hold through the wrap chain")
	}
}

func TestPositionsDedupes(t *testing.T) {
	pos := token.NewPos("a.yaml", 1, 1, 0)
	err := Wrapf(Newf(pos, "inner"), pos, "outer")

	got := Positions(err)
	if len(got) != 1 {
		t.Fatalf("Positions() = %d entries, want 1 after dedup", len(got))
	}
	if got[0] != pos {
		t.Errorf("Positions()[0] = %v, want %v", got[0], pos)
	}
}
