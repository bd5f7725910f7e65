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

package debug_test

import (
	"strings"
	"testing"

	"github.com/implicore/implicore/internal/core/debug"
	"github.com/implicore/implicore/internal/core/implicit"
)

func TestResultSuccess(t *testing.T) {
	r := implicit.SuccessResult(nil, implicit.TermRef{Sym: "x"}, 2, nil)
	got := debug.Result(r)
	if !strings.Contains(got, "success") || !strings.Contains(got, "x") {
		t.Fatalf("Result(%+v) = %q, want it to mention success and the symbol", r, got)
	}
}

func TestResultFailure(t *testing.T) {
	f := implicit.NoMatchingFailure(implicit.ValueP(nil), nil, "no candidates in scope")
	r := implicit.FailureResult(f)
	got := debug.Result(r)
	if !strings.Contains(got, "NoMatching") {
		t.Fatalf("Result(%+v) = %q, want it to mention NoMatching", r, got)
	}
}

func TestSdump(t *testing.T) {
	got := debug.Sdump(implicit.TermRef{Sym: "y"})
	if got == "" {
		t.Fatalf("Sdump returned empty string")
	}
}
