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

// Package debug renders the implicit resolution core's state to
// human-readable strings, for tests and for the CLI's -v output.
package debug

import (
	"fmt"

	"github.com/kr/pretty"

	"github.com/implicore/implicore/internal/core/implicit"
)

// Candidate renders a single candidate the way the search's trace lines
// do: symbol, nesting level, and kind mask.
func Candidate(c implicit.Candidate) string {
	return c.String()
}

// Result renders a SearchResult: the winning reference and level on
// success, or ExplainFailure's one-line description on failure.
func Result(r implicit.SearchResult) string {
	if r.Success {
		return fmt.Sprintf("success: %v@%d", r.Ref.Sym, r.Level)
	}
	return implicit.ExplainFailure(r.Failure)
}

// Sdump renders an arbitrary piece of core state (a SearchFailure, a slice
// of candidates, dictionary entries) with go-lang-syntax field names and
// values, for the CLI's -v flag and for diagnosing a failing test by eye.
// It is the one place in the core that reaches for an external
// pretty-printer: everything else renders by hand with fmt, because it
// already knows the shape it wants.
func Sdump(v any) string {
	return pretty.Sprint(v)
}
