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

package implicit

import (
	"fmt"

	"github.com/implicore/implicore/cue/errors"
	"github.com/implicore/implicore/cue/token"
)

// FailureKind discriminates the search-failure taxonomy. All are
// values, never thrown; only the distinguished cyclic-reference condition
// from the underlying typer is allowed to propagate as an exception, and
// that happens entirely inside Typer implementations, not here.
type FailureKind uint8

const (
	NoMatching FailureKind = iota
	Mismatched
	Shadowed
	Ambiguous
	Diverging
)

func (k FailureKind) String() string {
	switch k {
	case NoMatching:
		return "NoMatching"
	case Mismatched:
		return "Mismatched"
	case Shadowed:
		return "Shadowed"
	case Ambiguous:
		return "Ambiguous"
	case Diverging:
		return "Diverging"
	default:
		return "Unknown"
	}
}

// SearchFailure is the tagged failure value of a search. Only the fields
// relevant to Kind are populated; callers should branch on Kind before
// reading Alt1/Alt2/ShadowedBy/Ref.
type SearchFailure struct {
	Kind FailureKind

	Pt       Proto
	Argument Tree
	Pos      token.Pos

	// Mismatched, Shadowed, Diverging
	Ref TermRef

	// Shadowed
	ShadowedBy Symbol

	// Ambiguous
	Alt1, Alt2           TermRef
	Alt1Level, Alt2Level int

	// NoMatching
	ConstraintSnapshot string

	// size is the structural size of the diagnostic's tree/type, used by
	// rank's best-diagnostic tie-break on total failure.
	size int
}

func (f *SearchFailure) isAmbiguous() bool { return f != nil && f.Kind == Ambiguous }
func (f *SearchFailure) isDiverging() bool { return f != nil && f.Kind == Diverging }
func (f *SearchFailure) isShadowed() bool  { return f != nil && f.Kind == Shadowed }

// NoMatchingFailure builds a NoMatching failure.
func NoMatchingFailure(pt Proto, argument Tree, snapshot string) *SearchFailure {
	return &SearchFailure{Kind: NoMatching, Pt: pt, Argument: argument, ConstraintSnapshot: snapshot}
}

// MismatchedFailure builds a Mismatched failure.
func MismatchedFailure(ref TermRef, pt Proto, argument Tree) *SearchFailure {
	return &SearchFailure{Kind: Mismatched, Ref: ref, Pt: pt, Argument: argument}
}

// ShadowedFailure builds a Shadowed failure.
func ShadowedFailure(ref TermRef, by Symbol, pt Proto, argument Tree) *SearchFailure {
	return &SearchFailure{Kind: Shadowed, Ref: ref, ShadowedBy: by, Pt: pt, Argument: argument}
}

// AmbiguousFailure builds an Ambiguous failure.
func AmbiguousFailure(alt1, alt2 TermRef, level1, level2 int, pt Proto, argument Tree) *SearchFailure {
	return &SearchFailure{
		Kind: Ambiguous,
		Alt1: alt1, Alt1Level: level1,
		Alt2: alt2, Alt2Level: level2,
		Pt: pt, Argument: argument,
	}
}

// DivergingFailure builds a Diverging failure.
func DivergingFailure(ref TermRef, pt Proto, argument Tree) *SearchFailure {
	return &SearchFailure{Kind: Diverging, Ref: ref, Pt: pt, Argument: argument}
}

// SearchResult is the tagged sum returned by a search. Callers
// must test Success before reading Tree/Ref/Level/State, or Failure.
type SearchResult struct {
	Success bool

	Tree  Tree
	Ref   TermRef
	Level int
	State CommitState

	// Inlineable records whether a contextual success may be inlined at
	// its use site, set by BestImplicit on success.
	Inlineable bool

	Failure *SearchFailure
}

// SuccessResult builds a Success result.
func SuccessResult(tree Tree, ref TermRef, level int, state CommitState) SearchResult {
	return SearchResult{Success: true, Tree: tree, Ref: ref, Level: level, State: state}
}

// FailureResult builds a Failure result.
func FailureResult(f *SearchFailure) SearchResult {
	return SearchResult{Success: false, Failure: f}
}

// ExplainFailure renders a one-line, tooling-facing description of a
// failure: which taxonomy case fired and the candidates involved, never
// used for control flow.
func ExplainFailure(f *SearchFailure) string {
	if f == nil {
		return "no failure"
	}
	switch f.Kind {
	case NoMatching:
		return fmt.Sprintf("NoMatching: no candidate satisfies %v", f.Pt.describe())
	case Mismatched:
		return fmt.Sprintf("Mismatched: %v type-checked but failed to adapt to %v", f.Ref.Sym, f.Pt.describe())
	case Shadowed:
		return fmt.Sprintf("Shadowed: %v is shadowed by %v at the use site", f.Ref.Sym, f.ShadowedBy)
	case Ambiguous:
		return fmt.Sprintf("Ambiguous: %v and %v are equally preferred for %v", f.Alt1.Sym, f.Alt2.Sym, f.Pt.describe())
	case Diverging:
		return fmt.Sprintf("Diverging: %v would recurse without making progress on %v", f.Ref.Sym, f.Pt.describe())
	default:
		return "unknown failure"
	}
}

// Err converts f into a reportable error carrying f's origin position, for
// callers that surface a search failure through the errors package rather
// than branching on Kind themselves.
func (f *SearchFailure) Err() errors.Error {
	if f == nil {
		return nil
	}
	return errors.Newf(f.Pos, "%s", ExplainFailure(f))
}

func (p Proto) describe() string {
	switch p.Kind {
	case ViewProtoKind:
		return fmt.Sprintf("%v => %v", p.ArgType, p.ResType)
	case SelectionProtoKind:
		return fmt.Sprintf(".%s: %v", p.Name, p.MbrType)
	default:
		return fmt.Sprintf("%v", p.Type)
	}
}
