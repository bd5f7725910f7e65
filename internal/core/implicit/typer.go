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

import "fmt"

// CommitState is an opaque nested type-checker state. Every trial acquires
// a fresh one (Typer.Fresh); only the state attached to a chosen Success
// commits to the outer type-checker.
type CommitState any

// CyclicError is the distinguished condition a Typer panics with when it
// hits a cyclic reference mid-trial. The search marks it as having occurred
// inside implicit search and rethrows; it is never recovered locally.
type CyclicError struct {
	Ref              TermRef
	InImplicitSearch bool
}

func (e *CyclicError) Error() string {
	return fmt.Sprintf("cyclic reference involving %v", e.Ref.Sym)
}

// Typer is the external collaborator performing the actual type-checking
// actions the core cannot do itself: adapting a candidate tree to an
// expected type, applying a conversion or extension, and probing whether a
// bare name would resolve to something other than the candidate at the use
// site.
type Typer interface {
	// TypeOf returns ref's type as seen from its prefix.
	TypeOf(ref TermRef) Type

	// Fresh returns a new nested explorative state scoped to one trial.
	Fresh() CommitState

	// AdaptValue type-checks a reference to ref and adapts it to pt.
	AdaptValue(state CommitState, ref TermRef, pt Type) (Tree, CommitState, *SearchFailure)

	// ApplyConversion type-checks ref(argument) against pt.
	ApplyConversion(state CommitState, ref TermRef, argument Tree, pt Type) (Tree, CommitState, *SearchFailure)

	// ApplyExtension type-checks ref.name(argument) against mbrType.
	ApplyExtension(state CommitState, ref TermRef, name string, argument Tree, mbrType Type) (Tree, CommitState, *SearchFailure)

	// ResolveBareName type-checks name in a sibling probe, reporting the
	// symbol it denotes and whether that symbol shares a type-owner with
	// expect.
	ResolveBareName(state CommitState, name string, expect Symbol) (denotes Symbol, sameOwner bool, found bool)

	// IsSuperSelection reports whether source is a super-selection (e.g.
	// super.foo), which InferView's triviality gate rejects.
	IsSuperSelection(source Tree) bool
}
