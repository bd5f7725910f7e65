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

package implicit_test

import (
	"testing"

	"github.com/implicore/implicore/internal/core/implicit"
	"github.com/implicore/implicore/internal/oracle"
)

func TestBestImplicitSingleCandidateSucceeds(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	sole := w.AddMember(predef, "sole", cls.Type, true, false)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: sole, Prefix: predef.Type})})

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if !result.Success || result.Ref.Sym != sole {
		t.Fatalf("expected sole to be the unique winner, got %+v", result)
	}
}

func TestBestImplicitAmbiguousUnrelatedCandidatesFail(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	a := w.AddMember(predef, "a", cls.Type, true, false)
	b := w.AddMember(predef, "b", cls.Type, true, false)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{
		implicit.Plain(implicit.TermRef{Sym: a, Prefix: predef.Type}),
		implicit.Plain(implicit.TermRef{Sym: b, Prefix: predef.Type}),
	})

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if result.Success {
		t.Fatalf("two equally-ranked candidates of the same type should be ambiguous, got success %+v", result)
	}
	if result.Failure.Kind != implicit.Ambiguous {
		t.Errorf("expected an ambiguous failure, got %v", result.Failure.Kind)
	}
}

func TestBestImplicitLegacyContinuesPastAmbiguity(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	a := w.AddMember(predef, "a", cls.Type, true, false)
	b := w.AddMember(predef, "b", cls.Type, true, false)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{
		implicit.Plain(implicit.TermRef{Sym: a, Prefix: predef.Type}),
		implicit.Plain(implicit.TermRef{Sym: b, Prefix: predef.Type}),
	})
	ctx.Legacy = true

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if result.Success {
		t.Fatal("legacy mode still reports no overall winner among two equally-ranked candidates")
	}
}

// TestBestImplicitHigherLevelWinsWithoutAmbiguity exercises sortCandidates'
// level ordering: a candidate pushed at a deeper contextual level is tried
// (and accepted) before the outer one, and disambiguate never needs to run
// pairwise against a strictly-worse-level alternative.
func TestBestImplicitHigherLevelWinsWithoutAmbiguity(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	outerSym := w.AddMember(predef, "outer", cls.Type, true, false)
	innerSym := w.AddMember(predef, "inner", cls.Type, true, false)

	local := w.NewClass("Local", nil)
	outer := implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: outerSym, Prefix: predef.Type})})
	inner := outer.Push([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: innerSym, Prefix: predef.Type})}, local, local, false)
	ctx.Contextual = inner

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if !result.Success || result.Ref.Sym != innerSym {
		t.Fatalf("expected the deeper-level candidate to win outright, got %+v", result)
	}
}

func TestBestImplicitContextualFallsBackToDerived(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("Ordering", nil)
	comp := w.NewCompanion(cls)
	def := w.AddMember(comp, "default", cls.Type, true, false)

	// No contextual candidates at all; the derived (companion) pass must
	// pick up default.
	ctx.Contextual = nil

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if !result.Success || result.Ref.Sym != def {
		t.Fatalf("expected fallback to the derived pass to find Ordering's companion default, got %+v", result)
	}
}

// cyclicTyper panics with a CyclicError on every adaptation, standing in
// for an underlying typer that hits a cyclic reference mid-trial.
type cyclicTyper struct {
	oracle.Typer
}

func (t cyclicTyper) AdaptValue(state implicit.CommitState, ref implicit.TermRef, pt implicit.Type) (implicit.Tree, implicit.CommitState, *implicit.SearchFailure) {
	panic(&implicit.CyclicError{Ref: ref})
}

func TestTryImplicitMarksCyclicErrorsAndRethrows(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	sole := w.AddMember(predef, "sole", cls.Type, true, false)
	ctx.Typer = cyclicTyper{oracle.Typer{W: w}}
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: sole, Prefix: predef.Type})})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("a cyclic reference in the underlying typer must propagate, not be recovered")
		}
		ce, ok := r.(*implicit.CyclicError)
		if !ok {
			t.Fatalf("recovered %T, want *implicit.CyclicError", r)
		}
		if !ce.InImplicitSearch {
			t.Error("the rethrown condition should be marked as having occurred inside implicit search")
		}
	}()
	implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
}

// TestBestImplicitNotProtoWithNoWitnessCandidateFails documents the
// boundary case for coherence witnesses (negate): a Not[_]
// prototype that no declared candidate classifies against never reaches
// rank's per-candidate negation step at all, since an empty eligible list
// short-circuits to NoMatching before any candidate is tried.
func TestBestImplicitNotProtoWithNoWitnessCandidateFails(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	w.AddMember(predef, "sole", cls.Type, true, false)

	notPt := implicit.ValueP(&oracle.Not{Arg: cls.Type})
	result := implicit.BestImplicit(ctx, notPt, nil, true)
	if result.Success {
		t.Error("a Not[_] prototype with no eligible candidate of that exact shape should report NoMatching, not succeed")
	}
	if result.Failure.Kind != implicit.NoMatching {
		t.Errorf("expected NoMatching, got %v", result.Failure.Kind)
	}
}
