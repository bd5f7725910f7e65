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
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/implicore/implicore/cue/token"
	"github.com/implicore/implicore/internal/core/implicit"
	"github.com/implicore/implicore/internal/oracle"
)

func TestInferImplicitSetsPositionOnFailure(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	ctx.Contextual = nil

	pos := token.NewPos("scenario.yaml", 3, 7, 42)
	result := implicit.InferImplicit(ctx, implicit.ValueP(cls.Type), nil, pos)
	if result.Success {
		t.Fatal("expected no candidate to be found for a bare class with no implicits in scope")
	}
	if result.Failure.Pos != pos {
		t.Errorf("InferImplicit should stamp the failure with the caller's origin position")
	}
}

// TestInferImplicitEmitsDictionaryPassthroughWhenEmpty confirms the common,
// non-recursive case is unaffected by InferImplicit now owning a SearchRoot:
// with nothing ever knot-tied into it, EmitDictionary must still pass the
// result tree through unchanged.
func TestInferImplicitEmitsDictionaryPassthroughWhenEmpty(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("Ordering", nil)
	comp := w.NewCompanion(cls)
	def := w.AddMember(comp, "default", cls.Type, true, false)
	ctx.Contextual = nil

	result := implicit.InferImplicit(ctx, implicit.ValueP(cls.Type), nil, token.NoPos)
	if !result.Success {
		t.Fatalf("expected the derived-scope companion to be found, got %v", result.Failure)
	}
	if result.Ref.Sym != def {
		t.Errorf("expected the winning candidate to be Ordering$.default, got %v", result.Ref.Sym)
	}
}

// TestInferImplicitOutermostOwnsDictionaryRoot confirms InferImplicit only
// establishes (and completes) a SearchRoot when it is itself the outermost
// call: a Context arriving with a History already installed (standing in
// for a nested call the surrounding compiler makes while elaborating an
// already-chosen candidate's own implicit parameters) must be left to
// BestImplicit unchanged, without InferImplicit trying to run
// EmitDictionary a second time over it.
func TestInferImplicitOutermostOwnsDictionaryRoot(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("Ordering", nil)
	comp := w.NewCompanion(cls)
	w.AddMember(comp, "default", cls.Type, true, false)
	ctx.Contextual = nil

	root := implicit.NewSearchRoot()
	ctx.History = implicit.NewSearchHistory(root)

	result := implicit.InferImplicit(ctx, implicit.ValueP(cls.Type), nil, token.NoPos)
	if !result.Success {
		t.Fatalf("expected the derived-scope companion to be found, got %v", result.Failure)
	}
	if len(root.Entries()) != 0 {
		t.Errorf("a nested InferImplicit call must not populate the caller's dictionary root on its own, got %d entries", len(root.Entries()))
	}
}

func TestInferViewRejectsTrivialTopEndpoint(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	bld := oracle.Builder{W: w}
	from := bld.IdentSym(bld.FreshSymbol("x"))

	result := implicit.InferView(ctx, from, &oracle.Top{}, cls.Type, token.NoPos)
	if result.Success {
		t.Error("InferView must reject a Top source type as trivial before ever searching")
	}
	if result.Failure.Kind != implicit.NoMatching {
		t.Errorf("expected NoMatching for a trivial endpoint, got %v", result.Failure.Kind)
	}
}

func TestInferViewRejectsTrivialBottomEndpoint(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	bld := oracle.Builder{W: w}
	from := bld.IdentSym(bld.FreshSymbol("x"))

	result := implicit.InferView(ctx, from, cls.Type, &oracle.Bottom{}, token.NoPos)
	if result.Success {
		t.Error("InferView must reject a Bottom target type as trivial before ever searching")
	}
}

// TestInferViewSucceedsThroughConversionMethod exercises the single-param,
// non-implicit-method Conversion classification path end to end: a
// contextual candidate whose declared type is Raw => Wrapper lets InferView
// bridge the two.
func TestInferViewSucceedsThroughConversionMethod(t *testing.T) {
	ctx, w := newTestContext()
	raw := w.NewClass("Raw", nil)
	wrapper := w.NewClass("Wrapper", nil)
	predef := w.NewModule("Predef")
	conv := w.AddMember(predef, "toWrapper", &oracle.Method{Params: []oracle.Type{raw.Type}, Result: wrapper.Type}, true, false)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: conv, Prefix: predef.Type})})

	bld := oracle.Builder{W: w}
	from := bld.IdentSym(bld.FreshSymbol("rawValue"))

	result := implicit.InferView(ctx, from, raw.Type, wrapper.Type, token.NoPos)
	if !result.Success {
		t.Fatalf("expected toWrapper to bridge Raw to Wrapper, got %v", result.Failure)
	}
	if result.Ref.Sym != conv {
		t.Errorf("expected the winning candidate to be toWrapper, got %v", result.Ref.Sym)
	}
}

func TestInferViewSelectionRejectsTrivialEndpoint(t *testing.T) {
	ctx, w := newTestContext()
	bld := oracle.Builder{W: w}
	from := bld.IdentSym(bld.FreshSymbol("x"))

	result := implicit.InferViewSelection(ctx, from, &oracle.Bottom{}, "double", nil, token.NoPos)
	if result.Success {
		t.Error("InferViewSelection must reject a trivial source type before ever searching")
	}
}

func TestViewExistsTrueByDirectSubtype(t *testing.T) {
	ctx, w := newTestContext()
	animal := w.NewClass("Animal", nil)
	dog := w.NewClass("Dog", []oracle.Type{animal.Type})

	if !implicit.ViewExists(ctx, dog.Type, animal.Type) {
		t.Error("ViewExists should recognize a direct subtype without needing to search")
	}
}

func TestViewExistsFalseWithNoConversionAvailable(t *testing.T) {
	ctx, w := newTestContext()
	a := w.NewClass("A", nil)
	b := w.NewClass("B", nil)
	ctx.Contextual = nil

	if implicit.ViewExists(ctx, a.Type, b.Type) {
		t.Error("ViewExists should report false when neither subtyping nor a conversion bridges the two types")
	}
}

func TestViewExistsTrueThroughConversion(t *testing.T) {
	ctx, w := newTestContext()
	raw := w.NewClass("Raw", nil)
	wrapper := w.NewClass("Wrapper", nil)
	predef := w.NewModule("Predef")
	conv := w.AddMember(predef, "toWrapper", &oracle.Method{Params: []oracle.Type{raw.Type}, Result: wrapper.Type}, true, false)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: conv, Prefix: predef.Type})})

	if !implicit.ViewExists(ctx, raw.Type, wrapper.Type) {
		t.Error("ViewExists should find the registered Raw => Wrapper conversion")
	}
}

func TestAllImplicitsUnionsContextualAndDerivedHits(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("Ordering", nil)
	comp := w.NewCompanion(cls)
	w.AddMember(comp, "default", cls.Type, true, false)

	predef := w.NewModule("Predef")
	ctxSym := w.AddMember(predef, "ctxOrdering", cls.Type, true, false)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: ctxSym, Prefix: predef.Type})})

	all := implicit.AllImplicits(ctx, implicit.ValueP(cls.Type), nil)
	var names []string
	for ref := range all {
		names = append(names, fmt.Sprintf("%v", ref.Sym))
	}
	sort.Strings(names)
	want := []string{"Ordering$.default", "Predef.ctxOrdering"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("AllImplicits mismatch (-want +got):\n%s", diff)
	}
}
