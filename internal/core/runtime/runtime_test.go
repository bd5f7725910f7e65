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

package runtime

import (
	"testing"

	"github.com/implicore/implicore/internal/core/implicit"
	"github.com/implicore/implicore/internal/oracle"
)

func testRuntime() (*Runtime, *oracle.World) {
	w := oracle.NewWorld()
	o := oracle.Oracle{W: w}
	ty := oracle.Typer{W: w}
	bld := oracle.Builder{W: w}
	return New(o, ty, bld), w
}

func TestNewInitializesScope(t *testing.T) {
	r, _ := testRuntime()
	if !r.IsInitialized() {
		t.Fatal("New should initialize the scope cache")
	}
}

func TestNewContextSharesScope(t *testing.T) {
	r, _ := testRuntime()
	c1 := r.NewContext()
	c2 := r.NewContext()
	if c1.Scope != c2.Scope {
		t.Error("contexts from the same Runtime should share one ScopeCache")
	}
}

func TestSetLegacyPropagates(t *testing.T) {
	r, _ := testRuntime()
	r.SetLegacy(true)
	ctx := r.NewContext()
	if !ctx.Legacy {
		t.Error("SetLegacy(true) should make new contexts legacy")
	}
}

func TestRuntimeResolvesImplicit(t *testing.T) {
	r, w := testRuntime()
	animal := w.NewClass("Animal", nil)
	predef := w.NewModule("Predef")
	fido := w.AddMember(predef, "fido", animal.Type, true, false)

	ctx := r.NewContext()
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{{Ref: implicit.TermRef{Sym: fido, Prefix: predef.Type}}})

	result := implicit.BestImplicit(ctx, implicit.ValueP(animal.Type), nil, true)
	if !result.Success {
		t.Fatalf("expected fido to satisfy an Animal search, got failure: %s", implicit.ExplainFailure(result.Failure))
	}
	if result.Ref.Sym != fido {
		t.Errorf("resolved to %v, want fido", result.Ref.Sym)
	}
}

func TestRuntimeNoMatch(t *testing.T) {
	r, w := testRuntime()
	animal := w.NewClass("Animal", nil)
	str := w.NewClass("String", nil)

	ctx := r.NewContext()
	result := implicit.BestImplicit(ctx, implicit.ValueP(str.Type), nil, true)
	if result.Success {
		t.Fatal("expected no implicit to satisfy a String search with no candidates declared")
	}
	_ = animal
}
