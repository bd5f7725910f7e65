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

func newTestContext() (*implicit.Context, *oracle.World) {
	w := oracle.NewWorld()
	o := oracle.Oracle{W: w}
	ty := oracle.Typer{W: w}
	bld := oracle.Builder{W: w}
	return implicit.NewContext(o, ty, bld, implicit.NewScopeCache()), w
}

func TestImplicitScopeFindsOwnCompanion(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("Ordering", nil)
	comp := w.NewCompanion(cls)

	scope := implicit.ImplicitScope(ctx, cls.Type)
	refs := scope.Companions.Refs()
	if len(refs) != 1 || refs[0].Sym != comp {
		t.Fatalf("ImplicitScope(Ordering) companions = %v, want [Ordering$]", refs)
	}
}

func TestImplicitScopeUnionsParents(t *testing.T) {
	ctx, w := newTestContext()
	animal := w.NewClass("Animal", nil)
	animalComp := w.NewCompanion(animal)
	dog := w.NewClass("Dog", []oracle.Type{animal.Type})

	scope := implicit.ImplicitScope(ctx, dog.Type)
	refs := scope.Companions.Refs()
	if len(refs) != 1 || refs[0].Sym != animalComp {
		t.Fatalf("ImplicitScope(Dog) companions = %v, want [Animal$] via parent union", refs)
	}
}

func TestImplicitScopeCachesRoot(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	w.NewCompanion(cls)

	first := implicit.ImplicitScope(ctx, cls.Type)
	second := implicit.ImplicitScope(ctx, cls.Type)
	if first != second {
		t.Error("ImplicitScope should return the cached *OfTypeImplicits on a repeat call")
	}
}

func TestOfTypeImplicitsEligibleCaches(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	comp := w.NewCompanion(cls)
	w.AddMember(comp, "default", cls.Type, true, false)

	scope := implicit.ImplicitScope(ctx, cls.Type)
	pt := implicit.ValueP(cls.Type)
	first := scope.Eligible(ctx, pt)
	if len(first) != 1 {
		t.Fatalf("Eligible = %d candidates, want 1", len(first))
	}
	second := scope.Eligible(ctx, pt)
	if len(second) != 1 {
		t.Fatal("cached Eligible call changed shape")
	}
}
