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

package oracle

import "testing"

func TestNewWorldSeedsMarkerClasses(t *testing.T) {
	w := NewWorld()
	for _, s := range []*Sym{w.ConversionClass, w.SubtypeWitnessClass, w.CoherenceWitnessClass} {
		if s == nil {
			t.Fatal("NewWorld should seed all three marker classes")
		}
		if len(s.TypeParamNames) != 2 {
			t.Errorf("marker class %s: want 2 type params, got %d", s.Name, len(s.TypeParamNames))
		}
	}
}

func TestNewCompanionLinksClass(t *testing.T) {
	w := NewWorld()
	cls := w.NewClass("Ordering", nil)
	comp := w.NewCompanion(cls)

	if cls.Companion != comp {
		t.Fatal("NewCompanion should set class.Companion")
	}
	if comp.Kind != ModuleSym {
		t.Error("a companion should be a ModuleSym")
	}
}

func TestAddMemberKind(t *testing.T) {
	w := NewWorld()
	cls := w.NewClass("C", nil)

	val := w.AddMember(cls, "x", cls.Type, false, false)
	if val.Kind != ValSym {
		t.Error("a plain-typed member should be a ValSym")
	}

	meth := w.AddMember(cls, "m", &Method{Result: cls.Type}, true, true)
	if meth.Kind != MethodSym {
		t.Error("a Method-typed member should be a MethodSym")
	}
	if !meth.Implicit || !meth.Private {
		t.Error("AddMember should carry through implicit/private flags")
	}
}

func TestFreshNameUnique(t *testing.T) {
	w := NewWorld()
	a := w.FreshName("x")
	b := w.FreshName("x")
	if a == b {
		t.Errorf("FreshName should never repeat: got %q twice", a)
	}
}
