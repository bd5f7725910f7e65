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

import (
	"fmt"

	"github.com/implicore/implicore/internal/core/implicit"
)

// extensionEntry is one declared "extension method": a method named Name
// usable on any receiver assignable to On, resolving to Ref.
type extensionEntry struct {
	On   Type
	Name string
	Ref  implicit.TermRef
}

// World is the mutable universe a scenario populates: every class,
// top-level value, and extension method a test or the CLI wants the core
// to see. Oracle, Typer and TreeBuilder all read from the same World so
// that a scenario built once is consistent across all three collaborators.
type World struct {
	Classes    map[string]*Sym
	Modules    map[string]*Sym // top-level objects, keyed by name
	extensions []extensionEntry

	// WellKnown marker classes DerivesFromConversion / DerivesFromSubtypeWitness
	// / IsCoherenceWitness recognize by identity.
	ConversionClass       *Sym
	SubtypeWitnessClass   *Sym
	CoherenceWitnessClass *Sym

	nextFresh int
}

// NewWorld builds an empty World seeded with the three well-known marker
// classes every scenario can derive implicits from.
func NewWorld() *World {
	w := &World{
		Classes: map[string]*Sym{},
		Modules: map[string]*Sym{},
	}
	w.ConversionClass = w.NewClass("Conversion", nil, "T0", "T1")
	w.SubtypeWitnessClass = w.NewClass("<:<", nil, "T0", "T1")
	w.CoherenceWitnessClass = w.NewClass("=:=", nil, "T0", "T1")
	return w
}

// NewClass registers a named class with the given direct parents and type
// parameter names (in declaration order), and returns its symbol.
func (w *World) NewClass(name string, parents []Type, typeParams ...string) *Sym {
	s := &Sym{
		Name:           name,
		Kind:           ClassSym,
		Parents:        parents,
		TypeParamNames: typeParams,
		Members:        map[string]*Sym{},
	}
	s.Type = &Named{Sym: s}
	w.Classes[name] = s
	return s
}

// NewCompanion attaches an empty companion module to class, returning its
// symbol. Members are added with AddMember(companion, ...). The module is
// named with the class's name plus the "$" suffix the JVM encoding uses,
// which is also how scenario files address it.
func (w *World) NewCompanion(class *Sym) *Sym {
	m := &Sym{Name: class.Name + "$", Kind: ModuleSym, Members: map[string]*Sym{}}
	m.Type = &Named{Sym: m}
	class.Companion = m
	return m
}

// NewModule registers a standalone top-level object (no companion class),
// returning its symbol.
func (w *World) NewModule(name string) *Sym {
	m := &Sym{Name: name, Kind: ModuleSym, Members: map[string]*Sym{}}
	m.Type = &Named{Sym: m}
	w.Modules[name] = m
	return m
}

// AddMember declares a value or method member named name of type t on
// owner (a class or module symbol), optionally implicit and/or private,
// and returns the new member's symbol.
func (w *World) AddMember(owner *Sym, name string, t Type, implicit, private bool) *Sym {
	kind := ValSym
	if _, ok := t.(*Method); ok {
		kind = MethodSym
	}
	if _, ok := t.(*Poly); ok {
		kind = MethodSym
	}
	m := &Sym{Name: name, Kind: kind, Owner: owner, Type: t, Implicit: implicit, Private: private}
	owner.Members[name] = m
	return m
}

// AddExtension declares an extension method named name, callable on any
// receiver assignable to on, resolving to ref.
func (w *World) AddExtension(on Type, name string, ref implicit.TermRef) {
	w.extensions = append(w.extensions, extensionEntry{On: on, Name: name, Ref: ref})
}

// TypeVarFor returns the i'th positional type parameter reference used
// inside a generic class's own declared parent/member types.
func (w *World) TypeVarFor(i int) *TypeVar {
	return &TypeVar{Name: ordinalParamName(i), Upper: TopType}
}

func ordinalParamName(i int) string { return fmt.Sprintf("T%d", i) }

// FreshName returns a new name with the given hint as prefix, unique
// within this World. It backs implicit.TreeBuilder.FreshSymbol.
func (w *World) FreshName(hint string) string {
	w.nextFresh++
	return fmt.Sprintf("%s$%d", hint, w.nextFresh)
}
