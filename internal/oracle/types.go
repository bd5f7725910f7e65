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

// Package oracle is a small reference TypeOracle/Typer/TreeBuilder triple
// implementing a nominal type algebra (named classes with parents and
// companions, method and polymorphic types, singleton literal types,
// by-name and Not[_] prototypes). It exists so the resolution core has
// something concrete to run against in tests and the CLI; it is not a
// general-purpose type-checker.
package oracle

import (
	"fmt"
	"strings"

	"github.com/implicore/implicore/internal/core/implicit"
)

// Type narrows implicit.Type to the closed set of concrete representations
// this package's TypeOracle/Typer actually produce and accept.
type Type interface {
	implicit.Type
	isType()
}

// SymKind discriminates the roles a Sym can play.
type SymKind uint8

const (
	ClassSym SymKind = iota
	ModuleSym
	ValSym
	MethodSym
	TypeParamSym
)

// Sym is the reference implementation's Symbol: every symbol minted by a
// World or a Builder is a unique pointer, so == identity comparison (the only thing
// implicit.Symbol promises) holds.
type Sym struct {
	Name     string
	Kind     SymKind
	Owner    *Sym // enclosing class/module, nil at top level
	Private  bool
	Implicit bool // ValSym/MethodSym only

	// Type is this symbol's declared type: the class's own Named type for
	// ClassSym, the companion's Named type for ModuleSym, the member's
	// value/method type for ValSym/MethodSym.
	Type Type

	// Parents holds the direct supertypes, ClassSym only.
	Parents []Type

	// TypeParamNames names this class's type parameters in declaration
	// order ("T0", "T1", ... by convention; see NewClass), ClassSym only.
	TypeParamNames []string

	// Companion links a ClassSym to its companion ModuleSym, if any.
	Companion *Sym

	// Members holds name -> member symbol, ClassSym/ModuleSym only.
	Members map[string]*Sym
}

func (s *Sym) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.Owner != nil {
		return s.Owner.Name + "." + s.Name
	}
	return s.Name
}

// Each concrete type below implements implicit.Type (String() string) plus
// an unexported isType marker; identity and structure are read back out
// through the TypeOracle methods, never through a type switch outside this
// package's own implementation.

// Named is a (possibly applied) reference to a class symbol.
type Named struct {
	Sym  *Sym
	Args []Type
}

func (t *Named) isType() {}
func (t *Named) String() string {
	if len(t.Args) == 0 {
		return t.Sym.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Sym.Name, strings.Join(parts, ", "))
}

// Func is a plain (non-method) function value type, argN => Result.
type Func struct {
	Params []Type
	Result Type
}

func (t *Func) isType() {}
func (t *Func) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), t.Result.String())
}

// Method is a def's type: one parameter list, optionally implicit.
type Method struct {
	Params   []Type
	Result   Type
	Implicit bool
}

func (t *Method) isType() {}
func (t *Method) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	kw := ""
	if t.Implicit {
		kw = "implicit "
	}
	return fmt.Sprintf("(%s%s): %s", kw, strings.Join(parts, ", "), t.Result.String())
}

// Poly is a polymorphic (type-parameterized) wrapper around Result, which
// is typically a *Method.
type Poly struct {
	TypeParams []*Sym
	Result     Type
}

func (t *Poly) isType() {}
func (t *Poly) String() string {
	names := make([]string, len(t.TypeParams))
	for i, p := range t.TypeParams {
		names[i] = p.Name
	}
	return fmt.Sprintf("[%s] => %s", strings.Join(names, ", "), t.Result.String())
}

// TypeVar is an inference variable with an upper bound.
type TypeVar struct {
	Name  string
	Upper Type
}

func (t *TypeVar) isType() {}
func (t *TypeVar) String() string { return "?" + t.Name }

// Singleton is a literal singleton type, e.g. the type of the literal 1.
type Singleton struct {
	Base  Type
	Value string
}

func (t *Singleton) isType() {}
func (t *Singleton) String() string { return t.Value + "." + "type" }

// ByName is a lazily-evaluated parameter prototype, e.g. => T. It is the
// boundary SearchHistory's knot-tying rule looks for.
type ByName struct {
	Elem Type
}

func (t *ByName) isType() {}
func (t *ByName) String() string { return "=> " + t.Elem.String() }

// Not is a coherence-witness negation prototype: Not[Arg].
type Not struct {
	Arg Type
}

func (t *Not) isType() {}
func (t *Not) String() string { return "Not[" + t.Arg.String() + "]" }

// Top and Bottom are the trivial endpoints InferView's gate rejects.
type Top struct{}

func (t *Top) isType() {}
func (t *Top) String() string { return "Any" }

type Bottom struct{}

func (t *Bottom) isType() {}
func (t *Bottom) String() string { return "Nothing" }

var (
	TopType    = &Top{}
	BottomType = &Bottom{}
)

// SelectionMarker is a ResType standing in for "a term providing a member
// named Name", the shape classifyView's extension arm looks for via its
// unexported SelectionName duck-typed interface.
type SelectionMarker struct {
	Name string
}

func (t *SelectionMarker) isType() {}
func (t *SelectionMarker) String() string { return ".#" + t.Name }

// SelectionName implements the interface classifyView's asSelection
// recognizes.
func (t *SelectionMarker) SelectionName() (string, bool) { return t.Name, true }
