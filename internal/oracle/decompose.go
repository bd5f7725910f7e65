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
	"sort"

	"github.com/implicore/implicore/internal/core/implicit"
)

// Decompose reports t's structural shape for ImplicitScope's traversal.
func (Oracle) Decompose(t implicit.Type) implicit.Shape {
	switch x := typ(t).(type) {
	case *Named:
		if len(x.Args) == 0 {
			return implicit.Shape{Kind: implicit.ShapeClass, Sym: x.Sym}
		}
		return implicit.Shape{Kind: implicit.ShapeApplied, Tycon: &Named{Sym: x.Sym}, Args: toIfaceTypes(x.Args)}
	case *Poly:
		return implicit.Shape{Kind: implicit.ShapeLambda, Result: x.Result}
	case *TypeVar:
		return implicit.Shape{Kind: implicit.ShapeTypeVar, Underlying: x.Upper}
	case *Func:
		parts := append(append([]implicit.Type{}, toIfaceTypes(x.Params)...), x.Result)
		return implicit.Shape{Kind: implicit.ShapeOther, Parts: parts}
	case *Method:
		parts := append(append([]implicit.Type{}, toIfaceTypes(x.Params)...), x.Result)
		return implicit.Shape{Kind: implicit.ShapeOther, Parts: parts}
	case *ByName:
		return implicit.Shape{Kind: implicit.ShapeOther, Parts: []implicit.Type{x.Elem}}
	case *Not:
		return implicit.Shape{Kind: implicit.ShapeOther, Parts: []implicit.Type{x.Arg}}
	default:
		return implicit.Shape{Kind: implicit.ShapeOther}
	}
}

func toIfaceTypes(ts []Type) []implicit.Type {
	out := make([]implicit.Type, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

// Companion returns sym's companion module reference, if any.
func (Oracle) Companion(s implicit.Symbol) (implicit.TermRef, bool) {
	sy := sym(s)
	if sy == nil || sy.Companion == nil {
		return implicit.TermRef{}, false
	}
	return implicit.TermRef{Sym: sy.Companion, Prefix: sy.Companion.Type}, true
}

// ImplicitMembers returns the implicit members declared on the module ref
// denotes, prefixed at the module's own type, in name order so repeated
// runs enumerate derived candidates identically.
func (Oracle) ImplicitMembers(ref implicit.TermRef) []implicit.TermRef {
	sy := sym(ref.Sym)
	if sy == nil || len(sy.Members) == 0 {
		return nil
	}
	names := make([]string, 0, len(sy.Members))
	for name, m := range sy.Members {
		if m.Implicit {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]implicit.TermRef, len(names))
	for i, name := range names {
		out[i] = implicit.TermRef{Sym: sy.Members[name], Prefix: sy.Type}
	}
	return out
}

// Parents returns sym's direct parent types.
func (Oracle) Parents(s implicit.Symbol) []implicit.Type {
	sy := sym(s)
	if sy == nil {
		return nil
	}
	return toIfaceTypes(sy.Parents)
}

// MethodShape reports a method type's first-parameter-list arity and
// whether it's implicit, unwrapping one layer of Poly first.
func (Oracle) MethodShape(t implicit.Type) (int, bool, bool) {
	x := typ(t)
	if p, ok := x.(*Poly); ok {
		x = p.Result
	}
	m, ok := x.(*Method)
	if !ok {
		return 0, false, false
	}
	return len(m.Params), m.Implicit, true
}

// PolyResult reports a polymorphic type's wrapped result type.
func (Oracle) PolyResult(t implicit.Type) (implicit.Type, bool) {
	p, ok := typ(t).(*Poly)
	if !ok {
		return nil, false
	}
	return p.Result, true
}

// IsBareRef is always false in this algebra: every TermRef's type is fully
// resolved by the time the core sees it, since there's no overload-set
// representation here.
func (Oracle) IsBareRef(implicit.Type) bool { return false }

// IsFunctionType reports whether t is a plain (non-method) function type.
func (Oracle) IsFunctionType(t implicit.Type) bool {
	_, ok := typ(t).(*Func)
	return ok
}

func (o Oracle) derivesFrom(t Type, marker *Sym) bool {
	n, ok := t.(*Named)
	if !ok {
		return false
	}
	if n.Sym == marker {
		return true
	}
	for _, p := range n.Sym.Parents {
		if o.derivesFrom(instantiate(p, n.Sym, n.Args), marker) {
			return true
		}
	}
	return false
}

// DerivesFromConversion reports whether t derives from the World's
// Conversion marker class.
func (o Oracle) DerivesFromConversion(t implicit.Type) bool {
	return o.derivesFrom(typ(t), o.W.ConversionClass)
}

// DerivesFromSubtypeWitness reports whether t derives from the World's
// <:< marker class, and whether its two type arguments are identical (the
// trivial identity witness, excluded from Conversion by the caller).
func (o Oracle) DerivesFromSubtypeWitness(t implicit.Type) (bool, bool) {
	n, ok := typ(t).(*Named)
	if !ok || !o.derivesFrom(n, o.W.SubtypeWitnessClass) {
		return false, false
	}
	isIdentity := len(n.Args) == 2 && typesEqual(n.Args[0], n.Args[1])
	return true, isIdentity
}

// LegacyFunction1 reports whether t is a single-argument function type,
// eligible as a conversion only in Context.Legacy mode.
func (Oracle) LegacyFunction1(t implicit.Type) bool {
	f, ok := typ(t).(*Func)
	return ok && len(f.Params) == 1
}

// ResolveExtension looks up an extension method named name usable on the
// widened type of t.
func (o Oracle) ResolveExtension(t implicit.Type, name string) (implicit.TermRef, bool) {
	recv := o.Widen(t)
	for _, e := range o.W.extensions {
		if e.Name != name {
			continue
		}
		if o.Subtype(recv, e.On) {
			return e.Ref, true
		}
	}
	return implicit.TermRef{}, false
}

// WidenSingletonParams widens singleton parameter types of a (possibly
// polymorphic) method type.
func (o Oracle) WidenSingletonParams(t implicit.Type) implicit.Type {
	x := typ(t)
	if p, ok := x.(*Poly); ok {
		inner := o.WidenSingletonParams(p.Result)
		return &Poly{TypeParams: p.TypeParams, Result: inner.(Type)}
	}
	m, ok := x.(*Method)
	if !ok {
		return t
	}
	params := make([]Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = o.Widen(p).(Type)
	}
	return &Method{Params: params, Result: m.Result, Implicit: m.Implicit}
}

// IsNotProto reports whether t is a Not[_] prototype.
func (Oracle) IsNotProto(t implicit.Type) (implicit.Type, bool) {
	n, ok := typ(t).(*Not)
	if !ok {
		return nil, false
	}
	return n.Arg, true
}

// IsByNameType reports whether t is a by-name prototype.
func (Oracle) IsByNameType(t implicit.Type) bool {
	_, ok := typ(t).(*ByName)
	return ok
}

// IsCoherenceWitness reports whether t derives from the World's =:=
// marker class.
func (o Oracle) IsCoherenceWitness(t implicit.Type) bool {
	return o.derivesFrom(typ(t), o.W.CoherenceWitnessClass)
}

// TypeSize is the structural node count of t, the measure divergence
// checking compares across frames.
func (Oracle) TypeSize(t implicit.Type) int { return typeSize(typ(t)) }

func typeSize(t Type) int {
	switch x := t.(type) {
	case nil:
		return 0
	case *Named:
		n := 1
		for _, a := range x.Args {
			n += typeSize(a)
		}
		return n
	case *Func:
		n := 1 + typeSize(x.Result)
		for _, p := range x.Params {
			n += typeSize(p)
		}
		return n
	case *Method:
		n := 1 + typeSize(x.Result)
		for _, p := range x.Params {
			n += typeSize(p)
		}
		return n
	case *Poly:
		return 1 + typeSize(x.Result)
	case *ByName:
		return 1 + typeSize(x.Elem)
	case *Not:
		return 1 + typeSize(x.Arg)
	default:
		return 1
	}
}

// IsTrivialTop reports whether t is Top.
func (Oracle) IsTrivialTop(t implicit.Type) bool {
	_, ok := typ(t).(*Top)
	return ok
}

// IsTrivialBottom reports whether t is Bottom.
func (Oracle) IsTrivialBottom(t implicit.Type) bool {
	_, ok := typ(t).(*Bottom)
	return ok
}

// IsValueType reports whether t classifies as a realized value type: not a
// bare function/method/polymorphic shape, by-name prototype, or negation.
func (Oracle) IsValueType(t implicit.Type) bool {
	switch typ(t).(type) {
	case *Method, *Poly, *ByName, *Not:
		return false
	default:
		return true
	}
}

// CoveringSet is the set of named-type symbols appearing anywhere in t.
func (Oracle) CoveringSet(t implicit.Type) map[implicit.Symbol]struct{} {
	out := map[implicit.Symbol]struct{}{}
	collectCovering(typ(t), out)
	return out
}

func collectCovering(t Type, out map[implicit.Symbol]struct{}) {
	switch x := t.(type) {
	case *Named:
		out[x.Sym] = struct{}{}
		for _, a := range x.Args {
			collectCovering(a, out)
		}
	case *Func:
		collectCovering(x.Result, out)
		for _, p := range x.Params {
			collectCovering(p, out)
		}
	case *Method:
		collectCovering(x.Result, out)
		for _, p := range x.Params {
			collectCovering(p, out)
		}
	case *Poly:
		collectCovering(x.Result, out)
	case *ByName:
		collectCovering(x.Elem, out)
	case *Not:
		collectCovering(x.Arg, out)
	case *TypeVar:
		collectCovering(x.Upper, out)
	}
}
