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
	"github.com/implicore/implicore/internal/core/implicit"
)

// Oracle is the reference TypeOracle implementation. It reads class,
// companion and extension-method declarations from a World built by a
// scenario; Oracle itself holds no state of its own.
type Oracle struct {
	W *World
}

var _ implicit.TypeOracle = Oracle{}

func sym(s implicit.Symbol) *Sym { s2, _ := s.(*Sym); return s2 }

func typ(t implicit.Type) Type {
	if t == nil {
		return nil
	}
	t2, _ := t.(Type)
	return t2
}

func (Oracle) Name(s implicit.Symbol) string {
	if sy := sym(s); sy != nil {
		return sy.Name
	}
	return ""
}

func (Oracle) Accessible(ref implicit.TermRef) bool {
	sy := sym(ref.Sym)
	if sy == nil || !sy.Private {
		return true
	}
	// A private member is only accessible through its own companion/class
	// prefix, never through an inherited or unrelated reference.
	pre := typ(ref.Prefix)
	if n, ok := pre.(*Named); ok {
		return n.Sym == sy.Owner
	}
	return false
}

func (Oracle) Equivalent(a, b implicit.Type) bool {
	return typesEqual(typ(a), typ(b))
}

func typesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *Named:
		y, ok := b.(*Named)
		if !ok || x.Sym != y.Sym || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !typesEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *TypeVar:
		y, ok := b.(*TypeVar)
		return ok && x.Name == y.Name
	case *Singleton:
		y, ok := b.(*Singleton)
		return ok && x.Value == y.Value
	case *ByName:
		y, ok := b.(*ByName)
		return ok && typesEqual(x.Elem, y.Elem)
	case *Not:
		y, ok := b.(*Not)
		return ok && typesEqual(x.Arg, y.Arg)
	case *Top:
		_, ok := b.(*Top)
		return ok
	case *Bottom:
		_, ok := b.(*Bottom)
		return ok
	case *Func:
		y, ok := b.(*Func)
		if !ok || len(x.Params) != len(y.Params) || !typesEqual(x.Result, y.Result) {
			return false
		}
		for i := range x.Params {
			if !typesEqual(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Subtype implements nominal parent-reachability for Named types, plus
// structural (contravariant-arg, covariant-result) subtyping for Func, and
// treats Bottom/Top as the universal bottom/top. It never triggers
// implicit search: it is a pure structural/nominal test.
func (o Oracle) Subtype(sub, super implicit.Type) bool {
	return o.subtype(typ(sub), typ(super))
}

func (o Oracle) subtype(sub, super Type) bool {
	if typesEqual(sub, super) {
		return true
	}
	if _, ok := sub.(*Bottom); ok {
		return true
	}
	if _, ok := super.(*Top); ok {
		return true
	}
	switch s := sub.(type) {
	case *Named:
		for _, p := range s.Sym.Parents {
			if o.subtype(instantiate(p, s.Sym, s.Args), super) {
				return true
			}
		}
	case *Singleton:
		return o.subtype(s.Base, super)
	case *TypeVar:
		return o.subtype(s.Upper, super)
	case *Func:
		sup, ok := super.(*Func)
		if !ok || len(s.Params) != len(sup.Params) {
			return false
		}
		for i := range s.Params {
			if !o.subtype(sup.Params[i], s.Params[i]) { // contravariant
				return false
			}
		}
		return o.subtype(s.Result, sup.Result) // covariant
	}
	return false
}

// instantiate substitutes owner's type parameters (named "T0", "T1", ... by
// position; see NewClass) with args when reading off one of owner's parent
// types, so that e.g. class Box[T] extends Container[T] lets a Box[Int]
// reach Container[Int], not Container[T].
func instantiate(parent Type, owner *Sym, args []Type) Type {
	if len(args) == 0 {
		return parent
	}
	n, ok := parent.(*Named)
	if !ok {
		return parent
	}
	out := make([]Type, len(n.Args))
	for i, a := range n.Args {
		if tv, ok := a.(*TypeVar); ok {
			if idx, isParam := ownerParamIndex(owner, tv.Name); isParam && idx < len(args) {
				out[i] = args[idx]
				continue
			}
		}
		out[i] = a
	}
	return &Named{Sym: n.Sym, Args: out}
}

func ownerParamIndex(owner *Sym, name string) (idx int, ok bool) {
	for i, p := range owner.TypeParamNames {
		if p == name {
			return i, true
		}
	}
	return 0, false
}

// Widen strips a Singleton down to its Base; every other type widens to
// itself.
func (Oracle) Widen(t implicit.Type) implicit.Type {
	if s, ok := typ(t).(*Singleton); ok {
		return s.Base
	}
	return t
}

// WidenSingleton is identical to Widen in this algebra: the only
// singleton-producing construct is a literal.
func (o Oracle) WidenSingleton(t implicit.Type) implicit.Type { return o.Widen(t) }

// Dealias is the identity here: the reference algebra has no separate
// alias-definition indirection to follow (every Named already denotes its
// class directly).
func (Oracle) Dealias(t implicit.Type) implicit.Type { return t }

// WildApprox replaces every TypeVar reachable in t with its upper bound,
// the covariant (upper-bound) approximation divergence checking and
// compatibility both want.
func (Oracle) WildApprox(t implicit.Type) implicit.Type {
	return wildApprox(typ(t))
}

func wildApprox(t Type) Type {
	switch x := t.(type) {
	case *TypeVar:
		return wildApprox(x.Upper)
	case *Named:
		if len(x.Args) == 0 {
			return x
		}
		out := make([]Type, len(x.Args))
		for i, a := range x.Args {
			out[i] = wildApprox(a)
		}
		return &Named{Sym: x.Sym, Args: out}
	case *ByName:
		return &ByName{Elem: wildApprox(x.Elem)}
	default:
		return t
	}
}

// Normalize widens singletons and dealiases; in this algebra that's just
// Widen, since Dealias is the identity.
func (o Oracle) Normalize(t implicit.Type) implicit.Type { return o.Widen(t) }

// Cacheable reports whether t is free of inference variables: a TypeVar
// (or anything containing one) is provisional and must not be memoized.
func (Oracle) Cacheable(t implicit.Type) bool { return !containsTypeVar(typ(t)) }

func containsTypeVar(t Type) bool {
	switch x := t.(type) {
	case *TypeVar:
		return true
	case *Named:
		for _, a := range x.Args {
			if containsTypeVar(a) {
				return true
			}
		}
		return false
	case *ByName:
		return containsTypeVar(x.Elem)
	case *Func:
		if containsTypeVar(x.Result) {
			return true
		}
		for _, p := range x.Params {
			if containsTypeVar(p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
