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

import "github.com/implicore/implicore/internal/core/implicit"

// Compare is the deterministic structural comparator that
// disambiguate/healAmbiguous use: positive when ref1 is preferred over
// ref2, negative the reverse, 0 when neither dominates (ambiguous). Level
// is checked first, then owner specificity, then first-parameter-list
// arity (fewer parameters is more specific).
func (o Oracle) Compare(ref1, ref2 implicit.TermRef, level1, level2 int) int {
	if level1 != level2 {
		if level1 > level2 {
			return 1
		}
		return -1
	}
	if ow := o.OwnerSubtype(ref1.Sym, ref2.Sym); ow != 0 {
		return -ow
	}
	a1, a2 := o.Arity(ref1), o.Arity(ref2)
	if a1 != a2 {
		if a1 < a2 {
			return 1
		}
		return -1
	}
	return 0
}

// OwnerSubtype reports whether a's owner is a subtype-owner of b's (-1),
// the reverse (+1), or neither (0, including when either lacks an owner).
func (o Oracle) OwnerSubtype(a, b implicit.Symbol) int {
	sa, sb := sym(a), sym(b)
	if sa == nil || sb == nil || sa.Owner == nil || sb.Owner == nil || sa.Owner == sb.Owner {
		return 0
	}
	at, bt := sa.Owner.Type, sb.Owner.Type
	switch {
	case o.Subtype(at, bt):
		return -1
	case o.Subtype(bt, at):
		return 1
	default:
		return 0
	}
}

// Arity returns ref's first-parameter-list arity: 0 for a plain value, the
// parameter count for a method (unwrapping one Poly layer first).
func (o Oracle) Arity(ref implicit.TermRef) int {
	sy := sym(ref.Sym)
	if sy == nil {
		return 0
	}
	x := sy.Type
	if p, ok := x.(*Poly); ok {
		x = p.Result
	}
	if m, ok := x.(*Method); ok {
		return len(m.Params)
	}
	return 0
}
