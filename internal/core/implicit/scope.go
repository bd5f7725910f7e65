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

package implicit

// This file implements the implicit scope: the companion references
// structurally reachable from a type. Lifting to class types and collecting
// companions are one mutually recursive traversal, companionsOf, dispatching
// on the oracle-provided Shape of the current type.

// OfTypeImplicits is the precomputed companion set for a type, plus a lazy
// eligible-candidates cache keyed by target prototype type.
type OfTypeImplicits struct {
	T          Type
	Companions *TermRefSet

	eligible map[Proto][]Candidate
}

// Eligible returns the implicit members of o.T's companions that classify
// as candidates for pt, computing and caching the answer on first use.
func (o *OfTypeImplicits) Eligible(ctx *Context, pt Proto) []Candidate {
	if o.eligible == nil {
		o.eligible = map[Proto][]Candidate{}
	}
	if c, ok := o.eligible[pt]; ok {
		return c
	}
	var refs []TermRef
	for _, comp := range o.Companions.Refs() {
		refs = append(refs, ctx.Oracle.ImplicitMembers(comp)...)
	}
	c := filterMatching(ctx, plainRefs(refs), pt, 0)
	o.eligible[pt] = c
	return c
}

// ScopeCache is the per-run memoization store for implicitScope results,
// owned by the surrounding Runtime. It is not safe for concurrent
// use; the core is single-threaded cooperative.
type ScopeCache struct {
	m map[Type]*OfTypeImplicits
}

// NewScopeCache returns an empty cache.
func NewScopeCache() *ScopeCache {
	return &ScopeCache{m: map[Type]*OfTypeImplicits{}}
}

func (c *ScopeCache) get(t Type) (*OfTypeImplicits, bool) {
	v, ok := c.m[t]
	return v, ok
}

func (c *ScopeCache) put(t Type, v *OfTypeImplicits) {
	c.m[t] = v
}

// ImplicitScope computes (or returns the cached) implicit scope of rootT.
// The root type is always cached, regardless of whether the traversal that
// produced it crossed a back-edge.
func ImplicitScope(ctx *Context, rootT Type) *OfTypeImplicits {
	if cached, ok := ctx.Scope.get(rootT); ok {
		return cached
	}
	set, _ := companionsOf(ctx, rootT, map[Type]bool{})
	result := &OfTypeImplicits{T: rootT, Companions: set}
	ctx.Scope.put(rootT, result)
	return result
}

// companionsOf is the mutually-recursive liftToClasses/collectCompanions
// traversal. It returns the companion set reachable from t and whether the
// traversal encountered a back-edge on the active seen set (incomplete),
// which suppresses memoization for non-root types.
func companionsOf(ctx *Context, t Type, seen map[Type]bool) (*TermRefSet, bool) {
	if cached, ok := ctx.Scope.get(t); ok {
		return cached.Companions, false
	}
	if seen[t] {
		return NewTermRefSet(ctx.Oracle), true
	}
	seen[t] = true
	defer delete(seen, t)

	o := ctx.Oracle
	shape := o.Decompose(t)
	set := NewTermRefSet(o)
	incomplete := false

	union := func(sub Type) {
		s, inc := companionsOf(ctx, sub, seen)
		set.Union(s)
		incomplete = incomplete || inc
	}

	switch shape.Kind {
	case ShapeClass:
		if shape.Prefix != nil {
			union(shape.Prefix)
		}
		if shape.OpaqueAlias {
			if comp, ok := o.Companion(shape.Sym); ok {
				set.Insert(comp)
			}
		} else {
			cls := shape.Sym
			if comp, ok := o.Companion(cls); ok {
				set.Insert(comp)
			}
			for _, parent := range o.Parents(cls) {
				union(parent)
			}
		}
	case ShapeApplied:
		union(shape.Tycon)
		for _, a := range shape.Args {
			union(a)
		}
	case ShapeLambda:
		union(shape.Result)
	case ShapeTypeVar:
		union(shape.Underlying)
	case ShapeOther:
		for _, p := range shape.Parts {
			union(p)
		}
	}

	if !incomplete && o.Cacheable(t) {
		ctx.Scope.put(t, &OfTypeImplicits{T: t, Companions: set})
	}
	return set, incomplete
}
