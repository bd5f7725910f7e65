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

// TermRef is identity (a Symbol) plus the prefix Type it was selected
// through. Two TermRefs denote the same implicit for set-membership
// purposes iff the symbols are equal and the prefixes are type-equivalent.
type TermRef struct {
	Sym    Symbol
	Prefix Type
}

// ImplicitRef is either a plain TermRef or a renamed reference carrying an
// alias from a renaming import. Shadowing compares by the alias when one is
// present; type resolution always uses the underlying TermRef.
type ImplicitRef struct {
	Ref   TermRef
	Alias string

	// Site is the term symbol of the import that brought this reference
	// into contextual scope, if any. ContextualImplicits.Exclude uses it to
	// suppress the root import when a wildcard of the same name is
	// re-imported.
	Site Symbol
}

// Plain wraps ref with no alias.
func Plain(ref TermRef) ImplicitRef { return ImplicitRef{Ref: ref} }

// Renamed wraps ref with the given alias name.
func Renamed(ref TermRef, alias string) ImplicitRef { return ImplicitRef{Ref: ref, Alias: alias} }

// FromImport wraps ref with the site symbol of the import that introduced
// it.
func FromImport(ref TermRef, site Symbol) ImplicitRef { return ImplicitRef{Ref: ref, Site: site} }

// ImplicitName is the name shadowing compares by: the alias if ref was
// imported under a rename, otherwise the symbol's declared name.
func (r ImplicitRef) ImplicitName(o TypeOracle) string {
	if r.Alias != "" {
		return r.Alias
	}
	return o.Name(r.Ref.Sym)
}

// TermRefSet is a set of term references deduplicated by semantic equality
// of the (prefix, symbol) pair, where prefixes collapse under
// TypeOracle.Equivalent. Iteration is insertion-stable.
type TermRefSet struct {
	oracle TypeOracle
	// bySymbol maps a symbol to the distinct (under Equivalent) prefixes
	// recorded for it, in insertion order.
	bySymbol map[Symbol][]Type
	order    []TermRef
}

// NewTermRefSet creates an empty set that uses o to test prefix equivalence.
func NewTermRefSet(o TypeOracle) *TermRefSet {
	return &TermRefSet{oracle: o, bySymbol: map[Symbol][]Type{}}
}

// Insert adds ref to the set if no equivalent-prefix entry for its symbol is
// already present. It reports whether ref was newly added.
func (s *TermRefSet) Insert(ref TermRef) bool {
	prefixes := s.bySymbol[ref.Sym]
	for _, p := range prefixes {
		if s.oracle.Equivalent(p, ref.Prefix) {
			return false
		}
	}
	s.bySymbol[ref.Sym] = append(prefixes, ref.Prefix)
	s.order = append(s.order, ref)
	return true
}

// Union inserts every member of other into s.
func (s *TermRefSet) Union(other *TermRefSet) {
	if other == nil {
		return
	}
	for _, ref := range other.order {
		s.Insert(ref)
	}
}

// ForEach calls f for every member, in insertion order. f must not mutate s.
func (s *TermRefSet) ForEach(f func(TermRef)) {
	for _, ref := range s.order {
		f(ref)
	}
}

// Len reports the number of distinct members.
func (s *TermRefSet) Len() int { return len(s.order) }

// Refs returns a snapshot slice of the set's members, in insertion order.
func (s *TermRefSet) Refs() []TermRef {
	out := make([]TermRef, len(s.order))
	copy(out, s.order)
	return out
}
