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

// ContextualImplicits is a linked chain, innermost first, of implicit
// reference lists lifted from lexical context, each annotated with a
// nesting level.
type ContextualImplicits struct {
	Refs  []ImplicitRef
	Outer *ContextualImplicits
	Level int

	owner Symbol
	scope Symbol

	eligible map[Proto][]Candidate
}

// Outermost starts a chain at level 1 with no outer scope.
func Outermost(refs []ImplicitRef) *ContextualImplicits {
	return &ContextualImplicits{Refs: refs, Level: 1}
}

// Push extends the chain inward with refs bound at owner/scope. The level
// rule: inherited from outer if owner and scope are physically
// the same as outer's and the head is not a lazy-implicit-dictionary name;
// otherwise outer.Level + 1.
func (outer *ContextualImplicits) Push(refs []ImplicitRef, owner, scope Symbol, headIsLazyDictName bool) *ContextualImplicits {
	level := outer.Level
	samePhysicalScope := owner == outer.owner && scope == outer.scope
	if !samePhysicalScope || headIsLazyDictName {
		level = outer.Level + 1
	}
	return &ContextualImplicits{
		Refs:  refs,
		Outer: outer,
		Level: level,
		owner: owner,
		scope: scope,
	}
}

// Exclude returns a copy of the chain's own frame with any import-info
// whose site symbol equals rootSym omitted, used to suppress the root
// import when a wildcard of the same name is re-imported.
func (c *ContextualImplicits) Exclude(rootSym Symbol) *ContextualImplicits {
	filtered := make([]ImplicitRef, 0, len(c.Refs))
	for _, r := range c.Refs {
		if r.Site != nil && r.Site == rootSym {
			continue
		}
		filtered = append(filtered, r)
	}
	cp := *c
	cp.Refs = filtered
	cp.eligible = nil
	return &cp
}

// Eligible returns the candidates this chain offers for pt: the chain's own
// eligible references, plus the outer chain's eligible references whose
// implicit name does not collide with one of the chain's own (name-based
// shadowing).
func (c *ContextualImplicits) Eligible(ctx *Context, pt Proto) []Candidate {
	if c.eligible == nil {
		c.eligible = map[Proto][]Candidate{}
	}
	if cached, ok := c.eligible[pt]; ok {
		return cached
	}

	own := filterMatching(ctx, c.Refs, pt, c.Level)

	if c.Outer != nil {
		ownNames := make(map[string]bool, len(own))
		for _, cand := range own {
			ownNames[cand.Ref.ImplicitName(ctx.Oracle)] = true
		}
		for _, cand := range c.Outer.Eligible(ctx, pt) {
			if !ownNames[cand.Ref.ImplicitName(ctx.Oracle)] {
				own = append(own, cand)
			}
		}
	}

	c.eligible[pt] = own
	return own
}
