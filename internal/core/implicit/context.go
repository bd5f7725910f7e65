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

// Context bundles the external collaborators and the per-search
// mutable-by-replacement state (the active ContextualImplicits chain, the
// active SearchHistory) that the core threads through a resolution: a
// single value passed by pointer, copied by value whenever a nested call
// needs to see a different chain or history without disturbing the
// caller's.
type Context struct {
	Oracle TypeOracle
	Typer  Typer
	Trees  TreeBuilder
	Scope  *ScopeCache

	// Contextual is the lexically active implicit chain, or nil outside
	// any contextual scope.
	Contextual *ContextualImplicits

	// History is the active SearchHistory, or nil at the very first call
	// of a top-level inference (tryImplicit creates one lazily).
	History *SearchHistory

	// Legacy enables the pre-deprecation search mode, which tolerates
	// ambiguity and keeps scanning instead of failing outright.
	Legacy bool

	// Dictionary supplies the parent types EmitDictionary extends a
	// synthesized dictionary class with. The zero value works
	// against a TreeBuilder that tolerates nil parents (as the reference
	// one does); a host with real class types should set it once, the way
	// Oracle/Typer/Trees are set.
	Dictionary DictionaryConfig

	exploreOnly    bool
	contextualPass bool
	inShadowProbe  bool

	trace func(format string, args ...any)
}

// NewContext builds a Context for a fresh resolution run.
func NewContext(o TypeOracle, t Typer, b TreeBuilder, scope *ScopeCache) *Context {
	return &Context{Oracle: o, Typer: t, Trees: b, Scope: scope}
}

// SetTrace installs a debug sink; nil disables tracing.
func (c *Context) SetTrace(f func(string, ...any)) { c.trace = f }

func (c *Context) tracef(format string, args ...any) {
	if c.trace != nil {
		c.trace(format, args...)
	}
}

func (c *Context) withHistory(h *SearchHistory) *Context {
	cp := *c
	cp.History = h
	return &cp
}

func (c *Context) withContextual(ci *ContextualImplicits) *Context {
	cp := *c
	cp.Contextual = ci
	return &cp
}

func (c *Context) withExploreOnly(v bool) *Context {
	cp := *c
	cp.exploreOnly = v
	return &cp
}

func (c *Context) withContextualPass(v bool) *Context {
	cp := *c
	cp.contextualPass = v
	return &cp
}

func (c *Context) withShadowProbe() *Context {
	cp := *c
	cp.inShadowProbe = true
	return &cp
}
