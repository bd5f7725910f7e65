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

// Package runtime wires a TypeOracle/Typer/TreeBuilder triple together with
// a per-run implicit-scope cache, so that repeated inferences within one
// compilation run share memoized state.
package runtime

import (
	"fmt"
	"os"

	"github.com/implicore/implicore/internal/core/implicit"
	"github.com/implicore/implicore/internal/coredebug"
)

// A Runtime owns the data structures a resolution run reuses across many
// inferImplicit/inferView calls: the ImplicitScope memoization cache, and
// the collaborator triple every Context built from it shares.
type Runtime struct {
	scope *implicit.ScopeCache

	oracle implicit.TypeOracle
	typer  implicit.Typer
	trees  implicit.TreeBuilder

	legacy bool
}

// New builds a Runtime around the given collaborators. Legacy defaults to
// coredebug.Flags.Legacy, overridable with SetLegacy before first use.
func New(o implicit.TypeOracle, t implicit.Typer, b implicit.TreeBuilder) *Runtime {
	r := &Runtime{oracle: o, typer: t, trees: b}
	r.Init()
	return r
}

// SetLegacy sets whether contexts built from r default to the
// ambiguity-tolerant legacy search mode. This should only be set before
// first use.
func (r *Runtime) SetLegacy(v bool) { r.legacy = v }

// IsInitialized reports whether the runtime has allocated its scope cache.
func (r *Runtime) IsInitialized() bool { return r.scope != nil }

// Init allocates the scope cache if it hasn't been already. New calls this
// for callers; it's exported so a zero-value Runtime built by hand (e.g. in
// a test) can still be initialized explicitly.
func (r *Runtime) Init() {
	if r.scope != nil {
		return
	}
	r.scope = implicit.NewScopeCache()
	r.legacy = coredebug.Flags.Legacy
}

// NewContext builds a fresh Context sharing this Runtime's scope cache and
// collaborators. Every top-level inferImplicit/inferView call should start
// from a Context built this way so that ImplicitScope memoization is
// actually reused across calls.
func (r *Runtime) NewContext() *implicit.Context {
	r.Init()
	ctx := implicit.NewContext(r.oracle, r.typer, r.trees, r.scope)
	ctx.Legacy = r.legacy
	if coredebug.Flags.LogSearch || coredebug.Flags.LogDictionary {
		ctx.SetTrace(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "implicit: "+format+"\n", args...)
		})
	}
	return ctx
}

// Oracle returns the runtime's TypeOracle collaborator.
func (r *Runtime) Oracle() implicit.TypeOracle { return r.oracle }

// Typer returns the runtime's Typer collaborator.
func (r *Runtime) Typer() implicit.Typer { return r.typer }

// Trees returns the runtime's TreeBuilder collaborator.
func (r *Runtime) Trees() implicit.TreeBuilder { return r.trees }
