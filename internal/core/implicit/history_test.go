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

package implicit_test

import (
	"testing"

	"github.com/implicore/implicore/internal/core/implicit"
)

func TestFreshSearchRootHasNoEntries(t *testing.T) {
	root := implicit.NewSearchRoot()
	if len(root.Entries()) != 0 {
		t.Error("a fresh SearchRoot should have no dictionary entries")
	}
}

// TestDivergenceOnRepeatedFrame exercises checkDivergence indirectly
// through BestImplicit: a frame already nested for the same candidate
// against an equivalent target makes the retrial diverge rather than loop.
func TestDivergenceOnRepeatedFrame(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	loopy := w.AddMember(predef, "loopy", cls.Type, true, false)
	cand := implicit.Candidate{Ref: implicit.Plain(implicit.TermRef{Sym: loopy, Prefix: predef.Type})}

	root := implicit.NewSearchRoot()
	h0 := implicit.NewSearchHistory(root)
	ctx.History = h0.Nest(ctx, cand, cls.Type)
	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{cand.Ref})

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if result.Success {
		t.Fatal("expected a repeated frame against an equivalent target to diverge, not succeed")
	}
	if result.Failure.Kind != implicit.Diverging {
		t.Errorf("expected a Diverging failure, got %v", result.Failure.Kind)
	}
}

func TestNoDivergenceOnFirstTrial(t *testing.T) {
	ctx, w := newTestContext()
	cls := w.NewClass("C", nil)
	predef := w.NewModule("Predef")
	sole := w.AddMember(predef, "sole", cls.Type, true, false)

	ctx.Contextual = implicit.Outermost([]implicit.ImplicitRef{implicit.Plain(implicit.TermRef{Sym: sole, Prefix: predef.Type})})
	ctx.History = implicit.NewSearchHistory(implicit.NewSearchRoot())

	result := implicit.BestImplicit(ctx, implicit.ValueP(cls.Type), nil, true)
	if !result.Success {
		t.Fatalf("a fresh history with no prior frame for this candidate should not diverge, got %v", result.Failure)
	}
}
