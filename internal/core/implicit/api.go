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

import "github.com/implicore/implicore/cue/token"

// This file implements the external entry points: the surface the
// surrounding compiler actually calls.

// InferImplicit resolves pt, optionally converting argument, starting with
// the contextual pass and falling back to the derived pass. The core never
// calls InferImplicit recursively (nested searches recurse through
// BestImplicit directly, via ctx.History). When ctx carries no History,
// InferImplicit establishes a fresh SearchRoot and, on success, emits the
// dictionary; a ctx that already carries a History is searched as is, and
// no dictionary is emitted.
func InferImplicit(ctx *Context, pt Proto, argument Tree, origin token.Pos) SearchResult {
	nctx := ctx
	var root *SearchRoot
	if ctx.History == nil {
		root = NewSearchRoot()
		nctx = ctx.withHistory(NewSearchHistory(root))
	}

	result := BestImplicit(nctx, pt, argument, true)
	if !result.Success {
		if result.Failure != nil {
			result.Failure.Pos = origin
		}
		return result
	}

	if root != nil && !ctx.exploreOnly {
		result.Tree = EmitDictionary(ctx, ctx.Dictionary, root, result.Tree)
	}
	return result
}

// InferView searches for a conversion from a Tree of type fromType to to.
// It is only defined when neither endpoint is trivial: not a top type
// (Any/Object), not a bottom type (Nothing/Null), from is not itself the
// result of a super-selection, and fromType is a value type. When
// the triviality gate rejects the request, InferView reports NoMatching.
func InferView(ctx *Context, from Tree, fromType, to Type, origin token.Pos) SearchResult {
	o := ctx.Oracle
	switch {
	case o.IsTrivialTop(fromType), o.IsTrivialTop(to):
	case o.IsTrivialBottom(fromType), o.IsTrivialBottom(to):
	case ctx.Typer.IsSuperSelection(from):
	case !o.IsValueType(fromType):
	default:
		pt := ViewP(fromType, to)
		return InferImplicit(ctx, pt, from, origin)
	}
	f := NoMatchingFailure(ValueP(to), from, "inferView: trivial endpoint or non-value source")
	f.Pos = origin
	return FailureResult(f)
}

// InferViewSelection is InferView's selection-prototype sibling: it
// searches for a term providing a member named name of type mbrType,
// canceling the private-member privilege an ordinary selection would have.
func InferViewSelection(ctx *Context, from Tree, fromType Type, name string, mbrType Type, origin token.Pos) SearchResult {
	o := ctx.Oracle
	if o.IsTrivialTop(fromType) || o.IsTrivialBottom(fromType) || ctx.Typer.IsSuperSelection(from) || !o.IsValueType(fromType) {
		f := NoMatchingFailure(SelectionP(name, mbrType, false), from, "inferView: trivial endpoint or non-value source")
		f.Pos = origin
		return FailureResult(f)
	}
	pt := SelectionP(name, mbrType, false)
	return InferImplicit(ctx, pt, from, origin)
}

// ViewExists reports whether a value of type from can reach to, either
// directly by subtyping or via a successful exploratory InferView probe
// against a placeholder tree.
func ViewExists(ctx *Context, from, to Type) bool {
	if ctx.Oracle.Subtype(from, to) {
		return true
	}
	placeholder := ctx.Trees.IdentSym(ctx.Trees.FreshSymbol("viewProbe"))
	probeCtx := ctx.withExploreOnly(true)
	result := InferView(probeCtx, placeholder, from, to, token.NoPos)
	return result.Success
}

// AllImplicits returns the union of every candidate that successfully
// type-checks for pt across both the contextual and the derived pass, for
// tooling that wants every usable implicit rather than just the winner.
func AllImplicits(ctx *Context, pt Proto, argument Tree) map[TermRef]struct{} {
	out := map[TermRef]struct{}{}

	gather := func(contextual bool) {
		var eligible []Candidate
		if contextual {
			if ctx.Contextual == nil {
				return
			}
			eligible = ctx.Contextual.Eligible(ctx, pt)
		} else {
			eligible = ImplicitScope(ctx, pt.typeForByNameCheck()).Eligible(ctx, pt)
		}
		probeCtx := ctx.withExploreOnly(true).withContextualPass(contextual)
		for _, c := range eligible {
			if r := tryImplicit(probeCtx, c, pt, argument); r.Success {
				out[r.Ref] = struct{}{}
			}
		}
	}
	gather(true)
	gather(false)
	return out
}
