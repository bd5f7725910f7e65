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

import "sort"

// This file implements the ranking engine: the best-implicit search.

// BestImplicit is the search entry point. contextual selects whether
// eligible candidates are gathered from the lexically active
// ContextualImplicits chain (the contextual pass) or from the target
// type's ImplicitScope (the derived pass).
func BestImplicit(ctx *Context, pt Proto, argument Tree, contextual bool) SearchResult {
	target := pt.typeForByNameCheck()

	if ctx.History != nil {
		if ref, ok := ctx.History.recursiveRef(ctx, target); ok {
			ctx.tracef("recursive ref resolved for %v -> %v", target, ref)
			return SuccessResult(ctx.Trees.Ident(ref), ref, 0, nil)
		}
	}

	var eligible []Candidate
	if contextual {
		if ctx.Contextual == nil {
			eligible = nil
		} else {
			eligible = ctx.Contextual.Eligible(ctx, pt)
		}
	} else {
		eligible = ImplicitScope(ctx, target).Eligible(ctx, pt)
	}

	nctx := ctx.withContextualPass(contextual)
	result := searchImplicits(nctx, eligible, pt, argument)

	if result.Success {
		result.Inlineable = contextual
		return result
	}

	if contextual && !result.Failure.isAmbiguous() && !result.Failure.isDiverging() && !result.Failure.isShadowed() {
		retry := BestImplicit(ctx, pt, argument, false)
		if retry.Success {
			return retry
		}
		return mergeFailures(result.Failure, retry.Failure)
	}
	return result
}

func mergeFailures(contextualFail, retryFail *SearchFailure) SearchResult {
	if retryFail != nil && (retryFail.isDiverging() || retryFail.isShadowed()) {
		return FailureResult(contextualFail)
	}
	if retryFail != nil {
		return FailureResult(retryFail)
	}
	return FailureResult(contextualFail)
}

func searchImplicits(ctx *Context, eligible []Candidate, pt Proto, argument Tree) SearchResult {
	pending := sortCandidates(ctx, eligible)
	return rank(ctx, pending, SearchResult{}, nil, pt, argument)
}

// sortCandidates is the optimization-only stable preference sort: higher
// level first, then owner-subtype relation, then lower
// first-parameter-list arity.
func sortCandidates(ctx *Context, eligible []Candidate) []Candidate {
	out := make([]Candidate, len(eligible))
	copy(out, eligible)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		if ow := ctx.Oracle.OwnerSubtype(a.Ref.Ref.Sym, b.Ref.Ref.Sym); ow != 0 {
			return ow < 0
		}
		return ctx.Oracle.Arity(a.Ref.Ref) < ctx.Oracle.Arity(b.Ref.Ref)
	})
	return out
}

// rank is the linear candidate scan: try each pending candidate in turn,
// accumulate failures, and disambiguate successes pairwise.
func rank(ctx *Context, pending []Candidate, found SearchResult, rfailures []*SearchFailure, pt Proto, argument Tree) SearchResult {
	if len(pending) == 0 {
		if found.Success {
			return found
		}
		return FailureResult(worstFailure(pt, rfailures))
	}

	cand := pending[0]
	rest := pending[1:]

	result := negate(ctx, pt, tryImplicit(ctx, cand, pt, argument))

	if !result.Success {
		f := result.Failure
		if f.isAmbiguous() {
			if ctx.Legacy {
				ctx.tracef("legacy ambiguity at %v; continuing search", cand)
				rfailures = append(rfailures, f)
				return rank(ctx, rest, found, rfailures, pt, argument)
			}
			return healAmbiguous(ctx, rest, f, pt, argument)
		}
		rfailures = append(rfailures, f)
		return rank(ctx, rest, found, rfailures, pt, argument)
	}

	if ctx.exploreOnly || ctx.Oracle.IsCoherenceWitness(pt.typeForByNameCheck()) {
		return result
	}

	newFound, newRest, disFail := disambiguate(ctx, found, result, rest, pt, argument)
	if disFail != nil {
		return FailureResult(disFail)
	}
	return rank(ctx, newRest, newFound, rfailures, pt, argument)
}

// disambiguate is the pairwise disambiguation of a new
// success (best) against the best success found so far (found).
func disambiguate(ctx *Context, found, best SearchResult, remaining []Candidate, pt Proto, argument Tree) (SearchResult, []Candidate, *SearchFailure) {
	if !found.Success {
		return best, filterBetterOrEqual(ctx, best, remaining), nil
	}
	diff := ctx.Oracle.Compare(found.Ref, best.Ref, found.Level, best.Level)
	switch {
	case diff < 0:
		return best, filterBetterOrEqual(ctx, best, remaining), nil
	case diff == 0:
		return SearchResult{}, nil, AmbiguousFailure(found.Ref, best.Ref, found.Level, best.Level, pt, argument)
	default:
		// The sort ensured strictly-worse candidates were excluded; a
		// positive diff here means best is no better than found, so found
		// stands.
		return found, filterBetterOrEqual(ctx, found, remaining), nil
	}
}

func filterBetterOrEqual(ctx *Context, best SearchResult, remaining []Candidate) []Candidate {
	if len(remaining) == 0 {
		return remaining
	}
	out := make([]Candidate, 0, len(remaining))
	for _, c := range remaining {
		if ctx.Oracle.Compare(best.Ref, c.Ref.Ref, best.Level, c.Level) <= 0 {
			out = append(out, c)
		}
	}
	return out
}

// healAmbiguous retries with only the candidates strictly better than both
// ambiguous alternatives; if that still fails, the original ambiguity is
// surfaced.
func healAmbiguous(ctx *Context, remaining []Candidate, ambiguous *SearchFailure, pt Proto, argument Tree) SearchResult {
	var better []Candidate
	for _, c := range remaining {
		if ctx.Oracle.Compare(ambiguous.Alt1, c.Ref.Ref, ambiguous.Alt1Level, c.Level) < 0 &&
			ctx.Oracle.Compare(ambiguous.Alt2, c.Ref.Ref, ambiguous.Alt2Level, c.Level) < 0 {
			better = append(better, c)
		}
	}
	result := rank(ctx, better, SearchResult{}, nil, pt, argument)
	if result.Success {
		return result
	}
	return FailureResult(ambiguous)
}

// negate wraps a trial result: identity, unless pt is a
// Not[_] prototype, in which case success and failure swap around a freshly
// committed Not-witness.
func negate(ctx *Context, pt Proto, result SearchResult) SearchResult {
	t := pt.typeForByNameCheck()
	if t == nil {
		return result
	}
	if _, ok := ctx.Oracle.IsNotProto(t); !ok {
		return result
	}
	if result.Success {
		return FailureResult(NoMatchingFailure(pt, nil, "Not[_]: underlying search unexpectedly succeeded"))
	}
	state := ctx.Typer.Fresh()
	return SuccessResult(ctx.Trees.IdentSym(ctx.Trees.FreshSymbol("notWitness")), TermRef{}, 0, state)
}

func worstFailure(pt Proto, fails []*SearchFailure) *SearchFailure {
	if len(fails) == 0 {
		return NoMatchingFailure(pt, nil, "no eligible candidates")
	}
	best := fails[0]
	for _, f := range fails[1:] {
		if f.size > best.size {
			best = f
		}
	}
	return best
}

// tryImplicit performs the actual trial: divergence check,
// history nesting, adaptation or conversion/extension application, and the
// contextual shadowing probe.
func tryImplicit(ctx *Context, cand Candidate, pt Proto, argument Tree) SearchResult {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*CyclicError); ok {
				ce.InImplicitSearch = true
			}
			panic(r)
		}
	}()

	target := pt.typeForByNameCheck()

	if ctx.History != nil && ctx.History.checkDivergence(ctx, cand, target) {
		f := DivergingFailure(cand.Ref.Ref, pt, argument)
		f.size = ctx.Oracle.TypeSize(target)
		return FailureResult(f)
	}

	history := ctx.History
	if history == nil {
		history = NewSearchHistory(NewSearchRoot())
	}
	nested := history.Nest(ctx, cand, target)
	nctx := ctx.withHistory(nested)

	state := ctx.Typer.Fresh()

	var result SearchResult
	if argument == nil {
		tree, newState, fail := ctx.Typer.AdaptValue(state, cand.Ref.Ref, pt.AsType())
		if fail != nil {
			fail.size = ctx.Oracle.TypeSize(target)
			result = FailureResult(fail)
		} else {
			result = SuccessResult(tree, cand.Ref.Ref, cand.Level, newState)
		}
	} else {
		result = tryConversion(nctx, cand, pt, argument, state)
	}

	if !result.Success {
		return result
	}

	if nctx.contextualPass && !nctx.inShadowProbe {
		if sf := shadowCheck(nctx, cand, pt, argument); sf != nil {
			return FailureResult(sf)
		}
	}

	// Dictionary entries are keyed by widened type; see recursiveRef.
	widened := ctx.Oracle.Widen(target)
	if e, ok := nested.root.lookup(widened); ok && e.RHS == nil {
		nested.root.define(widened, result.Ref, result.Tree)
	}

	return result
}

// tryConversion implements the argument-present branch of tryImplicit:
// conversion and/or extension application, including the
// extension-vs-conversion ambiguity check.
func tryConversion(ctx *Context, cand Candidate, pt Proto, argument Tree, state CommitState) SearchResult {
	ref := cand.Ref.Ref

	if cand.Kinds.Has(Extension) && pt.Kind == SelectionProtoKind {
		extTree, extState, extFail := ctx.Typer.ApplyExtension(state, ref, pt.Name, argument, pt.MbrType)
		if extFail == nil && cand.Kinds.Has(Conversion) {
			_, _, convFail := ctx.Typer.ApplyConversion(state, ref, argument, pt.AsType())
			if convFail == nil {
				return FailureResult(AmbiguousFailure(ref, ref, cand.Level, cand.Level, pt, argument))
			}
		}
		if extFail != nil {
			extFail.size = ctx.Oracle.TypeSize(pt.typeForByNameCheck())
			return FailureResult(extFail)
		}
		return SuccessResult(extTree, ref, cand.Level, extState)
	}

	convTree, convState, convFail := ctx.Typer.ApplyConversion(state, ref, argument, pt.AsType())
	if convFail != nil {
		f := MismatchedFailure(ref, pt, argument)
		f.size = ctx.Oracle.TypeSize(pt.typeForByNameCheck())
		return FailureResult(f)
	}
	return SuccessResult(convTree, ref, cand.Level, convState)
}

// shadowCheck is the contextual-only shadowing probe.
func shadowCheck(ctx *Context, cand Candidate, pt Proto, argument Tree) *SearchFailure {
	probe := ctx.withShadowProbe()
	state := ctx.Typer.Fresh()
	name := cand.Ref.ImplicitName(ctx.Oracle)
	denotes, sameOwner, found := probe.Typer.ResolveBareName(state, name, cand.Ref.Ref.Sym)
	if !found {
		return nil
	}
	if denotes == cand.Ref.Ref.Sym || sameOwner {
		return nil
	}
	return ShadowedFailure(cand.Ref.Ref, denotes, pt, argument)
}
