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

import "github.com/google/uuid"

// DictionaryConfig supplies the two well-known parent types a synthesized
// dictionary class extends: an object root and a
// serializability marker. These are collaborator-provided, like everything
// else in Type.
type DictionaryConfig struct {
	ObjectRoot   Type
	Serializable Type
}

// EmitDictionary implements the dictionary emission pass, invoked once at
// the outermost infer completion. If root holds no entries, or none of
// them survive the reachability prune, result is returned unchanged.
// Otherwise it synthesizes a class with one field per surviving entry,
// rewrites every dictionary Ident in the surviving RHSes and in result to a
// selection on a fresh instance, and wraps the whole thing in a block.
func EmitDictionary(ctx *Context, cfg DictionaryConfig, root *SearchRoot, result Tree) Tree {
	entries := root.Entries()
	if len(entries) == 0 {
		return result
	}

	byField := make(map[Symbol]*DictEntry, len(entries))
	for _, e := range entries {
		byField[e.Sym] = e
	}

	admitted := pruneToFixpoint(ctx, byField, result)
	ctx.tracef("dictionary: %d of %d entries reachable from the result", len(admitted), len(entries))
	if len(admitted) == 0 {
		return result
	}

	var surviving []*DictEntry
	for _, e := range entries {
		if _, ok := admitted[e.Sym]; ok {
			surviving = append(surviving, e)
		}
	}

	classSym := ctx.Trees.FreshSymbol("ImplicitDict_" + uuid.NewString())
	instSym := ctx.Trees.FreshSymbol("implicits")
	instRef := ctx.Trees.IdentSym(instSym)

	subst := make(map[Symbol]Tree, len(surviving))
	for _, e := range surviving {
		subst[e.Sym] = ctx.Trees.Select(instRef, ctx.Oracle.Name(e.Sym))
	}

	fields := make([]Tree, len(surviving))
	for i, e := range surviving {
		rhs := e.RHS
		if rhs != nil {
			rhs = ctx.Trees.Substitute(rhs, subst)
		}
		fields[i] = ctx.Trees.ValDef(e.Sym, e.Type, rhs)
	}

	classDef := ctx.Trees.ClassDef(classSym, []Type{cfg.ObjectRoot, cfg.Serializable}, fields)
	instVal := ctx.Trees.ValDef(instSym, nil, ctx.Trees.New(classSym))
	rewritten := ctx.Trees.Substitute(result, subst)

	return ctx.Trees.Block([]Tree{classDef, instVal}, rewritten)
}

// pruneToFixpoint is the reachability prune: starting from
// result's identifier set, repeatedly admit any entry referenced by an
// already-admitted entry's RHS or by result, until no more are added.
func pruneToFixpoint(ctx *Context, byField map[Symbol]*DictEntry, result Tree) map[Symbol]*DictEntry {
	admitted := map[Symbol]*DictEntry{}
	frontier := ctx.Trees.FreeIdents(result)

	for changed := true; changed; {
		changed = false
		for sym := range frontier {
			e, isField := byField[sym]
			if !isField {
				continue
			}
			if _, already := admitted[sym]; already {
				continue
			}
			admitted[sym] = e
			changed = true
			if e.RHS != nil {
				for s := range ctx.Trees.FreeIdents(e.RHS) {
					frontier[s] = struct{}{}
				}
			}
		}
	}
	return admitted
}
