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

// Tree is an opaque handle to a term-level expression supplied by a
// TreeBuilder. The core never inspects a Tree's shape directly; it only
// ever asks a TreeBuilder to construct one, or a Typer to type-check one.
type Tree interface {
	// String renders a debug form. It has no bearing on tree identity.
	String() string
}

// TreeBuilder constructs the handful of tree shapes the core needs: an
// identifier for a chosen implicit, a member selection (for conversions and
// extensions), an application (for conversions/extensions and for the
// dictionary's New), a block (to host the dictionary), a val binding, and a
// class definition (the dictionary itself).
type TreeBuilder interface {
	Ident(ref TermRef) Tree
	IdentSym(sym Symbol) Tree
	Select(recv Tree, name string) Tree
	Apply(fn Tree, args []Tree) Tree
	Block(stmts []Tree, result Tree) Tree
	ValDef(sym Symbol, tpe Type, rhs Tree) Tree
	ClassDef(sym Symbol, parents []Type, fields []Tree) Tree
	New(classSym Symbol) Tree

	// FreeIdents returns the set of symbols a tree refers to via Ident,
	// used by EmitDictionary's reachability prune.
	FreeIdents(t Tree) map[Symbol]struct{}

	// Substitute rewrites every Ident(sym) in t to repl(sym) for sym in
	// subst, used both by EmitDictionary to rewrite dictionary Idents to
	// field selections and to rewrite the final result tree.
	Substitute(t Tree, subst map[Symbol]Tree) Tree

	// FreshSymbol mints a new symbol for a synthetic declaration (a
	// dictionary class, its instance val, or one of its fields), hinted by
	// name.
	FreshSymbol(hint string) Symbol
}
