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

package oracle

import (
	"fmt"
	"strings"

	"github.com/implicore/implicore/internal/core/implicit"
)

// The tree node types below are the reference implementation's
// implicit.Tree: a minimal untyped AST, just rich enough for
// EmitDictionary's free-identifier/substitute pass and for rendering a
// readable trial result.

type identTree struct{ Ref implicit.TermRef }

func (t *identTree) String() string { return fmt.Sprintf("%v", t.Ref.Sym) }

type identSymTree struct{ Sym *Sym }

func (t *identSymTree) String() string { return t.Sym.Name }

// superTree is the sentinel receiver IsSuperSelection looks for.
type superTree struct{}

func (t *superTree) String() string { return "super" }

type selectTree struct {
	Recv implicit.Tree
	Name string
}

func (t *selectTree) String() string { return fmt.Sprintf("%v.%s", t.Recv, t.Name) }

type applyTree struct {
	Fn   implicit.Tree
	Args []implicit.Tree
}

func (t *applyTree) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%v(%s)", t.Fn, strings.Join(parts, ", "))
}

type blockTree struct {
	Stmts  []implicit.Tree
	Result implicit.Tree
}

func (t *blockTree) String() string {
	parts := make([]string, len(t.Stmts))
	for i, s := range t.Stmts {
		parts[i] = fmt.Sprint(s)
	}
	return fmt.Sprintf("{ %s; %v }", strings.Join(parts, "; "), t.Result)
}

type valDefTree struct {
	Sym  *Sym
	Type Type
	RHS  implicit.Tree
}

func (t *valDefTree) String() string {
	if t.RHS == nil {
		return fmt.Sprintf("val %s: %v", t.Sym.Name, t.Type)
	}
	return fmt.Sprintf("val %s = %v", t.Sym.Name, t.RHS)
}

type classDefTree struct {
	Sym     *Sym
	Parents []Type
	Fields  []implicit.Tree
}

func (t *classDefTree) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprint(f)
	}
	return fmt.Sprintf("class %s { %s }", t.Sym.Name, strings.Join(parts, "; "))
}

type newTree struct{ ClassSym *Sym }

func (t *newTree) String() string { return "new " + t.ClassSym.Name }

// Builder is the reference TreeBuilder implementation.
type Builder struct {
	W *World
}

var _ implicit.TreeBuilder = Builder{}

func (b Builder) Ident(ref implicit.TermRef) implicit.Tree { return &identTree{Ref: ref} }

func (b Builder) IdentSym(s implicit.Symbol) implicit.Tree { return &identSymTree{Sym: sym(s)} }

// Super returns the super-selection sentinel receiver, for scenarios that
// want to exercise InferView's IsSuperSelection gate.
func (b Builder) Super() implicit.Tree { return &superTree{} }

func (b Builder) Select(recv implicit.Tree, name string) implicit.Tree {
	return &selectTree{Recv: recv, Name: name}
}

func (b Builder) Apply(fn implicit.Tree, args []implicit.Tree) implicit.Tree {
	return &applyTree{Fn: fn, Args: args}
}

func (b Builder) Block(stmts []implicit.Tree, result implicit.Tree) implicit.Tree {
	return &blockTree{Stmts: stmts, Result: result}
}

func (b Builder) ValDef(s implicit.Symbol, tpe implicit.Type, rhs implicit.Tree) implicit.Tree {
	return &valDefTree{Sym: sym(s), Type: typ(tpe), RHS: rhs}
}

func (b Builder) ClassDef(s implicit.Symbol, parents []implicit.Type, fields []implicit.Tree) implicit.Tree {
	ps := make([]Type, len(parents))
	for i, p := range parents {
		ps[i] = typ(p)
	}
	return &classDefTree{Sym: sym(s), Parents: ps, Fields: fields}
}

func (b Builder) New(classSym implicit.Symbol) implicit.Tree {
	return &newTree{ClassSym: sym(classSym)}
}

// FreeIdents collects every symbol t refers to via identTree/identSymTree,
// recursing into every node. It doesn't track binder shadowing: a
// reference implementation's dictionary-pruning pass over synthesized
// trees never shadows a dictionary field with a same-named local, so the
// simplification is safe here even though it wouldn't be in a general
// compiler.
func (b Builder) FreeIdents(t implicit.Tree) map[implicit.Symbol]struct{} {
	out := map[implicit.Symbol]struct{}{}
	collectIdents(t, out)
	return out
}

func collectIdents(t implicit.Tree, out map[implicit.Symbol]struct{}) {
	switch x := t.(type) {
	case nil:
	case *identTree:
		out[x.Ref.Sym] = struct{}{}
	case *identSymTree:
		out[x.Sym] = struct{}{}
	case *selectTree:
		collectIdents(x.Recv, out)
	case *applyTree:
		collectIdents(x.Fn, out)
		for _, a := range x.Args {
			collectIdents(a, out)
		}
	case *blockTree:
		for _, s := range x.Stmts {
			collectIdents(s, out)
		}
		collectIdents(x.Result, out)
	case *valDefTree:
		collectIdents(x.RHS, out)
	case *classDefTree:
		for _, f := range x.Fields {
			collectIdents(f, out)
		}
	}
}

// Substitute rewrites every identTree/identSymTree in t whose symbol
// appears in subst to the replacement tree, leaving everything else
// structurally unchanged.
func (b Builder) Substitute(t implicit.Tree, subst map[implicit.Symbol]implicit.Tree) implicit.Tree {
	switch x := t.(type) {
	case nil:
		return nil
	case *identTree:
		if r, ok := subst[x.Ref.Sym]; ok {
			return r
		}
		return x
	case *identSymTree:
		if r, ok := subst[x.Sym]; ok {
			return r
		}
		return x
	case *selectTree:
		return &selectTree{Recv: b.Substitute(x.Recv, subst), Name: x.Name}
	case *applyTree:
		args := make([]implicit.Tree, len(x.Args))
		for i, a := range x.Args {
			args[i] = b.Substitute(a, subst)
		}
		return &applyTree{Fn: b.Substitute(x.Fn, subst), Args: args}
	case *blockTree:
		stmts := make([]implicit.Tree, len(x.Stmts))
		for i, s := range x.Stmts {
			stmts[i] = b.Substitute(s, subst)
		}
		return &blockTree{Stmts: stmts, Result: b.Substitute(x.Result, subst)}
	case *valDefTree:
		return &valDefTree{Sym: x.Sym, Type: x.Type, RHS: b.Substitute(x.RHS, subst)}
	case *classDefTree:
		fields := make([]implicit.Tree, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = b.Substitute(f, subst)
		}
		return &classDefTree{Sym: x.Sym, Parents: x.Parents, Fields: fields}
	default:
		return t
	}
}

func (b Builder) FreshSymbol(hint string) implicit.Symbol {
	return &Sym{Name: b.W.FreshName(hint), Kind: ValSym}
}
