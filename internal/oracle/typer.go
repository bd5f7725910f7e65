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

import "github.com/implicore/implicore/internal/core/implicit"

// Typer is the reference Typer implementation. It performs no real type
// inference: every check it does is a direct Subtype/ResolveExtension call
// against the same World an Oracle built from it reads from.
//
// BareNames lets a scenario declare what a plain identifier would resolve
// to at a shadowing probe's use site, standing in for the lexical-scope
// resolution a real type-checker's ResolveBareName would perform.
type Typer struct {
	W         *World
	BareNames map[string]*Sym
}

var _ implicit.Typer = Typer{}

func (t Typer) oracle() Oracle { return Oracle{W: t.W} }

func (t Typer) TypeOf(ref implicit.TermRef) implicit.Type {
	sy := sym(ref.Sym)
	if sy == nil {
		return nil
	}
	return sy.Type
}

func (t Typer) Fresh() implicit.CommitState { return new(struct{}) }

// AdaptValue checks ref's type is a (no-views) subtype of pt. An implicit
// method adapts through its result type, the same reduction the candidate
// filter's compatibility test applies.
func (t Typer) AdaptValue(state implicit.CommitState, ref implicit.TermRef, pt implicit.Type) (implicit.Tree, implicit.CommitState, *implicit.SearchFailure) {
	o := t.oracle()
	refType := sym(ref.Sym).Type
	checked := refType
	if p, ok := checked.(*Poly); ok {
		checked = p.Result
	}
	if m, ok := checked.(*Method); ok && m.Implicit {
		checked = m.Result
	}
	if pt != nil && !o.Subtype(o.Normalize(checked), o.Normalize(pt)) {
		return nil, state, implicit.MismatchedFailure(ref, implicit.ValueP(pt), nil)
	}
	return &identTree{Ref: ref}, state, nil
}

// ApplyConversion checks ref is a single-parameter method (unwrapping one
// Poly layer) whose result is a subtype of pt, and builds ref(argument).
func (t Typer) ApplyConversion(state implicit.CommitState, ref implicit.TermRef, argument implicit.Tree, pt implicit.Type) (implicit.Tree, implicit.CommitState, *implicit.SearchFailure) {
	o := t.oracle()
	refType := sym(ref.Sym).Type
	if p, ok := refType.(*Poly); ok {
		refType = p.Result
	}
	m, ok := refType.(*Method)
	if !ok || len(m.Params) != 1 {
		return nil, state, implicit.MismatchedFailure(ref, implicit.ValueP(pt), argument)
	}
	if pt != nil && !o.Subtype(m.Result, pt) {
		return nil, state, implicit.MismatchedFailure(ref, implicit.ValueP(pt), argument)
	}
	tree := &applyTree{Fn: &identTree{Ref: ref}, Args: []implicit.Tree{argument}}
	return tree, state, nil
}

// ApplyExtension resolves name on the (method-unwrapped) result type of
// ref's conversion and checks it against mbrType, building
// ref(argument).name.
func (t Typer) ApplyExtension(state implicit.CommitState, ref implicit.TermRef, name string, argument implicit.Tree, mbrType implicit.Type) (implicit.Tree, implicit.CommitState, *implicit.SearchFailure) {
	o := t.oracle()
	fail := func() (implicit.Tree, implicit.CommitState, *implicit.SearchFailure) {
		return nil, state, implicit.MismatchedFailure(ref, implicit.SelectionP(name, mbrType, false), argument)
	}

	refType := sym(ref.Sym).Type
	if p, ok := refType.(*Poly); ok {
		refType = p.Result
	}
	viewType := refType
	if m, ok := refType.(*Method); ok {
		viewType = m.Result
	}

	extRef, ok := o.ResolveExtension(viewType, name)
	if !ok {
		return fail()
	}
	extType := sym(extRef.Sym).Type
	if p, ok := extType.(*Poly); ok {
		extType = p.Result
	}
	resType := extType
	if m, ok := extType.(*Method); ok {
		resType = m.Result
	}
	if mbrType != nil && !o.Subtype(resType, mbrType) {
		return fail()
	}

	wrapped := &applyTree{Fn: &identTree{Ref: ref}, Args: []implicit.Tree{argument}}
	return &selectTree{Recv: wrapped, Name: name}, state, nil
}

// ResolveBareName reports what a plain reference to name would resolve to,
// per the scenario's BareNames table.
func (t Typer) ResolveBareName(state implicit.CommitState, name string, expect implicit.Symbol) (implicit.Symbol, bool, bool) {
	denotes, found := t.BareNames[name]
	if !found {
		return nil, false, false
	}
	expectSym := sym(expect)
	sameOwner := expectSym != nil && denotes.Owner == expectSym.Owner
	return denotes, sameOwner, true
}

// IsSuperSelection reports whether source is (or selects off of) the
// super-selection sentinel the reference Builder's Super method produces.
func (t Typer) IsSuperSelection(source implicit.Tree) bool {
	switch x := source.(type) {
	case *superTree:
		return true
	case *selectTree:
		_, ok := x.Recv.(*superTree)
		return ok
	default:
		return false
	}
}
