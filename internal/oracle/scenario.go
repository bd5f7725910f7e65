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
	"io"

	"gopkg.in/yaml.v3"

	"github.com/implicore/implicore/internal/core/implicit"
	"github.com/implicore/implicore/internal/coredebug"
)

// Scenario is a World plus its Oracle/Typer/Builder trio and a name
// registry, built from a YAML description. It lets a test or the CLI
// declare a candidate environment declaratively instead of calling
// World's builder methods by hand.
type Scenario struct {
	World  *World
	Oracle Oracle
	Typer  Typer
	Trees  Builder

	// Syms indexes every class, module and member symbol by its dotted
	// path ("Owner.member", or a bare class/module name).
	Syms map[string]*Sym
}

// Ref looks up a member by its dotted "Owner.member" path and returns a
// TermRef rooted at its owner's type.
func (s *Scenario) Ref(path string) (implicit.TermRef, bool) {
	sy, ok := s.Syms[path]
	if !ok {
		return implicit.TermRef{}, false
	}
	prefix := implicit.Type(nil)
	if sy.Owner != nil {
		prefix = sy.Owner.Type
	}
	return implicit.TermRef{Sym: sy, Prefix: prefix}, true
}

// MustRef is Ref, panicking on an unknown path; convenient in tests
// operating on a fixture already known to declare the name.
func (s *Scenario) MustRef(path string) implicit.TermRef {
	ref, ok := s.Ref(path)
	if !ok {
		panic("oracle: no such symbol " + path)
	}
	return ref
}

// scenarioDoc is the YAML document shape.
type scenarioDoc struct {
	Classes    []classDecl    `yaml:"classes"`
	Modules    []string       `yaml:"modules"`
	Members    []memberDecl   `yaml:"members"`
	Extensions []extensionDoc `yaml:"extensions"`
}

type classDecl struct {
	Name       string     `yaml:"name"`
	Parents    []typeSpec `yaml:"parents"`
	TypeParams []string   `yaml:"typeParams"`
	Companion  bool       `yaml:"companion"`
}

type memberDecl struct {
	Owner    string   `yaml:"owner"`
	Name     string   `yaml:"name"`
	Type     typeSpec `yaml:"type"`
	Implicit bool     `yaml:"implicit"`
	Private  bool     `yaml:"private"`
}

type extensionDoc struct {
	On   typeSpec `yaml:"on"`
	Name string   `yaml:"name"`
	Ref  string   `yaml:"ref"`
}

// typeSpec is a recursive, tagged description of a Type. Exactly one field
// should be set; resolve reads the first one it finds populated.
type typeSpec struct {
	Ref       string      `yaml:"ref"`
	Args      []typeSpec  `yaml:"args"`
	Func      *funcSpec   `yaml:"func"`
	Method    *methodSpec `yaml:"method"`
	Poly      *polySpec   `yaml:"poly"`
	TypeVar   string      `yaml:"typevar"`
	Singleton *singSpec   `yaml:"singleton"`
	ByName    *typeSpec   `yaml:"byname"`
	Not       *typeSpec   `yaml:"not"`
	Top       bool        `yaml:"top"`
	Bottom    bool        `yaml:"bottom"`
}

type funcSpec struct {
	Params []typeSpec `yaml:"params"`
	Result typeSpec   `yaml:"result"`
}

type methodSpec struct {
	Params   []typeSpec `yaml:"params"`
	Result   typeSpec   `yaml:"result"`
	Implicit bool       `yaml:"implicit"`
}

type polySpec struct {
	TypeParams []string `yaml:"typeParams"`
	Result     typeSpec `yaml:"result"`
}

type singSpec struct {
	Base  typeSpec `yaml:"base"`
	Value string   `yaml:"value"`
}

// LoadScenario parses a YAML scenario description and builds the World it
// declares. Classes are registered in a first pass so that forward
// references among parents/members/extensions resolve regardless of
// declaration order; members and extensions are wired in a second pass.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var doc scenarioDoc
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("oracle: decode scenario: %w", err)
	}

	w := NewWorld()
	syms := map[string]*Sym{}

	for _, c := range doc.Classes {
		cs := w.NewClass(c.Name, nil, c.TypeParams...)
		syms[c.Name] = cs
		if c.Companion {
			comp := w.NewCompanion(cs)
			syms[c.Name+"$"] = comp
		}
	}
	for _, name := range doc.Modules {
		syms[name] = w.NewModule(name)
	}

	resolver := &typeResolver{syms: syms}
	for _, c := range doc.Classes {
		cs := syms[c.Name]
		parents := make([]Type, len(c.Parents))
		for i, p := range c.Parents {
			t, err := resolver.resolve(p)
			if err != nil {
				return nil, fmt.Errorf("oracle: class %s parent %d: %w", c.Name, i, err)
			}
			parents[i] = t
		}
		cs.Parents = parents
	}

	for _, m := range doc.Members {
		owner, ok := syms[m.Owner]
		if !ok {
			return nil, fmt.Errorf("oracle: member %s: unknown owner %s", m.Name, m.Owner)
		}
		t, err := resolver.resolve(m.Type)
		if err != nil {
			return nil, fmt.Errorf("oracle: member %s.%s: %w", m.Owner, m.Name, err)
		}
		path := m.Owner + "." + m.Name
		if _, dup := syms[path]; dup && coredebug.Flags.Strict {
			return nil, fmt.Errorf("oracle: member %s declared twice", path)
		}
		sy := w.AddMember(owner, m.Name, t, m.Implicit, m.Private)
		syms[path] = sy
	}

	for _, e := range doc.Extensions {
		on, err := resolver.resolve(e.On)
		if err != nil {
			return nil, fmt.Errorf("oracle: extension %s: %w", e.Name, err)
		}
		sy, ok := syms[e.Ref]
		if !ok {
			return nil, fmt.Errorf("oracle: extension %s: unknown ref %s", e.Name, e.Ref)
		}
		var prefix implicit.Type
		if sy.Owner != nil {
			prefix = sy.Owner.Type
		}
		w.AddExtension(on, e.Name, implicit.TermRef{Sym: sy, Prefix: prefix})
	}

	return &Scenario{
		World:  w,
		Oracle: Oracle{W: w},
		Typer:  Typer{W: w},
		Trees:  Builder{W: w},
		Syms:   syms,
	}, nil
}

// typeResolver resolves typeSpec values against the symbols registered so
// far; classes must all be pre-registered before any resolve call (see
// LoadScenario's two-pass structure).
type typeResolver struct {
	syms map[string]*Sym
}

func (tr *typeResolver) resolve(s typeSpec) (Type, error) {
	switch {
	case s.Top:
		return TopType, nil
	case s.Bottom:
		return BottomType, nil
	case s.TypeVar != "":
		return &TypeVar{Name: s.TypeVar, Upper: TopType}, nil
	case s.ByName != nil:
		elem, err := tr.resolve(*s.ByName)
		if err != nil {
			return nil, err
		}
		return &ByName{Elem: elem}, nil
	case s.Not != nil:
		arg, err := tr.resolve(*s.Not)
		if err != nil {
			return nil, err
		}
		return &Not{Arg: arg}, nil
	case s.Singleton != nil:
		base, err := tr.resolve(s.Singleton.Base)
		if err != nil {
			return nil, err
		}
		return &Singleton{Base: base, Value: s.Singleton.Value}, nil
	case s.Func != nil:
		params, err := tr.resolveAll(s.Func.Params)
		if err != nil {
			return nil, err
		}
		result, err := tr.resolve(s.Func.Result)
		if err != nil {
			return nil, err
		}
		return &Func{Params: params, Result: result}, nil
	case s.Method != nil:
		params, err := tr.resolveAll(s.Method.Params)
		if err != nil {
			return nil, err
		}
		result, err := tr.resolve(s.Method.Result)
		if err != nil {
			return nil, err
		}
		return &Method{Params: params, Result: result, Implicit: s.Method.Implicit}, nil
	case s.Poly != nil:
		result, err := tr.resolve(s.Poly.Result)
		if err != nil {
			return nil, err
		}
		tps := make([]*Sym, len(s.Poly.TypeParams))
		for i, n := range s.Poly.TypeParams {
			tps[i] = &Sym{Name: n, Kind: TypeParamSym}
		}
		return &Poly{TypeParams: tps, Result: result}, nil
	case s.Ref != "":
		sy, ok := tr.syms[s.Ref]
		if !ok {
			return nil, fmt.Errorf("unknown type reference %q", s.Ref)
		}
		args, err := tr.resolveAll(s.Args)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return sy.Type, nil
		}
		return &Named{Sym: sy, Args: args}, nil
	default:
		return nil, fmt.Errorf("empty type spec")
	}
}

func (tr *typeResolver) resolveAll(specs []typeSpec) ([]Type, error) {
	out := make([]Type, len(specs))
	for i, s := range specs {
		t, err := tr.resolve(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
