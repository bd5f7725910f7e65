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

// Package errors defines the reportable-error vocabulary shared between the
// implicit-search core and its collaborators. The core's own control-flow
// failures (implicit.SearchFailure) are plain values; this package is the
// thin layer collaborators use to turn one into something with positions, a
// path and a human-facing message.
package errors

import (
	"errors"
	"fmt"
	"slices"

	"github.com/implicore/implicore/cue/token"
)

// Is, As and Unwrap forward to the standard library so that callers never
// need to import both packages.
func Is(err, target error) bool     { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
func Unwrap(err error) error        { return errors.Unwrap(err) }

// Error is the common reportable-error interface.
type Error interface {
	error
	Position() token.Pos
	InputPositions() []token.Pos
	Path() []string
}

// Newf creates an Error at the given position.
func Newf(p token.Pos, format string, args ...any) Error {
	return &posError{pos: p, msg: fmt.Sprintf(format, args...)}
}

// Wrapf creates an Error at p that wraps child for additional context.
func Wrapf(child error, p token.Pos, format string, args ...any) Error {
	return Wrap(&posError{pos: p, msg: fmt.Sprintf(format, args...)}, child)
}

// Wrap makes child a subordinate of parent; child may be nil.
func Wrap(parent Error, child error) Error {
	if child == nil {
		return parent
	}
	return &wrapped{main: parent, wrap: child}
}

// Positions returns the valid positions contributing to err: err's own
// position first, then its input positions sorted by offset, with adjacent
// duplicates removed.
func Positions(err error) []token.Pos {
	e := Error(nil)
	if !errors.As(err, &e) {
		return nil
	}
	a := make([]token.Pos, 0, 3)
	if pos := e.Position(); pos.IsValid() {
		a = append(a, pos)
	}
	start := len(a)
	for _, p := range e.InputPositions() {
		if p.IsValid() {
			a = append(a, p)
		}
	}
	slices.SortFunc(a[start:], func(x, y token.Pos) int {
		if x == y {
			return 0
		}
		return int(x.Position().Offset - y.Position().Offset)
	})
	return slices.Compact(a)
}

// Path returns the data-tree path of err, if any.
func Path(err error) []string {
	if e := Error(nil); errors.As(err, &e) {
		return e.Path()
	}
	return nil
}

type posError struct {
	pos  token.Pos
	msg  string
	path []string
}

func (e *posError) Error() string               { return e.msg }
func (e *posError) Position() token.Pos         { return e.pos }
func (e *posError) InputPositions() []token.Pos { return nil }
func (e *posError) Path() []string              { return e.path }

// WithPath returns a copy of e with its path set, for errors built via Newf.
func WithPath(e Error, path []string) Error {
	if pe, ok := e.(*posError); ok {
		cp := *pe
		cp.path = path
		return &cp
	}
	return e
}

type wrapped struct {
	main Error
	wrap error
}

func (e *wrapped) Error() string {
	switch msg := e.main.Error(); {
	case e.wrap == nil:
		return msg
	case msg == "":
		return e.wrap.Error()
	default:
		return fmt.Sprintf("%s: %s", msg, e.wrap)
	}
}

func (e *wrapped) Position() token.Pos {
	if p := e.main.Position(); p.IsValid() {
		return p
	}
	if w, ok := e.wrap.(Error); ok {
		return w.Position()
	}
	return token.NoPos
}

func (e *wrapped) InputPositions() []token.Pos {
	return append(e.main.InputPositions(), Positions(e.wrap)...)
}

func (e *wrapped) Path() []string {
	if p := e.main.Path(); p != nil {
		return p
	}
	return Path(e.wrap)
}

func (e *wrapped) Unwrap() error { return e.wrap }
