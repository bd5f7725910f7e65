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

// Package coredebug holds the IMPLICORE_DEBUG tracing flags, parsed from a
// GODEBUG-style comma-separated environment variable.
package coredebug

import (
	"sync"

	"github.com/implicore/implicore/internal/envflag"
)

// Flags holds the set of global IMPLICORE_DEBUG flags. It is initialized
// by Init.
var Flags Config

// Config holds the set of known IMPLICORE_DEBUG flags.
type Config struct {
	// LogSearch traces the search's recursive-reference hits and, in
	// legacy mode, the ambiguities it continues past. Individual candidate
	// trials are not traced. LogSearch and LogDictionary install the same
	// trace sink, so setting either one enables both kinds of lines.
	LogSearch bool

	// LogDictionary traces EmitDictionary's prune-to-fixpoint pass as a
	// count of the entries reachable from the result out of all entries;
	// the individual admitted or pruned entries are not listed.
	LogDictionary bool

	// Legacy sets the default for Context.Legacy (the pre-deprecation
	// ambiguity-tolerant mode) when a caller doesn't set it explicitly.
	Legacy bool

	// Strict enables extra validation in the reference oracle's scenario
	// loader, such as rejecting duplicate member declarations.
	Strict bool `envflag:"default:true"`
}

// Init initializes Flags. It isn't named init because callers may want to
// skip it entirely (e.g. when embedding the core in a host that manages its
// own tracing), and because its failure mode should be a returned error, not
// a panic.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "IMPLICORE_DEBUG")
})
