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

package cmd

import "github.com/spf13/pflag"

const (
	flagLegacy     = "legacy"
	flagContextual = "contextual"
	flagVerbose    = "verbose"
)

// addGlobalFlags registers the flags every subcommand shares.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.Bool(flagLegacy, false,
		"tolerate ambiguity the way the pre-deprecation searcher did, instead of failing outright")
	fs.BoolP(flagVerbose, "v", false,
		"dump the full SearchResult/candidate state to stderr alongside the normal output")
}

// addContextualFlag registers the --contextual flag a subcommand uses to
// build its lexical implicit chain, binding it to dst.
func addContextualFlag(fs *pflag.FlagSet, dst *[]string) {
	fs.StringArrayVarP(dst, flagContextual, "c", nil,
		"member path (Owner.member) to add to the lexical implicit chain, outermost first; repeatable")
}
