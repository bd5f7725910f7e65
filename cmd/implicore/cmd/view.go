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

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/implicore/implicore/cue/token"
	"github.com/implicore/implicore/internal/core/debug"
	"github.com/implicore/implicore/internal/core/implicit"
)

// newViewCmd creates the view command.
func newViewCmd() *cobra.Command {
	var contextual []string

	cmd := &cobra.Command{
		Use:   "view <scenario.yaml> <from-type> <to-type>",
		Short: "resolve a conversion bridging from-type to to-type",
		Long: `view runs InferView against a YAML-described scenario: it searches for a
term converting a placeholder value of from-type into to-type, either by a
direct subtype relation or via a one-argument conversion method.

Examples:

  $ implicore view testdata/ordering.yaml Raw Wrapper --contextual Predef.toWrapper
  Predef.toWrapper
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scen, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			from, err := resolveType(scen, args[1])
			if err != nil {
				return err
			}
			to, err := resolveType(scen, args[2])
			if err != nil {
				return err
			}
			ctx, err := newContext(cmd, scen, contextual)
			if err != nil {
				return err
			}

			placeholder := scen.Trees.IdentSym(scen.Trees.FreshSymbol("x"))
			result := implicit.InferView(ctx, placeholder, from, to, token.NoPos)
			if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
				fmt.Fprintln(cmd.ErrOrStderr(), debug.Sdump(result))
			}
			if !result.Success {
				return result.Failure.Err()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result.Ref.Sym)
			return nil
		},
	}

	addContextualFlag(cmd.Flags(), &contextual)
	return cmd
}
