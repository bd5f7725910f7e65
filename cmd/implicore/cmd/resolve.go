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

// newResolveCmd creates the resolve command.
func newResolveCmd() *cobra.Command {
	var contextual []string

	cmd := &cobra.Command{
		Use:   "resolve <scenario.yaml> <type>",
		Short: "resolve the best implicit value of the given type",
		Long: `resolve runs InferImplicit against a YAML-described scenario, starting
with the contextual pass and falling back to the derived (companion) pass.

Examples:

  $ implicore resolve testdata/ordering.yaml Ordering
  Ordering$.default
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scen, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			target, err := resolveType(scen, args[1])
			if err != nil {
				return err
			}
			ctx, err := newContext(cmd, scen, contextual)
			if err != nil {
				return err
			}

			result := implicit.InferImplicit(ctx, implicit.ValueP(target), nil, token.NoPos)
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
