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
	"sort"

	"github.com/spf13/cobra"

	"github.com/implicore/implicore/internal/core/debug"
	"github.com/implicore/implicore/internal/core/implicit"
)

// newScopeCmd creates the scope command.
func newScopeCmd() *cobra.Command {
	var contextual []string

	cmd := &cobra.Command{
		Use:   "scope <scenario.yaml> <type>",
		Short: "list every implicit that type-checks for the given type",
		Long: `scope runs AllImplicits against a YAML-described scenario: the union of
every candidate that type-checks for the given type across both the
contextual and the derived pass, one per line, sorted.

Examples:

  $ implicore scope testdata/ordering.yaml Ordering --contextual Predef.ctxOrdering
  Ordering$.default
  Predef.ctxOrdering
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

			all := implicit.AllImplicits(ctx, implicit.ValueP(target), nil)
			if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
				fmt.Fprintln(cmd.ErrOrStderr(), debug.Sdump(all))
			}
			names := make([]string, 0, len(all))
			for ref := range all {
				names = append(names, fmt.Sprintf("%v", ref.Sym))
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	addContextualFlag(cmd.Flags(), &contextual)
	return cmd
}
