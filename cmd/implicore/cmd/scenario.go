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
	"os"

	"github.com/spf13/cobra"

	"github.com/implicore/implicore/internal/core/implicit"
	coreruntime "github.com/implicore/implicore/internal/core/runtime"
	"github.com/implicore/implicore/internal/oracle"
)

// loadScenario reads and builds the World a YAML scenario file describes.
func loadScenario(path string) (*oracle.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("implicore: %w", err)
	}
	defer f.Close()
	scen, err := oracle.LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("implicore: %w", err)
	}
	return scen, nil
}

// resolveType looks up a bare class, module or companion name as a Type.
func resolveType(scen *oracle.Scenario, name string) (implicit.Type, error) {
	sy, ok := scen.Syms[name]
	if !ok {
		return nil, fmt.Errorf("implicore: unknown type %q", name)
	}
	return sy.Type, nil
}

// newContext builds a Context wired to scen's collaborators, with Legacy
// taken from the --legacy flag and the lexical chain built from the given
// member paths, outermost first.
func newContext(cmd *cobra.Command, scen *oracle.Scenario, contextualPaths []string) (*implicit.Context, error) {
	rt := coreruntime.New(scen.Oracle, scen.Typer, scen.Trees)
	legacy, _ := cmd.Flags().GetBool(flagLegacy)
	rt.SetLegacy(legacy)
	ctx := rt.NewContext()

	if len(contextualPaths) == 0 {
		return ctx, nil
	}
	refs := make([]implicit.ImplicitRef, len(contextualPaths))
	for i, path := range contextualPaths {
		ref, ok := scen.Ref(path)
		if !ok {
			return nil, fmt.Errorf("implicore: unknown contextual ref %q", path)
		}
		refs[i] = implicit.Plain(ref)
	}
	ctx.Contextual = implicit.Outermost(refs)
	return ctx, nil
}
