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

	"github.com/implicore/implicore/internal/coredebug"
)

// New creates the top-level implicore command.
func New(args []string) *cobra.Command {
	root := &cobra.Command{
		Use:   "implicore",
		Short: "implicore resolves implicit candidates against YAML-described scenarios",

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newResolveCmd(),
		newViewCmd(),
		newScopeCmd(),
	)

	root.SetArgs(args)
	return root
}

// Main runs the implicore tool and returns the code to pass to os.Exit.
func Main() int {
	if err := coredebug.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	root := New(os.Args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
