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

// Command implicore resolves implicit candidates against YAML-described
// scenarios, as a thin driver over internal/core/implicit.
package main

import (
	"os"

	"github.com/implicore/implicore/cmd/implicore/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
