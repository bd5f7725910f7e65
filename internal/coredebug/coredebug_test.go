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

package coredebug

import (
	"testing"

	"github.com/implicore/implicore/internal/envflag"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if err := envflag.Parse(&cfg, ""); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if !cfg.Strict {
		t.Fatalf("Strict default = false, want true")
	}
	if cfg.LogSearch || cfg.LogDictionary || cfg.Legacy {
		t.Fatalf("non-Strict flags should default to false, got %+v", cfg)
	}
}

func TestConfigOverride(t *testing.T) {
	var cfg Config
	if err := envflag.Parse(&cfg, "logsearch,strict=0"); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if !cfg.LogSearch {
		t.Fatalf("LogSearch = false, want true")
	}
	if cfg.Strict {
		t.Fatalf("Strict = true, want false after explicit override")
	}
}
