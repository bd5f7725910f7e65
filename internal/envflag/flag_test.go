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

package envflag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testFlags struct {
	Foo    bool
	BarBaz bool

	DefaultFalse bool `envflag:"default:false"`
	DefaultTrue  bool `envflag:"default:true"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    testFlags
		wantErr string
	}{
		{
			name: "empty",
			env:  "",
			want: testFlags{DefaultTrue: true},
		},
		{
			name:    "unknown",
			env:     "ratchet",
			wantErr: "unknown ratchet",
		},
		{
			name: "set bare name",
			env:  "foo",
			want: testFlags{Foo: true, DefaultTrue: true},
		},
		{
			name: "set explicit value",
			env:  "foo=0,barbaz=1",
			want: testFlags{Foo: false, BarBaz: true, DefaultTrue: true},
		},
		{
			name: "mixed case name",
			env:  "BarBaz",
			want: testFlags{BarBaz: true, DefaultTrue: true},
		},
		{
			name: "override default",
			env:  "defaulttrue=0",
			want: testFlags{DefaultTrue: false},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got testFlags
			err := Parse(&got, tc.env)
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("Parse() error = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMalformedValue(t *testing.T) {
	var got testFlags
	err := Parse(&got, "foo=maybe")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Parse() error = %v, want one wrapping ErrInvalid", err)
	}
}

func TestParseRejectsNonBoolField(t *testing.T) {
	var got struct {
		Level int
	}
	if err := Parse(&got, ""); err == nil {
		t.Fatal("Parse() should reject a struct with a non-bool field")
	}
}
