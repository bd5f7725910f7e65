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

// Package envflag parses a GODEBUG-style comma-separated environment
// variable into the boolean fields of a struct, the mechanism
// internal/coredebug uses for its tracing flags.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalid is the sentinel a malformed option's error wraps.
var ErrInvalid = errors.New("invalid value")

// Init fills flags from the contents of the named environment variable.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse initializes the boolean fields in flags from their struct tag
// defaults (`envflag:"default:true"`) and then from env, a comma-separated
// list of name or name=value elements. Field names are matched case
// insensitively; a bare name is shorthand for name=true, and values are
// parsed with [strconv.ParseBool]. Unknown names are reported after the
// rest of the input has been applied; a malformed value aborts parsing
// with an error wrapping [ErrInvalid].
func Parse[T any](flags *T, env string) error {
	fields, err := boolFields(flags)
	if err != nil {
		return err
	}

	var unknown []error
	for _, opt := range strings.Split(env, ",") {
		if opt == "" {
			continue
		}
		name, rest, hasValue := strings.Cut(opt, "=")
		on := true
		if hasValue {
			v, err := strconv.ParseBool(rest)
			if err != nil {
				return fmt.Errorf("%w: bad bool for %s: %v", ErrInvalid, name, err)
			}
			on = v
		}
		f, ok := fields[strings.ToLower(name)]
		if !ok {
			unknown = append(unknown, fmt.Errorf("unknown %s", opt))
			continue
		}
		f.SetBool(on)
	}
	return errors.Join(unknown...)
}

// boolFields maps the lower-cased names of flags' fields to their settable
// values, applying any `envflag:"default:..."` tag along the way. Every
// field must be a bool; this package has no other value kinds.
func boolFields[T any](flags *T) (map[string]reflect.Value, error) {
	v := reflect.ValueOf(flags).Elem()
	t := v.Type()
	out := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Bool {
			return nil, fmt.Errorf("%s: only bool fields are supported", f.Name)
		}
		if tag, ok := f.Tag.Lookup("envflag"); ok {
			val, ok := strings.CutPrefix(tag, "default:")
			if !ok {
				return nil, fmt.Errorf("%s: malformed envflag tag %q", f.Name, tag)
			}
			on, err := strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("%s: bad default %q: %v", f.Name, val, err)
			}
			v.Field(i).SetBool(on)
		}
		out[strings.ToLower(f.Name)] = v.Field(i)
	}
	return out, nil
}
