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

package implicit

// Kind is a single candidate classification bit: how a reference may
// satisfy a prototype. A None classification never produces a Candidate, so there is no
// Kind value for it.
type Kind uint8

const (
	Value Kind = 1 << iota
	Conversion
	Extension
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Conversion:
		return "conversion"
	case Extension:
		return "extension"
	default:
		return "none"
	}
}

// KindMask is the bit-set of Kinds a reference was classified as for a given
// prototype.
type KindMask uint8

// NoKinds is the empty mask; it is never attached to a Candidate (the
// invariant is that a candidate's mask is always non-empty).
const NoKinds KindMask = 0

// Mask builds a KindMask from individual kinds.
func Mask(ks ...Kind) KindMask {
	var m KindMask
	for _, k := range ks {
		m |= KindMask(k)
	}
	return m
}

// Has reports whether k is set in m.
func (m KindMask) Has(k Kind) bool { return m&KindMask(k) != 0 }

// Add returns m with k set.
func (m KindMask) Add(k Kind) KindMask { return m | KindMask(k) }

// Empty reports whether m has no kinds set.
func (m KindMask) Empty() bool { return m == NoKinds }

func (m KindMask) String() string {
	if m.Empty() {
		return "none"
	}
	s := ""
	for _, k := range []Kind{Value, Conversion, Extension} {
		if m.Has(k) {
			if s != "" {
				s += "|"
			}
			s += k.String()
		}
	}
	return s
}
