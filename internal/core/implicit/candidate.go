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

import "fmt"

// Candidate is an eligible implicit reference together with the kinds it
// was classified as and the nesting level it was found at. Level
// is never negative and Kinds is never empty; filterMatching is the only
// place a Candidate gets constructed, and it enforces both.
type Candidate struct {
	Ref   ImplicitRef
	Kinds KindMask
	Level int
}

func (c Candidate) String() string {
	return fmt.Sprintf("%v@%d[%s]", c.Ref.Ref.Sym, c.Level, c.Kinds)
}
