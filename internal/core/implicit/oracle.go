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

// Symbol is an opaque identity handle for a declaration (a class, a value
// member, a type member) minted by a TypeOracle. Two symbols denote the
// same declaration iff they compare equal with ==; implementations should
// back Symbol with a pointer or an interned integer so that this holds.
type Symbol any

// Type is an opaque handle to a type term, supplied by a TypeOracle. The
// core never constructs, dealiases, or compares a Type itself; every such
// question is routed back through the TypeOracle that produced it.
type Type interface {
	// String renders a debug form. It has no bearing on type identity.
	String() string
}

// ProtoKind discriminates the shape of an expected type driving a search.
type ProtoKind uint8

const (
	// ValueProtoKind asks for a term whose type conforms to Type.
	ValueProtoKind ProtoKind = iota
	// ViewProtoKind asks for a conversion argType => resType.
	ViewProtoKind
	// SelectionProtoKind asks for a term with a member Name of type MbrType.
	SelectionProtoKind
)

// Proto is an expected-type shape: a bare value type, a view prototype used
// when searching for a conversion, or a selection prototype used when
// searching for an extension method.
type Proto struct {
	Kind ProtoKind

	// Type holds the expected type for ValueProtoKind.
	Type Type

	// ArgType/ResType hold the conversion shape for ViewProtoKind.
	ArgType Type
	ResType Type

	// Name/MbrType/PrivateOK hold the member shape for SelectionProtoKind.
	Name      string
	MbrType   Type
	PrivateOK bool
}

// ValueP builds a ValueProtoKind prototype.
func ValueP(t Type) Proto { return Proto{Kind: ValueProtoKind, Type: t} }

// ViewP builds a ViewProtoKind prototype.
func ViewP(arg, res Type) Proto {
	return Proto{Kind: ViewProtoKind, ArgType: arg, ResType: res}
}

// SelectionP builds a SelectionProtoKind prototype.
func SelectionP(name string, mbr Type, privateOK bool) Proto {
	return Proto{Kind: SelectionProtoKind, Name: name, MbrType: mbr, PrivateOK: privateOK}
}

// AsType returns the type a candidate tree must ultimately conform to: Type
// itself for a value prototype, ResType for a view prototype (the source
// side, ArgType, is matched against a formal parameter instead), and nil for
// a selection prototype, which is satisfied structurally rather than by
// subtyping.
func (p Proto) AsType() Type {
	switch p.Kind {
	case ValueProtoKind:
		return p.Type
	case ViewProtoKind:
		return p.ResType
	default:
		return nil
	}
}

// typeForByNameCheck returns the type SearchHistory should consult
// TypeOracle.IsByNameType on for p: the prototype's underlying type if any,
// or its member type for a SelectionProtoKind prototype. The core has no
// notion of "by-name" beyond what that oracle method reports.
func (p Proto) typeForByNameCheck() Type {
	if t := p.AsType(); t != nil {
		return t
	}
	return p.MbrType
}

// ShapeKind classifies a Type for the purposes of ImplicitScope's structural
// traversal (liftToClasses / collectCompanions).
type ShapeKind uint8

const (
	// ShapeClass is a named type referring to a class symbol, or to an
	// opaque type alias with its own companion.
	ShapeClass ShapeKind = iota
	// ShapeApplied is a type constructor applied to arguments.
	ShapeApplied
	// ShapeLambda is a type lambda; only its result matters for scope.
	ShapeLambda
	// ShapeTypeVar is an inference variable; its underlying bound matters.
	ShapeTypeVar
	// ShapeOther is anything else (function types, tuples, and so on);
	// Parts lists its immediate named-type sub-terms to recurse into.
	ShapeOther
)

// Shape is the structural decomposition of a Type used by implicitScope.
// Bound-flattening for applied-type arguments (lower∧upper for wildcards) is
// the oracle's responsibility: Args must already be ready to recurse on.
type Shape struct {
	Kind ShapeKind

	// ShapeClass
	Prefix      Type // the type's prefix, for prefix-companion lookup
	Sym         Symbol
	OpaqueAlias bool

	// ShapeApplied
	Tycon Type
	Args  []Type

	// ShapeLambda
	Result Type

	// ShapeTypeVar
	Underlying Type

	// ShapeOther
	Parts []Type
}

// TypeOracle is the external type-system collaborator. The core treats every method here as a pure query; none of
// them may be observed to mutate a Type.
type TypeOracle interface {
	// Name returns sym's declared name, used as the default (non-aliased)
	// implicit name for shadowing comparisons.
	Name(sym Symbol) string

	// Accessible reports whether ref's symbol is visible from ref's prefix.
	Accessible(ref TermRef) bool

	// Equivalent reports type-equivalence, used to collapse TermRefSet
	// prefixes and to test cache-key identity when Type values differ.
	Equivalent(a, b Type) bool

	// Subtype is the core subtype test, under "no views" semantics (it must
	// not itself trigger implicit search).
	Subtype(sub, super Type) bool

	// Widen strips a singleton/literal type to its underlying base type.
	Widen(t Type) Type

	// WidenSingleton widens only literal singleton types, leaving other
	// types as-is; used when probing method/poly formal parameters.
	WidenSingleton(t Type) Type

	// Dealias follows (non-opaque) type aliases to their definition.
	Dealias(t Type) Type

	// WildApprox approximates a type's type-variables/wildcards for a
	// covariant (upper-bound) comparison, used by compatibility checks and
	// divergence detection.
	WildApprox(t Type) Type

	// Normalize puts a type into the canonical form the compatibility test
	// compares against (post widen/dealias housekeeping specific to the
	// oracle's type algebra).
	Normalize(t Type) Type

	// Cacheable reports whether t is non-provisional and hash-stable, i.e.
	// safe to use as an implicit-scope memoization key.
	Cacheable(t Type) bool

	// Decompose returns t's structural shape for implicitScope traversal.
	Decompose(t Type) Shape

	// Companion returns the companion object reference for a class or
	// opaque-alias symbol, if one exists.
	Companion(sym Symbol) (TermRef, bool)

	// ImplicitMembers returns the implicit members declared on the module
	// a companion reference denotes, as term references prefixed at the
	// companion's type. Order must be deterministic across runs.
	ImplicitMembers(ref TermRef) []TermRef

	// Parents returns the direct parent types of a class symbol, whose
	// implicit scopes are unioned into their children's.
	Parents(sym Symbol) []Type

	// MethodShape reports, for a method type, its first-parameter-list
	// arity and whether it is declared implicit. ok is false if t is not a
	// method type.
	MethodShape(t Type) (paramCount int, implicit bool, ok bool)

	// PolyResult reports a polymorphic type's result type. ok is false if t
	// is not a polymorphic (type-parameterized) type.
	PolyResult(t Type) (result Type, ok bool)

	// IsBareRef reports whether t denotes an unresolved overloaded
	// reference (a bare TermRef used as a type), which classifies as both
	// Conversion and Extension candidates (overloaded, cannot discard either).
	IsBareRef(t Type) bool

	// IsFunctionType reports whether t is a (non-method) function type.
	IsFunctionType(t Type) bool

	// DerivesFromConversion reports whether t derives from the dedicated
	// Conversion class.
	DerivesFromConversion(t Type) bool

	// DerivesFromSubtypeWitness reports whether t derives from the
	// subtype-witness class, and whether it is specifically the
	// identity-conforming witness (which is excluded from Conversion).
	DerivesFromSubtypeWitness(t Type) (isWitness bool, isIdentity bool)

	// LegacyFunction1 reports, under legacy mode only, whether t is a
	// single-argument function type eligible as a conversion.
	LegacyFunction1(t Type) bool

	// ResolveExtension looks up an extension method named name on the
	// widened type of t.
	ResolveExtension(t Type, name string) (TermRef, bool)

	// WidenSingletonParams widens singleton parameter types of a (possibly
	// polymorphic) method type, used before probing it as a conversion.
	WidenSingletonParams(t Type) Type

	// Compare is the deterministic structural comparator combining nesting
	// level, owner relation and arity, used to disambiguate two successful
	// candidates.
	Compare(ref1, ref2 TermRef, level1, level2 int) int

	// OwnerSubtype reports whether a's owner is a subtype-owner of b's
	// (-1), the reverse (+1), equal/incomparable (0). Used by sort as the
	// second preference key.
	OwnerSubtype(a, b Symbol) int

	// Arity returns ref's first-parameter-list arity (0 for a plain value).
	Arity(ref TermRef) int

	// IsNotProto reports whether t is a Not[_] coherence-witness
	// prototype, and if so its negated argument type.
	IsNotProto(t Type) (arg Type, ok bool)

	// IsByNameType reports whether t is a by-name (lazily evaluated)
	// prototype, the boundary SearchHistory's knot-tying rule looks for.
	IsByNameType(t Type) bool

	// IsCoherenceWitness reports whether t is an equality-witness
	// prototype, for which the first success is returned without further
	// disambiguation.
	IsCoherenceWitness(t Type) bool

	// TypeSize is the structural size measure used by divergence checking.
	TypeSize(t Type) int

	// IsTrivialTop reports whether t is one of the top types (Any/Object)
	// that make InferView a no-op gate.
	IsTrivialTop(t Type) bool

	// IsTrivialBottom reports whether t is one of the bottom types
	// (Nothing/Null) that make InferView a no-op gate.
	IsTrivialBottom(t Type) bool

	// IsValueType reports whether t classifies as a value type, required
	// of InferView's source type.
	IsValueType(t Type) bool

	// CoveringSet is the set of named-type symbols appearing anywhere in t,
	// used by divergence checking.
	CoveringSet(t Type) map[Symbol]struct{}
}
