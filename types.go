package mlang

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the element kind of a type.
type Kind int8

// Element kinds. NoKind is used by the sentinel types None and EmptyVector.
const (
	NoKind Kind = iota
	IntKind
	FloatKind
	StringKind
	BoolKind
)

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "none"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	}
	return fmt.Sprintf("<illegal kind: %d>", k)
}

// --- Dimensions ------------------------------------------------------------

// Dim is the size of a single dimension of an array type. Sizes which are
// not known statically are represented by Unknown.
type Dim int

// Unknown is the size of a dimension which cannot be determined statically.
const Unknown Dim = -1

// IsKnown is a predicate: is the size of this dimension statically known?
func (d Dim) IsKnown() bool {
	return d >= 0
}

// Merge unifies two dimension sizes. A concrete size wins over an unknown
// one. The second return value is false if both sizes are concrete and
// differ.
func (d Dim) Merge(other Dim) (Dim, bool) {
	if !d.IsKnown() {
		return other, true
	}
	if !other.IsKnown() {
		return d, true
	}
	return d, d == other
}

func (d Dim) String() string {
	if !d.IsKnown() {
		return "None"
	}
	return strconv.Itoa(int(d))
}

// --- Types -----------------------------------------------------------------

// Type is the static type of an expression: an element kind together with
// a shape. Scalars have an empty shape. The rank of a type is the length of
// its shape.
//
// Types are values and must be compared with Equals.
type Type struct {
	Kind  Kind
	Shape []Dim
}

// None is the type of statements and the placeholder for expressions which
// failed to type-check.
var None = Type{Kind: NoKind}

// EmptyVector is the type of the empty vector literal `[]`.
var EmptyVector = Type{Kind: NoKind, Shape: []Dim{0}}

// Predefined scalar types.
var (
	Int    = Scalar(IntKind)
	Float  = Scalar(FloatKind)
	String = Scalar(StringKind)
	Bool   = Scalar(BoolKind)
)

// Scalar creates a type of rank 0.
func Scalar(k Kind) Type {
	return Type{Kind: k}
}

// Array creates a type of element kind k and the given dimension sizes.
func Array(k Kind, dims ...Dim) Type {
	shape := make([]Dim, len(dims))
	copy(shape, dims)
	return Type{Kind: k, Shape: shape}
}

// Rank returns the number of dimensions of t.
func (t Type) Rank() int {
	return len(t.Shape)
}

// IsScalar is a predicate: is t of rank 0?
func (t Type) IsScalar() bool {
	return len(t.Shape) == 0
}

// IsNone is a predicate: is t the None placeholder?
func (t Type) IsNone() bool {
	return t.Equals(None)
}

// IsEmptyVector is a predicate: is t the type of `[]`?
func (t Type) IsEmptyVector() bool {
	return t.Equals(EmptyVector)
}

// Elem returns the scalar type of t's elements.
func (t Type) Elem() Type {
	return Scalar(t.Kind)
}

// Equals compares two types structurally: kinds, ranks and every dimension
// size have to match. An unknown dimension size only equals another
// unknown size.
func (t Type) Equals(other Type) bool {
	if t.Kind != other.Kind || len(t.Shape) != len(other.Shape) {
		return false
	}
	for i, d := range t.Shape {
		if d != other.Shape[i] {
			return false
		}
	}
	return true
}

// Stack returns the type of a vector of n elements of type t. Stacking adds
// a leading dimension.
func (t Type) Stack(n int) Type {
	shape := make([]Dim, 0, len(t.Shape)+1)
	shape = append(shape, Dim(n))
	shape = append(shape, t.Shape...)
	return Type{Kind: t.Kind, Shape: shape}
}

// Drop removes n leading dimensions from t.
func (t Type) Drop(n int) Type {
	if n > len(t.Shape) {
		n = len(t.Shape)
	}
	return Array(t.Kind, t.Shape[n:]...)
}

// Transposed returns t with its dimension sizes in reverse order.
func (t Type) Transposed() Type {
	shape := make([]Dim, len(t.Shape))
	for i, d := range t.Shape {
		shape[len(t.Shape)-1-i] = d
	}
	return Type{Kind: t.Kind, Shape: shape}
}

// String returns a type as "kind" for scalars and "kind(d1, d2, …)" for arrays,
// with unknown sizes printed as "None".
func (t Type) String() string {
	if len(t.Shape) == 0 {
		return t.Kind.String()
	}
	dims := make([]string, len(t.Shape))
	for i, d := range t.Shape {
		dims[i] = d.String()
	}
	return t.Kind.String() + "(" + strings.Join(dims, ", ") + ")"
}
