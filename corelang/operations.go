package corelang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/mlang"
)

// Signature is an entry of the operator table.
type Signature struct {
	Op       string
	Operands []mlang.Kind
	Result   mlang.Kind
}

func (sig Signature) String() string {
	args := make([]string, len(sig.Operands))
	for i, k := range sig.Operands {
		args[i] = k.String()
	}
	return fmt.Sprintf("%s(%s) → %s", sig.Op, strings.Join(args, ", "), sig.Result)
}

type opKey struct {
	op    string
	arity int
	left  mlang.Kind
	right mlang.Kind
}

var operations = map[opKey]mlang.Kind{}

func define(op string, result mlang.Kind, operands ...mlang.Kind) {
	key := opKey{op: op, arity: len(operands), left: operands[0]}
	if len(operands) > 1 {
		key.right = operands[1]
	}
	operations[key] = result
}

func init() {
	numbers := []mlang.Kind{mlang.IntKind, mlang.FloatKind}
	for _, l := range numbers {
		for _, r := range numbers {
			promoted := mlang.FloatKind
			if l == mlang.IntKind && r == mlang.IntKind {
				promoted = mlang.IntKind
			}
			for _, op := range []string{"+", "-", "*"} {
				define(op, promoted, l, r)
			}
			define("/", mlang.FloatKind, l, r)
			for _, op := range []string{"<", ">", "<=", ">="} {
				define(op, mlang.BoolKind, l, r)
			}
		}
		define("-", l, l)
	}
	define("+", mlang.StringKind, mlang.StringKind, mlang.StringKind)
	for _, op := range []string{"<", ">", "<=", ">="} {
		define(op, mlang.BoolKind, mlang.StringKind, mlang.StringKind)
	}
}

// IsDefined is a predicate: is op a key of the operator table?
func IsDefined(op string) bool {
	for key := range operations {
		if key.op == op {
			return true
		}
	}
	return false
}

// Lookup finds the result type of applying op to operands of given types.
// Only scalar operands are found in the table; the second return value is
// false for every other combination.
func Lookup(op string, operands ...mlang.Type) (mlang.Type, bool) {
	if len(operands) == 0 || len(operands) > 2 {
		return mlang.None, false
	}
	key := opKey{op: op, arity: len(operands)}
	for i, t := range operands {
		if !t.IsScalar() || t.Kind == mlang.NoKind {
			tracer().Debugf("operator %s: operand %d is not a scalar: %s", op, i+1, t)
			return mlang.None, false
		}
	}
	key.left = operands[0].Kind
	if len(operands) > 1 {
		key.right = operands[1].Kind
	}
	result, ok := operations[key]
	if !ok {
		return mlang.None, false
	}
	return mlang.Scalar(result), true
}

// Signatures returns all entries of the operator table, sorted by operator
// and operand kinds.
func Signatures() []Signature {
	sigs := make([]Signature, 0, len(operations))
	for key, result := range operations {
		sig := Signature{Op: key.op, Operands: []mlang.Kind{key.left}, Result: result}
		if key.arity > 1 {
			sig.Operands = append(sig.Operands, key.right)
		}
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool {
		a, b := sigs[i], sigs[j]
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		if len(a.Operands) != len(b.Operands) {
			return len(a.Operands) < len(b.Operands)
		}
		for k := range a.Operands {
			if a.Operands[k] != b.Operands[k] {
				return a.Operands[k] < b.Operands[k]
			}
		}
		return false
	})
	return sigs
}

// --- Special operators -----------------------------------------------------

// IsEquality is a predicate: is op one of == and != ?
func IsEquality(op string) bool {
	return op == "==" || op == "!="
}

// IsElementwise is a predicate: is op one of .+ .- .* ./ ?
func IsElementwise(op string) bool {
	switch op {
	case ".+", ".-", ".*", "./":
		return true
	}
	return false
}

// ScalarOp returns the scalar operator underlying an elementwise operator,
// e.g. "+" for ".+".
func ScalarOp(op string) string {
	return strings.TrimPrefix(op, ".")
}

// DimConflict reports two concrete, different sizes of a dimension.
// Dim counts from 1.
type DimConflict struct {
	Dim         int
	Left, Right mlang.Dim
}

// MergeShapes unifies the shapes of two types of equal rank, dimension by
// dimension. A concrete size wins over an unknown one. Every dimension with
// two different concrete sizes is reported as a conflict; the left size is
// kept for it.
func MergeShapes(a, b mlang.Type) ([]mlang.Dim, []DimConflict) {
	if a.Rank() != b.Rank() {
		panic(fmt.Sprintf("cannot merge shapes of different rank: %s and %s", a, b))
	}
	shape := make([]mlang.Dim, a.Rank())
	var conflicts []DimConflict
	for i := range a.Shape {
		d, ok := a.Shape[i].Merge(b.Shape[i])
		if !ok {
			conflicts = append(conflicts, DimConflict{Dim: i + 1, Left: a.Shape[i], Right: b.Shape[i]})
		}
		shape[i] = d
	}
	return shape, conflicts
}
