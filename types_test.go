package mlang

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTypeString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang")
	defer teardown()
	//
	for _, x := range []struct {
		typ      Type
		expected string
	}{
		{Int, "int"},
		{Bool, "bool"},
		{None, "none"},
		{EmptyVector, "none(0)"},
		{Array(FloatKind, 3, Unknown), "float(3, None)"},
		{Array(StringKind, 2), "string(2)"},
	} {
		if s := x.typ.String(); s != x.expected {
			t.Errorf("expected %s, have %s", x.expected, s)
		}
	}
}

func TestTypeEquals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang")
	defer teardown()
	//
	if !Array(IntKind, 2, 3).Equals(Array(IntKind, 2, 3)) {
		t.Errorf("expected int(2, 3) to equal itself")
	}
	if Array(IntKind, 2, 3).Equals(Array(FloatKind, 2, 3)) {
		t.Errorf("expected kinds to be compared")
	}
	if Array(FloatKind, Unknown).Equals(Array(FloatKind, 3)) {
		t.Errorf("expected unknown size not to equal a concrete one")
	}
	if !Array(FloatKind, Unknown).Equals(Array(FloatKind, Unknown)) {
		t.Errorf("expected unknown sizes to be equal")
	}
	if Int.Equals(Array(IntKind, 1)) {
		t.Errorf("expected ranks to be compared")
	}
	if !None.IsNone() || EmptyVector.IsNone() || !EmptyVector.IsEmptyVector() {
		t.Errorf("expected sentinels to be distinguished")
	}
}

func TestStackDropTranspose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang")
	defer teardown()
	//
	row := Int.Stack(3)
	if !row.Equals(Array(IntKind, 3)) {
		t.Errorf("expected int(3), have %v", row)
	}
	m := row.Stack(2)
	if !m.Equals(Array(IntKind, 2, 3)) || m.Rank() != 2 {
		t.Errorf("expected int(2, 3), have %v", m)
	}
	if d := m.Drop(1); !d.Equals(row) {
		t.Errorf("expected dropping one dimension to give int(3), have %v", d)
	}
	if d := m.Drop(5); !d.Equals(Int) || !d.IsScalar() {
		t.Errorf("expected dropping all dimensions to give int, have %v", d)
	}
	if tr := m.Transposed(); !tr.Equals(Array(IntKind, 3, 2)) {
		t.Errorf("expected int(3, 2), have %v", tr)
	}
	if e := m.Elem(); !e.Equals(Int) {
		t.Errorf("expected element type int, have %v", e)
	}
	if !m.Equals(Array(IntKind, 2, 3)) {
		t.Errorf("expected operations not to modify their receiver, have %v", m)
	}
}

func TestDimMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang")
	defer teardown()
	//
	for _, x := range []struct {
		a, b, result Dim
		ok           bool
	}{
		{3, 3, 3, true},
		{3, Unknown, 3, true},
		{Unknown, 4, 4, true},
		{Unknown, Unknown, Unknown, true},
		{3, 2, 3, false},
	} {
		d, ok := x.a.Merge(x.b)
		if d != x.result || ok != x.ok {
			t.Errorf("%v ⊔ %v: expected %v/%v, have %v/%v", x.a, x.b, x.result, x.ok, d, ok)
		}
	}
}
