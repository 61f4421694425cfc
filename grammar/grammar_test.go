package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMakeGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	ga, err := MakeGrammar()
	if err != nil {
		t.Fatal(err)
	}
	if ga == nil {
		t.Fatalf("expected grammar analysis")
	}
	again, _ := MakeGrammar()
	if again != ga {
		t.Errorf("expected grammar to be created once")
	}
}

func TestRecognizerAgreesWithParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for _, input := range []string{
		"",
		"a = 1;",
		"x = -a' + b * c - d ./ e;",
		"if (a) if (b) x = 1; else x = 2;",
		"for i = 1:10 { print i; if (i == 5) break; }",
		"while (k < 3) k += 1;",
		"A = eye(3, 3); A[1, 2] = A[2, 1] * 2.0; B = A .* A';",
		"x = []; y = zeros(); z = [[1, 2], [3, 4]];",
		"x = a < b < c;",
		"x = 1",
		"if a x = 1;",
		"1 = x;",
		"x = [1, 2;",
	} {
		_, perr := ParseString(input)
		scan, err := Tokenize(input)
		if err != nil {
			t.Fatal(err)
		}
		accept, err := Recognize(scan)
		if err != nil {
			t.Errorf("%q: recognizer error: %v", input, err)
			continue
		}
		if accept != (perr == nil) {
			t.Errorf("%q: recognizer accept=%v, parser error=%v", input, accept, perr)
		}
	}
}

func TestRecognizerScannerError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	scan, err := Tokenize("a = $;")
	if err != nil {
		t.Fatal(err)
	}
	accept, err := Recognize(scan)
	if err == nil || accept {
		t.Errorf("expected scanner error to be reported, accept=%v", accept)
	}
}
