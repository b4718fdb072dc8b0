package contentstream

import (
	"testing"
)

func parse(t *testing.T, input string) []Operation {
	t.Helper()
	ops, err := NewParser([]byte(input)).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return ops
}

func TestParseSimpleOperator(t *testing.T) {
	ops := parse(t, "q")
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].Operator != "q" {
		t.Errorf("expected operator 'q', got %q", ops[0].Operator)
	}
	if len(ops[0].Operands) != 0 {
		t.Errorf("expected 0 operands, got %d", len(ops[0].Operands))
	}
}

func TestParseNumbers(t *testing.T) {
	ops := parse(t, "100 -2.5 .5 +3 -.25 cm")
	if len(ops) != 1 || ops[0].Operator != "cm" {
		t.Fatalf("unexpected operations: %+v", ops)
	}
	want := []Number{100, -2.5, 0.5, 3, -0.25}
	if len(ops[0].Operands) != len(want) {
		t.Fatalf("expected %d operands, got %d", len(want), len(ops[0].Operands))
	}
	for i, w := range want {
		if got := ops[0].Operands[i]; got != w {
			t.Errorf("operand %d = %v, want %v", i, got, w)
		}
	}
}

func TestParsePathConstruction(t *testing.T) {
	ops := parse(t, "0.57 w\n56.7 700 m\n300.1 700 l\nS\n10 20 30 40 re f\n")
	want := []string{"w", "m", "l", "S", "re", "f"}
	if len(ops) != len(want) {
		t.Fatalf("expected %d operations, got %d", len(want), len(ops))
	}
	for i, op := range want {
		if ops[i].Operator != op {
			t.Errorf("operation %d = %q, want %q", i, ops[i].Operator, op)
		}
	}

	rect, ok := ops[4].Floats(4)
	if !ok {
		t.Fatalf("re operands not numeric: %+v", ops[4].Operands)
	}
	if rect[0] != 10 || rect[3] != 40 {
		t.Errorf("re operands = %v", rect)
	}
}

func TestParseStarOperators(t *testing.T) {
	ops := parse(t, "W* n f* B* T* b*")
	want := []string{"W*", "n", "f*", "B*", "T*", "b*"}
	for i, op := range want {
		if ops[i].Operator != op {
			t.Errorf("operation %d = %q, want %q", i, ops[i].Operator, op)
		}
	}
}

func TestParseQuoteOperators(t *testing.T) {
	ops := parse(t, "(line) ' 1 2 (next)\"")
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
	if ops[0].Operator != "'" || len(ops[0].Operands) != 1 {
		t.Errorf("first operation = %+v", ops[0])
	}
	if ops[1].Operator != `"` || len(ops[1].Operands) != 3 {
		t.Errorf("second operation = %+v", ops[1])
	}
}

func TestParseType3Operators(t *testing.T) {
	ops := parse(t, "500 0 d0 500 0 0 0 400 400 d1")
	if len(ops) != 2 || ops[0].Operator != "d0" || ops[1].Operator != "d1" {
		t.Fatalf("unexpected operations: %+v", ops)
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		input string
		want  String
	}{
		{"(Hello) Tj", "Hello"},
		{"(a (nested) b) Tj", "a (nested) b"},
		{`(tab\there) Tj`, "tab\there"},
		{`(\(x\)) Tj`, "(x)"},
		{`(\101\102) Tj`, "AB"},
		{"(split\\\nline) Tj", "splitline"},
		{"<48656C6C6F> Tj", "Hello"},
		{"<48 65 6c> Tj", "Hel"},
		{"<4> Tj", "@"},
	}
	for _, tt := range tests {
		ops := parse(t, tt.input)
		if len(ops) != 1 || len(ops[0].Operands) != 1 {
			t.Fatalf("%q: unexpected operations %+v", tt.input, ops)
		}
		if got := ops[0].Operands[0]; got != tt.want {
			t.Errorf("%q: operand = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseNames(t *testing.T) {
	ops := parse(t, "/F1 12 Tf /Name#20With#23Hash Do")
	if name, ok := ops[0].Operands[0].(Name); !ok || name != "F1" {
		t.Errorf("font operand = %v", ops[0].Operands[0])
	}
	name, ok := ops[1].Name()
	if !ok || name != "Name With#Hash" {
		t.Errorf("Do operand = %q", name)
	}
}

func TestParseArrayAndDict(t *testing.T) {
	ops := parse(t, "[(A) -120 (B) [1 true null]] TJ /Span <</ActualText (x) /MCID 3 /Nested <</K false>>>> BDC")
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}

	arr, ok := ops[0].Operands[0].(Array)
	if !ok || len(arr) != 4 {
		t.Fatalf("TJ operand = %+v", ops[0].Operands[0])
	}
	inner, ok := arr[3].(Array)
	if !ok || len(inner) != 3 || inner[1] != Bool(true) || inner[2] != (Null{}) {
		t.Errorf("nested array = %+v", arr[3])
	}

	d, ok := ops[1].Operands[1].(Dict)
	if !ok {
		t.Fatalf("BDC operand = %T", ops[1].Operands[1])
	}
	if d["MCID"] != Number(3) || d["ActualText"] != String("x") {
		t.Errorf("dict = %+v", d)
	}
	if nested, ok := d["Nested"].(Dict); !ok || nested["K"] != Bool(false) {
		t.Errorf("nested dict = %+v", d["Nested"])
	}
}

func TestParseComments(t *testing.T) {
	ops := parse(t, "% page setup\nq % save\n1 0 0 1 0 0 cm\nQ")
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
}

func TestParseInlineImage(t *testing.T) {
	ops := parse(t, "q BI /W 2 /H 1 /BPC 8 /CS /G ID \x00EI\xff EI Q 0 0 m")
	want := []string{"q", "BI", "Q", "m"}
	if len(ops) != len(want) {
		t.Fatalf("expected %d operations, got %d: %+v", len(want), len(ops), ops)
	}
	for i, op := range want {
		if ops[i].Operator != op {
			t.Errorf("operation %d = %q, want %q", i, ops[i].Operator, op)
		}
	}
	if len(ops[2].Operands) != 0 {
		t.Errorf("image dictionary leaked into Q: %+v", ops[2].Operands)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n\t ", "% only a comment"} {
		if ops := parse(t, input); len(ops) != 0 {
			t.Errorf("%q: expected no operations, got %d", input, len(ops))
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"(unclosed Tj",
		"<48zz> Tj",
		"[1 2",
		"<</K 1",
		") Tj",
		"1.2.3 w",
	} {
		if _, err := NewParser([]byte(input)).Parse(); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestOperationFloats(t *testing.T) {
	op := Operation{Operator: "m", Operands: []Object{Number(1), Number(2)}}
	if vals, ok := op.Floats(2); !ok || vals[0] != 1 || vals[1] != 2 {
		t.Errorf("Floats(2) = %v, %v", vals, ok)
	}
	if _, ok := op.Floats(3); ok {
		t.Error("Floats(3) succeeded on two operands")
	}

	mixed := Operation{Operator: "m", Operands: []Object{Number(1), Name("x")}}
	if _, ok := mixed.Floats(2); ok {
		t.Error("Floats succeeded on a name operand")
	}
}
