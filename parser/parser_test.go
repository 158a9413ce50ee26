package parser

import (
	"errors"
	"reflect"
	"testing"
)

func mustParseExpr(t *testing.T, src string) Expr {
	t.Helper()
	stmt, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	es, ok := stmt.(*ExprStmt)
	if !ok {
		t.Fatalf("Parse(%q) => %T, want *ExprStmt", src, stmt)
	}
	return es.Expr
}

func wantParseError(t *testing.T, src, msg string) {
	t.Helper()
	_, err := Parse(src)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q): expected ParseError, got %v", src, err)
	}
	if perr.Msg != msg {
		t.Errorf("Parse(%q): expected message %q, got %q", src, msg, perr.Msg)
	}
}

func TestParseSimpleAdd(t *testing.T) {
	want := &BinaryExpr{
		Left:  &NumberExpr{Value: 10},
		Op:    OpAdd,
		Right: &NumberExpr{Value: 5},
	}
	if got := mustParseExpr(t, "10 + 5"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseGrouping(t *testing.T) {
	want := &BinaryExpr{
		Left: &GroupingExpr{Expr: &BinaryExpr{
			Left:  &NumberExpr{Value: 1},
			Op:    OpAdd,
			Right: &NumberExpr{Value: 2},
		}},
		Op:    OpMul,
		Right: &NumberExpr{Value: 5},
	}
	if got := mustParseExpr(t, "(1 + 2) * 5"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParsePrecedence(t *testing.T) {
	// * binds tighter than +.
	want := &BinaryExpr{
		Left: &NumberExpr{Value: 1},
		Op:   OpAdd,
		Right: &BinaryExpr{
			Left:  &NumberExpr{Value: 2},
			Op:    OpMul,
			Right: &NumberExpr{Value: 3},
		},
	}
	if got := mustParseExpr(t, "1 + 2 * 3"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseExponentLeftFold(t *testing.T) {
	want := &ExponentExpr{
		Base: &ExponentExpr{
			Base:  &NumberExpr{Value: 2},
			Power: &NumberExpr{Value: 3},
		},
		Power: &NumberExpr{Value: 2},
	}
	if got := mustParseExpr(t, "2 ^ 3 ^ 2"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseNegative(t *testing.T) {
	want := &BinaryExpr{
		Left:  &NegativeExpr{Expr: &GroupingExpr{Expr: &NumberExpr{Value: 5}}},
		Op:    OpDiv,
		Right: &NumberExpr{Value: 1},
	}
	if got := mustParseExpr(t, "-(5) / 1"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseNegativeChain(t *testing.T) {
	want := &NegativeExpr{Expr: &NegativeExpr{Expr: &NumberExpr{Value: 5}}}
	if got := mustParseExpr(t, "--5"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseAbs(t *testing.T) {
	want := &AbsExpr{Expr: &NegativeExpr{Expr: &NumberExpr{Value: 3}}}
	if got := mustParseExpr(t, "|-3|"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseBuiltinCall(t *testing.T) {
	want := &FuncExpr{
		Fn:  FuncKindSin,
		Arg: &NumberExpr{Value: 1},
	}
	if got := mustParseExpr(t, "sin(1)"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseLogBase(t *testing.T) {
	want := &FuncExpr{
		Fn:   FuncKindLog,
		Base: 2,
		Arg:  &NumberExpr{Value: 8},
	}
	if got := mustParseExpr(t, "log 2 (8)"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseUserCall(t *testing.T) {
	want := &CallExpr{
		Name: "foo",
		Args: []Expr{
			&NumberExpr{Value: 1},
			&BinaryExpr{
				Left:  &NumberExpr{Value: 2},
				Op:    OpAdd,
				Right: &VariableExpr{Name: "x"},
			},
		},
	}
	if got := mustParseExpr(t, "foo(1, 2 + x)"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseVariableReference(t *testing.T) {
	want := &VariableExpr{Name: "ans"}
	if got := mustParseExpr(t, "ans"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseAssignStmt(t *testing.T) {
	stmt, err := Parse("let foo = 1 + 2")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	assign, ok := stmt.(*AssignStmt)
	if !ok {
		t.Fatalf("expected *AssignStmt, got %T", stmt)
	}
	if assign.Name != "foo" {
		t.Errorf("expected name foo, got %q", assign.Name)
	}
	if got := assign.Expr.Format(); got != "1+2" {
		t.Errorf("expected expression 1+2, got %q", got)
	}
}

func TestParseFnStmt(t *testing.T) {
	stmt, err := Parse("fn foo(x, y) x + y")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	fn, ok := stmt.(*FnStmt)
	if !ok {
		t.Fatalf("expected *FnStmt, got %T", stmt)
	}
	if fn.Name != "foo" {
		t.Errorf("expected name foo, got %q", fn.Name)
	}
	if !reflect.DeepEqual(fn.Params, []string{"x", "y"}) {
		t.Errorf("expected params [x y], got %v", fn.Params)
	}
	if got := fn.Body.Format(); got != "x+y" {
		t.Errorf("expected body x+y, got %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"", "Expected expression"},
		{"1 +", "Expected expression"},
		{"(5", "Missing closing parentheses"},
		{"|5", "Missing closing pipe"},
		{"log (8)", "Missing base for log function"},
		{"sin 1", "Missing opening parentheses"},
		{"sin(1", "Missing closing parentheses"},
		{"foo(1", "Missing closing parentheses"},
		{"1 2", "Expected end of expression"},
		{"let = 5", "Expected variable name"},
		{"let x 5", "Expected '=' after variable name"},
		{"fn (x) x", "Expected function name"},
		{"fn foo(x, x) x", "Duplicate parameter name"},
		{"fn foo x", "Missing opening parentheses"},
	}
	for _, tc := range cases {
		wantParseError(t, tc.src, tc.msg)
	}
}

func TestParseWithValuesSubstitutes(t *testing.T) {
	stmt, err := ParseWithValues("a + 3", map[rune]float64{'a': 1})
	if err != nil {
		t.Fatalf("ParseWithValues returned error: %v", err)
	}
	want := &BinaryExpr{
		Left:  &NumberExpr{Value: 1},
		Op:    OpAdd,
		Right: &NumberExpr{Value: 3},
	}
	got := stmt.(*ExprStmt).Expr
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestParseWithValuesUnknownVariable(t *testing.T) {
	_, err := ParseWithValues("b + 3", map[rune]float64{'a': 1})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Msg != "Unknown variable" {
		t.Errorf("expected message %q, got %q", "Unknown variable", perr.Msg)
	}
}

func TestParseWithValuesLeavesLongNamesAlone(t *testing.T) {
	stmt, err := ParseWithValues("abc", map[rune]float64{'a': 1})
	if err != nil {
		t.Fatalf("ParseWithValues returned error: %v", err)
	}
	want := &VariableExpr{Name: "abc"}
	if got := stmt.(*ExprStmt).Expr; !reflect.DeepEqual(got, want) {
		t.Errorf("got %s, want %s", got.Format(), want.Format())
	}
}

func TestFormatRoundTrip(t *testing.T) {
	sources := []string{
		"10 + 5",
		"(1 + 2) * 5",
		"1 + 2 * 3",
		"2 ^ 3 ^ 2",
		"--5",
		"-(5) / 1",
		"|1 - 4|",
		"17 % 5",
		"sin(1)",
		"log 2 (8)",
		"ln(2.5)",
		"sqrt(144)",
		"foo(1, 2 + x)",
		"ans * 2",
		"10000000 * 10",
		"0.00001 / 2",
	}
	for _, src := range sources {
		first := mustParseExpr(t, src)
		text := first.Format()
		second := mustParseExpr(t, text)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip of %q: re-parsing %q changed the tree", src, text)
		}
		if again := second.Format(); again != text {
			t.Errorf("round trip of %q: format not idempotent (%q != %q)", src, again, text)
		}
	}
}

func TestFormatNumberPlainDecimal(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{1e7, "10000000"},
		{1e-5, "0.00001"},
		{-2.5e8, "-250000000"},
		{123.456, "123.456"},
	}
	for _, tc := range cases {
		expr := &NumberExpr{Value: tc.val}
		got := expr.Format()
		if got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.val, got, tc.want)
		}
		if _, err := Parse(got); err != nil {
			t.Errorf("Format(%v) = %q does not parse back: %v", tc.val, got, err)
		}
	}
}

func TestFormatStatements(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"let x = 5", "let x = 5"},
		{"fn foo(a, b) a + b * 5", "fn foo(a, b) a+b*5"},
		{"fn nullary() 42", "fn nullary() 42"},
	}
	for _, tc := range cases {
		stmt, err := Parse(tc.src)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.src, err)
		}
		if got := stmt.Format(); got != tc.want {
			t.Errorf("Parse(%q).Format() => %q, want %q", tc.src, got, tc.want)
		}
		if _, err := Parse(stmt.Format()); err != nil {
			t.Errorf("formatted statement %q does not re-parse: %v", stmt.Format(), err)
		}
	}
}
