package expr

import "testing"

func mustParse(t *testing.T, s string) Node {
	t.Helper()
	n, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return n
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"2^3^2", "(2 ^ (3 ^ 2))"},
		{"-2^2", "(0 - (2 ^ 2))"},
		{"2x", "(2 * x)"},
		{"2(x+1)", "(2 * (x + 1))"},
		{"3(y+2)", "(3 * (y + 2))"},
	}
	for _, c := range cases {
		got := mustParse(t, c.expr).String()
		if got != c.want {
			t.Errorf("Parse(%q).String() = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestParseComparison(t *testing.T) {
	n := mustParse(t, "x = 5 + 5")
	cmp, ok := n.(*Comparison)
	if !ok {
		t.Fatalf("expected *Comparison, got %T", n)
	}
	if _, ok := cmp.Left.(*Variable); !ok {
		t.Errorf("expected left to be Variable, got %T", cmp.Left)
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	n := mustParse(t, "f(x) = x^2")
	cmp, ok := n.(*Comparison)
	if !ok {
		t.Fatalf("expected *Comparison, got %T", n)
	}
	fn, ok := cmp.Left.(*Function)
	if !ok {
		t.Fatalf("expected left to be Function, got %T", cmp.Left)
	}
	if fn.Name != "f" || len(fn.Args) != 1 {
		t.Errorf("unexpected function head: %+v", fn)
	}
}

func TestParseImplicitMultiplicationChain(t *testing.T) {
	n := mustParse(t, "2sin(x)")
	arith, ok := n.(*Arithmetic)
	if !ok || arith.Op != Mul {
		t.Fatalf("expected top-level multiplication, got %T", n)
	}
}

func TestParseTrailingTokensError(t *testing.T) {
	_, err := Parse("1 + 2)")
	if err == nil {
		t.Fatal("expected error for unbalanced parenthesis")
	}
}

func TestParseMismatchedParen(t *testing.T) {
	_, err := Parse("(1 + 2")
	if err == nil {
		t.Fatal("expected error for unclosed parenthesis")
	}
}

func TestLexUnexpectedChar(t *testing.T) {
	_, err := Lex("1 + @")
	if err == nil {
		t.Fatal("expected lex error for '@'")
	}
}

func TestRoundTripReparse(t *testing.T) {
	exprs := []string{"1+2*3", "2^3^2", "-2^2", "2*(x+1)", "a_Body*(hati+hatj)"}
	for _, e := range exprs {
		n1 := mustParse(t, e)
		n2 := mustParse(t, n1.String())
		if n1.String() != n2.String() {
			t.Errorf("round trip mismatch for %q: %q vs %q", e, n1.String(), n2.String())
		}
	}
}

func TestFreeVariables(t *testing.T) {
	n := mustParse(t, "a_Satellite = -g*hatj")
	cmp := n.(*Comparison)
	fv := FreeVariables(cmp.Right, nil)
	if !fv["g"] || !fv["hatj"] {
		t.Errorf("expected free vars g, hatj; got %v", fv)
	}
}
