package logic

import (
	"testing"
)

// =======================
// Substitution Tests
// =======================

func TestSubstExprReplacesVariable(t *testing.T) {
	// (x + 1)[x := y*2] should be (y*2 + 1)
	e := Add(Var("x"), Num(1))
	got := SubstExpr(e, "x", Mul(Var("y"), Num(2)))

	want := Add(Mul(Var("y"), Num(2)), Num(1))
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestSubstExprLeavesOtherVariables(t *testing.T) {
	e := Add(Var("x"), Var("y"))
	got := SubstExpr(e, "x", Num(0))

	want := Add(Num(0), Var("y"))
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestSubstIsCongruent(t *testing.T) {
	// Substituting into an atom is the same as substituting into both sides.
	l := Add(Var("x"), Num(1))
	r := Mul(Var("x"), Var("y"))
	a := Atom(l, RelLte, r)

	got := Subst(a, "x", Num(3))
	want := Atom(SubstExpr(l, "x", Num(3)), RelLte, SubstExpr(r, "x", Num(3)))
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestSubstRecursesThroughConnectives(t *testing.T) {
	// (x = 0 and (x < y -> not (x > 1)))[x := z]
	a := And(
		Eq(Var("x"), Num(0)),
		Implies(Lt(Var("x"), Var("y")), Not(Gt(Var("x"), Num(1)))),
	)

	got := Subst(a, "x", Var("z"))
	want := And(
		Eq(Var("z"), Num(0)),
		Implies(Lt(Var("z"), Var("y")), Not(Gt(Var("z"), Num(1)))),
	)
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestSubstAbsentVariableIsIdentity(t *testing.T) {
	a := Or(Eq(Var("a"), Num(1)), Lt(Var("b"), Var("c")))

	got := Subst(a, "x", Num(42))
	if got != a {
		t.Errorf("Expected identity, got %s", got)
	}
}

func TestSubstLeavesConstantsUnchanged(t *testing.T) {
	if got := Subst(True(), "x", Num(1)); got != True() {
		t.Errorf("Expected true, got %s", got)
	}
	if got := Subst(False(), "x", Num(1)); got != False() {
		t.Errorf("Expected false, got %s", got)
	}
}

func TestSubstDoesNotMutateOriginal(t *testing.T) {
	a := Eq(Var("x"), Num(0))
	before := a.String()

	_ = Subst(a, "x", Num(7))
	if a.String() != before {
		t.Errorf("Original assertion mutated: %s", a)
	}
}

// =======================
// Variable Collection Tests
// =======================

func TestVarsSortedAndDistinct(t *testing.T) {
	a := And(
		Eq(Var("y"), Mul(Var("i"), Var("x"))),
		Lte(Var("i"), Var("x")),
	)

	got := Vars(a)
	want := []string{"i", "x", "y"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestVarsOfClosedAssertion(t *testing.T) {
	a := Implies(True(), Eq(Num(1), Num(1)))
	if got := Vars(a); len(got) != 0 {
		t.Errorf("Expected no variables, got %v", got)
	}
}

func TestExprVarsNested(t *testing.T) {
	e := Div(Neg(Var("n")), Add(Var("d"), Num(1)))
	got := ExprVars(e)
	if len(got) != 2 || got[0] != "d" || got[1] != "n" {
		t.Errorf("Expected [d n], got %v", got)
	}
}

// =======================
// Rendering Tests
// =======================

func TestExprString(t *testing.T) {
	e := Add(Mul(Var("i"), Var("x")), Num(1))
	if got := e.String(); got != "((i * x) + 1)" {
		t.Errorf("Unexpected rendering: %s", got)
	}
}

func TestNegativeLiteralString(t *testing.T) {
	e := Neg(Num(1))
	if got := e.String(); got != "(-1)" {
		t.Errorf("Unexpected rendering: %s", got)
	}
}

func TestAssertionString(t *testing.T) {
	a := And(Eq(Var("y"), Mul(Var("i"), Var("x"))), Lte(Var("i"), Var("x")))
	if got := a.String(); got != "(y = (i * x) and i <= x)" {
		t.Errorf("Unexpected rendering: %s", got)
	}
}

func TestImplicationString(t *testing.T) {
	a := Implies(Gt(Var("x"), Num(0)), Eq(Var("y"), Num(1)))
	if got := a.String(); got != "(x > 0 -> y = 1)" {
		t.Errorf("Unexpected rendering: %s", got)
	}
}

// =======================
// Constructor Tests
// =======================

func TestConjFoldsRight(t *testing.T) {
	a := Eq(Var("a"), Num(1))
	b := Eq(Var("b"), Num(2))
	c := Eq(Var("c"), Num(3))

	got := Conj(a, b, c)
	want := And(a, And(b, c))
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestConjEmptyIsTrue(t *testing.T) {
	if got := Conj(); got != True() {
		t.Errorf("Expected true, got %s", got)
	}
}

func TestConjSingleIsIdentity(t *testing.T) {
	a := Lt(Var("i"), Var("n"))
	if got := Conj(a); got != a {
		t.Errorf("Expected %s, got %s", a, got)
	}
}
