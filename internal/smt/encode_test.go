package smt

import (
	"errors"
	"testing"

	"github.com/gnoverse/wv/internal/logic"
	"github.com/gnoverse/wv/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeExpr(t *testing.T) {
	tests := []struct {
		name string
		expr logic.Expr
		want string
	}{
		{"literal", logic.Num(3), "3"},
		{"zero", logic.Num(0), "0"},
		{"negative literal", logic.Num(-1), "(- 1)"},
		{"variable", logic.Var("x"), "x"},
		{"addition", logic.Add(logic.Var("x"), logic.Num(1)), "(+ x 1)"},
		{"subtraction", logic.Sub(logic.Var("x"), logic.Var("y")), "(- x y)"},
		{"multiplication", logic.Mul(logic.Var("i"), logic.Var("x")), "(* i x)"},
		{"division", logic.Div(logic.Var("x"), logic.Var("y")), "(div x y)"},
		{"modulo", logic.Mod(logic.Var("x"), logic.Num(2)), "(mod x 2)"},
		{"unary minus", logic.Neg(logic.Var("x")), "(- x)"},
		{
			"nested",
			logic.Add(logic.Mul(logic.Var("i"), logic.Var("x")), logic.Num(1)),
			"(+ (* i x) 1)",
		},
		{
			"negative literal in operation",
			logic.Add(logic.Var("x"), logic.Num(-2)),
			"(+ x (- 2))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeExpr(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeAssertion(t *testing.T) {
	tests := []struct {
		name      string
		assertion logic.Assertion
		want      string
	}{
		{"true", logic.True(), "true"},
		{"false", logic.False(), "false"},
		{"equality", logic.Eq(logic.Var("x"), logic.Var("y")), "(= x y)"},
		{"disequality", logic.Neq(logic.Var("x"), logic.Num(0)), "(not (= x 0))"},
		{"less than", logic.Lt(logic.Var("i"), logic.Var("n")), "(< i n)"},
		{"at most", logic.Lte(logic.Var("i"), logic.Var("n")), "(<= i n)"},
		{"greater than", logic.Gt(logic.Var("x"), logic.Num(0)), "(> x 0)"},
		{"at least", logic.Gte(logic.Var("x"), logic.Num(0)), "(>= x 0)"},
		{
			"negation",
			logic.Not(logic.Eq(logic.Var("x"), logic.Num(1))),
			"(not (= x 1))",
		},
		{
			"conjunction",
			logic.And(logic.Gt(logic.Var("x"), logic.Num(0)), logic.Lt(logic.Var("x"), logic.Num(10))),
			"(and (> x 0) (< x 10))",
		},
		{
			"disjunction",
			logic.Or(logic.Eq(logic.Var("x"), logic.Num(0)), logic.Eq(logic.Var("x"), logic.Num(1))),
			"(or (= x 0) (= x 1))",
		},
		{
			"implication",
			logic.Implies(logic.Gt(logic.Var("x"), logic.Num(0)), logic.Gte(logic.Var("y"), logic.Num(0))),
			"(=> (> x 0) (>= y 0))",
		},
		{
			"loop invariant shape",
			logic.And(
				logic.Eq(logic.Var("y"), logic.Mul(logic.Var("i"), logic.Var("x"))),
				logic.Lte(logic.Var("i"), logic.Var("x")),
			),
			"(and (= y (* i x)) (<= i x))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.assertion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDivisionByLiteralZero(t *testing.T) {
	tests := []struct {
		name string
		expr logic.Expr
	}{
		{"division", logic.Div(logic.Var("x"), logic.Num(0))},
		{"modulo", logic.Mod(logic.Var("x"), logic.Num(0))},
		{
			"nested divisor",
			logic.Add(logic.Num(1), logic.Div(logic.Num(10), logic.Num(0))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeExpr(tt.expr)
			require.Error(t, err)

			var genErr *types.GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, types.DivisionByZero, genErr.Reason)
		})
	}

	t.Run("inside assertion", func(t *testing.T) {
		a := logic.Eq(logic.Var("y"), logic.Div(logic.Var("x"), logic.Num(0)))
		_, err := Encode(a)

		var genErr *types.GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, types.DivisionByZero, genErr.Reason)
	})
}

func TestEncodeDivisionByNonZero(t *testing.T) {
	// Only a syntactically zero divisor aborts; variables and nonzero
	// literals pass through even if they could evaluate to zero.
	for _, expr := range []logic.Expr{
		logic.Div(logic.Var("x"), logic.Var("y")),
		logic.Div(logic.Var("x"), logic.Num(2)),
		logic.Mod(logic.Var("x"), logic.Sub(logic.Var("y"), logic.Var("y"))),
		logic.Div(logic.Num(0), logic.Var("x")),
	} {
		_, err := EncodeExpr(expr)
		assert.NoError(t, err)
	}
}
