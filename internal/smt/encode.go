// Package smt encodes assertions into SMT-LIB text and discharges
// satisfiability checks through an external solver process.
package smt

import (
	"fmt"
	"strconv"

	"github.com/gnoverse/wv/internal/logic"
	"github.com/gnoverse/wv/internal/types"
)

// EncodeExpr renders an expression as an SMT-LIB term over the Int sort.
// Division or modulo by the literal zero fails with *types.GenerationError;
// any other divisor is encoded as-is with SMT-LIB div/mod semantics.
func EncodeExpr(e logic.Expr) (string, error) {
	switch t := e.(type) {
	case logic.NumExpr:
		// SMT-LIB has no negative numerals; negative values are rendered
		// as an application of unary minus.
		if t.Val < 0 {
			return "(- " + strconv.FormatInt(t.Val, 10)[1:] + ")", nil
		}
		return strconv.FormatInt(t.Val, 10), nil

	case logic.VarExpr:
		return t.Name, nil

	case logic.BinaryExpr:
		if (t.Op == logic.OpDiv || t.Op == logic.OpMod) && isLiteralZero(t.Right) {
			return "", &types.GenerationError{Reason: types.DivisionByZero}
		}
		left, err := EncodeExpr(t.Left)
		if err != nil {
			return "", err
		}
		right, err := EncodeExpr(t.Right)
		if err != nil {
			return "", err
		}
		return "(" + binOpSymbol(t.Op) + " " + left + " " + right + ")", nil

	case logic.UnaryExpr:
		operand, err := EncodeExpr(t.Operand)
		if err != nil {
			return "", err
		}
		return "(- " + operand + ")", nil

	default:
		return "", fmt.Errorf("cannot encode expression %T", e)
	}
}

// Encode renders an assertion as an SMT-LIB formula.
func Encode(a logic.Assertion) (string, error) {
	switch t := a.(type) {
	case logic.TrueAssert:
		return "true", nil

	case logic.FalseAssert:
		return "false", nil

	case logic.AtomAssert:
		left, err := EncodeExpr(t.Left)
		if err != nil {
			return "", err
		}
		right, err := EncodeExpr(t.Right)
		if err != nil {
			return "", err
		}
		if t.Op == logic.RelNeq {
			return "(not (= " + left + " " + right + "))", nil
		}
		return "(" + relOpSymbol(t.Op) + " " + left + " " + right + ")", nil

	case logic.NotAssert:
		operand, err := Encode(t.Operand)
		if err != nil {
			return "", err
		}
		return "(not " + operand + ")", nil

	case logic.AndAssert:
		return encodeBinary("and", t.Left, t.Right)

	case logic.OrAssert:
		return encodeBinary("or", t.Left, t.Right)

	case logic.ImpliesAssert:
		return encodeBinary("=>", t.Left, t.Right)

	default:
		return "", fmt.Errorf("cannot encode assertion %T", a)
	}
}

func encodeBinary(op string, left, right logic.Assertion) (string, error) {
	l, err := Encode(left)
	if err != nil {
		return "", err
	}
	r, err := Encode(right)
	if err != nil {
		return "", err
	}
	return "(" + op + " " + l + " " + r + ")", nil
}

func binOpSymbol(op logic.BinOp) string {
	switch op {
	case logic.OpAdd:
		return "+"
	case logic.OpSub:
		return "-"
	case logic.OpMul:
		return "*"
	case logic.OpDiv:
		return "div"
	case logic.OpMod:
		return "mod"
	default:
		return "?"
	}
}

func relOpSymbol(op logic.RelOp) string {
	switch op {
	case logic.RelEq:
		return "="
	case logic.RelLt:
		return "<"
	case logic.RelLte:
		return "<="
	case logic.RelGt:
		return ">"
	case logic.RelGte:
		return ">="
	default:
		return "?"
	}
}

func isLiteralZero(e logic.Expr) bool {
	num, ok := e.(logic.NumExpr)
	return ok && num.Val == 0
}
