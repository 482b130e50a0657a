package vcgen

import "github.com/gnoverse/wv/internal/logic"

// exprDivisorConds collects a divisor-nonzero condition for every division
// and modulo node in e, in tree order. Returns nil when e has no divisions.
func exprDivisorConds(e logic.Expr) logic.Assertion {
	conds := collectDivisors(e, nil)
	if len(conds) == 0 {
		return nil
	}
	return logic.Conj(conds...)
}

// guardDivisorConds collects divisor-nonzero conditions from the expressions
// inside a guard assertion.
func guardDivisorConds(a logic.Assertion) logic.Assertion {
	conds := collectGuardDivisors(a, nil)
	if len(conds) == 0 {
		return nil
	}
	return logic.Conj(conds...)
}

func collectDivisors(e logic.Expr, conds []logic.Assertion) []logic.Assertion {
	switch t := e.(type) {
	case logic.BinaryExpr:
		conds = collectDivisors(t.Left, conds)
		conds = collectDivisors(t.Right, conds)
		if t.Op == logic.OpDiv || t.Op == logic.OpMod {
			conds = append(conds, logic.Neq(t.Right, logic.Num(0)))
		}
	case logic.UnaryExpr:
		conds = collectDivisors(t.Operand, conds)
	}
	return conds
}

func collectGuardDivisors(a logic.Assertion, conds []logic.Assertion) []logic.Assertion {
	switch t := a.(type) {
	case logic.AtomAssert:
		conds = collectDivisors(t.Left, conds)
		conds = collectDivisors(t.Right, conds)
	case logic.NotAssert:
		conds = collectGuardDivisors(t.Operand, conds)
	case logic.AndAssert:
		conds = collectGuardDivisors(t.Left, conds)
		conds = collectGuardDivisors(t.Right, conds)
	case logic.OrAssert:
		conds = collectGuardDivisors(t.Left, conds)
		conds = collectGuardDivisors(t.Right, conds)
	case logic.ImpliesAssert:
		conds = collectGuardDivisors(t.Left, conds)
		conds = collectGuardDivisors(t.Right, conds)
	}
	return conds
}
