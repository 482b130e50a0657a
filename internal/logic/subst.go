package logic

// SubstExpr returns a copy of e with every occurrence of the named variable
// replaced by repl. The input tree is never modified.
func SubstExpr(e Expr, name string, repl Expr) Expr {
	switch t := e.(type) {
	case NumExpr:
		return t
	case VarExpr:
		if t.Name == name {
			return repl
		}
		return t
	case BinaryExpr:
		return BinaryExpr{
			Op:    t.Op,
			Left:  SubstExpr(t.Left, name, repl),
			Right: SubstExpr(t.Right, name, repl),
		}
	case UnaryExpr:
		return UnaryExpr{Op: t.Op, Operand: SubstExpr(t.Operand, name, repl)}
	default:
		return e
	}
}

// Subst returns a copy of a with every occurrence of the named variable
// replaced by repl, recursing through connectives down to the expressions
// inside atoms. The language has no binding constructs, so substitution is
// always capture-free and no renaming is ever needed.
func Subst(a Assertion, name string, repl Expr) Assertion {
	switch t := a.(type) {
	case TrueAssert:
		return t
	case FalseAssert:
		return t
	case AtomAssert:
		return AtomAssert{
			Left:  SubstExpr(t.Left, name, repl),
			Op:    t.Op,
			Right: SubstExpr(t.Right, name, repl),
		}
	case NotAssert:
		return NotAssert{Operand: Subst(t.Operand, name, repl)}
	case AndAssert:
		return AndAssert{
			Left:  Subst(t.Left, name, repl),
			Right: Subst(t.Right, name, repl),
		}
	case OrAssert:
		return OrAssert{
			Left:  Subst(t.Left, name, repl),
			Right: Subst(t.Right, name, repl),
		}
	case ImpliesAssert:
		return ImpliesAssert{
			Left:  Subst(t.Left, name, repl),
			Right: Subst(t.Right, name, repl),
		}
	default:
		return a
	}
}
