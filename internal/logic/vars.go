package logic

import "sort"

// ExprVars returns the distinct variable names occurring in e, sorted.
func ExprVars(e Expr) []string {
	seen := make(map[string]struct{})
	collectExprVars(e, seen)
	return sortedNames(seen)
}

// Vars returns the distinct variable names occurring in a, sorted.
func Vars(a Assertion) []string {
	seen := make(map[string]struct{})
	collectVars(a, seen)
	return sortedNames(seen)
}

func collectExprVars(e Expr, seen map[string]struct{}) {
	switch t := e.(type) {
	case NumExpr:
	case VarExpr:
		seen[t.Name] = struct{}{}
	case BinaryExpr:
		collectExprVars(t.Left, seen)
		collectExprVars(t.Right, seen)
	case UnaryExpr:
		collectExprVars(t.Operand, seen)
	}
}

func collectVars(a Assertion, seen map[string]struct{}) {
	switch t := a.(type) {
	case TrueAssert, FalseAssert:
	case AtomAssert:
		collectExprVars(t.Left, seen)
		collectExprVars(t.Right, seen)
	case NotAssert:
		collectVars(t.Operand, seen)
	case AndAssert:
		collectVars(t.Left, seen)
		collectVars(t.Right, seen)
	case OrAssert:
		collectVars(t.Left, seen)
		collectVars(t.Right, seen)
	case ImpliesAssert:
		collectVars(t.Left, seen)
		collectVars(t.Right, seen)
	}
}

func sortedNames(seen map[string]struct{}) []string {
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
