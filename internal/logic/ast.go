// Package logic defines the formula model of the verifier: arithmetic
// expressions and first-order assertions as immutable trees, plus the
// substitution machinery that weakest-precondition computation relies on.
//
// Expressions and assertions are distinct grammars. An expression denotes an
// integer; an assertion denotes a proposition. The only bridge between the
// two is Atom, which relates two expressions with a comparison operator.
package logic

import "fmt"

// Expr represents an arithmetic expression over integers and variables.
type Expr interface {
	isExpr()
	String() string
}

// NumExpr represents an integer literal.
type NumExpr struct {
	Val int64
}

func (NumExpr) isExpr() {}
func (e NumExpr) String() string {
	return fmt.Sprintf("%d", e.Val)
}

// VarExpr represents a variable reference.
type VarExpr struct {
	Name string
}

func (VarExpr) isExpr() {}
func (e VarExpr) String() string {
	return e.Name
}

// BinOp represents binary arithmetic operators.
type BinOp int

const (
	_ BinOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

// BinaryExpr represents a binary arithmetic expression.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}
func (e BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// UnOp represents unary arithmetic operators.
type UnOp int

const (
	OpNeg UnOp = iota
)

func (op UnOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// UnaryExpr represents a unary arithmetic expression.
type UnaryExpr struct {
	Op      UnOp
	Operand Expr
}

func (UnaryExpr) isExpr() {}
func (e UnaryExpr) String() string {
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// RelOp represents comparison operators, the boundary between expressions
// and assertions.
type RelOp int

const (
	_ RelOp = iota
	RelEq
	RelNeq
	RelLt
	RelLte
	RelGt
	RelGte
)

func (op RelOp) String() string {
	switch op {
	case RelEq:
		return "="
	case RelNeq:
		return "!="
	case RelLt:
		return "<"
	case RelLte:
		return "<="
	case RelGt:
		return ">"
	case RelGte:
		return ">="
	default:
		return "?"
	}
}

// Assertion represents a first-order proposition over program variables.
type Assertion interface {
	isAssertion()
	String() string
}

// TrueAssert is the trivially valid assertion.
type TrueAssert struct{}

func (TrueAssert) isAssertion() {}
func (TrueAssert) String() string {
	return "true"
}

// FalseAssert is the trivially unsatisfiable assertion.
type FalseAssert struct{}

func (FalseAssert) isAssertion() {}
func (FalseAssert) String() string {
	return "false"
}

// AtomAssert relates two expressions with a comparison operator. It is the
// only assertion form that contains expressions.
type AtomAssert struct {
	Left  Expr
	Op    RelOp
	Right Expr
}

func (AtomAssert) isAssertion() {}
func (a AtomAssert) String() string {
	return a.Left.String() + " " + a.Op.String() + " " + a.Right.String()
}

// NotAssert is logical negation.
type NotAssert struct {
	Operand Assertion
}

func (NotAssert) isAssertion() {}
func (a NotAssert) String() string {
	return "not (" + a.Operand.String() + ")"
}

// AndAssert is logical conjunction.
type AndAssert struct {
	Left  Assertion
	Right Assertion
}

func (AndAssert) isAssertion() {}
func (a AndAssert) String() string {
	return "(" + a.Left.String() + " and " + a.Right.String() + ")"
}

// OrAssert is logical disjunction.
type OrAssert struct {
	Left  Assertion
	Right Assertion
}

func (OrAssert) isAssertion() {}
func (a OrAssert) String() string {
	return "(" + a.Left.String() + " or " + a.Right.String() + ")"
}

// ImpliesAssert is logical implication.
type ImpliesAssert struct {
	Left  Assertion
	Right Assertion
}

func (ImpliesAssert) isAssertion() {}
func (a ImpliesAssert) String() string {
	return "(" + a.Left.String() + " -> " + a.Right.String() + ")"
}

// Helper functions to construct formula nodes

// Num creates an integer literal expression.
func Num(v int64) Expr {
	return NumExpr{Val: v}
}

// Var creates a variable reference expression.
func Var(name string) Expr {
	return VarExpr{Name: name}
}

// Binary creates a binary arithmetic expression.
func Binary(op BinOp, left, right Expr) Expr {
	return BinaryExpr{Op: op, Left: left, Right: right}
}

// Add creates a sum expression.
func Add(left, right Expr) Expr {
	return BinaryExpr{Op: OpAdd, Left: left, Right: right}
}

// Sub creates a difference expression.
func Sub(left, right Expr) Expr {
	return BinaryExpr{Op: OpSub, Left: left, Right: right}
}

// Mul creates a product expression.
func Mul(left, right Expr) Expr {
	return BinaryExpr{Op: OpMul, Left: left, Right: right}
}

// Div creates a quotient expression.
func Div(left, right Expr) Expr {
	return BinaryExpr{Op: OpDiv, Left: left, Right: right}
}

// Mod creates a remainder expression.
func Mod(left, right Expr) Expr {
	return BinaryExpr{Op: OpMod, Left: left, Right: right}
}

// Neg creates an arithmetic negation expression.
func Neg(operand Expr) Expr {
	return UnaryExpr{Op: OpNeg, Operand: operand}
}

// True creates the trivially valid assertion.
func True() Assertion {
	return TrueAssert{}
}

// False creates the trivially unsatisfiable assertion.
func False() Assertion {
	return FalseAssert{}
}

// Atom creates a comparison assertion between two expressions.
func Atom(left Expr, op RelOp, right Expr) Assertion {
	return AtomAssert{Left: left, Op: op, Right: right}
}

// Eq creates an equality assertion.
func Eq(left, right Expr) Assertion {
	return AtomAssert{Left: left, Op: RelEq, Right: right}
}

// Neq creates a not-equal assertion.
func Neq(left, right Expr) Assertion {
	return AtomAssert{Left: left, Op: RelNeq, Right: right}
}

// Lt creates a less-than assertion.
func Lt(left, right Expr) Assertion {
	return AtomAssert{Left: left, Op: RelLt, Right: right}
}

// Lte creates a less-or-equal assertion.
func Lte(left, right Expr) Assertion {
	return AtomAssert{Left: left, Op: RelLte, Right: right}
}

// Gt creates a greater-than assertion.
func Gt(left, right Expr) Assertion {
	return AtomAssert{Left: left, Op: RelGt, Right: right}
}

// Gte creates a greater-or-equal assertion.
func Gte(left, right Expr) Assertion {
	return AtomAssert{Left: left, Op: RelGte, Right: right}
}

// Not creates a negated assertion.
func Not(a Assertion) Assertion {
	return NotAssert{Operand: a}
}

// And creates a conjunction.
func And(left, right Assertion) Assertion {
	return AndAssert{Left: left, Right: right}
}

// Or creates a disjunction.
func Or(left, right Assertion) Assertion {
	return OrAssert{Left: left, Right: right}
}

// Implies creates an implication.
func Implies(left, right Assertion) Assertion {
	return ImpliesAssert{Left: left, Right: right}
}

// Conj folds assertions into a right-nested conjunction. Zero assertions
// yield True.
func Conj(as ...Assertion) Assertion {
	if len(as) == 0 {
		return TrueAssert{}
	}
	result := as[len(as)-1]
	for i := len(as) - 2; i >= 0; i-- {
		result = AndAssert{Left: as[i], Right: result}
	}
	return result
}
