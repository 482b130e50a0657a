// Package lang defines the While language: the annotated program AST and the
// lexer and parser that build it from source text. A program is a Hoare
// triple: a precondition, a statement, and a postcondition, with loop
// invariants attached to while statements as annotations.
package lang

import (
	"fmt"

	"github.com/gnoverse/wv/internal/logic"
)

// Pos is a line and column location in a source file, 1-based.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// IsValid reports whether the position refers to an actual source location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p is strictly before q in source order.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Stmt represents a statement of the While language.
type Stmt interface {
	isStmt()
	Pos() Pos
	String() string
}

// SkipStmt is the statement that does nothing.
type SkipStmt struct {
	pos Pos
}

func (SkipStmt) isStmt() {}
func (s SkipStmt) Pos() Pos {
	return s.pos
}
func (SkipStmt) String() string {
	return "skip"
}

// AssignStmt assigns the value of an expression to a variable.
type AssignStmt struct {
	Name string
	Expr logic.Expr
	pos  Pos
}

func (AssignStmt) isStmt() {}
func (s AssignStmt) Pos() Pos {
	return s.pos
}
func (s AssignStmt) String() string {
	return s.Name + " := " + s.Expr.String()
}

// SeqStmt runs First and then Second. Longer sequences are right-nested
// pairs, see Seq.
type SeqStmt struct {
	First  Stmt
	Second Stmt
}

func (SeqStmt) isStmt() {}
func (s SeqStmt) Pos() Pos {
	return s.First.Pos()
}
func (s SeqStmt) String() string {
	return s.First.String() + "; " + s.Second.String()
}

// IfStmt branches on a guard assertion. Else may be nil, in which case the
// absent branch behaves like skip.
type IfStmt struct {
	Cond logic.Assertion
	Then Stmt
	Else Stmt
	pos  Pos
}

func (IfStmt) isStmt() {}
func (s IfStmt) Pos() Pos {
	return s.pos
}
func (s IfStmt) String() string {
	result := "if " + s.Cond.String() + " then " + s.Then.String()
	if s.Else != nil {
		result += " else " + s.Else.String()
	}
	return result + " fi"
}

// WhileStmt loops on a guard assertion. Invariant is nil when the annotation
// is absent; parsing without one is legal, generating proof obligations
// without one is not.
type WhileStmt struct {
	Cond      logic.Assertion
	Invariant logic.Assertion
	Body      Stmt
	pos       Pos
}

func (WhileStmt) isStmt() {}
func (s WhileStmt) Pos() Pos {
	return s.pos
}
func (s WhileStmt) String() string {
	result := "while " + s.Cond.String()
	if s.Invariant != nil {
		result += " invariant { " + s.Invariant.String() + " }"
	}
	return result + " do " + s.Body.String() + " od"
}

// Program is an annotated Hoare triple. It is read-only once parsed.
type Program struct {
	Pre  logic.Assertion
	Body Stmt
	Post logic.Assertion

	// PrePos and PostPos locate the two annotation blocks for diagnostics.
	PrePos  Pos
	PostPos Pos
}

func (p *Program) String() string {
	return "{ " + p.Pre.String() + " } " + p.Body.String() + " { " + p.Post.String() + " }"
}

// Helper functions to construct statements

// Skip creates a statement that does nothing.
func Skip() Stmt {
	return SkipStmt{}
}

// Assign creates an assignment statement.
func Assign(name string, e logic.Expr) Stmt {
	return AssignStmt{Name: name, Expr: e}
}

// Seq folds statements into a right-nested sequence. Zero statements yield
// skip.
func Seq(stmts ...Stmt) Stmt {
	if len(stmts) == 0 {
		return SkipStmt{}
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	result := stmts[len(stmts)-1]
	for i := len(stmts) - 2; i >= 0; i-- {
		result = SeqStmt{First: stmts[i], Second: result}
	}
	return result
}

// If creates a conditional statement. A nil else branch is legal.
func If(cond logic.Assertion, then, els Stmt) Stmt {
	return IfStmt{Cond: cond, Then: then, Else: els}
}

// While creates a loop statement with an invariant annotation.
func While(cond, invariant logic.Assertion, body Stmt) Stmt {
	return WhileStmt{Cond: cond, Invariant: invariant, Body: body}
}

// WhileNoInv creates a loop statement without an invariant annotation.
func WhileNoInv(cond logic.Assertion, body Stmt) Stmt {
	return WhileStmt{Cond: cond, Body: body}
}

// NewProgram creates an annotated program from its three parts.
func NewProgram(pre logic.Assertion, body Stmt, post logic.Assertion) *Program {
	return &Program{Pre: pre, Body: body, Post: post}
}
