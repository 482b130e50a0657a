package lang

import (
	"fmt"
	"strconv"

	"github.com/gnoverse/wv/internal/logic"
)

// Parse lexes and parses a complete annotated program:
//
//	{ precondition } statement { postcondition }
func Parse(input string) (*Program, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

// Parser consumes tokens produced by the lexer and builds the program AST.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new Parser instance.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram parses an annotated program and requires the input to end
// after the postcondition block.
func (p *Parser) ParseProgram() (*Program, error) {
	prePos := p.peek().Pos
	pre, err := p.parseAnnotation()
	if err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	postPos := p.peek().Pos
	post, err := p.parseAnnotation()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return &Program{Pre: pre, Body: body, Post: post, PrePos: prePos, PostPos: postPos}, nil
}

// parseAnnotation parses an assertion enclosed in braces.
func (p *Parser) parseAnnotation() (logic.Assertion, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	a, err := p.parseAssertion()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return a, nil
}

// parseStmt parses a statement, folding semicolon chains into a sequence.
// A trailing semicolon before a closing keyword is tolerated.
func (p *Parser) parseStmt() (Stmt, error) {
	first, err := p.parseBasicStmt()
	if err != nil {
		return nil, err
	}

	stmts := []Stmt{first}
	for p.accept(TokenSemi) {
		if !startsStmt(p.peek().Type) {
			break
		}
		s, err := p.parseBasicStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return Seq(stmts...), nil
}

func startsStmt(typ TokenType) bool {
	switch typ {
	case TokenSkip, TokenIdent, TokenIf, TokenWhile:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBasicStmt() (Stmt, error) {
	t := p.peek()
	switch t.Type {
	case TokenSkip:
		p.next()
		return SkipStmt{pos: t.Pos}, nil

	case TokenIdent:
		p.next()
		if _, err := p.expect(TokenAssign); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return AssignStmt{Name: t.Value, Expr: e, pos: t.Pos}, nil

	case TokenIf:
		return p.parseIf()

	case TokenWhile:
		return p.parseWhile()

	default:
		return nil, fmt.Errorf("%s: expected statement, found %s", t.Pos, describe(t))
	}
}

func (p *Parser) parseIf() (Stmt, error) {
	t := p.next()
	cond, err := p.parseAssertion()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenThen); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	var els Stmt
	if p.accept(TokenElse) {
		els, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenFi); err != nil {
		return nil, err
	}
	return IfStmt{Cond: cond, Then: then, Else: els, pos: t.Pos}, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	t := p.next()
	cond, err := p.parseAssertion()
	if err != nil {
		return nil, err
	}

	// The invariant annotation is optional at parse time.
	var inv logic.Assertion
	if p.accept(TokenInvariant) {
		inv, err = p.parseAnnotation()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenDo); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenOd); err != nil {
		return nil, err
	}
	return WhileStmt{Cond: cond, Invariant: inv, Body: body, pos: t.Pos}, nil
}

// Assertion grammar, loosest binding first: '->' (right associative), 'or',
// 'and', 'not', then comparisons and parenthesized groups.

func (p *Parser) parseAssertion() (logic.Assertion, error) {
	return p.parseImplies()
}

func (p *Parser) parseImplies() (logic.Assertion, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.accept(TokenArrow) {
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return logic.Implies(left, right), nil
	}
	return left, nil
}

func (p *Parser) parseOr() (logic.Assertion, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(TokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = logic.Or(left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (logic.Assertion, error) {
	left, err := p.parseUnaryAssertion()
	if err != nil {
		return nil, err
	}
	for p.accept(TokenAnd) {
		right, err := p.parseUnaryAssertion()
		if err != nil {
			return nil, err
		}
		left = logic.And(left, right)
	}
	return left, nil
}

func (p *Parser) parseUnaryAssertion() (logic.Assertion, error) {
	if p.accept(TokenNot) {
		a, err := p.parseUnaryAssertion()
		if err != nil {
			return nil, err
		}
		return logic.Not(a), nil
	}
	return p.parsePrimaryAssertion()
}

func (p *Parser) parsePrimaryAssertion() (logic.Assertion, error) {
	t := p.peek()
	switch t.Type {
	case TokenTrue:
		p.next()
		return logic.True(), nil

	case TokenFalse:
		p.next()
		return logic.False(), nil

	case TokenLParen:
		// A '(' may group an assertion or an arithmetic sub-expression of a
		// comparison. Try the assertion reading first; on failure rewind and
		// read a comparison whose left side starts with the parenthesis.
		save := p.current
		p.next()
		if a, err := p.parseAssertion(); err == nil {
			if p.accept(TokenRParen) {
				return a, nil
			}
		}
		p.current = save
		return p.parseComparison()

	default:
		return p.parseComparison()
	}
}

func (p *Parser) parseComparison() (logic.Assertion, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	var op logic.RelOp
	switch t.Type {
	case TokenEq:
		op = logic.RelEq
	case TokenNeq:
		op = logic.RelNeq
	case TokenLt:
		op = logic.RelLt
	case TokenLte:
		op = logic.RelLte
	case TokenGt:
		op = logic.RelGt
	case TokenGte:
		op = logic.RelGte
	default:
		return nil, fmt.Errorf("%s: expected comparison operator, found %s", t.Pos, describe(t))
	}
	p.next()

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return logic.Atom(left, op, right), nil
}

// Expression grammar: sums over products over factors.

func (p *Parser) parseExpr() (logic.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept(TokenPlus):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = logic.Add(left, right)
		case p.accept(TokenMinus):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = logic.Sub(left, right)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseTerm() (logic.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept(TokenStar):
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = logic.Mul(left, right)
		case p.accept(TokenSlash):
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = logic.Div(left, right)
		case p.accept(TokenPercent):
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = logic.Mod(left, right)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseFactor() (logic.Expr, error) {
	t := p.peek()
	switch t.Type {
	case TokenNumber:
		p.next()
		v, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: integer literal out of range: %s", t.Pos, t.Value)
		}
		return logic.Num(v), nil

	case TokenIdent:
		p.next()
		return logic.Var(t.Value), nil

	case TokenMinus:
		p.next()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return logic.Neg(operand), nil

	case TokenLParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return e, nil

	default:
		return nil, fmt.Errorf("%s: expected expression, found %s", t.Pos, describe(t))
	}
}

// Token cursor helpers

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) next() Token {
	t := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return t
}

func (p *Parser) accept(typ TokenType) bool {
	if p.peek().Type == typ {
		p.current++
		return true
	}
	return false
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	t := p.peek()
	if t.Type != typ {
		return t, fmt.Errorf("%s: expected %s, found %s", t.Pos, typ, describe(t))
	}
	p.current++
	return t, nil
}

func describe(t Token) string {
	switch t.Type {
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("%q", t.Value)
	default:
		return t.Type.String()
	}
}
