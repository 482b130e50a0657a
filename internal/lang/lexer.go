package lang

import "fmt"

// Lexer scans While source text and produces tokens.
type Lexer struct {
	input    string
	position int // current reading position in input
	line     int
	col      int
	tokens   []Token
}

// NewLexer returns a new Lexer over the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		col:    1,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the entire input and produces the list of tokens,
// terminated by an EOF token. Comments run from '#' to end of line.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		switch c := l.input[l.position]; {
		case c == '\n':
			l.position++
			l.line++
			l.col = 1

		case c == ' ' || c == '\t' || c == '\r':
			l.advance()

		case c == '#':
			l.skipComment()

		case isLetter(c):
			l.lexIdent()

		case isDigit(c):
			l.lexNumber()

		default:
			if err := l.lexOperator(); err != nil {
				return nil, err
			}
		}
	}

	l.addToken(TokenEOF, "", l.pos())
	return l.tokens, nil
}

func (l *Lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

func (l *Lexer) advance() {
	l.position++
	l.col++
}

func (l *Lexer) addToken(typ TokenType, value string, pos Pos) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Pos: pos})
}

func (l *Lexer) skipComment() {
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.advance()
	}
}

// lexIdent scans an identifier and reclassifies it if it is a keyword.
func (l *Lexer) lexIdent() {
	startPos := l.pos()
	start := l.position
	for l.position < len(l.input) && isIdentChar(l.input[l.position]) {
		l.advance()
	}

	word := l.input[start:l.position]
	if typ, ok := keywords[word]; ok {
		l.addToken(typ, word, startPos)
		return
	}
	l.addToken(TokenIdent, word, startPos)
}

func (l *Lexer) lexNumber() {
	startPos := l.pos()
	start := l.position
	for l.position < len(l.input) && isDigit(l.input[l.position]) {
		l.advance()
	}
	l.addToken(TokenNumber, l.input[start:l.position], startPos)
}

// lexOperator scans a one or two character operator.
func (l *Lexer) lexOperator() error {
	startPos := l.pos()
	c := l.input[l.position]

	switch c {
	case '+':
		l.advance()
		l.addToken(TokenPlus, "+", startPos)
	case '*':
		l.advance()
		l.addToken(TokenStar, "*", startPos)
	case '/':
		l.advance()
		l.addToken(TokenSlash, "/", startPos)
	case '%':
		l.advance()
		l.addToken(TokenPercent, "%", startPos)
	case ';':
		l.advance()
		l.addToken(TokenSemi, ";", startPos)
	case '(':
		l.advance()
		l.addToken(TokenLParen, "(", startPos)
	case ')':
		l.advance()
		l.addToken(TokenRParen, ")", startPos)
	case '{':
		l.advance()
		l.addToken(TokenLBrace, "{", startPos)
	case '}':
		l.advance()
		l.addToken(TokenRBrace, "}", startPos)
	case '=':
		l.advance()
		l.addToken(TokenEq, "=", startPos)
	case '-':
		l.advance()
		if l.peekByte() == '>' {
			l.advance()
			l.addToken(TokenArrow, "->", startPos)
			return nil
		}
		l.addToken(TokenMinus, "-", startPos)
	case '<':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			l.addToken(TokenLte, "<=", startPos)
			return nil
		}
		l.addToken(TokenLt, "<", startPos)
	case '>':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			l.addToken(TokenGte, ">=", startPos)
			return nil
		}
		l.addToken(TokenGt, ">", startPos)
	case '!':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			l.addToken(TokenNeq, "!=", startPos)
			return nil
		}
		return fmt.Errorf("%s: unexpected character '!', did you mean '!='", startPos)
	case ':':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			l.addToken(TokenAssign, ":=", startPos)
			return nil
		}
		return fmt.Errorf("%s: unexpected character ':', did you mean ':='", startPos)
	default:
		return fmt.Errorf("%s: unexpected character %q", startPos, c)
	}
	return nil
}

// peekByte returns the byte at the current position, or 0 at end of input.
func (l *Lexer) peekByte() byte {
	if l.position >= len(l.input) {
		return 0
	}
	return l.input[l.position]
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c)
}
