package smt

import (
	"fmt"
	"strconv"
	"strings"
)

// parseGetValue parses the s-expression z3 prints for (get-value (...)),
// e.g. ((x 3) (y (- 1))), into a variable assignment.
func parseGetValue(out string) (map[string]int64, error) {
	c := &sexprCursor{toks: tokenizeSexpr(out)}
	if err := c.expect("("); err != nil {
		return nil, err
	}
	model := make(map[string]int64)
	for c.peek() != ")" {
		name, val, err := c.parseBinding()
		if err != nil {
			return nil, err
		}
		model[name] = val
	}
	return model, nil
}

type sexprCursor struct {
	toks []string
	pos  int
}

func (c *sexprCursor) peek() string {
	if c.pos >= len(c.toks) {
		return ""
	}
	return c.toks[c.pos]
}

func (c *sexprCursor) next() string {
	tok := c.peek()
	c.pos++
	return tok
}

func (c *sexprCursor) expect(tok string) error {
	if got := c.next(); got != tok {
		return fmt.Errorf("malformed model: expected %q, got %q", tok, got)
	}
	return nil
}

// parseBinding consumes one (name value) pair.
func (c *sexprCursor) parseBinding() (string, int64, error) {
	if err := c.expect("("); err != nil {
		return "", 0, err
	}
	name := c.next()
	if name == "" || name == "(" || name == ")" {
		return "", 0, fmt.Errorf("malformed model: expected variable name, got %q", name)
	}
	val, err := c.parseIntValue()
	if err != nil {
		return "", 0, err
	}
	if err := c.expect(")"); err != nil {
		return "", 0, err
	}
	return name, val, nil
}

// parseIntValue consumes an integer literal; z3 wraps negatives as (- n).
func (c *sexprCursor) parseIntValue() (int64, error) {
	tok := c.next()
	if tok != "(" {
		val, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed model: expected integer, got %q", tok)
		}
		return val, nil
	}
	if op := c.next(); op != "-" {
		return 0, fmt.Errorf("malformed model: expected negation, got %q", op)
	}
	tok = c.next()
	val, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed model: expected integer, got %q", tok)
	}
	if err := c.expect(")"); err != nil {
		return 0, err
	}
	return -val, nil
}

// tokenizeSexpr splits s-expression text into parens and atoms.
func tokenizeSexpr(out string) []string {
	out = strings.ReplaceAll(out, "(", " ( ")
	out = strings.ReplaceAll(out, ")", " ) ")
	return strings.Fields(out)
}
