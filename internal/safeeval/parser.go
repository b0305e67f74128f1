// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package safeeval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// maxDepth bounds parenthesis and unary-operator nesting.
const maxDepth = 256

type parser struct {
	expr      string
	toks      []token
	i         int
	depth     int
	constants map[string]int64
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(pos int, sentinel error, format string, args ...any) *Error {
	return &Error{Expr: p.expr, Pos: pos, Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(pos, ErrSyntax, "expression nested deeper than %d", maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseExpr() (int64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		prev := left
		if tok.text == "+" {
			left, err = add(left, right)
		} else {
			left, err = sub(left, right)
		}
		if err != nil {
			return 0, p.errorf(tok.pos, err, "%d %s %d", prev, tok.text, right)
		}
	}
}

func (p *parser) parseTerm() (int64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		prev := left
		if tok.text == "*" {
			left, err = mul(left, right)
		} else {
			left, err = div(left, right)
		}
		if err != nil {
			return 0, p.errorf(tok.pos, err, "%d %s %d", prev, tok.text, right)
		}
	}
}

func (p *parser) parseUnary() (int64, error) {
	tok := p.peek()
	if tok.kind == tokOp && (tok.text == "+" || tok.text == "-") {
		p.next()
		if err := p.enter(tok.pos); err != nil {
			return 0, err
		}
		defer p.leave()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if tok.text == "+" {
			return v, nil
		}
		if v == math.MinInt64 {
			return 0, p.errorf(tok.pos, ErrOverflow, "negating %d", v)
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (int64, error) {
	tok := p.next()
	switch tok.kind {
	case tokInt:
		v, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, p.errorf(tok.pos, ErrOverflow, "literal %s", tok.text)
			}
			return 0, p.errorf(tok.pos, ErrSyntax, "literal %s", tok.text)
		}
		return v, nil
	case tokIdent:
		v, ok := p.constants[tok.text]
		if !ok {
			return 0, p.errorf(tok.pos, ErrUnknownName, "%q", tok.text)
		}
		return v, nil
	case tokLParen:
		if err := p.enter(tok.pos); err != nil {
			return 0, err
		}
		defer p.leave()
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return 0, p.errorf(closing.pos, ErrSyntax, "expected \")\", found %s", closing)
		}
		return v, nil
	default:
		return 0, p.errorf(tok.pos, ErrSyntax, "unexpected %s", tok)
	}
}

func add(a, b int64) (int64, error) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, ErrOverflow
	}
	return r, nil
}

func sub(a, b int64) (int64, error) {
	r := a - b
	if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
		return 0, ErrOverflow
	}
	return r, nil
}

func mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	r := a * b
	if r/b != a {
		return 0, ErrOverflow
	}
	return r, nil
}

// div truncates toward zero.
func div(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == math.MinInt64 && b == -1 {
		return 0, ErrOverflow
	}
	return a / b, nil
}
