// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package safeeval evaluates small integer arithmetic expressions against an
// explicit table of named constants.
//
// The grammar is small: integer literals, identifiers looked up in
// the caller's table, the binary operators + - * /, unary + and -, and
// parentheses. Nothing else is reachable from an expression, so evaluation
// cannot touch program state beyond the table it is given.
//
//	expr    = term { ("+" | "-") term } .
//	term    = unary { ("*" | "/") unary } .
//	unary   = ("+" | "-") unary | primary .
//	primary = integer | identifier | "(" expr ")" .
package safeeval

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned when the expression does not follow the grammar.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownName is returned when an identifier is not in the constant table.
	ErrUnknownName = errors.New("unknown name")
	// ErrDivisionByZero is returned when the right operand of "/" is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned when a literal or intermediate result does not fit in int64.
	ErrOverflow = errors.New("integer overflow")
)

// Error describes why an expression could not be evaluated.
type Error struct {
	Expr   string // the expression as given
	Pos    int    // byte offset of the offending token
	Detail string // human-readable detail, may be empty
	Err    error  // one of the package sentinels
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("evaluating %q at offset %d: %v: %s", e.Expr, e.Pos, e.Err, e.Detail)
	}
	return fmt.Sprintf("evaluating %q at offset %d: %v", e.Expr, e.Pos, e.Err)
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *Error) Unwrap() error { return e.Err }

// Evaluate computes the value of expr. Identifiers are resolved against
// constants only; a nil table is treated as empty.
func Evaluate(expr string, constants map[string]int64) (int64, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{expr: expr, toks: toks, constants: constants}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return 0, p.errorf(tok.pos, ErrSyntax, "unexpected %s", tok)
	}
	return v, nil
}

// MustEvaluate is like Evaluate but panics on error. It is meant for
// expressions that are fixed at compile time.
func MustEvaluate(expr string, constants map[string]int64) int64 {
	v, err := Evaluate(expr, constants)
	if err != nil {
		panic(err)
	}
	return v
}
