// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParticleNotFound is returned for a line that is neither a header
	// nor an assignment.
	ErrParticleNotFound = errors.New("particle not found")
	// ErrOrphanAssignment is returned for an assignment that precedes every header.
	ErrOrphanAssignment = errors.New("assignment outside of a section")
	// ErrNoConverter is returned when no value converter accepts a value.
	ErrNoConverter = errors.New("no converter for value")
	// ErrAnalyze is returned for a section name outside the known vocabulary.
	ErrAnalyze = errors.New("undefined section")
	// ErrExpression is returned when an exp(...) value fails to evaluate.
	ErrExpression = errors.New("expression failed")
)

// ParticleError reports a line that could not be classified.
type ParticleError struct {
	Line int
	Text string
	Err  error
}

func (e *ParticleError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParticleError) Unwrap() error { return e.Err }

// ConversionError reports a value that no converter accepted.
type ConversionError struct {
	Line  int
	Key   string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, "%s: ", e.Key)
	}
	fmt.Fprintf(&b, "can't convert %q", e.Value)
	if e.Err != nil && !errors.Is(e.Err, ErrNoConverter) {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both ErrNoConverter and the underlying cause.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil || errors.Is(e.Err, ErrNoConverter) {
		return []error{ErrNoConverter}
	}
	return []error{ErrNoConverter, e.Err}
}

// AnalyzeError reports a section header outside the known vocabulary.
type AnalyzeError struct {
	Line        int
	Key         string // the full header text
	Token       string // the part that is not recognized
	Suggestions []string
}

func (e *AnalyzeError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Token == e.Key {
		fmt.Fprintf(&b, "undefined key %q", e.Key)
	} else {
		fmt.Fprintf(&b, "undefined part %q in key %q", e.Token, e.Key)
	}
	switch len(e.Suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "; did you mean %q?", e.Suggestions[0])
	default:
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		fmt.Fprintf(&b, "; did you mean one of %s?", strings.Join(quoted, ", "))
	}
	return b.String()
}

func (e *AnalyzeError) Unwrap() error { return ErrAnalyze }

// ExpressionError reports an exp(...) value that failed to evaluate.
type ExpressionError struct {
	Line int
	Key  string
	Expr string
	Err  error // usually a *safeeval.Error
}

func (e *ExpressionError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, "%s: ", e.Key)
	}
	fmt.Fprintf(&b, "exp(%s): %v", e.Expr, e.Err)
	return b.String()
}

// Unwrap exposes both ErrExpression and the evaluator error.
func (e *ExpressionError) Unwrap() []error { return []error{ErrExpression, e.Err} }

// withPosition fills in the line and key of a conversion failure.
func withPosition(err error, line int, key string) error {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		convErr.Line, convErr.Key = line, key
		return convErr
	}
	var exprErr *ExpressionError
	if errors.As(err, &exprErr) {
		exprErr.Line, exprErr.Key = line, key
		return exprErr
	}
	return err
}
