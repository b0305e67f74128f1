// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import (
	"strconv"
	"strings"

	"github.com/davetashner/tense/internal/safeeval"
	"github.com/davetashner/tense/internal/units"
)

// valueConverter turns the raw right-hand side of an assignment into a
// typed value.
type valueConverter struct {
	name    string
	matches func(raw string) bool
	convert func(raw string) (any, error)
}

// valueConverters are tried in order; the first whose matches returns true
// converts the value.
var valueConverters = []valueConverter{
	{"boolean", isBoolean, convertBoolean},
	{"integer", isInteger, convertInteger},
	{"list", isList, convertList},
	{"expression", isExpression, convertExpression},
}

// ConvertValue converts a raw assignment value. Failures are a
// *ConversionError or an *ExpressionError.
func ConvertValue(raw string) (any, error) {
	for _, c := range valueConverters {
		if c.matches(raw) {
			return c.convert(raw)
		}
	}
	return nil, &ConversionError{Value: raw, Err: ErrNoConverter}
}

// UnitConstants returns the names available inside exp(...).
func UnitConstants() map[string]int64 {
	consts := make(map[string]int64, 6)
	for _, k := range []units.Kind{units.KindSecond, units.KindMinute, units.KindHour, units.KindDay, units.KindWeek, units.KindYear} {
		d, _ := units.DefaultDuration(k)
		consts[strings.ToLower(string(k))] = d
	}
	return consts
}

func isBoolean(raw string) bool {
	return strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false")
}

func convertBoolean(raw string) (any, error) {
	return strings.EqualFold(raw, "true"), nil
}

func isInteger(raw string) bool {
	if raw == "" {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

func convertInteger(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &ConversionError{Value: raw, Err: safeeval.ErrOverflow}
	}
	return n, nil
}

func isList(raw string) bool { return strings.Contains(raw, ",") }

func convertList(raw string) (any, error) {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

const expPrefix, expSuffix = "exp(", ")"

func isExpression(raw string) bool {
	return len(raw) >= len(expPrefix)+len(expSuffix) &&
		strings.HasPrefix(raw, expPrefix) && strings.HasSuffix(raw, expSuffix)
}

func convertExpression(raw string) (any, error) {
	expr := raw[len(expPrefix) : len(raw)-len(expSuffix)]
	v, err := safeeval.Evaluate(expr, UnitConstants())
	if err != nil {
		return nil, &ExpressionError{Expr: expr, Err: err}
	}
	return v, nil
}
