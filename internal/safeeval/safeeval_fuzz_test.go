// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package safeeval

import (
	"errors"
	"testing"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("2 + 2 * 2")
	f.Add("year * 10")
	f.Add("(((")
	f.Add("-(-(-1))")
	f.Add("9223372036854775807 * 9223372036854775807")
	f.Add("day / 0")

	f.Fuzz(func(t *testing.T, expr string) {
		_, err := Evaluate(expr, unitTable)
		if err == nil {
			return
		}
		var evalErr *Error
		if !errors.As(err, &evalErr) {
			t.Fatalf("error is not *Error: %v", err)
		}
		if evalErr.Pos < 0 || evalErr.Pos > len(expr) {
			t.Fatalf("position %d outside expression of length %d", evalErr.Pos, len(expr))
		}
	})
}
