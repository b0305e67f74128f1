// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"testing"
)

func FuzzHandleCompile(f *testing.F) {
	f.Add("[units.Minute]\nduration = 60\naliases = m,\n", "tense")
	f.Add("[virtual]\nduration = exp(day*2)\naliases = x, y\n", "json")
	f.Add("[model.Tense]\nmultiplier = exp(-1)\n", "toml")
	f.Add("", "yaml")

	f.Fuzz(func(t *testing.T, source, format string) {
		if source == "" {
			return
		}
		result, _, err := handleCompile(context.Background(), nil, CompileInput{Source: source, Format: format})
		if err == nil && (result == nil || len(result.Content) != 1) {
			t.Errorf("successful compile returned %v", result)
		}
	})
}
