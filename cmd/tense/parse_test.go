// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tense/internal/config"
)

func TestParse_Defaults(t *testing.T) {
	inTempProject(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"parse", "1min10second", "1", "second"}, "71\n"},
		{[]string{"parse", "1d2minutes 5 sec"}, "86525\n"},
		{[]string{"parse", "--smart", "1 year and 10 minutes + 5 seconds"}, "31536605\n"},
		{[]string{"parse", "--timedelta", "90 min"}, "1h30m\n"},
		{[]string{"parse", "hour 30"}, "0\n"},
	}
	for _, tt := range tests {
		out, _, err := run(t, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}
}

func TestParse_UsesLocalTenseFile(t *testing.T) {
	dir := inTempProject(t)
	writeTestFile(t, dir, config.FileName, "[virtual]\nduration = exp(week * 2)\naliases = fortnight,\n\n[model.Tense]\nmultiplier = 2\n")

	out, _, err := run(t, "parse", "1 fortnight 1s")
	require.NoError(t, err)
	assert.Equal(t, "2419202\n", out)
}

func TestParse_TenseFileFlag(t *testing.T) {
	dir := inTempProject(t)
	writeTestFile(t, dir, config.FileName, "[units.Minute]\nduration = 1\n")
	explicit := writeTestFile(t, dir, "other.tense", "[units.Minute]\naliases = mn,\n")

	out, _, err := run(t, "--tense-file", explicit, "parse", "2 mn 2 min")
	require.NoError(t, err)
	assert.Equal(t, "120\n", out)
}

func TestParse_Errors(t *testing.T) {
	dir := inTempProject(t)

	_, _, err := run(t, "parse", "9223372036854775807 years")
	require.Error(t, err)
	assert.Equal(t, ExitEval, exitCode(t, err))

	writeTestFile(t, dir, config.FileName, "not a tense file\n")
	_, _, err = run(t, "parse", "1s")
	require.Error(t, err)
	assert.Equal(t, ExitConfig, exitCode(t, err))
}

func TestParse_NonPositiveDurationWarns(t *testing.T) {
	dir := inTempProject(t)
	writeTestFile(t, dir, config.FileName, "[units.Minute]\nduration = 0\n")

	out, stderr, err := run(t, "parse", "5 min 1 s")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, stderr, "unit duration is not positive")
}

func TestEval(t *testing.T) {
	out, _, err := run(t, "eval", "week", "*", "2")
	require.NoError(t, err)
	assert.Equal(t, "1209600\n", out)

	_, _, err = run(t, "eval", "1 / (hour - hour)")
	require.Error(t, err)
	assert.Equal(t, ExitEval, exitCode(t, err))
	assert.Contains(t, err.Error(), "division by zero")
}
