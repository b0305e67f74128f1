// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tense/internal/config"
	"github.com/davetashner/tense/internal/safeeval"
)

const sample = `
# Units used by the billing service.
[model.Tense]
multiplier = 1

[units.Minute]
duration = 60
aliases = m, min

[virtual]
duration = exp(week * 2)
aliases = fortnight, fn

[virtual]
duration = exp(year * 5)
aliases = lustrum,
`

func TestCompile_MinimalSection(t *testing.T) {
	m, err := Compile("[units.Minute]\nduration = 60\naliases = m, min\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]any{
		"units.Minute": {"duration": int64(60), "aliases": []string{"m", "min"}},
	}, m.ToMap())
}

func TestCompile_Sample(t *testing.T) {
	m, err := Compile(sample)
	require.NoError(t, err)
	assert.Equal(t, []string{"model.Tense", "units.Minute"}, m.Keys())

	tense, ok := m.Get(config.TenseSection)
	require.True(t, ok)
	assert.Equal(t, int64(1), tense[config.MultiplierKey])

	virtual := tense.Virtual()
	require.Len(t, virtual, 2)
	assert.Equal(t, int64(1209600), virtual[0][config.DurationKey])
	assert.Equal(t, []string{"fortnight", "fn"}, virtual[0].Aliases())
	assert.Equal(t, int64(157680000), virtual[1][config.DurationKey])
	assert.Equal(t, []string{"lustrum"}, virtual[1].Aliases())

	require.NoError(t, config.Validate(m))
}

func TestCompile_VirtualWithoutTenseSection(t *testing.T) {
	m, err := Compile("[VIRTUAL]\nduration = 10\naliases = dec,\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"model.Tense"}, m.Keys())
	tense, _ := m.Get(config.TenseSection)
	require.Len(t, tense.Virtual(), 1)
	assert.NotContains(t, m.Keys(), "VIRTUAL")
}

func TestCompile_VirtualStateIsPerCall(t *testing.T) {
	src := "[virtual]\nduration = 5\naliases = five,\n"
	for range 3 {
		m, err := Compile(src)
		require.NoError(t, err)
		tense, _ := m.Get(config.TenseSection)
		assert.Len(t, tense.Virtual(), 1)
	}

	m, err := Compile("[units.Second]\nduration = 1\n")
	require.NoError(t, err)
	assert.False(t, m.Has(config.TenseSection))
}

func TestCompile_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src := strings.Repeat(fmt.Sprintf("[virtual]\nduration = %d\naliases = v%d,\n", i+1, i), i+1)
			m, err := Compile(src)
			if err != nil {
				errs <- err
				return
			}
			tense, _ := m.Get(config.TenseSection)
			if got := len(tense.Virtual()); got != i+1 {
				errs <- fmt.Errorf("call %d: got %d virtual units", i, got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestCompile_CommentStripping(t *testing.T) {
	a, err := Compile("[units.Minute]\nduration = 60  # seconds\n")
	require.NoError(t, err)
	b, err := Compile("[units.Minute]\nduration = 60\n")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestCompile_BlankAndCommentLines(t *testing.T) {
	m, err := Compile("\n   \n# header comment\n\t\n")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestCompile_RepeatedHeaderOverwrites(t *testing.T) {
	m, err := Compile("[units.Hour]\nduration = 1\naliases = a,b\n[units.Day]\nduration = 2\n[units.Hour]\nduration = 3\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"units.Hour", "units.Day"}, m.Keys())
	hour, _ := m.Get("units.Hour")
	assert.Equal(t, config.Section{config.DurationKey: int64(3)}, hour)
}

func TestCompile_ValidDottedHeaders(t *testing.T) {
	for _, ns := range config.Namespaces() {
		for _, typ := range config.TypeNames(ns) {
			key := config.SectionKey(ns, typ)
			t.Run(key, func(t *testing.T) {
				_, err := Compile("[" + key + "]\n")
				assert.NoError(t, err)
			})
		}
	}
}

func TestCompile_OneWordHeaders(t *testing.T) {
	for _, word := range []string{"virtuals", "units", "Tense", "virt", "", "v1rtual", "minute"} {
		t.Run(word, func(t *testing.T) {
			_, err := Compile("[" + word + "]\n")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAnalyze)
		})
	}
	for _, word := range []string{"virtual", "Virtual", "VIRTUAL", "vIrTuAl"} {
		t.Run(word, func(t *testing.T) {
			_, err := Compile("[" + word + "]\n")
			assert.NoError(t, err)
		})
	}
}

func TestCompile_OneWordSuggestion(t *testing.T) {
	_, err := Compile("[virtaul]\n")
	var aErr *AnalyzeError
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, []string{"virtual"}, aErr.Suggestions)
	assert.Equal(t, 1, aErr.Line)
	assert.Contains(t, err.Error(), `did you mean "virtual"?`)
}

func TestCompile_UnknownNamespace(t *testing.T) {
	_, err := Compile("[units.Second]\n\n[unitz.Minute]\nduration = 60\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAnalyze)

	var aErr *AnalyzeError
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, "unitz", aErr.Token)
	assert.Equal(t, "unitz.Minute", aErr.Key)
	assert.Equal(t, 3, aErr.Line)
	assert.Contains(t, aErr.Suggestions, "units")
	assert.Contains(t, err.Error(), "unitz")
	assert.Contains(t, err.Error(), "units")
}

func TestCompile_UnknownType(t *testing.T) {
	_, err := Compile("[units.Fortnight]\n")
	require.Error(t, err)
	var aErr *AnalyzeError
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, "Fortnight", aErr.Token)
	assert.Contains(t, err.Error(), "Fortnight")

	_, err = Compile("[units.Minutes]\n")
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, []string{"Minute"}, aErr.Suggestions)

	_, err = Compile("[model.Minute]\n")
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, "Minute", aErr.Token)
}

func TestCompile_TooManyParts(t *testing.T) {
	_, err := Compile("[units.Minute.aliases]\n")
	var aErr *AnalyzeError
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, "Minute.aliases", aErr.Token)
}

func TestCompile_ParticleNotFound(t *testing.T) {
	_, err := Compile("[units.Minute]\nduration 60\n")
	require.Error(t, err)
	var pErr *ParticleError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, 2, pErr.Line)
	assert.Equal(t, "duration 60", pErr.Text)
	assert.ErrorIs(t, err, ErrParticleNotFound)
}

func TestCompile_OrphanAssignment(t *testing.T) {
	_, err := Compile("duration = 60\n[units.Minute]\n")
	assert.ErrorIs(t, err, ErrOrphanAssignment)
}

func TestCompile_ConversionError(t *testing.T) {
	_, err := Compile("[units.Minute]\n\naliases = minute\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoConverter)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, 3, convErr.Line)
	assert.Equal(t, "aliases", convErr.Key)
	assert.Equal(t, "minute", convErr.Value)
	assert.Equal(t, `line 3: aliases: can't convert "minute"`, err.Error())
}

func TestCompile_ExpressionErrorAborts(t *testing.T) {
	_, err := Compile("[units.Day]\nduration = exp(hour * 24 / 0)\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpression)
	assert.ErrorIs(t, err, safeeval.ErrDivisionByZero)

	var exprErr *ExpressionError
	require.True(t, errors.As(err, &exprErr))
	assert.Equal(t, 2, exprErr.Line)
	assert.Equal(t, "duration", exprErr.Key)
}

func TestCompile_EscapedHash(t *testing.T) {
	m, err := Compile("[units.Second]\naliases = \\#, sec # comment\n")
	require.NoError(t, err)
	second, _ := m.Get("units.Second")
	assert.Equal(t, []string{"#", "sec"}, second.Aliases())
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tense")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	m, err := CompileFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	_, err = CompileFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.tense")
	require.NoError(t, os.WriteFile(bad, []byte("[unitz.Minute]\n"), 0o600))
	_, err = CompileFile(bad)
	require.ErrorIs(t, err, ErrAnalyze)
	assert.Contains(t, err.Error(), bad)
}

func TestLoad_Structured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units.Minute:\n  duration: 60\n  aliases: [m]\n"), 0o600))
	m, err := Load(path)
	require.NoError(t, err)
	minute, _ := m.Get("units.Minute")
	assert.Equal(t, []string{"m"}, minute.Aliases())
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tense")
	bad := filepath.Join(dir, "bad.tense")
	require.NoError(t, os.WriteFile(good, []byte(sample), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("[units.Fortnight]\n"), 0o600))

	results, err := CompileFiles(context.Background(), []string{good, bad, good}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, good, results[0].Path)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].Mapping.Len())

	assert.Equal(t, bad, results[1].Path)
	assert.ErrorIs(t, results[1].Err, ErrAnalyze)
	assert.Nil(t, results[1].Mapping)

	require.NoError(t, results[2].Err)
	assert.NotSame(t, results[0].Mapping, results[2].Mapping)
}

func TestCompileFiles_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CompileFiles(ctx, []string{"a", "b"}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
