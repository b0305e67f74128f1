// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package units

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tense/internal/config"
)

// captureWarnings redirects the default logger for the duration of the test.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestFromMapping_Defaults(t *testing.T) {
	tense, err := FromMapping(config.Default())
	require.NoError(t, err)
	assert.Equal(t, int64(1), tense.Multiplier)

	all := tense.Units()
	require.Len(t, all, 6)
	names := make([]string, len(all))
	for i, u := range all {
		names[i] = u.Name
	}
	assert.Equal(t, []string{"Second", "Minute", "Hour", "Day", "Week", "Year"}, names)

	minute, ok := tense.Unit("Minute")
	require.True(t, ok)
	assert.Equal(t, int64(60), minute.Duration)
	assert.Equal(t, KindMinute, minute.Kind)
	assert.False(t, minute.Virtual())
}

func TestFromMapping_VirtualUnits(t *testing.T) {
	m := config.Default()
	tense, _ := m.Get(config.TenseSection)
	tense[config.VirtualKey] = []config.Section{
		{config.DurationKey: int64(1209600), config.AliasesKey: []string{"fortnight"}},
		{config.DurationKey: int64(5), config.AliasesKey: []string{"lustrum"}},
	}

	built, err := FromMapping(m)
	require.NoError(t, err)
	all := built.Units()
	require.Len(t, all, 8)
	assert.Equal(t, "virtual0", all[6].Name)
	assert.Equal(t, "virtual1", all[7].Name)
	assert.True(t, all[6].Virtual())
	assert.Equal(t, int64(1209600), all[6].Duration)

	found := built.Lookup("fortnight")
	require.Len(t, found, 1)
	assert.Equal(t, "virtual0", found[0].Name)
}

func TestFromMapping_DefaultDurationFallback(t *testing.T) {
	m := config.NewMapping()
	m.Set("units.Hour", config.Section{config.AliasesKey: []string{"hr"}})
	tense, err := FromMapping(m)
	require.NoError(t, err)
	hour, ok := tense.Unit("Hour")
	require.True(t, ok)
	assert.Equal(t, int64(3600), hour.Duration)
}

func TestFromMapping_Errors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		attrs    config.Section
		sentinel error
	}{
		{"missing aliases", "units.Minute", config.Section{config.DurationKey: int64(60)}, config.ErrInvalidValue},
		{"unit without duration", "units.Unit", config.Section{config.AliasesKey: []string{"u"}}, config.ErrInvalidValue},
		{"bad duration type", "units.Minute", config.Section{config.DurationKey: "60", config.AliasesKey: []string{"m"}}, config.ErrInvalidValue},
		{"unknown attribute", "units.Minute", config.Section{config.AliasesKey: []string{"m"}, "speed": int64(1)}, config.ErrUnknownKey},
		{"unknown section", "units.Fortnight", config.Section{}, config.ErrUnknownSection},
		{"bad multiplier", "model.Tense", config.Section{config.MultiplierKey: true}, config.ErrInvalidValue},
		{"unknown model key", "model.Tense", config.Section{"colour": "red"}, config.ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := config.NewMapping()
			m.Set(tt.key, tt.attrs)
			_, err := FromMapping(m)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestFromMapping_VirtualMissingDuration(t *testing.T) {
	m := config.NewMapping()
	m.Set(config.TenseSection, config.Section{
		config.VirtualKey: []config.Section{{config.AliasesKey: []string{"x"}}},
	})
	_, err := FromMapping(m)
	require.ErrorIs(t, err, config.ErrInvalidValue)
	assert.Contains(t, err.Error(), "virtual0")
}

func TestFromMapping_NonPositiveWarns(t *testing.T) {
	buf := captureWarnings(t)

	m := config.NewMapping()
	m.Set(config.TenseSection, config.Section{config.MultiplierKey: int64(0)})
	m.Set("units.Minute", config.Section{config.DurationKey: int64(-1), config.AliasesKey: []string{"m"}})

	tense, err := FromMapping(m)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tense.Multiplier)
	assert.Contains(t, buf.String(), "unit duration is not positive")
	assert.Contains(t, buf.String(), "unit=Minute")
	assert.Contains(t, buf.String(), "time multiplier is not positive")
}

func TestFromMapping_PositiveDoesNotWarn(t *testing.T) {
	buf := captureWarnings(t)
	_, err := FromMapping(config.Default())
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestFromStore(t *testing.T) {
	store := config.NewStore(nil)
	require.NoError(t, store.AddVirtualUnit(10, "decasecond"))
	tense, err := FromStore(store)
	require.NoError(t, err)
	assert.Len(t, tense.Lookup("decasecond"), 1)
}

func TestTense_Aliases(t *testing.T) {
	tense := New(1,
		Unit{Name: "Second", Kind: KindSecond, Aliases: []string{"s"}, Duration: 1},
		Unit{Name: "Minute", Kind: KindMinute, Aliases: []string{"m", "min"}, Duration: 60},
	)
	assert.Equal(t, []string{"s", "m", "min"}, tense.Aliases())
	assert.Empty(t, tense.Lookup("M"), "lookup is case-sensitive")
}

func TestTense_UnitsReturnsCopy(t *testing.T) {
	tense, err := FromMapping(config.Default())
	require.NoError(t, err)
	all := tense.Units()
	all[0].Duration = 99
	second, _ := tense.Unit("Second")
	assert.Equal(t, int64(1), second.Duration)
}

func TestDefaultDuration(t *testing.T) {
	d, ok := DefaultDuration(KindYear)
	assert.True(t, ok)
	assert.Equal(t, int64(31536000), d)
	_, ok = DefaultDuration(KindVirtualUnit)
	assert.False(t, ok)
}
