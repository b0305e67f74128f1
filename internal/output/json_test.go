// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tense/internal/config"
)

func TestJSONFormatter_PrettyPrintDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(config.Default(), &buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"model.Tense\": {"), out)
	assert.True(t, strings.HasSuffix(out, "}\n"))

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(60), decoded["units.Minute"]["duration"])
}

func TestJSONFormatter_CompactMode(t *testing.T) {
	m := config.NewMapping()
	m.Set("units.Minute", config.Section{config.DurationKey: int64(60)})
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{Compact: true}).Format(m, &buf))
	assert.Equal(t, "{\"units.Minute\":{\"duration\":60}}\n", buf.String())
}

func TestJSONFormatter_FileIsCompact(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.json"))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup

	require.NoError(t, NewJSONFormatter().Format(config.Default(), f))
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(config.Default(), &buf))
	back, err := config.DecodeYAML(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, back.Equal(config.Default()))
}

func TestTOMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TOMLFormatter{}).Format(config.Default(), &buf))
	assert.Contains(t, buf.String(), `["units.Minute"]`)
	back, err := config.DecodeTOML(buf.String())
	require.NoError(t, err)
	assert.Equal(t, config.Default().ToMap(), back.ToMap())
}
