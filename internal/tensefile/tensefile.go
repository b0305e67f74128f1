// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package tensefile compiles tense files into configuration mappings.
//
// A tense file is a list of sections:
//
//	[units.Minute]           # <namespace>.<Type>
//	duration = 60            # digits, true/false, a comma list, or exp(...)
//	aliases = m, min         # a single alias needs a trailing comma: m,
//
//	[virtual]                # repeatable; collected into model.Tense.virtual
//	duration = exp(week * 2)
//	aliases = fortnight,
//
// Compilation runs four stages: lex, analyze, compile, finalize. Every
// failure is fatal for the call that produced it.
package tensefile

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/davetashner/tense/internal/config"
)

// Compile turns tense source text into a mapping. The result holds only
// what the source declares; merge it onto config.Default() for a complete
// configuration.
func Compile(source string) (*config.Mapping, error) {
	c := &compilation{source: source}
	return c.run()
}

// CompileFile reads and compiles the tense file at path.
func CompileFile(path string) (*config.Mapping, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided tense file path
	if err != nil {
		return nil, err
	}
	m, err := Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load reads path as a YAML/TOML/JSON mapping when its extension says so,
// and compiles it as tense source otherwise.
func Load(path string) (*config.Mapping, error) {
	if config.IsStructuredFile(path) {
		m, err := config.LoadMappingFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	}
	return CompileFile(path)
}

// Result is the outcome of compiling one file with CompileFiles.
type Result struct {
	Path    string
	Mapping *config.Mapping
	Err     error
}

// CompileFiles loads every path concurrently. Results are returned in the
// order of paths; a failing file does not stop the others. The returned
// error is non-nil only when ctx is canceled.
func CompileFiles(ctx context.Context, paths []string, limit int) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Load(path)
			results[i] = Result{Path: path, Mapping: m, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
