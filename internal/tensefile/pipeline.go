// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/davetashner/tense/internal/config"
)

// rawSection is one header and the assignments under it, as lexed.
type rawSection struct {
	name  string
	line  int
	attrs config.Section
}

// compilation carries the state of one Compile call through the stages.
// Nothing in it outlives the call.
type compilation struct {
	source  string
	raw     []rawSection
	mapping *config.Mapping
	virtual []config.Section
}

// stage is one link of the compile chain. Each stage knows only its
// successor.
type stage struct {
	name string
	run  func(*compilation) error
	next *stage
}

func (s *stage) then(next *stage) *stage {
	s.next = next
	return next
}

// newChain wires lex -> analyze -> compile -> finalize and returns the first stage.
func newChain() *stage {
	first := &stage{name: "lex", run: lex}
	first.
		then(&stage{name: "analyze", run: analyze}).
		then(&stage{name: "compile", run: compileVirtual}).
		then(&stage{name: "finalize", run: func(*compilation) error { return nil }})
	return first
}

// run walks the chain until no successor remains.
func (c *compilation) run() (*config.Mapping, error) {
	for s := newChain(); s != nil; s = s.next {
		if err := s.run(c); err != nil {
			return nil, err
		}
		slog.Debug("tense: stage done", "stage", s.name, "sections", c.sectionCount(), "virtual", len(c.virtual))
	}
	return c.mapping, nil
}

func (c *compilation) sectionCount() int {
	if c.mapping != nil {
		return c.mapping.Len()
	}
	return len(c.raw)
}

// lex classifies every line and groups assignments under their header.
func lex(c *compilation) error {
	current := -1
	for i, line := range strings.Split(c.source, "\n") {
		lineNo := i + 1
		text := StripComment(line)
		if text == "" {
			continue
		}
		p, err := Classify(text, lineNo)
		if err != nil {
			return err
		}
		switch p.Kind {
		case HeaderParticle:
			c.raw = append(c.raw, rawSection{name: p.Header, line: lineNo, attrs: config.Section{}})
			current = len(c.raw) - 1
		case AssignmentParticle:
			if current < 0 {
				return &ParticleError{Line: lineNo, Text: text, Err: ErrOrphanAssignment}
			}
			v, err := ConvertValue(p.Value)
			if err != nil {
				return withPosition(err, lineNo, p.Key)
			}
			c.raw[current].attrs[p.Key] = v
		}
	}
	return nil
}

// analyze checks every header against the known vocabulary and sets the
// virtual sections aside.
func analyze(c *compilation) error {
	c.mapping = config.NewMapping()
	for _, rs := range c.raw {
		if !strings.Contains(rs.name, ".") {
			if !strings.EqualFold(rs.name, config.VirtualKey) {
				return &AnalyzeError{
					Line:        rs.line,
					Key:         rs.name,
					Token:       rs.name,
					Suggestions: closeMatches(strings.ToLower(rs.name), []string{config.VirtualKey}),
				}
			}
			c.virtual = append(c.virtual, rs.attrs)
			continue
		}
		if err := checkSectionKey(rs.name, rs.line); err != nil {
			return err
		}
		c.mapping.Set(rs.name, rs.attrs)
	}
	return nil
}

func checkSectionKey(key string, line int) error {
	parts := strings.Split(key, ".")
	ns := parts[0]
	if !slices.Contains(config.Namespaces(), ns) {
		return &AnalyzeError{Line: line, Key: key, Token: ns, Suggestions: closeMatches(ns, config.Namespaces())}
	}
	if len(parts) != 2 {
		return &AnalyzeError{Line: line, Key: key, Token: strings.Join(parts[1:], ".")}
	}
	typ := parts[1]
	if known := config.TypeNames(ns); !slices.Contains(known, typ) {
		return &AnalyzeError{Line: line, Key: key, Token: typ, Suggestions: closeMatches(typ, known)}
	}
	return nil
}

// compileVirtual attaches the collected virtual sections to model.Tense.
// An explicit "virtual = ," is an empty virtual list.
func compileVirtual(c *compilation) error {
	if tense, ok := c.mapping.Get(config.TenseSection); ok {
		if list, isList := tense[config.VirtualKey].([]string); isList && len(list) == 0 {
			tense[config.VirtualKey] = []config.Section{}
		}
	}
	if len(c.virtual) == 0 {
		return nil
	}
	c.mapping.Ensure(config.TenseSection)[config.VirtualKey] = c.virtual
	return nil
}
