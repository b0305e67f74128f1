// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import "strings"

// ParticleKind classifies one line of a tense file.
type ParticleKind int

// Particle kinds, in matching priority order.
const (
	HeaderParticle ParticleKind = iota + 1
	AssignmentParticle
)

func (k ParticleKind) String() string {
	switch k {
	case HeaderParticle:
		return "header"
	case AssignmentParticle:
		return "assignment"
	default:
		return "unknown"
	}
}

// Particle is one classified, comment-free line.
type Particle struct {
	Kind ParticleKind
	Line int
	Text string

	// Header is the trimmed text between the brackets of a header.
	Header string
	// Key and Value are the trimmed halves of an assignment.
	Key   string
	Value string
}

type particleMatcher struct {
	kind  ParticleKind
	match func(text string) (Particle, bool)
}

// particleMatchers are tried in order; the first match wins.
var particleMatchers = []particleMatcher{
	{HeaderParticle, matchHeader},
	{AssignmentParticle, matchAssignment},
}

func matchHeader(text string) (Particle, bool) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return Particle{}, false
	}
	return Particle{Header: strings.TrimSpace(text[1 : len(text)-1])}, true
}

func matchAssignment(text string) (Particle, bool) {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return Particle{}, false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Particle{}, false
	}
	return Particle{Key: key, Value: strings.TrimSpace(value)}, true
}

// Classify matches a stripped, comment-free line against the known particle
// shapes. line is the 1-based source line used in errors.
func Classify(text string, line int) (Particle, error) {
	for _, m := range particleMatchers {
		if p, ok := m.match(text); ok {
			p.Kind, p.Line, p.Text = m.kind, line, text
			return p, nil
		}
	}
	return Particle{}, &ParticleError{Line: line, Text: text, Err: ErrParticleNotFound}
}

// StripComment removes everything from the first unescaped '#' and trims
// surrounding whitespace. "\#" yields a literal '#'.
func StripComment(line string) string {
	if !strings.Contains(line, "#") {
		return strings.TrimSpace(line)
	}
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}
		if c == '#' {
			break
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}
