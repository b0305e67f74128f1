// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package resolver splits raw duration strings into number and unit tokens.
package resolver

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/davetashner/tense/internal/units"
)

// Resolver turns a raw string into alternating number and word tokens.
// The Tense supplies aliases to resolvers that need them.
type Resolver func(raw string, t *units.Tense) []string

var digits = regexp.MustCompile(`\d+`)

// Basic removes spaces and splits around runs of digits, keeping the
// digits as their own tokens. It ignores t.
//
//	Basic("1d1min 2 seconds", t) == []string{"1", "d", "1", "min", "2", "seconds"}
func Basic(raw string, _ *units.Tense) []string {
	s := strings.ReplaceAll(raw, " ", "")
	var parts []string
	last := 0
	for _, loc := range digits.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			parts = append(parts, s[last:loc[0]])
		}
		parts = append(parts, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		parts = append(parts, s[last:])
	}
	return parts
}

// Smart extends Basic for prose such as "1year and 10 minutes + 5 seconds".
// Word tokens lose any non-letter characters, are lower-cased, and are
// replaced by the first alias of t they contain. Words that contain no
// alias are dropped. Single-letter aliases only match single-letter words.
func Smart(raw string, t *units.Tense) []string {
	parts := Basic(raw, t)
	if hasPunctuation(parts) {
		for i, p := range parts {
			if !IsNumber(p) {
				parts[i] = strings.Map(keepLetters, p)
			}
		}
	}

	aliases := t.Aliases()
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if IsNumber(p) {
			out = append(out, p)
			continue
		}
		word := strings.ToLower(p)
		for _, alias := range aliases {
			if !strings.Contains(word, alias) {
				continue
			}
			if len([]rune(alias)) == 1 && len([]rune(word)) > 1 {
				continue
			}
			out = append(out, alias)
			break
		}
	}
	return out
}

// IsNumber reports whether s is a non-empty run of ASCII digits.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasPunctuation(parts []string) bool {
	for _, p := range parts {
		if IsNumber(p) {
			continue
		}
		for _, r := range p {
			if !unicode.IsLetter(r) {
				return true
			}
		}
	}
	return false
}

func keepLetters(r rune) rune {
	if unicode.IsLetter(r) {
		return r
	}
	return -1
}
