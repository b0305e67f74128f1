// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	maxSuggestions   = 3
	suggestionCutoff = 0.6
)

// closeMatches returns up to maxSuggestions candidates whose similarity
// ratio to word is at least suggestionCutoff, best first.
func closeMatches(word string, candidates []string) []string {
	type scored struct {
		score float64
		word  string
	}
	a := strings.Split(word, "")
	var hits []scored
	for _, c := range candidates {
		m := difflib.NewMatcher(a, strings.Split(c, ""))
		if m.RealQuickRatio() < suggestionCutoff || m.QuickRatio() < suggestionCutoff {
			continue
		}
		if r := m.Ratio(); r >= suggestionCutoff {
			hits = append(hits, scored{r, c})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].word > hits[j].word
	})
	if len(hits) > maxSuggestions {
		hits = hits[:maxSuggestions]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.word
	}
	return out
}
