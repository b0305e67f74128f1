// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/davetashner/tense/internal/config"
)

func init() {
	RegisterFormatter(&TenseFormatter{})
}

// ErrUnrepresentable is returned for values tense-file syntax cannot express.
var ErrUnrepresentable = errors.New("value cannot be written as tense source")

// TenseFormatter writes a mapping back as tense-file source. Compiling the
// output yields the same mapping. Virtual units are written as [virtual]
// blocks after all other sections.
type TenseFormatter struct {
	// Header is written as comment lines at the top of the file.
	Header string
}

var _ Formatter = (*TenseFormatter)(nil)

// Name returns the format name.
func (f *TenseFormatter) Name() string { return "tense" }

// Format writes m to w.
func (f *TenseFormatter) Format(m *config.Mapping, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if f.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(f.Header, "\n"), "\n") {
			fmt.Fprintf(bw, "# %s\n", line)
		}
		bw.WriteString("\n")
	}

	var virtual []config.Section
	first := true
	var err error
	m.Each(func(key string, s config.Section) bool {
		if !first {
			bw.WriteString("\n")
		}
		first = false
		fmt.Fprintf(bw, "[%s]\n", key)
		attrs := s
		if key == config.TenseSection {
			virtual = s.Virtual()
			attrs = s.Clone()
			if v, ok := attrs[config.VirtualKey].([]config.Section); ok {
				if len(v) > 0 {
					delete(attrs, config.VirtualKey)
				} else {
					attrs[config.VirtualKey] = []string{}
				}
			}
		}
		if err = writeAttrs(bw, key, attrs); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	for i, spec := range virtual {
		if !first {
			bw.WriteString("\n")
		}
		first = false
		bw.WriteString("[virtual]\n")
		if err := writeAttrs(bw, fmt.Sprintf("virtual[%d]", i), spec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeAttrs writes duration, multiplier and aliases first, then any other
// attribute in name order.
func writeAttrs(w io.Writer, section string, s config.Section) error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	rank := map[string]int{config.MultiplierKey: 0, config.DurationKey: 1, config.AliasesKey: 2}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		text, err := formatTenseValue(s[k])
		if err != nil {
			return fmt.Errorf("%s.%s: %w", section, k, err)
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", k, text); err != nil {
			return err
		}
	}
	return nil
}

func formatTenseValue(v any) (string, error) {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return formatInt(t), nil
	case int:
		return formatInt(int64(t)), nil
	case []string:
		return formatList(t)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnrepresentable, v)
	}
}

func formatInt(n int64) string {
	switch {
	case n >= 0:
		return strconv.FormatInt(n, 10)
	case n == math.MinInt64:
		return "exp(-9223372036854775807 - 1)"
	default:
		return "exp(" + strconv.FormatInt(n, 10) + ")"
	}
}

func formatList(items []string) (string, error) {
	if len(items) == 0 {
		return ",", nil
	}
	escaped := make([]string, len(items))
	for i, item := range items {
		if item == "" || item != strings.TrimSpace(item) || strings.ContainsAny(item, ",\n\r") {
			return "", fmt.Errorf("%w: list item %q", ErrUnrepresentable, item)
		}
		escaped[i] = strings.ReplaceAll(item, "#", `\#`)
	}
	if len(items) == 1 {
		return escaped[0] + ",", nil
	}
	return strings.Join(escaped, ", "), nil
}
