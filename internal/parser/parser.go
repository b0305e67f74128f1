// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package parser converts human duration strings such as "1d2minutes 5 sec"
// into seconds or a time.Duration using a units.Tense.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/davetashner/tense/internal/resolver"
	"github.com/davetashner/tense/internal/units"
)

// ErrOverflow is returned when a total does not fit the result type.
var ErrOverflow = errors.New("duration overflows")

// Option configures a Parser.
type Option func(*options)

type options struct {
	resolve resolver.Resolver
}

// WithResolver replaces the default resolver.Basic.
func WithResolver(r resolver.Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolve = r
		}
	}
}

// Parser sums the durations named in a string and converts the total
// number of seconds to T.
type Parser[T any] struct {
	tense   *units.Tense
	resolve resolver.Resolver
	convert func(seconds int64) (T, error)
}

// New returns a parser over t that converts totals with convert.
func New[T any](t *units.Tense, convert func(seconds int64) (T, error), opts ...Option) *Parser[T] {
	o := options{resolve: resolver.Basic}
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser[T]{tense: t, resolve: o.resolve, convert: convert}
}

// NewDigit returns a parser that yields total seconds.
func NewDigit(t *units.Tense, opts ...Option) *Parser[int64] {
	return New(t, func(seconds int64) (int64, error) { return seconds, nil }, opts...)
}

// NewTimedelta returns a parser that yields a time.Duration.
func NewTimedelta(t *units.Tense, opts ...Option) *Parser[time.Duration] {
	return New(t, ToDuration, opts...)
}

// Parse resolves raw into tokens and converts the summed seconds.
func (p *Parser[T]) Parse(raw string) (T, error) {
	seconds, err := p.Seconds(raw)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.convert(seconds)
}

// Seconds returns the total number of seconds named in raw. A unit word
// counts only when the token before it is a number; other words are
// ignored. A word matching several units counts once per unit.
func (p *Parser[T]) Seconds(raw string) (int64, error) {
	tokens := p.resolve(raw, p.tense)
	var total int64
	for i, word := range tokens {
		if i == 0 || resolver.IsNumber(word) || !resolver.IsNumber(tokens[i-1]) {
			continue
		}
		count, err := strconv.ParseInt(tokens[i-1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: count %s", ErrOverflow, tokens[i-1])
		}
		for _, u := range p.tense.Lookup(word) {
			step, ok := mulInt64(u.Duration, p.tense.Multiplier)
			if ok {
				step, ok = mulInt64(count, step)
			}
			if ok {
				total, ok = addInt64(total, step)
			}
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrOverflow, raw)
			}
		}
	}
	return total, nil
}

// ToDuration converts seconds to a time.Duration.
func ToDuration(seconds int64) (time.Duration, error) {
	const limit = math.MaxInt64 / int64(time.Second)
	if seconds > limit || seconds < -limit {
		return 0, fmt.Errorf("%w: %d seconds", ErrOverflow, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// FormatDuration renders d with week and day units, for example "1w2d3h".
func FormatDuration(d time.Duration) string {
	return str2duration.String(d)
}

func addInt64(a, b int64) (int64, bool) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return r, true
}
