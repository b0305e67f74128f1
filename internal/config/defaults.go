// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

// Default returns the built-in unit configuration. Every call returns a
// fresh mapping that the caller owns.
func Default() *Mapping {
	m := NewMapping()
	m.Set(TenseSection, Section{
		MultiplierKey: int64(1),
		VirtualKey:    []Section{},
	})
	m.Set("units.Second", Section{
		DurationKey: int64(1),
		AliasesKey:  []string{"s", "sec", "secs", "second", "seconds"},
	})
	m.Set("units.Minute", Section{
		DurationKey: int64(60),
		AliasesKey:  []string{"m", "min", "mins", "minute", "minutes"},
	})
	m.Set("units.Hour", Section{
		DurationKey: int64(3600),
		AliasesKey:  []string{"h", "hour", "hours"},
	})
	m.Set("units.Day", Section{
		DurationKey: int64(86400),
		AliasesKey:  []string{"d", "day", "days"},
	})
	m.Set("units.Week", Section{
		DurationKey: int64(604800),
		AliasesKey:  []string{"w", "week", "weeks"},
	})
	m.Set("units.Year", Section{
		DurationKey: int64(31536000),
		AliasesKey:  []string{"y", "year", "years"},
	})
	return m
}
