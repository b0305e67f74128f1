// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import "fmt"

// Exit codes for tense CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid arguments, flags or key paths.
	ExitConfig      = 2 // A tense file failed to load, compile or validate.
	ExitEval        = 3 // Parsing or evaluating the input failed.
)

// exitCodeError carries the process exit code for an error.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitConfig:
			msg = "tense: configuration error"
		case ExitEval:
			msg = "tense: evaluation failed"
		default:
			msg = "tense: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
