package cmd

import (
	"fmt"
	"strings"
)

// Exit statuses
const (
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries the status a command wants the process to exit with and
// the lines to print on stderr.
type exitError struct {
	code  int
	lines []string
	err   error
}

func (e *exitError) Error() string {
	return strings.Join(e.lines, "\n")
}

func (e *exitError) Unwrap() error {
	return e.err
}

// usageError reports a malformed invocation followed by the usage text
func usageError(msg string) *exitError {
	lines := []string{}
	if msg != "" {
		lines = append(lines, "Error: "+msg)
	}
	lines = append(lines, strings.Split(usageText, "\n")...)
	return &exitError{code: exitUsage, lines: lines}
}

// missingInputError reports paths that do not name existing files
func missingInputError() *exitError {
	return &exitError{
		code: exitFailure,
		lines: []string{
			"Error: One or both files do not exist.",
			"Please create `file_a.rs` and `file_b.rs` or provide valid paths.",
		},
	}
}

// failure reports any other error with status 1
func failure(err error) *exitError {
	return &exitError{
		code:  exitFailure,
		lines: []string{fmt.Sprintf("Error: %v", err)},
		err:   err,
	}
}
