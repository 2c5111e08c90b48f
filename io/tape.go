package io

import (
	"io"
)

// Tape writes output tokens to an io.Writer, separating each token with
// Separator (a single space when empty).
type Tape struct {
	Output    io.Writer
	Separator string

	written int
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; only the separator state is reset.
func (tc *Tape) Rewind() {
	tc.written = 0
}

// Written returns the number of tokens written since the last rewind.
func (tc *Tape) Written() int {
	return tc.written
}

// Send writes a token, preceded by the separator if it is not the first.
func (tc *Tape) Send(token string) (err error) {
	if tc.Output == nil {
		return
	}

	if tc.written > 0 {
		sep := tc.Separator
		if len(sep) == 0 {
			sep = " "
		}
		_, err = io.WriteString(tc.Output, sep)
		if err != nil {
			return
		}
	}

	_, err = io.WriteString(tc.Output, token)
	if err != nil {
		return
	}

	tc.written++

	return
}

// Close terminates the output with a newline if any tokens were written.
func (tc *Tape) Close() (err error) {
	if tc.Output == nil || tc.written == 0 {
		return
	}

	_, err = io.WriteString(tc.Output, "\n")

	return
}
