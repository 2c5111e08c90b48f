// Package io provides output channel implementations for the nibble CPU.
// Channels receive hexadecimal text tokens: either a stream written to an
// io.Writer (Tape) or an in-memory record (Temporary).
package io

// Channel defines the interface for all output channels of the nibble
// system. Channels operate at the token level; each token is the uppercase
// hexadecimal text of one or more output bytes.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single token to the channel.
	Send(token string) error
}
