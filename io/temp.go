package io

import (
	"iter"
	"slices"
)

// Temporary records output tokens in memory, up to Capacity tokens.
// A zero Capacity is unlimited.
type Temporary struct {
	Capacity int

	Tokens []string
}

var _ Channel = (*Temporary)(nil)

// Rewind discards all recorded tokens. Slices of earlier tokens are
// left intact.
func (temp *Temporary) Rewind() {
	temp.Tokens = nil
}

// Receive returns an iterator that yields the recorded tokens in order.
func (temp *Temporary) Receive() iter.Seq[string] {
	return slices.Values(temp.Tokens)
}

// Send records a token.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(token string) (err error) {
	if temp.Capacity > 0 && len(temp.Tokens) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Tokens = append(temp.Tokens, token)

	return
}
