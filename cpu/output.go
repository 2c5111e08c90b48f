package cpu

import (
	"encoding/hex"
	"strings"
)

// Output is the output buffer state.
type Output struct {
	Buffering bool    // Buffer output bytes instead of sending them.
	Buffer    []uint8 // Buffered output bytes.
}

func token(data []uint8) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

func send(ch Channel, data []uint8) (err error) {
	if ch == nil {
		return
	}

	return ch.Send(token(data))
}

// Emit buffers a byte, or sends it to the channel as a hex token when
// buffering is disabled.
func (out *Output) Emit(ch Channel, value uint8) (err error) {
	if out.Buffering {
		out.Buffer = append(out.Buffer, value)
		return
	}

	return send(ch, []uint8{value})
}

// SetBuffering enables or disables buffering. Disabling flushes the buffer
// to the channel as a single token; an empty buffer sends nothing.
func (out *Output) SetBuffering(ch Channel, enabled bool) (err error) {
	out.Buffering = enabled
	if enabled {
		return
	}

	if len(out.Buffer) != 0 {
		err = send(ch, out.Buffer)
	}
	out.Erase()

	return
}

// Erase discards the buffer contents.
func (out *Output) Erase() {
	out.Buffer = out.Buffer[:0]
}
