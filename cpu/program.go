// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"encoding/hex"
	"io"
	"iter"
	"regexp"
)

// Opcode represents a line of assembled code with its source location and
// generated bytes.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Bytes     []uint8
	LinkLabel string
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the listing entry that generated the byte at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  addr - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the program image. Gaps between listing entries are
// filled with NOP.
func (prog *Program) Binary() (image []uint8) {
	for addr, code := range prog.Codes() {
		for len(image) < addr {
			image = append(image, NOP)
		}
		image = append(image[:addr], code)
	}

	return
}

// Codes iterates over the address and value of every generated byte.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, code uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Bytes {
				if !yield(op.Addr+n, code) {
					return
				}
			}
		}
	}
}

// hexToken is two uppercase hex digits followed by a non-word delimiter.
var hexToken = regexp.MustCompile(`[0-9A-F]{2}\W`)

// ParseHexString decodes the program bytes of a hex-annotated source text.
// Every two uppercase hex digits followed by a non-word character is one
// byte; all other text is commentary.
func ParseHexString(text string) (image []uint8) {
	// Trailing delimiter, so a final token at end of text is counted.
	text += "   "

	for _, tok := range hexToken.FindAllString(text, -1) {
		var value [1]uint8
		// hexToken only matches valid digit pairs.
		_, _ = hex.Decode(value[:], []byte(tok[:2]))
		image = append(image, value[0])
	}

	return
}

// ParseHex decodes the program bytes of a hex-annotated source stream.
func ParseHex(input io.Reader) (image []uint8, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	image = ParseHexString(string(text))

	return
}
