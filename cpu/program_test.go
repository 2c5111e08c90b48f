package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		text  string
		image []uint8
	}){
		{"empty", "", nil},
		{"single", "A0", []uint8{0xA0}},
		{"spaced", "00 01\n02\t03", []uint8{0x00, 0x01, 0x02, 0x03}},
		{"comments", "add a to b\n00\nmove c to b\n21", []uint8{0x00, 0x21}},
		{"lowercase ignored", "a0 fb FB", []uint8{0xFB}},
		{"punctuation delimits", "E0,01;F8.", []uint8{0xE0, 0x01, 0xF8}},
		{"word delimiter rejected", "A0A0 A0_ A0x", []uint8{0xA0}},
		{"three digits", "ABC ", []uint8{0xBC}},
		{"capital comment", "See README: 00", []uint8{0x00}},
	}

	for _, entry := range table {
		assert.Equal(entry.image, ParseHexString(entry.text), entry.name)
	}
}

func TestParseHex(t *testing.T) {
	assert := assert.New(t)

	image, err := ParseHex(strings.NewReader("FB\nE0 00 ; comment\n"))
	assert.NoError(err)
	assert.Equal([]uint8{0xFB, 0xE0, 0x00}, image)
}

var errRead = errors.New("read failed")

type failReader struct{}

func (failReader) Read(p []byte) (int, error) {
	return 0, errRead
}

func TestParseHex_Error(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseHex(failReader{})
	assert.ErrorIs(err, errRead)
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Words: []string{"ldc", "a", "0x10"}, Bytes: []uint8{0xE0, 0x10}},
			{LineNo: 2, Addr: 2, Words: []string{"add"}, Bytes: []uint8{0x00}},
			{LineNo: 4, Addr: 3, Words: []string{"out"}, Bytes: []uint8{0xF8}},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(1)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(2)
	assert.Equal(2, dbg.LineNo)

	dbg = prog.Debug(3)
	assert.Equal(4, dbg.LineNo)

	dbg = prog.Debug(4)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Bytes: []uint8{0xE0, 0x10}},
			{LineNo: 2, Addr: 4, Bytes: []uint8{0x00}},
		},
	}

	assert.Equal([]uint8{0xE0, 0x10, NOP, NOP, 0x00}, prog.Binary())

	var addrs []int
	for addr := range prog.Codes() {
		addrs = append(addrs, addr)
	}
	assert.Equal([]int{0, 1, 4}, addrs)

	assert.Nil((&Program{}).Binary())
}
