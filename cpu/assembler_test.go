package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nibble/programs"
)

func assemble(t *testing.T, program ...string) (prog *Program, err error) {
	t.Helper()

	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%#v", PROGRAM_SIZE), asm.Equate["PROGRAM_SIZE"])
	assert.Equal(fmt.Sprintf("%#v", BANK_SIZE), asm.Equate["BANK_SIZE"])
	assert.Equal(fmt.Sprintf("%#v", BANK_COUNT), asm.Equate["BANK_COUNT"])
	assert.Equal(fmt.Sprintf("%#v", MEMORY_SIZE), asm.Equate["MEMORY_SIZE"])
}

func TestAssembler_Instructions(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		bytes []uint8
	}){
		{"add", []uint8{0x00}},
		{"add.nf", []uint8{0x01}},
		{"sub", []uint8{0x02}},
		{"sub.nf", []uint8{0x03}},
		{"xor", []uint8{0x10}},
		{"and", []uint8{0x11}},
		{"or", []uint8{0x12}},
		{"not a", []uint8{0x1A}},
		{"not c", []uint8{0x1C}},
		{"swap a b", []uint8{0x20}},
		{"swap b a", []uint8{0x20}},
		{"swap c b", []uint8{0x21}},
		{"swap a c", []uint8{0x22}},
		{"bank 0xf", []uint8{0x3F}},
		{"load a 1", []uint8{0x41}},
		{"load c 15", []uint8{0x6F}},
		{"store b 2", []uint8{0x82}},
		{"store c 0", []uint8{0x90}},
		{"jump +3", []uint8{0xA3}},
		{"jump -0", []uint8{0xB0}},
		{"nop", []uint8{0xA0}},
		{"spin", []uint8{0xB0}},
		{"skip add_overflow", []uint8{0xC0}},
		{"skip not c==0", []uint8{0xCF}},
		{"skip b==c", []uint8{0xC3}},
		{"ldc a 0x12", []uint8{0xE0, 0x12}},
		{"ldc b -1", []uint8{0xE1, 0xFF}},
		{"ldc c 200", []uint8{0xE2, 0xC8}},
		{"input", []uint8{0xF0}},
		{"out", []uint8{0xF8}},
		{"out a", []uint8{0xF8}},
		{"ascii", []uint8{0xF9}},
		{"unbuffer", []uint8{0xFA}},
		{"buffer", []uint8{0xFB}},
		{"erase", []uint8{0xFC}},
		{".byte 0xD0 1 2", []uint8{0xD0, 0x01, 0x02}},
	}

	for _, entry := range table {
		prog, err := assemble(t, entry.line)
		assert.NoError(err, entry.line)
		if err != nil {
			continue
		}
		assert.Equal(entry.bytes, prog.Binary(), entry.line)
	}
}

func TestAssembler_Disassemble(t *testing.T) {
	assert := assert.New(t)

	// Every instruction's disassembly assembles back to itself.
	for opcode := range 0x100 {
		ins, err := Decode(uint8(opcode))
		if err != nil {
			continue
		}
		line := ins.String()
		if ins.Op == OP_LDC {
			line += " 0"
		}
		prog, err := assemble(t, line)
		assert.NoError(err, line)
		if err != nil {
			continue
		}
		assert.Equal(uint8(opcode), prog.Binary()[0], line)
	}
}

func TestAssembler_Listing(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"; header",
		"start:  ldc a 1 ; one",
		"",
		"        out",
	)
	assert.NoError(err)

	expected := []Opcode{
		{2, 0, []string{"ldc", "a", "1"}, []uint8{0xE0, 0x01}, ""},
		{4, 2, []string{"out"}, []uint8{0xF8}, ""},
	}
	assert.Equal(expected, prog.Opcodes)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"top:",
		"        jump over",
		"        ldc a 1",
		"over:   jump top",
		"self:   jump self",
		"        jump next",
		"next:   nop",
	)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]uint8{0xA2, 0xE0, 0x01, 0xB3, 0xB0, 0xA0, 0xA0}, prog.Binary())
	assert.Equal("over", prog.Opcodes[0].LinkLabel)
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SLOT", "3")

	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".equ LIMIT 0x20",
		".equ TOP $(LIMIT * 2 + 1)",
		"ldc a LIMIT",
		"ldc b TOP",
		"ldc c $(LINENO * 16)",
		"store a SLOT",
		"bank $(BANK_COUNT - 1)",
		"jump +SLOT",
	}, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]uint8{0xE0, 0x20, 0xE1, 0x41, 0xE2, 0x50, 0x73, 0x3F, 0xA3}, prog.Binary())
	assert.Equal("0x20", asm.Equate["LIMIT"])
	assert.Equal("65", asm.Equate["TOP"])
}

func TestAssembler_Fibonacci(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(programs.FibonacciAsm))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(ParseHexString(programs.FibonacciHex), prog.Binary())
	assert.Equal(5, asm.Label["loop"])
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		lineno  int
		err     error
	}){
		{[]string{"bogus"}, 1, ErrInstructionInvalid},
		{[]string{"add", "add a"}, 2, ErrOpcodeExtraArgs},
		{[]string{"not"}, 1, ErrOpcodeValueMissing},
		{[]string{"not d"}, 1, ErrRegisterInvalid},
		{[]string{"out b"}, 1, ErrInstructionInvalid},
		{[]string{"swap a a"}, 1, ErrInstructionInvalid},
		{[]string{"bank 16"}, 1, ErrOperandRange},
		{[]string{"load a -1"}, 1, ErrOperandRange},
		{[]string{"jump +16"}, 1, ErrOperandRange},
		{[]string{"ldc a 256"}, 1, ErrOperandRange},
		{[]string{"ldc a -129"}, 1, ErrOperandRange},
		{[]string{"skip a==d"}, 1, ErrConditionInvalid},
		{[]string{".byte"}, 1, ErrOpcodeValueMissing},
		{[]string{".equ X"}, 1, ErrEquateSyntax},
		{[]string{".equ X 1", ".equ X 2"}, 2, ErrEquateDuplicate},
		{[]string{"a:", "a: nop"}, 2, ErrLabelDuplicate},
	}

	for _, entry := range table {
		_, err := assemble(t, entry.program...)
		assert.ErrorIs(err, entry.err, "%v", entry.program)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), "%v", entry.program) {
			assert.Equal(entry.lineno, syntax.LineNo, "%v", entry.program)
		}
	}
}

func TestAssembler_ParseErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t, "ldc a twelve")
	var number ErrParseNumber
	assert.True(errors.As(err, &number))
	assert.Equal(ErrParseNumber("twelve"), number)

	_, err = assemble(t, "ldc a $(\"text\")")
	var expr ErrParseExpression
	assert.True(errors.As(err, &expr))

	_, err = assemble(t, "ldc a $(1 +)")
	assert.Error(err)
}

func TestAssembler_LinkErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t, "nop", "jump nowhere")
	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal(ErrLabelMissing("nowhere"), missing)

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(2, syntax.LineNo)
	assert.Equal("jump nowhere", syntax.Line)

	far := []string{"jump far"}
	for range 16 {
		far = append(far, "nop")
	}
	far = append(far, "far: nop")
	_, err = assemble(t, far...)
	assert.ErrorIs(err, ErrOperandRange)

	_, err = assemble(t, far[:len(far)-1]...)
	assert.ErrorIs(err, ErrLabelMissing("far"))
}
