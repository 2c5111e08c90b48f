// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"PROGRAM_SIZE": fmt.Sprintf("%#v", PROGRAM_SIZE),
	"MEMORY_SIZE":  fmt.Sprintf("%#v", MEMORY_SIZE),
	"BANK_SIZE":    fmt.Sprintf("%#v", BANK_SIZE),
	"BANK_COUNT":   fmt.Sprintf("%#v", BANK_COUNT),
}

// Assembler is a single pass assembler for the nibble system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to program addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names.
var regMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
}

// condMap is a map of skip-branch predicate names.
var condMap = func() map[string]Cond {
	conds := map[string]Cond{}
	for cond := COND_ADD_OVERFLOW; cond <= COND_C_ZERO; cond++ {
		conds[cond.String()] = cond
	}
	return conds
}()

// simpleMap maps mnemonics that take no operands.
var simpleMap = map[string]Instruction{
	"add":      {Op: OP_ADD, Flags: true},
	"add.nf":   {Op: OP_ADD},
	"sub":      {Op: OP_SUB, Flags: true},
	"sub.nf":   {Op: OP_SUB},
	"xor":      {Op: OP_XOR},
	"and":      {Op: OP_AND},
	"or":       {Op: OP_OR},
	"ascii":    {Op: OP_ASCII},
	"unbuffer": {Op: OP_UNBUFFER},
	"buffer":   {Op: OP_BUFFER},
	"erase":    {Op: OP_ERASE},
	"nop":      {Op: OP_JUMP},
	"spin":     {Op: OP_JUMP, Back: true},
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// byteOf returns the 8-bit encoding of a word. Negative values are
// encoded as two's complement.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v < -0x80 || v > 0xff {
		err = ErrOperandRange
		return
	}

	value = uint8(v & 0xff)

	return
}

// nibbleOf returns the 4-bit operand value of a word.
func (asm *Assembler) nibbleOf(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v < 0 || v > 0xf {
		err = ErrOperandRange
		return
	}

	value = uint8(v)

	return
}

// regOf returns the register named by a word.
func regOf(word string) (reg Register, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, _err := strconv.ParseInt(str, 0, 32)
		if _err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a single line into words, processing equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddr()
		words = words[1:]
	}

	return
}

// currentAddr gets the address of the next generated byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + len(last.Bytes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}

		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		err = asm.link(op)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// link resolves the jump label of an opcode into a relative distance.
func (asm *Assembler) link(op *Opcode) (err error) {
	target, ok := asm.Label[op.LinkLabel]
	if !ok {
		err = ErrLabelMissing(op.LinkLabel)
		return
	}

	next := op.Addr + len(op.Bytes)

	ins := Instruction{Op: OP_JUMP}
	distance := target - next
	if distance < 0 {
		ins.Back = true
		distance = -distance - 1
	}
	if distance > 0xf {
		err = ErrOperandRange
		return
	}
	ins.Nibble = uint8(distance)

	op.Bytes[0], err = ins.Encode()

	return
}

// checkArgs verifies the operand count of an instruction.
func checkArgs(args []string, count int) (err error) {
	switch {
	case len(args) < count:
		err = ErrOpcodeValueMissing
	case len(args) > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Bytes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	// Substitute equates
	words = slices.Clone(words)
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	args := words[1:]

	// Alternate syntax substitutions
	switch {
	case len(args) == 0 && (words[0] == "out" || words[0] == "input"):
		// out => out a
		args = []string{"a"}
	case len(args) == 2 && words[0] == "skip" && args[0] == "not":
		// skip not COND => skip.not COND
		words[0] = "skip.not"
		args = args[1:]
	}

	var ins Instruction
	var imms []uint8

	simple, ok := simpleMap[words[0]]
	if ok {
		err = checkArgs(args, 0)
		if err != nil {
			return
		}
		ins = simple
	} else {
		switch words[0] {
		case ".byte":
			if len(args) == 0 {
				err = ErrOpcodeValueMissing
				return
			}
			var raw []uint8
			for _, arg := range args {
				var value uint8
				value, err = asm.byteOf(arg)
				if err != nil {
					return
				}
				raw = append(raw, value)
			}
			codes = raw
			return
		case "not", "input", "out":
			err = checkArgs(args, 1)
			if err != nil {
				return
			}
			ins.Op = map[string]Op{"not": OP_NOT, "input": OP_INPUT, "out": OP_OUTPUT}[words[0]]
			ins.Reg, err = regOf(args[0])
			if err != nil {
				return
			}
		case "swap":
			err = checkArgs(args, 2)
			if err != nil {
				return
			}
			ins.Op = OP_SWAP
			ins.Reg, err = regOf(args[0])
			if err != nil {
				return
			}
			ins.Reg2, err = regOf(args[1])
			if err != nil {
				return
			}
			// swap is symmetric; only one ordering is encoded.
			if _, _err := ins.Encode(); _err != nil {
				ins.Reg, ins.Reg2 = ins.Reg2, ins.Reg
			}
		case "bank":
			err = checkArgs(args, 1)
			if err != nil {
				return
			}
			ins.Op = OP_BANK
			ins.Nibble, err = asm.nibbleOf(args[0])
			if err != nil {
				return
			}
		case "load", "store":
			err = checkArgs(args, 2)
			if err != nil {
				return
			}
			ins.Op = OP_LOAD
			if words[0] == "store" {
				ins.Op = OP_STORE
			}
			ins.Reg, err = regOf(args[0])
			if err != nil {
				return
			}
			ins.Nibble, err = asm.nibbleOf(args[1])
			if err != nil {
				return
			}
		case "jump":
			err = checkArgs(args, 1)
			if err != nil {
				return
			}
			ins.Op = OP_JUMP
			arg := args[0]
			switch arg[0] {
			case '+', '-':
				ins.Back = arg[0] == '-'
				ins.Nibble, err = asm.nibbleOf(arg[1:])
				if err != nil {
					return
				}
			default:
				// Resolved when linking.
				label = arg
			}
		case "skip", "skip.not":
			err = checkArgs(args, 1)
			if err != nil {
				return
			}
			cond, ok := condMap[args[0]]
			if !ok {
				err = ErrConditionInvalid
				return
			}
			ins.Op = OP_SKIP
			ins.Nibble = uint8(cond)
			if words[0] == "skip.not" {
				ins.Nibble |= COND_INVERT
			}
		case "ldc":
			err = checkArgs(args, 2)
			if err != nil {
				return
			}
			ins.Op = OP_LDC
			ins.Reg, err = regOf(args[0])
			if err != nil {
				return
			}
			var value uint8
			value, err = asm.byteOf(args[1])
			if err != nil {
				return
			}
			imms = []uint8{value}
		default:
			err = ErrInstructionInvalid
			return
		}
	}

	opcode, err := ins.Encode()
	if err != nil {
		return
	}

	codes = append([]uint8{opcode}, imms...)

	return
}
