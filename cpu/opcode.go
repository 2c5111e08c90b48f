package cpu

import (
	"fmt"
)

// Op is the operation performed by a decoded instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD      = Op(0)  // add
	OP_SUB      = Op(1)  // sub
	OP_XOR      = Op(2)  // xor
	OP_AND      = Op(3)  // and
	OP_OR       = Op(4)  // or
	OP_NOT      = Op(5)  // not
	OP_SWAP     = Op(6)  // swap
	OP_BANK     = Op(7)  // bank
	OP_LOAD     = Op(8)  // load
	OP_STORE    = Op(9)  // store
	OP_JUMP     = Op(10) // jump
	OP_SKIP     = Op(11) // skip
	OP_LDC      = Op(12) // ldc
	OP_INPUT    = Op(13) // input
	OP_OUTPUT   = Op(14) // out
	OP_ASCII    = Op(15) // ascii
	OP_UNBUFFER = Op(16) // unbuffer
	OP_BUFFER   = Op(17) // buffer
	OP_ERASE    = Op(18) // erase
)

// Cond is a skip-branch predicate.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_ADD_OVERFLOW = Cond(0) // add_overflow
	COND_SUB_OVERFLOW = Cond(1) // sub_overflow
	COND_A_EQ_B       = Cond(2) // a==b
	COND_B_EQ_C       = Cond(3) // b==c
	COND_C_EQ_A       = Cond(4) // c==a
	COND_A_ZERO       = Cond(5) // a==0
	COND_B_ZERO       = Cond(6) // b==0
	COND_C_ZERO       = Cond(7) // c==0
)

const (
	NOP         = uint8(0xA0) // Zero distance forward jump.
	SPIN        = uint8(0xB0) // Zero distance backward jump.
	COND_INVERT = uint8(0x08) // Skip-branch invert bit.
	COND_MASK   = uint8(0x07) // Skip-branch predicate bits.
)

// Instruction is a decoded opcode.
type Instruction struct {
	Opcode uint8    // Raw opcode byte.
	Op     Op       // Operation.
	Reg    Register // Register operand.
	Reg2   Register // Second register operand, for swap.
	Nibble uint8    // Bank, address, distance, or condition operand.
	Flags  bool     // Update flags, for add and sub.
	Back   bool     // Backward direction, for jump.
}

// family is an opcode group sharing a high nibble; the low nibble is the operand.
type family struct {
	Op   Op
	Reg  Register
	Back bool
}

var familyTable = map[uint8]family{
	0x3: {Op: OP_BANK},
	0x4: {Op: OP_LOAD, Reg: REG_A},
	0x5: {Op: OP_LOAD, Reg: REG_B},
	0x6: {Op: OP_LOAD, Reg: REG_C},
	0x7: {Op: OP_STORE, Reg: REG_A},
	0x8: {Op: OP_STORE, Reg: REG_B},
	0x9: {Op: OP_STORE, Reg: REG_C},
	0xA: {Op: OP_JUMP},
	0xB: {Op: OP_JUMP, Back: true},
	0xC: {Op: OP_SKIP},
}

var exactTable = map[uint8]Instruction{
	0x00: {Op: OP_ADD, Flags: true},
	0x01: {Op: OP_ADD},
	0x02: {Op: OP_SUB, Flags: true},
	0x03: {Op: OP_SUB},

	0x10: {Op: OP_XOR},
	0x11: {Op: OP_AND},
	0x12: {Op: OP_OR},
	0x1A: {Op: OP_NOT, Reg: REG_A},
	0x1B: {Op: OP_NOT, Reg: REG_B},
	0x1C: {Op: OP_NOT, Reg: REG_C},

	0x20: {Op: OP_SWAP, Reg: REG_A, Reg2: REG_B},
	0x21: {Op: OP_SWAP, Reg: REG_B, Reg2: REG_C},
	0x22: {Op: OP_SWAP, Reg: REG_C, Reg2: REG_A},

	0xE0: {Op: OP_LDC, Reg: REG_A},
	0xE1: {Op: OP_LDC, Reg: REG_B},
	0xE2: {Op: OP_LDC, Reg: REG_C},

	0xF0: {Op: OP_INPUT, Reg: REG_A},
	0xF8: {Op: OP_OUTPUT, Reg: REG_A},
	0xF9: {Op: OP_ASCII},
	0xFA: {Op: OP_UNBUFFER},
	0xFB: {Op: OP_BUFFER},
	0xFC: {Op: OP_ERASE},
}

// Decode looks up the instruction for an opcode byte.
func Decode(opcode uint8) (ins Instruction, err error) {
	fam, ok := familyTable[opcode>>4]
	if ok {
		ins = Instruction{
			Opcode: opcode,
			Op:     fam.Op,
			Reg:    fam.Reg,
			Nibble: opcode & 0xf,
			Back:   fam.Back,
		}
		return
	}

	ins, ok = exactTable[opcode]
	if !ok {
		err = ErrInvalidOpcode
		return
	}
	ins.Opcode = opcode

	return
}

// Encode finds the opcode byte for an instruction. The Opcode field is ignored.
func (ins Instruction) Encode() (opcode uint8, err error) {
	for high, fam := range familyTable {
		if fam.Op != ins.Op || fam.Reg != ins.Reg || fam.Back != ins.Back {
			continue
		}
		if ins.Nibble > 0xf {
			err = ErrOperandRange
			return
		}
		opcode = high<<4 | ins.Nibble
		return
	}

	key := ins
	key.Opcode = 0
	for code, exact := range exactTable {
		if exact == key {
			opcode = code
			return
		}
	}

	err = ErrInstructionInvalid
	return
}

// Cond returns the skip-branch predicate.
func (ins Instruction) Cond() Cond {
	return Cond(ins.Nibble & COND_MASK)
}

// Invert returns true if the skip-branch predicate is inverted.
func (ins Instruction) Invert() bool {
	return ins.Nibble&COND_INVERT != 0
}

// Immediates returns the number of operand bytes following the opcode.
func (ins Instruction) Immediates() int {
	if ins.Op == OP_LDC {
		return 1
	}
	return 0
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() (out string) {
	op := ins.Op.String()

	switch ins.Op {
	case OP_ADD, OP_SUB:
		out = op
		if !ins.Flags {
			out += ".nf"
		}
	case OP_NOT, OP_LDC, OP_INPUT, OP_OUTPUT:
		out = fmt.Sprintf("%v %v", op, ins.Reg)
	case OP_SWAP:
		out = fmt.Sprintf("%v %v %v", op, ins.Reg, ins.Reg2)
	case OP_BANK:
		out = fmt.Sprintf("%v %d", op, ins.Nibble)
	case OP_LOAD, OP_STORE:
		out = fmt.Sprintf("%v %v %d", op, ins.Reg, ins.Nibble)
	case OP_JUMP:
		sign := "+"
		if ins.Back {
			sign = "-"
		}
		out = fmt.Sprintf("%v %v%d", op, sign, ins.Nibble)
	case OP_SKIP:
		if ins.Invert() {
			out = fmt.Sprintf("%v not %v", op, ins.Cond())
		} else {
			out = fmt.Sprintf("%v %v", op, ins.Cond())
		}
	default:
		out = op
	}

	return
}
