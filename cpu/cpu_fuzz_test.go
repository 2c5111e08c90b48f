package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nibble/io"
)

func FuzzCpu(f *testing.F) {
	for opcode := range 0x100 {
		f.Add(uint8(opcode), uint8(0x00), uint8(0x00), uint8(0x00), uint8(0x00), false)
		f.Add(uint8(opcode), uint8(0xff), uint8(0x01), uint8(0x7f), uint8(0x3), true)
	}

	f.Fuzz(func(t *testing.T, opcode uint8, a, b, c, imm uint8, buffering bool) {
		assert := assert.New(t)

		temp := &io.Temporary{}
		cpu := NewCpu(temp)

		cpu.State.Pc = 0x1ab
		cpu.State.Register = [3]uint8{a, b, c}
		cpu.State.Bank = 0x5
		cpu.State.Flags = Flags(imm & 0x3)
		cpu.State.Output.Buffering = buffering
		cpu.State.Output.Buffer = []uint8{0xca, 0xfe}
		for n := range cpu.State.Memory {
			cpu.State.Memory[n] = uint8(n) ^ imm
		}
		cpu.State.Program[0x1ab] = opcode
		cpu.State.Program[0x1ac] = imm

		pre := cpu.State
		pre.Output.Buffer = append([]uint8(nil), cpu.State.Output.Buffer...)

		err := cpu.Tick()

		code_str := fmt.Sprintf("0x%02X a:%02X b:%02X c:%02X imm:%02X\ncpu:\n%v",
			opcode, a, b, c, imm, cpu.String())

		ins, decode_err := Decode(opcode)
		if decode_err != nil {
			assert.ErrorIs(err, ErrInvalidOpcode, code_str)
			var bad ErrOpcode
			assert.True(errors.As(err, &bad), code_str)
			assert.Equal(0x1ab, bad.Pc, code_str)
			return
		}

		// Values expected to be unchanged, unless the op changes them.
		want := pre
		want.Pc = 0x1ac
		want.Output.Buffer = pre.Output.Buffer
		tokens := []string{}

		switch ins.Op {
		case OP_ADD:
			sum := int(a) + int(b)
			want.Register[REG_C] = uint8(sum)
			if ins.Flags {
				want.Flags.Set(FLAG_ADD_OVERFLOW, sum > 0xff)
			}
		case OP_SUB:
			want.Register[REG_C] = a - b
			if ins.Flags {
				want.Flags.Set(FLAG_SUB_OVERFLOW, a < b)
			}
		case OP_XOR:
			want.Register[REG_C] = a ^ b
		case OP_AND:
			want.Register[REG_C] = a & b
		case OP_OR:
			want.Register[REG_C] = a | b
		case OP_NOT:
			want.Register[ins.Reg] = ^pre.Register[ins.Reg]
		case OP_SWAP:
			want.Register[ins.Reg] = pre.Register[ins.Reg2]
			want.Register[ins.Reg2] = pre.Register[ins.Reg]
		case OP_BANK:
			want.Bank = opcode & 0xf
		case OP_LOAD:
			want.Register[ins.Reg] = pre.Memory[0x50+int(opcode&0xf)]
		case OP_STORE:
			want.Memory[0x50+int(opcode&0xf)] = pre.Register[ins.Reg]
		case OP_JUMP:
			if ins.Back {
				want.Pc = 0x1ac - int(opcode&0xf) - 1
			} else {
				want.Pc = 0x1ac + int(opcode&0xf)
			}
		case OP_SKIP:
			if cpu.State.Test(ins.Cond()) != ins.Invert() {
				want.Pc++
			}
		case OP_LDC:
			want.Register[ins.Reg] = imm
			want.Pc++
		case OP_OUTPUT:
			if buffering {
				want.Output.Buffer = []uint8{0xca, 0xfe, a}
			} else {
				tokens = append(tokens, fmt.Sprintf("%02X", a))
			}
		case OP_UNBUFFER:
			want.Output.Buffering = false
			want.Output.Buffer = []uint8{}
			tokens = append(tokens, "CAFE")
		case OP_BUFFER:
			want.Output.Buffering = true
		case OP_ERASE:
			want.Output.Buffer = []uint8{}
		case OP_INPUT, OP_ASCII:
			assert.ErrorIs(err, ErrNotSupported, code_str)
			return
		}

		assert.NoError(err, code_str)
		assert.Equal(want.Register, cpu.State.Register, code_str)
		assert.Equal(want.Flags, cpu.State.Flags, code_str)
		assert.Equal(want.Bank, cpu.State.Bank, code_str)
		assert.Equal(want.Memory, cpu.State.Memory, code_str)
		assert.Equal(want.Pc, cpu.State.Pc, code_str)
		assert.Equal(want.Output.Buffering, cpu.State.Output.Buffering, code_str)
		assert.Equal(want.Output.Buffer, cpu.State.Output.Buffer, code_str)
		assert.Equal(tokens, append([]string{}, temp.Tokens...), code_str)
		assert.Equal(1, cpu.Ticks, code_str)
	})
}
