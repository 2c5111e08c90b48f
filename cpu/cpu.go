package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/nibble/io"
)

// Channel is an output token channel.
type Channel io.Channel

// Cpu is the execution loop for the nibble processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	State       State       // Processor state, owned by the execution loop.
	Channel     Channel     // Output token channel.
	Instruction Instruction // Most recently fetched instruction.

	Ticks int // CPU ticks counter.
}

// NewCpu creates a new CPU sending its output to a channel.
func NewCpu(channel Channel) (cpu *Cpu) {
	cpu = &Cpu{
		Channel: channel,
	}

	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears the registers, flags, memory, bank, and output buffer.
// - Fills the program store with NOP.
// - Zeros the tick counter.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State.Reset()
	for n := range cpu.State.Program {
		cpu.State.Program[n] = NOP
	}
	cpu.Instruction = Instruction{}
	cpu.Ticks = 0

	if cpu.Channel != nil {
		cpu.Channel.Rewind()
	}
}

// Load copies a program image into the program store, padding with NOP.
// An image larger than the store is truncated, and ErrTruncated is returned
// after the truncated image is loaded.
func (cpu *Cpu) Load(image []uint8) (err error) {
	if len(image) > PROGRAM_SIZE {
		err = ErrTruncated{Size: len(image)}
		image = image[:PROGRAM_SIZE]
	}

	n := copy(cpu.State.Program[:], image)
	for ; n < PROGRAM_SIZE; n++ {
		cpu.State.Program[n] = NOP
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	st := &cpu.State

	regs := []string{
		"pc",
		"a", "b", "c",
		"flags",
		"bank",
		"buffer",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%03X", st.Pc)
		case "a", "b", "c":
			strval = fmt.Sprintf("%02X", st.Register[reg[0]-'a'])
		case "flags":
			strval = "--"
			if st.Flags.Get(FLAG_ADD_OVERFLOW) {
				strval = "A" + strval[1:]
			}
			if st.Flags.Get(FLAG_SUB_OVERFLOW) {
				strval = strval[:1] + "S"
			}
		case "bank":
			strval = fmt.Sprintf("%X", st.Bank)
		case "buffer":
			strval = "off"
			if st.Output.Buffering {
				strval = "on"
			}
			strval += " [" + token(st.Output.Buffer) + "]"
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Fetch reads the byte at the program counter and advances it.
func (st *State) Fetch() (value uint8, err error) {
	if st.Pc < 0 || st.Pc >= PROGRAM_SIZE {
		err = ErrBounds{Pc: st.Pc}
		return
	}

	value = st.Program[st.Pc]
	st.Pc++

	return
}

// FetchCode fetches and decodes the next instruction.
func (cpu *Cpu) FetchCode() (ins Instruction, err error) {
	pc := cpu.State.Pc

	opcode, err := cpu.State.Fetch()
	if err != nil {
		return
	}

	ins, err = Decode(opcode)
	if err != nil {
		err = ErrOpcode{Opcode: opcode, Pc: pc}
		return
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	pc := cpu.State.Pc

	ins, err := cpu.FetchCode()
	if err != nil {
		return
	}

	cpu.Instruction = ins

	if cpu.Verbose {
		log.Printf("%03x: %02X %v", pc, ins.Opcode, ins)
	}

	err = Execute(&cpu.State, cpu.Channel, ins)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction against the processor
// state. The program counter must already have been advanced past the
// opcode.
func Execute(st *State, ch Channel, ins Instruction) (err error) {
	switch ins.Op {
	case OP_ADD:
		st.Add(ins.Flags)
	case OP_SUB:
		st.Sub(ins.Flags)
	case OP_XOR:
		st.Xor()
	case OP_AND:
		st.And()
	case OP_OR:
		st.Or()
	case OP_NOT:
		st.Not(ins.Reg)
	case OP_SWAP:
		st.Swap(ins.Reg, ins.Reg2)
	case OP_BANK:
		st.SelectBank(ins.Nibble)
	case OP_LOAD:
		st.Load(ins.Reg, ins.Nibble)
	case OP_STORE:
		st.Store(ins.Reg, ins.Nibble)
	case OP_JUMP:
		st.Jump(ins.Nibble, ins.Back)
	case OP_SKIP:
		st.Skip(ins.Cond(), ins.Invert())
	case OP_LDC:
		var value uint8
		value, err = st.Fetch()
		if err != nil {
			return
		}
		st.Set(ins.Reg, value)
	case OP_OUTPUT:
		err = st.Output.Emit(ch, st.Get(ins.Reg))
	case OP_UNBUFFER:
		err = st.Output.SetBuffering(ch, false)
	case OP_BUFFER:
		err = st.Output.SetBuffering(ch, true)
	case OP_ERASE:
		st.Output.Erase()
	case OP_INPUT, OP_ASCII:
		err = ErrUnsupported{Opcode: ins.Opcode, Pc: st.Pc - 1}
	default:
		panic(fmt.Sprintf("unknown op %v", ins.Op))
	}

	return
}
