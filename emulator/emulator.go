// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	stdio "io"
	"log"
	"time"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/io"
)

var (
	// ErrTickLimit halts an emulator that has run for its tick limit.
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// tee sends output tokens to multiple channels.
type tee []io.Channel

func (t tee) Rewind() {
	for _, ch := range t {
		ch.Rewind()
	}
}

func (t tee) Send(token string) (err error) {
	for _, ch := range t {
		err = ch.Send(token)
		if err != nil {
			return
		}
	}
	return
}

// Emulator state. CPU + program + output channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the currently loaded program, if assembled.
	Image    []uint8      // Currently loaded program image.

	Temporary io.Temporary // Record of all output tokens.
	Tape      io.Tape      // Output token stream.

	Delay time.Duration // Delay between instructions, skipped after NOP.
	Limit int           // Maximum ticks to run, or 0 for unlimited.
	Halt  error         // Condition that stopped execution.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(tee{&emu.Temporary, &emu.Tape})

	return
}

// LoadHex loads a hex-annotated program source.
func (emu *Emulator) LoadHex(input stdio.Reader) (err error) {
	image, err := cpu.ParseHex(input)
	if err != nil {
		return
	}

	emu.Image = image
	emu.Program = &cpu.Program{}

	return
}

// Assemble loads an assembly language program source.
func (emu *Emulator) Assemble(input stdio.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Image = prog.Binary()
	emu.Program = prog

	return
}

// Reset the emulator state, and load the program image into the CPU.
// A truncated image is still loaded; the cpu.ErrTruncated is returned.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Halt = nil

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Image)

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.State.Pc
}

// Output returns the output tokens since a reset.
func (emu *Emulator) Output() []string {
	return emu.Temporary.Tokens
}

// LineNo returns the source line number for the byte at the program counter.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator. Running off the end of the
// program store, or reaching the tick limit, is done; all other halting
// conditions are errors.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Halt != nil {
		done = true
		return
	}

	if emu.Limit > 0 && emu.Ticks() >= emu.Limit {
		emu.Halt = ErrTickLimit
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	lineno := emu.LineNo()

	err = emu.Cpu.Tick()
	if err == nil {
		return
	}

	emu.Halt = err

	var bounds cpu.ErrBounds
	if errors.As(err, &bounds) && bounds.Terminated() {
		if emu.Verbose {
			log.Printf("emulator: %v after %d ticks", err, emu.Ticks())
		}
		err = nil
		done = true
		return
	}

	err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}

	return
}

// Run ticks the emulator until done, an error, or the context is done.
// Delay is applied between instructions, except after a NOP.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if emu.Delay <= 0 || emu.Cpu.Instruction.Opcode == cpu.NOP {
			continue
		}

		if timer == nil {
			timer = time.NewTimer(emu.Delay)
			defer timer.Stop()
		} else {
			timer.Reset(emu.Delay)
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-timer.C:
		}
	}
}
