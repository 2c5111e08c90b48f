// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

const (
	PROGRAM_SIZE = 1024 // Size of the program store, in bytes.
	MEMORY_SIZE  = 256  // Size of data memory, in bytes.
	BANK_SIZE    = 16   // Bytes addressable through one bank.
	BANK_COUNT   = MEMORY_SIZE / BANK_SIZE
)

// Register identifies one of the three 8-bit registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
)

// Flag identifies one of the overflow flags.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_ADD_OVERFLOW = Flag(0) // add_overflow
	FLAG_SUB_OVERFLOW = Flag(1) // sub_overflow
)

// Flags is the flag register, one bit per Flag.
type Flags uint8

// Get returns the state of a flag.
func (fl Flags) Get(flag Flag) bool {
	return fl&flag.mask() != 0
}

// Set updates the state of a flag.
func (fl *Flags) Set(flag Flag, value bool) {
	if value {
		*fl |= flag.mask()
	} else {
		*fl &^= flag.mask()
	}
}

func (flag Flag) mask() Flags {
	switch flag {
	case FLAG_ADD_OVERFLOW, FLAG_SUB_OVERFLOW:
		return Flags(1) << flag
	}
	panic(fmt.Sprintf("bad flag type %d", int(flag)))
}

// State is the complete mutable state of the processor.
type State struct {
	Register [3]uint8            // Register bank, indexed by Register.
	Flags    Flags               // Overflow flags.
	Memory   [MEMORY_SIZE]uint8  // Data memory.
	Bank     uint8               // Selected memory bank, 0 to BANK_COUNT-1.
	Pc       int                 // Program counter.
	Program  [PROGRAM_SIZE]uint8 // Program store.
	Output   Output              // Output buffer.
}

// Get returns the value of a register.
func (st *State) Get(reg Register) uint8 {
	return st.Register[reg.index()]
}

// Set changes the value of a register.
func (st *State) Set(reg Register, value uint8) {
	st.Register[reg.index()] = value
}

func (reg Register) index() int {
	if reg < REG_A || reg > REG_C {
		panic(fmt.Sprintf("bad register %d", int(reg)))
	}
	return int(reg)
}

// Reset zeros all state, including the program store.
func (st *State) Reset() {
	*st = State{}
}
