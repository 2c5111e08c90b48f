// Package cpu implements the processor and assembler for the nibble system.
//
// The CPU consists of a 1024-byte program store with a program counter,
// three 8-bit registers (A, B, C), two overflow flags, a 256-byte memory
// addressed through sixteen 16-byte banks, and an output buffer that emits
// hexadecimal tokens. Every opcode is a single byte; the high nibble selects
// the operation family and, for most families, the low nibble is the operand.
//
// The assembler provides a small mnemonic language for the instruction set,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
