// Package programs holds the sample programs for the nibble CPU.
package programs

import (
	_ "embed"
)

// FibonacciHex is the Fibonacci counter in hex-annotated source form.
//
//go:embed fibonacci.hex
var FibonacciHex string

// FibonacciAsm is the Fibonacci counter in assembly language form.
//
//go:embed fibonacci.asm
var FibonacciAsm string
