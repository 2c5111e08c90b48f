package cpu

import (
	"errors"

	"github.com/ezrec/nibble/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrInvalidOpcode    = errors.New(f("invalid opcode"))
	ErrProgramBounds    = errors.New(f("program bounds exceeded"))
	ErrNotSupported     = errors.New(f("not supported"))
	ErrProgramTruncated = errors.New(f("program truncated"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrConditionInvalid   = errors.New(f("condition invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandRange       = errors.New(f("operand out of range"))
)

// ErrOpcode is raised when the fetched byte has no dispatch entry.
type ErrOpcode struct {
	Opcode uint8
	Pc     int
}

func (err ErrOpcode) Error() string {
	return f("0x%02X at %v is not a valid instruction", err.Opcode, err.Pc)
}

func (err ErrOpcode) Unwrap() error {
	return ErrInvalidOpcode
}

// ErrBounds is raised when an instruction fetch falls outside of the
// program store.
type ErrBounds struct {
	Pc int
}

// Terminated is true when execution ran exactly off the end of the store.
func (err ErrBounds) Terminated() bool {
	return err.Pc == PROGRAM_SIZE
}

func (err ErrBounds) Error() string {
	if err.Terminated() {
		return f("terminated")
	}
	return f("%v is not a valid program memory address", err.Pc)
}

func (err ErrBounds) Unwrap() error {
	return ErrProgramBounds
}

// ErrUnsupported is raised when a decoded, but unimplemented, instruction
// is executed.
type ErrUnsupported struct {
	Opcode uint8
	Pc     int
}

func (err ErrUnsupported) Error() string {
	return f("0x%02X at %v is not supported", err.Opcode, err.Pc)
}

func (err ErrUnsupported) Unwrap() error {
	return ErrNotSupported
}

// ErrTruncated reports a program image longer than the program store.
type ErrTruncated struct {
	Size int
}

func (err ErrTruncated) Error() string {
	return f("program of %v bytes truncated to %v bytes", err.Size, PROGRAM_SIZE)
}

func (err ErrTruncated) Unwrap() error {
	return ErrProgramTruncated
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
