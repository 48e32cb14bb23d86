package vm

import (
	"errors"
	"strings"

	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

// ErrInstructionEmpty is emulator-fatal: the instruction cell at PC held
// no text at all.
var ErrInstructionEmpty = errors.New(f("empty instruction"))

// ErrInstructionInvalid is emulator-fatal: the instruction's first word
// named no known control primitive.
type ErrInstructionInvalid struct {
	Word string
}

func (err *ErrInstructionInvalid) Error() string {
	return f("unknown instruction %q", err.Word)
}

// ErrInstructionSyntax is emulator-fatal: a known primitive was given the
// wrong number or shape of operand words.
type ErrInstructionSyntax struct {
	Words []string
}

func (err *ErrInstructionSyntax) Error() string {
	return f("malformed instruction %q", strings.Join(err.Words, " "))
}

// ErrProgramCounter is emulator-fatal: PROGRAM_COUNTER did not hold a
// decimal address.
type ErrProgramCounter struct {
	Value string
}

func (err *ErrProgramCounter) Error() string {
	return f("program counter %q is not a valid address", err.Value)
}

// ErrRuntime wraps a runtime failure with the program counter it occurred
// at. Grounded on emulator/err.go's ErrRuntime{LineNo, Err} pattern.
type ErrRuntime struct {
	PC  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d: %v", err.PC, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
