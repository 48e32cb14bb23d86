package cpu

import (
	"errors"

	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

var (
	// ErrOpcodeUnknown is emulator-fatal: REG_OP did not name a known opcode.
	ErrOpcodeUnknown = errors.New(f("unknown opcode"))

	// ErrNotInteger is emulator-fatal: a comparison opcode was given an
	// operand that does not parse as an integer.
	ErrNotInteger = errors.New(f("operand is not an integer"))

	// ErrIndexRange is emulator-fatal: a column index fell outside the
	// string or field range it addresses, or OP_RENDER_BITMAP was given a
	// start address below 1 or an end address below its start.
	ErrIndexRange = errors.New(f("column index out of range"))

	// ErrDivisionByZero is guest-visible: written to REG_ERROR, never
	// returned as a Go error.
	ErrDivisionByZero = f("division by zero")
)

// ErrExec wraps the opcode being executed around the underlying cause, for
// emulator-fatal failures of cpu_exec.
type ErrExec struct {
	Op  Opcode
	Err error
}

func (err *ErrExec) Error() string {
	return f("cpu_exec %v: %v", err.Op, err.Err)
}

func (err *ErrExec) Unwrap() error {
	return err.Err
}
