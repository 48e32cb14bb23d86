package disk

import (
	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

// Error is a guest-visible disk failure: the caller's only contract is to
// write Error() into REG_ERROR, never halt the emulator.
type Error struct {
	msg string
}

func (err *Error) Error() string {
	return err.msg
}

func newError(format string, args ...any) *Error {
	return &Error{msg: f(format, args...)}
}

var (
	errReadOnly = newError("Block 1 is read-only")
)
