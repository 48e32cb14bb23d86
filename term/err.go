package term

import (
	"errors"

	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

var (
	// ErrReadMode is emulator-fatal: OP_READ_INPUT's mode operand did not
	// name one of the four known read modes.
	ErrReadMode = errors.New(f("unknown keyboard read mode"))
)
