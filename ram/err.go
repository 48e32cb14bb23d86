package ram

import (
	"errors"

	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

var (
	// ErrSizeInvalid describes a GLOBAL_RAM_SIZE that is not a positive
	// integer. Nothing in this module returns it: New does not check its
	// size, and the CLI falls back to its default size instead.
	ErrSizeInvalid = errors.New(f("ram size invalid"))
)

// ErrAddress reports an access outside [1, Size]. It is always emulator-fatal.
type ErrAddress struct {
	Addr Address
	Size int
}

func (err *ErrAddress) Error() string {
	return f("address %v out of range [1, %v]", int(err.Addr), err.Size)
}
