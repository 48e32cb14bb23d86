package addr

import (
	"errors"

	"github.com/hwvm/hwvm/ram"
	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

// ErrImmediateAddress is returned when an immediate operand is used where
// an effective address is required (a destination, or a jump target). It
// is always emulator-fatal. The loader already rejects an immediate
// destination of copy/write at load time; an immediate jump target is
// only caught here, at run time.
var ErrImmediateAddress = errors.New(f("immediate operand has no address"))

// ErrSyntax reports a malformed operand token.
type ErrSyntax struct {
	Token string
}

func (err *ErrSyntax) Error() string {
	return f("malformed operand %q", err.Token)
}

// ErrNotAddress reports an indirect operand whose target cell does not
// hold a valid positive integer address.
type ErrNotAddress struct {
	Addr  ram.Address
	Value string
}

func (err *ErrNotAddress) Error() string {
	if err.Addr == 0 {
		return f("value %q is not a valid address", err.Value)
	}
	return f("RAM[%v] = %q is not a valid address", int(err.Addr), err.Value)
}
