// Package addr implements the operand addressing discipline shared by the
// copy and jump control primitives: immediate (@v), direct (N) and
// indirect (*N) operands, each resolved against a ram.RAM.
package addr

import (
	"strconv"
	"strings"

	"github.com/hwvm/hwvm/ram"
)

// Kind is the addressing mode of an Operand.
type Kind int

const (
	Direct    Kind = iota // N
	Immediate             // @v
	Indirect              // *N
)

// Operand is a single parsed operand token.
type Operand struct {
	Kind    Kind
	Literal string      // valid when Kind == Immediate
	Addr    ram.Address // valid when Kind == Direct or Kind == Indirect
}

// Parse reads a single operand token in @v / N / *N form.
func Parse(token string) (op Operand, err error) {
	switch {
	case strings.HasPrefix(token, "@"):
		op = Operand{Kind: Immediate, Literal: token[1:]}
		return

	case strings.HasPrefix(token, "*"):
		n, perr := strconv.Atoi(token[1:])
		if perr != nil || n < 1 {
			err = &ErrSyntax{Token: token}
			return
		}
		op = Operand{Kind: Indirect, Addr: ram.Address(n)}
		return

	default:
		n, perr := strconv.Atoi(token)
		if perr != nil || n < 1 {
			err = &ErrSyntax{Token: token}
			return
		}
		op = Operand{Kind: Direct, Addr: ram.Address(n)}
		return
	}
}

// Resolve returns the effective address of op: for Direct, op.Addr itself;
// for Indirect, the address stored at RAM[op.Addr]. Immediate operands have
// no effective address and are rejected.
func (op Operand) Resolve(m *ram.RAM) (addr ram.Address, err error) {
	switch op.Kind {
	case Direct:
		addr = op.Addr
		return

	case Indirect:
		raw, rerr := m.Read(op.Addr)
		if rerr != nil {
			err = rerr
			return
		}
		n, perr := strconv.Atoi(raw)
		if perr != nil || n < 1 {
			err = &ErrNotAddress{Addr: op.Addr, Value: raw}
			return
		}
		addr = ram.Address(n)
		return

	default: // Immediate
		err = ErrImmediateAddress
		return
	}
}

// Value returns the effective value of op as a copy/jump source: the
// literal for Immediate, otherwise RAM[Resolve(op)].
func (op Operand) Value(m *ram.RAM) (value string, err error) {
	if op.Kind == Immediate {
		value = op.Literal
		return
	}

	addr, err := op.Resolve(m)
	if err != nil {
		return
	}

	return m.Read(addr)
}

// Deref parses raw as a plain decimal address and reads it. This is the one
// level of indirection cpu_exec applies to REG_A..REG_D: each register holds
// an address, never an addressing-mode token.
func Deref(m *ram.RAM, raw string) (value string, addr ram.Address, err error) {
	n, perr := strconv.Atoi(raw)
	if perr != nil || n < 1 {
		err = &ErrNotAddress{Value: raw}
		return
	}

	addr = ram.Address(n)
	value, err = m.Read(addr)
	return
}
