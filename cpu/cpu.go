package cpu

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hwvm/hwvm/addr"
	"github.com/hwvm/hwvm/disk"
	"github.com/hwvm/hwvm/ram"
	"github.com/hwvm/hwvm/term"
)

// Halt is the sentinel error Exec returns for OP_HALT. It is not a
// failure: the driver loop treats it as a clean exit with code 0.
var Halt = errors.New(f("halt"))

// Exec performs one cpu_exec: it reads REG_OP and REG_A..D, clears
// REG_ERROR, dispatches on the opcode, and writes the result registers.
// A non-nil, non-Halt return is always emulator-fatal.
func Exec(m *ram.RAM, disks *disk.Store, terminal *term.Terminal) (err error) {
	err = m.Write(ram.REG_ERROR, "")
	if err != nil {
		return
	}

	opText, err := m.Read(ram.REG_OP)
	if err != nil {
		return
	}

	op := ParseOpcode(opText)

	e := &exec{m: m, disks: disks, terminal: terminal, op: op}
	err = e.dispatch()
	if err != nil && !errors.Is(err, Halt) {
		err = &ErrExec{Op: op, Err: err}
	}
	return
}

// exec carries the per-call state cpu_exec's opcode handlers share.
type exec struct {
	m        *ram.RAM
	disks    *disk.Store
	terminal *term.Terminal
	op       Opcode
}

// value reads reg (REG_A..REG_D) and dereferences it once, per cpu_exec's
// one-level-of-indirection contract: the register holds an address, and
// the operand value is the content of that address.
func (e *exec) value(reg ram.Address) (value string, err error) {
	raw, err := e.m.Read(reg)
	if err != nil {
		return
	}

	value, _, err = addr.Deref(e.m, raw)
	return
}

func (e *exec) a() (string, error) { return e.value(ram.REG_A) }
func (e *exec) b() (string, error) { return e.value(ram.REG_B) }
func (e *exec) c() (string, error) { return e.value(ram.REG_C) }
func (e *exec) d() (string, error) { return e.value(ram.REG_D) }

func (e *exec) setResult(value string) error {
	return e.m.Write(ram.REG_RES, value)
}

func (e *exec) setBool(value bool) error {
	text := "0"
	if value {
		text = "1"
	}
	return e.m.Write(ram.REG_BOOL_RES, text)
}

// guestError writes a disk-reported failure into REG_ERROR and returns nil,
// so the caller's cpu_exec completes normally and the guest can jump_err.
// Any other error is returned unchanged, which Exec treats as fatal.
func (e *exec) guestError(err error) error {
	var derr *disk.Error
	if errors.As(err, &derr) {
		return e.m.Write(ram.REG_ERROR, derr.Error())
	}
	return err
}

func (e *exec) dispatch() (err error) {
	switch e.op {
	case OP_ADD:
		return e.arith(func(a, b float64) float64 { return a + b })
	case OP_SUB:
		return e.arith(func(a, b float64) float64 { return a - b })
	case OP_MUL:
		return e.mul()
	case OP_INCR:
		return e.incrDecr(1)
	case OP_DECR:
		return e.incrDecr(-1)
	case OP_DIV:
		return e.divMod(true)
	case OP_MOD:
		return e.divMod(false)

	case OP_IS_NUM:
		a, err := e.a()
		if err != nil {
			return err
		}
		return e.setBool(isNumber(a))
	case OP_CMP_EQ:
		return e.cmpString(func(a, b string) bool { return a == b })
	case OP_CMP_NEQ:
		return e.cmpString(func(a, b string) bool { return a != b })
	case OP_CMP_LT:
		return e.cmpInt(func(a, b int64) bool { return a < b })
	case OP_CMP_LE:
		return e.cmpInt(func(a, b int64) bool { return a <= b })
	case OP_CONTAINS:
		return e.cmpString(strings.Contains)
	case OP_STARTS_WITH:
		return e.startsWith()

	case OP_GET_LENGTH:
		a, err := e.a()
		if err != nil {
			return err
		}
		return e.setResult(formatNumber(float64(utf8.RuneCountInString(a))))
	case OP_GET_COLUMN:
		return e.getColumn()
	case OP_REPLACE_COLUMN:
		return e.replaceColumn()
	case OP_CONCAT_WITH:
		a, err := e.a()
		if err != nil {
			return err
		}
		b, err := e.b()
		if err != nil {
			return err
		}
		c, err := e.c()
		if err != nil {
			return err
		}
		return e.setResult(a + c + b)

	case OP_ENCRYPT_DATA, OP_DECRYPT_DATA:
		// Identity placeholders: Non-goal, no real cryptography.
		a, err := e.a()
		if err != nil {
			return err
		}
		return e.setResult(a)

	case OP_READ_INPUT:
		return e.readInput()
	case OP_DISPLAY:
		return e.display(false)
	case OP_DISPLAY_LN:
		return e.display(true)
	case OP_SET_BACKGROUND_COLOR:
		return e.setBackground()
	case OP_RENDER_BITMAP:
		return e.renderBitmap()

	case OP_READ_BLOCK:
		return e.readBlock()
	case OP_WRITE_BLOCK:
		return e.writeBlock()

	case OP_NOP:
		return e.nop()
	case OP_HALT:
		return Halt

	default:
		return ErrOpcodeUnknown
	}
}

func (e *exec) arith(fn func(a, b float64) float64) (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}

	a, err := parseNumber(aText)
	if err != nil {
		return
	}
	b, err := parseNumber(bText)
	if err != nil {
		return
	}

	return e.setResult(formatNumber(fn(a, b)))
}

func (e *exec) mul() (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}

	a, err := parseNumber(aText)
	if err != nil {
		return
	}
	b, err := parseNumber(bText)
	if err != nil {
		return
	}

	return e.setResult(formatScaled(a*b, 2))
}

func (e *exec) incrDecr(delta float64) (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}

	a, err := parseNumber(aText)
	if err != nil {
		return
	}

	return e.setResult(formatNumber(a + delta))
}

func (e *exec) divMod(div bool) (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}

	a, err := parseInteger(aText)
	if err != nil {
		return
	}
	b, err := parseInteger(bText)
	if err != nil {
		return
	}

	if b == 0 {
		return e.m.Write(ram.REG_ERROR, ErrDivisionByZero)
	}

	if div {
		return e.setResult(formatNumber(float64(a / b)))
	}
	return e.setResult(formatNumber(float64(a % b)))
}

func (e *exec) cmpString(fn func(a, b string) bool) (err error) {
	a, err := e.a()
	if err != nil {
		return
	}
	b, err := e.b()
	if err != nil {
		return
	}
	return e.setBool(fn(a, b))
}

func (e *exec) cmpInt(fn func(a, b int64) bool) (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}

	a, err := parseInteger(aText)
	if err != nil {
		return ErrNotInteger
	}
	b, err := parseInteger(bText)
	if err != nil {
		return ErrNotInteger
	}

	return e.setBool(fn(a, b))
}

func (e *exec) startsWith() (err error) {
	a, err := e.a()
	if err != nil {
		return
	}
	b, err := e.b()
	if err != nil {
		return
	}

	if !strings.HasPrefix(a, b) {
		err = e.setBool(false)
		if err != nil {
			return
		}
		return e.setResult(a)
	}

	err = e.setBool(true)
	if err != nil {
		return
	}
	return e.setResult(strings.TrimPrefix(a, b))
}

func (e *exec) getColumn() (err error) {
	a, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}
	c, err := e.c()
	if err != nil {
		return
	}

	index, err := parseInteger(bText)
	if err != nil {
		return
	}

	if c == "" {
		runes := []rune(a)
		if index < 1 || int(index) > len(runes) {
			return ErrIndexRange
		}
		return e.setResult(string(runes[index-1]))
	}

	fields := strings.Split(a, c)
	if index < 1 || int(index) > len(fields) {
		return ErrIndexRange
	}
	return e.setResult(fields[index-1])
}

func (e *exec) replaceColumn() (err error) {
	a, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}
	c, err := e.c()
	if err != nil {
		return
	}
	d, err := e.d()
	if err != nil {
		return
	}

	index, err := parseInteger(bText)
	if err != nil {
		return
	}

	if c == "" {
		runes := []rune(a)
		if index < 1 || int(index) > len(runes) {
			return ErrIndexRange
		}
		dRunes := []rune(d)
		if len(dRunes) == 0 {
			// D empty: drop the character at index rather than substitute,
			// the char-mode equivalent of splicing an empty field back in.
			runes = append(runes[:index-1], runes[index:]...)
		} else {
			runes[index-1] = dRunes[0]
		}
		return e.setResult(string(runes))
	}

	fields := strings.Split(a, c)
	if index < 1 || int(index) > len(fields) {
		return ErrIndexRange
	}
	fields[index-1] = d
	return e.setResult(strings.Join(fields, c))
}

func (e *exec) readInput() (err error) {
	mode, err := e.a()
	if err != nil {
		return
	}

	value, err := e.terminal.Read(mode)
	if err != nil {
		return
	}
	return e.m.Write(ram.KEYBOARD_BUFFER, value)
}

func (e *exec) display(newline bool) (err error) {
	text, err := e.m.Read(ram.DISPLAY_BUFFER)
	if err != nil {
		return
	}
	color, err := e.m.Read(ram.DISPLAY_COLOR)
	if err != nil {
		return
	}

	if newline {
		e.terminal.DisplayLn(text, color)
	} else {
		e.terminal.Display(text, color)
	}
	return
}

func (e *exec) setBackground() (err error) {
	color, err := e.m.Read(ram.DISPLAY_BACKGROUND)
	if err != nil {
		return
	}
	e.terminal.SetBackground(color)
	return
}

func (e *exec) renderBitmap() (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}

	start, err := parseInteger(aText)
	if err != nil {
		return
	}
	end, err := parseInteger(bText)
	if err != nil {
		return
	}

	if start < 1 || end < start {
		return ErrIndexRange
	}

	rows := make([]string, 0, end-start)
	for addr := start; addr < end; addr++ {
		var row string
		row, err = e.m.Read(ram.Address(addr))
		if err != nil {
			return
		}
		rows = append(rows, row)
	}

	color, err := e.m.Read(ram.DISPLAY_BACKGROUND)
	if err != nil {
		return
	}

	e.terminal.RenderBitmap(rows, color)
	return
}

func (e *exec) readBlock() (err error) {
	name, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}

	block, err := parseInteger(bText)
	if err != nil {
		return
	}

	value, err := e.disks.ReadBlock(name, int(block))
	if err != nil {
		return e.guestError(err)
	}
	return e.setResult(value)
}

func (e *exec) writeBlock() (err error) {
	name, err := e.a()
	if err != nil {
		return
	}
	bText, err := e.b()
	if err != nil {
		return
	}
	c, err := e.c()
	if err != nil {
		return
	}

	block, err := parseInteger(bText)
	if err != nil {
		return
	}

	err = e.disks.WriteBlock(name, int(block), c)
	if err != nil {
		return e.guestError(err)
	}
	return
}

func (e *exec) nop() (err error) {
	aText, err := e.a()
	if err != nil {
		return
	}

	seconds, err := parseNumber(aText)
	if err != nil {
		return
	}

	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return
}
