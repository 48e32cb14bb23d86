// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements cpu_exec: the closed opcode dispatcher that reads
// REG_OP/REG_A..D, performs arithmetic, string, terminal and disk IO, and
// writes the result registers.
package cpu

// Opcode is a cpu_exec operation. The zero value, OP_UNKNOWN, matches any
// opcode text not present in the name table and is always emulator-fatal.
type Opcode int

const (
	OP_UNKNOWN Opcode = iota

	// Arithmetic
	OP_ADD
	OP_SUB
	OP_INCR
	OP_DECR
	OP_MUL
	OP_DIV
	OP_MOD

	// Predicates
	OP_IS_NUM
	OP_CMP_EQ
	OP_CMP_NEQ
	OP_CMP_LT
	OP_CMP_LE
	OP_CONTAINS
	OP_STARTS_WITH

	// String ops
	OP_GET_LENGTH
	OP_GET_COLUMN
	OP_REPLACE_COLUMN
	OP_CONCAT_WITH

	// Placeholders (Non-goal: no real cryptography)
	OP_ENCRYPT_DATA
	OP_DECRYPT_DATA

	// Terminal IO
	OP_READ_INPUT
	OP_DISPLAY
	OP_DISPLAY_LN
	OP_SET_BACKGROUND_COLOR
	OP_RENDER_BITMAP

	// Disk IO
	OP_READ_BLOCK
	OP_WRITE_BLOCK

	// Control
	OP_NOP
	OP_HALT
)

var opcodeName = map[Opcode]string{
	OP_ADD:                  "OP_ADD",
	OP_SUB:                  "OP_SUB",
	OP_INCR:                 "OP_INCR",
	OP_DECR:                 "OP_DECR",
	OP_MUL:                  "OP_MUL",
	OP_DIV:                  "OP_DIV",
	OP_MOD:                  "OP_MOD",
	OP_IS_NUM:               "OP_IS_NUM",
	OP_CMP_EQ:               "OP_CMP_EQ",
	OP_CMP_NEQ:              "OP_CMP_NEQ",
	OP_CMP_LT:               "OP_CMP_LT",
	OP_CMP_LE:               "OP_CMP_LE",
	OP_CONTAINS:             "OP_CONTAINS",
	OP_STARTS_WITH:          "OP_STARTS_WITH",
	OP_GET_LENGTH:           "OP_GET_LENGTH",
	OP_GET_COLUMN:           "OP_GET_COLUMN",
	OP_REPLACE_COLUMN:       "OP_REPLACE_COLUMN",
	OP_CONCAT_WITH:          "OP_CONCAT_WITH",
	OP_ENCRYPT_DATA:         "OP_ENCRYPT_DATA",
	OP_DECRYPT_DATA:         "OP_DECRYPT_DATA",
	OP_READ_INPUT:           "OP_READ_INPUT",
	OP_DISPLAY:              "OP_DISPLAY",
	OP_DISPLAY_LN:           "OP_DISPLAY_LN",
	OP_SET_BACKGROUND_COLOR: "OP_SET_BACKGROUND_COLOR",
	OP_RENDER_BITMAP:        "OP_RENDER_BITMAP",
	OP_READ_BLOCK:           "OP_READ_BLOCK",
	OP_WRITE_BLOCK:          "OP_WRITE_BLOCK",
	OP_NOP:                  "OP_NOP",
	OP_HALT:                 "OP_HALT",
}

var opcodeValue = func() map[string]Opcode {
	out := make(map[string]Opcode, len(opcodeName))
	for op, name := range opcodeName {
		out[name] = op
	}
	return out
}()

// String returns the symbolic name of op, or "OP_UNKNOWN" if op is not a
// recognized opcode.
func (op Opcode) String() string {
	name, ok := opcodeName[op]
	if !ok {
		return "OP_UNKNOWN"
	}
	return name
}

// ParseOpcode resolves a symbolic opcode name, as stored in REG_OP, to an
// Opcode. An unrecognized name resolves to OP_UNKNOWN, not an error: the
// caller (Exec) is responsible for treating OP_UNKNOWN as emulator-fatal.
func ParseOpcode(name string) Opcode {
	return opcodeValue[name]
}

// Color is an ANSI foreground or background color, named as in
// DISPLAY_COLOR/DISPLAY_BACKGROUND.
type Color string

const (
	COLOR_MAGENTA Color = "magenta"
	COLOR_GREEN   Color = "green"
	COLOR_YELLOW  Color = "yellow"
	COLOR_RED     Color = "red"
	COLOR_BLACK   Color = "black"
	COLOR_BLUE    Color = "blue"
	COLOR_CYAN    Color = "cyan"
	COLOR_WHITE   Color = "white"
)

// ReadMode selects how OP_READ_INPUT reads from the terminal.
type ReadMode string

const (
	KEYBOARD_READ_CHAR          ReadMode = "char"
	KEYBOARD_READ_CHAR_SILENTLY ReadMode = "char_silent"
	KEYBOARD_READ_LINE          ReadMode = "line"
	KEYBOARD_READ_LINE_SILENTLY ReadMode = "line_silent"
)

// colorSymbol and readModeSymbol back LookupColor/LookupReadMode: the
// named-symbol tables spec.md §4.2/§6 require guest programs (and the
// loader) to reference DISPLAY_COLOR/DISPLAY_BACKGROUND and
// OP_READ_INPUT's mode argument by name rather than by the short string
// those registers actually hold.
var colorSymbol = map[string]string{
	"COLOR_MAGENTA": string(COLOR_MAGENTA),
	"COLOR_GREEN":   string(COLOR_GREEN),
	"COLOR_YELLOW":  string(COLOR_YELLOW),
	"COLOR_RED":     string(COLOR_RED),
	"COLOR_BLACK":   string(COLOR_BLACK),
	"COLOR_BLUE":    string(COLOR_BLUE),
	"COLOR_CYAN":    string(COLOR_CYAN),
	"COLOR_WHITE":   string(COLOR_WHITE),
}

var readModeSymbol = map[string]string{
	"KEYBOARD_READ_CHAR":          string(KEYBOARD_READ_CHAR),
	"KEYBOARD_READ_CHAR_SILENTLY": string(KEYBOARD_READ_CHAR_SILENTLY),
	"KEYBOARD_READ_LINE":          string(KEYBOARD_READ_LINE),
	"KEYBOARD_READ_LINE_SILENTLY": string(KEYBOARD_READ_LINE_SILENTLY),
}

// LookupColor resolves a symbolic COLOR_* name to the string value stored
// in DISPLAY_COLOR/DISPLAY_BACKGROUND.
func LookupColor(name string) (string, bool) {
	v, ok := colorSymbol[name]
	return v, ok
}

// LookupReadMode resolves a symbolic KEYBOARD_READ_* name to the string
// value OP_READ_INPUT expects in its mode operand.
func LookupReadMode(name string) (string, bool) {
	v, ok := readModeSymbol[name]
	return v, ok
}
