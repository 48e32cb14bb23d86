package ram

import (
	"iter"
	"maps"
)

// Registers occupy a closed, compile-time set of RAM addresses. Addresses
// 1 through RegisterCount are reserved for registers; guest programs and the loader place
// code, constants and variables above RegisterCount.
const (
	REG_OP    = Address(1) // Opcode selector for the next cpu_exec.
	REG_A     = Address(2) // Operand A address.
	REG_B     = Address(3) // Operand B address.
	REG_C     = Address(4) // Operand C address.
	REG_D     = Address(5) // Operand D address.
	REG_RES   = Address(6) // Primary result of cpu_exec.

	REG_BOOL_RES = Address(7) // "1" or "0" for predicate opcodes.
	REG_ERROR    = Address(8) // Empty on success, reason on failure.

	PROGRAM_COUNTER = Address(9) // 1-based index of the next instruction cell.

	DISPLAY_BUFFER     = Address(10) // Text staged for OP_DISPLAY/OP_DISPLAY_LN.
	DISPLAY_COLOR      = Address(11) // Foreground color name for display ops.
	DISPLAY_BACKGROUND = Address(12) // Background color name.
	KEYBOARD_BUFFER    = Address(13) // Result of OP_READ_INPUT.

	FREE_MEMORY_START = Address(14) // Conventional heap bounds, guest-maintained.
	FREE_MEMORY_END   = Address(15)

	// RegisterCount is the number of reserved register cells; guest code
	// and the loader's constant/variable pool start at RegisterCount+1.
	RegisterCount = 15
)

var registerName = map[Address]string{
	REG_OP:             "REG_OP",
	REG_A:              "REG_A",
	REG_B:              "REG_B",
	REG_C:              "REG_C",
	REG_D:              "REG_D",
	REG_RES:            "REG_RES",
	REG_BOOL_RES:       "REG_BOOL_RES",
	REG_ERROR:          "REG_ERROR",
	PROGRAM_COUNTER:    "PROGRAM_COUNTER",
	DISPLAY_BUFFER:     "DISPLAY_BUFFER",
	DISPLAY_COLOR:      "DISPLAY_COLOR",
	DISPLAY_BACKGROUND: "DISPLAY_BACKGROUND",
	KEYBOARD_BUFFER:    "KEYBOARD_BUFFER",
	FREE_MEMORY_START:  "FREE_MEMORY_START",
	FREE_MEMORY_END:    "FREE_MEMORY_END",
}

// registerAddress is the inverse of registerName, built once at init.
var registerAddress = func() map[string]Address {
	out := make(map[string]Address, len(registerName))
	for addr, name := range registerName {
		out[name] = addr
	}
	return out
}()

// Name returns the symbolic register name for addr, or "" if addr is not
// a register.
func Name(addr Address) string {
	return registerName[addr]
}

// Lookup resolves a symbolic register name to its address.
func Lookup(name string) (addr Address, ok bool) {
	addr, ok = registerAddress[name]
	return
}

// Registers returns an iterator over every register name/address pair.
func Registers() iter.Seq2[Address, string] {
	return maps.All(registerName)
}
