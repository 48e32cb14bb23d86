// Package vm implements the control-flow driver loop: the fetch/execute/
// increment cycle over a ram.RAM, dispatching copy, write, read, the three
// conditional jumps, jump, and cpu_exec. Grounded on the teacher's
// emulator/emulator.go Tick/Reset shape, generalized from its register-file
// ALU core to this repo's text-cell instruction stream.
package vm

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hwvm/hwvm/addr"
	"github.com/hwvm/hwvm/cpu"
	"github.com/hwvm/hwvm/disk"
	"github.com/hwvm/hwvm/ram"
	"github.com/hwvm/hwvm/term"
)

// Machine owns the guest's entire addressable state: RAM, disks and the
// terminal, plus the debug-tracer switch from spec.md §4.7.
type Machine struct {
	RAM      *ram.RAM
	Disks    *disk.Store
	Terminal *term.Terminal

	Debug    bool
	TraceOut io.Writer

	// Verbose enables step-level logging independent of Debug's fixed
	// instruction trace, mirroring the teacher's Emulator.Verbose field.
	Verbose bool
}

// New wires a Machine around already-constructed RAM/disks/terminal.
func New(m *ram.RAM, disks *disk.Store, terminal *term.Terminal) *Machine {
	return &Machine{RAM: m, Disks: disks, Terminal: terminal, TraceOut: os.Stderr}
}

// Run drives the machine until it halts or a fatal error occurs.
func (vm *Machine) Run() error {
	for {
		halted, err := vm.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step executes a single tick of the driver loop: fetch RAM[PC], trace it,
// dispatch, then advance PC by one unless the tick halted the machine. A
// jump stores target-1 in PROGRAM_COUNTER, so this increment lands on the
// target.
func (vm *Machine) Step() (halted bool, err error) {
	pcText, err := vm.RAM.Read(ram.PROGRAM_COUNTER)
	if err != nil {
		return
	}
	pc, perr := strconv.Atoi(pcText)
	if perr != nil {
		err = &ErrRuntime{Err: &ErrProgramCounter{Value: pcText}}
		return
	}
	here := ram.Address(pc)

	text, err := vm.RAM.Read(here)
	if err != nil {
		err = &ErrRuntime{PC: int(here), Err: err}
		return
	}

	if vm.Debug {
		vm.trace(here, text)
	}

	words := strings.Fields(text)
	halted, err = vm.dispatch(words)
	if err != nil {
		err = &ErrRuntime{PC: int(here), Err: err}
		return
	}

	if vm.Verbose {
		log.Printf("vm: pc=%d instr=%q halted=%v", here, text, halted)
	}

	if halted {
		return
	}

	err = vm.RAM.Write(ram.PROGRAM_COUNTER, strconv.Itoa(int(here)+1))
	if err != nil {
		err = &ErrRuntime{PC: int(here), Err: err}
	}
	return
}

func (vm *Machine) dispatch(words []string) (halted bool, err error) {
	if len(words) == 0 {
		err = ErrInstructionEmpty
		return
	}

	switch words[0] {
	case "copy":
		err = vm.copyTo(words)
	case "write":
		err = vm.writeTo(words)
	case "read":
		err = vm.readFrom(words)
	case "jump":
		err = vm.jumpAlways(words)
	case "jump_if":
		err = vm.jumpIf(words, true)
	case "jump_if_not":
		err = vm.jumpIf(words, false)
	case "jump_err":
		err = vm.jumpErr(words)
	case "cpu_exec":
		if len(words) != 1 {
			err = &ErrInstructionSyntax{Words: words}
			return
		}
		err = cpu.Exec(vm.RAM, vm.Disks, vm.Terminal)
		if errors.Is(err, cpu.Halt) {
			halted = true
			err = nil
		}
	default:
		err = &ErrInstructionInvalid{Word: words[0]}
	}
	return
}

// copyTo implements "copy SRC to DST": SRC is any addressing mode, DST must
// resolve to an address (the loader already rejected @v destinations).
func (vm *Machine) copyTo(words []string) error {
	if len(words) != 4 || words[2] != "to" {
		return &ErrInstructionSyntax{Words: words}
	}
	return vm.moveValue(words[1], words[3])
}

// writeTo implements "write LITERAL to DST": LITERAL is always treated as
// an immediate, regardless of whether it looks like an address.
func (vm *Machine) writeTo(words []string) error {
	if len(words) != 4 || words[2] != "to" {
		return &ErrInstructionSyntax{Words: words}
	}
	dst, err := addr.Parse(words[3])
	if err != nil {
		return err
	}
	dstAddr, err := dst.Resolve(vm.RAM)
	if err != nil {
		return err
	}
	return vm.RAM.Write(dstAddr, strings.TrimPrefix(words[1], "@"))
}

func (vm *Machine) moveValue(srcTok, dstTok string) error {
	src, err := addr.Parse(srcTok)
	if err != nil {
		return err
	}
	value, err := src.Value(vm.RAM)
	if err != nil {
		return err
	}

	dst, err := addr.Parse(dstTok)
	if err != nil {
		return err
	}
	dstAddr, err := dst.Resolve(vm.RAM)
	if err != nil {
		return err
	}

	return vm.RAM.Write(dstAddr, value)
}

// readFrom implements "read SRC": the effective value of SRC is copied into
// REG_RES, mirroring how cpu_exec publishes its own results.
func (vm *Machine) readFrom(words []string) error {
	if len(words) != 2 {
		return &ErrInstructionSyntax{Words: words}
	}
	op, err := addr.Parse(words[1])
	if err != nil {
		return err
	}
	value, err := op.Value(vm.RAM)
	if err != nil {
		return err
	}
	return vm.RAM.Write(ram.REG_RES, value)
}

func (vm *Machine) jumpAlways(words []string) error {
	if len(words) != 2 {
		return &ErrInstructionSyntax{Words: words}
	}
	return vm.jumpTo(words[1])
}

func (vm *Machine) jumpIf(words []string, want bool) error {
	if len(words) != 2 {
		return &ErrInstructionSyntax{Words: words}
	}
	v, err := vm.RAM.Read(ram.REG_BOOL_RES)
	if err != nil {
		return err
	}
	taken := v == "1"
	if taken != want {
		return nil
	}
	return vm.jumpTo(words[1])
}

func (vm *Machine) jumpErr(words []string) error {
	if len(words) != 2 {
		return &ErrInstructionSyntax{Words: words}
	}
	v, err := vm.RAM.Read(ram.REG_ERROR)
	if err != nil {
		return err
	}
	if v == "" {
		return nil
	}
	return vm.jumpTo(words[1])
}

// jumpTo stores target-1 into PROGRAM_COUNTER, so that Step's unconditional
// post-dispatch increment lands exactly on target (spec.md §3, §4.5).
func (vm *Machine) jumpTo(tok string) error {
	op, err := addr.Parse(tok)
	if err != nil {
		return err
	}
	target, err := op.Resolve(vm.RAM)
	if err != nil {
		return err
	}
	return vm.RAM.Write(ram.PROGRAM_COUNTER, strconv.Itoa(int(target)-1))
}

func (vm *Machine) trace(at ram.Address, text string) {
	fmt.Fprintf(vm.TraceOut, "\033[36m[DEBUG] Command %d: %s\033[0m\n", at, text)
}
