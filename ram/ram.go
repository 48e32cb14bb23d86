// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package ram implements the fixed-size, line-numbered cell store that
// backs the emulator: a dense array of string cells addressed 1..size,
// plus the closed set of well-known register addresses.
package ram

import (
	"bufio"
	"io"
	"os"
)

// Address is a RAM cell address. Address 0 is never valid.
type Address int

// RAM is a fixed-size, 1-indexed array of string cells.
type RAM struct {
	cell []string
}

// New creates a RAM of the given size, zero-initialized (all cells empty).
func New(size int) (m *RAM) {
	m = &RAM{
		cell: make([]string, size+1),
	}

	return
}

// Size returns the number of addressable cells.
func (m *RAM) Size() int {
	return len(m.cell) - 1
}

func (m *RAM) valid(addr Address) bool {
	return addr >= 1 && int(addr) < len(m.cell)
}

// Read returns the value at addr. Out-of-range addr is emulator-fatal.
func (m *RAM) Read(addr Address) (value string, err error) {
	if !m.valid(addr) {
		err = &ErrAddress{Addr: addr, Size: m.Size()}
		return
	}

	value = m.cell[addr]
	return
}

// Write overwrites the value at addr, unconditionally. Out-of-range addr
// is emulator-fatal.
func (m *RAM) Write(addr Address, value string) (err error) {
	if !m.valid(addr) {
		err = &ErrAddress{Addr: addr, Size: m.Size()}
		return
	}

	m.cell[addr] = value
	return
}

// Dump writes every cell, one per line, in address order, to w.
func (m *RAM) Dump(w io.Writer) (err error) {
	buf := bufio.NewWriter(w)

	for addr := 1; addr < len(m.cell); addr++ {
		_, err = buf.WriteString(m.cell[addr])
		if err != nil {
			return
		}
		err = buf.WriteByte('\n')
		if err != nil {
			return
		}
	}

	return buf.Flush()
}

// DumpFile writes the RAM dump to the named file, creating or truncating it.
func (m *RAM) DumpFile(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer file.Close()

	return m.Dump(file)
}

// Load fills RAM starting at address 1 from r, one cell per line.
func (m *RAM) Load(r io.Reader) (err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	addr := Address(1)
	for scanner.Scan() {
		err = m.Write(addr, scanner.Text())
		if err != nil {
			return
		}
		addr++
	}

	return scanner.Err()
}
