// Package term implements the emulator's terminal IO: keyboard reads (with
// optional raw/silent modes) and ANSI-colored display output. Grounded on
// IntuitionAmiga-IntuitionEngine's terminal_host.go (golang.org/x/term
// MakeRaw/Restore), since the teacher's own channel package only talks to
// synthetic bit channels, never a real TTY.
package term

import (
	"bufio"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"
)

// Terminal is the emulator's sole connection to the host TTY.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// New creates a Terminal reading from stdin and writing to stdout.
func New() *Terminal {
	return NewWithFiles(os.Stdin, os.Stdout)
}

// NewWithFiles creates a Terminal over arbitrary in/out files, for testing.
func NewWithFiles(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Read performs one keyboard read in the given mode ("char", "char_silent",
// "line" or "line_silent") and returns the result for KEYBOARD_BUFFER. The
// silent modes put the terminal in raw mode for the duration of the read,
// disabling host echo and line buffering; the non-silent modes rely on the
// terminal's normal line discipline.
func (t *Terminal) Read(mode string) (value string, err error) {
	switch mode {
	case "char":
		var b byte
		b, err = t.reader.ReadByte()
		if err != nil {
			return
		}
		value = string(b)

	case "line":
		value, err = t.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return
		}
		err = nil
		value = trimNewline(value)

	case "char_silent":
		value, err = t.rawRead(readOneByte)

	case "line_silent":
		value, err = t.rawRead(readOneLine)

	default:
		err = ErrReadMode
	}

	return
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// rawRead puts stdin in raw mode, runs read, then always restores stdin,
// even if read panics or returns an error.
func (t *Terminal) rawRead(read func(fd int) (string, error)) (value string, err error) {
	fd := int(t.in.Fd())

	old, merr := term.MakeRaw(fd)
	if merr != nil {
		// Not a TTY (e.g. piped input in tests); fall back to a plain read.
		return read(fd)
	}
	defer term.Restore(fd, old)

	return read(fd)
}

func readOneByte(fd int) (value string, err error) {
	buf := make([]byte, 1)
	_, err = syscall.Read(fd, buf)
	if err != nil {
		return
	}
	value = string(buf[0])
	return
}

func readOneLine(fd int) (value string, err error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		_, err = syscall.Read(fd, buf)
		if err != nil {
			return
		}
		if buf[0] == '\n' || buf[0] == '\r' {
			break
		}
		line = append(line, buf[0])
	}
	value = string(line)
	return
}
