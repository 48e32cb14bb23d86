// Package loader implements the load-time grammar for guest programs:
// copy/write/read/jump*/cpu_exec instruction text, "label NAME" and
// "var NAME" declarations, label:NAME/var:NAME resolution, and $(...)
// arithmetic expression evaluation. Grounded on the teacher's
// cpu/assembler.go Parse/parseLine/Label map, trimmed to spec.md's
// grammar: this loader produces resolved instruction text for a
// string-cell RAM, not packed machine words.
package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hwvm/hwvm/cpu"
	"github.com/hwvm/hwvm/ram"
)

type line struct {
	lineno int
	words  []string
}

// Load parses program text from r, resolves every label:NAME/var:NAME
// token against the "label NAME"/"var NAME" declarations found in the
// source, evaluates every $(...) expression, and writes the resulting
// instruction text into m starting at the first free cell above the
// register file. It sets PROGRAM_COUNTER so the driver loop's first
// fetch lands on the first loaded instruction, and returns that address.
func Load(r io.Reader, m *ram.RAM) (entry ram.Address, err error) {
	lines, err := tokenize(r)
	if err != nil {
		return
	}

	instrBase := ram.Address(ram.RegisterCount + 1)

	instrCount := 0
	for _, ln := range lines {
		if isDirective(ln, "label") || isDirective(ln, "var") {
			continue
		}
		instrCount++
	}
	varBase := instrBase + ram.Address(instrCount)

	labels := map[string]ram.Address{}
	vars := map[string]ram.Address{}

	instrIndex := 0
	varIndex := 0
	for _, ln := range lines {
		switch {
		case isDirective(ln, "label"):
			name, nerr := directiveName(ln)
			if nerr != nil {
				err = nerr
				return
			}
			if _, dup := labels[name]; dup {
				err = &ErrDuplicateLabel{Name: name, LineNo: ln.lineno}
				return
			}
			labels[name] = instrBase + ram.Address(instrIndex)

		case isDirective(ln, "var"):
			name, nerr := directiveName(ln)
			if nerr != nil {
				err = nerr
				return
			}
			if _, dup := vars[name]; dup {
				err = &ErrDuplicateVar{Name: name, LineNo: ln.lineno}
				return
			}
			vars[name] = varBase + ram.Address(varIndex)
			varIndex++

		default:
			instrIndex++
		}
	}

	instrIndex = 0
	for _, ln := range lines {
		if isDirective(ln, "label") {
			continue
		}

		if isDirective(ln, "var") {
			if len(ln.words) >= 3 {
				name := ln.words[1]
				initial := make([]string, len(ln.words)-2)
				for i, w := range ln.words[2:] {
					initial[i] = resolveSymbol(w)
				}
				err = m.Write(vars[name], strings.Join(initial, " "))
				if err != nil {
					return
				}
			}
			continue
		}

		err = validateDestination(ln.words)
		if err != nil {
			err = &ErrSyntax{LineNo: ln.lineno, Err: err}
			return
		}

		text, rerr := resolveTokens(ln.words, labels, vars)
		if rerr != nil {
			err = &ErrSyntax{LineNo: ln.lineno, Err: rerr}
			return
		}

		text, rerr = evalExpressions(text)
		if rerr != nil {
			err = &ErrSyntax{LineNo: ln.lineno, Err: rerr}
			return
		}

		addr := instrBase + ram.Address(instrIndex)
		err = m.Write(addr, text)
		if err != nil {
			return
		}
		instrIndex++
	}

	// PROGRAM_COUNTER is "the next instruction cell" (spec.md §3): the
	// driver fetches RAM[PC] before it ever increments, so the loader
	// primes PC with the entry address itself, not entry-1. The
	// a-1/post-step-increment convention belongs to jump, which runs
	// mid-tick and relies on the driver's own increment to land exactly
	// on the target; priming is not a jump.
	entry = instrBase
	err = m.Write(ram.PROGRAM_COUNTER, strconv.Itoa(int(entry)))
	return
}

// tokenize splits r into non-blank, comment-stripped lines of whitespace
// separated words.
func tokenize(r io.Reader) (lines []line, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++

		text := scanner.Text()
		if i := strings.IndexByte(text, ';'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		lines = append(lines, line{lineno: lineno, words: strings.Fields(text)})
	}
	err = scanner.Err()
	return
}

func isDirective(ln line, name string) bool {
	return len(ln.words) > 0 && ln.words[0] == name
}

func directiveName(ln line) (string, error) {
	if len(ln.words) < 2 {
		return "", &ErrSyntax{LineNo: ln.lineno, Err: ErrDirectiveMissingName}
	}
	return ln.words[1], nil
}

// resolveTokens replaces every label:NAME/var:NAME word with the decimal
// address assigned to that name, resolves every bare register/color/
// keyboard-mode symbol against the named-symbol tables (spec.md §4.2,
// §6), and leaves every other word (numeric literals, @v immediates,
// opcode names, disk names, keywords) unchanged.
func resolveTokens(words []string, labels, vars map[string]ram.Address) (string, error) {
	out := make([]string, len(words))
	for i, w := range words {
		switch {
		case strings.HasPrefix(w, "label:"):
			name := w[len("label:"):]
			addr, ok := labels[name]
			if !ok {
				return "", &ErrLabelMissing{Name: name}
			}
			out[i] = strconv.Itoa(int(addr))

		case strings.HasPrefix(w, "var:"):
			name := w[len("var:"):]
			addr, ok := vars[name]
			if !ok {
				return "", &ErrVarMissing{Name: name}
			}
			out[i] = strconv.Itoa(int(addr))

		default:
			out[i] = resolveSymbol(w)
		}
	}
	return strings.Join(out, " "), nil
}

// resolveSymbol resolves a bare named symbol (a register name like REG_A
// or DISPLAY_COLOR, a color name like COLOR_RED, or a keyboard-mode name
// like KEYBOARD_READ_LINE) to the value the runtime actually expects:
// an address for registers, a short string for colors/modes. It also
// resolves the symbol inside an indirect *NAME token. Anything that
// matches none of the tables (numeric literals, @v immediates, opcode
// names, disk names, keywords) passes through unchanged.
func resolveSymbol(word string) string {
	if strings.HasPrefix(word, "*") {
		return "*" + resolveBareSymbol(word[1:])
	}
	return resolveBareSymbol(word)
}

func resolveBareSymbol(word string) string {
	if addr, ok := ram.Lookup(word); ok {
		return strconv.Itoa(int(addr))
	}
	if color, ok := cpu.LookupColor(word); ok {
		return color
	}
	if mode, ok := cpu.LookupReadMode(word); ok {
		return mode
	}
	return word
}

// validateDestination enforces spec.md §4.3: an immediate operand is
// rejected as the destination of copy/write at load time.
func validateDestination(words []string) error {
	if len(words) != 4 {
		return nil
	}
	if (words[0] != "copy" && words[0] != "write") || words[2] != "to" {
		return nil
	}
	if strings.HasPrefix(words[3], "@") {
		return &ErrImmediateDestination{Token: words[3]}
	}
	return nil
}
