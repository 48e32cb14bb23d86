package term

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadChar(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	assert.NoError(err)
	defer r.Close()

	w.WriteString("abc")
	w.Close()

	term := NewWithFiles(r, &strings.Builder{})

	v, err := term.Read("char")
	assert.NoError(err)
	assert.Equal("a", v)

	v, err = term.Read("char")
	assert.NoError(err)
	assert.Equal("b", v)
}

func TestReadLine(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	assert.NoError(err)
	defer r.Close()

	w.WriteString("hello world\nsecond\n")
	w.Close()

	term := NewWithFiles(r, &strings.Builder{})

	v, err := term.Read("line")
	assert.NoError(err)
	assert.Equal("hello world", v)

	v, err = term.Read("line")
	assert.NoError(err)
	assert.Equal("second", v)
}

func TestReadCharSilentFallsBackOffTTY(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	assert.NoError(err)
	defer r.Close()

	w.WriteString("z")
	w.Close()

	term := NewWithFiles(r, &strings.Builder{})

	v, err := term.Read("char_silent")
	assert.NoError(err)
	assert.Equal("z", v)
}

func TestReadLineSilentFallsBackOffTTY(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	assert.NoError(err)
	defer r.Close()

	w.WriteString("secret\n")
	w.Close()

	term := NewWithFiles(r, &strings.Builder{})

	v, err := term.Read("line_silent")
	assert.NoError(err)
	assert.Equal("secret", v)
}

func TestReadUnknownModeIsFatal(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	assert.NoError(err)
	defer r.Close()
	defer w.Close()

	term := NewWithFiles(r, &strings.Builder{})

	_, err = term.Read("bogus")
	assert.ErrorIs(err, ErrReadMode)
}

func TestDisplayWritesColorAndText(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	term := NewWithFiles(nil, &out)

	term.DisplayLn("hi", "red")
	assert.Contains(out.String(), "hi")
	assert.Contains(out.String(), "\033[31m")
}

func TestRenderBitmapSkipsUnknownChars(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	term := NewWithFiles(nil, &out)

	term.RenderBitmap([]string{"rg", "?w"}, "black")
	assert.Contains(out.String(), "\033[31m")
	assert.Contains(out.String(), "\033[40m")
}
