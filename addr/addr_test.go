package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hwvm/hwvm/ram"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Token string
		Kind  Kind
		Addr  ram.Address
		Lit   string
		Err   bool
	}){
		{Token: "@hello", Kind: Immediate, Lit: "hello"},
		{Token: "@", Kind: Immediate, Lit: ""},
		{Token: "5", Kind: Direct, Addr: 5},
		{Token: "*5", Kind: Indirect, Addr: 5},
		{Token: "0", Err: true},
		{Token: "*0", Err: true},
		{Token: "abc", Err: true},
	}

	for _, testcase := range table {
		op, err := Parse(testcase.Token)
		if testcase.Err {
			assert.Error(err, testcase.Token)
			continue
		}

		assert.NoError(err, testcase.Token)
		assert.Equal(testcase.Kind, op.Kind, testcase.Token)
		assert.Equal(testcase.Addr, op.Addr, testcase.Token)
		assert.Equal(testcase.Lit, op.Literal, testcase.Token)
	}
}

func TestValueImmediate(t *testing.T) {
	assert := assert.New(t)

	m := ram.New(8)
	op, err := Parse("@42")
	assert.NoError(err)

	v, err := op.Value(m)
	assert.NoError(err)
	assert.Equal("42", v)
}

func TestValueDirect(t *testing.T) {
	assert := assert.New(t)

	m := ram.New(8)
	m.Write(3, "abc")

	op, err := Parse("3")
	assert.NoError(err)

	v, err := op.Value(m)
	assert.NoError(err)
	assert.Equal("abc", v)
}

func TestValueIndirect(t *testing.T) {
	assert := assert.New(t)

	m := ram.New(8)
	m.Write(3, "5")
	m.Write(5, "xyz")

	op, err := Parse("*3")
	assert.NoError(err)

	addr, err := op.Resolve(m)
	assert.NoError(err)
	assert.Equal(ram.Address(5), addr)

	v, err := op.Value(m)
	assert.NoError(err)
	assert.Equal("xyz", v)
}

func TestResolveIndirectNotAddressIsFatal(t *testing.T) {
	assert := assert.New(t)

	m := ram.New(8)
	m.Write(3, "not-a-number")

	op, err := Parse("*3")
	assert.NoError(err)

	_, err = op.Resolve(m)
	assert.Error(err)
}

func TestResolveImmediateHasNoAddress(t *testing.T) {
	assert := assert.New(t)

	m := ram.New(8)
	op, err := Parse("@1")
	assert.NoError(err)

	_, err = op.Resolve(m)
	assert.ErrorIs(err, ErrImmediateAddress)
}

func TestDeref(t *testing.T) {
	assert := assert.New(t)

	m := ram.New(8)
	m.Write(2, "hello")

	v, addr, err := Deref(m, "2")
	assert.NoError(err)
	assert.Equal(ram.Address(2), addr)
	assert.Equal("hello", v)

	_, _, err = Deref(m, "nope")
	assert.Error(err)
}
