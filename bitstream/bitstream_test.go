package bitstream

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	msg := "Engenharia 2025!"
	bits := FromText(msg)
	require.Len(t, bits, len(msg)*8, "one byte per ASCII character")

	actual, err := ToText(bits)
	require.NoError(t, err)
	assert.Equal(t, msg, actual)
}

func TestFromTextMSBFirst(t *testing.T) {
	// 'A' == 0x41
	assert.Equal(t, Bits{0, 1, 0, 0, 0, 0, 0, 1}, FromText("A"))
}

func TestToTextErrors(t *testing.T) {
	_, err := ToText(Bits{1, 0, 1})
	require.ErrorIs(t, err, ErrNotByteAligned)

	_, err = ToText(Bits{0, 1, 0, 0, 0, 0, 2, 1})
	require.ErrorIs(t, err, ErrInvalidBit)
}

func TestToTextReplacesInvalidUTF8(t *testing.T) {
	actual, err := ToText(FromBytes([]byte{'o', 0xff, 'k'}))
	require.NoError(t, err)
	assert.Equal(t, "o�k", actual)
}

func TestToTextReplacesEachInvalidByte(t *testing.T) {
	actual, err := ToText(FromBytes([]byte{0xff, 0xff, 'A'}))
	require.NoError(t, err)
	assert.Equal(t, "\ufffd\ufffdA", actual)
	assert.Equal(t, 3, utf8.RuneCountInString(actual))

	actual, err = ToText(FromBytes([]byte{'a', 0xc3, 0xa7, 0xe2, 0x82, 'b'}))
	require.NoError(t, err)
	assert.Equal(t, "aç\ufffd\ufffdb", actual)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(nil))
	require.NoError(t, Validate(Bits{0, 1, 1, 0}))

	err := Validate(Bits{0, 1, 3})
	require.ErrorIs(t, err, ErrInvalidBit)
	assert.Contains(t, err.Error(), "index 2")
}

func TestParse(t *testing.T) {
	bits, err := Parse("1010 1,0_1\n0")
	require.NoError(t, err)
	assert.Equal(t, "10101010", bits.String())

	_, err = Parse("10x1")
	require.ErrorIs(t, err, ErrInvalidBitInput)
}

func TestBER(t *testing.T) {
	assert.Equal(t, 0.0, BER(nil, Bits{1}))
	assert.Equal(t, 0.25, BER(Bits{1, 0, 1, 0}, Bits{1, 1, 1, 0}))
	// only the common prefix counts
	assert.Equal(t, 0.5, BER(Bits{1, 0}, Bits{0, 0, 1, 1, 1}))
	assert.Equal(t, 1, HammingDistance(Bits{1, 0}, Bits{0, 0, 1}))
}

func TestCopy(t *testing.T) {
	a := Bits{1, 0, 1}
	b := a.Copy()
	b[0] = 0
	assert.Equal(t, uint8(1), a[0])
	assert.Nil(t, Bits(nil).Copy())
}
