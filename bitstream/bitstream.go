// Package bitstream holds the flat bit sequences that flow between the stages of
// the communication chain.
package bitstream

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidBit      = errors.New("bit values must be 0 or 1")
	ErrNotByteAligned  = errors.New("bit count must be a multiple of 8")
	ErrInvalidBitInput = errors.New("bit strings may only contain '0' and '1'")
)

//Bits is an ordered sequence of 0/1 values.
type Bits []uint8

//Validate returns an ErrInvalidBit wrapped error naming the first value outside {0,1}.
func Validate(bits Bits) error {
	for i, b := range bits {
		if b > 1 {
			return fmt.Errorf("%w: found %v at index %v", ErrInvalidBit, b, i)
		}
	}
	return nil
}

//FromText unpacks the UTF-8 bytes of s, most significant bit first.
func FromText(s string) Bits {
	return FromBytes([]byte(s))
}

func FromBytes(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

//ToBytes packs bits MSB first. The length must be a multiple of 8.
func ToBytes(bits Bits) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: found %v bits", ErrNotByteAligned, len(bits))
	}
	if err := Validate(bits); err != nil {
		return nil, err
	}

	data := make([]byte, len(bits)/8)
	for i := range data {
		var b byte
		for _, bit := range bits[i*8 : i*8+8] {
			b = b<<1 | bit
		}
		data[i] = b
	}
	return data, nil
}

//ToText packs bits into bytes and decodes them as UTF-8, replacing every invalid
// byte with its own unicode replacement character.
func ToText(bits Bits) (string, error) {
	data, err := ToBytes(bits)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	var sb strings.Builder
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		sb.WriteRune(r)
		data = data[size:]
	}
	return sb.String(), nil
}

//Parse reads a string of '0' and '1' characters. Whitespace, commas, and
// underscores are ignored so "1010 1010" and "1,0,1,0" both work.
func Parse(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		case ' ', '\t', '\n', ',', '_':
		default:
			return nil, fmt.Errorf("%w: found %q at offset %v", ErrInvalidBitInput, r, i)
		}
	}
	return bits, nil
}

func (b Bits) String() string {
	buf := strings.Builder{}
	buf.Grow(len(b))
	for _, bit := range b {
		buf.WriteByte('0' + bit)
	}
	return buf.String()
}

//Copy returns an independent copy of b.
func (b Bits) Copy() Bits {
	if b == nil {
		return nil
	}
	result := make(Bits, len(b))
	copy(result, b)
	return result
}

//HammingDistance counts the differing bits over the common prefix of a and b.
func HammingDistance(a, b Bits) int {
	min := len(a)
	if len(b) < min {
		min = len(b)
	}

	count := 0
	for i := 0; i < min; i++ {
		if a[i] != b[i] {
			count++
		}
	}
	return count
}

//BER is the fraction of differing bits over the common prefix of sent and received.
func BER(sent, received Bits) float64 {
	min := len(sent)
	if len(received) < min {
		min = len(received)
	}
	if min == 0 {
		return 0
	}
	return float64(HammingDistance(sent, received)) / float64(min)
}
