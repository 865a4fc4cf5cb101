// Package linecode implements the line codes used ahead of the modulator:
// differential (NRZ-I), Manchester and AMI.
package linecode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathanhack/bersim/bitstream"
)

var ErrUnknownCode = errors.New("unknown line code")

//Code is a line code that maps bits to bits.
type Code interface {
	Name() string
	Encode(bits bitstream.Bits) bitstream.Bits
	Decode(line bitstream.Bits) bitstream.Bits
}

var codes = []Code{Differential{}, Manchester{}}

//Codes lists the binary line codes.
func Codes() []Code {
	return append([]Code(nil), codes...)
}

//Lookup finds a binary line code by name, ignoring case.
func Lookup(name string) (Code, error) {
	for _, c := range codes {
		if strings.EqualFold(c.Name(), name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCode, name)
}

//Differential is NRZ-I: the line level toggles on a 1 and holds on a 0. Both ends
// start from level 0.
type Differential struct{}

func (Differential) Name() string { return "differential" }

func (Differential) Encode(bits bitstream.Bits) bitstream.Bits {
	line := make(bitstream.Bits, len(bits))
	state := uint8(0)
	for i, b := range bits {
		if b == 1 {
			state ^= 1
		}
		line[i] = state
	}
	return line
}

func (Differential) Decode(line bitstream.Bits) bitstream.Bits {
	bits := make(bitstream.Bits, len(line))
	last := uint8(0)
	for i, l := range line {
		if l != last {
			bits[i] = 1
		}
		last = l
	}
	return bits
}

//Manchester sends 0 as 01 and 1 as 10.
type Manchester struct{}

func (Manchester) Name() string { return "manchester" }

func (Manchester) Encode(bits bitstream.Bits) bitstream.Bits {
	line := make(bitstream.Bits, 0, 2*len(bits))
	for _, b := range bits {
		if b == 0 {
			line = append(line, 0, 1)
		} else {
			line = append(line, 1, 0)
		}
	}
	return line
}

//Decode reads pairs; a pair that is neither 01 nor 10 (a code violation) and a
// trailing half pair both decode as 0.
func (Manchester) Decode(line bitstream.Bits) bitstream.Bits {
	bits := make(bitstream.Bits, 0, (len(line)+1)/2)
	for i := 0; i < len(line); i += 2 {
		if i+1 < len(line) && line[i] == 1 && line[i+1] == 0 {
			bits = append(bits, 1)
		} else {
			bits = append(bits, 0)
		}
	}
	return bits
}

//AMI (alternate mark inversion) sends 0 as level 0 and each 1 with the opposite
// polarity of the previous 1, starting at +1.
type AMI struct{}

func (AMI) Name() string { return "ami" }

func (AMI) Encode(bits bitstream.Bits) []int8 {
	levels := make([]int8, len(bits))
	last := int8(-1)
	for i, b := range bits {
		if b == 1 {
			last = -last
			levels[i] = last
		}
	}
	return levels
}

func (AMI) Decode(levels []int8) bitstream.Bits {
	bits := make(bitstream.Bits, len(levels))
	for i, l := range levels {
		if l != 0 {
			bits[i] = 1
		}
	}
	return bits
}

//Levels maps a binary line signal to -1/+1 for plotting.
func Levels(line bitstream.Bits) []float64 {
	levels := make([]float64, len(line))
	for i, l := range line {
		levels[i] = 2*float64(l) - 1
	}
	return levels
}
