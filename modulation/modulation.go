// Package modulation maps bits to baseband symbols and back with hard decisions.
package modulation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nathanhack/bersim/bitstream"
)

var ErrUnknownScheme = errors.New("unknown modulation scheme")

//Scheme is a digital modulation with a hard decision demodulator.
type Scheme interface {
	Name() string
	BitsPerSymbol() int
	Modulate(bits bitstream.Bits) Signal
	//Demodulate returns at most n bits, dropping any padding Modulate added.
	Demodulate(sig Signal, n int) bitstream.Bits
}

var schemes = []Scheme{BPSK{}, QPSK{}}

func Schemes() []Scheme {
	return append([]Scheme(nil), schemes...)
}

//Lookup finds a scheme by name, ignoring case. "4qam" is accepted for QPSK.
func Lookup(name string) (Scheme, error) {
	if strings.EqualFold(name, "4qam") || strings.EqualFold(name, "4-qam") {
		return QPSK{}, nil
	}
	for _, s := range schemes {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownScheme, name)
}

//BPSK sends 0 as -1 and 1 as +1.
type BPSK struct{}

func (BPSK) Name() string       { return "bpsk" }
func (BPSK) BitsPerSymbol() int { return 1 }

func (BPSK) Modulate(bits bitstream.Bits) Signal {
	i := make([]float64, len(bits))
	for k, b := range bits {
		i[k] = 2*float64(b) - 1
	}
	return NewSignal(i, nil)
}

//Demodulate decides 1 when the in-phase component is positive.
func (BPSK) Demodulate(sig Signal, n int) bitstream.Bits {
	if n > sig.Len() {
		n = sig.Len()
	}
	bits := make(bitstream.Bits, n)
	for k := range bits {
		if sig.I.AtVec(k) > 0 {
			bits[k] = 1
		}
	}
	return bits
}

//QPSK (4-QAM) sends bit pairs as (I, Q) with 1 as +1 and 0 as -1 on each axis,
// scaled by 1/sqrt(2) for unit symbol energy. An odd bit count is padded with a 0.
type QPSK struct{}

func (QPSK) Name() string       { return "qpsk" }
func (QPSK) BitsPerSymbol() int { return 2 }

func (QPSK) Modulate(bits bitstream.Bits) Signal {
	symbols := (len(bits) + 1) / 2
	i := make([]float64, symbols)
	q := make([]float64, symbols)
	for k := 0; k < symbols; k++ {
		i[k] = (2*float64(bits[2*k]) - 1) / math.Sqrt2
		qb := uint8(0)
		if 2*k+1 < len(bits) {
			qb = bits[2*k+1]
		}
		q[k] = (2*float64(qb) - 1) / math.Sqrt2
	}
	return NewSignal(i, q)
}

//Demodulate decides each axis independently and interleaves the bits as I0 Q0 I1 Q1...
func (QPSK) Demodulate(sig Signal, n int) bitstream.Bits {
	bits := make(bitstream.Bits, 0, 2*sig.Len())
	for k := 0; k < sig.Len(); k++ {
		c := sig.At(k)
		bits = append(bits, decide(real(c)), decide(imag(c)))
	}
	if n < len(bits) {
		bits = bits[:n]
	}
	return bits
}

func decide(v float64) uint8 {
	if v > 0 {
		return 1
	}
	return 0
}

//TheoreticalBPSK is the BPSK (and Gray coded QPSK) bit error probability
// 0.5*erfc(sqrt(Eb/N0)), with the SNR in dB taken as Eb/N0.
func TheoreticalBPSK(snrDB float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(math.Pow(10, snrDB/10)))
}
