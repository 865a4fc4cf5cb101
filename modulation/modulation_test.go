package modulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBPSK(t *testing.T) {
	var m BPSK
	sig := m.Modulate(bitstream.Bits{1, 0, 1})
	require.Equal(t, 3, sig.Len())
	assert.False(t, sig.IsComplex())
	assert.Equal(t, []complex128{1, -1, 1}, sig.Complex())
	assert.InDelta(t, 1.0, sig.Power(), 1e-12)

	assert.Equal(t, bitstream.Bits{1, 0, 1}, m.Demodulate(sig, 3))
	assert.Equal(t, bitstream.Bits{1, 0}, m.Demodulate(sig, 2))
}

func TestQPSK(t *testing.T) {
	var m QPSK
	sig := m.Modulate(bitstream.Bits{1, 1, 0, 1, 0})
	require.Equal(t, 3, sig.Len(), "odd bit counts are padded")
	assert.True(t, sig.IsComplex())
	assert.InDelta(t, 1.0, sig.Power(), 1e-12)

	s := 1 / math.Sqrt2
	expected := []complex128{complex(s, s), complex(-s, s), complex(-s, -s)}
	for i, c := range sig.Complex() {
		assert.InDelta(t, real(expected[i]), real(c), 1e-12)
		assert.InDelta(t, imag(expected[i]), imag(c), 1e-12)
	}

	assert.Equal(t, bitstream.Bits{1, 1, 0, 1, 0}, m.Demodulate(sig, 5))
	assert.Equal(t, bitstream.Bits{1, 1, 0, 1, 0, 0}, m.Demodulate(sig, 100))
}

func TestRoundTrips(t *testing.T) {
	bits := make(bitstream.Bits, 501)
	for i := range bits {
		bits[i] = uint8(rand.Intn(2))
	}
	for _, s := range Schemes() {
		assert.Equal(t, bits, s.Demodulate(s.Modulate(bits), len(bits)), s.Name())
	}
}

func TestEmpty(t *testing.T) {
	for _, s := range Schemes() {
		sig := s.Modulate(nil)
		assert.Equal(t, 0, sig.Len())
		assert.Equal(t, 0.0, sig.Power())
		assert.Empty(t, s.Demodulate(sig, 0))
	}
}

func TestLookup(t *testing.T) {
	s, err := Lookup("4-QAM")
	require.NoError(t, err)
	assert.Equal(t, "qpsk", s.Name())

	s, err = Lookup("BPSK")
	require.NoError(t, err)
	assert.Equal(t, 1, s.BitsPerSymbol())

	_, err = Lookup("16qam")
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func TestTheoreticalBPSK(t *testing.T) {
	assert.InDelta(t, 0.0786, TheoreticalBPSK(0), 1e-4)
	assert.InDelta(t, 3.87e-6, TheoreticalBPSK(10), 1e-7)
	assert.Greater(t, TheoreticalBPSK(2), TheoreticalBPSK(3))
}

func TestNewSignalCopies(t *testing.T) {
	i := []float64{1, 2}
	sig := NewSignal(i, nil)
	i[0] = 5
	assert.Equal(t, 1.0, sig.I.AtVec(0))
}
