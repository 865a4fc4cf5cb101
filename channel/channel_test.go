package channel

import (
	"math"
	"testing"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/modulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNoisePower(t *testing.T) {
	assert.InDelta(t, 1.0, NoisePower(1, 0), 1e-12)
	assert.InDelta(t, 0.1, NoisePower(1, 10), 1e-12)
	assert.InDelta(t, 0.5, NoisePower(0.05, -10), 1e-12)
}

func measuredNoise(tx, rx modulation.Signal) (iPower, qPower float64) {
	for k := 0; k < tx.Len(); k++ {
		d := rx.At(k) - tx.At(k)
		iPower += real(d) * real(d)
		qPower += imag(d) * imag(d)
	}
	return iPower / float64(tx.Len()), qPower / float64(tx.Len())
}

func TestAWGNReal(t *testing.T) {
	bits := make(bitstream.Bits, 20000)
	tx := modulation.BPSK{}.Modulate(bits)
	rx := AWGN(tx, 3, rand.NewSource(1))

	require.Equal(t, tx.Len(), rx.Len())
	assert.False(t, rx.IsComplex())

	iPower, qPower := measuredNoise(tx, rx)
	assert.InDelta(t, NoisePower(1, 3), iPower, 0.02)
	assert.Equal(t, 0.0, qPower)

	// the input is left alone
	assert.Equal(t, -1.0, tx.I.AtVec(0))
}

func TestAWGNComplex(t *testing.T) {
	bits := make(bitstream.Bits, 40000)
	tx := modulation.QPSK{}.Modulate(bits)
	rx := AWGN(tx, 0, rand.NewSource(2))

	require.True(t, rx.IsComplex())
	iPower, qPower := measuredNoise(tx, rx)
	assert.InDelta(t, 0.5, iPower, 0.02)
	assert.InDelta(t, 0.5, qPower, 0.02)
}

func TestAWGNBitErrorRate(t *testing.T) {
	bits := make(bitstream.Bits, 200000)
	rng := rand.New(rand.NewSource(3))
	for i := range bits {
		bits[i] = uint8(rng.Intn(2))
	}
	m := modulation.BPSK{}
	rx := AWGN(m.Modulate(bits), 4, rand.NewSource(4))
	ber := bitstream.BER(bits, m.Demodulate(rx, len(bits)))

	// the noise is measured against symbol power, so BER = Q(sqrt(snr))
	expected := 0.5 * math.Erfc(math.Sqrt(math.Pow(10, 0.4)/2))
	assert.InDelta(t, expected, ber, 0.003)
}

func TestAWGNEmpty(t *testing.T) {
	rx := AWGN(modulation.Signal{}, 10, rand.NewSource(1))
	assert.Equal(t, 0, rx.Len())
}

func TestAWGNDeterministic(t *testing.T) {
	tx := modulation.BPSK{}.Modulate(bitstream.Bits{1, 0, 1, 1})
	a := AWGN(tx, 5, rand.NewSource(7))
	b := AWGN(tx, 5, rand.NewSource(7))
	assert.Equal(t, a.Complex(), b.Complex())
}

func TestFlipBits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bits := make(bitstream.Bits, 10)

	flipped := FlipBits(bits, 3, rng)
	assert.Equal(t, 3, bitstream.HammingDistance(bits, flipped))
	assert.Equal(t, bitstream.Bits(make(bitstream.Bits, 10)), bits)

	all := FlipBits(bits, 50, rng)
	assert.Equal(t, 10, bitstream.HammingDistance(bits, all))
}
