package chain

import (
	"testing"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/nathanhack/bersim/linecode"
	"github.com/nathanhack/bersim/modulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestDefaultScenarios(t *testing.T) {
	scenarios := DefaultScenarios(nil)
	require.Len(t, scenarios, 4)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"differential+bpsk", "differential+qpsk", "manchester+bpsk", "manchester+qpsk"}, names)

	assert.Equal(t, "hamming74+manchester+qpsk", DefaultScenarios(hamming.New())[3].Name())
}

func TestNoiselessRecovery(t *testing.T) {
	msg := "Teste Integração"
	bits := bitstream.FromText(msg)

	for _, fec := range []*hamming.Codec{nil, hamming.New()} {
		for _, s := range DefaultScenarios(fec) {
			r, err := s.Run(bits, 40, rand.NewSource(1))
			require.NoError(t, err, s.Name())
			assert.Equal(t, 0.0, r.BER, s.Name())
			assert.Equal(t, 0.0, r.ChannelBER, s.Name())
			assert.Equal(t, 0.0, r.ResidualBER, s.Name())

			text, err := bitstream.ToText(r.Recovered)
			require.NoError(t, err, s.Name())
			assert.Equal(t, msg, text, s.Name())
		}
	}
}

func TestResultLengths(t *testing.T) {
	bits := bitstream.Bits{1, 0, 1, 1, 0}
	s := Scenario{LineCode: linecode.Manchester{}, Modulation: modulation.QPSK{}, FEC: hamming.New()}

	r, err := s.Run(bits, 40, rand.NewSource(1))
	require.NoError(t, err)
	assert.Len(t, r.Codeword, 14)
	assert.Len(t, r.Line, 28)
	assert.Equal(t, 14, r.Tx.Len())
	assert.Len(t, r.RxLine, 28)
	assert.Len(t, r.RxCodeword, 14)
	assert.Equal(t, bits, r.Recovered, "the padding nibble is trimmed")
}

func TestRunRejectsInvalidBits(t *testing.T) {
	s := DefaultScenarios(nil)[0]
	_, err := s.Run(bitstream.Bits{0, 2}, 10, rand.NewSource(1))
	require.ErrorIs(t, err, bitstream.ErrInvalidBit)
}

func TestFECLowersBER(t *testing.T) {
	bits := RandomBits(40000, rand.New(rand.NewSource(11)))

	uncoded := Scenario{LineCode: linecode.Manchester{}, Modulation: modulation.BPSK{}}
	coded := uncoded
	coded.FEC = hamming.New()

	u, err := uncoded.Run(bits, 6, rand.NewSource(12))
	require.NoError(t, err)
	c, err := coded.Run(bits, 6, rand.NewSource(12))
	require.NoError(t, err)

	assert.Greater(t, u.BER, 0.0)
	assert.Less(t, c.BER, u.BER)
	assert.Greater(t, c.ChannelBER, c.BER, "the decoder fixes most channel errors")
	assert.Less(t, c.ResidualBER, c.ChannelBER)
	assert.Equal(t, u.ChannelBER, u.ResidualBER)

	errors, total := c.ParityErrors()
	assert.Equal(t, len(c.Codeword)*3/7, total)
	assert.Less(t, errors, total)

	errors, total = u.ParityErrors()
	assert.Zero(t, errors)
	assert.Zero(t, total)
}

func TestMessageSource(t *testing.T) {
	fixed := NewFixedSource("Test")
	msg, err := fixed.Message(100)
	require.NoError(t, err)
	assert.Equal(t, "Test", msg)

	_, err = (&MessageSource{}).Message(3)
	require.ErrorIs(t, err, ErrNoFixedMessage)

	a, _ := NewRandomSource(5).Message(32)
	b, _ := NewRandomSource(5).Message(32)
	assert.Len(t, a, 32)
	assert.Equal(t, a, b, "same seed, same message")
	for _, r := range a {
		assert.Contains(t, printable, string(r))
	}

	bits, err := NewRandomSource(1).Bits(10)
	require.NoError(t, err)
	assert.Len(t, bits, 80)
}
