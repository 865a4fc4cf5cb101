package chain

import (
	"errors"

	"github.com/nathanhack/bersim/bitstream"
	"golang.org/x/exp/rand"
)

const printable = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ "

var ErrNoFixedMessage = errors.New("fixed message source without a message")

//MessageSource produces the text fed into the chain: either a fixed message or
// random printable ASCII.
type MessageSource struct {
	Fixed  string
	// Random selects random text even when Fixed is set.
	Random bool
	rng    *rand.Rand
}

//NewRandomSource returns a source of random printable ASCII seeded with seed.
func NewRandomSource(seed uint64) *MessageSource {
	return &MessageSource{Random: true, rng: rand.New(rand.NewSource(seed))}
}

//NewFixedSource returns a source that always yields message.
func NewFixedSource(message string) *MessageSource {
	return &MessageSource{Fixed: message}
}

//Message returns the next message; length only applies to random sources.
func (m *MessageSource) Message(length int) (string, error) {
	if !m.Random {
		if m.Fixed == "" {
			return "", ErrNoFixedMessage
		}
		return m.Fixed, nil
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(0))
	}

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = printable[m.rng.Intn(len(printable))]
	}
	return string(buf), nil
}

//Bits is Message converted to bits.
func (m *MessageSource) Bits(length int) (bitstream.Bits, error) {
	msg, err := m.Message(length)
	if err != nil {
		return nil, err
	}
	return bitstream.FromText(msg), nil
}

//RandomBits returns n uniformly random bits.
func RandomBits(n int, rng *rand.Rand) bitstream.Bits {
	bits := make(bitstream.Bits, n)
	for i := range bits {
		bits[i] = uint8(rng.Intn(2))
	}
	return bits
}
