package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	received, err := bitstream.Parse("1010111 0001111 01")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Decode(context.Background(), &out, hamming.New(), received, DecodeOptions{}))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "corrected: 10101010001111", lines[1])
	assert.Equal(t, "                ^", strings.TrimRight(lines[2], " "))
	assert.Equal(t, "fixed 1 bit(s) in 2 block(s)", lines[3])
	assert.Equal(t, "message:   10100001", lines[4])
}

func TestDecodeText(t *testing.T) {
	c := hamming.New()
	codeword, _ := c.Encode(bitstream.FromText("Hi"))
	codeword[3] ^= 1

	var out bytes.Buffer
	require.NoError(t, Decode(context.Background(), &out, c, codeword, DecodeOptions{AsText: true}))
	assert.Contains(t, out.String(), `message:   "Hi"`)
}

func TestDecodeParallel(t *testing.T) {
	c := hamming.New()
	data := bitstream.FromText(strings.Repeat("parallel blocks ", 2048))
	codeword, _ := c.Encode(data)
	for b := 0; b < len(codeword)/hamming.CodewordLength; b += 3 {
		codeword[b*hamming.CodewordLength+b%hamming.CodewordLength] ^= 1
	}

	var sequential, parallel bytes.Buffer
	require.NoError(t, Decode(context.Background(), &sequential, c, codeword, DecodeOptions{AsText: true}))
	require.NoError(t, Decode(context.Background(), &parallel, c, codeword, DecodeOptions{AsText: true, Parallel: true, Threads: 3}))
	assert.Equal(t, sequential.String(), parallel.String())
	assert.Contains(t, parallel.String(), `message:   "parallel blocks parallel`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Decode(ctx, &parallel, c, codeword, DecodeOptions{Parallel: true, Threads: 2}), context.Canceled)
}

func TestDecodeTextNotAligned(t *testing.T) {
	var out bytes.Buffer
	err := Decode(context.Background(), &out, hamming.New(), bitstream.Bits{1, 0, 1, 0, 1, 0, 1}, DecodeOptions{AsText: true})
	assert.ErrorIs(t, err, bitstream.ErrNotByteAligned)
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	Table(&out, hamming.New())
	assert.Contains(t, out.String(), "  0111100\n")
	assert.Contains(t, out.String(), "  000 -> none\n")
	assert.Contains(t, out.String(), "  011 -> 0\n")
	assert.Contains(t, out.String(), "  001 -> 6\n")
}

func TestExport(t *testing.T) {
	bs, err := json.Marshal(NewExport(hamming.New()))
	require.NoError(t, err)

	var e Export
	require.NoError(t, json.Unmarshal(bs, &e))
	assert.Equal(t, 4, e.MessageLength)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 1, 1}, e.G[0])
	assert.Equal(t, []int{-1, 6, 5, 0, 4, 1, 2, 3}, e.SyndromeTable)
}
