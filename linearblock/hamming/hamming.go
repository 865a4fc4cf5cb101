package hamming

import (
	"fmt"
	"math/bits"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/linearblock"
	"github.com/nathanhack/bersim/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

const (
	MessageLength  = 4
	CodewordLength = 7
	ParitySymbols  = CodewordLength - MessageLength

	noError = -1
)

//Generator is a systematic generator matrix [I_4 | P].
type Generator [MessageLength][CodewordLength]uint8

//ParityCheck is a parity-check matrix; each row is one parity equation.
type ParityCheck [ParitySymbols][CodewordLength]uint8

//SyndromeTable maps a syndrome value to the codeword position a single error
// at that position produces, or -1 for the all-zero syndrome.
type SyndromeTable [1 << ParitySymbols]int

var generator = Generator{
	{1, 0, 0, 0, 0, 1, 1},
	{0, 1, 0, 0, 1, 0, 1},
	{0, 0, 1, 0, 1, 1, 0},
	{0, 0, 0, 1, 1, 1, 1},
}

var parityCheck = ParityCheck{
	{0, 1, 1, 1, 1, 0, 0},
	{1, 0, 1, 1, 0, 1, 0},
	{1, 1, 0, 1, 0, 0, 1},
}

//Codec is the systematic (7,4) Hamming code. It corrects any single bit error in a
// 7 bit block. Two or more errors in one block are not detected and may be
// miscorrected into a different codeword; the decoder gives no signal either way.
//
// A Codec holds no per-call state and is safe for concurrent use.
type Codec struct {
	g        Generator
	h        ParityCheck
	gColumns [CodewordLength]uint8 // column j of G as a mask over the message bits
	hRows    [ParitySymbols]uint8  // row r of H as a mask over the codeword bits
	table    SyndromeTable
}

//New builds the codec. It panics if the fixed matrices are inconsistent, which is
// a programming error and not something a caller can recover from.
func New() *Codec {
	c := &Codec{
		g: generator,
		h: parityCheck,
	}

	for j := 0; j < CodewordLength; j++ {
		for m := 0; m < MessageLength; m++ {
			c.gColumns[j] |= c.g[m][j] << m
		}
	}
	for r := 0; r < ParitySymbols; r++ {
		for j := 0; j < CodewordLength; j++ {
			c.hRows[r] |= c.h[r][j] << j
		}
	}

	lb := c.LinearBlock()
	if !lb.Validate() {
		panic("hamming: G*H.T != 0 for the (7,4) matrices")
	}
	if !internal.ValidateSingleErrorColumns(lb.H) {
		panic("hamming: H columns must be distinct and nonzero")
	}

	for s := range c.table {
		c.table[s] = noError
	}
	for j := 0; j < CodewordLength; j++ {
		c.table[c.columnSyndrome(j)] = j
	}

	logrus.Debugf("Hamming(%v,%v) codec ready", CodewordLength, MessageLength)
	return c
}

//columnSyndrome reads column j of H as a number, row 0 being the most significant bit.
func (c *Codec) columnSyndrome(j int) uint8 {
	var s uint8
	for r := 0; r < ParitySymbols; r++ {
		s = s<<1 | c.h[r][j]
	}
	return s
}

func (c *Codec) G() Generator {
	return c.g
}

func (c *Codec) H() ParityCheck {
	return c.h
}

func (c *Codec) SyndromeTable() SyndromeTable {
	return c.table
}

func (c *Codec) CodeRate() float64 {
	return float64(MessageLength) / float64(CodewordLength)
}

//LinearBlock returns the same code as sparse matrices with the identity column order.
func (c *Codec) LinearBlock() *linearblock.LinearBlock {
	hValues := make([]int, 0, ParitySymbols*CodewordLength)
	for _, row := range c.h {
		for _, v := range row {
			hValues = append(hValues, int(v))
		}
	}
	gValues := make([]int, 0, MessageLength*CodewordLength)
	for _, row := range c.g {
		for _, v := range row {
			gValues = append(gValues, int(v))
		}
	}

	order := make([]int, CodewordLength)
	for i := range order {
		order[i] = i
	}
	return &linearblock.LinearBlock{
		H: mat.CSRMat(ParitySymbols, CodewordLength, hValues...),
		Processing: &linearblock.Systemic{
			HColumnOrder: order,
			G:            mat.CSRMat(MessageLength, CodewordLength, gValues...),
		},
	}
}

func parity(x uint8) uint8 {
	return uint8(bits.OnesCount8(x) & 1)
}

func pack(block []uint8) (packed uint8) {
	for i, b := range block {
		packed |= b << i
	}
	return
}

func (c *Codec) encodeBlock(message uint8, out []uint8) {
	for j := 0; j < CodewordLength; j++ {
		out[j] = parity(message & c.gColumns[j])
	}
}

func (c *Codec) syndrome(codeword uint8) uint8 {
	var s uint8
	for r := 0; r < ParitySymbols; r++ {
		s = s<<1 | parity(codeword&c.hRows[r])
	}
	return s
}

//Syndrome returns block*H.T as a number, row 0 of H being the most significant bit.
func (c *Codec) Syndrome(block [CodewordLength]uint8) uint8 {
	return c.syndrome(pack(block[:]))
}

//correctBlock fixes at most one bit of block in place.
func (c *Codec) correctBlock(block []uint8) {
	s := c.syndrome(pack(block))
	if s == 0 {
		return
	}
	pos := c.table[s]
	if pos == noError {
		panic(fmt.Sprintf("hamming: syndrome %03b missing from the syndrome table", s))
	}
	block[pos] ^= 1
}

//EncodedLength is the codeword stream length for a message of n bits.
func EncodedLength(n int) int {
	return (n + MessageLength - 1) / MessageLength * CodewordLength
}

//DecodedLength is the message length recovered from a stream of n bits.
func DecodedLength(n int) int {
	return n / CodewordLength * MessageLength
}

//Encode pads data with zeros to a multiple of 4 bits and encodes each 4 bit block
// into a 7 bit codeword. The number of pad bits is not recorded; callers needing the
// original length back must track it themselves.
func (c *Codec) Encode(data bitstream.Bits) (bitstream.Bits, error) {
	if err := bitstream.Validate(data); err != nil {
		return nil, err
	}
	codeword := make(bitstream.Bits, EncodedLength(len(data)))
	c.encodeRange(data, codeword, 0, len(codeword)/CodewordLength)
	return codeword, nil
}

//encodeRange encodes blocks [from,to) of data into codeword.
func (c *Codec) encodeRange(data, codeword bitstream.Bits, from, to int) {
	var block [MessageLength]uint8
	for b := from; b < to; b++ {
		start := b * MessageLength
		end := start + MessageLength
		if end > len(data) {
			block = [MessageLength]uint8{}
			copy(block[:], data[start:])
		} else {
			copy(block[:], data[start:end])
		}
		c.encodeBlock(pack(block[:]), codeword[b*CodewordLength:(b+1)*CodewordLength])
	}
}

//Decode corrects each complete 7 bit block and returns its first 4 bits. Trailing
// bits that do not fill a block are dropped.
func (c *Codec) Decode(received bitstream.Bits) (bitstream.Bits, error) {
	if err := bitstream.Validate(received); err != nil {
		return nil, err
	}
	message := make(bitstream.Bits, DecodedLength(len(received)))
	c.decodeRange(received, message, nil, 0, len(message)/MessageLength)
	return message, nil
}

//Correct is Decode without dropping the parity bits: it returns the corrected
// codewords of every complete block.
func (c *Codec) Correct(received bitstream.Bits) (bitstream.Bits, error) {
	if err := bitstream.Validate(received); err != nil {
		return nil, err
	}
	blocks := len(received) / CodewordLength
	corrected := make(bitstream.Bits, blocks*CodewordLength)
	c.decodeRange(received, nil, corrected, 0, blocks)
	return corrected, nil
}

//decodeRange corrects blocks [from,to) of received, writing the message bits to
// message and the corrected codewords to corrected when they are non-nil.
func (c *Codec) decodeRange(received, message, corrected bitstream.Bits, from, to int) {
	var block [CodewordLength]uint8
	for b := from; b < to; b++ {
		copy(block[:], received[b*CodewordLength:(b+1)*CodewordLength])
		c.correctBlock(block[:])
		if message != nil {
			copy(message[b*MessageLength:(b+1)*MessageLength], block[:MessageLength])
		}
		if corrected != nil {
			copy(corrected[b*CodewordLength:(b+1)*CodewordLength], block[:])
		}
	}
}

//Systematic returns the message part (the first 4 bits) of every complete codeword
// in codewords without correcting anything.
func Systematic(codewords bitstream.Bits) bitstream.Bits {
	blocks := len(codewords) / CodewordLength
	message := make(bitstream.Bits, blocks*MessageLength)
	for b := 0; b < blocks; b++ {
		copy(message[b*MessageLength:(b+1)*MessageLength], codewords[b*CodewordLength:])
	}
	return message
}

//IsParityPosition reports whether bit i of a codeword stream is a parity bit.
func IsParityPosition(i int) bool {
	return i%CodewordLength >= MessageLength
}
