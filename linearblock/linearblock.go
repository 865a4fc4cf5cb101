package linearblock

import (
	"fmt"
	"strings"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

type Systemic struct {
	HColumnOrder []int
	G            mat.SparseMat
}

//LinearBlock contains matrices for the original H matrix and the systemic G generator.
// It is the sparse reference form of a block code; the fixed (7,4) codec in the hamming
// package builds one to validate its matrices and to drive the BSC benchmarks.
type LinearBlock struct {
	H          mat.SparseMat //the original H(parity) matrix
	Processing *Systemic     // contains systemic generator matrix
}

//Encode take in a message and encodes it using the linear block, returning a codeword
func (l *LinearBlock) Encode(message mat.SparseVector) (codeword mat.SparseVector) {
	G := l.Processing.G
	rows, cols := G.Dims()
	if message.Len() != rows {
		panic(fmt.Sprintf("message length == %v is required but found %v", rows, message.Len()))
	}

	codeword = mat.DOKVec(cols)
	codeword.MulMat(message, G)

	return unorderVector(codeword, l.Processing.HColumnOrder)
}

func unorderVector(codeword mat.SparseVector, ordering []int) mat.SparseVector {
	if len(ordering) > 0 && codeword.Len() != len(ordering) {
		panic("vector length must equal ordering length")
	}
	if len(ordering) == 0 {
		return codeword
	}
	result := mat.DOKVec(codeword.Len())

	for c, c1 := range ordering {
		result.Set(c1, codeword.At(c))
	}

	return result
}

func orderVector(codeword mat.SparseVector, ordering []int) mat.SparseVector {
	if len(ordering) > 0 && codeword.Len() != len(ordering) {
		panic("vector length must equal ordering length")
	}
	if len(ordering) == 0 {
		return codeword
	}
	result := mat.DOKVec(codeword.Len())

	for c, c1 := range ordering {
		result.Set(c, codeword.At(c1))
	}

	return result
}

//Decode takes in a codeword and returns the message contained in it. No correction is
// attempted; repair the codeword first.
func (l *LinearBlock) Decode(codeword mat.SparseVector) (message mat.SparseVector) {
	if codeword.Len() != l.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", l.CodewordLength(), codeword.Len()))
	}

	ml := l.MessageLength()

	codeword = orderVector(codeword, l.Processing.HColumnOrder)
	return codeword.Slice(0, ml)
}

func (l *LinearBlock) Syndrome(codeword mat.SparseVector) (syndrome mat.SparseVector) {
	syndrome = mat.CSRVec(l.ParitySymbols())
	syndrome.MatMul(l.H, codeword)
	return
}

func (l *LinearBlock) MessageLength() int {
	k, _ := l.Processing.G.Dims()
	return k
}
func (l *LinearBlock) ParitySymbols() int {
	m, _ := l.H.Dims()
	return m
}
func (l *LinearBlock) CodewordLength() int {
	_, n := l.H.Dims()
	return n
}
func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

//Validate will test if this linearblock satisfies G*H.T=0, where G is the generator matrix and H.T is the transpose of H
func (l *LinearBlock) Validate() bool {
	H := l.H
	if len(l.Processing.HColumnOrder) > 0 {
		H = internal.ColumnSwapped(l.H, l.Processing.HColumnOrder)
	}
	return internal.ValidateHGMatrices(l.Processing.G, H)
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nH:\n")
	buf.WriteString(l.H.String())
	buf.WriteString(fmt.Sprintf("Order: %v", l.Processing.HColumnOrder))
	buf.WriteString("\nG:\n")
	buf.WriteString(l.Processing.G.String())
	buf.WriteString("\n}\n")
	return buf.String()
}

//FromBits copies a bit sequence into a sparse vector.
func FromBits(bits bitstream.Bits) mat.SparseVector {
	vec := mat.CSRVec(len(bits))
	for i, b := range bits {
		if b > 0 {
			vec.Set(i, 1)
		}
	}
	return vec
}

//ToBits copies a sparse vector into a bit sequence.
func ToBits(vec mat.SparseVector) bitstream.Bits {
	bits := make(bitstream.Bits, vec.Len())
	for i := range bits {
		bits[i] = uint8(vec.At(i) & 1)
	}
	return bits
}
