package linearblock

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/nathanhack/bersim/bitstream"
	mat "github.com/nathanhack/sparsemat"
)

func TestOrderUnorderVector(t *testing.T) {
	vec := mat.DOKVec(100)
	columns := make([]int, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		vec.Set(i, rand.Intn(2))
		columns[i] = i
	}

	rand.Shuffle(len(columns), func(i, j int) {
		tmp := columns[i]
		columns[i] = columns[j]
		columns[j] = tmp
	})

	swapped := orderVector(vec, columns)

	actual := unorderVector(swapped, columns)

	if !vec.Equals(actual) {
		t.Fatalf("expected %v but found %v", vec, actual)
	}
}

func TestBitsConversion(t *testing.T) {
	bits := bitstream.Bits{1, 0, 0, 1, 1, 0, 1}
	vec := FromBits(bits)
	if vec.Len() != len(bits) {
		t.Fatalf("expected length %v but found %v", len(bits), vec.Len())
	}

	actual := ToBits(vec)
	if !reflect.DeepEqual(bits, actual) {
		t.Fatalf("expected %v but found %v", bits, actual)
	}
}

func TestLinearBlock(t *testing.T) {
	// the (7,4) Hamming code in systematic form
	l := &LinearBlock{
		H: mat.CSRMat(3, 7,
			0, 1, 1, 1, 1, 0, 0,
			1, 0, 1, 1, 0, 1, 0,
			1, 1, 0, 1, 0, 0, 1,
		),
		Processing: &Systemic{
			G: mat.CSRMat(4, 7,
				1, 0, 0, 0, 0, 1, 1,
				0, 1, 0, 0, 1, 0, 1,
				0, 0, 1, 0, 1, 1, 0,
				0, 0, 0, 1, 1, 1, 1,
			),
		},
	}

	if !l.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
	if l.MessageLength() != 4 || l.CodewordLength() != 7 || l.ParitySymbols() != 3 {
		t.Fatalf("expected (7,4) with 3 parity symbols but found (%v,%v) with %v", l.CodewordLength(), l.MessageLength(), l.ParitySymbols())
	}

	message := mat.CSRVec(4, 1, 0, 1, 0)
	codeword := l.Encode(message)
	expected := mat.CSRVec(7, 1, 0, 1, 0, 1, 0, 1)
	if !codeword.Equals(expected) {
		t.Fatalf("expected %v but found %v", expected, codeword)
	}

	if !l.Syndrome(codeword).IsZero() {
		t.Fatalf("expected zero syndrome but found %v", l.Syndrome(codeword))
	}

	if !l.Decode(codeword).Equals(message) {
		t.Fatalf("expected %v but found %v", message, l.Decode(codeword))
	}

	broken := &LinearBlock{
		H: l.H,
		Processing: &Systemic{
			G: mat.CSRMat(4, 7,
				1, 0, 0, 0, 1, 1, 1,
				0, 1, 0, 0, 1, 0, 1,
				0, 0, 1, 0, 1, 1, 0,
				0, 0, 0, 1, 1, 1, 1,
			),
		},
	}
	if broken.Validate() {
		t.Fatalf("expected invalid linearblock code")
	}
}
