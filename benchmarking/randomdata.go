package benchmarking

import (
	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/rand"
)

// RandomMessage creates a random message of length len.
func RandomMessage(len int, rng *rand.Rand) mat.SparseVector {
	message := mat.CSRVec(len)
	for i := 0; i < len; i++ {
		message.Set(i, rng.Intn(2))
	}
	return message
}

// RandomFlipBitCount randomly flips min(numberOfBitsToFlip,len(input)) number of bits.
func RandomFlipBitCount(input mat.SparseVector, numberOfBitsToFlip int, rng *rand.Rand) mat.SparseVector {
	output := mat.CSRVecCopy(input)

	flip := make(map[int]bool)
	for len(flip) < numberOfBitsToFlip && len(flip) < input.Len() {
		flip[rng.Intn(input.Len())] = true
	}

	for i := range flip {
		output.Set(i, output.At(i)+1)
	}
	return output
}

// RandomFlipBitProbability flips each bit of input independently with probability
// crossoverProbability, as a binary symmetric channel does.
func RandomFlipBitProbability(input mat.SparseVector, crossoverProbability float64, rng *rand.Rand) mat.SparseVector {
	output := mat.CSRVecCopy(input)
	for i := 0; i < input.Len(); i++ {
		if rng.Float64() < crossoverProbability {
			output.Set(i, output.At(i)+1)
		}
	}
	return output
}
