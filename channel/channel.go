// Package channel models the transmission medium between modulator and demodulator.
package channel

import (
	"math"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/modulation"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

//NoisePower is the noise power giving snrDB against a signal of power signalPower.
func NoisePower(signalPower, snrDB float64) float64 {
	return signalPower / math.Pow(10, snrDB/10)
}

//AWGN adds white gaussian noise to sig at the given SNR, measured against the
// signal's own average power. Real signals get all the noise power on I; complex
// signals get half on each of I and Q. sig is not modified.
func AWGN(sig modulation.Signal, snrDB float64, src rand.Source) modulation.Signal {
	n := sig.Len()
	if n == 0 {
		return modulation.Signal{}
	}

	noisePower := NoisePower(sig.Power(), snrDB)
	σ := math.Sqrt(noisePower)
	if sig.IsComplex() {
		σ = math.Sqrt(noisePower / 2)
	}
	normal := distuv.Normal{Mu: 0, Sigma: σ, Src: src}

	result := modulation.Signal{I: noisy(sig.I, normal)}
	if sig.IsComplex() {
		result.Q = noisy(sig.Q, normal)
	}
	return result
}

func noisy(v *mat.VecDense, normal distuv.Normal) *mat.VecDense {
	result := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		result.SetVec(i, normal.Rand())
	}
	result.AddVec(result, v)
	return result
}

//FlipBits returns a copy of bits with min(count,len(bits)) distinct positions flipped.
func FlipBits(bits bitstream.Bits, count int, rng *rand.Rand) bitstream.Bits {
	output := bits.Copy()
	if count > len(bits) {
		count = len(bits)
	}
	for _, i := range rng.Perm(len(bits))[:count] {
		output[i] ^= 1
	}
	return output
}
