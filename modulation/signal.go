package modulation

import (
	"gonum.org/v1/gonum/mat"
)

//Signal is a block of baseband symbols. I holds the in-phase components and Q the
// quadrature components; Q is nil for real-valued signals such as BPSK. An empty
// signal has a nil I.
type Signal struct {
	I *mat.VecDense
	Q *mat.VecDense
}

//NewSignal copies the components into a Signal. q may be nil.
func NewSignal(i, q []float64) Signal {
	if len(i) == 0 {
		return Signal{}
	}
	if q != nil && len(q) != len(i) {
		panic("in-phase and quadrature lengths must match")
	}

	s := Signal{I: mat.NewVecDense(len(i), append([]float64(nil), i...))}
	if q != nil {
		s.Q = mat.NewVecDense(len(q), append([]float64(nil), q...))
	}
	return s
}

//Len is the number of symbols.
func (s Signal) Len() int {
	if s.I == nil {
		return 0
	}
	return s.I.Len()
}

//IsComplex reports whether the signal carries a quadrature component.
func (s Signal) IsComplex() bool {
	return s.Q != nil
}

//Power is the mean of |s|^2 over the symbols.
func (s Signal) Power() float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	p := mat.Dot(s.I, s.I)
	if s.Q != nil {
		p += mat.Dot(s.Q, s.Q)
	}
	return p / float64(n)
}

//At returns symbol i as a complex number.
func (s Signal) At(i int) complex128 {
	q := 0.0
	if s.Q != nil {
		q = s.Q.AtVec(i)
	}
	return complex(s.I.AtVec(i), q)
}

//Complex returns the symbols as complex numbers.
func (s Signal) Complex() []complex128 {
	out := make([]complex128, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}
