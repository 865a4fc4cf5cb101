// Package chain wires the stages of the communication chain together: optional
// Hamming(7,4) FEC, a line code, a modulation scheme and an AWGN channel.
package chain

import (
	"fmt"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/channel"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/nathanhack/bersim/linecode"
	"github.com/nathanhack/bersim/modulation"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

type Scenario struct {
	LineCode   linecode.Code
	Modulation modulation.Scheme
	// FEC is nil for an uncoded chain.
	FEC *hamming.Codec
}

func (s Scenario) Name() string {
	name := fmt.Sprintf("%v+%v", s.LineCode.Name(), s.Modulation.Name())
	if s.FEC != nil {
		name = "hamming74+" + name
	}
	return name
}

//DefaultScenarios returns every line code paired with every modulation scheme, using
// fec for all of them (nil for uncoded).
func DefaultScenarios(fec *hamming.Codec) []Scenario {
	var scenarios []Scenario
	for _, lc := range linecode.Codes() {
		for _, m := range modulation.Schemes() {
			scenarios = append(scenarios, Scenario{LineCode: lc, Modulation: m, FEC: fec})
		}
	}
	return scenarios
}

//Result holds every intermediate of one pass through the chain.
type Result struct {
	Source     bitstream.Bits    // bits handed to the chain
	Codeword   bitstream.Bits    // after FEC encoding (Source when uncoded)
	Line       bitstream.Bits    // after line coding
	Tx         modulation.Signal // modulated symbols
	Rx         modulation.Signal // symbols after the channel
	RxLine     bitstream.Bits    // demodulated line bits
	RxCodeword bitstream.Bits    // after line decoding
	Corrected  bitstream.Bits    // after FEC correction (RxCodeword when uncoded)
	Recovered  bitstream.Bits    // message bits, trimmed to len(Source)
	// ChannelBER compares Codeword with RxCodeword, ResidualBER compares Codeword
	// with Corrected and BER compares Source with Recovered.
	ChannelBER  float64
	ResidualBER float64
	BER         float64
}

//ParityErrors counts the parity bits of Corrected that differ from Codeword along
// with the number of parity bits compared. Both are 0 for uncoded chains.
func (r Result) ParityErrors() (errors, total int) {
	if len(r.Codeword) == len(r.Source) {
		return 0, 0
	}
	n := len(r.Codeword)
	if len(r.Corrected) < n {
		n = len(r.Corrected)
	}
	for i := 0; i < n; i++ {
		if !hamming.IsParityPosition(i) {
			continue
		}
		total++
		if r.Codeword[i] != r.Corrected[i] {
			errors++
		}
	}
	return
}

//Run sends bits through the chain at snrDB, drawing the channel noise from src.
func (s Scenario) Run(bits bitstream.Bits, snrDB float64, src rand.Source) (Result, error) {
	if err := bitstream.Validate(bits); err != nil {
		return Result{}, err
	}
	r := Result{Source: bits, Codeword: bits}

	var err error
	if s.FEC != nil {
		r.Codeword, err = s.FEC.Encode(bits)
		if err != nil {
			return Result{}, err
		}
	}

	r.Line = s.LineCode.Encode(r.Codeword)
	r.Tx = s.Modulation.Modulate(r.Line)
	r.Rx = channel.AWGN(r.Tx, snrDB, src)
	r.RxLine = s.Modulation.Demodulate(r.Rx, len(r.Line))
	r.RxCodeword = s.LineCode.Decode(r.RxLine)
	r.ChannelBER = bitstream.BER(r.Codeword, r.RxCodeword)

	r.Corrected = r.RxCodeword
	r.Recovered = r.RxCodeword
	if s.FEC != nil {
		r.Corrected, err = s.FEC.Correct(r.RxCodeword)
		if err != nil {
			return Result{}, err
		}
		r.Recovered = hamming.Systematic(r.Corrected)
	}
	r.ResidualBER = bitstream.BER(r.Codeword, r.Corrected)
	if len(r.Recovered) > len(bits) {
		r.Recovered = r.Recovered[:len(bits)]
	}
	r.BER = bitstream.BER(bits, r.Recovered)

	logrus.Debugf("%v @ %vdB: channel BER %v, BER %v", s.Name(), snrDB, r.ChannelBER, r.BER)
	return r, nil
}
