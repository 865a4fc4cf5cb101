package transmit

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/chain"
	"github.com/nathanhack/bersim/cmd/internal/settings"
	"github.com/nathanhack/bersim/cmd/internal/tools/chart"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/nathanhack/bersim/linecode"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

const (
	chartSymbols = 512
	chartSamples = 64
)

var (
	SNR       float64
	FEC       bool
	Random    uint
	ChartFile string
)

var TransmitRun = func(cmd *cobra.Command, args []string) {
	s := settings.Current()

	source := chain.NewRandomSource(s.Seed)
	if len(args) > 0 {
		source = chain.NewFixedSource(args[0])
	}
	bits, err := source.Bits(int(Random))
	if err != nil {
		fmt.Println(err)
		return
	}

	var fec *hamming.Codec
	if FEC {
		fec = hamming.New()
	}

	results, err := Run(chain.DefaultScenarios(fec), bits, SNR, s.Seed)
	if err != nil {
		fmt.Println(err)
		return
	}
	Report(os.Stdout, results)

	if ChartFile == "" {
		return
	}
	if err := chart.Render(ChartFile, Charts(results)...); err != nil {
		fmt.Println(err)
		return
	}
	logrus.Infof("chart written to %v", ChartFile)
}

//Outcome is the result of one scenario.
type Outcome struct {
	Scenario chain.Scenario
	Result   chain.Result
}

//Run sends bits through every scenario. Scenario i draws its noise from a source
// seeded with seed+i.
func Run(scenarios []chain.Scenario, bits bitstream.Bits, snrDB float64, seed uint64) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenarios))
	for i, sc := range scenarios {
		r, err := sc.Run(bits, snrDB, rand.NewSource(seed+uint64(i)))
		if err != nil {
			return nil, fmt.Errorf("%v: %w", sc.Name(), err)
		}
		outcomes = append(outcomes, Outcome{Scenario: sc, Result: r})
	}
	return outcomes, nil
}

func berColor(ber float64) *color.Color {
	switch {
	case ber == 0:
		return color.New(color.FgGreen)
	case ber < 0.01:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

//Report writes one block per scenario with its error rates and the recovered text.
func Report(w io.Writer, outcomes []Outcome) {
	bold := color.New(color.Bold)
	for _, o := range outcomes {
		r := o.Result
		bold.Fprintf(w, "%v\n", o.Scenario.Name())
		fmt.Fprintf(w, "  channel BER: %v\n", berColor(r.ChannelBER).Sprintf("%.6f", r.ChannelBER))
		if o.Scenario.FEC != nil {
			errors, total := r.ParityErrors()
			fmt.Fprintf(w, "  residual BER: %v (parity errors %v/%v)\n", berColor(r.ResidualBER).Sprintf("%.6f", r.ResidualBER), errors, total)
		}
		fmt.Fprintf(w, "  BER: %v (%v/%v bits)\n", berColor(r.BER).Sprintf("%.6f", r.BER), bitstream.HammingDistance(r.Source, r.Recovered), len(r.Source))

		text, err := bitstream.ToText(r.Recovered)
		if err != nil {
			fmt.Fprintf(w, "  recovered: %v\n", r.Recovered)
			continue
		}
		fmt.Fprintf(w, "  recovered: %q\n", text)
	}
}

//Charts returns the received constellation of every scenario followed by the line
// signals of the first scenario's codeword under each line code.
func Charts(outcomes []Outcome) []components.Charter {
	var charters []components.Charter
	for _, o := range outcomes {
		charters = append(charters, chart.Constellation(o.Scenario.Name(), o.Result.Rx, chartSymbols))
	}
	if len(outcomes) == 0 {
		return charters
	}

	codeword := outcomes[0].Result.Codeword
	if len(codeword) > chartSamples {
		codeword = codeword[:chartSamples]
	}
	names, levels := Waveforms(codeword)
	return append(charters, chart.Waveform("line codes", names, levels, samplesPerBit*chartSamples))
}

//samplesPerBit is the Manchester rate; every other signal holds each level for
// this many samples so all waveforms line up bit for bit.
const samplesPerBit = 2

//Waveforms returns the bits themselves and their line signal under every line code
// (AMI included), sampled samplesPerBit times per bit.
func Waveforms(bits bitstream.Bits) ([]string, [][]float64) {
	names := []string{"bits"}
	levels := [][]float64{hold(linecode.Levels(bits), samplesPerBit)}
	for _, lc := range linecode.Codes() {
		line := linecode.Levels(lc.Encode(bits))
		names = append(names, lc.Name())
		levels = append(levels, hold(line, samplesPerBit*len(bits)/max(len(line), 1)))
	}

	ami := linecode.AMI{}.Encode(bits)
	amiLevels := make([]float64, len(ami))
	for i, v := range ami {
		amiLevels[i] = float64(v)
	}
	names = append(names, linecode.AMI{}.Name())
	levels = append(levels, hold(amiLevels, samplesPerBit))
	return names, levels
}

//hold repeats every level n times.
func hold(levels []float64, n int) []float64 {
	if n <= 1 {
		return levels
	}
	out := make([]float64, 0, n*len(levels))
	for _, l := range levels {
		for i := 0; i < n; i++ {
			out = append(out, l)
		}
	}
	return out
}
