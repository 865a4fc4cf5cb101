package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nathanhack/bersim/cmd/internal/tools"
	"github.com/nathanhack/bersim/modulation"
	"github.com/spf13/cobra"
)

var OutputFile string
var MessageError bool
var ParityError bool
var RawError bool

var ChartRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	// loop through all the results files and collect data needed for displaying
	stats, err := tools.LoadAllResults(args)
	if err != nil {
		fmt.Println(err)
		return
	}

	bar := Results(args, stats, tools.SelectMetric(MessageError, ParityError, RawError))
	if err := Render(OutputFile, bar); err != nil {
		fmt.Println(err)
	}
}

//Render writes the charts as one html page.
func Render(path string, charters ...components.Charter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, charters...)
}

func Write(w io.Writer, charters ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(charters...)
	return page.Render(w)
}

func legend() charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{Show: true,
		Orient: "vertical",
		Right:  "0",
		Top:    "top",
		Type:   "scroll",
	})
}

//Results is a bar chart of the selected metric of each results file per step.
func Results(names []string, stats []*tools.SimulationStats, metric tools.Metric) *charts.Bar {
	xvalues := tools.AllParameters(stats)

	// create a new bar instance
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: "Error Rates",
			Left:     "20%",
		}),
		legend(),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Channel Parameter",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      metric.String(),
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	bar.SetXAxis(axisNames(xvalues))

	for i, s := range stats {
		bar.AddSeries(names[i], barSeries(s, xvalues, metric))
	}
	return bar
}

func axisNames(values []float64) []string {
	strs := make([]string, 0, len(values))
	for _, n := range values {
		strs = append(strs, fmt.Sprint(n))
	}
	return strs
}

func barSeries(stat *tools.SimulationStats, values []float64, metric tools.Metric) []opts.BarData {
	results := make([]opts.BarData, len(values))
	null := opts.BarData{Value: nil}
	for i, v := range values {
		x, has := stat.Stats[v]
		if !has {
			results[i] = null
			continue
		}

		results[i] = opts.BarData{
			Value: metric.Mean(x),
		}
	}
	return results
}

//BERCurves plots the selected metric of each results file against SNR on a log
// axis, with the theoretical uncoded BPSK curve for reference. Zero error rates
// have no place on a log axis and are left out.
func BERCurves(names []string, stats []*tools.SimulationStats, metric tools.Metric) *charts.Line {
	xvalues := tools.AllParameters(stats)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "BER vs SNR",
			Subtitle: metric.String(),
			Left:     "20%",
		}),
		legend(),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "SNR (dB)",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "BER",
			Type:      "log",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	line.SetXAxis(axisNames(xvalues))

	for i, s := range stats {
		data := make([]opts.LineData, len(xvalues))
		for j, v := range xvalues {
			x, has := s.Stats[v]
			if !has || metric.Mean(x) <= 0 {
				data[j] = opts.LineData{Value: nil}
				continue
			}
			data[j] = opts.LineData{Value: metric.Mean(x)}
		}
		line.AddSeries(names[i], data)
	}

	theory := make([]opts.LineData, len(xvalues))
	for j, v := range xvalues {
		theory[j] = opts.LineData{Value: modulation.TheoreticalBPSK(v)}
	}
	line.AddSeries("theoretical bpsk", theory)
	return line
}

//Constellation scatters the received symbols of sig, at most limit of them.
func Constellation(title string, sig modulation.Signal, limit int) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "I", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Q", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	n := sig.Len()
	if limit > 0 && n > limit {
		n = limit
	}
	data := make([]opts.ScatterData, n)
	for i := 0; i < n; i++ {
		s := sig.At(i)
		data[i] = opts.ScatterData{Value: []float64{round(real(s)), round(imag(s))}, SymbolSize: 5}
	}
	scatter.AddSeries(title, data)
	return scatter
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

//Waveform draws line signals sample by sample, at most limit samples each.
func Waveform(title string, names []string, levels [][]float64, limit int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		legend(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sample"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Level"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	longest := 0
	for _, l := range levels {
		if len(l) > longest {
			longest = len(l)
		}
	}
	if limit > 0 && longest > limit {
		longest = limit
	}
	x := make([]string, longest)
	for i := range x {
		x[i] = fmt.Sprint(i)
	}
	line.SetXAxis(x)

	for i, l := range levels {
		data := make([]opts.LineData, 0, longest)
		for j := 0; j < len(l) && j < longest; j++ {
			data = append(data, opts.LineData{Value: l[j]})
		}
		line.AddSeries(names[i], data)
	}
	return line
}
