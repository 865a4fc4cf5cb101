package sweep

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/bersim/benchmarking"
	"github.com/nathanhack/bersim/chain"
	"github.com/nathanhack/bersim/cmd/internal/settings"
	"github.com/nathanhack/bersim/cmd/internal/tools"
	"github.com/nathanhack/bersim/cmd/internal/tools/chart"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const uncoded = "uncoded"

//Defaults of the sweep command: one 50000 bit message per trial from -4 dB to 13 dB.
const (
	DefaultSNRMin  = -4.0
	DefaultSNRMax  = 13.0
	DefaultSNRStep = 1.0
	DefaultBits    = 50000
	DefaultTrials  = 1
)

var (
	SNRMin    float64
	SNRMax    float64
	SNRStep   float64
	Bits      uint
	Trials    uint
	FEC       bool
	ChartFile string
)

var SweepRun = func(cmd *cobra.Command, args []string) {
	s := settings.Current()

	snrs, err := Steps(SNRMin, SNRMax, SNRStep)
	if err != nil {
		fmt.Println(err)
		return
	}

	var fec *hamming.Codec
	if FEC {
		fec = hamming.New()
	}

	ctx, cancel := settings.SignalContext()
	defer cancel()

	cfg := Config{
		SNRs:    snrs,
		Bits:    int(Bits),
		Trials:  int(Trials),
		Threads: s.Threads,
		Seed:    s.Seed,
	}
	names, stats, err := Sweep(ctx, args[0], chain.DefaultScenarios(fec), cfg, true)
	if err != nil {
		fmt.Println(err)
		return
	}

	if ChartFile == "" {
		return
	}
	if err := chart.Render(ChartFile, chart.BERCurves(names, stats, tools.MessageMetric)); err != nil {
		fmt.Println(err)
	}
}

//Steps returns min, min+step, ... up to and including max.
func Steps(min, max, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("snr step must be positive but found %v", step)
	}
	if max < min {
		return nil, fmt.Errorf("snr max (%v) must not be less than snr min (%v)", max, min)
	}

	n := int(math.Floor((max-min)/step+1e-9)) + 1
	steps := make([]float64, n)
	for i := range steps {
		steps[i] = math.Round((min+float64(i)*step)*1e9) / 1e9
	}
	return steps, nil
}

type Config struct {
	SNRs    []float64
	Bits    int
	Trials  int
	Threads int
	Seed    uint64
}

//ResultFile is where the results of scenario are kept inside dir.
func ResultFile(dir string, scenario chain.Scenario) string {
	return filepath.Join(dir, scenario.Name()+".json")
}

func eccInfo(scenario chain.Scenario) string {
	if scenario.FEC == nil {
		return uncoded
	}
	return tools.Md5Sum(scenario.FEC.LinearBlock().H)
}

//Sweep benchmarks every scenario at every SNR of cfg, continuing the results
// already stored in dir. Results are saved as they complete, so an interrupted
// sweep resumes where it stopped.
func Sweep(ctx context.Context, dir string, scenarios []chain.Scenario, cfg Config, showProgress bool) ([]string, []*tools.SimulationStats, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(len(scenarios) * len(cfg.SNRs))
		defer bar.Finish()
	}

	names := make([]string, 0, len(scenarios))
	all := make([]*tools.SimulationStats, 0, len(scenarios))
	for _, sc := range scenarios {
		path := ResultFile(dir, sc)
		data, err := tools.OpenResults(path, "AWGN:"+sc.Name(), eccInfo(sc))
		if err != nil {
			return nil, nil, err
		}

		checkpointMux := sync.Mutex{}
		checkpointCount := 0
		trialsPerSave := cfg.Threads * 10
		if trialsPerSave < 1 {
			trialsPerSave = 1
		}
		for _, snr := range cfg.SNRs {
			select {
			case <-ctx.Done():
				return names, all, tools.SaveResults(path, data)
			default:
			}

			snr := snr
			checkpoint := func(stats benchmarking.Stats) {
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				if checkpointCount%trialsPerSave == 0 {
					data.Stats[snr] = stats
					if err := tools.SaveResults(path, data); err != nil {
						logrus.Error(err)
					}
				}
				checkpointCount++
			}

			stats, err := benchmarking.BenchmarkChainContinueStats(ctx, cfg.Trials, cfg.Threads, sc, cfg.Bits, snr, cfg.Seed, checkpoint, data.Stats[snr], false)
			if err != nil {
				return nil, nil, fmt.Errorf("%v at %v dB: %w", sc.Name(), snr, err)
			}
			data.Stats[snr] = stats

			logrus.WithFields(logrus.Fields{
				"scenario": sc.Name(),
				"snr":      snr,
				"trials":   stats.ChannelMessageError.Count,
				"ber":      stats.ChannelMessageError.Mean,
			}).Debug("sweep step done")
			if showProgress {
				bar.Increment()
			}
		}

		if err := tools.SaveResults(path, data); err != nil {
			return nil, nil, err
		}
		names = append(names, sc.Name())
		all = append(all, data)
	}
	return names, all, nil
}
