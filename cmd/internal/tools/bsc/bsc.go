package bsc

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/bersim/benchmarking"
	"github.com/nathanhack/bersim/cmd/internal/settings"
	"github.com/nathanhack/bersim/cmd/internal/tools"
	"github.com/nathanhack/bersim/linearblock"
	"github.com/nathanhack/bersim/linearblock/hamming"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

const (
	typeInfo      = "BSC:hamming74/syndrome"
	exactTypeInfo = typeInfo + "/exact"
)

var (
	Trials           uint
	ErrorProbability []float64
	Exact            bool
)

//ValidateProbabilities rejects crossover probabilities outside [0, 1].
func ValidateProbabilities(probabilities []float64) error {
	if len(probabilities) == 0 {
		return fmt.Errorf("requires at least one crossover probability")
	}
	for _, p := range probabilities {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("crossover probability must be in [0, 1] but found %v", p)
		}
	}
	return nil
}

//TypeInfo names the kind of run stored in a results file.
func TypeInfo(exact bool) string {
	if exact {
		return exactTypeInfo
	}
	return typeInfo
}

var BscRun = func(cmd *cobra.Command, args []string) {
	if err := ValidateProbabilities(ErrorProbability); err != nil {
		fmt.Println(err)
		return
	}

	s := settings.Current()
	codec := hamming.New()
	l := codec.LinearBlock()

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
	data, err := tools.OpenResults(args[0], TypeInfo(Exact), tools.Md5Sum(l.H))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, cancel := settings.SignalContext()
	defer cancel()

	runSimulation(ctx, data, codec, s, args[0])

	err = tools.SaveResults(args[0], data)
	if err != nil {
		fmt.Println(err)
	}
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, codec *hamming.Codec, s settings.Settings, outputFilename string) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0
	trialsPerIter := s.Threads * 10

	bar := pb.StartNew(len(ErrorProbability))
	for _, p := range ErrorProbability {
		select {
		case <-ctx.Done():
			bar.Finish()
			return
		default:
		}

		p := p
		checkpoint := func(stats benchmarking.Stats) {
			//we want to save the checkpoint
			checkpointMux.Lock()
			defer checkpointMux.Unlock()

			if checkpointCount%trialsPerIter == 0 {
				data.Stats[p] = stats
				err := tools.SaveResults(outputFilename, data)
				if err != nil {
					logrus.Error(err)
				}
			}
			checkpointCount++
		}
		data.Stats[p] = RunBSC(ctx, codec, p, Exact, int(Trials), s.Threads, s.Seed, data.Stats[p], checkpoint, false)
		logrus.Debugf("p=%v %v", p, data.Stats[p])
		bar.Increment()
	}
	bar.Finish()
}

//RunBSC sends one random message per trial through a binary symmetric channel with
// the given crossover probability and repairs it with the syndrome decoder. When exact
// is set every codeword gets exactly int(p*7) flipped bits instead of independent flips.
func RunBSC(ctx context.Context,
	codec *hamming.Codec,
	crossoverProbability float64, exact bool, trials, threads int,
	seed uint64,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgress bool) benchmarking.Stats {
	l := codec.LinearBlock()

	createMessage := func(trial int) mat.SparseVector {
		return benchmarking.RandomMessage(l.MessageLength(), rand.New(rand.NewSource(benchmarking.ChainTrialSeed(seed, trial))))
	}

	encode := func(message mat.SparseVector) (codeword mat.SparseVector) {
		return l.Encode(message)
	}

	channel := func(trial int, originalCodeword mat.SparseVector) (erroredCodeword mat.SparseVector) {
		rng := rand.New(rand.NewSource(benchmarking.ChainTrialSeed(seed, trial) + 1))
		if exact {
			count := int(crossoverProbability * float64(originalCodeword.Len()))
			return benchmarking.RandomFlipBitCount(originalCodeword, count, rng)
		}
		return benchmarking.RandomFlipBitProbability(originalCodeword, crossoverProbability, rng)
	}

	repair := func(originalCodeword, channelInducedCodeword mat.SparseVector) (fixedChannelInducedCodeword mat.SparseVector) {
		corrected, err := codec.Correct(linearblock.ToBits(channelInducedCodeword))
		if err != nil {
			//sparse vectors only hold 0 and 1
			panic(err)
		}
		return linearblock.FromBits(corrected)
	}

	metrics := func(originalMessage, originalCodeword, channelInducedCodeword, fixedChannelInducedCodeword mat.SparseVector) (percentRawErrors, percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64) {
		rawErrors := originalCodeword.HammingDistance(channelInducedCodeword)
		codewordErrors := originalCodeword.HammingDistance(fixedChannelInducedCodeword)
		message := l.Decode(fixedChannelInducedCodeword)
		messageErrors := message.HammingDistance(originalMessage)
		parityErrors := codewordErrors - messageErrors

		percentRawErrors = float64(rawErrors) / float64(l.CodewordLength())
		percentFixedCodewordErrors = float64(codewordErrors) / float64(l.CodewordLength())
		percentFixedMessageErrors = float64(messageErrors) / float64(l.MessageLength())
		percentFixedParityErrors = float64(parityErrors) / float64(l.ParitySymbols())
		return
	}

	return benchmarking.BenchmarkBSCContinueStats(ctx, trials, threads, createMessage, encode, channel, repair, metrics, checkpoints, previousStats, showProgress)
}
