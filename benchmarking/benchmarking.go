package benchmarking

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/bersim/chain"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"golang.org/x/exp/rand"
)

type Stats struct {
	ChannelRawError      avgstd.AvgStd // probability of a bit error before any correction
	ChannelCodewordError avgstd.AvgStd // probability of a bit error after channel errors are fixed
	ChannelMessageError  avgstd.AvgStd // probability of a bit error after channel errors are fixed
	ChannelParityError   avgstd.AvgStd // probability of a bit error after channel errors are fixed
}

func (s Stats) String() string {
	return fmt.Sprintf("{Raw:%0.02f(+/-%0.02f), Codeword:%0.02f(+/-%0.02f), Message:%0.02f(+/-%0.02f), Parity:%0.02f(+/-%0.02f)}",
		s.ChannelRawError.Mean, math.Sqrt(s.ChannelRawError.SampledVariance()),
		s.ChannelCodewordError.Mean, math.Sqrt(s.ChannelCodewordError.SampledVariance()),
		s.ChannelMessageError.Mean, math.Sqrt(s.ChannelMessageError.SampledVariance()),
		s.ChannelParityError.Mean, math.Sqrt(s.ChannelParityError.SampledVariance()),
	)
}

func (s *Stats) update(raw, codeword, message, parity float64) {
	s.ChannelRawError.Update(raw)
	s.ChannelCodewordError.Update(codeword)
	s.ChannelMessageError.Update(message)
	s.ChannelParityError.Update(parity)
}

type Checkpoints func(updatedStats Stats)

type BinaryMessageConstructor func(trial int) (message mat.SparseVector)

//specfic to BSC
type BinarySymmetricChannelEncoder func(message mat.SparseVector) (codeword mat.SparseVector)
type BinarySymmetricChannel func(trial int, codeword mat.SparseVector) (channelInducedCodeword mat.SparseVector)
type BinarySymmetricChannelCorrection func(originalCodeword, channelInducedCodeword mat.SparseVector) (fixedChannelInducedCodeword mat.SparseVector)
type BinarySymmetricChannelMetrics func(originalMessage, originalCodeword, channelInducedCodeword, fixedChannelInducedCodeword mat.SparseVector) (percentRawErrors, percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64)

func BenchmarkBSC(ctx context.Context,
	trials int, threads int,
	createMessage BinaryMessageConstructor,
	encode BinarySymmetricChannelEncoder,
	channel BinarySymmetricChannel,
	codewordRepair BinarySymmetricChannelCorrection,
	metrics BinarySymmetricChannelMetrics,
	checkpoints Checkpoints,
	showProgress bool) Stats {
	return BenchmarkBSCContinueStats(ctx, trials, threads, createMessage, encode, channel, codewordRepair, metrics, checkpoints, Stats{}, showProgress)
}

func BenchmarkBSCContinueStats(ctx context.Context,
	trials int, threads int,
	createMessage BinaryMessageConstructor,
	encode BinarySymmetricChannelEncoder,
	channel BinarySymmetricChannel,
	codewordRepair BinarySymmetricChannelCorrection,
	metrics BinarySymmetricChannelMetrics,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trial := func(i int) (raw, codewordErr, messageErr, parityErr float64) {
		//we create a random message
		message := createMessage(i)

		// encode to get our codeword
		codeword := encode(message)

		// send through the channel to get channel induced errors
		channelInducedCodeword := channel(i, codeword)

		// repair the codeword (if possible)
		repaired := codewordRepair(codeword, channelInducedCodeword)

		// get metrics
		return metrics(message, codeword, channelInducedCodeword, repaired)
	}

	return run(ctx, trials, threads, trial, checkpoints, previousStats, showProgress)
}

//ChainTrialSeed is the seed of the source used for the message of a trial; the
// channel noise of the same trial uses ChainTrialSeed+1.
func ChainTrialSeed(seed uint64, trial int) uint64 {
	return seed + 2*uint64(trial)
}

//BenchmarkChain runs trials of messageBits random bits through scenario at snrDB.
// Each trial draws its message and its noise from sources seeded by
// ChainTrialSeed, so a run is repeatable for a given seed whatever the thread count.
func BenchmarkChain(ctx context.Context,
	trials, threads int,
	scenario chain.Scenario,
	messageBits int, snrDB float64, seed uint64,
	checkpoints Checkpoints,
	showProgress bool) (Stats, error) {
	return BenchmarkChainContinueStats(ctx, trials, threads, scenario, messageBits, snrDB, seed, checkpoints, Stats{}, showProgress)
}

func BenchmarkChainContinueStats(ctx context.Context,
	trials, threads int,
	scenario chain.Scenario,
	messageBits int, snrDB float64, seed uint64,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) (Stats, error) {
	errMux := sync.Mutex{}
	var firstErr error

	trial := func(i int) (raw, codewordErr, messageErr, parityErr float64) {
		s := ChainTrialSeed(seed, i)
		message := chain.RandomBits(messageBits, rand.New(rand.NewSource(s)))

		result, err := scenario.Run(message, snrDB, rand.NewSource(s+1))
		if err != nil {
			errMux.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMux.Unlock()
			return math.NaN(), math.NaN(), math.NaN(), math.NaN()
		}

		errors, total := result.ParityErrors()
		if total > 0 {
			parityErr = float64(errors) / float64(total)
		}
		return result.ChannelBER, result.ResidualBER, result.BER, parityErr
	}

	stats := run(ctx, trials, threads, trial, checkpoints, previousStats, showProgress)
	return stats, firstErr
}

//run executes the trials not yet counted in previousStats on a thread pool.
func run(ctx context.Context,
	trials, threads int,
	trial func(i int) (raw, codewordErr, messageErr, parityErr float64),
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.ChannelCodewordError.Count
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	pool := threadpool.NewFixedSize(ctx, threads, trialsToRun)
	statsMux := sync.Mutex{}

	for i := previousStats.ChannelCodewordError.Count; i < trials; i++ {
		i := i
		pool.Add(func() {
			if showProgress {
				bar.Increment()
			}
			raw, codewordErr, messageErr, parityErr := trial(i)
			if math.IsNaN(messageErr) {
				return
			}

			statsMux.Lock()
			previousStats.update(raw, codewordErr, messageErr, parityErr)
			if checkpoints != nil {
				checkpoints(previousStats) //give them the updated checkpoint
			}
			statsMux.Unlock()
		})
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	return previousStats
}
