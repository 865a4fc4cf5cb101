package sweep

import (
	"context"
	"strconv"
	"testing"

	"github.com/nathanhack/bersim/chain"
	"github.com/nathanhack/bersim/cmd/internal/tools"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps(t *testing.T) {
	tests := []struct {
		min, max, step float64
		expected       []float64
	}{
		{0, 10, 2, []float64{0, 2, 4, 6, 8, 10}},
		{-1, 0.5, 0.5, []float64{-1, -0.5, 0, 0.5}},
		{0, 1, 0.1, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{3, 3, 1, []float64{3}},
		{0, 5, 2, []float64{0, 2, 4}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := Steps(test.min, test.max, test.step)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}

	_, err := Steps(0, 1, 0)
	assert.Error(t, err)
	_, err = Steps(2, 1, 1)
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	scenarios := chain.DefaultScenarios(hamming.New())[:2]
	cfg := Config{SNRs: []float64{0, 12}, Bits: 64, Trials: 3, Threads: 2, Seed: 5}

	names, stats, err := Sweep(context.Background(), dir, scenarios, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"hamming74+differential+bpsk", "hamming74+differential+qpsk"}, names)
	require.Len(t, stats, 2)
	assert.Equal(t, 3, stats[0].Stats[12].ChannelMessageError.Count)

	saved, err := tools.LoadResults(ResultFile(dir, scenarios[0]))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, []float64{0, 12}, saved.Parameters())
	assert.Equal(t, "AWGN:hamming74+differential+bpsk", saved.TypeInfo)

	cfg.Trials = 5
	_, stats, err = Sweep(context.Background(), dir, scenarios, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, 5, stats[1].Stats[0].ChannelMessageError.Count)

	_, _, err = Sweep(context.Background(), dir, []chain.Scenario{{LineCode: scenarios[0].LineCode, Modulation: scenarios[0].Modulation}}, cfg, false)
	require.NoError(t, err, "uncoded results live in their own file")
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	names, _, err := Sweep(ctx, t.TempDir(), chain.DefaultScenarios(nil), Config{SNRs: []float64{0}, Bits: 8, Trials: 1, Threads: 1}, false)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDefaultSteps(t *testing.T) {
	snrs, err := Steps(DefaultSNRMin, DefaultSNRMax, DefaultSNRStep)
	require.NoError(t, err)
	assert.Len(t, snrs, 18)
	assert.Equal(t, -4.0, snrs[0])
	assert.Equal(t, 13.0, snrs[len(snrs)-1])
	assert.EqualValues(t, 50000, DefaultBits)
}
