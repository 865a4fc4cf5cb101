package cmd

import (
	"github.com/nathanhack/bersim/cmd/internal/sweep"

	"github.com/spf13/cobra"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:     "sweep RESULT_DIR",
	Aliases: []string{"s"},
	Short:   "BER vs SNR for every chain scenario",
	Long: `Runs Monte Carlo trials of every chain scenario over a range of SNR values and saves
one results file per scenario in RESULT_DIR. Existing results are continued.`,
	Args: cobra.ExactArgs(1),
	Run:  sweep.SweepRun,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweep.SNRMin, "snr-min", sweep.DefaultSNRMin, "first SNR in dB")
	sweepCmd.Flags().Float64Var(&sweep.SNRMax, "snr-max", sweep.DefaultSNRMax, "last SNR in dB")
	sweepCmd.Flags().Float64Var(&sweep.SNRStep, "snr-step", sweep.DefaultSNRStep, "SNR step in dB")
	sweepCmd.Flags().UintVarP(&sweep.Bits, "bits", "b", sweep.DefaultBits, "message bits per trial")
	sweepCmd.Flags().UintVarP(&sweep.Trials, "trials", "t", sweep.DefaultTrials, "the number of trials per step")
	sweepCmd.Flags().BoolVar(&sweep.FEC, "fec", false, "protect the message with Hamming(7,4)")
	sweepCmd.Flags().StringVarP(&sweep.ChartFile, "chart", "c", "", "write the BER curves to this html file")
}
