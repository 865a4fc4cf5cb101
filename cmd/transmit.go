package cmd

import (
	"github.com/nathanhack/bersim/cmd/internal/transmit"

	"github.com/spf13/cobra"
)

// transmitCmd represents the transmit command
var transmitCmd = &cobra.Command{
	Use:     "transmit [TEXT]",
	Aliases: []string{"tx"},
	Short:   "Sends a message through every chain scenario",
	Long: `Sends TEXT (or --random characters of printable text) through every line code and
modulation pair over an AWGN channel and reports the bit error rate and the recovered text.`,
	Args: cobra.MaximumNArgs(1),
	Run:  transmit.TransmitRun,
}

func init() {
	rootCmd.AddCommand(transmitCmd)
	transmitCmd.Flags().Float64VarP(&transmit.SNR, "snr", "s", 10, "signal to noise ratio in dB")
	transmitCmd.Flags().BoolVar(&transmit.FEC, "fec", false, "protect the message with Hamming(7,4)")
	transmitCmd.Flags().UintVarP(&transmit.Random, "random", "r", 64, "length of the random message used when TEXT is not given")
	transmitCmd.Flags().StringVarP(&transmit.ChartFile, "chart", "c", "", "write constellation and waveform charts to this html file")
}
