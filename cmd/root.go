package cmd

import (
	"fmt"
	"os"

	"github.com/nathanhack/bersim/cmd/internal/logging"
	"github.com/nathanhack/bersim/cmd/internal/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bersim",
	Short: "Hamming(7,4) codec and bit error rate simulator",
	Long: `bersim encodes and decodes the (7,4) Hamming code and simulates a
communication chain of FEC, line coding (NRZ-I, Manchester), modulation
(BPSK, QPSK) and an AWGN channel to measure bit error rates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.Load(cfgFile); err != nil {
			return err
		}
		s := settings.Current()
		logging.Setup(logrus.StandardLogger(), s.Verbose, s.LogFile)
		logrus.Debugf("seed %v threads %v", s.Seed, s.Threads)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose info")
	rootCmd.PersistentFlags().Uint64("seed", 0, "seed for every random source (0 means a time based seed)")
	rootCmd.PersistentFlags().Uint("threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	rootCmd.PersistentFlags().String("log-file", "", "also write log entries as JSON to this file")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("threads", rootCmd.PersistentFlags().Lookup("threads"))
	viper.BindPFlag("logfile", rootCmd.PersistentFlags().Lookup("log-file"))
}
