package cmd

import (
	"github.com/nathanhack/bersim/cmd/internal/codec"

	"github.com/spf13/cobra"
)

// codecCmd represents the codec command
var codecCmd = &cobra.Command{
	Use:     "codec",
	Aliases: []string{"c"},
	Short:   "Hamming(7,4) encoder and decoder",
	Long:    `Encode and decode bit strings with the systematic Hamming(7,4) code.`,
}

// codecEncodeCmd represents the encode command
var codecEncodeCmd = &cobra.Command{
	Use:     "encode [BITS]",
	Aliases: []string{"e", "enc"},
	Short:   "Encodes BITS (or --text) into codewords",
	Long:    `Encodes BITS (or the UTF-8 bits of --text) into 7 bit codewords. The message is padded with zeros to a multiple of 4 bits.`,
	Args:    cobra.MaximumNArgs(1),
	Run:     codec.EncodeRun,
}

// codecDecodeCmd represents the decode command
var codecDecodeCmd = &cobra.Command{
	Use:     "decode BITS",
	Aliases: []string{"d", "dec"},
	Short:   "Corrects and decodes codewords",
	Long:    `Corrects at most one error per 7 bit block and returns the message bits. Trailing bits that do not fill a block are dropped.`,
	Args:    cobra.ExactArgs(1),
	Run:     codec.DecodeRun,
}

// codecTableCmd represents the table command
var codecTableCmd = &cobra.Command{
	Use:     "table",
	Aliases: []string{"t"},
	Short:   "Prints H and the syndrome table",
	Long:    `Prints the parity check matrix and the syndrome to error position table.`,
	Args:    cobra.NoArgs,
	Run:     codec.TableRun,
}

// codecExportCmd represents the export command
var codecExportCmd = &cobra.Command{
	Use:   "export OUTPUT_HAMMING_JSON",
	Short: "Saves the code matrices as JSON",
	Long:  `Saves G, H and the syndrome table as JSON.`,
	Args:  cobra.ExactArgs(1),
	Run:   codec.ExportRun,
}

func init() {
	rootCmd.AddCommand(codecCmd)

	codecCmd.AddCommand(codecEncodeCmd)
	codecEncodeCmd.Flags().StringVar(&codec.Text, "text", "", "encode the UTF-8 bits of this text instead of BITS")
	codecEncodeCmd.Flags().BoolVarP(&codec.Parallel, "parallel", "p", false, "encode chunks of blocks on --threads threads")

	codecCmd.AddCommand(codecDecodeCmd)
	codecDecodeCmd.Flags().BoolVar(&codec.AsText, "text", false, "print the message as UTF-8 text")
	codecDecodeCmd.Flags().UintVarP(&codec.Flip, "flip", "f", 0, "flip this many random bits before decoding")
	codecDecodeCmd.Flags().BoolVarP(&codec.Parallel, "parallel", "p", false, "decode chunks of blocks on --threads threads")

	codecCmd.AddCommand(codecTableCmd)
	codecCmd.AddCommand(codecExportCmd)
}
