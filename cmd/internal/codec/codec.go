package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/bersim/channel"
	"github.com/nathanhack/bersim/cmd/internal/settings"
	"github.com/nathanhack/bersim/linearblock/hamming"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	Text     string
	AsText   bool
	Flip     uint
	Parallel bool
)

var EncodeRun = func(cmd *cobra.Command, args []string) {
	data, err := input(args)
	if err != nil {
		fmt.Println(err)
		return
	}
	s := settings.Current()
	ctx, cancel := settings.SignalContext()
	defer cancel()

	c := hamming.New()
	var codeword bitstream.Bits
	if Parallel {
		codeword, err = c.EncodeParallel(ctx, data, s.Threads)
	} else {
		codeword, err = c.Encode(data)
	}
	if err != nil {
		fmt.Println(err)
		return
	}
	logrus.Debugf("encoded %v bits into %v", len(data), len(codeword))
	fmt.Println(codeword)
}

var DecodeRun = func(cmd *cobra.Command, args []string) {
	received, err := bitstream.Parse(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}
	s := settings.Current()

	if Flip > 0 {
		received = channel.FlipBits(received, int(Flip), rand.New(rand.NewSource(s.Seed)))
		logrus.Infof("received with %v flipped bits: %v", Flip, received)
	}

	ctx, cancel := settings.SignalContext()
	defer cancel()

	opts := DecodeOptions{AsText: AsText, Parallel: Parallel, Threads: s.Threads}
	if err := Decode(ctx, os.Stdout, hamming.New(), received, opts); err != nil {
		fmt.Println(err)
	}
}

var TableRun = func(cmd *cobra.Command, args []string) {
	Table(os.Stdout, hamming.New())
}

var ExportRun = func(cmd *cobra.Command, args []string) {
	bs, err := json.Marshal(NewExport(hamming.New()))
	if err != nil {
		fmt.Println("Unable to serialize the Hamming code: ", err)
		return
	}

	err = os.WriteFile(args[0], bs, 0644)
	if err != nil {
		fmt.Println("unable to write file: ", err)
	}
}

func input(args []string) (bitstream.Bits, error) {
	if Text != "" {
		return bitstream.FromText(Text), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("requires BITS or --text")
	}
	return bitstream.Parse(args[0])
}

type DecodeOptions struct {
	AsText   bool
	//Parallel decodes the message in chunks on Threads threads.
	Parallel bool
	Threads  int
}

//Decode writes the corrected codewords, a marker under every corrected bit and the
// recovered message.
func Decode(ctx context.Context, w io.Writer, c *hamming.Codec, received bitstream.Bits, opts DecodeOptions) error {
	corrected, err := c.Correct(received)
	if err != nil {
		return err
	}
	var message bitstream.Bits
	if opts.Parallel {
		message, err = c.DecodeParallel(ctx, received, opts.Threads)
	} else {
		message, err = c.Decode(received)
	}
	if err != nil {
		return err
	}

	marks := make([]byte, len(corrected))
	fixed := 0
	for i := range corrected {
		marks[i] = ' '
		if corrected[i] != received[i] {
			marks[i] = '^'
			fixed++
		}
	}

	fmt.Fprintf(w, "received:  %v\n", received[:len(corrected)])
	fmt.Fprintf(w, "corrected: %v\n", corrected)
	fmt.Fprintf(w, "           %s\n", marks)
	fmt.Fprintf(w, "fixed %v bit(s) in %v block(s)\n", fixed, len(corrected)/hamming.CodewordLength)

	if !opts.AsText {
		fmt.Fprintf(w, "message:   %v\n", message)
		return nil
	}
	text, err := bitstream.ToText(message)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "message:   %q\n", text)
	return nil
}

//Table writes the parity check matrix and the syndrome table.
func Table(w io.Writer, c *hamming.Codec) {
	fmt.Fprintln(w, "H:")
	for _, row := range c.H() {
		fmt.Fprintf(w, "  %v\n", bitstream.Bits(row[:]))
	}
	fmt.Fprintln(w, "syndrome -> error position:")
	for s, pos := range c.SyndromeTable() {
		if pos < 0 {
			fmt.Fprintf(w, "  %03b -> none\n", s)
			continue
		}
		fmt.Fprintf(w, "  %03b -> %v\n", s, pos)
	}
}

//Export is the JSON form of the code.
type Export struct {
	Name           string
	MessageLength  int
	CodewordLength int
	CodeRate       float64
	G              [][]int
	H              [][]int
	SyndromeTable  []int
}

func NewExport(c *hamming.Codec) Export {
	e := Export{
		Name:           "hamming(7,4)",
		MessageLength:  hamming.MessageLength,
		CodewordLength: hamming.CodewordLength,
		CodeRate:       c.CodeRate(),
	}
	for _, row := range c.G() {
		e.G = append(e.G, ints(row[:]))
	}
	for _, row := range c.H() {
		e.H = append(e.H, ints(row[:]))
	}
	table := c.SyndromeTable()
	e.SyndromeTable = append(e.SyndromeTable, table[:]...)
	return e
}

func ints(row []uint8) []int {
	out := make([]int, len(row))
	for i, v := range row {
		out[i] = int(v)
	}
	return out
}
