package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"StarkCompressionPipeline/modules/trace"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	traceSeeds      []string
	traceNBits      uint
	traceConstFile  string
	traceCommitFile string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Build and check the Fibonacci execution trace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return TraceImpl()
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringSliceVar(&traceSeeds, "seeds", []string{"1", "2"}, "The two initial values of the recurrence.")
	traceCmd.Flags().UintVar(&traceNBits, "n-bits", 0, "Override the trace size 2^nBits of the stark struct.")
	traceCmd.Flags().StringVar(&traceConstFile, "const-file", "", "Where to write the constant polynomials.")
	traceCmd.Flags().StringVar(&traceCommitFile, "commit-file", "", "Where to write the committed polynomials.")
}

// parseUint64s parses exactly n decimal or 0x prefixed 64-bit words.
func parseUint64s(name string, vals []string, n int) ([]uint64, error) {
	if len(vals) != n {
		return nil, fmt.Errorf("--%s: expected %d values, got %d", name, n, len(vals))
	}
	res := make([]uint64, n)
	for i, v := range vals {
		u, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("--%s: value %d: %w", name, i, err)
		}
		res[i] = u
	}
	return res, nil
}

// seedsFromFlags reduces the seeds into the field.
func seedsFromFlags() (goldilocks.Element, goldilocks.Element, error) {
	var s0, s1 goldilocks.Element
	seeds, err := parseUint64s("seeds", traceSeeds, 2)
	if err != nil {
		return s0, s1, err
	}
	s0.SetUint64(seeds[0])
	s1.SetUint64(seeds[1])
	return s0, s1, nil
}

func TraceImpl() error {
	log := logger.Logger()

	if traceNBits != 0 {
		starkStruct.WithNBits(traceNBits)
		if err := starkStruct.Validate(); err != nil {
			return err
		}
	}
	s0, s1, err := seedsFromFlags()
	if err != nil {
		return err
	}

	fib, err := trace.NewFibonacci(starkStruct.TraceLength())
	if err != nil {
		return err
	}
	log.Info().Int("rows", fib.Length()).Uint("nBitsExt", starkStruct.NBitsExt).Msg("executing")

	cols, err := fib.Execute(s0, s1)
	if err != nil {
		return err
	}
	if err = trace.CheckTransitions(cols); err != nil {
		return err
	}

	publics := cols.Publics()
	log.Info().
		Str("in1", publics.In1.String()).
		Str("in2", publics.In2.String()).
		Str("out", publics.Out.String()).
		Msg("trace satisfies the transitions")

	if traceConstFile != "" {
		if err = writePols(traceConstFile, "Writing constant pols", cols.IsLast); err != nil {
			return err
		}
	}
	if traceCommitFile != "" {
		if err = writePols(traceCommitFile, "Writing commit pols", cols.BeforeLast, cols.Last); err != nil {
			return err
		}
	}
	return nil
}

func writePols(path, description string, cols ...[]goldilocks.Element) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	size := trace.PolFileSize(len(cols), len(cols[0]))
	bar := progressbar.DefaultBytes(size, description)
	if err = trace.WriteColumns(io.MultiWriter(f, bar), cols...); err != nil {
		return err
	}
	return f.Close()
}
