package main

import (
	"os"

	"StarkCompressionPipeline/modules/verifier"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var (
	programFile       string
	programOutputFile string
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Annotate a verifier program with the dimension of every operand",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return InferImpl()
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferCmd.Flags().StringVar(&programFile, "program", "", "The verifier program JSON.")
	inferCmd.Flags().StringVar(&programOutputFile, "output", "", "Where to write the annotated program, stdout if empty.")
	inferCmd.MarkFlagRequired("program")
}

func InferImpl() error {
	log := logger.Logger()

	// the annotated program feeds the circuit template, which only knows
	// how to hash over the configured field
	hashField, err := starkStruct.HashField()
	if err != nil {
		return err
	}

	prog, err := verifier.ReadProgramFile(programFile)
	if err != nil {
		return err
	}
	if err = verifier.InferDimensions(prog); err != nil {
		return err
	}
	log.Info().
		Int("operations", len(prog.Operations)).
		Uint("tmpUsed", prog.NumTemporaries).
		Stringer("hashField", hashField).
		Msg("program annotated")

	if programOutputFile == "" {
		return verifier.WriteProgram(os.Stdout, prog)
	}
	f, err := os.Create(programOutputFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = verifier.WriteProgram(f, prog); err != nil {
		return err
	}
	return f.Close()
}
