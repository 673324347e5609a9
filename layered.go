package main

import (
	"fmt"
	"os"

	"StarkCompressionPipeline/modules/circuit"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	ecgoTest "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/test"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var (
	layeredCircuitFile string
	layeredWitnessFile string
)

var layeredCmd = &cobra.Command{
	Use:   "layered",
	Short: "Compile the publics packing circuit to a layered circuit and check it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return LayeredImpl()
	},
}

func init() {
	rootCmd.AddCommand(layeredCmd)
	layeredCmd.Flags().StringSliceVar(&traceSeeds, "seeds", []string{"1", "2"}, "The two initial values of the recurrence.")
	layeredCmd.Flags().StringVar(&layeredCircuitFile, "circuit-file", "", "Where to dump the serialized layered circuit.")
	layeredCmd.Flags().StringVar(&layeredWitnessFile, "witness-file", "", "Where to dump the serialized layered witness.")
}

func LayeredImpl() error {
	log := logger.Logger()

	publics, err := tracePublics()
	if err != nil {
		return err
	}

	compilation, err := ecgo.Compile(ecc.BN254.ScalarField(), circuit.NewPackingPlaceholder(len(publics), false))
	if err != nil {
		return err
	}

	log.Info().Msg("solving witness")
	inputSolver := compilation.GetInputSolver()
	layeredWitness, err := inputSolver.SolveInput(circuit.NewPackingAssignment(publics), 0)
	if err != nil {
		return err
	}

	layeredCircuit := compilation.GetLayeredCircuit()
	if !ecgoTest.CheckCircuit(layeredCircuit, layeredWitness) {
		return fmt.Errorf("layered circuit not satisfied")
	}
	log.Info().Msg("layered circuit satisfied")

	if layeredCircuitFile != "" {
		if err = os.WriteFile(layeredCircuitFile, layeredCircuit.Serialize(), 0o644); err != nil {
			return err
		}
	}
	if layeredWitnessFile != "" {
		if err = os.WriteFile(layeredWitnessFile, layeredWitness.Serialize(), 0o644); err != nil {
			return err
		}
	}
	return nil
}
