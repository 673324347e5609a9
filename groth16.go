package main

import (
	"fmt"
	"io"
	"os"

	"StarkCompressionPipeline/modules/circuit"
	"StarkCompressionPipeline/modules/trace"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var (
	groth16PKFile    string
	groth16VKFile    string
	groth16ProofFile string
	groth16Mode      string
	groth16Digest    bool
)

var groth16Cmd = &cobra.Command{
	Use:   "groth16",
	Short: "Expose the trace publics to a Groth16 proof over BN254",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Groth16Impl()
	},
}

func init() {
	rootCmd.AddCommand(groth16Cmd)
	groth16Cmd.Flags().StringSliceVar(&traceSeeds, "seeds", []string{"1", "2"}, "The two initial values of the recurrence.")
	groth16Cmd.Flags().StringVar(&groth16PKFile, "groth16-pk", "", "The Groth16 proving key.")
	groth16Cmd.Flags().StringVar(&groth16VKFile, "groth16-vk", "", "The Groth16 verifying key.")
	groth16Cmd.Flags().StringVar(&groth16ProofFile, "groth16-proof", "", "The Groth16 proof.")
	groth16Cmd.Flags().StringVar(&groth16Mode, "groth16-mode", "", "The Groth16 work mode - one of prove/verify/setup.")
	groth16Cmd.Flags().BoolVar(&groth16Digest, "digest", false, "Expose a single MiMC digest of the publics instead of the packed publics.")
	groth16Cmd.MarkFlagRequired("groth16-mode")
}

// tracePublics runs the trace for the configured seeds and returns its
// public values.
func tracePublics() ([]goldilocks.Element, error) {
	s0, s1, err := seedsFromFlags()
	if err != nil {
		return nil, err
	}
	fib, err := trace.NewFibonacci(starkStruct.TraceLength())
	if err != nil {
		return nil, err
	}
	cols, err := fib.Execute(s0, s1)
	if err != nil {
		return nil, err
	}
	return cols.Publics().Elements(), nil
}

func Groth16Impl() error {
	log := logger.Logger()

	publics, err := tracePublics()
	if err != nil {
		return err
	}

	var placeholder, assignment frontend.Circuit
	if groth16Digest {
		placeholder = circuit.NewDigestPlaceholder(len(publics), true)
		assignment = circuit.NewDigestAssignment(publics)
	} else {
		placeholder = circuit.NewPackingPlaceholder(len(publics), true)
		assignment = circuit.NewPackingAssignment(publics)
	}

	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, placeholder)
	if err != nil {
		return err
	}
	log.Info().
		Int("constraints", ccs.GetNbConstraints()).
		Int("internal", ccs.GetNbInternalVariables()).
		Int("secret", ccs.GetNbSecretVariables()).
		Int("public", ccs.GetNbPublicVariables()).
		Bool("digest", groth16Digest).
		Msg("publics circuit compiled")

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return err
	}
	if err = ccs.IsSolved(fullWitness); err != nil {
		return fmt.Errorf("r1cs not satisfied: %w", err)
	}

	switch groth16Mode {
	case "setup":
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			return err
		}
		if err = writeTo(groth16PKFile, pk); err != nil {
			return err
		}
		if err = writeTo(groth16VKFile, vk); err != nil {
			return err
		}
	case "prove":
		pk := groth16.NewProvingKey(ecc.BN254)
		if err = readFrom(groth16PKFile, pk); err != nil {
			return err
		}
		proof, err := groth16.Prove(ccs, pk, fullWitness)
		if err != nil {
			return err
		}
		if err = writeTo(groth16ProofFile, proof); err != nil {
			return err
		}
	case "verify":
		if err = groth16VerifyImpl(fullWitness); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown groth16 mode %q", groth16Mode)
	}

	log.Info().Str("mode", groth16Mode).Msg("done")
	return nil
}

func groth16VerifyImpl(fullWitness witness.Witness) error {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := readFrom(groth16VKFile, vk); err != nil {
		return err
	}
	proof := groth16.NewProof(ecc.BN254)
	if err := readFrom(groth16ProofFile, proof); err != nil {
		return err
	}
	publicWitness, err := fullWitness.Public()
	if err != nil {
		return err
	}
	return groth16.Verify(proof, vk, publicWitness)
}

func writeTo(path string, v io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err = v.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func readFrom(path string, v io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = v.ReadFrom(f)
	return err
}
