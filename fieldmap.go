package main

import (
	"StarkCompressionPipeline/modules/fields"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var fieldMapLimbs []string

var fieldMapCmd = &cobra.Command{
	Use:   "fieldmap",
	Short: "Map four 64-bit limbs to a BN254 scalar and its Montgomery form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := FieldMapImpl()
		return err
	},
}

func init() {
	rootCmd.AddCommand(fieldMapCmd)
	fieldMapCmd.Flags().StringSliceVar(&fieldMapLimbs, "limbs", []string{"1", "1003", "2003", "0"}, "Four little-limb-first 64-bit limbs.")
}

// FieldMapImpl returns the limbs of the Montgomery image of the --limbs
// value, reduced into the BN254 scalar field first.
func FieldMapImpl() ([fields.NumLimbs]uint64, error) {
	log := logger.Logger()

	words, err := parseUint64s("limbs", fieldMapLimbs, fields.NumLimbs)
	if err != nil {
		return [fields.NumLimbs]uint64{}, err
	}
	imageLimbs, err := fieldMap([fields.NumLimbs]uint64(words))
	if err != nil {
		return imageLimbs, err
	}

	log.Info().
		Uints64("limbs", words).
		Uint("shiftBits", fields.BN254Montgomery().ShiftBits()).
		Uints64("montgomeryLimbs", imageLimbs[:]).
		Msg("field map")
	return imageLimbs, nil
}

func fieldMap(limbs [fields.NumLimbs]uint64) ([fields.NumLimbs]uint64, error) {
	mont := fields.BN254Montgomery()
	// the Montgomery map does not reduce its input
	reduced := fields.ValueFromLimbs(limbs).ToBig()
	reduced.Mod(reduced, mont.Modulus())
	return fields.LimbsFromBig(mont.ToMontgomery(reduced))
}
