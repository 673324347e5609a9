package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"StarkCompressionPipeline/modules/witness"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	artifactFile   string
	witnessFiles   []string
	outputDir      string
	maxConcurrency int
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "Rebuild the wire columns of the compressed circuit from solved witnesses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ReconstructImpl()
	},
}

func init() {
	rootCmd.AddCommand(reconstructCmd)
	reconstructCmd.Flags().StringVar(&artifactFile, "artifact", "", "The wire map and additions produced by the circuit compressor.")
	reconstructCmd.Flags().StringSliceVar(&witnessFiles, "witness-files", nil, "The calculated witnesses, one column file is written per witness.")
	reconstructCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Where to write the column files.")
	reconstructCmd.Flags().IntVar(&maxConcurrency, "max-concurrency", 0, "Witnesses reconstructed at once, unlimited if 0.")

	reconstructCmd.MarkFlagRequired("artifact")
	reconstructCmd.MarkFlagRequired("witness-files")
}

func ReconstructImpl() error {
	log := logger.Logger()

	artifact, err := witness.ReadArtifactFile(artifactFile)
	if err != nil {
		return err
	}
	log.Info().
		Int("additions", artifact.NumAdditions()).
		Int("rows", artifact.RowsPerColumn()).
		Msg("artifact loaded")

	outputs, err := columnFileNames(outputDir, witnessFiles)
	if err != nil {
		return err
	}

	// the artifact is only read from here on
	var g errgroup.Group
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i, path := range witnessFiles {
		i, path := i, path
		g.Go(func() error {
			return reconstructOne(artifact, path, outputs[i])
		})
	}
	return g.Wait()
}

// columnFileNames maps every witness file to <dir>/<base name>.cols. Two
// witnesses mapping to the same output are rejected.
func columnFileNames(dir string, paths []string) ([]string, error) {
	res := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".cols"
		res[i] = filepath.Join(dir, name)
		if prev, ok := seen[res[i]]; ok {
			return nil, fmt.Errorf("witness files %s and %s both write %s", prev, path, res[i])
		}
		seen[res[i]] = path
	}
	return res, nil
}

func reconstructOne(artifact *witness.Artifact, path, output string) error {
	calculated, err := witness.ReadWitnessFile(path)
	if err != nil {
		return err
	}
	cols, err := witness.Reconstruct(calculated, artifact)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err = cols.Write(out); err != nil {
		return err
	}

	log := logger.Logger()
	log.Info().Str("witness", path).Int("rows", cols.Len()).Str("output", out.Name()).Msg("reconstructed")
	return out.Close()
}
