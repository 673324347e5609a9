package main

import (
	"os"
	"path/filepath"
	"testing"

	"StarkCompressionPipeline/modules/fields"
	"StarkCompressionPipeline/modules/trace"
	"StarkCompressionPipeline/modules/verifier"
	"StarkCompressionPipeline/modules/witness"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
}

func TestTraceCommand(t *testing.T) {
	dir := t.TempDir()
	constFile := filepath.Join(dir, "const.bin")
	commitFile := filepath.Join(dir, "commit.bin")

	run(t, "trace", "--n-bits", "4", "--const-file", constFile, "--commit-file", commitFile)

	f, err := os.Open(commitFile)
	require.NoError(t, err)
	defer f.Close()
	cols, err := trace.ReadColumns(f, 2)
	require.NoError(t, err)
	require.Len(t, cols[0], 16)
	// seeds 1, 2
	require.Equal(t, uint64(1), cols[0][0].Uint64())
	require.Equal(t, uint64(3), cols[1][1].Uint64())

	info, err := os.Stat(constFile)
	require.NoError(t, err)
	require.Equal(t, trace.PolFileSize(1, 16), info.Size())
}

func TestInferCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "program.json")
	out := filepath.Join(dir, "annotated.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
  "tmpUsed": 2,
  "code": [
    {"op": "add", "dest": {"type": "tmp", "id": 0},
     "src": [{"type": "const", "id": 0}, {"type": "challenge", "id": 1}]},
    {"op": "copy", "dest": {"type": "tmp", "id": 1}, "src": [{"type": "public", "id": 0}]}
  ]
}`), 0o644))

	run(t, "infer", "--program", in, "--output", out)

	prog, err := verifier.ReadProgramFile(out)
	require.NoError(t, err)
	require.True(t, prog.Annotated())
	require.Equal(t, uint(3), uint(prog.Operations[0].Dest.Dim))
	require.Equal(t, uint(1), uint(prog.Operations[1].Dest.Dim))
}

func TestReconstructCommand(t *testing.T) {
	dir := t.TempDir()

	smap := make([][]uint64, witness.NumWireColumns)
	for j := range smap {
		smap[j] = make([]uint64, 3)
	}
	smap[0][0], smap[1][2] = 3, 1
	artifact := &witness.Artifact{
		Additions: []witness.Addition{{Src0: 1, Src1: 2}},
		SMap:      smap,
	}
	artifact.Additions[0].Coef0.SetUint64(2)
	artifact.Additions[0].Coef1.SetUint64(1)
	artifactPath := filepath.Join(dir, "artifact.bin")
	require.NoError(t, witness.WriteArtifactFile(artifactPath, artifact))

	var paths []string
	for k, base := range []uint64{10, 100} {
		calculated := make([]goldilocks.Element, 3)
		for i := range calculated {
			calculated[i].SetUint64(base * uint64(i))
		}
		path := filepath.Join(dir, []string{"a.wtns", "b.wtns"}[k])
		require.NoError(t, witness.WriteWitnessFile(path, calculated))
		paths = append(paths, path)
	}

	run(t, "reconstruct", "--artifact", artifactPath,
		"--witness-files", paths[0]+","+paths[1], "--output-dir", dir)

	for k, base := range []uint64{10, 100} {
		f, err := os.Open(filepath.Join(dir, []string{"a.cols", "b.cols"}[k]))
		require.NoError(t, err)
		cols, err := trace.ReadColumns(f, witness.NumWireColumns)
		f.Close()
		require.NoError(t, err)

		require.Len(t, cols[0], 4)
		// w3 = 2*w1 + w2 = 4 base
		require.Equal(t, 4*base, cols[0][0].Uint64())
		require.Equal(t, base, cols[1][2].Uint64())
		require.True(t, cols[0][3].IsZero())
	}
}

func TestFieldMapCommand(t *testing.T) {
	run(t, "fieldmap")

	// the default limbs are the field_map sample [1, 1003, 2003, 0]
	got, err := FieldMapImpl()
	require.NoError(t, err)

	var e fr.Element
	e.SetBigInt(fields.BigFromLimbs([fields.NumLimbs]uint64{1, 1003, 2003, 0}))
	require.Equal(t, [fields.NumLimbs]uint64(e), got)
}

func TestFieldMapReducesWideValues(t *testing.T) {
	limbs := [fields.NumLimbs]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	got, err := fieldMap(limbs)
	require.NoError(t, err)

	var e fr.Element
	e.SetBigInt(fields.BigFromLimbs(limbs))
	require.Equal(t, [fields.NumLimbs]uint64(e), got)
}

func TestParseUint64s(t *testing.T) {
	got, err := parseUint64s("seeds", []string{"18446744073709551615", "0x10"}, 2)
	require.NoError(t, err)
	require.Equal(t, []uint64{^uint64(0), 16}, got)

	testcases := map[string][]string{
		"too few":      {"1"},
		"too many":     {"1", "2", "3"},
		"negative":     {"-1", "2"},
		"overflow":     {"18446744073709551616", "2"},
		"not a number": {"one", "2"},
	}
	for name, vals := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := parseUint64s("seeds", vals, 2)
			require.Error(t, err)
		})
	}
}

func TestColumnFileNames(t *testing.T) {
	got, err := columnFileNames("out", []string{"a/w.wtns", "b/v.bin"})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join("out", "w.cols"), filepath.Join("out", "v.cols")}, got)

	_, err = columnFileNames("out", []string{"a/w.wtns", "b/w.wtns"})
	require.Error(t, err)
	_, err = columnFileNames("out", []string{"w.wtns", "w.bin"})
	require.Error(t, err)
}

func TestReconstructRejectsCollidingOutputs(t *testing.T) {
	dir := t.TempDir()
	smap := make([][]uint64, witness.NumWireColumns)
	for j := range smap {
		smap[j] = make([]uint64, 1)
	}
	artifactFile = filepath.Join(dir, "artifact.bin")
	require.NoError(t, witness.WriteArtifactFile(artifactFile, &witness.Artifact{SMap: smap}))

	calculated := make([]goldilocks.Element, 2)
	for _, sub := range []string{"x", "y"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, sub), 0o755))
		require.NoError(t, witness.WriteWitnessFile(filepath.Join(dir, sub, "w.wtns"), calculated))
	}
	witnessFiles = []string{filepath.Join(dir, "x", "w.wtns"), filepath.Join(dir, "y", "w.wtns")}
	outputDir = dir

	require.Error(t, ReconstructImpl())
	_, err := os.Stat(filepath.Join(dir, "w.cols"))
	require.True(t, os.IsNotExist(err), "nothing is written on a collision")
}

func TestGroth16Command(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"--groth16-pk", filepath.Join(dir, "pk"),
		"--groth16-vk", filepath.Join(dir, "vk"),
		"--groth16-proof", filepath.Join(dir, "proof"),
		"--digest",
	}
	for _, mode := range []string{"setup", "prove", "verify"} {
		run(t, append([]string{"groth16", "--groth16-mode", mode}, files...)...)
	}
}

func TestLayeredCommand(t *testing.T) {
	dir := t.TempDir()
	circuitPath := filepath.Join(dir, "circuit.txt")
	run(t, "layered", "--circuit-file", circuitPath, "--witness-file", filepath.Join(dir, "witness.txt"))

	info, err := os.Stat(circuitPath)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}
