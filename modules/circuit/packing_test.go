package circuit

import (
	"math/big"
	"testing"

	"StarkCompressionPipeline/modules/fields"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	ecgoTest "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/test"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomElements(rng *rand.Rand, n int) []goldilocks.Element {
	q := goldilocks.Modulus().Uint64()
	res := make([]goldilocks.Element, n)
	for i := range res {
		res[i].SetUint64(rng.Uint64() % q)
	}
	return res
}

func TestPackElements(t *testing.T) {
	elems := make([]goldilocks.Element, 5)
	for i := range elems {
		elems[i].SetUint64(uint64(i + 1))
	}
	require.Equal(t, [][fields.NumLimbs]uint64{{1, 2, 3, 4}, {5, 0, 0, 0}}, PackElements(elems))
	require.Empty(t, PackElements(nil))

	packed := PackedValues(elems)
	require.Len(t, packed, 2)
	require.Equal(t, big.NewInt(5), packed[1])

	want := fields.BigFromLimbs([fields.NumLimbs]uint64{1, 2, 3, 4})
	want.Mod(want, ecc.BN254.ScalarField())
	require.Equal(t, 0, want.Cmp(packed[0]))
}

func TestElementStream(t *testing.T) {
	elems := randomElements(rand.New(rand.NewSource(2)), 3)
	s := NewElementStream(elems)
	require.Equal(t, uint(3), s.Remaining())

	for i := range elems {
		v, ok := s.Next().(*big.Int)
		require.True(t, ok)
		require.Equal(t, elems[i].Uint64(), v.Uint64())
	}
	require.Equal(t, uint(0), s.Remaining())
	require.Equal(t, 0, s.NextOrZero())

	s.Reset()
	require.Equal(t, uint(3), s.Remaining())

	ph := s.PlaceHolder()
	require.Len(t, ph.Elems, 3)
	require.Nil(t, ph.Elems[0])
}

func TestPublicsPackingCircuitR1CS(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for _, n := range []int{1, 3, 4, 9} {
		cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, NewPackingPlaceholder(n, true))
		require.NoError(t, err)

		elems := randomElements(rng, n)
		w, err := frontend.NewWitness(NewPackingAssignment(elems), ecc.BN254.ScalarField())
		require.NoError(t, err)
		require.NoError(t, cs.IsSolved(w), "%d elements", n)

		bad := NewPackingAssignment(elems)
		bad.Packed[0] = new(big.Int).Add(bad.Packed[0].(*big.Int), big.NewInt(1))
		w, err = frontend.NewWitness(bad, ecc.BN254.ScalarField())
		require.NoError(t, err)
		require.Error(t, cs.IsSolved(w), "%d elements, tampered", n)
	}
}

func TestPublicsPackingCircuitLayered(t *testing.T) {
	compilation, err := ecgo.Compile(ecc.BN254.ScalarField(), NewPackingPlaceholder(6, false))
	require.NoError(t, err, "circuit compile error")

	elems := randomElements(rand.New(rand.NewSource(4)), 6)
	inputSolver := compilation.GetInputSolver()
	witness, err := inputSolver.SolveInput(NewPackingAssignment(elems), 0)
	require.NoError(t, err, "solve witness error")

	layeredCircuit := compilation.GetLayeredCircuit()
	require.True(t, ecgoTest.CheckCircuit(layeredCircuit, witness))
}

func TestPublicsDigestCircuit(t *testing.T) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, NewDigestPlaceholder(3, true))
	require.NoError(t, err)
	require.Equal(t, 1, cs.GetNbPublicVariables()-1, "the digest is the only public input")

	elems := randomElements(rand.New(rand.NewSource(8)), 3)
	w, err := frontend.NewWitness(NewDigestAssignment(elems), ecc.BN254.ScalarField())
	require.NoError(t, err)
	require.NoError(t, cs.IsSolved(w))

	other := append([]goldilocks.Element{}, elems...)
	other[2].SetUint64(other[2].Uint64() ^ 1)
	require.NotEqual(t, 0, PublicsDigest(elems).Cmp(PublicsDigest(other)))

	bad := NewDigestAssignment(elems)
	bad.Digest = PublicsDigest(other)
	w, err = frontend.NewWitness(bad, ecc.BN254.ScalarField())
	require.NoError(t, err)
	require.Error(t, cs.IsSolved(w))
}
