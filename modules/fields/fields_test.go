package fields

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"
)

type LimbCompositionTestingCircuit struct {
	Limbs  [NumLimbs]frontend.Variable
	Packed frontend.Variable `gnark:",public"`
}

func (c *LimbCompositionTestingCircuit) Define(api frontend.API) error {
	engine := ArithmeticEngine{API: api}
	engine.AssertLimbBounds(c.Limbs)
	engine.AssertComposition(c.Limbs, c.Packed)
	return nil
}

func packedBN254(limbs [NumLimbs]uint64) *big.Int {
	v := BigFromLimbs(limbs)
	return v.Mod(v, ecc.BN254.ScalarField())
}

func assignLimbs(limbs [NumLimbs]uint64, packed *big.Int) *LimbCompositionTestingCircuit {
	assignment := LimbCompositionTestingCircuit{Packed: packed}
	for i, l := range limbs {
		assignment.Limbs[i] = new(big.Int).SetUint64(l)
	}
	return &assignment
}

func TestLimbCompositionCircuit(t *testing.T) {
	var circuit LimbCompositionTestingCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	require.NoError(t, err, "compile limb composition circuit")

	testcases := []struct {
		name  string
		limbs [NumLimbs]uint64
	}{
		{"zero", [NumLimbs]uint64{}},
		{"field map sample", [NumLimbs]uint64{1, 1003, 2003, 0}},
		{"goldilocks maxima", [NumLimbs]uint64{
			0xffffffff00000000, 0xffffffff00000000, 0xffffffff00000000, 0xffffffff00000000}},
		{"all ones", [NumLimbs]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := frontend.NewWitness(assignLimbs(tc.limbs, packedBN254(tc.limbs)), ecc.BN254.ScalarField())
			require.NoError(t, err)
			require.NoError(t, cs.IsSolved(w), "composition should hold")

			wrong := packedBN254(tc.limbs)
			wrong.Add(wrong, big.NewInt(1))
			w, err = frontend.NewWitness(assignLimbs(tc.limbs, wrong), ecc.BN254.ScalarField())
			require.NoError(t, err)
			require.Error(t, cs.IsSolved(w), "off-by-one packed value must not satisfy")
		})
	}
}

func TestLimbCompositionRejectsWideLimb(t *testing.T) {
	var circuit LimbCompositionTestingCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	require.NoError(t, err)

	// limb0 = 2^64 and limb1 = 0 composes to the same value as limb0 = 0 and
	// limb1 = 1, only the bound check tells them apart
	assignment := LimbCompositionTestingCircuit{
		Limbs:  [NumLimbs]frontend.Variable{new(big.Int).Lsh(big.NewInt(1), 64), 0, 0, 0},
		Packed: new(big.Int).Lsh(big.NewInt(1), 64),
	}
	w, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)
	require.Error(t, cs.IsSolved(w))
}

func TestFieldEnum(t *testing.T) {
	require.Equal(t, "18446744069414584321", Goldilocks.FieldModulus().String())
	require.Equal(t, uint(8), Goldilocks.FieldBytes())
	require.Equal(t, Cubic, Goldilocks.ExtensionDegree())

	require.Equal(t, 0, BN254.FieldModulus().Cmp(ecc.BN254.ScalarField()))
	require.Equal(t, uint(32), BN254.FieldBytes())
	require.Equal(t, Base, BN254.ExtensionDegree())
}

func TestMaxDimension(t *testing.T) {
	require.Equal(t, Base, MaxDimension(Base))
	require.Equal(t, Cubic, MaxDimension(Base, Cubic))
	require.Equal(t, Cubic, MaxDimension(Cubic, Base))
	require.Equal(t, Base, MaxDimension(Base, Base))
	require.True(t, Cubic.Valid())
	require.False(t, Unset.Valid())
	require.False(t, Dimension(2).Valid())
}
