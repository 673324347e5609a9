package fields

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMontgomeryParameters(t *testing.T) {
	bn := BN254Montgomery()
	require.Equal(t, uint(32), bn.ByteLen())
	require.Equal(t, uint(256), bn.ShiftBits())

	gl, err := NewMontgomery(goldilocks.Modulus())
	require.NoError(t, err)
	require.Equal(t, uint(8), gl.ByteLen())
	require.Equal(t, uint(64), gl.ShiftBits())

	// 2^64 + 1 needs a second limb for modulus - 1 = 2^64
	wide, err := NewMontgomery(new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1)))
	require.NoError(t, err)
	require.Equal(t, uint(16), wide.ByteLen())

	_, err = NewMontgomery(big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidModulus)
	_, err = ToMontgomery(big.NewInt(3), big.NewInt(0))
	require.ErrorIs(t, err, ErrInvalidModulus)
}

func TestBN254MontgomeryMatchesFr(t *testing.T) {
	bn := BN254Montgomery()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 128; i++ {
		a := BigFromLimbs([NumLimbs]uint64{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()})
		a.Mod(a, fr.Modulus())

		var e fr.Element
		e.SetBigInt(a)
		// fr.Element keeps its limbs in Montgomery form
		require.Equal(t, 0, BigFromLimbs([NumLimbs]uint64(e)).Cmp(bn.ToMontgomery(a)))
	}
}

func TestFieldMapSample(t *testing.T) {
	t0 := BigFromLimbs([NumLimbs]uint64{1, 1003, 2003, 0})
	mt, err := ToMontgomery(t0, fr.Modulus())
	require.NoError(t, err)

	limbs, err := LimbsFromBig(mt)
	require.NoError(t, err)

	var e fr.Element
	e.SetBigInt(t0)
	require.Equal(t, [NumLimbs]uint64(e), limbs)
}

func TestMontgomeryTwice(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	moduli := []*big.Int{fr.Modulus(), goldilocks.Modulus(), big.NewInt(97)}

	for _, r := range moduli {
		m, err := NewMontgomery(r)
		require.NoError(t, err)

		r2k := new(big.Int).Lsh(big.NewInt(1), 2*m.ShiftBits())
		r2k.Mod(r2k, r)

		for i := 0; i < 32; i++ {
			a := new(big.Int).SetUint64(rng.Uint64())
			a.Mod(a, r)

			expected := new(big.Int).Mul(a, r2k)
			expected.Mod(expected, r)
			require.Equal(t, 0, expected.Cmp(m.ToMontgomery(m.ToMontgomery(a))))
		}
	}
}

func TestMontgomeryIsBijectionOnSmallModulus(t *testing.T) {
	r := big.NewInt(97)
	m, err := NewMontgomery(r)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for a := int64(0); a < 97; a++ {
		v := m.ToMontgomery(big.NewInt(a)).Int64()
		require.False(t, seen[v], "image %d hit twice", v)
		seen[v] = true
	}
	require.Len(t, seen, 97)
}
