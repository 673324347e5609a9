package fields

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

// FieldEnum is the enum value indicating the field a proof layer runs over
type FieldEnum uint64

const (
	// Goldilocks is the FieldEnum for the 64-bit trace field
	Goldilocks FieldEnum = 1
	// BN254 is the FieldEnum for the BN254 scalar field
	BN254 FieldEnum = 2
)

// LimbBits is the width of one limb when a curve scalar is split into
// Goldilocks-sized words.
const LimbBits = 64

// NumLimbs is the number of 64-bit limbs covering a 256-bit value.
const NumLimbs = 4

// FieldModulus finds the modulus for the base field tied to the field enum
func (f FieldEnum) FieldModulus() *big.Int {
	switch f {
	case Goldilocks:
		return goldilocks.Modulus()
	case BN254:
		return ecc.BN254.ScalarField()
	default:
		panic("unknown field enum")
	}
}

// FieldBytes stand for the number of bytes of the base field modulus
// tied to the field enum
func (f FieldEnum) FieldBytes() uint {
	bitLen := f.FieldModulus().BitLen()
	// NOTE: round up against bit-byte rate
	return (uint(bitLen) + 8 - 1) / 8
}

// ExtensionDegree is the degree of the field challenges are drawn from,
// that is the polynomial extension field of the base field.
func (f FieldEnum) ExtensionDegree() Dimension {
	switch f {
	case Goldilocks:
		return Cubic
	case BN254:
		return Base
	default:
		panic("unknown field enum")
	}
}

func (f FieldEnum) String() string {
	switch f {
	case Goldilocks:
		return "goldilocks"
	case BN254:
		return "bn254"
	default:
		return "unknown"
	}
}

// ArithmeticEngine extends from frontend.API to handle values that arrive
// split into 64-bit limbs.
type ArithmeticEngine struct {
	frontend.API
}

// ComposeLimbs recombines little-limb-first 64-bit limbs into a single
// circuit variable, sum limbs[i] * 2^(64 i) over the circuit field.
func (engine *ArithmeticEngine) ComposeLimbs(
	limbs [NumLimbs]frontend.Variable) frontend.Variable {

	res := limbs[0]
	for i := 1; i < NumLimbs; i++ {
		shift := new(big.Int).Lsh(big.NewInt(1), uint(LimbBits*i))
		res = engine.Add(res, engine.Mul(limbs[i], shift))
	}
	return res
}

// AssertLimbBounds checks every limb fits into LimbBits bits, otherwise the
// composition above is not injective.
func (engine *ArithmeticEngine) AssertLimbBounds(
	limbs [NumLimbs]frontend.Variable) {

	for i := range limbs {
		engine.ToBinary(limbs[i], LimbBits)
	}
}

// AssertComposition asserts packed == ComposeLimbs(limbs).
func (engine *ArithmeticEngine) AssertComposition(
	limbs [NumLimbs]frontend.Variable, packed frontend.Variable) {

	engine.AssertIsEqual(engine.ComposeLimbs(limbs), packed)
}
