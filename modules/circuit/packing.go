package circuit

import (
	"math/big"

	"StarkCompressionPipeline/modules/fields"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

// NumPacked is the number of BN254 scalars holding n Goldilocks elements,
// fields.NumLimbs per scalar.
func NumPacked(n int) int {
	return (n + fields.NumLimbs - 1) / fields.NumLimbs
}

// PackElements groups elements into little-limb-first chunks of
// fields.NumLimbs, zero padding the last one.
func PackElements(elems []goldilocks.Element) [][fields.NumLimbs]uint64 {
	res := make([][fields.NumLimbs]uint64, NumPacked(len(elems)))
	for i := range elems {
		res[i/fields.NumLimbs][i%fields.NumLimbs] = elems[i].Uint64()
	}
	return res
}

// PackedValues composes every chunk of PackElements into a BN254 scalar.
func PackedValues(elems []goldilocks.Element) []*big.Int {
	r := ecc.BN254.ScalarField()
	chunks := PackElements(elems)
	res := make([]*big.Int, len(chunks))
	for k, limbs := range chunks {
		v := fields.ValueFromLimbs(limbs).ToBig()
		res[k] = v.Mod(v, r)
	}
	return res
}

// PublicsPackingCircuit exposes the Goldilocks publics of a trace proof to a
// BN254 proof system: each public scalar is the composition of the next
// fields.NumLimbs elements.
type PublicsPackingCircuit struct {
	Elements []frontend.Variable
	Packed   []frontend.Variable `gnark:",public"`

	// RangeCheck bounds every element to 64 bits.
	RangeCheck bool `gnark:"-"`
}

func (c *PublicsPackingCircuit) Define(api frontend.API) error {
	engine := fields.ArithmeticEngine{API: api}
	stream := ElementStream{Elems: c.Elements}

	for k := range c.Packed {
		var limbs [fields.NumLimbs]frontend.Variable
		for i := range limbs {
			limbs[i] = stream.NextOrZero()
		}
		if c.RangeCheck {
			engine.AssertLimbBounds(limbs)
		}
		engine.AssertComposition(limbs, c.Packed[k])
	}
	return nil
}

// NewPackingPlaceholder is the circuit shape for n elements.
func NewPackingPlaceholder(n int, rangeCheck bool) *PublicsPackingCircuit {
	return &PublicsPackingCircuit{
		Elements:   make([]frontend.Variable, n),
		Packed:     make([]frontend.Variable, NumPacked(n)),
		RangeCheck: rangeCheck,
	}
}

// NewPackingAssignment assigns elems and their packed scalars.
func NewPackingAssignment(elems []goldilocks.Element) *PublicsPackingCircuit {
	packed := PackedValues(elems)
	assignment := PublicsPackingCircuit{
		Elements: NewElementStream(elems).Elems,
		Packed:   make([]frontend.Variable, len(packed)),
	}
	for k, v := range packed {
		assignment.Packed[k] = v
	}
	return &assignment
}
