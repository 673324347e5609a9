package circuit

import (
	"math/big"

	"StarkCompressionPipeline/modules/fields"
	"StarkCompressionPipeline/modules/transcript"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

// PublicsDigest is the single BN254 scalar committing to elems: the MiMC
// transcript challenge over their packed scalars.
func PublicsDigest(elems []goldilocks.Element) *big.Int {
	t := transcript.NewNativeTranscript()
	t.AppendFs(PackedValues(elems)...)
	return t.ChallengeF()
}

// PublicsDigestCircuit is PublicsPackingCircuit with a single public input,
// the PublicsDigest of the elements.
type PublicsDigestCircuit struct {
	Elements []frontend.Variable
	Digest   frontend.Variable `gnark:",public"`

	RangeCheck bool `gnark:"-"`
}

func (c *PublicsDigestCircuit) Define(api frontend.API) error {
	engine := fields.ArithmeticEngine{API: api}
	stream := ElementStream{Elems: c.Elements}

	t, err := transcript.NewMiMCTranscript(api)
	if err != nil {
		return err
	}
	for k := 0; k < NumPacked(len(c.Elements)); k++ {
		var limbs [fields.NumLimbs]frontend.Variable
		for i := range limbs {
			limbs[i] = stream.NextOrZero()
		}
		if c.RangeCheck {
			engine.AssertLimbBounds(limbs)
		}
		t.AppendF(engine.ComposeLimbs(limbs))
	}
	api.AssertIsEqual(t.ChallengeF(), c.Digest)
	return nil
}

func NewDigestPlaceholder(n int, rangeCheck bool) *PublicsDigestCircuit {
	return &PublicsDigestCircuit{
		Elements:   make([]frontend.Variable, n),
		RangeCheck: rangeCheck,
	}
}

func NewDigestAssignment(elems []goldilocks.Element) *PublicsDigestCircuit {
	return &PublicsDigestCircuit{
		Elements: NewElementStream(elems).Elems,
		Digest:   PublicsDigest(elems),
	}
}
