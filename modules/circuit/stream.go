package circuit

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/frontend"
)

// ElementStream is a read cursor over the Goldilocks elements of a proof,
// consumed in the order the prover emitted them.
type ElementStream struct {
	Idx   uint
	Elems []frontend.Variable
}

// NewElementStream wraps canonical Goldilocks values as circuit inputs.
func NewElementStream(elems []goldilocks.Element) *ElementStream {
	s := ElementStream{Elems: make([]frontend.Variable, len(elems))}
	for i := range elems {
		s.Elems[i] = new(big.Int).SetUint64(elems[i].Uint64())
	}
	return &s
}

func (s *ElementStream) Next() frontend.Variable {
	var e = s.Elems[s.Idx]
	s.Idx++

	return e
}

// NextOrZero is Next past the end of the stream returning the constant 0.
func (s *ElementStream) NextOrZero() frontend.Variable {
	if s.Remaining() == 0 {
		return 0
	}
	return s.Next()
}

func (s *ElementStream) Remaining() uint {
	return uint(len(s.Elems)) - s.Idx
}

func (s *ElementStream) Reset() {
	s.Idx = 0
}

// PlaceHolder is an empty stream of the same length, for compilation.
func (s *ElementStream) PlaceHolder() *ElementStream {
	return &ElementStream{
		Idx:   0,
		Elems: make([]frontend.Variable, len(s.Elems)),
	}
}
