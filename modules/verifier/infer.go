package verifier

import (
	"fmt"

	"StarkCompressionPipeline/modules/fields"

	"github.com/consensys/gnark/logger"
)

// InferDimensions annotates every operand of prog with the dimension of the
// value it carries, in a single forward pass:
//
//   - const, number and public operands are base field values
//   - tree operands take the dimension their tree declares
//   - eval, challenge and the x/(x - xi) quotients are cubic
//   - a temporary takes the dimension recorded when it was defined
//   - the destination of copy takes its source's dimension, any other
//     destination the max of its sources
//
// Running it twice leaves the program unchanged. On error the program may be
// partially annotated.
func InferDimensions(prog *Program) error {
	log := logger.Logger().With().Str("stage", "infer").Logger()

	sp := NewScratchPad()
	for i := range prog.Operations {
		if err := inferOperation(sp, &prog.Operations[i]); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}

	log.Debug().
		Int("operations", len(prog.Operations)).
		Int("temporaries", len(sp.Dims)).
		Uint("base", sp.DimCount[fields.Base]).
		Uint("cubic", sp.DimCount[fields.Cubic]).
		Msg("dimensions inferred")
	return nil
}

func inferOperation(sp *ScratchPad, op *Operation) error {
	arity := op.Op.Arity()
	if arity == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOpcode, op.Op)
	}
	if len(op.Src) != arity {
		return fmt.Errorf("%w: %s takes %d sources, got %d",
			ErrMalformedOperation, op.Op, arity, len(op.Src))
	}

	for j := range op.Src {
		if err := sp.annotateSource(&op.Src[j]); err != nil {
			return fmt.Errorf("source %d: %w", j, err)
		}
	}

	if op.Dest.Kind != Temporary {
		return fmt.Errorf("%w: %s", ErrNonTemporaryDestination, op.Dest)
	}

	dim := op.Src[0].Dim
	if op.Op != OpCopy {
		for j := 1; j < len(op.Src); j++ {
			dim = fields.MaxDimension(dim, op.Src[j].Dim)
		}
	}
	if err := sp.define(op.Dest.ID, dim); err != nil {
		return err
	}
	op.Dest.Dim = dim
	return nil
}
