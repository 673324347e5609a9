package verifier

import (
	"fmt"

	"StarkCompressionPipeline/modules/fields"
)

// ScratchPad holds the temporaries of one pass over a program.
type ScratchPad struct {
	// ====== dimension of every defined temporary ======
	Dims map[uint]fields.Dimension

	// ====== values, only filled by the evaluator ======
	Values map[uint]fields.Ext3

	// ====== helper field to get the statistics of the program =====
	DimCount map[fields.Dimension]uint
}

func NewScratchPad() *ScratchPad {
	return &ScratchPad{
		Dims:     make(map[uint]fields.Dimension),
		Values:   make(map[uint]fields.Ext3),
		DimCount: make(map[fields.Dimension]uint),
	}
}

// define records that temporary id holds a value of dimension dim. A
// temporary may be defined again only with the same dimension.
func (sp *ScratchPad) define(id uint, dim fields.Dimension) error {
	if prev, ok := sp.Dims[id]; ok && prev != dim {
		return fmt.Errorf("%w: tmp[%d] redefined from dimension %s to %s",
			ErrMalformedOperation, id, prev, dim)
	}
	sp.Dims[id] = dim
	sp.DimCount[dim]++
	return nil
}

// annotateSource sets the dimension of a source operand.
func (sp *ScratchPad) annotateSource(o *Operand) error {
	if o.Kind == Temporary {
		dim, ok := sp.Dims[o.ID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUndefinedTemporary, o)
		}
		o.Dim = dim
		return nil
	}

	dim, err := o.intrinsicDimension()
	if err != nil {
		return err
	}
	o.Dim = dim
	return nil
}
