package witness

import (
	"errors"
	"fmt"
	"io"
	"math/bits"

	"StarkCompressionPipeline/modules/trace"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/logger"
)

// ErrIndexOutOfRange is returned when an addition or a selector points past
// the witness built so far.
var ErrIndexOutOfRange = errors.New("witness index out of range")

// PaddedRows is the trace length holding n selector rows,
// 2^(floor(log2(n - 1)) + 1) with floor(log2(0)) taken as 0. It is a power
// of two, at least 2, and never below n.
func PaddedRows(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d rows", ErrMalformedSelectorMap, n)
	}
	// bits.Len64(x) = floor(log2(x)) + 1 for x > 0
	return 1 << max(bits.Len64(uint64(n-1)), 1), nil
}

// Columns are the reconstructed wire columns of the second trace.
type Columns struct {
	Wires [NumWireColumns][]goldilocks.Element
}

// Len is the padded number of rows.
func (c *Columns) Len() int {
	return len(c.Wires[0])
}

// Write stores the columns in the polynomial file layout, row by row.
func (c *Columns) Write(w io.Writer) error {
	return trace.WriteColumns(w, c.Wires[:]...)
}

// Extend returns calculated followed by one value per addition, evaluated in
// order so an addition may read the ones before it. calculated is not
// modified.
func Extend(calculated []goldilocks.Element, additions []Addition) ([]goldilocks.Element, error) {
	w := make([]goldilocks.Element, len(calculated), len(calculated)+len(additions))
	copy(w, calculated)

	for i := range additions {
		add := &additions[i]
		n := uint64(len(w))
		if add.Src0 >= n || add.Src1 >= n {
			return nil, fmt.Errorf("%w: addition %d reads (%d, %d) with %d values",
				ErrIndexOutOfRange, i, add.Src0, add.Src1, n)
		}
		var v, t goldilocks.Element
		v.Mul(&w[add.Src0], &add.Coef0)
		t.Mul(&w[add.Src1], &add.Coef1)
		v.Add(&v, &t)
		w = append(w, v)
	}
	return w, nil
}

// Reconstruct fills the wire columns from a solved witness and the artifact.
// Selector 0 and the padding rows up to PaddedRows are zero.
func Reconstruct(calculated []goldilocks.Element, a *Artifact) (*Columns, error) {
	if err := a.checkSelectorMap(); err != nil {
		return nil, err
	}
	rows := a.RowsPerColumn()
	padded, err := PaddedRows(rows)
	if err != nil {
		return nil, err
	}

	w, err := Extend(calculated, a.Additions)
	if err != nil {
		return nil, err
	}

	log := logger.Logger().With().Str("stage", "reconstruct").Logger()
	log.Debug().
		Int("calculated", len(calculated)).
		Int("additions", len(a.Additions)).
		Int("rows", rows).
		Int("paddedRows", padded).
		Msg("reconstructing wire columns")

	n := uint64(len(w))
	res := &Columns{}
	for j := range res.Wires {
		col := make([]goldilocks.Element, padded)
		for i, idx := range a.SMap[j] {
			if idx == 0 {
				continue
			}
			if idx >= n {
				return nil, fmt.Errorf("%w: column %d row %d selects %d with %d values",
					ErrIndexOutOfRange, j, i, idx, n)
			}
			col[i] = w[idx]
		}
		res.Wires[j] = col
	}
	return res, nil
}
