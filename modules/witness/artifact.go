package witness

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// NumWireColumns is the number of wire slots per compressed gate row.
const NumWireColumns = 12

const (
	wordBytes   = 8
	headerWords = 2
	recordWords = 4
)

var (
	// ErrMalformedSelectorMap is returned for a selector map that does not
	// have exactly NumWireColumns columns of equal, non zero length.
	ErrMalformedSelectorMap = errors.New("malformed selector map")
	// ErrCorruptArtifact is returned when an artifact buffer does not
	// decode to exactly what its header declares.
	ErrCorruptArtifact = errors.New("corrupt witness artifact")
	// ErrTruncatedArtifact is the ErrCorruptArtifact case of a buffer
	// shorter than its header declares.
	ErrTruncatedArtifact = fmt.Errorf("%w: truncated", ErrCorruptArtifact)
)

// Addition is a synthesized witness value w[Src0]*Coef0 + w[Src1]*Coef1.
type Addition struct {
	Src0, Src1   uint64
	Coef0, Coef1 goldilocks.Element
}

// Artifact is the wire map handed over by the circuit compressor: the
// additions to append to the solved witness, then for every wire column the
// witness index feeding each row, 0 meaning unused.
type Artifact struct {
	Additions []Addition
	// SMap[column][row]
	SMap [][]uint64
}

// NumAdditions is the number of addition records.
func (a *Artifact) NumAdditions() int {
	return len(a.Additions)
}

// RowsPerColumn is the length of the selector columns, 0 for an empty map.
func (a *Artifact) RowsPerColumn() int {
	if len(a.SMap) == 0 {
		return 0
	}
	return len(a.SMap[0])
}

func (a *Artifact) checkSelectorMap() error {
	if len(a.SMap) != NumWireColumns {
		return fmt.Errorf("%w: %d columns, expected %d",
			ErrMalformedSelectorMap, len(a.SMap), NumWireColumns)
	}
	rows := len(a.SMap[0])
	for j, col := range a.SMap {
		if len(col) != rows {
			return fmt.Errorf("%w: column %d has %d rows, column 0 has %d",
				ErrMalformedSelectorMap, j, len(col), rows)
		}
	}
	return nil
}

// MarshalBinary lays the artifact out as native-endian u64 words:
//
//	num_additions, rows_per_column
//	num_additions x (src0, src1, coef0, coef1)
//	rows_per_column x 12 selector words, row by row
func (a *Artifact) MarshalBinary() ([]byte, error) {
	if err := a.checkSelectorMap(); err != nil {
		return nil, err
	}
	rows := a.RowsPerColumn()

	nWords := headerWords + recordWords*len(a.Additions) + NumWireColumns*rows
	buf := make([]byte, 0, nWords*wordBytes)

	buf = binary.NativeEndian.AppendUint64(buf, uint64(len(a.Additions)))
	buf = binary.NativeEndian.AppendUint64(buf, uint64(rows))
	for i := range a.Additions {
		add := &a.Additions[i]
		buf = binary.NativeEndian.AppendUint64(buf, add.Src0)
		buf = binary.NativeEndian.AppendUint64(buf, add.Src1)
		buf = binary.NativeEndian.AppendUint64(buf, add.Coef0.Uint64())
		buf = binary.NativeEndian.AppendUint64(buf, add.Coef1.Uint64())
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < NumWireColumns; j++ {
			buf = binary.NativeEndian.AppendUint64(buf, a.SMap[j][i])
		}
	}
	return buf, nil
}

// UnmarshalBinary is the exact inverse of MarshalBinary. A buffer shorter
// than its header declares fails with ErrTruncatedArtifact, any other
// mismatch with ErrCorruptArtifact. The format carries no checksum.
func (a *Artifact) UnmarshalBinary(data []byte) error {
	if len(data)%wordBytes != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of words", ErrCorruptArtifact, len(data))
	}
	words := uint64(len(data) / wordBytes)
	if words < headerWords {
		return fmt.Errorf("%w: %d words, header needs %d", ErrTruncatedArtifact, words, headerWords)
	}

	word := func(i uint64) uint64 {
		return binary.NativeEndian.Uint64(data[i*wordBytes:])
	}
	nAdd, rows := word(0), word(1)

	// bound the header counts by the buffer before multiplying them
	body := words - headerWords
	if nAdd > body/recordWords {
		return fmt.Errorf("%w: %d additions declared, %d words left", ErrTruncatedArtifact, nAdd, body)
	}
	body -= recordWords * nAdd
	if rows > body/NumWireColumns {
		return fmt.Errorf("%w: %d rows declared, %d words left", ErrTruncatedArtifact, rows, body)
	}
	if body != NumWireColumns*rows {
		return fmt.Errorf("%w: %d trailing words", ErrCorruptArtifact, body-NumWireColumns*rows)
	}

	q := goldilocks.Modulus().Uint64()
	additions := make([]Addition, nAdd)
	off := uint64(headerWords)
	for i := range additions {
		c0, c1 := word(off+2), word(off+3)
		if c0 >= q || c1 >= q {
			return fmt.Errorf("%w: addition %d has non canonical coefficients (%d, %d)",
				ErrCorruptArtifact, i, c0, c1)
		}
		additions[i].Src0 = word(off)
		additions[i].Src1 = word(off + 1)
		additions[i].Coef0.SetUint64(c0)
		additions[i].Coef1.SetUint64(c1)
		off += recordWords
	}

	smap := make([][]uint64, NumWireColumns)
	for j := range smap {
		smap[j] = make([]uint64, rows)
	}
	for i := uint64(0); i < rows; i++ {
		for j := range smap {
			smap[j][i] = word(off)
			off++
		}
	}

	a.Additions = additions
	a.SMap = smap
	return nil
}
