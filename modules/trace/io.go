package trace

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// ErrMalformedPolFile is returned when a polynomial file does not hold a
// whole number of canonical rows.
var ErrMalformedPolFile = errors.New("malformed polynomial file")

// WordBytes is the size of one serialized Goldilocks element.
const WordBytes = 8

// PolFileSize is the byte size of a polynomial file holding nCols columns of
// nRows rows.
func PolFileSize(nCols, nRows int) int64 {
	return int64(nCols) * int64(nRows) * WordBytes
}

// WriteColumns writes equal length columns row by row, each element as a
// little-endian u64, the layout the prover maps its polynomial files with.
func WriteColumns(w io.Writer, cols ...[]goldilocks.Element) error {
	if len(cols) == 0 {
		return nil
	}
	nRows := len(cols[0])
	for j, col := range cols {
		if len(col) != nRows {
			return fmt.Errorf("column %d has %d rows, expected %d", j, len(col), nRows)
		}
	}

	bw := bufio.NewWriter(w)
	var buf [WordBytes]byte
	for i := 0; i < nRows; i++ {
		for _, col := range cols {
			binary.LittleEndian.PutUint64(buf[:], col[i].Uint64())
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadColumns is the inverse of WriteColumns for nCols columns, reading r
// until EOF.
func ReadColumns(r io.Reader, nCols int) ([][]goldilocks.Element, error) {
	if nCols <= 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrMalformedPolFile, nCols)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rowBytes := nCols * WordBytes
	if len(raw)%rowBytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of the %d byte row",
			ErrMalformedPolFile, len(raw), rowBytes)
	}
	nRows := len(raw) / rowBytes

	cols := make([][]goldilocks.Element, nCols)
	for j := range cols {
		cols[j] = make([]goldilocks.Element, nRows)
	}

	q := goldilocks.Modulus().Uint64()
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			off := (i*nCols + j) * WordBytes
			v := binary.LittleEndian.Uint64(raw[off : off+WordBytes])
			if v >= q {
				return nil, fmt.Errorf("%w: row %d column %d holds non canonical %d",
					ErrMalformedPolFile, i, j, v)
			}
			cols[j][i].SetUint64(v)
		}
	}
	return cols, nil
}
