package trace

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

var (
	// ErrEmptyTrace is returned for a zero length column request.
	ErrEmptyTrace = errors.New("trace length must be positive")
	// ErrTraceTooShort is returned when there is no room for both seeds and
	// one derived step.
	ErrTraceTooShort = errors.New("trace needs at least 2 rows")
)

// BuildBoundaryColumn returns the ISLAST constant column: zero on every row
// but the last one.
func BuildBoundaryColumn(length int) ([]goldilocks.Element, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyTrace, length)
	}

	isLast := make([]goldilocks.Element, length)
	isLast[length-1].SetOne()
	return isLast, nil
}

// BuildTrace runs the Fibonacci state machine for length rows.
//
// Row 0 holds the seeds, every following row shifts the pair forward:
// before[i] = last[i-1] and last[i] = before[i-1] + last[i-1]. The returned
// final value is last[length-1].
func BuildTrace(length int, seed0, seed1 goldilocks.Element) (
	before, last []goldilocks.Element, final goldilocks.Element, err error) {

	if length < 2 {
		err = fmt.Errorf("%w: got %d", ErrTraceTooShort, length)
		return
	}

	before = make([]goldilocks.Element, length)
	last = make([]goldilocks.Element, length)

	before[0] = seed0
	last[0] = seed1
	for i := 1; i < length; i++ {
		before[i] = last[i-1]
		last[i].Add(&before[i-1], &last[i-1])
	}

	final = last[length-1]
	return
}

// Columns holds the Fibonacci constant column and both committed columns.
type Columns struct {
	IsLast     []goldilocks.Element
	BeforeLast []goldilocks.Element
	Last       []goldilocks.Element

	Output goldilocks.Element
}

// Publics are the values the proof exposes: both seeds and the output.
type Publics struct {
	In1 goldilocks.Element
	In2 goldilocks.Element
	Out goldilocks.Element
}

// Elements lists the publics in declaration order.
func (p Publics) Elements() []goldilocks.Element {
	return []goldilocks.Element{p.In1, p.In2, p.Out}
}

// Len is the number of rows.
func (c *Columns) Len() int {
	return len(c.Last)
}

// Publics reads the public values off the trace.
func (c *Columns) Publics() Publics {
	return Publics{
		In1: c.BeforeLast[0],
		In2: c.Last[0],
		Out: c.Output,
	}
}

// Fibonacci generates traces of a fixed length.
type Fibonacci struct {
	length int
}

// NewFibonacci returns a machine producing traces of length rows.
func NewFibonacci(length int) (*Fibonacci, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTraceTooShort, length)
	}
	return &Fibonacci{length: length}, nil
}

// Length is the number of rows of the generated traces.
func (f *Fibonacci) Length() int {
	return f.length
}

// BuildConstants returns the constant columns, which only depend on the
// trace length.
func (f *Fibonacci) BuildConstants() ([]goldilocks.Element, error) {
	return BuildBoundaryColumn(f.length)
}

// Execute builds constant and committed columns for the given seeds.
func (f *Fibonacci) Execute(seed0, seed1 goldilocks.Element) (*Columns, error) {
	isLast, err := f.BuildConstants()
	if err != nil {
		return nil, err
	}

	before, last, final, err := BuildTrace(f.length, seed0, seed1)
	if err != nil {
		return nil, err
	}

	return &Columns{
		IsLast:     isLast,
		BeforeLast: before,
		Last:       last,
		Output:     final,
	}, nil
}
