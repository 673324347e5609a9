package fields

import "fmt"

// Dimension tells which field a value lives in: the base field or its cubic
// extension.
type Dimension uint

const (
	// Unset marks a dimension that has not been inferred yet.
	Unset Dimension = 0
	// Base is a single Goldilocks element.
	Base Dimension = 1
	// Cubic is an element of the degree 3 extension.
	Cubic Dimension = 3
)

// Valid reports whether d is one of Base or Cubic.
func (d Dimension) Valid() bool {
	return d == Base || d == Cubic
}

func (d Dimension) String() string {
	switch d {
	case Unset:
		return "unset"
	case Base, Cubic:
		return fmt.Sprintf("%d", uint(d))
	default:
		return fmt.Sprintf("invalid(%d)", uint(d))
	}
}

// MaxDimension returns the widest of the given dimensions.
func MaxDimension(d Dimension, ds ...Dimension) Dimension {
	res := d
	for _, other := range ds {
		res = max(res, other)
	}
	return res
}
