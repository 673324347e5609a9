package trace

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// ErrConstraintViolated is returned when a trace row breaks one of the
// Fibonacci identities.
var ErrConstraintViolated = errors.New("trace constraint violated")

// CheckTransitions re-evaluates the trace identities on every row:
//
//	(beforeLast' - last) * (1 - isLast) = 0
//	(last' - (beforeLast + last)) * (1 - isLast) = 0
//
// plus isLast being boolean and the output matching the last row.
func CheckTransitions(c *Columns) error {
	n := c.Len()
	if n == 0 || len(c.IsLast) != n || len(c.BeforeLast) != n {
		return fmt.Errorf("%w: column lengths %d/%d/%d",
			ErrConstraintViolated, len(c.IsLast), len(c.BeforeLast), len(c.Last))
	}

	var one goldilocks.Element
	one.SetOne()

	for i := 0; i < n; i++ {
		var notLast, t goldilocks.Element
		notLast.Sub(&one, &c.IsLast[i])

		// isLast * (1 - isLast) = 0
		t.Mul(&c.IsLast[i], &notLast)
		if !t.IsZero() {
			return fmt.Errorf("%w: row %d: ISLAST not boolean", ErrConstraintViolated, i)
		}

		// the next row wraps around the domain
		next := (i + 1) % n

		t.Sub(&c.BeforeLast[next], &c.Last[i])
		t.Mul(&t, &notLast)
		if !t.IsZero() {
			return fmt.Errorf("%w: row %d: aBeforeLast' != aLast", ErrConstraintViolated, i)
		}

		var sum goldilocks.Element
		sum.Add(&c.BeforeLast[i], &c.Last[i])
		t.Sub(&c.Last[next], &sum)
		t.Mul(&t, &notLast)
		if !t.IsZero() {
			return fmt.Errorf("%w: row %d: aLast' != aBeforeLast + aLast", ErrConstraintViolated, i)
		}
	}

	if !c.IsLast[n-1].IsOne() {
		return fmt.Errorf("%w: row %d: ISLAST not set on the last row", ErrConstraintViolated, n-1)
	}
	if !c.Last[n-1].Equal(&c.Output) {
		return fmt.Errorf("%w: output %s differs from last row %s",
			ErrConstraintViolated, c.Output.String(), c.Last[n-1].String())
	}

	return nil
}
