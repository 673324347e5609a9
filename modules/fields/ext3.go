package fields

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Ext3 is an element of the cubic extension Goldilocks[x] / (x^3 - x - 1),
// coefficients stored lowest degree first.
type Ext3 [3]goldilocks.Element

// NewExt3 builds an extension element from canonical coefficients.
func NewExt3(c0, c1, c2 uint64) Ext3 {
	var e Ext3
	e[0].SetUint64(c0)
	e[1].SetUint64(c1)
	e[2].SetUint64(c2)
	return e
}

// FromBase lifts a base field element to the extension.
func FromBase(b goldilocks.Element) Ext3 {
	var e Ext3
	e[0] = b
	return e
}

// IsBase reports whether the element lies in the base field.
func (e *Ext3) IsBase() bool {
	return e[1].IsZero() && e[2].IsZero()
}

// Equal compares coefficient-wise.
func (e *Ext3) Equal(other *Ext3) bool {
	return e[0].Equal(&other[0]) && e[1].Equal(&other[1]) && e[2].Equal(&other[2])
}

// Add sets e = a + b and returns e.
func (e *Ext3) Add(a, b *Ext3) *Ext3 {
	for i := range e {
		e[i].Add(&a[i], &b[i])
	}
	return e
}

// Sub sets e = a - b and returns e.
func (e *Ext3) Sub(a, b *Ext3) *Ext3 {
	for i := range e {
		e[i].Sub(&a[i], &b[i])
	}
	return e
}

// Mul sets e = a * b and returns e.
func (e *Ext3) Mul(a, b *Ext3) *Ext3 {
	// polynomial mod (x^3 - x - 1), x^3 = x + 1 and x^4 = x^2 + x
	//
	//   (a0 + a1*x + a2*x^2) * (b0 + b1*x + b2*x^2)
	// = c0 + c1*x + c2*x^2 + c3*x^3 + c4*x^4
	// = (c0 + c3) + (c1 + c3 + c4)*x + (c2 + c4)*x^2
	var c0, c1, c2, c3, c4, t goldilocks.Element

	c0.Mul(&a[0], &b[0])

	c1.Mul(&a[0], &b[1])
	t.Mul(&a[1], &b[0])
	c1.Add(&c1, &t)

	c2.Mul(&a[0], &b[2])
	t.Mul(&a[1], &b[1])
	c2.Add(&c2, &t)
	t.Mul(&a[2], &b[0])
	c2.Add(&c2, &t)

	c3.Mul(&a[1], &b[2])
	t.Mul(&a[2], &b[1])
	c3.Add(&c3, &t)

	c4.Mul(&a[2], &b[2])

	e[0].Add(&c0, &c3)
	e[1].Add(&c1, &c3)
	e[1].Add(&e[1], &c4)
	e[2].Add(&c2, &c4)
	return e
}

func (e Ext3) String() string {
	if e.IsBase() {
		return e[0].String()
	}
	return fmt.Sprintf("[%s, %s, %s]", e[0].String(), e[1].String(), e[2].String())
}
