package fields

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/holiman/uint256"
)

// ErrValueOutOfRange is returned when a big integer does not fit in
// [0, 2^256).
var ErrValueOutOfRange = errors.New("value does not fit in 256 bits")

// LimbsFromValue splits v into four 64-bit limbs, least significant limb
// first.
func LimbsFromValue(v *uint256.Int) [NumLimbs]uint64 {
	return [NumLimbs]uint64(*v)
}

// ValueFromLimbs recombines little-limb-first limbs into a 256-bit value.
// The limbs are taken as plain 64-bit words, nothing is reduced modulo the
// Goldilocks prime.
func ValueFromLimbs(limbs [NumLimbs]uint64) *uint256.Int {
	v := uint256.Int(limbs)
	return &v
}

// LimbsFromBig is LimbsFromValue for values arriving as big integers.
func LimbsFromBig(v *big.Int) ([NumLimbs]uint64, error) {
	if v.Sign() < 0 {
		return [NumLimbs]uint64{}, fmt.Errorf("%w: negative value %s", ErrValueOutOfRange, v)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return [NumLimbs]uint64{}, fmt.Errorf("%w: %d bits", ErrValueOutOfRange, v.BitLen())
	}
	return LimbsFromValue(u), nil
}

// BigFromLimbs is ValueFromLimbs returning a big integer.
func BigFromLimbs(limbs [NumLimbs]uint64) *big.Int {
	return ValueFromLimbs(limbs).ToBig()
}

// ReduceLimbs maps every limb into the Goldilocks field. Limbs at or above
// the prime wrap around, so the result is only invertible for limbs that
// were canonical to begin with.
func ReduceLimbs(limbs [NumLimbs]uint64) [NumLimbs]goldilocks.Element {
	var res [NumLimbs]goldilocks.Element
	for i, l := range limbs {
		res[i].SetUint64(l)
	}
	return res
}

// LimbsFromElements is the inverse of ReduceLimbs for canonical limbs.
func LimbsFromElements(es [NumLimbs]goldilocks.Element) [NumLimbs]uint64 {
	var res [NumLimbs]uint64
	for i := range es {
		res[i] = es[i].Uint64()
	}
	return res
}
