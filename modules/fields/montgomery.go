package fields

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidModulus is returned for a Montgomery modulus below 2.
var ErrInvalidModulus = errors.New("invalid montgomery modulus")

// Montgomery maps values into the Montgomery domain of a modulus whose
// elements are stored as whole 64-bit limbs.
type Montgomery struct {
	modulus *big.Int
	byteLen uint
}

// NewMontgomery derives the limb-rounded byte length of modulus - 1.
func NewMontgomery(modulus *big.Int) (*Montgomery, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModulus, modulus)
	}

	rMinusOne := new(big.Int).Sub(modulus, big.NewInt(1))
	// NOTE: round up to whole limbs
	n64 := (uint(rMinusOne.BitLen()) + LimbBits - 1) / LimbBits

	return &Montgomery{
		modulus: new(big.Int).Set(modulus),
		byteLen: n64 * 8,
	}, nil
}

// BN254Montgomery is the Montgomery domain of the BN254 scalar field, the one
// gnark-crypto's fr.Element stores its limbs in.
func BN254Montgomery() *Montgomery {
	m, err := NewMontgomery(BN254.FieldModulus())
	if err != nil {
		panic(err.Error())
	}
	return m
}

// Modulus returns a copy of the modulus.
func (m *Montgomery) Modulus() *big.Int {
	return new(big.Int).Set(m.modulus)
}

// ByteLen is the size in bytes of one element, rounded up to 64-bit limbs.
func (m *Montgomery) ByteLen() uint {
	return m.byteLen
}

// ShiftBits is k in R = 2^k.
func (m *Montgomery) ShiftBits() uint {
	return m.byteLen * 8
}

// ToMontgomery returns a * 2^k mod modulus.
//
// a is not range checked: callers are expected to hand in the value they
// want mapped, normally already reduced into [0, modulus).
func (m *Montgomery) ToMontgomery(a *big.Int) *big.Int {
	res := new(big.Int).Lsh(a, m.ShiftBits())
	return res.Mod(res, m.modulus)
}

// ToMontgomery is the one-shot form of (*Montgomery).ToMontgomery.
func ToMontgomery(a, modulus *big.Int) (*big.Int, error) {
	m, err := NewMontgomery(modulus)
	if err != nil {
		return nil, err
	}
	return m.ToMontgomery(a), nil
}
