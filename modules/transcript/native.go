package transcript

import (
	"hash"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// NativeTranscript follows the absorb and squeeze schedule of MiMCTranscript
// outside of a circuit, so the prover can compute the challenges the circuit
// will recompute.
type NativeTranscript struct {
	hasher hash.Hash
	t      []fr.Element
	state  fr.Element
}

func NewNativeTranscript() *NativeTranscript {
	return &NativeTranscript{hasher: mimc.NewMiMC()}
}

// AppendF absorbs v reduced modulo the BN254 scalar field.
func (T *NativeTranscript) AppendF(v *big.Int) {
	var e fr.Element
	e.SetBigInt(v)
	T.t = append(T.t, e)
}

func (T *NativeTranscript) AppendFs(vs ...*big.Int) {
	for _, v := range vs {
		T.AppendF(v)
	}
}

func (T *NativeTranscript) ChallengeF() *big.Int {
	T.hasher.Reset()
	if len(T.t) > 0 {
		for i := range T.t {
			T.write(&T.t[i])
		}
		T.t = T.t[:0]
	} else {
		T.write(&T.state)
	}
	T.state.SetBytes(T.hasher.Sum(nil))
	return T.state.BigInt(new(big.Int))
}

func (T *NativeTranscript) write(e *fr.Element) {
	b := e.Bytes()
	// canonical 32 byte blocks are always accepted
	if _, err := T.hasher.Write(b[:]); err != nil {
		panic(err)
	}
}
