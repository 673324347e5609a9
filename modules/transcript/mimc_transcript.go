package transcript

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/hash/mimc"
)

// MiMCTranscript is a Fiat-Shamir transcript over the BN254 scalar field.
// Every challenge hashes the values appended since the previous one, or
// the previous state when nothing was appended.
type MiMCTranscript struct {
	api frontend.API

	// The hash function
	hasher hash.FieldHasher

	// The values to feed the hash function
	t []frontend.Variable

	// The state
	state frontend.Variable

	// helper field: counting, irrelevant to circuit
	count uint
}

func NewMiMCTranscript(api frontend.API) (*MiMCTranscript, error) {
	mimc, err := mimc.NewMiMC(api)
	T := MiMCTranscript{
		api:    api,
		t:      []frontend.Variable{},
		hasher: &mimc,
		state:  0,
	}

	return &T, err
}

func (T *MiMCTranscript) AppendF(f frontend.Variable) {
	T.count++
	T.t = append(T.t, f)
}

func (T *MiMCTranscript) AppendFs(fs ...frontend.Variable) {
	for _, f := range fs {
		T.AppendF(f)
	}
}

func (T *MiMCTranscript) ChallengeF() frontend.Variable {
	T.hasher.Reset()
	if len(T.t) > 0 {
		T.hasher.Write(T.t...)
		T.t = T.t[:0]
	} else {
		T.hasher.Write(T.state)
		T.count++
	}
	T.state = T.hasher.Sum()
	return T.state
}

func (T *MiMCTranscript) ChallengeFs(n uint) []frontend.Variable {
	cs := make([]frontend.Variable, n)
	for i := uint(0); i < n; i++ {
		cs[i] = T.ChallengeF()
	}
	return cs
}

func (T *MiMCTranscript) GetState() frontend.Variable {
	return T.state
}

// GetCount is the number of field elements hashed so far.
func (T *MiMCTranscript) GetCount() uint {
	return T.count
}
