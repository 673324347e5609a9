package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"StarkCompressionPipeline/modules/fields"
)

var (
	// ErrUnsupportedHashType is returned for a verification hash type that no
	// downstream circuit template knows how to render.
	ErrUnsupportedHashType = errors.New("unsupported verification hash type")
	// ErrInvalidStarkStruct is returned for inconsistent FRI parameters.
	ErrInvalidStarkStruct = errors.New("invalid stark struct")
)

const (
	// HashTypeGL hashes Merkle trees over Goldilocks, the first proof layer.
	HashTypeGL = "GL"
	// HashTypeBN128 hashes Merkle trees over the BN254 scalar field, used by
	// the layer that gets verified inside a BN254 circuit.
	HashTypeBN128 = "BN128"
)

// Step is one FRI folding step, the domain size after folding is 2^NBits.
type Step struct {
	NBits uint `json:"nBits"`
}

// StarkStruct collects the proof parameters of one STARK layer.
type StarkStruct struct {
	NBits                uint   `json:"nBits"`
	NBitsExt             uint   `json:"nBitsExt"`
	NQueries             uint   `json:"nQueries"`
	VerificationHashType string `json:"verificationHashType"`
	Steps                []Step `json:"steps"`
}

// DefaultStarkStruct returns the parameters of the Fibonacci layer.
func DefaultStarkStruct() *StarkStruct {
	return &StarkStruct{
		NBits:                10,
		NBitsExt:             14,
		NQueries:             32,
		VerificationHashType: HashTypeGL,
		Steps:                []Step{{NBits: 14}, {NBits: 9}, {NBits: 4}},
	}
}

// Load reads a stark struct document from path and validates it.
func Load(path string) (*StarkStruct, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stark struct: %w", err)
	}

	var s StarkStruct
	if err = json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse stark struct %s: %w", path, err)
	}

	if err = s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the hash type and the shape of the FRI steps.
func (s *StarkStruct) Validate() error {
	if _, err := s.HashField(); err != nil {
		return err
	}

	if s.NBits == 0 {
		return fmt.Errorf("%w: nBits must be positive", ErrInvalidStarkStruct)
	}
	// the trace length 2^nBits is used as an int
	if s.NBits >= 63 {
		return fmt.Errorf("%w: nBits %d too large", ErrInvalidStarkStruct, s.NBits)
	}
	if s.NBitsExt < s.NBits {
		return fmt.Errorf("%w: nBitsExt %d below nBits %d", ErrInvalidStarkStruct, s.NBitsExt, s.NBits)
	}
	if s.NQueries == 0 {
		return fmt.Errorf("%w: nQueries must be positive", ErrInvalidStarkStruct)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no FRI steps", ErrInvalidStarkStruct)
	}
	if s.Steps[0].NBits != s.NBitsExt {
		return fmt.Errorf("%w: first step nBits %d differs from nBitsExt %d",
			ErrInvalidStarkStruct, s.Steps[0].NBits, s.NBitsExt)
	}
	for i := 1; i < len(s.Steps); i++ {
		if s.Steps[i].NBits >= s.Steps[i-1].NBits {
			return fmt.Errorf("%w: step %d does not fold (%d -> %d)",
				ErrInvalidStarkStruct, i, s.Steps[i-1].NBits, s.Steps[i].NBits)
		}
	}

	return nil
}

// HashField maps the verification hash type to the field its Merkle trees
// are hashed over.
func (s *StarkStruct) HashField() (fields.FieldEnum, error) {
	switch s.VerificationHashType {
	case HashTypeGL:
		return fields.Goldilocks, nil
	case HashTypeBN128:
		return fields.BN254, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedHashType, s.VerificationHashType)
	}
}

// TraceLength is the number of rows of the execution trace, 2^nBits.
func (s *StarkStruct) TraceLength() int {
	return 1 << s.NBits
}

// BlowupBits is nBitsExt - nBits, the log of the low degree extension factor.
func (s *StarkStruct) BlowupBits() uint {
	return s.NBitsExt - s.NBits
}

// WithNBits sets the trace size, keeps the blowup factor and drops the FRI
// steps that no longer fold.
func (s *StarkStruct) WithNBits(nBits uint) *StarkStruct {
	blowup := s.BlowupBits()
	s.NBits = nBits
	s.NBitsExt = nBits + blowup

	steps := []Step{{NBits: s.NBitsExt}}
	for i := 1; i < len(s.Steps); i++ {
		if s.Steps[i].NBits < steps[len(steps)-1].NBits {
			steps = append(steps, s.Steps[i])
		}
	}
	s.Steps = steps
	return s
}

// WithHashType sets the verification hash type.
func (s *StarkStruct) WithHashType(hashType string) *StarkStruct {
	s.VerificationHashType = hashType
	return s
}
