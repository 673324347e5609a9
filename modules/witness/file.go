package witness

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// ReadArtifactFile loads a whole artifact file.
func ReadArtifactFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Artifact
	if err := a.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &a, nil
}

func WriteArtifactFile(path string, a *Artifact) error {
	data, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadWitnessFile loads a calculated witness stored as consecutive
// native-endian u64 words, one canonical Goldilocks element each.
func ReadWitnessFile(path string) ([]goldilocks.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%wordBytes != 0 {
		return nil, fmt.Errorf("%s: %w: %d bytes is not a whole number of words",
			path, ErrCorruptArtifact, len(data))
	}

	q := goldilocks.Modulus().Uint64()
	res := make([]goldilocks.Element, len(data)/wordBytes)
	for i := range res {
		v := binary.NativeEndian.Uint64(data[i*wordBytes:])
		if v >= q {
			return nil, fmt.Errorf("%s: %w: word %d holds non canonical %d", path, ErrCorruptArtifact, i, v)
		}
		res[i].SetUint64(v)
	}
	return res, nil
}

func WriteWitnessFile(path string, w []goldilocks.Element) error {
	buf := make([]byte, 0, len(w)*wordBytes)
	for i := range w {
		buf = binary.NativeEndian.AppendUint64(buf, w[i].Uint64())
	}
	return os.WriteFile(path, buf, 0o644)
}
