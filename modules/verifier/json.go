package verifier

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"

	"StarkCompressionPipeline/modules/fields"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

type operandJSON struct {
	Type    string `json:"type"`
	ID      *uint  `json:"id,omitempty"`
	TreePos *uint  `json:"treePos,omitempty"`
	Dim     uint   `json:"dim,omitempty"`
	Value   string `json:"value,omitempty"`
}

type operationJSON struct {
	Op   string        `json:"op"`
	Dest operandJSON   `json:"dest"`
	Src  []operandJSON `json:"src"`
}

type programJSON struct {
	TmpUsed uint            `json:"tmpUsed"`
	Code    []operationJSON `json:"code"`
}

// Tree operands reuse "dim" for the dimension their tree declares, which is
// also the inferred dimension.
func (o Operand) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.toJSON())
}

func (o *Operand) UnmarshalJSON(data []byte) error {
	var oj operandJSON
	if err := json.Unmarshal(data, &oj); err != nil {
		return err
	}
	res, err := operandFromJSON(&oj)
	if err != nil {
		return err
	}
	*o = res
	return nil
}

func (o *Operand) toJSON() operandJSON {
	oj := operandJSON{Type: o.Kind.String(), Dim: uint(o.Dim)}
	switch {
	case o.Kind.IsTree():
		pos := o.TreePos
		oj.TreePos = &pos
		oj.Dim = uint(o.TreeDim)
	case o.Kind == Number:
		oj.Value = strconv.FormatUint(o.Value, 10)
	case o.Kind == XDivXSubXi || o.Kind == XDivXSubWXi:
	default:
		id := o.ID
		oj.ID = &id
	}
	return oj
}

func operandFromJSON(oj *operandJSON) (Operand, error) {
	kind, err := ParseOperandKind(oj.Type)
	if err != nil {
		return Operand{}, err
	}

	o := Operand{Kind: kind}
	switch {
	case kind.IsTree():
		if oj.TreePos == nil {
			return o, fmt.Errorf("%w: %s without treePos", ErrMalformedOperation, kind)
		}
		o.TreePos = *oj.TreePos
		o.TreeDim = fields.Dimension(oj.Dim)
		if o.TreeDim.Valid() {
			o.Dim = o.TreeDim
		}
	case kind == Number:
		v, ok := new(big.Int).SetString(oj.Value, 10)
		if !ok {
			return o, fmt.Errorf("%w: number %q", ErrMalformedOperation, oj.Value)
		}
		// literals may be written unreduced or negative
		v.Mod(v, goldilocks.Modulus())
		o.Value = v.Uint64()
		o.Dim = fields.Dimension(oj.Dim)
	case kind == XDivXSubXi || kind == XDivXSubWXi:
		o.Dim = fields.Dimension(oj.Dim)
	default:
		if oj.ID == nil {
			return o, fmt.Errorf("%w: %s without id", ErrMalformedOperation, kind)
		}
		o.ID = *oj.ID
		o.Dim = fields.Dimension(oj.Dim)
	}

	if o.Dim != fields.Unset && !o.Dim.Valid() {
		return o, fmt.Errorf("%w: %s with dimension %d", ErrMalformedOperation, kind, oj.Dim)
	}
	return o, nil
}

func (p *Program) MarshalJSON() ([]byte, error) {
	pj := programJSON{TmpUsed: p.NumTemporaries, Code: make([]operationJSON, len(p.Operations))}
	for i := range p.Operations {
		op := &p.Operations[i]
		oj := operationJSON{
			Op:   op.Op.String(),
			Dest: op.Dest.toJSON(),
			Src:  make([]operandJSON, len(op.Src)),
		}
		for j := range op.Src {
			oj.Src[j] = op.Src[j].toJSON()
		}
		pj.Code[i] = oj
	}
	return json.Marshal(&pj)
}

// UnmarshalJSON parses a program. Opcodes are validated here as well as in
// InferDimensions so a bad program fails on load.
func (p *Program) UnmarshalJSON(data []byte) error {
	var pj programJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}

	ops := make([]Operation, len(pj.Code))
	for i := range pj.Code {
		oj := &pj.Code[i]
		op, err := ParseOpcode(oj.Op)
		if err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		ops[i].Op = op
		if ops[i].Dest, err = operandFromJSON(&oj.Dest); err != nil {
			return fmt.Errorf("operation %d dest: %w", i, err)
		}
		ops[i].Src = make([]Operand, len(oj.Src))
		for j := range oj.Src {
			if ops[i].Src[j], err = operandFromJSON(&oj.Src[j]); err != nil {
				return fmt.Errorf("operation %d source %d: %w", i, j, err)
			}
		}
	}

	p.NumTemporaries = pj.TmpUsed
	p.Operations = ops
	return nil
}

// ReadProgram decodes a program from r.
func ReadProgram(r io.Reader) (*Program, error) {
	var p Program
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadProgramFile decodes the program stored at path.
func ReadProgramFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadProgram(f)
}

// WriteProgram encodes p to w, indented.
func WriteProgram(w io.Writer, p *Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
