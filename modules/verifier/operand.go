package verifier

import (
	"fmt"

	"StarkCompressionPipeline/modules/fields"
)

// OperandKind is the space an operand points into.
type OperandKind uint8

const (
	// Temporary is a write-once scratch slot defined by an earlier operation.
	Temporary OperandKind = iota
	// Tree1 to Tree4 are the committed polynomial trees, one per stage.
	Tree1
	Tree2
	Tree3
	Tree4
	// Const is a constant polynomial value.
	Const
	// Eval is a polynomial evaluation at the challenge point.
	Eval
	// Number is a literal base field value.
	Number
	// Public is a public input.
	Public
	// Challenge is a verifier challenge.
	Challenge
	// XDivXSubXi is x / (x - xi).
	XDivXSubXi
	// XDivXSubWXi is x / (x - w xi).
	XDivXSubWXi
)

var kindNames = [...]string{
	Temporary:   "tmp",
	Tree1:       "tree1",
	Tree2:       "tree2",
	Tree3:       "tree3",
	Tree4:       "tree4",
	Const:       "const",
	Eval:        "eval",
	Number:      "number",
	Public:      "public",
	Challenge:   "challenge",
	XDivXSubXi:  "xDivXSubXi",
	XDivXSubWXi: "xDivXSubWXi",
}

func (k OperandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseOperandKind maps a program type tag to its kind.
func ParseOperandKind(tag string) (OperandKind, error) {
	for k, name := range kindNames {
		if name == tag {
			return OperandKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperand, tag)
}

// IsTree reports whether the operand reads a committed tree.
func (k OperandKind) IsTree() bool {
	return k >= Tree1 && k <= Tree4
}

// TreeIndex is the zero based stage of a tree kind.
func (k OperandKind) TreeIndex() int {
	return int(k - Tree1)
}

// Operand is a tagged reference into one of the program spaces. Which of
// the payload fields matter depends on Kind:
//
//	Temporary, Const, Eval, Public, Challenge: ID
//	Tree1..Tree4:                              TreePos, TreeDim
//	Number:                                    Value
//
// Dim is filled in by InferDimensions.
type Operand struct {
	Kind OperandKind

	ID      uint
	TreePos uint
	TreeDim fields.Dimension
	Value   uint64

	Dim fields.Dimension
}

// Tmp is a shorthand for a temporary operand.
func Tmp(id uint) Operand {
	return Operand{Kind: Temporary, ID: id}
}

// intrinsicDimension is the dimension of operands whose space fixes it.
func (o *Operand) intrinsicDimension() (fields.Dimension, error) {
	switch o.Kind {
	case Const, Number, Public:
		return fields.Base, nil
	case Tree1, Tree2, Tree3, Tree4:
		if !o.TreeDim.Valid() {
			return fields.Unset, fmt.Errorf("%w: %s at %d declares dimension %s",
				ErrMalformedOperation, o.Kind, o.TreePos, o.TreeDim)
		}
		return o.TreeDim, nil
	case Eval, Challenge, XDivXSubXi, XDivXSubWXi:
		return fields.Cubic, nil
	default:
		return fields.Unset, fmt.Errorf("%w: %s", ErrUnknownOperand, o.Kind)
	}
}

func (o Operand) String() string {
	switch {
	case o.Kind.IsTree():
		return fmt.Sprintf("%s[%d]", o.Kind, o.TreePos)
	case o.Kind == Number:
		return fmt.Sprintf("%d", o.Value)
	case o.Kind == XDivXSubXi || o.Kind == XDivXSubWXi:
		return o.Kind.String()
	default:
		return fmt.Sprintf("%s[%d]", o.Kind, o.ID)
	}
}
