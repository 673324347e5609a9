package verifier

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedTemporary is returned when a temporary is read before any
	// operation defined it.
	ErrUndefinedTemporary = errors.New("temporary used before definition")
	// ErrUnknownOpcode is returned for an operation other than add, sub, mul
	// and copy.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrUnknownOperand is returned for an operand type tag outside the
	// program spaces.
	ErrUnknownOperand = errors.New("unknown operand type")
	// ErrNonTemporaryDestination is returned when an operation writes
	// anything but a temporary.
	ErrNonTemporaryDestination = errors.New("destination is not a temporary")
	// ErrMalformedOperation covers wrong source counts, bad tree dimensions
	// and temporaries redefined with another dimension.
	ErrMalformedOperation = errors.New("malformed operation")
)

// Opcode is the arithmetic performed by one operation.
type Opcode uint8

const (
	// OpUnknown is the zero value, never valid.
	OpUnknown Opcode = iota
	OpAdd
	OpSub
	OpMul
	OpCopy
)

var opcodeNames = [...]string{
	OpUnknown: "unknown",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpCopy:    "copy",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// ParseOpcode maps a program op string to its opcode.
func ParseOpcode(s string) (Opcode, error) {
	for op := OpAdd; op <= OpCopy; op++ {
		if opcodeNames[op] == s {
			return op, nil
		}
	}
	return OpUnknown, fmt.Errorf("%w: %q", ErrUnknownOpcode, s)
}

// Arity is the number of sources the opcode reads, 0 for unknown opcodes.
func (op Opcode) Arity() int {
	switch op {
	case OpAdd, OpSub, OpMul:
		return 2
	case OpCopy:
		return 1
	default:
		return 0
	}
}

// Operation is dest = op(src...).
type Operation struct {
	Op   Opcode
	Src  []Operand
	Dest Operand
}

// Program is the flat instruction list of an arithmetized verifier check.
type Program struct {
	// NumTemporaries is the number of temporary slots declared by the
	// producer, informational only.
	NumTemporaries uint
	Operations     []Operation
}

// Annotated reports whether every operand carries a valid dimension.
func (p *Program) Annotated() bool {
	for i := range p.Operations {
		op := &p.Operations[i]
		if !op.Dest.Dim.Valid() {
			return false
		}
		for j := range op.Src {
			if !op.Src[j].Dim.Valid() {
				return false
			}
		}
	}
	return true
}
