package verifier

import (
	"errors"
	"fmt"

	"StarkCompressionPipeline/modules/fields"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/logger"
)

var (
	// ErrNotAnnotated is returned when evaluating a program that has not
	// been through InferDimensions.
	ErrNotAnnotated = errors.New("program is not dimension annotated")
	// ErrUnresolvedOperand is returned when the environment has no value
	// for an operand.
	ErrUnresolvedOperand = errors.New("operand has no value")
	// ErrDimensionMismatch is returned when a value does not fit the
	// dimension its operand was annotated with.
	ErrDimensionMismatch = errors.New("value does not match operand dimension")
)

// Environment supplies the values of every non temporary operand.
type Environment interface {
	Resolve(o *Operand) (fields.Ext3, error)
}

// MapEnvironment is an Environment backed by plain maps, keyed by operand id
// or, for trees, by tree position.
type MapEnvironment struct {
	Trees      [4]map[uint]fields.Ext3
	Consts     map[uint]goldilocks.Element
	Publics    map[uint]goldilocks.Element
	Evals      map[uint]fields.Ext3
	Challenges map[uint]fields.Ext3

	XDivXSubXi  fields.Ext3
	XDivXSubWXi fields.Ext3
}

func lookup[V any](m map[uint]V, o *Operand, key uint) (V, error) {
	v, ok := m[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s", ErrUnresolvedOperand, o)
	}
	return v, nil
}

func (env *MapEnvironment) Resolve(o *Operand) (fields.Ext3, error) {
	switch o.Kind {
	case Tree1, Tree2, Tree3, Tree4:
		return lookup(env.Trees[o.Kind.TreeIndex()], o, o.TreePos)
	case Const:
		v, err := lookup(env.Consts, o, o.ID)
		return fields.FromBase(v), err
	case Public:
		v, err := lookup(env.Publics, o, o.ID)
		return fields.FromBase(v), err
	case Number:
		var v goldilocks.Element
		v.SetUint64(o.Value)
		return fields.FromBase(v), nil
	case Eval:
		return lookup(env.Evals, o, o.ID)
	case Challenge:
		return lookup(env.Challenges, o, o.ID)
	case XDivXSubXi:
		return env.XDivXSubXi, nil
	case XDivXSubWXi:
		return env.XDivXSubWXi, nil
	default:
		return fields.Ext3{}, fmt.Errorf("%w: %s", ErrUnknownOperand, o.Kind)
	}
}

// Evaluate runs an annotated program natively, returning the scratch pad with
// the value of every temporary. Base dimension operands must resolve to base
// field values.
func Evaluate(prog *Program, env Environment) (*ScratchPad, error) {
	if !prog.Annotated() {
		return nil, ErrNotAnnotated
	}
	log := logger.Logger().With().Str("stage", "evaluate").Logger()

	sp := NewScratchPad()
	for i := range prog.Operations {
		op := &prog.Operations[i]
		if op.Dest.Kind != Temporary {
			return nil, fmt.Errorf("operation %d: %w: %s", i, ErrNonTemporaryDestination, op.Dest)
		}

		var srcs [2]fields.Ext3
		if len(op.Src) != op.Op.Arity() {
			return nil, fmt.Errorf("operation %d: %w: %s with %d sources",
				i, ErrMalformedOperation, op.Op, len(op.Src))
		}
		for j := range op.Src {
			v, err := sp.value(&op.Src[j], env)
			if err != nil {
				return nil, fmt.Errorf("operation %d source %d: %w", i, j, err)
			}
			srcs[j] = v
		}

		var res fields.Ext3
		switch op.Op {
		case OpAdd:
			res.Add(&srcs[0], &srcs[1])
		case OpSub:
			res.Sub(&srcs[0], &srcs[1])
		case OpMul:
			res.Mul(&srcs[0], &srcs[1])
		case OpCopy:
			res = srcs[0]
		default:
			return nil, fmt.Errorf("operation %d: %w: %s", i, ErrUnknownOpcode, op.Op)
		}

		if err := sp.define(op.Dest.ID, op.Dest.Dim); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		sp.Values[op.Dest.ID] = res
	}

	log.Debug().Int("operations", len(prog.Operations)).Int("temporaries", len(sp.Values)).Msg("program evaluated")
	return sp, nil
}

func (sp *ScratchPad) value(o *Operand, env Environment) (fields.Ext3, error) {
	var (
		v   fields.Ext3
		err error
	)
	if o.Kind == Temporary {
		var ok bool
		if v, ok = sp.Values[o.ID]; !ok {
			return v, fmt.Errorf("%w: %s", ErrUndefinedTemporary, o)
		}
	} else if v, err = env.Resolve(o); err != nil {
		return v, err
	}

	if o.Dim == fields.Base && !v.IsBase() {
		return v, fmt.Errorf("%w: %s holds %s", ErrDimensionMismatch, o, v)
	}
	return v, nil
}
