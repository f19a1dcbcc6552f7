package closure

import (
	"fmt"

	"github.com/zegl/thunk/compiler/compiler/types"
	"github.com/zegl/thunk/compiler/parser"
)

// TypeOf returns the type an expression evaluates to. Constants are i64, a
// binary operation has the type of its wider operand.
func TypeOf(node parser.Node, env map[string]*types.Int) (*types.Int, error) {
	switch v := node.(type) {
	case parser.ConstantNode:
		return types.I64, nil

	case parser.NameNode:
		if t, ok := env[v.Name]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("undefined: %s", v.Name)

	case parser.OperatorNode:
		left, err := TypeOf(v.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := TypeOf(v.Right, env)
		if err != nil {
			return nil, err
		}
		return types.Wider(left, right), nil
	}

	return nil, fmt.Errorf("unsupported node: %T", node)
}

// eval computes node with every intermediate wrapped to its static type, so
// that the result matches the lowered LLVM code bit for bit.
func eval(node parser.Node, env map[string]*types.Int, vals map[string]int64) (int64, *types.Int) {
	switch v := node.(type) {
	case parser.ConstantNode:
		return v.Value, types.I64

	case parser.NameNode:
		return vals[v.Name], env[v.Name]

	case parser.OperatorNode:
		left, leftType := eval(v.Left, env, vals)
		right, rightType := eval(v.Right, env, vals)
		t := types.Wider(leftType, rightType)

		switch v.Operator {
		case parser.OP_ADD:
			return t.Wrap(left + right), t
		case parser.OP_SUB:
			return t.Wrap(left - right), t
		case parser.OP_MUL:
			return t.Wrap(left * right), t
		}
		panic("unknown operator: " + string(v.Operator))
	}

	panic(fmt.Sprintf("unsupported node: %T", node))
}
