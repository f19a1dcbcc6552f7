package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"

	"github.com/zegl/thunk/compiler/compiler/types"
	"github.com/zegl/thunk/compiler/compiler/value"
	"github.com/zegl/thunk/compiler/parser"
)

func (c *Compiler) compileValue(block *ir.Block, node parser.Node, vars map[string]value.Value) value.Value {
	switch v := node.(type) {
	case parser.ConstantNode:
		return value.Value{
			Type:  types.I64,
			Value: types.I64.Const(v.Value),
		}

	case parser.NameNode:
		if val, ok := vars[v.Name]; ok {
			return val
		}
		panic("undefined variable: " + v.Name)

	case parser.OperatorNode:
		left := c.compileValue(block, v.Left, vars)
		right := c.compileValue(block, v.Right, vars)

		// Both sides are promoted to the widest type
		resType := types.Wider(left.Type, right.Type)
		left = convert(block, left, resType)
		right = convert(block, right, resType)

		switch v.Operator {
		case parser.OP_ADD:
			return value.Value{Type: resType, Value: block.NewAdd(left.Value, right.Value)}
		case parser.OP_SUB:
			return value.Value{Type: resType, Value: block.NewSub(left.Value, right.Value)}
		case parser.OP_MUL:
			return value.Value{Type: resType, Value: block.NewMul(left.Value, right.Value)}
		}

		panic("unknown operator: " + string(v.Operator))
	}

	panic(fmt.Sprintf("compileValue fail: %+v", node))
}

// convert sign extends or truncates val to target
func convert(block *ir.Block, val value.Value, target *types.Int) value.Value {
	// Same size, nothing to do here
	if val.Type.Size() == target.Size() {
		return value.Value{Type: target, Value: val.Value}
	}

	if val.Type.Size() < target.Size() {
		return value.Value{Type: target, Value: block.NewSExt(val.Value, target.LLVM())}
	}

	return value.Value{Type: target, Value: block.NewTrunc(val.Value, target.LLVM())}
}

// widen converts val to i64, the type printf expects for %lld
func widen(block *ir.Block, val value.Value) value.Value {
	return convert(block, val, types.I64)
}
