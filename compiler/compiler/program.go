package compiler

import (
	"github.com/llir/llvm/ir/constant"
	llvmValue "github.com/llir/llvm/ir/value"

	"github.com/zegl/thunk/compiler/closure"
	"github.com/zegl/thunk/compiler/compiler/strings"
	"github.com/zegl/thunk/compiler/compiler/value"
)

// compileMain performs every call in order and prints each result on its
// own line.
func (c *Compiler) compileMain(calls []closure.Call) {
	c.mainFunc = c.module.NewFunc("main", i32)
	block := c.mainFunc.NewBlock("")

	resultFormat := strings.Toi8Ptr(c.formatString("%lld\n"))

	for _, call := range calls {
		cl := c.closures[call.Closure]
		d := cl.Definition

		captures := make([]llvmValue.Value, len(call.Captures))
		for i, v := range call.Captures {
			captures[i] = d.Captures[i].Type.Const(v)
		}

		ctx := block.NewCall(cl.Make, captures...)

		// The context is stored in main's own frame, which outlives the
		// invocation below
		slot := block.NewAlloca(cl.Context)
		block.NewStore(ctx, slot)

		args := make([]llvmValue.Value, 0, len(call.Args)+1)
		args = append(args, slot)
		for i, v := range call.Args {
			args = append(args, d.Params[i].Type.Const(v))
		}

		res := block.NewCall(cl.Invoke, args...)

		printed := widen(block, value.Value{Type: d.Result, Value: res})
		block.NewCall(c.externalFuncs.Printf, resultFormat, printed.Value)
	}

	block.NewRet(constant.NewInt(i32, 0))
}
