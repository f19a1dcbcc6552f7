package compiler

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	llvmTypes "github.com/llir/llvm/ir/types"

	"github.com/zegl/thunk/compiler/compiler/strings"
)

type ExternalFuncs struct {
	Printf *ir.Func
}

func (c *Compiler) createExternalFuncs() {
	printfFunc := c.module.NewFunc("printf",
		i32,
		ir.NewParam("", llvmTypes.NewPointer(i8)),
	)
	printfFunc.Sig.Variadic = true

	c.externalFuncs.Printf = printfFunc
}

// formatString returns a pointer to a private constant holding format.
// Identical formats share one global.
func (c *Compiler) formatString(format string) *ir.Global {
	if g, ok := c.formats[format]; ok {
		return g
	}

	g := c.module.NewGlobalDef(strings.Name(len(c.formats)), strings.Constant(format))
	g.Immutable = true
	g.Linkage = enum.LinkagePrivate
	c.formats[format] = g

	return g
}
