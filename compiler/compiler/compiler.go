package compiler

import (
	"errors"

	"github.com/llir/llvm/ir"
	llvmTypes "github.com/llir/llvm/ir/types"

	"github.com/zegl/thunk/compiler/closure"
)

// Compiler lowers closure programs to LLVM IR. A Compiler builds a single
// module and is not safe for concurrent use.
type Compiler struct {
	module *ir.Module

	// functions provided by the OS, such as printf
	externalFuncs ExternalFuncs

	closures map[string]*Closure

	// printf format strings, by content
	formats map[string]*ir.Global

	mainFunc *ir.Func
}

var (
	i8  = llvmTypes.I8
	i32 = llvmTypes.I32
	i64 = llvmTypes.I64
)

func NewCompiler() *Compiler {
	c := &Compiler{
		module:   ir.NewModule(),
		closures: make(map[string]*Closure),
		formats:  make(map[string]*ir.Global),
	}

	c.createExternalFuncs()

	return c
}

// Compile lowers every closure of prog and a main function performing its
// calls in order.
func (c *Compiler) Compile(prog *closure.Program) error {
	if c.mainFunc != nil {
		return errors.New("main has already been compiled")
	}

	if err := prog.Validate(); err != nil {
		return err
	}

	for _, d := range prog.Closures {
		if _, err := c.compileClosure(d); err != nil {
			return err
		}
	}

	c.compileMain(prog.Calls)

	return nil
}

func (c *Compiler) Module() *ir.Module {
	return c.module
}

func (c *Compiler) GetIR() string {
	return c.module.String()
}
