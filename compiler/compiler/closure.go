package compiler

import (
	"fmt"
	goStrings "strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	llvmTypes "github.com/llir/llvm/ir/types"
	llvmValue "github.com/llir/llvm/ir/value"

	"github.com/zegl/thunk/compiler/closure"
	"github.com/zegl/thunk/compiler/compiler/internal/pointer"
	"github.com/zegl/thunk/compiler/compiler/strings"
	"github.com/zegl/thunk/compiler/compiler/value"
)

// Closure is the lowered form of a closure definition.
//
// Context is the struct holding the captured values. Make takes the values
// to capture and returns a filled Context by value. Invoke takes a pointer to
// a Context followed by the call arguments.
type Closure struct {
	Definition *closure.Definition

	Context llvmTypes.Type
	Make    *ir.Func
	Invoke  *ir.Func
}

// contextParamName can not collide with a capture or parameter name,
// Definition.Validate only accepts identifiers and those never contain a dot
const contextParamName = "closure.ctx"

func (c *Compiler) compileClosure(d *closure.Definition) (*Closure, error) {
	if _, ok := c.closures[d.Name]; ok {
		return nil, fmt.Errorf("closure %s has already been compiled", d.Name)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	if _, err := closure.TypeOf(d.Body, d.Env()); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	fields := make([]llvmTypes.Type, len(d.Captures))
	for i, capture := range d.Captures {
		fields[i] = capture.Type.LLVM()
	}

	ctxType := c.module.NewTypeDef(d.Name+".ctx", llvmTypes.NewStruct(fields...))

	res := &Closure{
		Definition: d,
		Context:    ctxType,
		Make:       c.compileMake(d, ctxType),
		Invoke:     c.compileInvoke(d, ctxType),
	}

	c.closures[d.Name] = res

	return res, nil
}

// compileMake creates the factory. The context is assembled as a value and
// returned by value, the caller decides where it is stored.
func (c *Compiler) compileMake(d *closure.Definition, ctxType llvmTypes.Type) *ir.Func {
	params := make([]*ir.Param, len(d.Captures))
	for i, capture := range d.Captures {
		params[i] = ir.NewParam(capture.Name, capture.Type.LLVM())
	}

	fn := c.module.NewFunc(d.Name+".make", ctxType, params...)
	fn.Linkage = enum.LinkageInternal

	entry := fn.NewBlock("")

	var ctx llvmValue.Value = constant.NewZeroInitializer(ctxType)
	for i, param := range params {
		ctx = entry.NewInsertValue(ctx, param, uint64(i))
	}

	entry.NewRet(ctx)

	return fn
}

func (c *Compiler) compileInvoke(d *closure.Definition, ctxType llvmTypes.Type) *ir.Func {
	ctxParam := ir.NewParam(contextParamName, llvmTypes.NewPointer(ctxType))

	llvmParams := make([]*ir.Param, 0, len(d.Params)+1)
	llvmParams = append(llvmParams, ctxParam)
	for _, par := range d.Params {
		llvmParams = append(llvmParams, ir.NewParam(par.Name, par.Type.LLVM()))
	}

	fn := c.module.NewFunc(d.Name+".invoke", d.Result.LLVM(), llvmParams...)
	fn.Linkage = enum.LinkageInternal

	entry := fn.NewBlock("")

	vars := make(map[string]value.Value, len(d.Captures)+len(d.Params))

	// Captured values are read through the context pointer
	for i, capture := range d.Captures {
		ptr := entry.NewGetElementPtr(pointer.ElemType(ctxParam), ctxParam,
			constant.NewInt(i32, 0),
			constant.NewInt(i32, int64(i)),
		)
		vars[capture.Name] = value.Value{
			Type:  capture.Type,
			Value: entry.NewLoad(capture.Type.LLVM(), ptr),
		}
	}

	for i, par := range d.Params {
		vars[par.Name] = value.Value{
			Type:  par.Type,
			Value: llvmParams[i+1],
		}
	}

	if d.Trace {
		c.compileTrace(entry, d, vars)
	}

	res := convert(entry, c.compileValue(entry, d.Body, vars), d.Result)
	entry.NewRet(res.Value)

	return fn
}

// compileTrace prints the captured values followed by the call arguments
func (c *Compiler) compileTrace(block *ir.Block, d *closure.Definition, vars map[string]value.Value) {
	names := make([]string, 0, len(d.Captures)+len(d.Params))
	for _, capture := range d.Captures {
		names = append(names, capture.Name)
	}
	for _, par := range d.Params {
		names = append(names, par.Name)
	}

	verbs := make([]string, len(names))
	for i := range names {
		verbs[i] = "%lld"
	}

	format := c.formatString(goStrings.Join(verbs, " ") + "\n")

	args := make([]llvmValue.Value, 0, len(names)+1)
	args = append(args, strings.Toi8Ptr(format))
	for _, name := range names {
		args = append(args, widen(block, vars[name]).Value)
	}

	block.NewCall(c.externalFuncs.Printf, args...)
}
