// Package closure describes closures that capture integer values, and
// evaluates them through thunk.Thunk.
package closure

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zegl/thunk/compiler/compiler/types"
	"github.com/zegl/thunk/compiler/lexer"
	"github.com/zegl/thunk/compiler/parser"
	"github.com/zegl/thunk/thunk"
)

type Var struct {
	Name string
	Type *types.Int
}

// Definition is a closure factory. Captures are laid out in the context in
// declaration order, Params are the call-time arguments.
type Definition struct {
	Name     string
	Captures []Var
	Params   []Var
	Result   *types.Int
	Body     parser.Node

	// Trace prints the captured values and call arguments on every call
	Trace bool
}

// Context is the owned block of captured values. It is filled once when the
// thunk is made and exposes no way to change it afterwards.
type Context struct {
	values []int64
}

func (c Context) Len() int {
	return len(c.values)
}

func (c Context) Get(i int) int64 {
	return c.values[i]
}

type Thunk = thunk.Thunk[Context, []int64, int64]

func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("closure has no name")
	}
	if !isIdentifier(d.Name) {
		return fmt.Errorf("invalid closure name %q", d.Name)
	}
	if d.Result == nil {
		return fmt.Errorf("%s: no result type", d.Name)
	}
	if d.Body == nil {
		return fmt.Errorf("%s: no body", d.Name)
	}

	env := map[string]struct{}{}
	for _, v := range d.vars() {
		if v.Name == "" {
			return fmt.Errorf("%s: unnamed variable", d.Name)
		}
		if !isIdentifier(v.Name) {
			return fmt.Errorf("%s: invalid name %q", d.Name, v.Name)
		}
		if v.Type == nil {
			return fmt.Errorf("%s: %s has no type", d.Name, v.Name)
		}
		if _, ok := env[v.Name]; ok {
			return fmt.Errorf("%s: %s declared twice", d.Name, v.Name)
		}
		env[v.Name] = struct{}{}
	}

	for _, name := range parser.Names(d.Body) {
		if _, ok := env[name]; !ok {
			return fmt.Errorf("%s: undefined: %s", d.Name, name)
		}
	}

	return nil
}

// isIdentifier reports whether name lexes as exactly one identifier
func isIdentifier(name string) bool {
	items, err := lexer.Lex(name)
	if err != nil || len(items) != 2 {
		return false
	}
	return items[0].Type == lexer.IDENTIFIER && items[0].Val == name
}

func (d *Definition) vars() []Var {
	res := make([]Var, 0, len(d.Captures)+len(d.Params))
	res = append(res, d.Captures...)
	return append(res, d.Params...)
}

// Env maps every capture and parameter name to its type
func (d *Definition) Env() map[string]*types.Int {
	env := make(map[string]*types.Int, len(d.Captures)+len(d.Params))
	for _, v := range d.vars() {
		env[v.Name] = v.Type
	}
	return env
}

// Make copies captures into a new context and binds it to the body. Each
// value is wrapped to the width of its capture. If w is non-nil and the
// closure traces, every call writes a trace line to w.
//
// The thunk keeps its own copy of the definition, later changes to d do
// not affect it.
func (d *Definition) Make(w io.Writer, captures ...int64) (Thunk, error) {
	if err := d.Validate(); err != nil {
		return Thunk{}, err
	}
	if len(captures) != len(d.Captures) {
		return Thunk{}, fmt.Errorf("%s: expected %d captured values, got %d", d.Name, len(d.Captures), len(captures))
	}

	ctx := Context{values: make([]int64, len(captures))}
	for i, v := range captures {
		ctx.values[i] = d.Captures[i].Type.Wrap(v)
	}

	captureVars := append([]Var(nil), d.Captures...)
	params := append([]Var(nil), d.Params...)
	body := d.Body
	result := d.Result
	trace := d.Trace && w != nil
	env := d.Env()

	return thunk.Make(ctx, func(ctx *Context, args []int64) int64 {
		vals := make(map[string]int64, len(captureVars)+len(params))
		for i, c := range captureVars {
			vals[c.Name] = ctx.Get(i)
		}

		// Missing arguments are zero, extra ones are ignored
		wrapped := make([]int64, len(params))
		for i, p := range params {
			if i < len(args) {
				wrapped[i] = p.Type.Wrap(args[i])
			}
			vals[p.Name] = wrapped[i]
		}

		if trace {
			fmt.Fprintln(w, traceLine(ctx.values, wrapped))
		}

		res, _ := eval(body, env, vals)
		return result.Wrap(res)
	}), nil
}

// Invoke calls t with args after checking them against the declared
// parameters.
func (d *Definition) Invoke(t Thunk, args ...int64) (int64, error) {
	if len(args) != len(d.Params) {
		return 0, fmt.Errorf("%s: expected %d arguments, got %d", d.Name, len(d.Params), len(args))
	}

	return t.Invoke(args), nil
}

func traceLine(captures, args []int64) string {
	parts := make([]string, 0, len(captures)+len(args))
	for _, v := range captures {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	for _, v := range args {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	return strings.Join(parts, " ")
}
