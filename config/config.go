// Package config loads closure programs from TOML.
//
//	[[closure]]
//	name = "mixed"
//	captures = [{ name = "a1", type = "i32" }, { name = "a2", type = "i64" }]
//	params = [{ name = "b1", type = "i64" }, { name = "b2", type = "i32" }]
//	result = "i64"
//	body = "(a1+b1)*(a2+b2)"
//
//	[[call]]
//	closure = "mixed"
//	captures = [4, 3]
//	args = [6, 7]
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/zegl/thunk/compiler/closure"
	"github.com/zegl/thunk/compiler/compiler/types"
	"github.com/zegl/thunk/compiler/parser"
)

const defaultResultType = "i64"

type File struct {
	Closures []ClosureConfig `toml:"closure"`
	Calls    []CallConfig    `toml:"call"`
}

type VarConfig struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type ClosureConfig struct {
	Name     string      `toml:"name"`
	Captures []VarConfig `toml:"captures"`
	Params   []VarConfig `toml:"params"`
	Result   string      `toml:"result"`
	Body     string      `toml:"body"`
	Trace    bool        `toml:"trace"`
}

type CallConfig struct {
	Closure  string  `toml:"closure"`
	Captures []int64 `toml:"captures"`
	Args     []int64 `toml:"args"`
}

func Load(path string) (*closure.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	prog, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return prog, nil
}

func Parse(data string) (*closure.Program, error) {
	var f File

	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	return f.Program()
}

// Program resolves type names, parses closure bodies and validates the result
func (f File) Program() (*closure.Program, error) {
	prog := &closure.Program{}

	for _, cc := range f.Closures {
		d, err := cc.definition()
		if err != nil {
			return nil, err
		}
		prog.Closures = append(prog.Closures, d)
	}

	for _, call := range f.Calls {
		prog.Calls = append(prog.Calls, closure.Call{
			Closure:  call.Closure,
			Captures: call.Captures,
			Args:     call.Args,
		})
	}

	if err := prog.Validate(); err != nil {
		return nil, err
	}

	return prog, nil
}

func (cc ClosureConfig) definition() (*closure.Definition, error) {
	captures, err := vars(cc.Captures)
	if err != nil {
		return nil, fmt.Errorf("closure %s: %w", cc.Name, err)
	}

	params, err := vars(cc.Params)
	if err != nil {
		return nil, fmt.Errorf("closure %s: %w", cc.Name, err)
	}

	resultName := cc.Result
	if resultName == "" {
		resultName = defaultResultType
	}

	result, err := types.ByName(resultName)
	if err != nil {
		return nil, fmt.Errorf("closure %s: %w", cc.Name, err)
	}

	body, err := parser.ParseString(cc.Body)
	if err != nil {
		return nil, fmt.Errorf("closure %s: body: %w", cc.Name, err)
	}

	return &closure.Definition{
		Name:     cc.Name,
		Captures: captures,
		Params:   params,
		Result:   result,
		Body:     body,
		Trace:    cc.Trace,
	}, nil
}

func vars(in []VarConfig) ([]closure.Var, error) {
	res := make([]closure.Var, len(in))
	for i, v := range in {
		t, err := types.ByName(v.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.Name, err)
		}
		res[i] = closure.Var{Name: v.Name, Type: t}
	}
	return res, nil
}
