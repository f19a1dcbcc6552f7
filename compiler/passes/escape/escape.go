// Package escape finds functions that hand out the address of their own
// stack frame, either by returning it or by storing it somewhere that
// outlives the call.
package escape

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

type Violation struct {
	Func   string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Func, v.Reason)
}

// Error is returned by Check when at least one function leaks stack memory
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "stack memory escapes: " + strings.Join(msgs, "; ")
}

// Check inspects every function defined in m
func Check(m *ir.Module) error {
	var violations []Violation

	for _, f := range m.Funcs {
		violations = append(violations, Func(f)...)
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}

	return nil
}

// Func reports every way f leaks the address of one of its allocas
func Func(f *ir.Func) []Violation {
	var res []Violation

	for _, block := range f.Blocks {
		for _, inst := range block.Insts {
			store, ok := inst.(*ir.InstStore)
			if !ok {
				continue
			}

			alloca := stackSource(store.Src)
			if alloca == nil || !outlivesCall(store.Dst) {
				continue
			}

			res = append(res, Violation{
				Func:   f.Name(),
				Reason: fmt.Sprintf("address of stack memory %s stored to %s", alloca.Ident(), store.Dst.Ident()),
			})
		}

		ret, ok := block.Term.(*ir.TermRet)
		if !ok || ret.X == nil {
			continue
		}

		if alloca := stackSource(ret.X); alloca != nil {
			res = append(res, Violation{
				Func:   f.Name(),
				Reason: fmt.Sprintf("address of stack memory %s returned", alloca.Ident()),
			})
		}
	}

	return res
}

// stackSource returns the alloca val points into, or nil if val is not
// derived from one
func stackSource(val value.Value) *ir.InstAlloca {
	switch v := val.(type) {
	case *ir.InstAlloca:
		return v
	case *ir.InstGetElementPtr:
		return stackSource(v.Src)
	case *ir.InstBitCast:
		return stackSource(v.From)
	case *ir.InstInsertValue:
		if alloca := stackSource(v.Elem); alloca != nil {
			return alloca
		}
		return stackSource(v.X)
	}
	return nil
}

// outlivesCall reports whether dst is memory owned by someone other than the
// current call: a global, or anything reached through a parameter
func outlivesCall(dst value.Value) bool {
	switch v := dst.(type) {
	case *ir.Global, *ir.Param:
		return true
	case *ir.InstGetElementPtr:
		return outlivesCall(v.Src)
	case *ir.InstBitCast:
		return outlivesCall(v.From)
	}
	return false
}
