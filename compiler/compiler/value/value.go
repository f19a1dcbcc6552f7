package value

import (
	llvmValue "github.com/llir/llvm/ir/value"
	"github.com/zegl/thunk/compiler/compiler/types"
)

type Value struct {
	Type  *types.Int
	Value llvmValue.Value
}
