package strings

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// Constant is in as a NUL terminated C string
func Constant(in string) *constant.CharArray {
	return constant.NewCharArrayFromString(in + "\x00")
}

// Toi8Ptr is the address of the first character of src
func Toi8Ptr(src *ir.Global) *constant.ExprGetElementPtr {
	return constant.NewGetElementPtr(src.ContentType, src, constant.NewInt(types.I64, 0), constant.NewInt(types.I64, 0))
}

func Name(index int) string {
	return fmt.Sprintf(".str.%d", index)
}
