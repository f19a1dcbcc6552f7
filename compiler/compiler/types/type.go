package types

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// Int is a signed two's complement integer of a fixed width
type Int struct {
	Type     *types.IntType
	TypeName string
	TypeSize int64
}

var (
	I8  = &Int{Type: types.I8, TypeName: "i8", TypeSize: 1}
	I16 = &Int{Type: types.I16, TypeName: "i16", TypeSize: 2}
	I32 = &Int{Type: types.I32, TypeName: "i32", TypeSize: 4}
	I64 = &Int{Type: types.I64, TypeName: "i64", TypeSize: 8}
)

var typeConvertMap = map[string]*Int{
	"i8":    I8,
	"int8":  I8,
	"i16":   I16,
	"int16": I16,
	"i32":   I32,
	"int32": I32,
	"i64":   I64,
	"int64": I64,
	"int":   I64,
}

// ByName resolves a source type name such as "i32" or "int64"
func ByName(name string) (*Int, error) {
	if t, ok := typeConvertMap[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type: %s", name)
}

func (i Int) LLVM() types.Type {
	return i.Type
}

func (i Int) Name() string {
	return i.TypeName
}

// Size of type in bytes
func (i Int) Size() int64 {
	return i.TypeSize
}

func (i Int) Bits() uint {
	return uint(i.TypeSize * 8)
}

// Wrap truncates v to the width of i and sign extends it back to 64 bits,
// the same result as a trunc followed by a sext in LLVM.
func (i Int) Wrap(v int64) int64 {
	shift := 64 - i.Bits()
	return (v << shift) >> shift
}

// Const returns v as an LLVM constant of this type
func (i Int) Const(v int64) *constant.Int {
	return constant.NewInt(i.Type, i.Wrap(v))
}

// Wider returns the wider of a and b
func Wider(a, b *Int) *Int {
	if b.TypeSize > a.TypeSize {
		return b
	}
	return a
}
