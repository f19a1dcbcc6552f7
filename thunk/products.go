package thunk

import (
	"fmt"
	"io"
)

// Adder captures a and adds it to the call argument.
func Adder(a int32) Thunk[int32, int32, int32] {
	return Make(a, func(ctx *int32, b int32) int32 {
		return *ctx + b
	})
}

// MixedCapture is the context of MixedProduct.
type MixedCapture struct {
	A1 int32
	A2 int64
}

// MixedArgs are the call arguments of MixedProduct.
type MixedArgs struct {
	B1 int64
	B2 int32
}

// MixedProduct computes (a1+b1)*(a2+b2) with a narrow and a wide capture.
func MixedProduct(a1 int32, a2 int64) Thunk[MixedCapture, MixedArgs, int64] {
	return Make(MixedCapture{A1: a1, A2: a2}, func(ctx *MixedCapture, args MixedArgs) int64 {
		return (int64(ctx.A1) + args.B1) * (ctx.A2 + int64(args.B2))
	})
}

// WideCapture is the context of WideProduct and TracedWideProduct.
type WideCapture struct {
	A1 int64
	A2 int64
}

// WideArgs are the call arguments of WideProduct and TracedWideProduct.
type WideArgs struct {
	B1 int64
	B2 int64
}

func wideProduct(ctx *WideCapture, args WideArgs) int64 {
	return (ctx.A1 + args.B1) * (ctx.A2 + args.B2)
}

// WideProduct computes (a1+b1)*(a2+b2) with every value 64 bits wide.
func WideProduct(a1, a2 int64) Thunk[WideCapture, WideArgs, int64] {
	return Make(WideCapture{A1: a1, A2: a2}, wideProduct)
}

// TracedWideProduct behaves like WideProduct and writes the captured values
// and call arguments to w before computing the result.
func TracedWideProduct(w io.Writer, a1, a2 int64) Thunk[WideCapture, WideArgs, int64] {
	return Make(WideCapture{A1: a1, A2: a2}, func(ctx *WideCapture, args WideArgs) int64 {
		fmt.Fprintf(w, "%d %d %d %d\n", ctx.A1, ctx.A2, args.B1, args.B2)
		return wideProduct(ctx, args)
	})
}
