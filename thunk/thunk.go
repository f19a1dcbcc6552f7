// Package thunk represents closures as an owned context block paired with a
// plain function that takes a pointer to that block as its first argument.
package thunk

// Func is the body of a closure. ctx points at the captured values, args are
// the call-time arguments.
type Func[C, A, R any] func(ctx *C, args A) R

// Thunk is a closure lowered to a (context, function) pair.
//
// The context is held by value and can only be set through Make or Lift, so a
// Thunk never refers to storage owned by the scope that created it.
type Thunk[C, A, R any] struct {
	ctx C
	fn  Func[C, A, R]
}

// Make copies ctx into a new Thunk bound to fn.
func Make[C, A, R any](ctx C, fn Func[C, A, R]) Thunk[C, A, R] {
	if fn == nil {
		panic("thunk: nil body")
	}

	return Thunk[C, A, R]{
		ctx: ctx,
		fn:  fn,
	}
}

// Invoke calls the body with a pointer to the captured context followed by
// args. The body receives a private copy of the context for the duration of
// the call; writes through ctx are not visible to later calls.
func (t Thunk[C, A, R]) Invoke(args A) R {
	ctx := t.ctx
	return t.fn(&ctx, args)
}

// Context returns a copy of the captured values.
func (t Thunk[C, A, R]) Context() C {
	return t.ctx
}

// NoContext is the zero-size context of a closure that captures nothing.
type NoContext struct{}

// Lift wraps a plain function so it can be called through the same
// convention as a capturing closure.
func Lift[A, R any](fn func(A) R) Thunk[NoContext, A, R] {
	if fn == nil {
		panic("thunk: nil body")
	}

	return Make(NoContext{}, func(_ *NoContext, args A) R {
		return fn(args)
	})
}
