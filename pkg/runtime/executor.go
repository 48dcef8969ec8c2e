package runtime

// Executor is the capability surface the surrounding evaluator hands to
// native callables. It is deliberately narrow: natives can invoke callables,
// construct text and boolean values, fetch the canonical None and root type
// object, and reach the Context, and nothing else.
type Executor interface {
	Call(callee Ref, args []Ref) (Ref, error)
	NewStr(val string) Ref
	NewBool(val bool) Ref
	None() Ref
	TypeObject() Ref
	Context() *Context
}

// Invoke calls a callable object with positional arguments. Native functions
// run directly against the Executor capability; function-kind objects carry
// compiled blobs only the evaluator can run, so they are delegated to
// ex.Call. Invoking any other kind is a NotCallableError.
func (c *Context) Invoke(callee Ref, ex Executor, args []Ref) (Ref, error) {
	var impl NativeFunc
	kind := callee.Kind()
	switch kind {
	case KindNativeFunction:
		_ = callee.View(func(obj *Object) error {
			impl = obj.value.(NativeFuncValue).Impl
			return nil
		})
		return impl(ex, args)
	case KindFunction:
		return ex.Call(callee, args)
	default:
		return Ref{}, newNotCallableError(kind)
	}
}

// NativeExecutor is the in-repo Executor for hosts that only register native
// callables, and for tests. Interpreted function objects are out of its
// reach: running a compiled blob needs the real evaluator.
type NativeExecutor struct {
	ctx *Context
}

func NewNativeExecutor(ctx *Context) *NativeExecutor {
	return &NativeExecutor{ctx: ctx}
}

func (e *NativeExecutor) Call(callee Ref, args []Ref) (Ref, error) {
	if callee.Kind() == KindFunction {
		return Ref{}, newNotCallableError(KindFunction)
	}
	return e.ctx.Invoke(callee, e, args)
}

func (e *NativeExecutor) NewStr(val string) Ref { return e.ctx.NewStr(val) }
func (e *NativeExecutor) NewBool(val bool) Ref  { return e.ctx.NewBool(val) }
func (e *NativeExecutor) None() Ref             { return e.ctx.None() }
func (e *NativeExecutor) TypeObject() Ref       { return e.ctx.TypeType() }
func (e *NativeExecutor) Context() *Context     { return e.ctx }
