package runtime

// Context is created once per interpreter instance. It owns the heap, the
// canonical type objects, and the canonical None, and is passed explicitly to
// every component that constructs values; there is no package-level state.
//
// Bootstrap policy: the root type object (a class-kind value named "type") is
// built first with an absent type link, then linked to itself before
// NewContext returns. That construction is the only moment any object lacks a
// type link. Every other canonical type object is a class-kind object named
// after its kind and stamped with the root. Canonical objects are immortal
// for the Context's lifetime.
type Context struct {
	heap     *Heap
	typeType Ref
	types    map[Kind]Ref
	none     Ref
}

// NewContext bootstraps the canonical type objects and the canonical None.
func NewContext() *Context {
	heap := NewHeap()
	ctx := &Context{heap: heap, types: map[Kind]Ref{}}

	root := heap.alloc(&Object{value: ClassValue{Name: "type"}})
	_ = root.Update(func(obj *Object) error {
		obj.typ = root.Retain()
		return nil
	})
	ctx.typeType = root
	ctx.types[KindClass] = root

	for _, kind := range []Kind{
		KindString, KindInteger, KindBool, KindList, KindTuple, KindDict,
		KindIterator, KindSlice, KindNameError, KindCode, KindFunction,
		KindModule, KindNone, KindNativeFunction,
	} {
		ctx.types[kind] = ctx.NewObject(ClassValue{Name: kind.String()}, root)
	}
	ctx.none = ctx.NewObject(NoneValue{}, ctx.types[KindNone])
	return ctx
}

// Heap exposes the context's object store for diagnostics.
func (c *Context) Heap() *Heap { return c.heap }

// NewObject is the single construction entry point: it wraps a value and a
// type link into a fresh object with an empty attribute table and returns the
// first owned handle. The type link is retained on store.
func (c *Context) NewObject(v Value, typ Ref) Ref {
	return c.heap.alloc(&Object{value: v, typ: typ.Retain()})
}

// TypeType returns a retained handle to the root type object.
func (c *Context) TypeType() Ref { return c.typeType.Retain() }

// IntType returns a retained handle to the integer type object.
func (c *Context) IntType() Ref { return c.types[KindInteger].Retain() }

// TypeFor returns a retained handle to the canonical type object for kind.
func (c *Context) TypeFor(k Kind) Ref { return c.types[k].Retain() }

// None returns a retained handle to the canonical None object.
func (c *Context) None() Ref { return c.none.Retain() }

// Factories are pure constructors: they never cache or dedupe, so two calls
// with equal payloads always produce two distinct objects.

func (c *Context) NewInt(val int32) Ref {
	return c.NewObject(IntValue{Val: val}, c.types[KindInteger])
}

func (c *Context) NewStr(val string) Ref {
	return c.NewObject(StringValue{Val: val}, c.types[KindString])
}

func (c *Context) NewBool(val bool) Ref {
	return c.NewObject(BoolValue{Val: val}, c.types[KindBool])
}

// NewList retains each element.
func (c *Context) NewList(elements []Ref) Ref {
	owned := make([]Ref, len(elements))
	for i, elem := range elements {
		owned[i] = elem.Retain()
	}
	return c.NewObject(&ListValue{Elements: owned}, c.types[KindList])
}

// NewTuple retains each element.
func (c *Context) NewTuple(elements []Ref) Ref {
	owned := make([]Ref, len(elements))
	for i, elem := range elements {
		owned[i] = elem.Retain()
	}
	return c.NewObject(&TupleValue{Elements: owned}, c.types[KindTuple])
}

// NewDict retains each value; keys are text only.
func (c *Context) NewDict(entries map[string]Ref) Ref {
	owned := make(map[string]Ref, len(entries))
	for key, val := range entries {
		owned[key] = val.Retain()
	}
	return c.NewObject(&DictValue{Entries: owned}, c.types[KindDict])
}

// NewIterator builds a cursor over target, retained, starting at position 0.
func (c *Context) NewIterator(target Ref) Ref {
	return c.NewObject(&IterValue{Target: target.Retain()}, c.types[KindIterator])
}

func (c *Context) NewSlice(start, stop, step *int32) Ref {
	return c.NewObject(SliceValue{Start: start, Stop: stop, Step: step}, c.types[KindSlice])
}

func (c *Context) NewNameError(name string) Ref {
	return c.NewObject(NameErrorValue{Name: name}, c.types[KindNameError])
}

// NewCode stores an opaque compiled-program blob, unexamined.
func (c *Context) NewCode(blob any) Ref {
	return c.NewObject(CodeValue{Blob: blob}, c.types[KindCode])
}

// NewFunction stores an opaque compiled-program blob, unexamined.
func (c *Context) NewFunction(blob any) Ref {
	return c.NewObject(FunctionValue{Blob: blob}, c.types[KindFunction])
}

func (c *Context) NewModule(name string) Ref {
	return c.NewObject(ModuleValue{Name: name}, c.types[KindModule])
}

// NewClass stamps user classes with the root type object, like every other
// class-kind value.
func (c *Context) NewClass(name string) Ref {
	return c.NewObject(ClassValue{Name: name}, c.typeType)
}

func (c *Context) NewNativeFunction(name string, impl NativeFunc) Ref {
	return c.NewObject(NativeFuncValue{Name: name, Impl: impl}, c.types[KindNativeFunction])
}
