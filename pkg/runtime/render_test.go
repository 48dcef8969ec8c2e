package runtime

import (
	"testing"

	"github.com/hexops/autogold/v2"
)

func TestRenderings(t *testing.T) {
	ctx := NewContext()
	one := ctx.NewInt(1)
	two := ctx.NewInt(2)
	text := ctx.NewStr("hi")
	list := ctx.NewList([]Ref{one, two})
	tuple := ctx.NewTuple([]Ref{one, text})
	dict := ctx.NewDict(map[string]Ref{"b": two, "a": one})
	iter := ctx.NewIterator(list)
	start := int32(1)
	step := int32(2)
	slice := ctx.NewSlice(&start, nil, &step)

	tests := []struct {
		name   string
		ref    Ref
		expect autogold.Value
	}{
		{name: "int", ref: ctx.NewInt(5), expect: autogold.Expect("5")},
		{name: "negative int", ref: ctx.NewInt(-12), expect: autogold.Expect("-12")},
		{name: "str", ref: ctx.NewStr("hello"), expect: autogold.Expect("hello")},
		{name: "bool", ref: ctx.NewBool(true), expect: autogold.Expect("true")},
		{name: "none", ref: ctx.None(), expect: autogold.Expect("None")},
		{name: "list", ref: list.Retain(), expect: autogold.Expect("[1, 2]")},
		{name: "empty list", ref: ctx.NewList(nil), expect: autogold.Expect("[]")},
		{name: "tuple", ref: tuple.Retain(), expect: autogold.Expect("{1, hi}")},
		{name: "dict sorts keys", ref: dict.Retain(), expect: autogold.Expect("{a: 1, b: 2}")},
		{name: "iterator embeds target", ref: iter.Retain(), expect: autogold.Expect("<iter pos 0 in [1, 2]>")},
		{name: "slice", ref: slice.Retain(), expect: autogold.Expect("<slice 1::2>")},
		{name: "name error", ref: ctx.NewNameError("x"), expect: autogold.Expect("NameError: name 'x' is not defined")},
		{name: "code", ref: ctx.NewCode(nil), expect: autogold.Expect("<code>")},
		{name: "function", ref: ctx.NewFunction(nil), expect: autogold.Expect("<func>")},
		{name: "module", ref: ctx.NewModule("math"), expect: autogold.Expect("<module 'math'>")},
		{name: "class", ref: ctx.NewClass("Point"), expect: autogold.Expect("<class 'Point'>")},
		{name: "native function", ref: ctx.NewNativeFunction("len", nil), expect: autogold.Expect("<native func 'len'>")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer test.ref.Release()
			test.expect.Equal(t, test.ref.Render())
		})
	}

	for _, ref := range []Ref{one, two, text, list, tuple, dict, iter, slice} {
		ref.Release()
	}
}

func TestIteratorRenderTracksPosition(t *testing.T) {
	ctx := NewContext()
	list := buildIntList(ctx, 7)
	iter := ctx.NewIterator(list)
	defer iter.Release()
	defer list.Release()

	val, done, err := ctx.Advance(iter)
	if err != nil || done {
		t.Fatalf("advance failed: done=%v err=%v", done, err)
	}
	val.Release()
	autogold.Expect("<iter pos 1 in [7]>").Equal(t, iter.Render())
}

func TestFailureMessages(t *testing.T) {
	ctx := NewContext()
	one := ctx.NewInt(1)
	text := ctx.NewStr("1")
	defer one.Release()
	defer text.Release()

	_, addErr := ctx.ApplyBinary(OpAdd, one, text)
	autogold.Expect("TypeError: unsupported operand kinds for +: 'int' and 'str'").Equal(t, addErr.Error())

	zero := ctx.NewInt(0)
	defer zero.Release()
	_, divErr := ctx.ApplyBinary(OpDiv, one, zero)
	autogold.Expect("DivisionByZeroError: division by zero").Equal(t, divErr.Error())

	_, cmpErr := ctx.Compare(OpEq, one, text)
	autogold.Expect("TypeError: cannot compare 'int' and 'str' for equality").Equal(t, cmpErr.Error())

	_, _, iterErr := ctx.Advance(one)
	autogold.Expect("UnsupportedIterationError: 'int' object is not an iterator").Equal(t, iterErr.Error())

	_, callErr := ctx.Invoke(one, NewNativeExecutor(ctx), nil)
	autogold.Expect("NotCallableError: 'int' object is not callable").Equal(t, callErr.Error())
}

func TestRenderSelfReferentialContainers(t *testing.T) {
	ctx := NewContext()

	list := ctx.NewList(nil)
	if err := ctx.Append(list, list); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	autogold.Expect("[[...]]").Equal(t, list.Render())

	dict := ctx.NewDict(nil)
	key := ctx.NewStr("self")
	defer key.Release()
	if err := ctx.SetIndex(dict, key, dict); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	autogold.Expect("{self: {...}}").Equal(t, dict.Render())

	inner := ctx.NewList(nil)
	outer := ctx.NewList([]Ref{inner})
	if err := ctx.Append(inner, outer); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	autogold.Expect("[[[...]]]").Equal(t, outer.Render())
}
