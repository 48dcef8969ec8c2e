package runtime

// Truthy reports the truth value of any object. None, false, zero, the empty
// string, and empty containers are false; everything else is true.
func Truthy(r Ref) bool {
	var truthy bool
	_ = r.View(func(obj *Object) error {
		switch val := obj.value.(type) {
		case NoneValue:
			truthy = false
		case BoolValue:
			truthy = val.Val
		case IntValue:
			truthy = val.Val != 0
		case StringValue:
			truthy = val.Val != ""
		case *ListValue:
			truthy = len(val.Elements) > 0
		case *TupleValue:
			truthy = len(val.Elements) > 0
		case *DictValue:
			truthy = len(val.Entries) > 0
		default:
			truthy = true
		}
		return nil
	})
	return truthy
}

// Len returns the element count of a sized object as a fresh integer.
// Strings count runes, not bytes.
func (c *Context) Len(r Ref) (Ref, error) {
	var length int
	var sized bool
	_ = r.View(func(obj *Object) error {
		sized = true
		switch val := obj.value.(type) {
		case StringValue:
			length = len([]rune(val.Val))
		case *ListValue:
			length = len(val.Elements)
		case *TupleValue:
			length = len(val.Elements)
		case *DictValue:
			length = len(val.Entries)
		default:
			sized = false
		}
		return nil
	})
	if !sized {
		return Ref{}, newTypeError("object of kind '%s' has no length", r.Kind())
	}
	return c.NewInt(int32(length)), nil
}

// GetIndex subscripts an object. Lists, tuples, and strings take integer
// indexes (negative counts from the end) or slice-kind keys producing a
// fresh container; dicts take text keys. Bad index kinds are TypeErrors,
// out-of-range indexes and missing keys are ValueErrors.
func (c *Context) GetIndex(obj, key Ref) (Ref, error) {
	objKind := obj.Kind()
	keyKind := key.Kind()
	if keyKind == KindSlice {
		return c.getSlice(obj, key)
	}
	switch objKind {
	case KindList:
		if keyKind != KindInteger {
			return Ref{}, newTypeError("list indices must be integers, not '%s'", keyKind)
		}
		elems := listElements(obj)
		at, err := resolveIndex(intOperand(key), len(elems))
		if err != nil {
			return Ref{}, err
		}
		return elems[at].Retain(), nil
	case KindTuple:
		if keyKind != KindInteger {
			return Ref{}, newTypeError("tuple indices must be integers, not '%s'", keyKind)
		}
		elems := tupleElements(obj)
		at, err := resolveIndex(intOperand(key), len(elems))
		if err != nil {
			return Ref{}, err
		}
		return elems[at].Retain(), nil
	case KindString:
		if keyKind != KindInteger {
			return Ref{}, newTypeError("string indices must be integers, not '%s'", keyKind)
		}
		runes := []rune(stringOperand(obj))
		at, err := resolveIndex(intOperand(key), len(runes))
		if err != nil {
			return Ref{}, err
		}
		return c.NewStr(string(runes[at])), nil
	case KindDict:
		if keyKind != KindString {
			return Ref{}, newTypeError("dict keys must be strings, not '%s'", keyKind)
		}
		name := stringOperand(key)
		var val Ref
		var found bool
		_ = obj.View(func(o *Object) error {
			val, found = o.value.(*DictValue).Entries[name]
			return nil
		})
		if !found {
			return Ref{}, newValueError("key '%s' not found", name)
		}
		return val.Retain(), nil
	default:
		return Ref{}, newTypeError("'%s' object is not subscriptable", objKind)
	}
}

// SetIndex replaces a list element (old element released, new retained) or
// inserts/replaces a dict entry. Every other target kind is a TypeError.
func (c *Context) SetIndex(obj, key, val Ref) error {
	objKind := obj.Kind()
	keyKind := key.Kind()
	switch objKind {
	case KindList:
		if keyKind != KindInteger {
			return newTypeError("list indices must be integers, not '%s'", keyKind)
		}
		return obj.Update(func(o *Object) error {
			list := o.value.(*ListValue)
			at, err := resolveIndex(intOperand(key), len(list.Elements))
			if err != nil {
				return err
			}
			old := list.Elements[at]
			list.Elements[at] = val.Retain()
			old.Release()
			return nil
		})
	case KindDict:
		if keyKind != KindString {
			return newTypeError("dict keys must be strings, not '%s'", keyKind)
		}
		name := stringOperand(key)
		return obj.Update(func(o *Object) error {
			dict := o.value.(*DictValue)
			if old, ok := dict.Entries[name]; ok {
				defer old.Release()
			}
			dict.Entries[name] = val.Retain()
			return nil
		})
	default:
		return newTypeError("'%s' object does not support item assignment", objKind)
	}
}

// Append grows a list in place. The growth is visible through every alias
// and to live iterators over the list.
func (c *Context) Append(list, val Ref) error {
	if list.Kind() != KindList {
		return newTypeError("cannot append to '%s' object", list.Kind())
	}
	return list.Update(func(o *Object) error {
		target := o.value.(*ListValue)
		target.Elements = append(target.Elements, val.Retain())
		return nil
	})
}

// Pop removes and returns the last element of a list. The caller owns the
// returned handle. Popping an empty list is a ValueError.
func (c *Context) Pop(list Ref) (Ref, error) {
	if list.Kind() != KindList {
		return Ref{}, newTypeError("cannot pop from '%s' object", list.Kind())
	}
	var popped Ref
	err := list.Update(func(o *Object) error {
		target := o.value.(*ListValue)
		if len(target.Elements) == 0 {
			return newValueError("pop from empty list")
		}
		popped = target.Elements[len(target.Elements)-1]
		target.Elements = target.Elements[:len(target.Elements)-1]
		return nil
	})
	if err != nil {
		return Ref{}, err
	}
	return popped, nil
}

func resolveIndex(index int32, length int) (int, error) {
	at := int(index)
	if at < 0 {
		at += length
	}
	if at < 0 || at >= length {
		return 0, newValueError("index %d out of range for length %d", index, length)
	}
	return at, nil
}

func (c *Context) getSlice(obj, key Ref) (Ref, error) {
	var bounds SliceValue
	_ = key.View(func(o *Object) error {
		bounds = o.value.(SliceValue)
		return nil
	})
	step := int32(1)
	if bounds.Step != nil {
		step = *bounds.Step
	}
	if step == 0 {
		return Ref{}, newValueError("slice step cannot be zero")
	}
	switch obj.Kind() {
	case KindList:
		elems := sliceSequence(listElements(obj), bounds, step)
		return c.NewList(elems), nil
	case KindTuple:
		elems := sliceSequence(tupleElements(obj), bounds, step)
		return c.NewTuple(elems), nil
	case KindString:
		runes := sliceSequence([]rune(stringOperand(obj)), bounds, step)
		return c.NewStr(string(runes)), nil
	default:
		return Ref{}, newTypeError("'%s' object cannot be sliced", obj.Kind())
	}
}

// sliceSequence resolves absent bounds by step sign, clamps them to the
// sequence, and walks by step.
func sliceSequence[T any](seq []T, bounds SliceValue, step int32) []T {
	length := len(seq)
	var start, stop int
	if step > 0 {
		start, stop = 0, length
	} else {
		start, stop = length-1, -1
	}
	if bounds.Start != nil {
		start = clampBound(*bounds.Start, length, step)
	}
	if bounds.Stop != nil {
		stop = clampBound(*bounds.Stop, length, step)
	}
	var out []T
	if step > 0 {
		for i := start; i < stop; i += int(step) {
			out = append(out, seq[i])
		}
	} else {
		for i := start; i > stop; i += int(step) {
			out = append(out, seq[i])
		}
	}
	return out
}

func clampBound(bound int32, length int, step int32) int {
	at := int(bound)
	if at < 0 {
		at += length
	}
	low, high := 0, length
	if step < 0 {
		low, high = -1, length-1
	}
	if at < low {
		return low
	}
	if at > high {
		return high
	}
	return at
}
