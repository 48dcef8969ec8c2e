package runtime

// Advance steps the iterator. The bool result reports exhaustion: once the
// cursor has reached or passed the target's element count every further call
// reports done with no side effects. The target's length is read fresh on
// every call rather than snapshotted, so mutating the target mid-iteration is
// observable: appends extend the walk, truncation exhausts it early, and a
// target that grows back after exhaustion resumes yielding.
func (c *Context) Advance(iter Ref) (Ref, bool, error) {
	if iter.Kind() != KindIterator {
		return Ref{}, false, newUnsupportedIterationError("'%s' object is not an iterator", iter.Kind())
	}
	var result Ref
	var done bool
	var char string
	var haveChar bool
	err := iter.Update(func(obj *Object) error {
		cursor := obj.value.(*IterValue)
		switch cursor.Target.Kind() {
		case KindList:
			elems := listElements(cursor.Target)
			if cursor.Position >= len(elems) {
				done = true
				return nil
			}
			result = elems[cursor.Position].Retain()
		case KindTuple:
			elems := tupleElements(cursor.Target)
			if cursor.Position >= len(elems) {
				done = true
				return nil
			}
			result = elems[cursor.Position].Retain()
		case KindString:
			runes := []rune(stringOperand(cursor.Target))
			if cursor.Position >= len(runes) {
				done = true
				return nil
			}
			// The character object is allocated after the borrow ends.
			char = string(runes[cursor.Position])
			haveChar = true
		default:
			return newUnsupportedIterationError("cannot iterate over '%s' object", cursor.Target.Kind())
		}
		cursor.Position++
		return nil
	})
	if err != nil {
		return Ref{}, false, err
	}
	if haveChar {
		result = c.NewStr(char)
	}
	return result, done, nil
}

func tupleElements(r Ref) []Ref {
	var elems []Ref
	_ = r.View(func(obj *Object) error {
		tuple := obj.value.(*TupleValue)
		elems = make([]Ref, len(tuple.Elements))
		copy(elems, tuple.Elements)
		return nil
	})
	return elems
}
