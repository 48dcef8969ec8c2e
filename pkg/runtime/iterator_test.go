package runtime

import "testing"

func buildIntList(ctx *Context, vals ...int32) Ref {
	elems := make([]Ref, len(vals))
	for i, v := range vals {
		elems[i] = ctx.NewInt(v)
	}
	list := ctx.NewList(elems)
	for _, elem := range elems {
		elem.Release()
	}
	return list
}

func advanceValue(t *testing.T, ctx *Context, iter Ref) string {
	t.Helper()
	val, done, err := ctx.Advance(iter)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if done {
		t.Fatalf("unexpected exhaustion")
	}
	defer val.Release()
	return val.Render()
}

func advanceDone(t *testing.T, ctx *Context, iter Ref) {
	t.Helper()
	_, done, err := ctx.Advance(iter)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !done {
		t.Fatalf("expected exhaustion")
	}
}

func TestIterateList(t *testing.T) {
	ctx := NewContext()
	list := buildIntList(ctx, 10, 20, 30)
	iter := ctx.NewIterator(list)
	defer iter.Release()
	defer list.Release()

	for _, want := range []string{"10", "20", "30"} {
		if got := advanceValue(t, ctx, iter); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
	// Exhaustion is terminal and idempotent.
	advanceDone(t, ctx, iter)
	advanceDone(t, ctx, iter)
}

func TestIterateEmptyList(t *testing.T) {
	ctx := NewContext()
	list := ctx.NewList(nil)
	iter := ctx.NewIterator(list)
	defer iter.Release()
	defer list.Release()
	advanceDone(t, ctx, iter)
}

func TestIterateString(t *testing.T) {
	ctx := NewContext()
	text := ctx.NewStr("hi")
	iter := ctx.NewIterator(text)
	defer iter.Release()
	defer text.Release()
	if got := advanceValue(t, ctx, iter); got != "h" {
		t.Fatalf("expected h, got %s", got)
	}
	if got := advanceValue(t, ctx, iter); got != "i" {
		t.Fatalf("expected i, got %s", got)
	}
	advanceDone(t, ctx, iter)
}

func TestMutationDuringIterationIsObservable(t *testing.T) {
	ctx := NewContext()
	list := buildIntList(ctx, 1, 2)
	iter := ctx.NewIterator(list)
	defer iter.Release()
	defer list.Release()

	if got := advanceValue(t, ctx, iter); got != "1" {
		t.Fatalf("expected 1, got %s", got)
	}
	// Appending mid-walk extends the walk: length is read fresh per call.
	three := ctx.NewInt(3)
	if err := ctx.Append(list, three); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	three.Release()
	if got := advanceValue(t, ctx, iter); got != "2" {
		t.Fatalf("expected 2, got %s", got)
	}
	if got := advanceValue(t, ctx, iter); got != "3" {
		t.Fatalf("expected 3, got %s", got)
	}
	advanceDone(t, ctx, iter)
}

func TestTruncationExhaustsEarly(t *testing.T) {
	ctx := NewContext()
	list := buildIntList(ctx, 1, 2, 3)
	iter := ctx.NewIterator(list)
	defer iter.Release()
	defer list.Release()

	if got := advanceValue(t, ctx, iter); got != "1" {
		t.Fatalf("expected 1, got %s", got)
	}
	for i := 0; i < 2; i++ {
		popped, err := ctx.Pop(list)
		if err != nil {
			t.Fatalf("pop failed: %v", err)
		}
		popped.Release()
	}
	advanceDone(t, ctx, iter)

	// Position is compared against the current length, so a target that
	// grows back past the cursor resumes yielding.
	four := ctx.NewInt(4)
	if err := ctx.Append(list, four); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	four.Release()
	if got := advanceValue(t, ctx, iter); got != "4" {
		t.Fatalf("expected 4, got %s", got)
	}
}

func TestIterateStringAtHeapCapacity(t *testing.T) {
	ctx := NewContext()
	text := ctx.NewStr("hi")
	iter := ctx.NewIterator(text)
	defer iter.Release()
	defer text.Release()
	keep := fillToCapacity(ctx)
	defer releaseRefs(keep)

	// Advancing allocates a character object while the iterator is
	// write-borrowed; the iterator must stay usable afterwards.
	if got := advanceValue(t, ctx, iter); got != "h" {
		t.Fatalf("expected h, got %s", got)
	}
	if got := iter.Render(); got != "<iter pos 1 in hi>" {
		t.Fatalf("unexpected rendering %q", got)
	}
	if got := advanceValue(t, ctx, iter); got != "i" {
		t.Fatalf("expected i, got %s", got)
	}
	advanceDone(t, ctx, iter)
}

func TestUnsupportedIteration(t *testing.T) {
	ctx := NewContext()
	num := ctx.NewInt(5)
	defer num.Release()

	if _, _, err := ctx.Advance(num); err == nil {
		t.Fatalf("expected failure advancing a non-iterator")
	} else if failure, ok := AsFailure(err); !ok || failure.Kind != FailureUnsupportedIteration {
		t.Fatalf("expected UnsupportedIterationError, got %v", err)
	}

	iter := ctx.NewIterator(num)
	defer iter.Release()
	if _, _, err := ctx.Advance(iter); err == nil {
		t.Fatalf("expected failure iterating an int target")
	} else if failure, ok := AsFailure(err); !ok || failure.Kind != FailureUnsupportedIteration {
		t.Fatalf("expected UnsupportedIterationError, got %v", err)
	}
}
