package runtime

import "testing"

func TestBootstrapTypeLinks(t *testing.T) {
	ctx := NewContext()
	root := ctx.TypeType()
	defer root.Release()
	if root.Kind() != KindClass {
		t.Fatalf("root type object should be class-kind, got %v", root.Kind())
	}
	if root.Render() != "<class 'type'>" {
		t.Fatalf("unexpected root rendering %q", root.Render())
	}

	// The root's type link points at itself.
	rootType := root.Type()
	defer rootType.Release()
	if rootType != root {
		t.Fatalf("root type object must be self-typed")
	}

	intType := ctx.IntType()
	defer intType.Release()
	intTypeType := intType.Type()
	defer intTypeType.Release()
	if intTypeType != root {
		t.Fatalf("int type object must be stamped with the root type object")
	}
}

func TestFactoriesStampTypeLinks(t *testing.T) {
	ctx := NewContext()
	five := ctx.NewInt(5)
	defer five.Release()
	fiveType := five.Type()
	defer fiveType.Release()
	intType := ctx.IntType()
	defer intType.Release()
	if fiveType != intType {
		t.Fatalf("integer values must be stamped with the canonical int type")
	}
}

func TestFactoriesNeverDedupe(t *testing.T) {
	ctx := NewContext()
	a := ctx.NewInt(5)
	b := ctx.NewInt(5)
	defer a.Release()
	defer b.Release()
	if a == b {
		t.Fatalf("two factory calls with the same payload must produce distinct objects")
	}
	if a.Render() != "5" || b.Render() != "5" {
		t.Fatalf("unexpected renderings %q and %q", a.Render(), b.Render())
	}
}

func TestCanonicalNone(t *testing.T) {
	ctx := NewContext()
	first := ctx.None()
	second := ctx.None()
	defer first.Release()
	defer second.Release()
	if first != second {
		t.Fatalf("None must be canonical")
	}
	if first.Render() != "None" {
		t.Fatalf("unexpected None rendering %q", first.Render())
	}
}

func TestAttributeTable(t *testing.T) {
	ctx := NewContext()
	mod := ctx.NewModule("math")
	pi := ctx.NewStr("3.14159")
	defer mod.Release()
	defer pi.Release()

	if _, err := mod.Attr("pi"); err == nil {
		t.Fatalf("expected missing attribute to fail")
	}
	if err := mod.SetAttr("pi", pi); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	got, err := mod.Attr("pi")
	if err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	defer got.Release()
	if got != pi {
		t.Fatalf("attribute read returned a different object")
	}
	if names := mod.Attrs(); len(names) != 1 || names[0] != "pi" {
		t.Fatalf("unexpected attribute names %v", names)
	}
}
