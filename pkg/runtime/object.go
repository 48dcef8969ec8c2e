package runtime

import "sort"

// Object is a runtime value: exactly one Value (never retagged after
// construction), a type link, and an open attribute table. The type link is
// absent only for the root type object while it is being built.
type Object struct {
	value Value
	typ   Ref
	attrs map[string]Ref
}

// Value returns the object's payload.
func (o *Object) Value() Value { return o.value }

// TypeRef returns the object's type link; ok is false only during root-type
// bootstrap.
func (o *Object) TypeRef() (Ref, bool) {
	return o.typ, o.typ.Valid()
}

// Type returns a retained handle to the referenced object's type.
func (r Ref) Type() Ref {
	var typ Ref
	_ = r.View(func(obj *Object) error {
		typ = obj.typ
		return nil
	})
	return typ.Retain()
}

// Attr returns a retained handle to the named attribute, or a ValueError
// when the name is not present.
func (r Ref) Attr(name string) (Ref, error) {
	var attr Ref
	var found bool
	_ = r.View(func(obj *Object) error {
		attr, found = obj.attrs[name]
		return nil
	})
	if !found {
		return Ref{}, newValueError("object has no attribute '%s'", name)
	}
	return attr.Retain(), nil
}

// SetAttr stores val under name, retaining it and releasing any previous
// reference held under the same name.
func (r Ref) SetAttr(name string, val Ref) error {
	return r.Update(func(obj *Object) error {
		if obj.attrs == nil {
			obj.attrs = map[string]Ref{}
		}
		if old, ok := obj.attrs[name]; ok {
			defer old.Release()
		}
		obj.attrs[name] = val.Retain()
		return nil
	})
}

// Attrs lists the attribute names in sorted order.
func (r Ref) Attrs() []string {
	var names []string
	_ = r.View(func(obj *Object) error {
		names = make([]string, 0, len(obj.attrs))
		for name := range obj.attrs {
			names = append(names, name)
		}
		return nil
	})
	sort.Strings(names)
	return names
}
