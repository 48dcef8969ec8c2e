package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindBool
	KindList
	KindTuple
	KindDict
	KindIterator
	KindSlice
	KindNameError
	KindCode
	KindFunction
	KindModule
	KindNone
	KindClass
	KindNativeFunction
)

// allKinds enumerates every kind explicitly. Total registrations range over
// this list rather than over the numeric span of the enum, so they stay
// correct if the constants are ever reordered.
var allKinds = []Kind{
	KindString, KindInteger, KindBool, KindList, KindTuple, KindDict,
	KindIterator, KindSlice, KindNameError, KindCode, KindFunction,
	KindModule, KindNone, KindClass, KindNativeFunction,
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInteger:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindDict:
		return "dict"
	case KindIterator:
		return "iterator"
	case KindSlice:
		return "slice"
	case KindNameError:
		return "NameError"
	case KindCode:
		return "code"
	case KindFunction:
		return "function"
	case KindModule:
		return "module"
	case KindNone:
		return "NoneType"
	case KindClass:
		return "class"
	case KindNativeFunction:
		return "native function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Every kind must
// render; a variant without a render method does not compile. Rendering
// threads the set of container objects already on the render path so
// self-referential structures terminate instead of recursing unboundedly;
// Ref.Render is the public entry point.
type Value interface {
	Kind() Kind
	render(seen map[refKey]struct{}) string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind                        { return KindString }
func (v StringValue) render(map[refKey]struct{}) string { return v.Val }

type IntValue struct {
	Val int32
}

func (v IntValue) Kind() Kind                        { return KindInteger }
func (v IntValue) render(map[refKey]struct{}) string { return strconv.FormatInt(int64(v.Val), 10) }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (v BoolValue) render(map[refKey]struct{}) string {
	if v.Val {
		return "true"
	}
	return "false"
}

type NoneValue struct{}

func (NoneValue) Kind() Kind                        { return KindNone }
func (NoneValue) render(map[refKey]struct{}) string { return "None" }

//-----------------------------------------------------------------------------
// Containers
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Ref
}

func (v *ListValue) Kind() Kind { return KindList }
func (v *ListValue) render(seen map[refKey]struct{}) string {
	return "[" + renderElements(v.Elements, seen) + "]"
}

type TupleValue struct {
	Elements []Ref
}

func (v *TupleValue) Kind() Kind { return KindTuple }
func (v *TupleValue) render(seen map[refKey]struct{}) string {
	return "{" + renderElements(v.Elements, seen) + "}"
}

// DictValue maps text keys to references. Keys are restricted to strings.
type DictValue struct {
	Entries map[string]Ref
}

func (v *DictValue) Kind() Kind { return KindDict }

// render sorts keys so map iteration order never leaks into output.
func (v *DictValue) render(seen map[refKey]struct{}) string {
	keys := make([]string, 0, len(v.Entries))
	for key := range v.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+v.Entries[key].renderSeen(seen))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func renderElements(elements []Ref, seen map[refKey]struct{}) string {
	parts := make([]string, 0, len(elements))
	for _, elem := range elements {
		parts = append(parts, elem.renderSeen(seen))
	}
	return strings.Join(parts, ", ")
}

//-----------------------------------------------------------------------------
// Iterator & slice
//-----------------------------------------------------------------------------

// IterValue is a cursor over a sequence object. Position only increases and is
// always checked against the target's current length, never a snapshot.
type IterValue struct {
	Position int
	Target   Ref
}

func (v *IterValue) Kind() Kind { return KindIterator }
func (v *IterValue) render(seen map[refKey]struct{}) string {
	return fmt.Sprintf("<iter pos %d in %s>", v.Position, v.Target.renderSeen(seen))
}

// SliceValue holds optional bounds; nil means the bound is absent.
type SliceValue struct {
	Start *int32
	Stop  *int32
	Step  *int32
}

func (v SliceValue) Kind() Kind { return KindSlice }
func (v SliceValue) render(map[refKey]struct{}) string {
	bound := func(b *int32) string {
		if b == nil {
			return ""
		}
		return strconv.FormatInt(int64(*b), 10)
	}
	return fmt.Sprintf("<slice %s:%s:%s>", bound(v.Start), bound(v.Stop), bound(v.Step))
}

//-----------------------------------------------------------------------------
// Errors-as-values, code, functions, modules, classes
//-----------------------------------------------------------------------------

// NameErrorValue is a primitive error-marker value, not an exception class.
type NameErrorValue struct {
	Name string
}

func (v NameErrorValue) Kind() Kind { return KindNameError }
func (v NameErrorValue) render(map[refKey]struct{}) string {
	return fmt.Sprintf("NameError: name '%s' is not defined", v.Name)
}

// CodeValue stores an opaque compiled-program blob. The engine never inspects
// or executes its contents.
type CodeValue struct {
	Blob any
}

func (v CodeValue) Kind() Kind                        { return KindCode }
func (v CodeValue) render(map[refKey]struct{}) string { return "<code>" }

// FunctionValue binds an opaque compiled-program blob with no captured
// closure state. Running the blob belongs to the surrounding evaluator.
type FunctionValue struct {
	Blob any
}

func (v FunctionValue) Kind() Kind                        { return KindFunction }
func (v FunctionValue) render(map[refKey]struct{}) string { return "<func>" }

type ModuleValue struct {
	Name string
}

func (v ModuleValue) Kind() Kind { return KindModule }
func (v ModuleValue) render(map[refKey]struct{}) string {
	return fmt.Sprintf("<module '%s'>", v.Name)
}

type ClassValue struct {
	Name string
}

func (v ClassValue) Kind() Kind { return KindClass }
func (v ClassValue) render(map[refKey]struct{}) string {
	return fmt.Sprintf("<class '%s'>", v.Name)
}

// NativeFunc is the fixed signature every native callable implements. Natives
// see only the Executor capability surface, never the host's frame layout.
type NativeFunc func(ex Executor, args []Ref) (Ref, error)

type NativeFuncValue struct {
	Name string
	Impl NativeFunc
}

func (v NativeFuncValue) Kind() Kind { return KindNativeFunction }
func (v NativeFuncValue) render(map[refKey]struct{}) string {
	return fmt.Sprintf("<native func '%s'>", v.Name)
}

// Callable reports whether objects of the given kind can be invoked.
func Callable(k Kind) bool {
	return k == KindNativeFunction || k == KindFunction
}

// payloadRefs lists the references a value's payload owns, used when the
// heap reclaims the enclosing object.
func payloadRefs(v Value) []Ref {
	switch val := v.(type) {
	case *ListValue:
		return val.Elements
	case *TupleValue:
		return val.Elements
	case *DictValue:
		refs := make([]Ref, 0, len(val.Entries))
		for _, ref := range val.Entries {
			refs = append(refs, ref)
		}
		return refs
	case *IterValue:
		return []Ref{val.Target}
	default:
		return nil
	}
}
