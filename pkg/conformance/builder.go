package conformance

import (
	"fmt"

	"adder/runtime-go/pkg/runtime"
)

// Build constructs the runtime value a spec describes. The caller owns the
// returned handle.
func Build(ctx *runtime.Context, spec ValueSpec) (runtime.Ref, error) {
	switch {
	case spec.Int != nil:
		return ctx.NewInt(*spec.Int), nil
	case spec.Str != nil:
		return ctx.NewStr(*spec.Str), nil
	case spec.Bool != nil:
		return ctx.NewBool(*spec.Bool), nil
	case spec.None:
		return ctx.None(), nil
	case spec.List != nil:
		elems, err := buildAll(ctx, spec.List)
		if err != nil {
			return runtime.Ref{}, err
		}
		list := ctx.NewList(elems)
		releaseAll(elems)
		return list, nil
	case spec.Tuple != nil:
		elems, err := buildAll(ctx, spec.Tuple)
		if err != nil {
			return runtime.Ref{}, err
		}
		tuple := ctx.NewTuple(elems)
		releaseAll(elems)
		return tuple, nil
	case spec.Dict != nil:
		entries := make(map[string]runtime.Ref, len(spec.Dict))
		for key, valSpec := range spec.Dict {
			val, err := Build(ctx, valSpec)
			if err != nil {
				for _, ref := range entries {
					ref.Release()
				}
				return runtime.Ref{}, err
			}
			entries[key] = val
		}
		dict := ctx.NewDict(entries)
		for _, ref := range entries {
			ref.Release()
		}
		return dict, nil
	case spec.Slice != nil:
		return ctx.NewSlice(spec.Slice.Start, spec.Slice.Stop, spec.Slice.Step), nil
	default:
		return runtime.Ref{}, fmt.Errorf("conformance: empty value spec")
	}
}

func buildAll(ctx *runtime.Context, specs []ValueSpec) ([]runtime.Ref, error) {
	refs := make([]runtime.Ref, 0, len(specs))
	for _, spec := range specs {
		ref, err := Build(ctx, spec)
		if err != nil {
			releaseAll(refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func releaseAll(refs []runtime.Ref) {
	for _, ref := range refs {
		ref.Release()
	}
}
