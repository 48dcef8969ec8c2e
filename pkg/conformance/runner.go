package conformance

import (
	"fmt"
	"strings"

	"adder/runtime-go/pkg/runtime"
)

// Result is the outcome of one case.
type Result struct {
	Suite  string
	Case   string
	Passed bool
	Detail string
}

// RunSuite evaluates every case against a fresh Context per suite, so cases
// cannot leak state into each other across files.
func RunSuite(suite *Suite) []Result {
	ctx := runtime.NewContext()
	results := make([]Result, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		results = append(results, RunCase(ctx, suite.Name, c))
	}
	return results
}

// RunCase evaluates one case and checks its expected outcome.
func RunCase(ctx *runtime.Context, suiteName string, c Case) Result {
	result := Result{Suite: suiteName, Case: c.Name}
	got, failure, err := evaluate(ctx, c)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	switch {
	case c.Fail != "":
		if failure == nil {
			result.Detail = fmt.Sprintf("expected %s, got value %q", c.Fail, got)
			return result
		}
		if string(failure.Kind) != c.Fail {
			result.Detail = fmt.Sprintf("expected %s, got %s", c.Fail, failure.Kind)
			return result
		}
	default:
		if failure != nil {
			result.Detail = fmt.Sprintf("expected %q, got failure %v", *c.Want, failure)
			return result
		}
		if got != *c.Want {
			result.Detail = fmt.Sprintf("expected %q, got %q", *c.Want, got)
			return result
		}
	}
	result.Passed = true
	return result
}

// evaluate runs the case's operation. A *runtime.Failure is an expected
// outcome channel, not a harness error; any other error aborts the case.
func evaluate(ctx *runtime.Context, c Case) (string, *runtime.Failure, error) {
	switch {
	case c.Eval != nil:
		return evaluateOp(ctx, c.Eval)
	case c.Unary != nil:
		operand, err := Build(ctx, c.Unary.Operand)
		if err != nil {
			return "", nil, err
		}
		defer operand.Release()
		out, err := ctx.ApplyUnary(runtime.UnaryOp(c.Unary.Op), operand)
		return renderOutcome(out, err)
	case c.Render != nil:
		ref, err := Build(ctx, *c.Render)
		if err != nil {
			return "", nil, err
		}
		defer ref.Release()
		return ref.Render(), nil, nil
	case c.Truthy != nil:
		ref, err := Build(ctx, *c.Truthy)
		if err != nil {
			return "", nil, err
		}
		defer ref.Release()
		return fmt.Sprintf("%v", runtime.Truthy(ref)), nil, nil
	case c.Length != nil:
		ref, err := Build(ctx, *c.Length)
		if err != nil {
			return "", nil, err
		}
		defer ref.Release()
		out, err := ctx.Len(ref)
		return renderOutcome(out, err)
	case c.Index != nil:
		target, err := Build(ctx, c.Index.Target)
		if err != nil {
			return "", nil, err
		}
		defer target.Release()
		key, err := Build(ctx, c.Index.Key)
		if err != nil {
			return "", nil, err
		}
		defer key.Release()
		out, err := ctx.GetIndex(target, key)
		return renderOutcome(out, err)
	case c.Iterate != nil:
		return evaluateIterate(ctx, c.Iterate)
	default:
		return "", nil, fmt.Errorf("conformance: case %q has no operation", c.Name)
	}
}

func evaluateOp(ctx *runtime.Context, spec *OpSpec) (string, *runtime.Failure, error) {
	left, err := Build(ctx, spec.Left)
	if err != nil {
		return "", nil, err
	}
	defer left.Release()
	right, err := Build(ctx, spec.Right)
	if err != nil {
		return "", nil, err
	}
	defer right.Release()

	var out runtime.Ref
	switch spec.Op {
	case "+", "-", "*", "/":
		out, err = ctx.ApplyBinary(runtime.BinaryOp(spec.Op), left, right)
	case "==", "!=", "<", ">":
		out, err = ctx.Compare(runtime.CompareOp(spec.Op), left, right)
	default:
		return "", nil, fmt.Errorf("conformance: unknown operator %q", spec.Op)
	}
	return renderOutcome(out, err)
}

func evaluateIterate(ctx *runtime.Context, spec *IterateSpec) (string, *runtime.Failure, error) {
	target, err := Build(ctx, spec.Target)
	if err != nil {
		return "", nil, err
	}
	defer target.Release()
	iter := ctx.NewIterator(target)
	defer iter.Release()

	maxSteps := spec.MaxSteps
	if maxSteps == 0 {
		maxSteps = 1000
	}
	var yielded []string
	for step := 0; ; step++ {
		for _, mutation := range spec.Mutations {
			if mutation.After != step {
				continue
			}
			if err := applyMutation(ctx, target, mutation); err != nil {
				return "", nil, err
			}
		}
		if step >= maxSteps {
			return "", nil, fmt.Errorf("conformance: iteration exceeded %d steps", maxSteps)
		}
		val, done, err := ctx.Advance(iter)
		if err != nil {
			if failure, ok := runtime.AsFailure(err); ok {
				return "", failure, nil
			}
			return "", nil, err
		}
		if done {
			return strings.Join(yielded, ", "), nil, nil
		}
		yielded = append(yielded, val.Render())
		val.Release()
	}
}

func applyMutation(ctx *runtime.Context, target runtime.Ref, mutation MutationSpec) error {
	if mutation.Pop {
		popped, err := ctx.Pop(target)
		if err != nil {
			return err
		}
		popped.Release()
		return nil
	}
	if mutation.Append != nil {
		val, err := Build(ctx, *mutation.Append)
		if err != nil {
			return err
		}
		defer val.Release()
		return ctx.Append(target, val)
	}
	return fmt.Errorf("conformance: mutation has no action")
}

func renderOutcome(out runtime.Ref, err error) (string, *runtime.Failure, error) {
	if err != nil {
		if failure, ok := runtime.AsFailure(err); ok {
			return "", failure, nil
		}
		return "", nil, err
	}
	defer out.Release()
	return out.Render(), nil, nil
}
