package runtime

// CompareOp names a comparison operator.
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpGt CompareOp = ">"
)

// Equatable reports whether values of the given kind participate in
// equality. Comparability is a per-kind capability so a new kind's support
// can be added without touching unrelated kinds.
func Equatable(k Kind) bool {
	switch k {
	case KindInteger, KindString, KindList:
		return true
	default:
		return false
	}
}

// Comparable reports whether values of the given kind have an ordering.
func Comparable(k Kind) bool {
	return k == KindInteger
}

// Compare evaluates a comparison and returns a fresh boolean object. Any
// pairing outside the equatable/comparable same-kind set, including every
// cross-kind pairing, is a hard TypeError, never a silent false.
func (c *Context) Compare(op CompareOp, left, right Ref) (Ref, error) {
	leftKind := left.Kind()
	rightKind := right.Kind()
	switch op {
	case OpEq, OpNe:
		if leftKind != rightKind || !Equatable(leftKind) {
			return Ref{}, newTypeError("cannot compare '%s' and '%s' for equality", leftKind, rightKind)
		}
		equal, err := refsEqual(c, left, right, make(map[refPair]struct{}))
		if err != nil {
			return Ref{}, err
		}
		if op == OpNe {
			equal = !equal
		}
		return c.NewBool(equal), nil
	case OpLt, OpGt:
		if leftKind != rightKind || !Comparable(leftKind) {
			return Ref{}, newTypeError("'%s' not supported between '%s' and '%s'", op, leftKind, rightKind)
		}
		leftVal := intOperand(left)
		rightVal := intOperand(right)
		if op == OpLt {
			return c.NewBool(leftVal < rightVal), nil
		}
		return c.NewBool(leftVal > rightVal), nil
	default:
		return Ref{}, newTypeError("unsupported comparison operator %s", op)
	}
}

// refPair identifies an operand pairing already on the comparison path.
type refPair struct {
	left  refKey
	right refKey
}

// refsEqual assumes both operands share an equatable kind. List equality is
// length then pairwise, order sensitive, short-circuiting on the first
// mismatch; element failures propagate. Identical handles are equal without
// inspecting the payload, and re-entering a pairing already under comparison
// is a ValueError rather than unbounded recursion.
func refsEqual(c *Context, left, right Ref, visiting map[refPair]struct{}) (bool, error) {
	if left == right {
		return true, nil
	}
	switch left.Kind() {
	case KindInteger:
		return intOperand(left) == intOperand(right), nil
	case KindString:
		return stringOperand(left) == stringOperand(right), nil
	case KindList:
		pair := refPair{left: left.key(), right: right.key()}
		if _, ok := visiting[pair]; ok {
			return false, newValueError("cannot compare recursive lists")
		}
		visiting[pair] = struct{}{}
		defer delete(visiting, pair)
		leftElems := listElements(left)
		rightElems := listElements(right)
		if len(leftElems) != len(rightElems) {
			return false, nil
		}
		for i := range leftElems {
			leftKind := leftElems[i].Kind()
			rightKind := rightElems[i].Kind()
			if leftKind != rightKind || !Equatable(leftKind) {
				return false, newTypeError("cannot compare '%s' and '%s' for equality", leftKind, rightKind)
			}
			equal, err := refsEqual(c, leftElems[i], rightElems[i], visiting)
			if err != nil {
				return false, err
			}
			if !equal {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, newTypeError("cannot compare '%s' values for equality", left.Kind())
	}
}
