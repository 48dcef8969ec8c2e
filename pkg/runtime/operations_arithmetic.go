package runtime

import (
	"math"
	"strings"
)

// BinaryOp names a binary arithmetic operator.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
)

// UnaryOp names a unary operator.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

type binaryKey struct {
	op    BinaryOp
	left  Kind
	right Kind
}

type binaryRule func(c *Context, left, right Ref) (Ref, error)

// Dispatch is a flat table over (operator, left kind, right kind). The kind
// set is small and closed, so no per-type method slots are consulted yet;
// lookupBinary is the single seam where a type's registered operator slot can
// be tried after a table miss.
var binaryRules = map[binaryKey]binaryRule{
	{OpAdd, KindInteger, KindInteger}: addInts,
	{OpAdd, KindString, KindString}:   concatStrings,
	{OpAdd, KindList, KindList}:       concatLists,
	{OpSub, KindInteger, KindInteger}: subInts,
	{OpMul, KindInteger, KindInteger}: mulInts,
	{OpMul, KindString, KindInteger}:  repeatString,
	{OpDiv, KindInteger, KindInteger}: divInts,
}

func lookupBinary(op BinaryOp, left, right Kind) (binaryRule, bool) {
	rule, ok := binaryRules[binaryKey{op, left, right}]
	return rule, ok
}

// ApplyBinary dispatches a binary arithmetic operator over two operands. An
// unsupported kind pairing is a TypeError.
func (c *Context) ApplyBinary(op BinaryOp, left, right Ref) (Ref, error) {
	leftKind := left.Kind()
	rightKind := right.Kind()
	rule, ok := lookupBinary(op, leftKind, rightKind)
	if !ok {
		return Ref{}, newTypeError("unsupported operand kinds for %s: '%s' and '%s'", op, leftKind, rightKind)
	}
	return rule(c, left, right)
}

type unaryKey struct {
	op   UnaryOp
	kind Kind
}

type unaryRule func(c *Context, operand Ref) (Ref, error)

var unaryRules = map[unaryKey]unaryRule{
	{OpNeg, KindInteger}: negInt,
}

func init() {
	// Logical negation is total: every kind has a truth value.
	for _, kind := range allKinds {
		unaryRules[unaryKey{OpNot, kind}] = notValue
	}
}

// ApplyUnary dispatches a unary operator. An unsupported kind is a TypeError.
func (c *Context) ApplyUnary(op UnaryOp, operand Ref) (Ref, error) {
	kind := operand.Kind()
	rule, ok := unaryRules[unaryKey{op, kind}]
	if !ok {
		return Ref{}, newTypeError("unsupported operand kind for %s: '%s'", op, kind)
	}
	return rule(c, operand)
}

//-----------------------------------------------------------------------------
// Rules
//-----------------------------------------------------------------------------

// Arithmetic widens to int64 and range-checks against the int32 bounds, so
// overflow is reported instead of wrapping.
func checkedInt32(result int64, operation string) (int32, error) {
	if result < math.MinInt32 || result > math.MaxInt32 {
		return 0, newOverflowError(operation)
	}
	return int32(result), nil
}

func addInts(c *Context, left, right Ref) (Ref, error) {
	sum, err := checkedInt32(int64(intOperand(left))+int64(intOperand(right)), "integer addition overflow")
	if err != nil {
		return Ref{}, err
	}
	return c.NewInt(sum), nil
}

func subInts(c *Context, left, right Ref) (Ref, error) {
	diff, err := checkedInt32(int64(intOperand(left))-int64(intOperand(right)), "integer subtraction overflow")
	if err != nil {
		return Ref{}, err
	}
	return c.NewInt(diff), nil
}

func mulInts(c *Context, left, right Ref) (Ref, error) {
	product, err := checkedInt32(int64(intOperand(left))*int64(intOperand(right)), "integer multiplication overflow")
	if err != nil {
		return Ref{}, err
	}
	return c.NewInt(product), nil
}

func divInts(c *Context, left, right Ref) (Ref, error) {
	divisor := intOperand(right)
	if divisor == 0 {
		return Ref{}, newDivisionByZeroError()
	}
	quotient, err := checkedInt32(int64(intOperand(left))/int64(divisor), "integer division overflow")
	if err != nil {
		return Ref{}, err
	}
	return c.NewInt(quotient), nil
}

func negInt(c *Context, operand Ref) (Ref, error) {
	negated, err := checkedInt32(-int64(intOperand(operand)), "integer negation overflow")
	if err != nil {
		return Ref{}, err
	}
	return c.NewInt(negated), nil
}

func notValue(c *Context, operand Ref) (Ref, error) {
	return c.NewBool(!Truthy(operand)), nil
}

func concatStrings(c *Context, left, right Ref) (Ref, error) {
	return c.NewStr(stringOperand(left) + stringOperand(right)), nil
}

// Left elements first, order preserved; NewList retains every element.
func concatLists(c *Context, left, right Ref) (Ref, error) {
	leftElems := listElements(left)
	rightElems := listElements(right)
	combined := make([]Ref, 0, len(leftElems)+len(rightElems))
	combined = append(combined, leftElems...)
	combined = append(combined, rightElems...)
	return c.NewList(combined), nil
}

// A count of zero or less yields the empty string.
func repeatString(c *Context, left, right Ref) (Ref, error) {
	text := stringOperand(left)
	count := intOperand(right)
	if count <= 0 || text == "" {
		return c.NewStr(""), nil
	}
	if int64(len(text))*int64(count) > math.MaxInt32 {
		return Ref{}, newOverflowError("string repetition overflow")
	}
	return c.NewStr(strings.Repeat(text, int(count))), nil
}

//-----------------------------------------------------------------------------
// Operand readers
//-----------------------------------------------------------------------------

func intOperand(r Ref) int32 {
	var val int32
	_ = r.View(func(obj *Object) error {
		val = obj.value.(IntValue).Val
		return nil
	})
	return val
}

func stringOperand(r Ref) string {
	var val string
	_ = r.View(func(obj *Object) error {
		val = obj.value.(StringValue).Val
		return nil
	})
	return val
}

// listElements copies the element handles out under a shared borrow; the
// handles themselves stay owned by the list.
func listElements(r Ref) []Ref {
	var elems []Ref
	_ = r.View(func(obj *Object) error {
		list := obj.value.(*ListValue)
		elems = make([]Ref, len(list.Elements))
		copy(elems, list.Elements)
		return nil
	})
	return elems
}
