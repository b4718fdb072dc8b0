package contentstream

// Object is an operand of a content stream operator.
type Object any

// Number is an integer or real operand.
type Number float64

// String is a literal or hexadecimal string operand, decoded to raw bytes.
type String string

// Name is a name operand without its leading slash.
type Name string

// Array is a bracketed operand list.
type Array []Object

// Dict is an inline dictionary, as used by marked-content operators.
type Dict map[string]Object

// Bool is a boolean operand.
type Bool bool

// Null is the null operand.
type Null struct{}

// Operation is an operator together with the operands that preceded it.
type Operation struct {
	Operator string
	Operands []Object
}

// Floats returns the operands as numbers when there are exactly n of them
// and all are numeric.
func (op Operation) Floats(n int) ([]float64, bool) {
	if len(op.Operands) != n {
		return nil, false
	}
	vals := make([]float64, n)
	for i, o := range op.Operands {
		num, ok := o.(Number)
		if !ok {
			return nil, false
		}
		vals[i] = float64(num)
	}
	return vals, true
}

// Name returns the last operand when it is a name.
func (op Operation) Name() (string, bool) {
	if len(op.Operands) == 0 {
		return "", false
	}
	n, ok := op.Operands[len(op.Operands)-1].(Name)
	return string(n), ok
}
