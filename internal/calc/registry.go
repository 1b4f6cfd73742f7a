package calc

import (
	"slices"
	"sort"
)

// Operation describes one operation understood by the evaluator.
type Operation struct {
	// Name is the identifier used on the command line, in the REPL and in
	// the HTTP API.
	Name string
	// Arity is the number of operands, 1 or 2.
	Arity int
	// Outputs names the values produced, in order. Comparisons produce none.
	Outputs []string
	// Description is a one-line help text.
	Description string
}

var operations = []Operation{
	{Name: "add", Arity: 2, Outputs: []string{"sum"}, Description: "a + b modulo the capacity"},
	{Name: "sub", Arity: 2, Outputs: []string{"difference"}, Description: "a - b modulo the capacity"},
	{Name: "mul", Arity: 2, Outputs: []string{"product"}, Description: "a * b modulo the capacity"},
	{Name: "div", Arity: 2, Outputs: []string{"quotient"}, Description: "floor(a / b)"},
	{Name: "mod", Arity: 2, Outputs: []string{"remainder"}, Description: "a mod b"},
	{Name: "divmod", Arity: 2, Outputs: []string{"quotient", "remainder"}, Description: "quotient and remainder of a / b"},
	{Name: "pow", Arity: 2, Outputs: []string{"power"}, Description: "a ** b modulo the capacity, b multiplications"},
	{Name: "isqrt", Arity: 1, Outputs: []string{"root"}, Description: "floor(sqrt(a))"},
	{Name: "and", Arity: 2, Outputs: []string{"result"}, Description: "bitwise a AND b"},
	{Name: "or", Arity: 2, Outputs: []string{"result"}, Description: "bitwise a OR b"},
	{Name: "xor", Arity: 2, Outputs: []string{"result"}, Description: "bitwise a XOR b"},
	{Name: "andnot", Arity: 2, Outputs: []string{"result"}, Description: "bitwise a AND NOT b"},
	{Name: "not", Arity: 1, Outputs: []string{"result"}, Description: "bitwise complement of a"},
	{Name: "shl", Arity: 2, Outputs: []string{"result"}, Description: "a shifted left by b bits"},
	{Name: "shr", Arity: 2, Outputs: []string{"result"}, Description: "a shifted right by b bits"},
	{Name: "cmp", Arity: 2, Description: "-1, 0 or +1 as a <, == or > b"},
	{Name: "incr", Arity: 1, Outputs: []string{"result"}, Description: "a + 1 modulo the capacity"},
	{Name: "decr", Arity: 1, Outputs: []string{"result"}, Description: "a - 1 modulo the capacity"},
}

// Lookup returns the operation registered under name.
func Lookup(name string) (Operation, bool) {
	i := slices.IndexFunc(operations, func(op Operation) bool { return op.Name == name })
	if i < 0 {
		return Operation{}, false
	}
	return operations[i], true
}

// Operations returns every operation in registration order.
func Operations() []Operation {
	return slices.Clone(operations)
}

// Names returns the sorted operation names.
func Names() []string {
	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = op.Name
	}
	sort.Strings(names)
	return names
}
