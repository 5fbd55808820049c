package model

import (
	"fmt"
	"sort"
	"strings"
)

// Expr is a Boolean expression over network variables and parameters.
// Expressions are immutable once built.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Ident references a variable or a parameter by name. Whether the name
// denotes a variable or a parameter is decided by the enclosing Network:
// names that are not declared variables are treated as parameters.
type Ident struct {
	Name string
}

// Const is a Boolean constant.
type Const struct {
	Value bool
}

// Not negates an expression.
type Not struct {
	Inner Expr
}

// BinOp enumerates binary Boolean connectives.
type BinOp int

const (
	OpAnd BinOp = iota
	OpOr
	OpXor
	OpImp
	OpIff
)

// Bin applies a binary connective to two sub-expressions.
type Bin struct {
	Op          BinOp
	Left, Right Expr
}

func (Ident) isExpr() {}
func (Const) isExpr() {}
func (Not) isExpr()   {}
func (Bin) isExpr()   {}

func (e Ident) String() string { return e.Name }

func (e Const) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (e Not) String() string { return "!" + parenthesize(e.Inner) }

func (op BinOp) String() string {
	switch op {
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpImp:
		return "=>"
	case OpIff:
		return "<=>"
	}
	return "?"
}

func (e Bin) String() string {
	return fmt.Sprintf("%s %s %s", parenthesize(e.Left), e.Op, parenthesize(e.Right))
}

func parenthesize(e Expr) string {
	if b, ok := e.(Bin); ok {
		return "(" + b.String() + ")"
	}
	return e.String()
}

// Var builds a reference to the named variable or parameter.
func Var(name string) Expr { return Ident{Name: name} }

// Bool builds a Boolean constant.
func Bool(v bool) Expr { return Const{Value: v} }

// Neg builds the negation of e.
func Neg(e Expr) Expr { return Not{Inner: e} }

// And builds the conjunction of the given expressions.
// With no arguments it is the constant true.
func And(es ...Expr) Expr { return fold(OpAnd, true, es) }

// Or builds the disjunction of the given expressions.
// With no arguments it is the constant false.
func Or(es ...Expr) Expr { return fold(OpOr, false, es) }

// Xor builds the exclusive-or of two expressions.
func Xor(a, b Expr) Expr { return Bin{Op: OpXor, Left: a, Right: b} }

// Imp builds the implication a => b.
func Imp(a, b Expr) Expr { return Bin{Op: OpImp, Left: a, Right: b} }

// Iff builds the equivalence a <=> b.
func Iff(a, b Expr) Expr { return Bin{Op: OpIff, Left: a, Right: b} }

func fold(op BinOp, unit bool, es []Expr) Expr {
	if len(es) == 0 {
		return Const{Value: unit}
	}
	res := es[0]
	for _, e := range es[1:] {
		res = Bin{Op: op, Left: res, Right: e}
	}
	return res
}

// Network is an asynchronous Boolean network. Each variable carries one
// update expression; a transition flips exactly one variable to the value of
// its update function. Identifiers used in update expressions that are not
// declared variables become parameters: free Boolean constants that span the
// color dimension of the symbolic state space.
type Network struct {
	variables []string
	index     map[string]int
	updates   []Expr
	params    map[string]struct{}
}

// NewNetwork declares a network over the given variables, in order.
// Updates start out unset and must be assigned with SetUpdate before the
// network can be compiled into a symbolic graph.
func NewNetwork(variables []string) (*Network, error) {
	if len(variables) == 0 {
		return nil, fmt.Errorf("network needs at least one variable")
	}
	n := &Network{
		variables: append([]string(nil), variables...),
		index:     make(map[string]int, len(variables)),
		updates:   make([]Expr, len(variables)),
		params:    make(map[string]struct{}),
	}
	for i, name := range variables {
		if !validName(name) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		if _, dup := n.index[name]; dup {
			return nil, fmt.Errorf("duplicate variable %q", name)
		}
		n.index[name] = i
	}
	return n, nil
}

// SetUpdate assigns the update expression of a declared variable.
// Unknown identifiers inside the expression are registered as parameters.
func (n *Network) SetUpdate(variable string, update Expr) error {
	i, ok := n.index[variable]
	if !ok {
		return fmt.Errorf("unknown variable %q", variable)
	}
	if update == nil {
		return fmt.Errorf("nil update for variable %q", variable)
	}
	collectParams(update, n.index, n.params)
	n.updates[i] = update
	return nil
}

func collectParams(e Expr, vars map[string]int, params map[string]struct{}) {
	switch x := e.(type) {
	case Ident:
		if _, ok := vars[x.Name]; !ok {
			params[x.Name] = struct{}{}
		}
	case Not:
		collectParams(x.Inner, vars, params)
	case Bin:
		collectParams(x.Left, vars, params)
		collectParams(x.Right, vars, params)
	}
}

// NumVars returns the number of declared variables.
func (n *Network) NumVars() int { return len(n.variables) }

// Variables returns the declared variable names in declaration order.
func (n *Network) Variables() []string {
	return append([]string(nil), n.variables...)
}

// VariableIndex returns the index of the named variable, or -1.
func (n *Network) VariableIndex(name string) int {
	if i, ok := n.index[name]; ok {
		return i
	}
	return -1
}

// Parameters returns the parameter names in sorted order. The order is the
// canonical parameter ordering used by the symbolic encoding.
func (n *Network) Parameters() []string {
	out := make([]string, 0, len(n.params))
	for p := range n.params {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Update returns the update expression of variable i, or nil if unset.
func (n *Network) Update(i int) Expr {
	if i < 0 || i >= len(n.updates) {
		return nil
	}
	return n.updates[i]
}

// Validate checks that every variable has an update expression.
func (n *Network) Validate() error {
	var missing []string
	for i, u := range n.updates {
		if u == nil {
			missing = append(missing, n.variables[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing update for variable(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

func validName(name string) bool {
	if name == "" || name == "true" || name == "false" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
