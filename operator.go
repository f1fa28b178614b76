package jsonq

import (
	"fmt"
	"strings"

	"github.com/signadot/jsonq/ir"
)

// Operator names accepted by Where and OrWhere.
const (
	OpEq         = "eq"
	OpNeq        = "neq"
	OpGt         = "gt"
	OpGte        = "gte"
	OpLt         = "lt"
	OpLte        = "lte"
	OpIn         = "in"
	OpNotIn      = "notIn"
	OpContains   = "contains"
	OpStartsWith = "startsWith"
	OpEndsWith   = "endsWith"
	OpHolds      = "holds"
	OpNotHolds   = "notHolds"
)

// PredicateFunc is a caller-supplied condition used by the holds and
// notHolds operators. An error returned here aborts the whole chain;
// it is never treated as false.
type PredicateFunc func(*ir.Node) (bool, error)

// QueryFunc evaluates one operator against a candidate value and the
// operand recorded by Where. Custom operators registered with Macro
// have this shape.
type QueryFunc func(candidate *ir.Node, op Operand) (bool, error)

// Operand is either a value node or a predicate function, depending
// on the operator.
type Operand struct {
	node *ir.Node
	fn   PredicateFunc
}

// Node returns the operand value recorded by Where, nil for the
// predicate operators.
func (o Operand) Node() *ir.Node {
	return o.node
}

// Predicate returns the predicate recorded for holds/notHolds, nil
// for value operands.
func (o Operand) Predicate() PredicateFunc {
	return o.fn
}

func defaultQueries() map[string]QueryFunc {
	return map[string]QueryFunc{
		OpEq: func(c *ir.Node, o Operand) (bool, error) {
			return ir.Equal(c, o.node), nil
		},
		OpNeq: func(c *ir.Node, o Operand) (bool, error) {
			return !ir.Equal(c, o.node), nil
		},
		OpGt:  orderQuery(func(r int) bool { return r > 0 }),
		OpGte: orderQuery(func(r int) bool { return r >= 0 }),
		OpLt:  orderQuery(func(r int) bool { return r < 0 }),
		OpLte: orderQuery(func(r int) bool { return r <= 0 }),
		OpIn: func(c *ir.Node, o Operand) (bool, error) {
			return memberOf(c, o.node)
		},
		OpNotIn: func(c *ir.Node, o Operand) (bool, error) {
			in, err := memberOf(c, o.node)
			return !in, err
		},
		OpContains:   stringQuery(strings.Contains),
		OpStartsWith: stringQuery(strings.HasPrefix),
		OpEndsWith:   stringQuery(strings.HasSuffix),
		OpHolds: func(c *ir.Node, o Operand) (bool, error) {
			return callPredicate(c, o)
		},
		OpNotHolds: func(c *ir.Node, o Operand) (bool, error) {
			ok, err := callPredicate(c, o)
			return !ok, err
		},
	}
}

// orderQuery builds the gt/gte/lt/lte evaluators. Ordering is
// defined for Number-Number and String-String pairs only; any other
// pairing is false, never an error, so heterogeneous arrays degrade
// gracefully.
func orderQuery(pass func(int) bool) QueryFunc {
	return func(c *ir.Node, o Operand) (bool, error) {
		if c.Type != o.node.Type {
			return false, nil
		}
		if c.Type != ir.NumberType && c.Type != ir.StringType {
			return false, nil
		}
		r, ok := ir.Compare(c, o.node)
		if !ok {
			return false, nil
		}
		return pass(r), nil
	}
}

// stringQuery builds contains/startsWith/endsWith. Non-string
// candidate or operand is false.
func stringQuery(pass func(s, substr string) bool) QueryFunc {
	return func(c *ir.Node, o Operand) (bool, error) {
		if c.Type != ir.StringType || o.node.Type != ir.StringType {
			return false, nil
		}
		return pass(c.String, o.node.String), nil
	}
}

// memberOf tests membership with eq semantics per element.
func memberOf(c, set *ir.Node) (bool, error) {
	if set.Type != ir.ArrayType {
		return false, fmt.Errorf("%w: membership test against %s, want Array", ErrBadOperand, set.Type)
	}
	for _, v := range set.Values {
		if ir.Equal(c, v) {
			return true, nil
		}
	}
	return false, nil
}

func callPredicate(c *ir.Node, o Operand) (bool, error) {
	if o.fn == nil {
		return false, fmt.Errorf("%w: holds expects a predicate function", ErrBadOperand)
	}
	ok, err := o.fn(c)
	if err != nil {
		return false, fmt.Errorf("predicate at %s: %w", c.Path(), err)
	}
	return ok, nil
}
