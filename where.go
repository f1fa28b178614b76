package jsonq

import (
	"fmt"

	"github.com/signadot/jsonq/ir"
)

// Where appends a condition to the currently open AND-group, opening
// the first group implicitly. The operand is converted into a node;
// for holds/notHolds pass a PredicateFunc instead.
func (q *JSONQuery) Where(key, op string, val any) *JSONQuery {
	o, err := operandFor(op, val)
	if err != nil {
		return q.fail(err)
	}
	c := query{key: key, op: op, val: o}
	if len(q.queries) == 0 {
		q.queries = append(q.queries, []query{c})
		return q
	}
	last := len(q.queries) - 1
	q.queries[last] = append(q.queries[last], c)
	return q
}

// OrWhere closes the current group and opens a new one, OR-ed
// against all previously closed groups.
func (q *JSONQuery) OrWhere(key, op string, val any) *JSONQuery {
	o, err := operandFor(op, val)
	if err != nil {
		return q.fail(err)
	}
	q.queries = append(q.queries, []query{{key: key, op: op, val: o}})
	return q
}

func operandFor(op string, val any) (Operand, error) {
	// a predicate operand works for holds/notHolds and for any
	// Macro-registered operator that wants one
	switch fn := val.(type) {
	case PredicateFunc:
		return Operand{fn: fn}, nil
	case func(*ir.Node) (bool, error):
		return Operand{fn: fn}, nil
	}
	if op == OpHolds || op == OpNotHolds {
		return Operand{}, fmt.Errorf("%w: %s wants a PredicateFunc, got %T", ErrBadOperand, op, val)
	}
	node, err := ir.FromAny(val)
	if err != nil {
		return Operand{}, fmt.Errorf("%w: %v", ErrBadOperand, err)
	}
	if op == OpIn || op == OpNotIn {
		if node.Type != ir.ArrayType {
			return Operand{}, fmt.Errorf("%w: %s wants an array operand, got %s", ErrBadOperand, op, node.Type)
		}
	}
	return Operand{node: node}, nil
}

// WhereIn sugars Where(key, in, vals).
func (q *JSONQuery) WhereIn(key string, vals ...any) *JSONQuery {
	return q.Where(key, OpIn, vals)
}

// WhereNotIn sugars Where(key, notIn, vals).
func (q *JSONQuery) WhereNotIn(key string, vals ...any) *JSONQuery {
	return q.Where(key, OpNotIn, vals)
}

func (q *JSONQuery) WhereEqual(key string, val any) *JSONQuery {
	return q.Where(key, OpEq, val)
}

func (q *JSONQuery) WhereNotEqual(key string, val any) *JSONQuery {
	return q.Where(key, OpNeq, val)
}

// WhereNil matches an explicit JSON null at key. A key that is
// absent altogether never matches any condition.
func (q *JSONQuery) WhereNil(key string) *JSONQuery {
	return q.Where(key, OpEq, nil)
}

func (q *JSONQuery) WhereNotNil(key string) *JSONQuery {
	return q.Where(key, OpNeq, nil)
}

func (q *JSONQuery) WhereContains(key, val string) *JSONQuery {
	return q.Where(key, OpContains, val)
}

func (q *JSONQuery) WhereStartsWith(key, val string) *JSONQuery {
	return q.Where(key, OpStartsWith, val)
}

func (q *JSONQuery) WhereEndsWith(key, val string) *JSONQuery {
	return q.Where(key, OpEndsWith, val)
}

// WhereTruthy keeps elements whose value at key is truthy: false, 0,
// "", null and empty containers fail, everything else passes. Like
// every condition, an absent key fails.
func (q *JSONQuery) WhereTruthy(key string) *JSONQuery {
	return q.WhereHolds(key, truthPredicate)
}

// WhereFalsy keeps elements whose value at key is present but falsy.
func (q *JSONQuery) WhereFalsy(key string) *JSONQuery {
	return q.WhereNotHolds(key, truthPredicate)
}

func truthPredicate(y *ir.Node) (bool, error) {
	return ir.Truth(y), nil
}

// WhereHolds filters with a caller-supplied predicate. An error from
// fn aborts the chain at the terminal; it is never treated as false.
func (q *JSONQuery) WhereHolds(key string, fn PredicateFunc) *JSONQuery {
	return q.Where(key, OpHolds, fn)
}

func (q *JSONQuery) WhereNotHolds(key string, fn PredicateFunc) *JSONQuery {
	return q.Where(key, OpNotHolds, fn)
}

// Macro registers a custom operator on this query instance. A name
// that collides with a built-in operator replaces it.
func (q *JSONQuery) Macro(op string, fn QueryFunc) *JSONQuery {
	q.queryMap[op] = fn
	return q
}
