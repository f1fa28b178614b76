package jsonq

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/signadot/jsonq/ir"
)

// WhereScript filters with a predicate compiled from an expr source
// string. The candidate value is bound as "value" in the program
// environment, e.g. `value > 3 && value < 10`.
func (q *JSONQuery) WhereScript(key, src string) *JSONQuery {
	fn, err := ScriptPredicate(src)
	if err != nil {
		return q.fail(err)
	}
	return q.WhereHolds(key, fn)
}

// OrWhereScript is WhereScript opening a new OR group.
func (q *JSONQuery) OrWhereScript(key, src string) *JSONQuery {
	fn, err := ScriptPredicate(src)
	if err != nil {
		return q.fail(err)
	}
	return q.OrWhere(key, OpHolds, fn)
}

// ScriptPredicate compiles an expr program into a PredicateFunc. The
// program must yield a bool; anything else surfaces as an evaluator
// error rather than a failed condition.
func ScriptPredicate(src string) (PredicateFunc, error) {
	prg, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", src, err)
	}
	return func(y *ir.Node) (bool, error) {
		res, err := expr.Run(prg, map[string]any{"value": ir.ToAny(y)})
		if err != nil {
			return false, fmt.Errorf("script %q: %w", src, err)
		}
		b, ok := res.(bool)
		if !ok {
			return false, fmt.Errorf("script %q returned %T, want bool", src, res)
		}
		return b, nil
	}, nil
}
