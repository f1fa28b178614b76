package jsonq_test

import (
	"testing"

	"github.com/signadot/jsonq"
	"github.com/signadot/jsonq/ir"
)

// A custom operator must be writable from outside the package: the
// QueryFunc signature and the Operand accessors are the public
// extension surface.
func TestMacroFromConsumerPackage(t *testing.T) {
	q, err := jsonq.FromText(`[
		{"id": 1, "qty": 3},
		{"id": 2, "qty": 12},
		{"id": 3, "qty": 7}
	]`)
	if err != nil {
		t.Fatal(err)
	}
	q.Macro("atLeast", func(c *ir.Node, o jsonq.Operand) (bool, error) {
		min := o.Node()
		if c.Type != ir.NumberType || min.Type != ir.NumberType {
			return false, nil
		}
		return c.Number >= min.Number, nil
	})
	res, err := q.Where("qty", "atLeast", 7).SortBy("id", jsonq.Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	var got []float64
	for _, el := range res.Values {
		got = append(got, ir.Get(el, "id").Number)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("ids = %v, want [2 3]", got)
	}
}

func TestOperandPredicateAccessor(t *testing.T) {
	q, err := jsonq.FromText(`[{"v": 1}, {"v": 2}]`)
	if err != nil {
		t.Fatal(err)
	}
	// route holds through a wrapping custom operator to show the
	// predicate side of the operand is reachable too
	q.Macro("wrapped", func(c *ir.Node, o jsonq.Operand) (bool, error) {
		fn := o.Predicate()
		if fn == nil {
			t.Fatal("Predicate() = nil, want the recorded function")
		}
		return fn(c)
	})
	n, err := q.Where("v", "wrapped", jsonq.PredicateFunc(func(y *ir.Node) (bool, error) {
		return y.Number > 1, nil
	})).Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}
