package jsonq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/jsonq/ir"
)

func TestWhereAndOrGroups(t *testing.T) {
	q := mustQuery(t, `[
		{"a": 1, "b": 2, "c": 9},
		{"a": 0, "b": 0, "c": 3},
		{"a": 1, "b": 2, "c": 0}
	]`)
	res, err := q.Where("a", OpEq, 1).Where("b", OpEq, 2).OrWhere("c", OpEq, 3).Get()
	if err != nil {
		t.Fatal(err)
	}
	want := []any{
		map[string]any{"a": 1.0, "b": 2.0, "c": 9.0},
		map[string]any{"a": 0.0, "b": 0.0, "c": 3.0},
	}
	if diff := cmp.Diff(want, ir.ToAny(res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhereThreeGroups(t *testing.T) {
	// groups OR flat in declaration order: (a=1 && b=2) || c=3 || d=4
	q := mustQuery(t, `[
		{"a": 1, "b": 2},
		{"c": 3},
		{"d": 4},
		{"a": 1, "b": 0, "c": 0, "d": 0}
	]`)
	res, err := q.
		Where("a", OpEq, 1).Where("b", OpEq, 2).
		OrWhere("c", OpEq, 3).
		OrWhere("d", OpEq, 4).
		Count()
	if err != nil {
		t.Fatal(err)
	}
	if res != 3 {
		t.Errorf("Count = %d, want 3", res)
	}
}

func TestWhereIdempotent(t *testing.T) {
	q := mustQuery(t, storeJSON)
	once, err := q.At("products").Where("price", OpEq, 850).Get()
	if err != nil {
		t.Fatal(err)
	}
	twice, err := q.At("products").Where("price", OpEq, 850).Where("price", OpEq, 850).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ir.ToAny(once), ir.ToAny(twice)); diff != "" {
		t.Errorf("equality filter is not idempotent (-once +twice):\n%s", diff)
	}
}

type operatorTest struct {
	name string
	key  string
	op   string
	val  any
	want []float64
}

func TestOperators(t *testing.T) {
	tests := []operatorTest{
		{name: "eq", key: "price", op: OpEq, val: 1200, want: []float64{3}},
		{name: "neq", key: "price", op: OpNeq, val: 850, want: []float64{1, 2, 3, 6}},
		{name: "gt", key: "price", op: OpGt, val: 1200, want: []float64{1, 2}},
		{name: "gte", key: "price", op: OpGte, val: 1200, want: []float64{1, 2, 3}},
		{name: "lt", key: "price", op: OpLt, val: 950, want: []float64{4, 5}},
		{name: "lte", key: "price", op: OpLte, val: 950, want: []float64{4, 5, 6}},
		{name: "gt string-string", key: "name", op: OpGt, val: "Sony", want: []float64{3}},
		// cross-type ordering degrades to false, never an error
		{name: "gt cross-type", key: "price", op: OpGt, val: "1200", want: nil},
		{name: "lt cross-type", key: "name", op: OpLt, val: 99999, want: nil},
		{name: "in", key: "id", op: OpIn, val: []any{1, 3, 99}, want: []float64{1, 3}},
		{name: "notIn", key: "id", op: OpNotIn, val: []any{1, 2, 3, 4}, want: []float64{5, 6}},
		{name: "contains", key: "name", op: OpContains, val: "core", want: []float64{5, 6}},
		{name: "startsWith", key: "name", op: OpStartsWith, val: "MacBook", want: []float64{1, 2}},
		{name: "endsWith", key: "name", op: OpEndsWith, val: "retina", want: []float64{1, 2}},
		// non-string candidate is false for the string operators
		{name: "contains non-string", key: "price", op: OpContains, val: "85", want: nil},
		// eq across types is simply unequal
		{name: "eq cross-type", key: "price", op: OpEq, val: "850", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := mustQuery(t, storeJSON)
			res, err := q.At("products").Where(tc.key, tc.op, tc.val).SortBy("id", Asc).Get()
			if err != nil {
				t.Fatal(err)
			}
			got := ids(t, res)
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWhereMissingKeyIsFalse(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").Where("rating", OpGt, 0).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{6}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhereNil(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").WhereNil("discount").Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{5}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhereObjectOperand(t *testing.T) {
	// a map operand comes out key-sorted, the document keeps its own
	// key order; equality must not care
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").
		Where("id", OpEq, 1).
		Get()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Values) != 1 {
		t.Fatalf("want a single product")
	}

	n, err := q.At("owner").Where("name", OpEq, "Ada").
		Where("city", OpEq, "London").Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("owner did not survive, Count = %d", n)
	}

	q2 := mustQuery(t, `[{"owner": {"name": "Ada", "city": "London"}}]`)
	got, err := q2.Where("owner", OpEq, map[string]any{
		"name": "Ada",
		"city": "London",
	}).Count()
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}

	got, err = q2.Where("owner", OpEq, map[string]any{
		"name": "Ada",
		"city": "Paris",
	}).Count()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
}

func TestWhereTruthy(t *testing.T) {
	q := mustQuery(t, `[
		{"id": 1, "flag": true},
		{"id": 2, "flag": 0},
		{"id": 3, "flag": ""},
		{"id": 4, "flag": null},
		{"id": 5, "flag": "yes"},
		{"id": 6}
	]`)
	res, err := q.WhereTruthy("flag").SortBy("id", Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 5}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// falsy requires the key to be present
	res, err = q.WhereFalsy("flag").SortBy("id", Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{2, 3, 4}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDeadGroupShortCircuits(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").
		Where("warranty", OpEq, true).
		WhereHolds("price", func(y *ir.Node) (bool, error) {
			t.Error("predicate ran in a group already failed by a missing key")
			return false, errors.New("unreachable")
		}).
		Get()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Values) != 0 {
		t.Errorf("got %d survivors, want 0", len(res.Values))
	}
}

func TestWhereOnObjectFocus(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("owner").Where("city", OpEq, "London").Get()
	if err != nil {
		t.Fatal(err)
	}
	if res.Type != ir.ObjectType || ir.Get(res, "name") == nil {
		t.Errorf("got %v, want the owner object", ir.ToAny(res))
	}

	res, err = q.At("owner").Where("city", OpEq, "Paris").Get()
	if err != nil {
		t.Fatal(err)
	}
	if res.Type != ir.ObjectType || len(res.Fields) != 0 {
		t.Errorf("got %v, want an empty object", ir.ToAny(res))
	}
}

func TestWhereHolds(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").WhereHolds("price", func(y *ir.Node) (bool, error) {
		return y.Type == ir.NumberType && y.Number > 1000, nil
	}).SortBy("id", Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhereHoldsErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	q := mustQuery(t, storeJSON)
	_, err := q.At("products").WhereHolds("price", func(y *ir.Node) (bool, error) {
		return false, boom
	}).Get()
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestWhereNotHolds(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").WhereNotHolds("price", func(y *ir.Node) (bool, error) {
		return y.Number > 1000, nil
	}).SortBy("id", Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{4, 5, 6}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMacro(t *testing.T) {
	q := mustQuery(t, storeJSON)
	q.Macro("priceBand", func(c *ir.Node, o Operand) (bool, error) {
		low := o.Node()
		if c.Type != ir.NumberType || low.Type != ir.NumberType {
			return false, nil
		}
		return c.Number >= low.Number && c.Number < low.Number+100, nil
	})
	res, err := q.At("products").Where("price", "priceBand", 900).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{6}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnknownOperator(t *testing.T) {
	q := mustQuery(t, storeJSON)
	_, err := q.At("products").Where("price", "between", 1).Get()
	if !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("err = %v, want %v", err, ErrUnknownOperator)
	}
	var oe *OperatorError
	if !errors.As(err, &oe) || oe.Op != "between" {
		t.Errorf("err = %v, want *OperatorError naming the operator", err)
	}
}

func TestWhereBadOperandLatches(t *testing.T) {
	q := mustQuery(t, storeJSON)
	_, err := q.At("products").Where("id", OpIn, 5).Get()
	if !errors.Is(err, ErrBadOperand) {
		t.Errorf("err = %v, want %v", err, ErrBadOperand)
	}

	_, err = q.At("products").Where("id", OpHolds, "not a func").Get()
	if !errors.Is(err, ErrBadOperand) {
		t.Errorf("err = %v, want %v", err, ErrBadOperand)
	}
}

func TestWhereInSugar(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").WhereIn("id", 2, 4).SortBy("id", Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{2, 4}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	res, err = q.At("products").WhereNotIn("id", 1, 2, 3).SortBy("id", Asc).Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{4, 5, 6}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func ExampleJSONQuery_Where() {
	q, err := FromText(storeJSON)
	if err != nil {
		panic(err)
	}
	names, err := q.At("products").
		Where("price", OpGte, 1200).
		SortBy("price", Desc).
		Pluck("name")
	if err != nil {
		panic(err)
	}
	for _, name := range names.Values {
		fmt.Println(name.String)
	}
	// Output:
	// MacBook Pro 15 inch retina
	// MacBook Pro 13 inch retina
	// Sony VAIO
}
