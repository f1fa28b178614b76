package jsonq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWhereScript(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").
		WhereScript("price", "value >= 900 && value < 1400").
		SortBy("id", Asc).
		Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 3, 6}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhereScriptOnStrings(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").
		WhereScript("name", `value startsWith "HP"`).
		SortBy("id", Asc).
		Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{5, 6}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOrWhereScript(t *testing.T) {
	q := mustQuery(t, storeJSON)
	res, err := q.At("products").
		Where("price", OpGt, 1500).
		OrWhereScript("price", "value < 900").
		SortBy("id", Asc).
		Get()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{2, 4, 5}, ids(t, res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhereScriptCompileErrorLatches(t *testing.T) {
	q := mustQuery(t, storeJSON)
	if _, err := q.At("products").WhereScript("price", "value >").Get(); err == nil {
		t.Error("expected a compile error to surface at the terminal")
	}
}

func TestScriptPredicateNonBool(t *testing.T) {
	fn, err := ScriptPredicate("value + 1")
	if err != nil {
		// expr may reject a non-bool program at compile time
		return
	}
	q := mustQuery(t, storeJSON)
	if _, err := q.At("products").WhereHolds("price", fn).Get(); err == nil {
		t.Error("expected a non-bool script result to surface as an error")
	}
}
