package jsonq

import (
	"slices"

	"github.com/signadot/jsonq/debug"
	"github.com/signadot/jsonq/ir"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Sort orders a scalar array focus. A later Sort or SortBy replaces
// the pending sort key; predicates accumulate instead.
func (q *JSONQuery) Sort(dir Direction) *JSONQuery {
	q.sort = &sortSpec{dir: dir}
	return q
}

// SortBy orders an object array by the value at path within each
// element. An absent key sorts as Null, before every other type.
func (q *JSONQuery) SortBy(path string, dir Direction) *JSONQuery {
	q.sort = &sortSpec{key: path, byKey: true, dir: dir}
	return q
}

type sortItem struct {
	node *ir.Node
	key  *ir.Node
}

// applySort is stable: equal keys keep their pre-sort relative
// order. Mixing incomparable key types fails with a TypeError
// instead of producing an unspecified order; the type check runs
// up front so the comparator itself cannot fail.
func (q *JSONQuery) applySort(res *ir.Node) (*ir.Node, error) {
	if res.Type != ir.ArrayType {
		return nil, &TypeError{Op: "sort", Want: "Array", Got: res.Type, At: res.Path()}
	}
	items := make([]sortItem, len(res.Values))
	for i, yv := range res.Values {
		key := yv
		if q.sort.byKey {
			key = ir.Lookup(yv, q.sort.key, q.sep)
			if key == nil {
				key = ir.Null()
			}
		}
		items[i] = sortItem{node: yv, key: key}
	}
	keyType := ir.NullType
	for _, it := range items {
		t := it.key.Type
		if t == ir.NullType {
			continue
		}
		if !t.IsOrdered() {
			return nil, &TypeError{Op: "sort", Want: "Number, String or Bool", Got: t, At: it.key.Path()}
		}
		if keyType == ir.NullType {
			keyType = t
			continue
		}
		if t != keyType {
			return nil, &TypeError{Op: "sort", Want: keyType.String(), Got: t, At: it.key.Path()}
		}
	}
	desc := q.sort.dir == Desc
	slices.SortStableFunc(items, func(a, b sortItem) int {
		r, _ := ir.Compare(a.key, b.key)
		if desc {
			return -r
		}
		return r
	})
	if debug.Sort() {
		debug.Logf("sorted %d elements by %q %s\n", len(items), q.sort.key, q.sort.dir)
	}
	vals := make([]*ir.Node, len(items))
	for i := range items {
		vals[i] = items[i].node
	}
	return ir.ViewArray(vals), nil
}
