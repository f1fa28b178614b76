package jsonq

import (
	"fmt"
	"strings"

	"github.com/signadot/jsonq/ir"
)

// Get materializes the filtered, sorted, windowed focus and re-seeds
// the builder.
func (q *JSONQuery) Get() (*ir.Node, error) {
	return q.materialize()
}

// Out hands the materialized result to fn.
func (q *JSONQuery) Out(fn func(*ir.Node) error) error {
	res, err := q.materialize()
	if err != nil {
		return err
	}
	return fn(res)
}

// Find materializes the pending pipeline and then re-navigates from
// the result.
func (q *JSONQuery) Find(path string) (*ir.Node, error) {
	sep := q.sep
	res, err := q.materialize()
	if err != nil {
		return nil, err
	}
	return ir.Resolve(res, path, sep)
}

// Nth selects a survivor by 0-based position; a negative n counts
// from the end. A position beyond the result bounds is an error,
// never a nil result.
func (q *JSONQuery) Nth(n int) (*ir.Node, error) {
	res, err := q.materialize()
	if err != nil {
		return nil, err
	}
	if res.Type != ir.ArrayType {
		return nil, &TypeError{Op: "nth", Want: "Array", Got: res.Type, At: res.Path()}
	}
	i := n
	if i < 0 {
		i += len(res.Values)
	}
	if i < 0 || i >= len(res.Values) {
		return nil, fmt.Errorf("%w: position %d of %d", ErrIndexOutOfRange, n, len(res.Values))
	}
	return res.Values[i], nil
}

func (q *JSONQuery) First() (*ir.Node, error) {
	return q.Nth(0)
}

func (q *JSONQuery) Last() (*ir.Node, error) {
	return q.Nth(-1)
}

// Drop removes the first n survivors. Dropping more than available
// yields an empty result, not an error; a negative n drops nothing.
func (q *JSONQuery) Drop(n int) *JSONQuery {
	if n > 0 {
		q.dropped += n
	}
	return q
}

// Offset skips the first n survivors, like Drop but tracked
// separately so both original spellings work.
func (q *JSONQuery) Offset(n int) *JSONQuery {
	if n > 0 {
		q.offset = n
	}
	return q
}

// Limit caps the number of survivors.
func (q *JSONQuery) Limit(n int) *JSONQuery {
	if n > 0 {
		q.limit = n
	}
	return q
}

// Pluck maps an object array to the values at path, with a Null slot
// where an element lacks the key (or is not an object).
func (q *JSONQuery) Pluck(path string) (*ir.Node, error) {
	sep := q.sep
	res, err := q.materialize()
	if err != nil {
		return nil, err
	}
	return pluckNode(res, path, sep)
}

func pluckNode(res *ir.Node, path, sep string) (*ir.Node, error) {
	if res.Type != ir.ArrayType {
		return nil, &TypeError{Op: "pluck", Want: "Array", Got: res.Type, At: res.Path()}
	}
	vals := make([]*ir.Node, len(res.Values))
	for i, el := range res.Values {
		v := ir.Lookup(el, path, sep)
		if v == nil {
			v = ir.Null()
		}
		vals[i] = v
	}
	return ir.ViewArray(vals), nil
}

// Select records a projection applied to each surviving object:
// only the named attributes are kept. "path as alias" renames; a
// dotted path keeps its full spelling as the key unless aliased.
func (q *JSONQuery) Select(attrs ...string) *JSONQuery {
	q.attrs = append(q.attrs, attrs...)
	return q
}

// Only is Select under the name the original API used.
func (q *JSONQuery) Only(attrs ...string) *JSONQuery {
	return q.Select(attrs...)
}

func (q *JSONQuery) applySelect(res *ir.Node) *ir.Node {
	if res.Type != ir.ArrayType {
		return res
	}
	var out []*ir.Node
	for _, el := range res.Values {
		var kvs []ir.KeyVal
		for _, attr := range q.attrs {
			path, alias := splitAlias(attr)
			v := ir.Lookup(el, path, q.sep)
			if v == nil {
				continue
			}
			kvs = append(kvs, ir.KeyVal{Key: alias, Val: v})
		}
		if len(kvs) > 0 {
			out = append(out, ir.ViewObject(kvs))
		}
	}
	return ir.ViewArray(out)
}

func splitAlias(attr string) (path, alias string) {
	if i := strings.Index(attr, " as "); i != -1 {
		return attr[:i], attr[i+4:]
	}
	return attr, attr
}

// Distinct records first-wins deduplication by the value at path.
// Elements lacking the key are dropped.
func (q *JSONQuery) Distinct(path string) *JSONQuery {
	q.distinct = path
	return q
}

func (q *JSONQuery) applyDistinct(res *ir.Node) *ir.Node {
	if res.Type != ir.ArrayType {
		return res
	}
	seen := map[string]bool{}
	var out []*ir.Node
	for _, el := range res.Values {
		v := ir.Lookup(el, q.distinct, q.sep)
		if v == nil {
			continue
		}
		key := v.Text()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, el)
	}
	return ir.ViewArray(out)
}

// GroupBy applies the pending pipeline, then replaces the focus with
// an object mapping each distinct key rendering to the array of
// elements carrying it. Elements lacking the key group under "null".
// The chain stays open: terminals after GroupBy see the grouped
// object.
func (q *JSONQuery) GroupBy(path string) *JSONQuery {
	res, err := q.prepare()
	if err != nil {
		return q.fail(err)
	}
	if res.Type != ir.ArrayType {
		return q.fail(&TypeError{Op: "groupBy", Want: "Array", Got: res.Type, At: res.Path()})
	}
	groups := map[string][]*ir.Node{}
	var order []string
	for _, el := range res.Values {
		v := ir.Lookup(el, path, q.sep)
		if v == nil {
			v = ir.Null()
		}
		key := v.Text()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], el)
	}
	kvs := make([]ir.KeyVal, len(order))
	for i, key := range order {
		kvs[i] = ir.KeyVal{Key: key, Val: ir.ViewArray(groups[key])}
	}
	q.clearPending()
	q.node = ir.ViewObject(kvs)
	return q
}

// clearPending drops consumed pipeline state but keeps the focus,
// for operators like GroupBy that transform mid-chain.
func (q *JSONQuery) clearPending() {
	q.queries = nil
	q.sort = nil
	q.dropped = 0
	q.offset = 0
	q.limit = 0
	q.distinct = ""
	q.attrs = nil
}
