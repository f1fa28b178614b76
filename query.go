// Package jsonq is a fluent query engine over in-memory JSON
// documents: navigation, filtering, sorting and aggregation over the
// tagged-value trees built by the parse package.
//
// A JSONQuery is a single-owner mutable builder. Builder methods
// record state and latch the first error they hit; terminal methods
// (Get, Find, First, Nth, Pluck, the aggregates, ...) materialize a
// result or report that error, then re-seed the builder back to the
// root focus. The underlying document tree is never mutated, so one
// parsed document can back any number of queries as long as each
// goroutine chains on its own JSONQuery (see Copy).
package jsonq

import (
	"github.com/signadot/jsonq/debug"
	"github.com/signadot/jsonq/ir"
	"github.com/signadot/jsonq/parse"
)

type Config struct {
	Separator string
}

type Option func(*Config)

// WithSeparator changes the path segment separator from the default
// ".".
func WithSeparator(sep string) Option {
	return func(c *Config) { c.Separator = sep }
}

type query struct {
	key string
	op  string
	val Operand
}

type sortSpec struct {
	key   string
	byKey bool
	dir   Direction
}

type JSONQuery struct {
	root *ir.Node
	node *ir.Node
	sep  string

	queryMap map[string]QueryFunc

	queries  [][]query
	sort     *sortSpec
	dropped  int
	offset   int
	limit    int
	distinct string
	attrs    []string

	err error
}

// New wraps an already-built tree.
func New(root *ir.Node, opts ...Option) *JSONQuery {
	cfg := &Config{Separator: ir.DefaultSeparator}
	for _, opt := range opts {
		opt(cfg)
	}
	return &JSONQuery{
		root:     root,
		node:     root,
		sep:      cfg.Separator,
		queryMap: defaultQueries(),
	}
}

// FromText parses JSON text into a new query.
func FromText(text string, opts ...Option) (*JSONQuery, error) {
	node, err := parse.ParseString(text)
	if err != nil {
		return nil, err
	}
	return New(node, opts...), nil
}

// FromFile reads and parses a JSON document from path.
func FromFile(path string, opts ...Option) (*JSONQuery, error) {
	node, err := parse.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return New(node, opts...), nil
}

// FromYAMLText parses YAML text into a new query.
func FromYAMLText(text string, opts ...Option) (*JSONQuery, error) {
	node, err := parse.ParseYAML([]byte(text))
	if err != nil {
		return nil, err
	}
	return New(node, opts...), nil
}

// FromYAMLFile reads and parses a YAML document from path.
func FromYAMLFile(path string, opts ...Option) (*JSONQuery, error) {
	node, err := parse.ParseYAMLFile(path)
	if err != nil {
		return nil, err
	}
	return New(node, opts...), nil
}

// At focuses the sub-tree at path, resolved relative to the current
// focus. A failure here latches and surfaces at the next terminal.
func (q *JSONQuery) At(path string) *JSONQuery {
	if q.err != nil {
		return q
	}
	node, err := ir.Resolve(q.node, path, q.sep)
	if err != nil {
		return q.fail(err)
	}
	if debug.Query() {
		debug.Logf("at %q -> %s\n", path, node.Type)
	}
	q.node = node
	return q
}

// From is At under the name the original API used.
func (q *JSONQuery) From(path string) *JSONQuery {
	return q.At(path)
}

// Reset discards all pending state, including a latched error, and
// returns the focus to the document root.
func (q *JSONQuery) Reset() *JSONQuery {
	q.node = q.root
	q.queries = nil
	q.sort = nil
	q.dropped = 0
	q.offset = 0
	q.limit = 0
	q.distinct = ""
	q.attrs = nil
	q.err = nil
	return q
}

// Copy returns an independent query over the same document, with the
// same separator and macros but fresh state. Use one JSONQuery per
// goroutine; the shared tree is read-only.
func (q *JSONQuery) Copy() *JSONQuery {
	queryMap := make(map[string]QueryFunc, len(q.queryMap))
	for k, v := range q.queryMap {
		queryMap[k] = v
	}
	return &JSONQuery{
		root:     q.root,
		node:     q.root,
		sep:      q.sep,
		queryMap: queryMap,
	}
}

func (q *JSONQuery) fail(err error) *JSONQuery {
	if q.err == nil {
		q.err = err
	}
	return q
}

// prepare applies the pending pipeline to the focus: filter groups,
// distinct, projection, sort, then the positional drop/offset/limit
// window. It does not reset the builder.
func (q *JSONQuery) prepare() (*ir.Node, error) {
	if q.err != nil {
		return nil, q.err
	}
	res := q.node
	var err error
	if len(q.queries) > 0 {
		res, err = q.applyQueries(res)
		if err != nil {
			return nil, err
		}
	}
	if q.distinct != "" {
		res = q.applyDistinct(res)
	}
	if len(q.attrs) > 0 {
		res = q.applySelect(res)
	}
	if q.sort != nil {
		res, err = q.applySort(res)
		if err != nil {
			return nil, err
		}
	}
	if q.dropped > 0 || q.offset > 0 {
		res = skipWindow(res, q.dropped+q.offset)
	}
	if q.limit > 0 {
		res = limitWindow(res, q.limit)
	}
	return res, nil
}

// materialize runs prepare and then re-seeds the builder, so a
// terminal always leaves the query back at the root focus with no
// pending state.
func (q *JSONQuery) materialize() (*ir.Node, error) {
	res, err := q.prepare()
	q.Reset()
	return res, err
}

// applyQueries filters an array focus element-wise. An object focus
// is treated as the sole candidate: the result is the object itself
// or an empty object. Any other focus passes through untouched.
func (q *JSONQuery) applyQueries(res *ir.Node) (*ir.Node, error) {
	switch res.Type {
	case ir.ArrayType:
		var survivors []*ir.Node
		for _, el := range res.Values {
			ok, err := q.matchGroups(el)
			if err != nil {
				return nil, err
			}
			if ok {
				survivors = append(survivors, el)
			}
		}
		if debug.Filter() {
			debug.Logf("filter %d/%d survivors\n", len(survivors), len(res.Values))
		}
		return ir.ViewArray(survivors), nil
	case ir.ObjectType:
		ok, err := q.matchGroups(res)
		if err != nil {
			return nil, err
		}
		if ok {
			return res, nil
		}
		return ir.ViewObject(nil), nil
	default:
		return res, nil
	}
}

// matchGroups implements the survivor rule: the candidate passes iff
// at least one group has all of its conditions true. Groups are a
// flat disjunction in declaration order. A condition path that does
// not resolve on the candidate makes that condition false, never an
// error.
func (q *JSONQuery) matchGroups(candidate *ir.Node) (bool, error) {
	orPassed := false
	for _, group := range q.queries {
		andPassed := true
		for i := range group {
			c := &group[i]
			qf := q.queryMap[c.op]
			if qf == nil {
				return false, &OperatorError{Op: c.op}
			}
			value := ir.Lookup(candidate, c.key, q.sep)
			if value == nil {
				// a dead group evaluates nothing further, so a later
				// predicate in it cannot run or fail
				andPassed = false
				break
			}
			ok, err := qf(value, c.val)
			if err != nil {
				return false, err
			}
			if !ok {
				andPassed = false
				break
			}
		}
		orPassed = orPassed || andPassed
	}
	return orPassed, nil
}

func skipWindow(res *ir.Node, n int) *ir.Node {
	if res.Type != ir.ArrayType {
		return res
	}
	if n >= len(res.Values) {
		return ir.ViewArray(nil)
	}
	return ir.ViewArray(res.Values[n:])
}

func limitWindow(res *ir.Node, n int) *ir.Node {
	if res.Type != ir.ArrayType || n >= len(res.Values) {
		return res
	}
	return ir.ViewArray(res.Values[:n])
}
