package jsonq

import (
	"fmt"

	"github.com/signadot/jsonq/ir"
)

// Avg averages an Array<Number> focus. With a path argument the
// values are plucked from each element first. An empty input is an
// error, never a silent zero.
func (q *JSONQuery) Avg(path ...string) (float64, error) {
	vals, err := q.aggregate("avg", path)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), nil
}

// Sum adds up an Array<Number> focus, optionally plucking path
// first.
func (q *JSONQuery) Sum(path ...string) (float64, error) {
	vals, err := q.aggregate("sum", path)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum, nil
}

// Max returns the largest value of an Array<Number> focus.
func (q *JSONQuery) Max(path ...string) (float64, error) {
	vals, err := q.aggregate("max", path)
	if err != nil {
		return 0, err
	}
	res := vals[0]
	for _, v := range vals[1:] {
		if v > res {
			res = v
		}
	}
	return res, nil
}

// Min returns the smallest value of an Array<Number> focus.
func (q *JSONQuery) Min(path ...string) (float64, error) {
	vals, err := q.aggregate("min", path)
	if err != nil {
		return 0, err
	}
	res := vals[0]
	for _, v := range vals[1:] {
		if v < res {
			res = v
		}
	}
	return res, nil
}

// Count reports the element count of an array focus or the key
// count of an object focus. It never fails: a scalar counts as 1
// and a null as 0.
func (q *JSONQuery) Count() (int, error) {
	res, err := q.materialize()
	if err != nil {
		return 0, err
	}
	switch res.Type {
	case ir.ArrayType:
		return len(res.Values), nil
	case ir.ObjectType:
		return len(res.Fields), nil
	case ir.NullType:
		return 0, nil
	default:
		return 1, nil
	}
}

// aggregate materializes the pipeline and checks the Array<Number>
// contract shared by Avg/Sum/Max/Min. Any other shape is a contract
// violation, not a silently-computed zero.
func (q *JSONQuery) aggregate(op string, path []string) ([]float64, error) {
	sep := q.sep
	res, err := q.materialize()
	if err != nil {
		return nil, err
	}
	if len(path) > 1 {
		return nil, fmt.Errorf("%w: %s takes at most one path, got %d", ErrBadOperand, op, len(path))
	}
	if len(path) == 1 {
		res, err = pluckNode(res, path[0], sep)
		if err != nil {
			return nil, err
		}
	}
	if res.Type != ir.ArrayType {
		return nil, &TypeError{Op: op, Want: "Array", Got: res.Type, At: res.Path()}
	}
	if len(res.Values) == 0 {
		return nil, fmt.Errorf("%w: %s over zero elements", ErrEmptyAggregate, op)
	}
	vals := make([]float64, len(res.Values))
	for i, el := range res.Values {
		if el.Type != ir.NumberType {
			return nil, &TypeError{Op: op, Want: "Number", Got: el.Type, At: el.Path()}
		}
		vals[i] = el.Number
	}
	return vals, nil
}
