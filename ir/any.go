package ir

import "fmt"

// FromAny converts a plain Go value into a Node. Maps come out with
// sorted keys; use FromKeyVals when key order matters.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case float64:
		return FromFloat(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case int:
		return FromFloat(float64(x)), nil
	case int8:
		return FromFloat(float64(x)), nil
	case int16:
		return FromFloat(float64(x)), nil
	case int32:
		return FromFloat(float64(x)), nil
	case int64:
		return FromFloat(float64(x)), nil
	case uint:
		return FromFloat(float64(x)), nil
	case uint8:
		return FromFloat(float64(x)), nil
	case uint16:
		return FromFloat(float64(x)), nil
	case uint32:
		return FromFloat(float64(x)), nil
	case uint64:
		return FromFloat(float64(x)), nil
	case []any:
		vals := make([]*Node, len(x))
		for i := range x {
			y, err := FromAny(x[i])
			if err != nil {
				return nil, err
			}
			vals[i] = y
		}
		return FromSlice(vals), nil
	case []string:
		vals := make([]*Node, len(x))
		for i := range x {
			vals[i] = FromString(x[i])
		}
		return FromSlice(vals), nil
	case []float64:
		vals := make([]*Node, len(x))
		for i := range x {
			vals[i] = FromFloat(x[i])
		}
		return FromSlice(vals), nil
	case []int:
		vals := make([]*Node, len(x))
		for i := range x {
			vals[i] = FromFloat(float64(x[i]))
		}
		return FromSlice(vals), nil
	case map[string]any:
		yMap := make(map[string]*Node, len(x))
		for k, xv := range x {
			y, err := FromAny(xv)
			if err != nil {
				return nil, err
			}
			yMap[k] = y
		}
		return FromMap(yMap), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a node", v)
	}
}

// ToAny converts a Node into plain Go values as encoding/json would
// decode them. Object key order is lost.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case NumberType:
		return y.Number
	case StringType:
		return y.String
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, yv := range y.Values {
			res[i] = ToAny(yv)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i := range y.Fields {
			res[y.Fields[i].String] = ToAny(y.Values[i])
		}
		return res
	default:
		panic("type")
	}
}
