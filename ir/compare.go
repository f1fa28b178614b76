package ir

import (
	"cmp"
	"strings"
)

// Equal reports structural equality: same type, same value, same
// container shape. Objects compare by key set regardless of key
// order; arrays are positional. Cross-type pairs are simply unequal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return a.Number == b.Number
	case StringType:
		return a.String == b.String
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		// key order is presentation, not identity: objects match by
		// key set and per-key value
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			bv := Get(b, a.Fields[i].String)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	default:
		panic("type")
	}
}

// Compare returns an integer comparing two nodes and whether the
// pair is comparable at all. Only Null-Null, Bool-Bool,
// Number-Number and String-String pairs are ordered; a Null orders
// before any non-Null node. Everything else is incomparable.
func Compare(a, b *Node) (int, bool) {
	if a.Type == NullType || b.Type == NullType {
		if a.Type == b.Type {
			return 0, true
		}
		if a.Type == NullType {
			return -1, true
		}
		return 1, true
	}
	if a.Type != b.Type || !a.Type.IsOrdered() {
		return 0, false
	}
	switch a.Type {
	case NumberType:
		return cmp.Compare(a.Number, b.Number), true
	case StringType:
		return strings.Compare(a.String, b.String), true
	case BoolType:
		if a.Bool == b.Bool {
			return 0, true
		}
		if !a.Bool {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}
