package ir

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		NumberType: "Number",
		StringType: "String",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}

// IsOrdered reports whether values of type t admit an ordering.
// Null is not ordered but sorts before every ordered value.
func (t Type) IsOrdered() bool {
	switch t {
	case BoolType, NumberType, StringType:
		return true
	default:
		return false
	}
}
