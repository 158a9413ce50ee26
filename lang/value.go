package lang

import "strconv"

// ValueType enumerates the runtime value categories.
type ValueType int

const (
	TypeNum ValueType = iota
)

// Value represents a runtime result. Numbers are the only category today,
// but the tag leaves room to grow without changing the environment shape.
type Value struct {
	Type    ValueType
	payload interface{}
}

// NumValue constructs a numeric Value.
func NumValue(f float64) Value {
	return Value{Type: TypeNum, payload: f}
}

func (v Value) Num() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

// String formats the value for display. For finite numbers the result is
// re-tokenizable, so a printed binding can be parsed back verbatim.
func (v Value) String() string {
	switch v.Type {
	case TypeNum:
		return strconv.FormatFloat(v.Num(), 'f', -1, 64)
	default:
		return "<unknown>"
	}
}
