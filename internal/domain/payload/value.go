package payload

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds. Text, Integer, Boolean and Nested are the request shapes the API
// accepts; Float, Null and List exist so any JSON object body can be represented.
const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindFloat
	KindBoolean
	KindNested
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindNested:
		return "nested"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged variant. The zero value is Null.
type Value struct {
	kind    Kind
	text    string
	integer int64
	float   float64
	boolean bool
	nested  Payload
	list    []Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer wraps an integer.
func Integer(n int64) Value { return Value{kind: KindInteger, integer: n} }

// Float wraps a number with a fractional part.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Boolean wraps a bool.
func Boolean(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Nested wraps a nested mapping.
func Nested(p Payload) Value { return Value{kind: KindNested, nested: p} }

// List wraps a sequence of values.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsText returns the string if v is Text.
func (v Value) AsText() (string, bool) { return v.text, v.kind == KindText }

// AsInteger returns the integer if v is Integer.
func (v Value) AsInteger() (int64, bool) { return v.integer, v.kind == KindInteger }

// AsFloat returns the number if v is Float or Integer.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.float, true
	case KindInteger:
		return float64(v.integer), true
	default:
		return 0, false
	}
}

// AsBoolean returns the bool if v is Boolean.
func (v Value) AsBoolean() (bool, bool) { return v.boolean, v.kind == KindBoolean }

// AsNested returns the mapping if v is Nested.
func (v Value) AsNested() (Payload, bool) { return v.nested, v.kind == KindNested }

// AsList returns a copy of the items if v is List.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	cp := make([]Value, len(v.list))
	copy(cp, v.list)
	return cp, true
}
