// Package payload models a decoded request body as an ordered mapping of tagged
// values and guards it against document-store operator injection.
package payload

// Field is a single key/value pair of a Payload.
type Field struct {
	Key   string
	Value Value
}

// Payload is an ordered mapping from field name to Value.
// Duplicate keys are kept in order; Get resolves to the last one.
type Payload struct {
	fields []Field
}

// New builds a payload from fields, keeping their order.
func New(fields ...Field) Payload {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Payload{fields: cp}
}

// Len returns the number of fields.
func (p Payload) Len() int { return len(p.fields) }

// Fields returns a copy of the fields in order.
func (p Payload) Fields() []Field {
	cp := make([]Field, len(p.fields))
	copy(cp, p.fields)
	return cp
}

// Keys returns the field names in order.
func (p Payload) Keys() []string {
	keys := make([]string, len(p.fields))
	for i, f := range p.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored under key.
func (p Payload) Get(key string) (Value, bool) {
	for i := len(p.fields) - 1; i >= 0; i-- {
		if p.fields[i].Key == key {
			return p.fields[i].Value, true
		}
	}
	return Value{}, false
}
