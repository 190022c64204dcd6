package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kailas-cloud/storeguard/internal/domain"
)

// Decode reads a single JSON object from r, keeping key order.
// Anything other than one JSON object fails with domain.ErrInvalidPayload.
func Decode(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Payload{}, invalid(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Payload{}, fmt.Errorf("body must be a JSON object: %w", domain.ErrInvalidPayload)
	}

	p, err := decodeObject(dec)
	if err != nil {
		return Payload{}, invalid(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Payload{}, fmt.Errorf("unexpected data after JSON object: %w", domain.ErrInvalidPayload)
	}
	return p, nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
}

// decodeObject reads fields until the closing brace. The opening brace is already consumed.
func decodeObject(dec *json.Decoder) (Payload, error) {
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Payload{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Payload{}, fmt.Errorf("unexpected object key %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Payload{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return Payload{}, err
	}
	return Payload{fields: fields}, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", len(items), err)
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: KindList, list: items}, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			p, err := decodeObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Nested(p), nil
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return Text(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Integer(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s out of range", t.String())
		}
		return Float(f), nil
	case bool:
		return Boolean(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}
