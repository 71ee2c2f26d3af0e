package rule

import (
	"encoding/json"
	"fmt"
)

// ValueKind identifies which variant a Value holds.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

// Value is a constrained metadata value: string, number, bool, or a list of
// those. Evaluation results and contexts carry Values instead of raw
// interface{} so readers never need unchecked type assertions.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Value
}

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int creates a numeric Value from an int.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// Bool creates a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List creates a list Value.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the variant held by the Value.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string variant and whether the Value holds one.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric variant and whether the Value holds one.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsInt returns the numeric variant truncated to int.
func (v Value) AsInt() (int, bool) {
	return int(v.num), v.kind == KindNumber
}

// AsBool returns the boolean variant and whether the Value holds one.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsList returns the list variant and whether the Value holds one.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// Interface converts the Value back to a plain Go value for serialization.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]interface{}, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// FromInterface converts a plain Go value into a Value.
// Returns an error for types outside the allowed union.
func FromInterface(raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case string:
		return String(val), nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(float64(val)), nil
	case int:
		return Int(val), nil
	case int64:
		return Number(float64(val)), nil
	case bool:
		return Bool(val), nil
	case []interface{}:
		items := make([]Value, 0, len(val))
		for _, item := range val {
			converted, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return List(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported metadata value type %T", raw)
	}
}

// Metadata is a string-keyed map of constrained Values.
type Metadata map[string]Value

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// GetString returns the string value for key, or the fallback.
func (m Metadata) GetString(key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return fallback
}

// GetBool returns the bool value for key, or the fallback.
func (m Metadata) GetBool(key string, fallback bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return fallback
}

// GetInt returns the numeric value for key as an int, or the fallback.
func (m Metadata) GetInt(key string, fallback int) int {
	if v, ok := m[key]; ok {
		if i, ok := v.AsInt(); ok {
			return i
		}
	}
	return fallback
}
