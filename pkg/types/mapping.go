package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mapping is a JSON object of Values keyed by text. It is the input and
// output of Transform and the stored form of a model.
type Mapping map[string]Value

// ProcessedKey is the field Transform adds to its result.
const ProcessedKey = "processed"

// MappingOf converts a native map into a Mapping.
func MappingOf(m map[string]any) (Mapping, error) {
	out := make(Mapping, len(m))
	for k, x := range m {
		v, err := ValueOf(x)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Clone returns a shallow copy of m. A nil Mapping clones to an empty one.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether m and o hold the same keys with equal values.
func (m Mapping) Equal(o Mapping) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Interface returns m as a native map.
func (m Mapping) Interface() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

// MarshalJSON implements json.Marshaler with keys in sorted order. A value
// that cannot be encoded fails with a *SerializationError naming its key.
func (m Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range sortedKeys(m) {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, &SerializationError{Key: k, Err: err}
		}
		vb, err := m[k].MarshalJSON()
		if err != nil {
			return nil, &SerializationError{Key: k, Err: err}
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The input must be a JSON
// object.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	obj, ok := v.AsMap()
	if !ok {
		return fmt.Errorf("%w: top-level value is %s, not an object", ErrNotObject, v.Kind())
	}
	*m = obj
	return nil
}

// String renders m as JSON for log output. Unencodable mappings render
// with their error.
func (m Mapping) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	return string(b)
}

// String renders v as JSON for log output.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	return string(b)
}
