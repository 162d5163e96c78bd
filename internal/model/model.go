// Package model implements DataModel, the in-memory key/value container
// behind satchel. Entries are kept in a map for lookup and in an ordered
// B-tree of keys for listing.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/btree"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// btreeDegree is the fan-out of the key index.
const btreeDegree = 16

// DataModel is an associative container of JSON-shaped values. All methods
// are safe for concurrent use.
type DataModel struct {
	mu    sync.RWMutex
	items types.Mapping
	keys  *btree.BTreeG[string]
}

// New returns an empty DataModel.
func New() *DataModel {
	return &DataModel{
		items: make(types.Mapping),
		keys:  btree.NewG(btreeDegree, btree.Less[string]()),
	}
}

// AddItem stores value under key, replacing any previous value.
func (m *DataModel) AddItem(key string, value types.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	m.keys.ReplaceOrInsert(key)
}

// GetItem returns the value stored under key. The second result is false
// when key is absent; a stored null returns (types.Null(), true).
func (m *DataModel) GetItem(key string) (types.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	return v, ok
}

// RemoveItem deletes key and reports whether an entry was removed.
func (m *DataModel) RemoveItem(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	m.keys.Delete(key)
	return true
}

// ListItems returns every stored key in ascending order.
func (m *DataModel) ListItems() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, m.keys.Len())
	m.keys.Ascend(func(k string) bool {
		out = append(out, k)
		return true
	})
	return out
}

// ListPrefix returns the stored keys that start with prefix, in ascending
// order. An empty prefix lists everything.
func (m *DataModel) ListPrefix(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []string{}
	m.keys.AscendGreaterOrEqual(prefix, func(k string) bool {
		if !strings.HasPrefix(k, prefix) {
			return false
		}
		out = append(out, k)
		return true
	})
	return out
}

// Len returns the number of stored entries.
func (m *DataModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Snapshot returns a shallow copy of the stored entries.
func (m *DataModel) Snapshot() types.Mapping {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items.Clone()
}

// Transform returns a copy of in with processed set to true. Neither in
// nor the model's storage is modified.
func (m *DataModel) Transform(in types.Mapping) types.Mapping {
	out := in.Clone()
	out[types.ProcessedKey] = types.Bool(true)
	return out
}

// ToJSON encodes the stored entries as a single JSON object with keys in
// sorted order. A value that cannot be encoded fails with a
// *types.SerializationError naming its key.
func (m *DataModel) ToJSON() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, err := m.items.MarshalJSON()
	if err != nil {
		var serr *types.SerializationError
		if errors.As(err, &serr) {
			return "", err
		}
		return "", &types.SerializationError{Err: err}
	}
	return string(b), nil
}

// FromJSON builds a new DataModel from JSON text holding one object.
// Malformed text, trailing data, or a non-object top level fails with a
// *types.ParseError.
func FromJSON(text string) (*DataModel, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, newParseError(err, dec.InputOffset())
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, newParseError(err, dec.InputOffset())
	}

	var items types.Mapping
	if err := items.UnmarshalJSON(bytes.TrimSpace(raw)); err != nil {
		return nil, newParseError(err, -1)
	}

	m := New()
	for k, v := range items {
		m.items[k] = v
		m.keys.ReplaceOrInsert(k)
	}
	return m, nil
}

// newParseError wraps a decoder failure, preferring the syntax error's own
// offset when there is one.
func newParseError(err error, offset int64) *types.ParseError {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	if errors.Is(err, io.EOF) {
		err = fmt.Errorf("empty input: %w", err)
	}
	return &types.ParseError{Offset: offset, Err: err}
}
