package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// State is the shared workflow state: an ordered mapping from field name to value.
//
// A field that was never set is simply absent; reading it is never an error.
// Nodes return a partial State containing only the fields they change, and the
// engine merges that partial into the running state with Merge.
//
// The zero value is an empty state ready for use.
//
// Example:
//
//	initial := graph.NewState().With("init_input", "apple")
//
//	node := graph.NodeFunc(func(ctx context.Context, s graph.State) (graph.State, error) {
//	    return graph.NewState().With("fruit", s.GetString("init_input")), nil
//	})
type State struct {
	keys   []string
	values map[string]any
}

// NewState returns an empty State.
func NewState() State {
	return State{}
}

// StateFrom builds a State from a map. Keys are inserted in sorted order so the
// result is deterministic regardless of map iteration order.
func StateFrom(m map[string]any) State {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := State{
		keys:   keys,
		values: make(map[string]any, len(m)),
	}
	for k, v := range m {
		s.values[k] = v
	}
	return s
}

// Get returns the value for key and whether the key is present.
func (s State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the value for key as a string. It returns "" when the key
// is unset or holds a non-string value.
func (s State) GetString(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return ""
}

// Has reports whether key is present.
func (s State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of present fields.
func (s State) Len() int {
	return len(s.keys)
}

// Keys returns the field names in insertion order.
func (s State) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Map returns the fields as a plain map. The map is a copy.
func (s State) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position.
func (s *State) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// With returns a copy of s with key set to value. The receiver is not modified.
func (s State) With(key string, value any) State {
	out := s.Clone()
	out.Set(key, value)
	return out
}

// Clone returns a copy that shares no key slice or value map with s.
// Values themselves are copied by assignment.
func (s State) Clone() State {
	out := State{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]any, len(s.values)),
	}
	copy(out.keys, s.keys)
	for k, v := range s.values {
		out.values[k] = v
	}
	return out
}

// Merge overwrites s with every field present in partial. Fields not
// mentioned by partial are left untouched; Merge never removes a field.
// Applying the same partial twice gives the same result as applying it once.
func (s *State) Merge(partial State) {
	for _, k := range partial.keys {
		s.Set(k, partial.values[k])
	}
}

// Equal reports whether s and other hold the same fields with deeply equal
// values. Key order is ignored.
func (s State) Equal(other State) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for k, v := range s.values {
		ov, ok := other.values[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// String renders the state in key order, e.g. {fruit: apple, final_result: error}.
func (s State) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, s.values[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalJSON encodes the state as a JSON object with fields in key order.
func (s State) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal state field %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the order of its fields.
func (s *State) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("state must be a JSON object, got %v", tok)
	}

	out := State{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected state key token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode state field %q: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}
