package flexvalue

// OrderedMap is a string-keyed map that preserves insertion order, used for
// JSON objects so that field iteration, ExtraKey reporting, and diagnostic
// rendering are all deterministic. Map coercion targets must see keys back
// bit-identical to how they arrived (spec §4.7), so OrderedMap never
// normalizes case on Set/Get.
type OrderedMap struct {
	keys   []string
	values map[string]JSONValue
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]JSONValue)}
}

// Set inserts or updates key. Re-setting an existing key does not move its
// position, matching "duplicate keys: last-wins" (§9 Open Question) without
// reordering the surviving entry.
func (m *OrderedMap) Set(key string, val JSONValue) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = val
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (JSONValue, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *OrderedMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by callers.
func (m *OrderedMap) Keys() []string { return m.keys }

// Len returns the number of entries.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Equal reports whether m and o contain the same key/value pairs,
// irrespective of order.
func (m *OrderedMap) Equal(o *OrderedMap) bool {
	if m == nil || o == nil {
		return m == o
	}

	if m.Len() != o.Len() {
		return false
	}

	for _, k := range m.keys {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}

		v, _ := m.Get(k)
		if !v.Equal(ov) {
			return false
		}
	}

	return true
}

// Clone returns a shallow copy safe to mutate independently of m.
func (m *OrderedMap) Clone() *OrderedMap {
	if m == nil {
		return nil
	}

	out := NewOrderedMap()
	for _, k := range m.keys {
		v, _ := m.Get(k)
		out.Set(k, v)
	}

	return out
}
