package iv

// Map represents string keyed, insertion ordered collection of values
type Map struct {
	keys   []string
	values map[string]Value
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) isValue()   {}

// Set sets value for the key, an existing key keeps its position
func (m *Map) Set(key string, value Value) *Map {
	if value == nil {
		value = Null{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns value for the key
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has returns true if key is present
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes the key
func (m *Map) Delete(key string) {
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

// Keys returns keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each entry in insertion order until fn returns false
func (m *Map) Range(fn func(key string, value Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// NewMap creates a map with optional capacity
func NewMap(capacity ...int) *Map {
	size := 0
	if len(capacity) > 0 {
		size = capacity[0]
	}
	return &Map{keys: make([]string, 0, size), values: make(map[string]Value, size)}
}
