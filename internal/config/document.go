package config

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value interface{}
}

// Mapping is an ordered key/value node of a raw configuration document.
//
// Unlike a Go map it keeps declaration order, which is a user-visible contract
// for command listings, and it keeps repeated keys so the validator can report
// them instead of silently keeping the last one.
//
// Values are *Mapping, []interface{}, or scalars (string, bool, int, float64, nil).
type Mapping struct {
	entries []Entry
}

// NewMapping creates a Mapping from alternating key/value arguments.
// It panics on an odd argument count or a non-string key; it is intended for
// literals in code and tests.
func NewMapping(kv ...interface{}) *Mapping {
	if len(kv)%2 != 0 {
		panic("config.NewMapping: odd number of arguments")
	}
	m := &Mapping{}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("config.NewMapping: key must be a string")
		}
		m.Add(key, kv[i+1])
	}
	return m
}

// Add appends an entry, keeping any earlier entry with the same key.
func (m *Mapping) Add(key string, value interface{}) {
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Set replaces the first entry with key, or appends a new one.
func (m *Mapping) Set(key string, value interface{}) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.Add(key, value)
}

// SetAt replaces the value of the i-th entry. Unlike Set it addresses a
// specific occurrence of a repeated key.
func (m *Mapping) SetAt(i int, value interface{}) {
	m.entries[i].Value = value
}

// Get returns the value of the first entry with key.
func (m *Mapping) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Entries returns a copy of the entries in declaration order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Keys returns the keys in declaration order, including repeats.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// ToPlain converts the mapping into nested map[string]interface{} and
// []interface{} values. Repeated keys collapse to their last value.
// The mapping must be acyclic.
func (m *Mapping) ToPlain() map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m.entries))
	for _, e := range m.entries {
		out[e.Key] = Plain(e.Value)
	}
	return out
}

// Plain converts any document value into plain Go maps and slices.
func Plain(v interface{}) interface{} {
	switch val := v.(type) {
	case *Mapping:
		return val.ToPlain()
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}
