package dict

// Declare builds a Dict from alternating key/value strings.
// It fails if the pair count is odd or a key repeats.
func Declare(pairs ...string) (*Dict, error) {
	if len(pairs)%2 != 0 {
		return nil, &Error{Kind: ErrType, Message: "odd number of key/value arguments"}
	}
	d := New()
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i]
		if _, ok := d.Get(key); ok {
			return nil, &Error{Kind: ErrDuplicateKey, Key: key, Message: "declared twice"}
		}
		d = d.Set(key, Str(pairs[i+1]))
	}
	return d, nil
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	for _, e := range d.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Set returns a new Dict with key bound to v. An existing key is
// updated in place, preserving the order of untouched entries;
// otherwise the entry is appended. The receiver is unchanged.
func (d *Dict) Set(key string, v Value) *Dict {
	if d == nil {
		d = New()
	}
	entries := make([]Entry, len(d.entries))
	copy(entries, d.entries)
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = v
			return &Dict{entries: entries, size: d.size}
		}
	}
	entries = append(entries, Entry{Key: key, Value: v})
	return &Dict{entries: entries, size: d.size + 1}
}

// SetStr is Set with a scalar value.
func (d *Dict) SetStr(key, val string) *Dict {
	return d.Set(key, Str(val))
}

// Remove returns a new Dict without key. Removing an absent key
// returns an equal Dict.
func (d *Dict) Remove(key string) *Dict {
	if d == nil {
		return New()
	}
	entries := make([]Entry, 0, len(d.entries))
	removed := false
	for _, e := range d.entries {
		if e.Key == key {
			removed = true
			continue
		}
		entries = append(entries, e)
	}
	size := d.size
	if removed {
		size--
	}
	return &Dict{entries: entries, size: size}
}

// Size returns the cached entry count in O(1).
func (d *Dict) Size() int {
	if d == nil {
		return 0
	}
	return d.size
}

// Count returns the entry count by full traversal. It must always
// agree with Size; the pair exists so the invariant is checkable.
func (d *Dict) Count() int {
	if d == nil {
		return 0
	}
	n := 0
	for range d.entries {
		n++
	}
	return n
}

// ForEach invokes fn for every entry in insertion order. idx is
// 1-based.
func (d *Dict) ForEach(fn func(key string, v Value, idx int)) {
	if d == nil {
		return
	}
	for i, e := range d.entries {
		fn(e.Key, e.Value, i+1)
	}
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entry sequence in insertion order.
func (d *Dict) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Equal reports deep structural equality: same keys, same order, same
// values.
func (d *Dict) Equal(o *Dict) bool {
	if d.Size() != o.Size() {
		return false
	}
	if d == nil || o == nil {
		return d.Size() == o.Size()
	}
	for i, e := range d.entries {
		oe := o.entries[i]
		if e.Key != oe.Key || !e.Value.Equal(oe.Value) {
			return false
		}
	}
	return true
}
