// Package reftable implements the per-message reference tables of AMF3.
//
// A table is created empty for one top-level decode or encode call, only
// grows, and is dropped when the call returns. Indexes are stable.
package reftable

// Table is an append-only list of values addressable by index.
// T must be comparable so that encoders can ask whether a value was
// already written: strings compare by content, pointers by identity.
type Table[T comparable] struct {
	entries []T
	index   map[T]uint32
}

// Push appends v and returns its index.
func (t *Table[T]) Push(v T) uint32 {
	i := uint32(len(t.entries))
	t.entries = append(t.entries, v)

	if t.index != nil {
		if _, ok := t.index[v]; !ok {
			t.index[v] = i
		}
	}

	return i
}

// Get returns the value at index i.
func (t *Table[T]) Get(i uint32) (T, bool) {
	if uint64(i) >= uint64(len(t.entries)) {
		var zero T
		return zero, false
	}

	return t.entries[i], true
}

// Lookup returns the index of the first entry equal to v.
func (t *Table[T]) Lookup(v T) (uint32, bool) {
	if t.index == nil {
		// decoders never call Lookup, build the index lazily
		t.index = make(map[T]uint32, len(t.entries))
		for i, e := range t.entries {
			if _, ok := t.index[e]; !ok {
				t.index[e] = uint32(i)
			}
		}
	}

	i, ok := t.index[v]
	return i, ok
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	return len(t.entries)
}
