package catalog

import "encoding/json"

// Lazy is either not loaded or holds a loaded value. The zero value is not
// loaded, which keeps "never fetched" apart from "fetched and empty".
type Lazy[T any] struct {
	value  T
	loaded bool
}

// Loaded returns a Lazy holding value.
func Loaded[T any](value T) Lazy[T] {
	return Lazy[T]{value: value, loaded: true}
}

// Get returns the value and whether it was loaded.
func (l Lazy[T]) Get() (T, bool) {
	return l.value, l.loaded
}

// IsLoaded reports whether a value was stored.
func (l Lazy[T]) IsLoaded() bool {
	return l.loaded
}

// MarshalJSON encodes a value that was never loaded as null.
func (l Lazy[T]) MarshalJSON() ([]byte, error) {
	if !l.loaded {
		return []byte("null"), nil
	}
	return json.Marshal(l.value)
}

// MarshalYAML implements yaml.Marshaler.
func (l Lazy[T]) MarshalYAML() (any, error) {
	if !l.loaded {
		return nil, nil
	}
	return l.value, nil
}

// Members is the member list of a stack or collection.
type Members = Lazy[[]ID]

func resolvedMembers(ids []ID) Members {
	if ids == nil {
		ids = []ID{}
	}
	return Loaded(ids)
}
