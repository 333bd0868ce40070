package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Optional is one field of a partial update. Set reports whether the field
// was present in the request; only set fields are written. Null reports that
// the field was present with an explicit JSON null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// UnmarshalJSON marks the field as set. A JSON null leaves Value at its zero
// value and sets Null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON encodes the held value; an unset field encodes as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// required fails unless the field was present with a non-null value.
func required[T any](name string, o Optional[T]) error {
	if !o.Set {
		return fmt.Errorf("%w: %s is required", ErrInvalidData, name)
	}
	return notNull(name, o)
}

// notNull fails if the field was sent as an explicit null.
func notNull[T any](name string, o Optional[T]) error {
	if o.Null {
		return fmt.Errorf("%w: %s must not be null", ErrInvalidData, name)
	}
	return nil
}
