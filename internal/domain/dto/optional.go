package dto

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a partial update. It tells apart a field that was
// omitted, one explicitly set to null and one carrying a value.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was present in the payload.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was present and null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// HasValue reports whether the field was present with a non-null value.
func (o Optional[T]) HasValue() bool { return o.set && !o.null }

// Value returns the held value and whether there is one.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.HasValue()
}

// Ptr returns a pointer to the value, or nil when null or omitted.
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.value
	return &v
}

// UnmarshalJSON is only called for fields present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// Map converts the value of o with fn, keeping the omitted and null states.
func Map[T, U any](o Optional[T], fn func(T) U) Optional[U] {
	switch {
	case !o.set:
		return Optional[U]{}
	case o.null:
		return Null[U]()
	default:
		return Some(fn(o.value))
	}
}
