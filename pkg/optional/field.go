// Package optional models request fields whose presence matters for partial updates.
//
// A Field distinguishes three states: absent (the client did not send the key),
// present with null, and present with a value. Only present fields are applied
// by an update.
package optional

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// HasValue reports whether the field was sent with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Multipart and urlencoded forms have no null literal: an empty value is treated as null.

func FormString(form url.Values, key string) Field[string] {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return Field[string]{}
	}
	v := strings.TrimSpace(vals[0])
	if v == "" {
		return Null[string]()
	}
	return Of(v)
}

func FormStrings(form url.Values, key string) Field[[]string] {
	vals, ok := form[key]
	if !ok {
		return Field[[]string]{}
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return Of(out)
}

// FormParse reads key with parse. A malformed value is returned as an error naming the key.
func FormParse[T any](form url.Values, key string, parse func(string) (T, error)) (Field[T], error) {
	s := FormString(form, key)
	if !s.HasValue() {
		return Field[T]{Set: s.Set, Null: s.Null}, nil
	}
	v, err := parse(s.Value)
	if err != nil {
		return Field[T]{}, &FormError{Key: key, Err: err}
	}
	return Of(v), nil
}

func ParseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}

func ParseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

type FormError struct {
	Key string
	Err error
}

func (e *FormError) Error() string {
	return "invalid form field " + e.Key + ": " + e.Err.Error()
}

func (e *FormError) Unwrap() error {
	return e.Err
}
