package dto

import (
	"bytes"
	"encoding/json"
)

// Optional различает три состояния поля в PATCH-запросе:
// не передано (Set=false), явный null (Null=true) и значение.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some - поле передано со значением
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null - поле передано как null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present - передано непустое значение
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
