package dto

import (
	"bytes"
	"encoding/json"
)

// Paginación por defecto de los listados (skip/limit).
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=100"`
}

// DefaultPage aplica valores por defecto si Limit/Skip son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Optional distingue entre una clave ausente del JSON y una clave presente con valor null.
// Set es true si la clave apareció; Value es nil si vino null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some construye un Optional presente con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null construye un Optional presente con valor null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// HasValue indica que la clave vino y no es null.
func (o Optional[T]) HasValue() bool {
	return o.Set && o.Value != nil
}

// UnmarshalJSON solo se invoca cuando la clave está presente (incluido null).
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON serializa el valor o null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
