// Package persist mirrors in-memory values into a durable key/value store.
package persist

import (
	"encoding/json"
	"log/slog"
)

// Store is the durable key/value collaborator. Get reports ok=false when the
// key has never been written.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Codec converts values to and from their stored string form.
type Codec[T any] interface {
	Encode(T) (string, error)
	Decode(string) (T, error)
}

// StringCodec stores strings verbatim.
type StringCodec struct{}

func (StringCodec) Encode(s string) (string, error) { return s, nil }
func (StringCodec) Decode(s string) (string, error) { return s, nil }

// JSONCodec stores any JSON-serializable value.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONCodec[T]) Decode(s string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

// Value is a cell whose every change is written through to a Store.
// The in-memory value is authoritative while the process runs; the store is
// a best-effort durability aid.
type Value[T any] struct {
	store Store
	key   string
	codec Codec[T]
	log   *slog.Logger
	value T
}

// New creates a Value seeded from store[key] when present, else initial.
func New[T any](store Store, key string, initial T, codec Codec[T], logger *slog.Logger) *Value[T] {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Value[T]{
		store: store,
		key:   key,
		codec: codec,
		log:   logger,
		value: initial,
	}

	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Warn("reading persisted value", "key", key, "err", err)
		return v
	}
	if !ok {
		return v
	}
	decoded, err := codec.Decode(raw)
	if err != nil {
		logger.Warn("decoding persisted value", "key", key, "err", err)
		return v
	}
	v.value = decoded
	return v
}

// NewString is New with StringCodec.
func NewString(store Store, key, initial string, logger *slog.Logger) *Value[string] {
	return New[string](store, key, initial, StringCodec{}, logger)
}

// Key returns the store key.
func (v *Value[T]) Key() string { return v.key }

// Get returns the current in-memory value.
func (v *Value[T]) Get() T { return v.value }

// Set updates the value and writes it to the store. Write failures are
// logged and dropped.
func (v *Value[T]) Set(value T) {
	v.value = value

	raw, err := v.codec.Encode(value)
	if err != nil {
		v.log.Warn("encoding persisted value", "key", v.key, "err", err)
		return
	}
	if err := v.store.Set(v.key, raw); err != nil {
		v.log.Warn("writing persisted value", "key", v.key, "err", err)
	}
}
