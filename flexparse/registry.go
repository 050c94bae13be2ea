package flexparse

import (
	"reflect"
	"sync"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

// TryDeserializeFunc is the strict per-type adapter of spec §6's
// derive-macro contract: try_deserialize(value, ctx) -> Option<T>.
type TryDeserializeFunc[T any] func(v flexvalue.JSONValue, ctx *coerce.Context) (T, bool)

// DeserializeFunc is the lenient per-type adapter: deserialize(value, ctx)
// -> Result<T>.
type DeserializeFunc[T any] func(v flexvalue.JSONValue, ctx *coerce.Context) (T, error)

// adapter is the type-erased form stored in the registry, so one
// map[reflect.Type]adapter can hold entries for every registered T
// (SPEC_FULL.md §D.2).
type adapter struct {
	schema flexvalue.Schema
	try    func(v flexvalue.JSONValue, ctx *coerce.Context) (any, bool)
	deser  func(v flexvalue.JSONValue, ctx *coerce.Context) (any, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]adapter{}
)

// Register records the hand-written adapter functions for T, realizing the
// "hand-written adapter functions registered into a runtime dispatch
// table" alternative spec §9 names for languages without derive macros.
// ParseLLM and ParseLLMWithCandidates look the adapter up by
// reflect.TypeFor[T]().
func Register[T any](schema flexvalue.Schema, try TryDeserializeFunc[T], deser DeserializeFunc[T]) {
	t := reflect.TypeFor[T]()

	registryMu.Lock()
	defer registryMu.Unlock()

	registry[t] = adapter{
		schema: schema,
		try: func(v flexvalue.JSONValue, ctx *coerce.Context) (any, bool) {
			val, ok := try(v, ctx)
			return val, ok
		},
		deser: func(v flexvalue.JSONValue, ctx *coerce.Context) (any, error) {
			val, err := deser(v, ctx)
			return val, err
		},
	}
}

func lookup(t reflect.Type) (adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	a, ok := registry[t]

	return a, ok
}

// SchemaFor returns the registered Schema for T, if any was recorded via
// Register.
func SchemaFor[T any]() (flexvalue.Schema, bool) {
	a, ok := lookup(reflect.TypeFor[T]())
	if !ok {
		return flexvalue.Schema{}, false
	}

	return a.schema, true
}
