package serializer

import (
	"sort"
	"sync"
)

// SchemaKey identifies a registered schema.
type SchemaKey struct {
	Type   string
	Schema string
}

func (k SchemaKey) String() string {
	return k.Type + "/" + k.Schema
}

// Registry stores schemas by (type, schema name). It is safe for
// concurrent use.
type Registry struct {
	mu             sync.RWMutex
	schemas        map[SchemaKey]*Schema
	allowOverwrite bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithOverwrite lets a later registration replace an earlier one for the
// same key instead of failing.
func WithOverwrite() RegistryOption {
	return func(r *Registry) {
		r.allowOverwrite = true
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		schemas: make(map[SchemaKey]*Schema),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores schema as the default schema of typ.
func (r *Registry) Register(typ string, schema Schema) error {
	return r.RegisterNamed(typ, DefaultSchema, schema)
}

// RegisterNamed stores schema under (typ, name). An empty name means
// DefaultSchema.
func (r *Registry) RegisterNamed(typ, name string, schema Schema) error {
	if name == "" {
		name = DefaultSchema
	}
	key := SchemaKey{Type: typ, Schema: name}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[key]; exists && !r.allowOverwrite {
		return &DuplicateSchemaError{Type: typ, Schema: name}
	}
	r.schemas[key] = schema.clone()
	return nil
}

// MustRegister is like Register but panics on error. Intended for startup code.
func (r *Registry) MustRegister(typ string, schema Schema) {
	if err := r.Register(typ, schema); err != nil {
		panic(err)
	}
}

// MustRegisterNamed is like RegisterNamed but panics on error.
func (r *Registry) MustRegisterNamed(typ, name string, schema Schema) {
	if err := r.RegisterNamed(typ, name, schema); err != nil {
		panic(err)
	}
}

// Resolve returns the schema registered under (typ, name). An empty name
// means DefaultSchema.
func (r *Registry) Resolve(typ, name string) (*Schema, error) {
	if name == "" {
		name = DefaultSchema
	}

	r.mu.RLock()
	schema, ok := r.schemas[SchemaKey{Type: typ, Schema: name}]
	r.mu.RUnlock()

	if !ok {
		return nil, &SchemaNotFoundError{Type: typ, Schema: name}
	}
	return schema, nil
}

// Schemas returns the registered keys sorted by type then schema name.
func (r *Registry) Schemas() []SchemaKey {
	r.mu.RLock()
	keys := make([]SchemaKey, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Schema < keys[j].Schema
	})
	return keys
}
