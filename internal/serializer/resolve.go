package serializer

import (
	"encoding/json"
	"reflect"
)

// includedPool collects related resource objects keyed by "type:id".
// A later put for the same key replaces the object but keeps its position.
type includedPool struct {
	order   []string
	objects map[string]*ResourceObject
}

func newIncludedPool() *includedPool {
	return &includedPool{objects: make(map[string]*ResourceObject)}
}

func poolKey(typ, id string) string {
	return typ + ":" + id
}

func (p *includedPool) put(obj *ResourceObject) {
	key := poolKey(obj.Type, obj.ID)
	if _, exists := p.objects[key]; !exists {
		p.order = append(p.order, key)
	}
	p.objects[key] = obj
}

func (p *includedPool) len() int {
	return len(p.order)
}

func (p *includedPool) values() []*ResourceObject {
	out := make([]*ResourceObject, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.objects[key])
	}
	return out
}

// resolver lifts nested related resources into pool. path holds the
// "type:id" keys currently being resolved and stops cycles in the raw graph.
type resolver struct {
	registry *Registry
	pool     *includedPool
	path     map[string]bool
}

func newResolver(registry *Registry, pool *includedPool) *resolver {
	return &resolver{
		registry: registry,
		pool:     pool,
		path:     make(map[string]bool),
	}
}

// resolveRoot resolves the relationships of a primary resource.
func (r *resolver) resolveRoot(typ, id string, schema *Schema, raw Resource) error {
	key := poolKey(typ, id)
	r.path[key] = true
	defer delete(r.path, key)
	return r.resolve(typ, schema, raw)
}

func (r *resolver) resolve(typ string, schema *Schema, raw Resource) error {
	for _, key := range relationshipKeys(schema) {
		rel := schema.Relationships[key]

		elems, err := relationshipElements(typ, key, raw[key])
		if err != nil {
			return err
		}
		elems = dropNil(elems)
		if len(elems) == 0 {
			continue
		}

		relSchema, err := r.registry.Resolve(rel.Type, rel.schemaName())
		if err != nil {
			return err
		}

		for _, elem := range elems {
			nested, ok := asResource(elem)
			if !ok {
				// bare identifier: referenced, never included
				continue
			}
			if !hasAttributes(relSchema, nested) {
				continue
			}
			if err := r.include(rel.Type, relSchema, nested); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *resolver) include(typ string, schema *Schema, raw Resource) error {
	obj, err := project(typ, schema, raw)
	if err != nil {
		return err
	}

	key := poolKey(typ, obj.ID)
	if r.path[key] {
		return nil
	}
	r.pool.put(obj)

	r.path[key] = true
	defer delete(r.path, key)
	return r.resolve(typ, schema, raw)
}

// relationshipElements flattens a relationship value into its elements.
// nil yields no elements.
func relationshipElements(typ, key string, value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Resource, map[string]any:
		return []any{v}, nil
	case []any:
		for _, elem := range v {
			if err := checkElement(typ, key, elem); err != nil {
				return nil, err
			}
		}
		return v, nil
	case []Resource:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	}

	if isIdentifier(value) {
		return []any{value}, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if err := checkElement(typ, key, elem); err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil
	}

	return nil, &MalformedRelationshipError{Type: typ, Relationship: key, Value: value}
}

func dropNil(elems []any) []any {
	out := elems[:0:0]
	for _, elem := range elems {
		if elem != nil {
			out = append(out, elem)
		}
	}
	return out
}

func checkElement(typ, key string, elem any) error {
	if elem == nil {
		return nil
	}
	if _, ok := asResource(elem); ok {
		return nil
	}
	if isIdentifier(elem) {
		return nil
	}
	return &MalformedRelationshipError{Type: typ, Relationship: key, Value: elem}
}

func asResource(v any) (Resource, bool) {
	switch r := v.(type) {
	case Resource:
		return r, true
	case map[string]any:
		return Resource(r), true
	}
	return nil, false
}

func isIdentifier(v any) bool {
	switch v.(type) {
	case string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// hasAttributes reports whether raw carries anything besides its identifier.
func hasAttributes(schema *Schema, raw Resource) bool {
	id := schema.idField()
	for field := range raw {
		if field != id {
			return true
		}
	}
	return false
}
