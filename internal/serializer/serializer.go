package serializer

import (
	"go.uber.org/zap"
)

// Serializer assembles documents from raw resources using the schemas of a
// Registry.
type Serializer struct {
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithLogger sets the logger used to report failed serializations.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Serializer reading schemas from registry.
func New(registry *Registry, opts ...Option) *Serializer {
	s := &Serializer{
		registry: registry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the schema registry backing s.
func (s *Serializer) Registry() *Registry {
	return s.registry
}

type callOptions struct {
	extra      ExtraData
	schemaName string
	seed       Meta
}

// SerializeOption configures a single serialization call.
type SerializeOption func(*callOptions)

// WithExtraData passes extra to the schema's top-level meta and links.
func WithExtraData(extra ExtraData) SerializeOption {
	return func(o *callOptions) {
		o.extra = extra
	}
}

// WithSchemaName selects a named schema of the primary type.
func WithSchemaName(name string) SerializeOption {
	return func(o *callOptions) {
		o.schemaName = name
	}
}

// WithMetaSeed sets meta values that schema-declared meta is merged over.
// On key collision the schema value wins.
func WithMetaSeed(seed Meta) SerializeOption {
	return func(o *callOptions) {
		o.seed = seed
	}
}

// SerializeOne serializes a single resource. The document's data is an object.
func (s *Serializer) SerializeOne(typ string, raw Resource, opts ...SerializeOption) (*Document, error) {
	return s.serialize(typ, []Resource{raw}, false, opts)
}

// SerializeMany serializes a collection. The document's data is an array in
// input order, empty when raws is empty.
func (s *Serializer) SerializeMany(typ string, raws []Resource, opts ...SerializeOption) (*Document, error) {
	return s.serialize(typ, raws, true, opts)
}

// Serialize dispatches on the shape of data: a Resource or map serializes
// as one resource, a slice of those as a collection.
func (s *Serializer) Serialize(typ string, data any, opts ...SerializeOption) (*Document, error) {
	switch v := data.(type) {
	case Resource:
		return s.SerializeOne(typ, v, opts...)
	case map[string]any:
		return s.SerializeOne(typ, Resource(v), opts...)
	case []Resource:
		return s.SerializeMany(typ, v, opts...)
	case []map[string]any:
		raws := make([]Resource, len(v))
		for i := range v {
			raws[i] = v[i]
		}
		return s.SerializeMany(typ, raws, opts...)
	case []any:
		raws := make([]Resource, len(v))
		for i, elem := range v {
			r, ok := asResource(elem)
			if !ok {
				return nil, &UnsupportedDataError{Value: elem}
			}
			raws[i] = r
		}
		return s.SerializeMany(typ, raws, opts...)
	}
	return nil, &UnsupportedDataError{Value: data}
}

func (s *Serializer) serialize(typ string, raws []Resource, collection bool, opts []SerializeOption) (*Document, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.extra == nil {
		o.extra = ExtraData{}
	}

	doc, err := s.assemble(typ, raws, collection, o)
	if err != nil {
		s.logger.Debug("serialization failed",
			zap.String("type", typ),
			zap.String("schema", o.schemaName),
			zap.Int("resources", len(raws)),
			zap.Error(err),
		)
		return nil, err
	}
	return doc, nil
}

func (s *Serializer) assemble(typ string, raws []Resource, collection bool, o callOptions) (*Document, error) {
	schema, err := s.registry.Resolve(typ, o.schemaName)
	if err != nil {
		return nil, err
	}

	pool := newIncludedPool()
	objects := make([]*ResourceObject, 0, len(raws))
	for _, raw := range raws {
		obj, err := project(typ, schema, raw)
		if err != nil {
			return nil, err
		}
		if err := newResolver(s.registry, pool).resolveRoot(typ, obj.ID, schema, raw); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	doc := &Document{
		Meta:  mergeMeta(o.seed, schema.TopLevelMeta.Eval(raws, o.extra)),
		Links: nonEmptyLinks(schema.TopLevelLinks.Eval(o.extra)),
	}
	if collection {
		doc.Data = PrimaryData{many: objects, collection: true}
	} else {
		doc.Data = PrimaryData{one: objects[0]}
	}
	if pool.len() > 0 {
		doc.Included = pool.values()
	}
	return doc, nil
}

// mergeMeta copies seed then declared into a new map. nil when both are empty.
func mergeMeta(seed, declared Meta) Meta {
	if len(seed) == 0 && len(declared) == 0 {
		return nil
	}
	out := make(Meta, len(seed)+len(declared))
	for k, v := range seed {
		out[k] = v
	}
	for k, v := range declared {
		out[k] = v
	}
	return out
}
