package serializer

// DefaultSchema is the schema name used when none is given.
const DefaultSchema = "default"

// DefaultIDField is the identifier field used when a Schema leaves ID empty.
const DefaultIDField = "id"

// Resource is one raw application entity, including nested relationship values.
type Resource map[string]any

// ExtraData is caller-supplied context handed to top-level meta and links.
type ExtraData map[string]any

// Meta is a free-form meta object.
type Meta map[string]any

// Links maps a link name to its URL.
type Links map[string]string

// LinksSource yields the links of a single resource. It is either a static
// mapping or a function of the raw resource.
type LinksSource struct {
	static  Links
	dynamic func(Resource) Links
}

// StaticLinks returns a LinksSource that always yields links.
func StaticLinks(links Links) LinksSource {
	return LinksSource{static: links}
}

// DynamicLinks returns a LinksSource computed from the raw resource.
func DynamicLinks(fn func(Resource) Links) LinksSource {
	return LinksSource{dynamic: fn}
}

// IsZero reports whether no links were declared.
func (s LinksSource) IsZero() bool {
	return s.static == nil && s.dynamic == nil
}

// Eval evaluates the source against raw. The zero value yields nil.
func (s LinksSource) Eval(raw Resource) Links {
	if s.dynamic != nil {
		return cloneLinks(s.dynamic(raw))
	}
	return cloneLinks(s.static)
}

// MetaSource yields top-level meta for a collection.
type MetaSource struct {
	static  Meta
	dynamic func(resources []Resource, extra ExtraData) Meta
}

// StaticMeta returns a MetaSource that always yields meta.
func StaticMeta(meta Meta) MetaSource {
	return MetaSource{static: meta}
}

// DynamicMeta returns a MetaSource computed from the serialized collection
// and the caller's extra data. fn must accept an empty collection. A single
// resource arrives as a one-element collection, so len(resources) is 1.
func DynamicMeta(fn func(resources []Resource, extra ExtraData) Meta) MetaSource {
	return MetaSource{dynamic: fn}
}

// IsZero reports whether no meta was declared.
func (s MetaSource) IsZero() bool {
	return s.static == nil && s.dynamic == nil
}

// Eval evaluates the source. The zero value yields nil.
func (s MetaSource) Eval(resources []Resource, extra ExtraData) Meta {
	if s.dynamic != nil {
		return s.dynamic(resources, extra)
	}
	return s.static
}

// TopLinksSource yields top-level document links.
type TopLinksSource struct {
	static  Links
	dynamic func(extra ExtraData) Links
}

// StaticTopLinks returns a TopLinksSource that always yields links.
func StaticTopLinks(links Links) TopLinksSource {
	return TopLinksSource{static: links}
}

// DynamicTopLinks returns a TopLinksSource computed from the caller's extra data.
func DynamicTopLinks(fn func(extra ExtraData) Links) TopLinksSource {
	return TopLinksSource{dynamic: fn}
}

// IsZero reports whether no top-level links were declared.
func (s TopLinksSource) IsZero() bool {
	return s.static == nil && s.dynamic == nil
}

// Eval evaluates the source. The zero value yields nil.
func (s TopLinksSource) Eval(extra ExtraData) Links {
	if s.dynamic != nil {
		return cloneLinks(s.dynamic(extra))
	}
	return cloneLinks(s.static)
}

// Relationship declares a relationship field on a Schema.
type Relationship struct {
	// Type is the resource type of the related resources.
	Type string
	// Schema names the schema of Type used to project related resources.
	// Empty means DefaultSchema.
	Schema string
	// Links are evaluated against the owning resource.
	Links LinksSource
}

// Schema controls how one resource type is projected.
type Schema struct {
	// ID is the raw field holding the identifier. Empty means DefaultIDField.
	ID string
	// Blacklist lists raw fields never exposed as attributes.
	Blacklist []string
	// Links are the resource-level links.
	Links LinksSource
	// Relationships maps a raw field name to its relationship declaration.
	Relationships map[string]Relationship
	// TopLevelMeta is evaluated when this schema is the primary schema of a document.
	TopLevelMeta MetaSource
	// TopLevelLinks is evaluated when this schema is the primary schema of a document.
	TopLevelLinks TopLinksSource
}

func (s *Schema) idField() string {
	if s.ID == "" {
		return DefaultIDField
	}
	return s.ID
}

func (r Relationship) schemaName() string {
	if r.Schema == "" {
		return DefaultSchema
	}
	return r.Schema
}

// clone copies the slices and maps of s so later caller mutation cannot
// reach a registered schema.
func (s Schema) clone() *Schema {
	out := s
	if s.Blacklist != nil {
		out.Blacklist = append([]string(nil), s.Blacklist...)
	}
	if s.Relationships != nil {
		out.Relationships = make(map[string]Relationship, len(s.Relationships))
		for k, v := range s.Relationships {
			out.Relationships[k] = v
		}
	}
	return &out
}

func cloneLinks(l Links) Links {
	if l == nil {
		return nil
	}
	out := make(Links, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
