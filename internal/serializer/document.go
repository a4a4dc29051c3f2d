package serializer

import "encoding/json"

// ResourceObject is the projected form of one raw resource.
type ResourceObject struct {
	Type          string                        `json:"type"`
	ID            string                        `json:"id"`
	Attributes    map[string]any                `json:"attributes"`
	Relationships map[string]RelationshipObject `json:"relationships,omitempty"`
	Links         Links                         `json:"links,omitempty"`
}

// RelationshipObject describes one relationship of a ResourceObject. The
// related data itself lives in the document's included section.
type RelationshipObject struct {
	Type  string `json:"type"`
	Links Links  `json:"links,omitempty"`
}

// PrimaryData holds either a single resource object or a collection.
type PrimaryData struct {
	one        *ResourceObject
	many       []*ResourceObject
	collection bool
}

// IsCollection reports whether the primary data is an array.
func (p PrimaryData) IsCollection() bool {
	return p.collection
}

// One returns the single primary resource, or nil for a collection.
func (p PrimaryData) One() *ResourceObject {
	return p.one
}

// Many returns the primary resources. A single resource is returned as a
// one-element slice.
func (p PrimaryData) Many() []*ResourceObject {
	if p.collection {
		return p.many
	}
	if p.one == nil {
		return nil
	}
	return []*ResourceObject{p.one}
}

// MarshalJSON encodes a collection as an array (never null) and a single
// resource as an object.
func (p PrimaryData) MarshalJSON() ([]byte, error) {
	if p.collection {
		if p.many == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.many)
	}
	return json.Marshal(p.one)
}

// Document is the serialized envelope.
type Document struct {
	Data     PrimaryData       `json:"data"`
	Included []*ResourceObject `json:"included,omitempty"`
	Meta     Meta              `json:"meta,omitempty"`
	Links    Links             `json:"links,omitempty"`
}
