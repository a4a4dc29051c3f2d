package serializer

import (
	"errors"
	"sort"

	"github.com/spf13/cast"
)

// project builds the ResourceObject for raw. Relationship values are not
// read here; a descriptor is emitted for every declared relationship,
// whether or not raw holds a value for it.
func project(typ string, schema *Schema, raw Resource) (*ResourceObject, error) {
	id, err := identifier(typ, schema, raw)
	if err != nil {
		return nil, err
	}

	obj := &ResourceObject{
		Type:       typ,
		ID:         id,
		Attributes: attributes(schema, raw),
		Links:      nonEmptyLinks(schema.Links.Eval(raw)),
	}

	if len(schema.Relationships) > 0 {
		obj.Relationships = make(map[string]RelationshipObject, len(schema.Relationships))
	}
	for key, rel := range schema.Relationships {
		obj.Relationships[key] = RelationshipObject{
			Type:  rel.Type,
			Links: nonEmptyLinks(rel.Links.Eval(raw)),
		}
	}

	return obj, nil
}

func identifier(typ string, schema *Schema, raw Resource) (string, error) {
	field := schema.idField()
	value, ok := raw[field]
	if !ok || value == nil {
		return "", &MissingIdentifierError{Type: typ, Field: field}
	}
	if _, isMap := value.(map[string]any); isMap {
		return "", &MissingIdentifierError{Type: typ, Field: field, Cause: errors.New("identifier is an object")}
	}
	id, err := cast.ToStringE(value)
	if err != nil {
		return "", &MissingIdentifierError{Type: typ, Field: field, Cause: err}
	}
	return id, nil
}

// attributes returns every field of raw except the identifier, blacklisted
// fields and relationship fields.
func attributes(schema *Schema, raw Resource) map[string]any {
	excluded := make(map[string]struct{}, len(schema.Blacklist)+len(schema.Relationships)+1)
	excluded[schema.idField()] = struct{}{}
	for _, field := range schema.Blacklist {
		excluded[field] = struct{}{}
	}
	for key := range schema.Relationships {
		excluded[key] = struct{}{}
	}

	attrs := make(map[string]any, len(raw))
	for field, value := range raw {
		if _, skip := excluded[field]; skip {
			continue
		}
		attrs[field] = value
	}
	return attrs
}

// relationshipKeys returns the declared relationship keys in a stable order.
func relationshipKeys(schema *Schema) []string {
	keys := make([]string, 0, len(schema.Relationships))
	for key := range schema.Relationships {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func nonEmptyLinks(l Links) Links {
	if len(l) == 0 {
		return nil
	}
	return l
}
