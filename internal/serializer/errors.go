package serializer

import "fmt"

// SchemaNotFoundError is returned when no schema is registered for a
// (type, schema name) pair.
type SchemaNotFoundError struct {
	Type   string
	Schema string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("no schema %q registered for type %q", e.Schema, e.Type)
}

// DuplicateSchemaError is returned when a (type, schema name) pair is
// registered twice on a Registry that does not allow overwrites.
type DuplicateSchemaError struct {
	Type   string
	Schema string
}

func (e *DuplicateSchemaError) Error() string {
	return fmt.Sprintf("schema %q already registered for type %q", e.Schema, e.Type)
}

// MissingIdentifierError is returned when a raw resource has no usable
// value in its schema's identifier field.
type MissingIdentifierError struct {
	Type  string
	Field string
	Cause error
}

func (e *MissingIdentifierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resource of type %q has no usable identifier in field %q: %v", e.Type, e.Field, e.Cause)
	}
	return fmt.Sprintf("resource of type %q has no identifier field %q", e.Type, e.Field)
}

func (e *MissingIdentifierError) Unwrap() error {
	return e.Cause
}

// MalformedRelationshipError is returned when a relationship value is not
// a nested object, an identifier or an array of those.
type MalformedRelationshipError struct {
	Type         string
	Relationship string
	Value        any
}

func (e *MalformedRelationshipError) Error() string {
	return fmt.Sprintf("relationship %q of type %q holds unsupported value of type %T", e.Relationship, e.Type, e.Value)
}

// UnsupportedDataError is returned by Serialize when data is neither a
// resource nor a collection of resources.
type UnsupportedDataError struct {
	Value any
}

func (e *UnsupportedDataError) Error() string {
	return fmt.Sprintf("cannot serialize value of type %T", e.Value)
}
