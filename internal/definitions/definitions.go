// Package definitions loads declarative schema definitions from YAML and
// registers them with a serializer.Registry.
//
// A definitions file looks like:
//
//	types:
//	  article:
//	    default:
//	      blacklist: [updated]
//	      links:
//	        self: /articles/{id}
//	      relationships:
//	        author:
//	          type: people
//	          links:
//	            related: /articles/{id}/author
//	      top_level_links:
//	        self: /articles
//	      top_level_meta:
//	        total: $count
//	        count: $extra.count
//	  comment:
//	    only-body:
//	      id: _id
//
// Link values are templates: {field} is replaced by the stringified raw
// field. In top_level_meta, $count expands to the collection length and
// $extra.<key> copies that key from the extra data when present.
package definitions

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/conduit-lang/jason/internal/serializer"
	"gopkg.in/yaml.v3"
)

// File is a parsed definitions file.
type File struct {
	// Types maps a resource type to its schemas by name.
	Types map[string]map[string]Definition `yaml:"types"`
}

// Definition is the declarative form of a serializer.Schema.
type Definition struct {
	ID            string                            `yaml:"id"`
	Blacklist     []string                          `yaml:"blacklist"`
	Links         map[string]string                 `yaml:"links"`
	Relationships map[string]RelationshipDefinition `yaml:"relationships"`
	TopLevelLinks map[string]string                 `yaml:"top_level_links"`
	TopLevelMeta  map[string]any                    `yaml:"top_level_meta"`
}

// RelationshipDefinition is the declarative form of a serializer.Relationship.
type RelationshipDefinition struct {
	Type   string            `yaml:"type"`
	Schema string            `yaml:"schema"`
	Links  map[string]string `yaml:"links"`
}

// Parse decodes a definitions file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to parse schema definitions: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the definitions file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema definitions: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Keys returns the (type, schema) pairs defined in f, sorted.
func (f *File) Keys() []serializer.SchemaKey {
	var keys []serializer.SchemaKey
	for typ, schemas := range f.Types {
		for name := range schemas {
			keys = append(keys, serializer.SchemaKey{Type: typ, Schema: name})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Schema < keys[j].Schema
	})
	return keys
}

// Register compiles every definition and registers it with reg.
func (f *File) Register(reg *serializer.Registry) error {
	for _, key := range f.Keys() {
		schema, err := f.Types[key.Type][key.Schema].Compile()
		if err != nil {
			return fmt.Errorf("schema %s: %w", key, err)
		}
		if err := reg.RegisterNamed(key.Type, key.Schema, schema); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) validate() error {
	for typ, schemas := range f.Types {
		if strings.TrimSpace(typ) == "" {
			return errors.New("resource type must not be empty")
		}
		for name, def := range schemas {
			for key, rel := range def.Relationships {
				if rel.Type == "" {
					return fmt.Errorf("schema %s/%s: relationship %q has no type", typ, name, key)
				}
			}
		}
	}
	return nil
}

// Compile turns d into a serializer.Schema.
func (d Definition) Compile() (serializer.Schema, error) {
	links, err := compileLinks(d.Links)
	if err != nil {
		return serializer.Schema{}, err
	}

	schema := serializer.Schema{
		ID:        d.ID,
		Blacklist: d.Blacklist,
		Links:     links,
	}

	if len(d.Relationships) > 0 {
		schema.Relationships = make(map[string]serializer.Relationship, len(d.Relationships))
		for key, rel := range d.Relationships {
			relLinks, err := compileLinks(rel.Links)
			if err != nil {
				return serializer.Schema{}, fmt.Errorf("relationship %q: %w", key, err)
			}
			schema.Relationships[key] = serializer.Relationship{
				Type:   rel.Type,
				Schema: rel.Schema,
				Links:  relLinks,
			}
		}
	}

	if len(d.TopLevelLinks) > 0 {
		schema.TopLevelLinks = serializer.StaticTopLinks(serializer.Links(d.TopLevelLinks))
	}
	if len(d.TopLevelMeta) > 0 {
		schema.TopLevelMeta = compileMeta(d.TopLevelMeta)
	}
	return schema, nil
}

func compileLinks(links map[string]string) (serializer.LinksSource, error) {
	if len(links) == 0 {
		return serializer.LinksSource{}, nil
	}

	templates := make(map[string]template, len(links))
	dynamic := false
	for name, raw := range links {
		tmpl, err := parseTemplate(raw)
		if err != nil {
			return serializer.LinksSource{}, fmt.Errorf("link %q: %w", name, err)
		}
		if tmpl.hasFields() {
			dynamic = true
		}
		templates[name] = tmpl
	}

	if !dynamic {
		return serializer.StaticLinks(serializer.Links(links)), nil
	}
	return serializer.DynamicLinks(func(r serializer.Resource) serializer.Links {
		out := make(serializer.Links, len(templates))
		for name, tmpl := range templates {
			out[name] = tmpl.expand(r)
		}
		return out
	}), nil
}

const (
	countDirective = "$count"
	extraDirective = "$extra."
)

func compileMeta(meta map[string]any) serializer.MetaSource {
	directives := false
	for _, v := range meta {
		if s, ok := v.(string); ok && strings.HasPrefix(s, "$") {
			directives = true
			break
		}
	}
	if !directives {
		return serializer.StaticMeta(serializer.Meta(meta))
	}

	return serializer.DynamicMeta(func(resources []serializer.Resource, extra serializer.ExtraData) serializer.Meta {
		out := make(serializer.Meta, len(meta))
		for key, v := range meta {
			s, ok := v.(string)
			switch {
			case ok && s == countDirective:
				out[key] = len(resources)
			case ok && strings.HasPrefix(s, extraDirective):
				if value, present := extra[strings.TrimPrefix(s, extraDirective)]; present {
					out[key] = value
				}
			default:
				out[key] = v
			}
		}
		return out
	})
}
