package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conduit-lang/jason/internal/definitions"
	"github.com/conduit-lang/jason/internal/demo"
	"github.com/conduit-lang/jason/internal/serializer"
)

// loadRegistry builds a registry from a definitions file, or from the
// built-in article schemas when path is empty.
func loadRegistry(path string, overwrite bool) (*serializer.Registry, error) {
	var opts []serializer.RegistryOption
	if overwrite {
		opts = append(opts, serializer.WithOverwrite())
	}
	reg := serializer.NewRegistry(opts...)

	if path == "" {
		if err := demo.RegisterSchemas(reg); err != nil {
			return nil, err
		}
		return reg, nil
	}

	file, err := definitions.Load(path)
	if err != nil {
		return nil, err
	}
	if err := file.Register(reg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// describeRelationships renders "key→type[/schema]" pairs sorted by key
func describeRelationships(rels map[string]serializer.Relationship) string {
	if len(rels) == 0 {
		return "-"
	}

	keys := make([]string, 0, len(rels))
	for key := range rels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		rel := rels[key]
		target := rel.Type
		if rel.Schema != "" && rel.Schema != serializer.DefaultSchema {
			target += "/" + rel.Schema
		}
		parts[i] = key + "→" + target
	}
	return strings.Join(parts, ", ")
}
