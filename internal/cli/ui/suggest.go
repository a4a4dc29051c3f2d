package ui

import (
	"sort"
	"strings"

	"github.com/conduit-lang/jason/internal/serializer"
)

const (
	maxSuggestions  = 3
	maxTypeDistance = 3
)

// SuggestSchemas offers registered schemas close to a (typ, schema) pair
// that failed to resolve. When typ is registered under other names those
// are offered as "type/schema". Otherwise types within a small edit
// distance of typ are offered, closest first.
func SuggestSchemas(typ, schema string, keys []serializer.SchemaKey) []string {
	var sameType []string
	for _, key := range keys {
		if key.Type == typ && key.Schema != schema {
			sameType = append(sameType, key.Type+"/"+key.Schema)
		}
	}
	if len(sameType) > 0 {
		return truncate(sameType)
	}

	type candidate struct {
		typ      string
		distance int
	}
	var (
		candidates []candidate
		seen       = make(map[string]bool)
		target     = strings.ToLower(typ)
	)
	for _, key := range keys {
		if seen[key.Type] {
			continue
		}
		seen[key.Type] = true

		d := editDistance(target, strings.ToLower(key.Type))
		if d <= maxTypeDistance && d < len([]rune(target)) {
			candidates = append(candidates, candidate{typ: key.Type, distance: d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.typ
	}
	return truncate(out)
}

func truncate(s []string) []string {
	if len(s) > maxSuggestions {
		return s[:maxSuggestions]
	}
	return s
}

// editDistance is the Levenshtein distance between a and b, counted in runes
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
