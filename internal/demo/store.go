package demo

import (
	"sort"
	"sync"

	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Store is an in-memory article store
type Store struct {
	mu       sync.RWMutex
	articles map[string]serializer.Resource
}

// NewStore creates a store holding the given articles
func NewStore(articles ...serializer.Resource) *Store {
	s := &Store{articles: make(map[string]serializer.Resource)}
	for _, a := range articles {
		s.Create(a)
	}
	return s
}

// List returns every article ordered by id
func (s *Store) List() []serializer.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.articles))
	for id := range s.articles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]serializer.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.articles[id])
	}
	return out
}

// Get returns the article with the given id
func (s *Store) Get(id string) (serializer.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	return a, ok
}

// Create stores article, assigning a UUID when it has no id, and returns
// the stored copy.
func (s *Store) Create(article serializer.Resource) serializer.Resource {
	stored := withID(article)
	s.Put(stored)
	return stored
}

// Put stores article under its id, replacing any previous version
func (s *Store) Put(article serializer.Resource) {
	id := cast.ToString(article["id"])

	s.mu.Lock()
	s.articles[id] = article
	s.mu.Unlock()
}

// withID returns a copy of article carrying an id
func withID(article serializer.Resource) serializer.Resource {
	out := make(serializer.Resource, len(article)+1)
	for k, v := range article {
		out[k] = v
	}
	if cast.ToString(out["id"]) == "" {
		out["id"] = uuid.New().String()
	} else {
		out["id"] = cast.ToString(out["id"])
	}
	return out
}

// FixtureArticle returns a fresh copy of the sample article with its
// embedded author and comments.
func FixtureArticle() serializer.Resource {
	return serializer.Resource{
		"id":      "1",
		"title":   "JSON API paints my bikeshed!",
		"body":    "The shortest article. Ever.",
		"created": "2015-05-22T14:56:29.000Z",
		"updated": "2015-05-22T14:56:28.000Z",
		"author": map[string]any{
			"id":        "1",
			"firstName": "Kaley",
			"lastName":  "Maggio",
			"email":     "Kaley-Maggio@example.com",
			"age":       "80",
			"gender":    "male",
		},
		"tags": []any{"1", "2"},
		"photos": []any{
			"ed70cf44-9a34-4878-84e6-0c0e4a450cfe",
			"24ba3666-a593-498c-9f5d-55a4ee08c72e",
			"f386492d-df61-4573-b4e3-54f6f5d08acf",
		},
		"comments": []any{
			map[string]any{"_id": "1", "body": "First !", "created": "2015-08-14T18:42:16.475Z"},
			map[string]any{"_id": "2", "body": "I Like !", "created": "2015-09-14T18:42:12.475Z"},
			map[string]any{"_id": "3", "body": "Awesome", "created": "2015-09-15T18:42:12.475Z"},
		},
	}
}
