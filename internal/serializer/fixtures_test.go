package serializer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newArticleRegistry registers the article fixture schemas.
func newArticleRegistry(t testing.TB) *Registry {
	t.Helper()

	reg := NewRegistry()
	require.NoError(t, reg.Register("article", Schema{
		ID:        "id",
		Blacklist: []string{"updated"},
		Links: DynamicLinks(func(r Resource) Links {
			return Links{"self": "/articles/" + r["id"].(string)}
		}),
		Relationships: map[string]Relationship{
			"author": {
				Type: "people",
				Links: DynamicLinks(func(r Resource) Links {
					id := r["id"].(string)
					return Links{
						"self":    "/articles/" + id + "/relationships/author",
						"related": "/articles/" + id + "/author",
					}
				}),
			},
			"tags":     {Type: "tag"},
			"photos":   {Type: "photo"},
			"comments": {Type: "comment", Schema: "only-body"},
		},
		TopLevelMeta: DynamicMeta(func(resources []Resource, extra ExtraData) Meta {
			meta := Meta{"total": len(resources)}
			if count, ok := extra["count"]; ok {
				meta["count"] = count
			}
			return meta
		}),
		TopLevelLinks: StaticTopLinks(Links{"self": "/articles"}),
	}))
	require.NoError(t, reg.Register("people", Schema{
		Links: DynamicLinks(func(r Resource) Links {
			return Links{"self": "/peoples/" + r["id"].(string)}
		}),
	}))
	require.NoError(t, reg.Register("tag", Schema{}))
	require.NoError(t, reg.Register("photo", Schema{}))
	require.NoError(t, reg.RegisterNamed("comment", "only-body", Schema{ID: "_id"}))
	return reg
}

// dummyArticle returns a fresh copy of the article fixture.
func dummyArticle() Resource {
	return Resource{
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
