// Package demo serves the article fixture over HTTP. It is the smallest
// complete application built on the serializer and is what `jason serve`
// runs.
package demo

import (
	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/spf13/cast"
)

// CommentSchema is the named schema used for embedded comments
const CommentSchema = "only-body"

// RegisterSchemas registers the article, people, tag, photo and comment
// schemas in reg.
func RegisterSchemas(reg *serializer.Registry) error {
	article := serializer.Schema{
		Blacklist: []string{"updated"},
		Links: serializer.DynamicLinks(func(r serializer.Resource) serializer.Links {
			return serializer.Links{"self": "/articles/" + cast.ToString(r["id"])}
		}),
		Relationships: map[string]serializer.Relationship{
			"author": {
				Type: "people",
				Links: serializer.DynamicLinks(func(r serializer.Resource) serializer.Links {
					id := cast.ToString(r["id"])
					return serializer.Links{
						"self":    "/articles/" + id + "/relationships/author",
						"related": "/articles/" + id + "/author",
					}
				}),
			},
			"tags":     {Type: "tag"},
			"photos":   {Type: "photo"},
			"comments": {Type: "comment", Schema: CommentSchema},
		},
		TopLevelMeta: serializer.DynamicMeta(func(resources []serializer.Resource, extra serializer.ExtraData) serializer.Meta {
			meta := serializer.Meta{"total": len(resources)}
			if count, ok := extra["count"]; ok {
				meta["count"] = count
			}
			return meta
		}),
		TopLevelLinks: serializer.StaticTopLinks(serializer.Links{"self": "/articles"}),
	}

	people := serializer.Schema{
		Links: serializer.DynamicLinks(func(r serializer.Resource) serializer.Links {
			return serializer.Links{"self": "/peoples/" + cast.ToString(r["id"])}
		}),
	}

	if err := reg.Register("article", article); err != nil {
		return err
	}
	if err := reg.Register("people", people); err != nil {
		return err
	}
	if err := reg.Register("tag", serializer.Schema{}); err != nil {
		return err
	}
	if err := reg.Register("photo", serializer.Schema{}); err != nil {
		return err
	}
	return reg.RegisterNamed("comment", CommentSchema, serializer.Schema{ID: "_id"})
}
