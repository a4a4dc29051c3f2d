// Package serializer turns application resources into JSON:API-style
// documents.
//
// A Registry holds one Schema per (type, schema name). A Serializer resolves
// the schema for the requested type, projects every raw resource into a
// ResourceObject, lifts nested related resources into a deduplicated
// included pool and computes top-level meta and links.
//
//	reg := serializer.NewRegistry()
//	reg.MustRegister("article", serializer.Schema{
//		Blacklist: []string{"updated"},
//		Relationships: map[string]serializer.Relationship{
//			"author": {Type: "people"},
//		},
//	})
//	reg.MustRegister("people", serializer.Schema{})
//
//	doc, err := serializer.New(reg).SerializeOne("article", article)
//
// Serialization is synchronous and owns all of its intermediate state.
// The Registry may be shared between goroutines.
package serializer
