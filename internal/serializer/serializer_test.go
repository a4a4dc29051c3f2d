package serializer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const articleJSON = `{
	"type": "article",
	"id": "1",
	"attributes": {
		"title": "JSON API paints my bikeshed!",
		"body": "The shortest article. Ever.",
		"created": "2015-05-22T14:56:29.000Z"
	},
	"relationships": {
		"author": {
			"type": "people",
			"links": {
				"self": "/articles/1/relationships/author",
				"related": "/articles/1/author"
			}
		},
		"tags": {"type": "tag"},
		"photos": {"type": "photo"},
		"comments": {"type": "comment"}
	},
	"links": {"self": "/articles/1"}
}`

const includedJSON = `[
	{
		"type": "people",
		"id": "1",
		"attributes": {
			"firstName": "Kaley",
			"lastName": "Maggio",
			"email": "Kaley-Maggio@example.com",
			"age": "80",
			"gender": "male"
		},
		"links": {"self": "/peoples/1"}
	},
	{"type": "comment", "id": "1", "attributes": {"body": "First !", "created": "2015-08-14T18:42:16.475Z"}},
	{"type": "comment", "id": "2", "attributes": {"body": "I Like !", "created": "2015-09-14T18:42:12.475Z"}},
	{"type": "comment", "id": "3", "attributes": {"body": "Awesome", "created": "2015-09-15T18:42:12.475Z"}}
]`

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestSerializeOne_Fixture(t *testing.T) {
	s := New(newArticleRegistry(t))

	doc, err := s.SerializeOne("article", dummyArticle())
	require.NoError(t, err)

	assert.False(t, doc.Data.IsCollection())
	require.NotNil(t, doc.Data.One())
	assert.Len(t, doc.Data.One().Relationships, 4)
	require.Len(t, doc.Included, 4)

	assert.JSONEq(t, `{
		"data": `+articleJSON+`,
		"included": `+includedJSON+`,
		"meta": {"total": 1},
		"links": {"self": "/articles"}
	}`, marshal(t, doc))
}

func TestSerializeMany_Fixture(t *testing.T) {
	s := New(newArticleRegistry(t))

	doc, err := s.SerializeMany("article", []Resource{dummyArticle(), dummyArticle()})
	require.NoError(t, err)

	assert.True(t, doc.Data.IsCollection())
	assert.Len(t, doc.Data.Many(), 2)
	assert.Len(t, doc.Included, 4, "shared related resources are included once")

	assert.JSONEq(t, `{
		"data": [`+articleJSON+`,`+articleJSON+`],
		"included": `+includedJSON+`,
		"meta": {"total": 2},
		"links": {"self": "/articles"}
	}`, marshal(t, doc))
}

func TestSerializeMany_ExtraData(t *testing.T) {
	s := New(newArticleRegistry(t))

	doc, err := s.SerializeMany("article", []Resource{dummyArticle(), dummyArticle()},
		WithExtraData(ExtraData{"count": 2}))
	require.NoError(t, err)

	assert.Equal(t, Meta{"count": 2, "total": 2}, doc.Meta)
}

func TestSerializeMany_Empty(t *testing.T) {
	s := New(newArticleRegistry(t))

	for _, raws := range [][]Resource{nil, {}} {
		doc, err := s.SerializeMany("article", raws)
		require.NoError(t, err)

		assert.Empty(t, doc.Data.Many())
		assert.Nil(t, doc.Included)
		assert.JSONEq(t, `{"data": [], "meta": {"total": 0}, "links": {"self": "/articles"}}`, marshal(t, doc))
	}
}

func TestSerialize_Deterministic(t *testing.T) {
	s := New(newArticleRegistry(t))

	first, err := s.SerializeMany("article", []Resource{dummyArticle(), dummyArticle()})
	require.NoError(t, err)
	second, err := s.SerializeMany("article", []Resource{dummyArticle(), dummyArticle()})
	require.NoError(t, err)

	assert.Equal(t, marshal(t, first), marshal(t, second))
}

func TestSerialize_MetaSeed(t *testing.T) {
	s := New(newArticleRegistry(t))

	t.Run("merged under schema meta", func(t *testing.T) {
		doc, err := s.SerializeOne("article", dummyArticle(),
			WithMetaSeed(Meta{"id": "req-1", "total": 99}))
		require.NoError(t, err)
		assert.Equal(t, Meta{"id": "req-1", "total": 1}, doc.Meta)
	})

	t.Run("seed alone", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister("tag", Schema{})
		doc, err := New(reg).SerializeOne("tag", Resource{"id": "1"}, WithMetaSeed(Meta{"id": "req-2"}))
		require.NoError(t, err)
		assert.Equal(t, Meta{"id": "req-2"}, doc.Meta)
	})

	t.Run("omitted when empty", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister("tag", Schema{})
		doc, err := New(reg).SerializeOne("tag", Resource{"id": "1"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"data": {"type": "tag", "id": "1", "attributes": {}}}`, marshal(t, doc))
	})
}

func TestSerialize_StaticMetaAndDynamicLinks(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("tag", Schema{
		TopLevelMeta: StaticMeta(Meta{"version": "1"}),
		TopLevelLinks: DynamicTopLinks(func(extra ExtraData) Links {
			return Links{"self": "/tags?page=" + extra["page"].(string)}
		}),
	})

	doc, err := New(reg).SerializeMany("tag", []Resource{{"id": "1"}}, WithExtraData(ExtraData{"page": "2"}))
	require.NoError(t, err)

	assert.Equal(t, Meta{"version": "1"}, doc.Meta)
	assert.Equal(t, Links{"self": "/tags?page=2"}, doc.Links)
}

func TestSerialize_NamedSchema(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("comment", Schema{})
	reg.MustRegisterNamed("comment", "only-body", Schema{ID: "_id", Blacklist: []string{"created"}})

	doc, err := New(reg).SerializeOne("comment",
		Resource{"_id": "1", "body": "First !", "created": "2015"},
		WithSchemaName("only-body"))
	require.NoError(t, err)

	assert.Equal(t, "1", doc.Data.One().ID)
	assert.Equal(t, map[string]any{"body": "First !"}, doc.Data.One().Attributes)
}

func TestSerialize_Dispatch(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("tag", Schema{})
	s := New(reg)

	tests := []struct {
		name       string
		data       any
		collection bool
		count      int
	}{
		{name: "resource", data: Resource{"id": "1"}, count: 1},
		{name: "map", data: map[string]any{"id": "1"}, count: 1},
		{name: "resources", data: []Resource{{"id": "1"}, {"id": "2"}}, collection: true, count: 2},
		{name: "maps", data: []map[string]any{{"id": "1"}}, collection: true, count: 1},
		{name: "decoded json array", data: []any{map[string]any{"id": "1"}}, collection: true, count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := s.Serialize("tag", tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.collection, doc.Data.IsCollection())
			assert.Len(t, doc.Data.Many(), tt.count)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		for _, data := range []any{nil, "1", []any{"1"}} {
			_, err := s.Serialize("tag", data)
			var unsupported *UnsupportedDataError
			assert.True(t, errors.As(err, &unsupported), "%T", data)
		}
	})
}

func TestSerialize_Errors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(newArticleRegistry(t), WithLogger(zap.New(core)))

	t.Run("unknown type", func(t *testing.T) {
		doc, err := s.SerializeOne("unknown", Resource{"id": "1"})
		assert.Nil(t, doc)
		var notFound *SchemaNotFoundError
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("missing identifier in collection", func(t *testing.T) {
		raw := dummyArticle()
		delete(raw, "id")
		doc, err := s.SerializeMany("article", []Resource{dummyArticle(), raw})
		assert.Nil(t, doc, "no partial document")
		var missing *MissingIdentifierError
		assert.True(t, errors.As(err, &missing))
	})

	entries := logs.FilterMessage("serialization failed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "unknown", entries[0].ContextMap()["type"])
}
