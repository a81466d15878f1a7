package openapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdrift/specdrift/routes"
	"github.com/specdrift/specdrift/typedesc"
)

// analyzedDocument builds a small but representative document through the
// real analyzer, so matcher tests exercise the same shapes production runs
// produce.
func analyzedDocument(t *testing.T) *Document {
	t.Helper()

	r := routes.NewRouter()
	api := r.PathPrefix("/api/v1")

	Describe(api.Handle("/entities", http.MethodGet)).
		InputShape(&Input{
			Params: []InputParam{
				{Name: "offset", Source: ParamQuery, Default: 0, Type: typedesc.Int32()},
				{Name: "limit", Source: ParamQuery, Default: 0, Type: typedesc.Int32()},
			},
		}).
		Response(http.StatusOK, typedesc.ObjectOf("EntityPage",
			typedesc.NewField("entities", typedesc.ListOf(entityType())),
		))

	Describe(api.Handle("/entities/{entityCode}", http.MethodPut)).
		InputShape(&Input{
			Body:         entityType(),
			BodyRequired: true,
			Params: []InputParam{
				{Name: "entityCode", Source: ParamPath, Required: true, Type: typedesc.String()},
			},
		}).
		Response(http.StatusOK, entityType()).
		Response(http.StatusNoContent, typedesc.NoContent)

	doc, err := NewAnalyzer(Config{BasePaths: []string{"/api/v1"}}).Analyze(r)
	require.NoError(t, err)
	return doc
}

func TestMatchIdenticalDocuments(t *testing.T) {
	doc := analyzedDocument(t)

	t.Run("document against itself", func(t *testing.T) {
		assert.Empty(t, Match(doc, doc, MatchOptions{}))
	})

	t.Run("structural equality up to ordering", func(t *testing.T) {
		other := analyzedDocument(t)
		// The matcher keys everything structurally, so path order must
		// not matter.
		other.Paths[0], other.Paths[1] = other.Paths[1], other.Paths[0]
		assert.Empty(t, Match(doc, other, MatchOptions{}))
	})

	t.Run("strict mode on identical documents", func(t *testing.T) {
		assert.Empty(t, Match(doc, doc, MatchOptions{Strict: true}))
	})
}

func TestMatchMissingPath(t *testing.T) {
	expected := analyzedDocument(t)
	actual := &Document{Paths: []*Path{expected.Paths[0]}}

	d := Match(expected, actual, MatchOptions{})
	require.Len(t, d, 1)
	assert.Equal(t, `missing path "/api/v1/entities/{entityCode}"`, d[0])
}

func TestMatchMissingOperation(t *testing.T) {
	expected := analyzedDocument(t)
	actual := analyzedDocument(t)
	actual.Paths[1].Operations = nil

	d := Match(expected, actual, MatchOptions{})
	require.Len(t, d, 1)
	assert.Equal(t, `path "/api/v1/entities/{entityCode}": missing operation "put"`, d[0])
}

func TestMatchMethodCaseInsensitive(t *testing.T) {
	expected := analyzedDocument(t)
	actual := analyzedDocument(t)
	actual.Paths[0].Operations[0].Method = "GET"

	assert.Empty(t, Match(expected, actual, MatchOptions{}))
}

func TestMatchParameters(t *testing.T) {
	t.Run("missing parameter", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[0].Operations[0].Parameters = actual.Paths[0].Operations[0].Parameters[:1]

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], `missing parameter "limit" in query`)
	})

	t.Run("extra parameter tolerated by default", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[0].Operations[0].Parameters = append(
			actual.Paths[0].Operations[0].Parameters,
			&Parameter{Name: "verbose", In: InQuery, Schema: &Schema{Type: TypeBoolean}},
		)

		assert.Empty(t, Match(expected, actual, MatchOptions{}))

		t.Run("reported in strict mode", func(t *testing.T) {
			d := Match(expected, actual, MatchOptions{Strict: true})
			require.Len(t, d, 1)
			assert.Contains(t, d[0], `unexpected parameter "verbose" in query`)
		})
	})

	t.Run("required mismatch", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[1].Operations[0].Parameters[0].Required = false

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], `parameter "entityCode" in path: required mismatch: expected true, actual false`)
	})

	t.Run("declaration order is irrelevant", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		params := actual.Paths[0].Operations[0].Parameters
		params[0], params[1] = params[1], params[0]

		assert.Empty(t, Match(expected, actual, MatchOptions{}))
	})
}

func TestMatchRequestBody(t *testing.T) {
	t.Run("missing body", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[1].Operations[0].RequestBody = nil

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], "missing request body")
	})

	t.Run("unexpected body", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		expected.Paths[1].Operations[0].RequestBody = nil

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], "unexpected request body")
	})

	t.Run("content type mismatch", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[1].Operations[0].RequestBody.Content[0].ContentType = "application/problem+json"

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 2)
		assert.Contains(t, d[0], `missing content type "application/json"`)
		assert.Contains(t, d[1], `unexpected content type "application/problem+json"`)
	})
}

func TestMatchResponses(t *testing.T) {
	t.Run("missing and extra statuses", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[1].Operations[0].Responses[1].Status = "202"

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 2)
		assert.Contains(t, d[0], "missing response 204")
		assert.Contains(t, d[1], "unexpected response 202")
	})

	t.Run("description mismatch", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		actual.Paths[0].Operations[0].Responses[0].Description = "all entities"

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], `description mismatch: expected "OK", actual "all entities"`)
	})

	t.Run("header comparison", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		expected.Paths[0].Operations[0].Responses[0].Headers = []*Header{
			{Name: "X-Total-Count", Required: true, Schema: &Schema{Type: TypeInteger, Format: "int64"}},
		}

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], `missing header "X-Total-Count"`)
	})
}

func TestMatchSchema(t *testing.T) {
	t.Run("kind mismatch stops descent", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		// Swap the object body for an array: one descriptive mismatch,
		// no property-level noise underneath.
		actual.Paths[0].Operations[0].Responses[0].Content[0].Schema = &Schema{
			Type:  TypeArray,
			Items: &Schema{Type: TypeString},
		}

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], `type mismatch: expected "object", actual "array"`)
	})

	t.Run("format mismatch", func(t *testing.T) {
		expected := analyzedDocument(t)
		actual := analyzedDocument(t)
		schema := actual.Paths[0].Operations[0].Parameters[0].Schema
		schema.Format = "int64"

		d := Match(expected, actual, MatchOptions{})
		require.Len(t, d, 1)
		assert.Contains(t, d[0], `format mismatch: expected "int32", actual "int64"`)
	})

	t.Run("required compared as a set", func(t *testing.T) {
		e := &Schema{Type: TypeObject, Required: []string{"code", "id"}}
		a := &Schema{Type: TypeObject, Required: []string{"id", "code"}}
		assert.Empty(t, matchSchema("schema", e, a))

		a.Required = []string{"id"}
		d := matchSchema("schema", e, a)
		require.Len(t, d, 1)
		assert.Equal(t, `schema: property "code" expected to be required`, d[0])
	})

	t.Run("missing and extra properties", func(t *testing.T) {
		e := &Schema{Type: TypeObject, Properties: []*Property{
			{Name: "id", Schema: &Schema{Type: TypeInteger}},
		}}
		a := &Schema{Type: TypeObject, Properties: []*Property{
			{Name: "uid", Schema: &Schema{Type: TypeInteger}},
		}}
		d := matchSchema("schema", e, a)
		require.Len(t, d, 2)
		assert.Equal(t, `schema: missing property "id"`, d[0])
		assert.Equal(t, `schema: unexpected property "uid"`, d[1])
	})

	t.Run("enum compared as a set", func(t *testing.T) {
		e := &Schema{Type: TypeString, Enum: []string{"B", "A"}}
		a := &Schema{Type: TypeString, Enum: []string{"A", "B"}}
		assert.Empty(t, matchSchema("schema", e, a))

		a.Enum = []string{"A", "C"}
		d := matchSchema("schema", e, a)
		require.Len(t, d, 1)
		assert.Equal(t, "schema: enum mismatch: expected [A B], actual [A C]", d[0])
	})

	t.Run("uniqueItems mismatch", func(t *testing.T) {
		e := &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}, UniqueItems: true}
		a := &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}}
		d := matchSchema("schema", e, a)
		require.Len(t, d, 1)
		assert.Equal(t, "schema: uniqueItems mismatch: expected true, actual false", d[0])
	})

	t.Run("nullable mismatch", func(t *testing.T) {
		e := &Schema{Type: TypeString, Nullable: true}
		a := &Schema{Type: TypeString}
		d := matchSchema("schema", e, a)
		require.Len(t, d, 1)
		assert.Equal(t, "schema: nullable mismatch: expected true, actual false", d[0])
	})

	t.Run("title and default are informational", func(t *testing.T) {
		e := &Schema{Type: TypeInteger, Title: "Count", Default: 1}
		a := &Schema{Type: TypeInteger, Title: "Total", Default: 2}
		assert.Empty(t, matchSchema("schema", e, a))
	})

	t.Run("additionalProperties recursion", func(t *testing.T) {
		e := &Schema{Type: TypeObject, AdditionalProperties: &Schema{Type: TypeInteger}}
		a := &Schema{Type: TypeObject, AdditionalProperties: &Schema{Type: TypeString}}
		d := matchSchema("schema", e, a)
		require.Len(t, d, 1)
		assert.Equal(t, `schema: additionalProperties: type mismatch: expected "integer", actual "string"`, d[0])
	})
}

func TestMatchDeprecatedFlags(t *testing.T) {
	expected := analyzedDocument(t)
	actual := analyzedDocument(t)
	actual.Paths[0].Operations[0].Deprecated = true

	d := Match(expected, actual, MatchOptions{})
	require.Len(t, d, 1)
	assert.Equal(t, `path "/api/v1/entities" get: deprecated mismatch: expected false, actual true`, d[0])
}
