package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func compile(t *testing.T, raw []byte) *gojsonschema.Schema {
	t.Helper()
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	require.NoError(t, err)
	return schema
}

func TestMatchResultSchema_Compiles(t *testing.T) {
	compile(t, MatchResult)
}

func TestBulletSuggestionsSchema_Compiles(t *testing.T) {
	compile(t, BulletSuggestions)
}

func TestMatchResultSchema_AcceptsObject(t *testing.T) {
	schema := compile(t, MatchResult)

	doc := `{"match_percentage": 75, "matched_keywords": ["Go"], "missing_keywords": "AWS, Docker"}`
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestMatchResultSchema_RejectsNonObject(t *testing.T) {
	schema := compile(t, MatchResult)

	for _, doc := range []string{`42`, `"just a string"`, `[1, 2, 3]`} {
		result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
		require.NoError(t, err)
		assert.False(t, result.Valid(), "doc %s should be rejected", doc)
	}
}

func TestBulletSuggestionsSchema_AcceptsArray(t *testing.T) {
	schema := compile(t, BulletSuggestions)

	doc := `[{"original": "a", "improved": "b", "reason": "c"}, {"original": "d"}]`
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestBulletSuggestionsSchema_RejectsObject(t *testing.T) {
	schema := compile(t, BulletSuggestions)

	result, err := schema.Validate(gojsonschema.NewStringLoader(`{"original": "a"}`))
	require.NoError(t, err)
	assert.False(t, result.Valid())
}
