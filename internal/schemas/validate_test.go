package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["no_movement_days"],
  "properties": {
    "no_movement_days": {"type": "integer", "minimum": 1}
  }
}`

func TestValidateJSONString_ValidDocument(t *testing.T) {
	err := ValidateJSONString(rulesSchema, `{"no_movement_days": 14}`)

	assert.NoError(t, err)
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	err := ValidateJSONString(rulesSchema, `{}`)

	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 1)
	assert.Contains(t, ve.Error(), "no_movement_days")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(rulesSchema, `{"no_movement_days": "fourteen"}`)

	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "no_movement_days", ve.Errors[0].Field)
}

func TestValidateJSONString_BrokenSchemaIsLoadError(t *testing.T) {
	err := ValidateJSONString(`{`, `{}`)

	require.Error(t, err)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestResolveSchemaPath_FindsRepoRootSchemas(t *testing.T) {
	// Running from internal/schemas, the repo root is two levels up.
	path := ResolveSchemaPath("schemas/snapshot.schema.json")

	assert.NotEmpty(t, path)
}

func TestResolveSchemaPath_MissingReturnsEmpty(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}
