package schemas

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_Embedded(t *testing.T) {
	names, err := fs.Glob(FS, "*.schema.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{SiteInput, Assessment}, names)
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, name := range []string{SiteInput, Assessment} {
		t.Run(name, func(t *testing.T) {
			data, err := FS.ReadFile(name)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "$schema")

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile")
		})
	}
}

func TestAssessmentSchema_ArchetypeEnum(t *testing.T) {
	data, err := FS.ReadFile(Assessment)
	require.NoError(t, err)

	var schemaObj struct {
		Definitions struct {
			Archetype struct {
				Enum []string `json:"enum"`
			} `json:"archetype"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(data, &schemaObj))
	assert.Len(t, schemaObj.Definitions.Archetype.Enum, 7)
	assert.Contains(t, schemaObj.Definitions.Archetype.Enum, "injection_well_system")
}
