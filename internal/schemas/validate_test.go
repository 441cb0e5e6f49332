package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schemafiles "github.com/jonathan/rainwater-advisor/schemas"
)

const siteJSON = `{
	"roof_area_m2": 150,
	"roof_type": "concrete",
	"location": "Guntur",
	"annual_rainfall_mm": 800,
	"groundwater_depth_m": 15,
	"soil_type": "loam",
	"available_space_m2": 25,
	"num_dwellers": 4
}`

func TestValidateDocument_SiteInput(t *testing.T) {
	assert.NoError(t, ValidateDocument(schemafiles.SiteInput, []byte(siteJSON)))
}

func TestValidateDocument_SiteInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"missing roof area", `{"roof_type":"metal","soil_type":"loam","available_space_m2":1,"num_dwellers":2}`, "(root)"},
		{"zero dwellers", `{"roof_area_m2":10,"roof_type":"metal","soil_type":"loam","available_space_m2":1,"num_dwellers":0}`, "num_dwellers"},
		{"fractional dwellers", `{"roof_area_m2":10,"roof_type":"metal","soil_type":"loam","available_space_m2":1,"num_dwellers":2.5}`, "num_dwellers"},
		{"latitude out of range", `{"roof_area_m2":10,"roof_type":"metal","soil_type":"loam","available_space_m2":1,"num_dwellers":2,"coordinates":{"lat":91,"lng":0}}`, "coordinates.lat"},
		{"unknown field", `{"roof_area_m2":10,"roof_type":"metal","soil_type":"loam","available_space_m2":1,"num_dwellers":2,"pool":true}`, "(root)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(schemafiles.SiteInput, []byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidateDocument_Malformed(t *testing.T) {
	err := ValidateDocument(schemafiles.SiteInput, []byte(`{ invalid json }`))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.NotErrorAs(t, err, &validationErr)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "site.json")
	require.NoError(t, os.WriteFile(valid, []byte(siteJSON), 0644))
	invalid := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"roof_type": 7}`), 0644))

	assert.NoError(t, ValidateFile(schemafiles.SiteInput, valid))

	err := ValidateFile(schemafiles.SiteInput, invalid)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestValidateFile_NotFound(t *testing.T) {
	err := ValidateFile(schemafiles.SiteInput, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateFile_WrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte(siteJSON), 0644))

	err := ValidateFile(schemafiles.Assessment, path)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "roof_area_m2", Message: "is required"},
			{Field: "num_dwellers", Message: "must be >= 1"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. roof_area_m2")
	assert.Contains(t, errorMsg, "2. num_dwellers")
}
