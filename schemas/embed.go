// Package schemas holds the JSON Schema documents for the advisor's wire
// formats.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names
const (
	SiteInput  = "site_input.schema.json"
	Assessment = "assessment.schema.json"
)
