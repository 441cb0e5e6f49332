package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const siteInputJSON = `{
  "roof_area_m2": 150,
  "roof_type": "concrete",
  "location": "Guntur",
  "annual_rainfall_mm": 800,
  "groundwater_depth_m": 15,
  "soil_type": "loam",
  "available_space_m2": 25,
  "num_dwellers": 4
}`

// writeSiteInput writes content to a temp file and returns its path.
func writeSiteInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs rootCmd with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), err
}
