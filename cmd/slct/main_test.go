package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureUniverse = `{
	"key": "ID",
	"attributes": [
		{"attr_code": "ID", "attr_type": "INPUT", "attr_data_type": "INTEGER"},
		{"attr_code": "AMOUNT", "attr_type": "INPUT", "attr_data_type": "FLOAT"}
	]
}`

const fixtureSelection = `{
	"selections": [{
		"selection_id": 1,
		"filters": [{"filter_id": 1, "expression": "AMOUNT > 5", "application_level": 0}],
		"output_attrs": [{"attr_code": "AMOUNT", "application_level": 0}],
		"output_settings": {"add_attributes": true}
	}]
}`

const fixtureInput = "id,amount\n1,10\n2,2\n"

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "universe.json"), []byte(fixtureUniverse), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "selection.json"), []byte(fixtureSelection), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input_data.csv"), []byte(fixtureInput), 0o644))
}

func TestRunWritesOutputPerSelection(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFixtures(t, inDir)

	code := run(options{Input: inDir, Output: outDir, Concurrency: 1})
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(outDir, "output_1.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ID,AMOUNT")
	assert.Contains(t, string(data), "1,10")
	assert.NotContains(t, string(data), "2,2")
}

func TestRunReturnsErrorCodeOnMissingInputDir(t *testing.T) {
	code := run(options{Input: filepath.Join(t.TempDir(), "missing"), Output: t.TempDir(), Concurrency: 1})
	assert.Equal(t, 1, code)
}
