package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPaths(t *testing.T) {
	f := Default()
	assert.Equal(t, "/tmp/input_data.csv", f.InputDataPath("/tmp"))
	assert.Equal(t, "/tmp/universe.json", f.UniversePath("/tmp"))
	assert.Equal(t, "/tmp/selection.json", f.SelectionPath("/tmp"))
	assert.Equal(t, "/tmp/output_7.csv", f.OutputPath("/tmp", 7))
}
