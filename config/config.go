// Package config holds the well-known file names of a run's input/
// output directories as a small struct, not module globals (Design
// Notes §9: "File-name constants belong in a small configuration
// struct, not module globals").
package config

import (
	"fmt"
	"path/filepath"
)

// Files names the three well-known input files (spec.md §6) and the
// output file naming template.
type Files struct {
	InputData      string
	Universe       string
	Selection      string
	OutputTemplate string
}

// Default returns the well-known file names of spec.md §6.
func Default() Files {
	return Files{
		InputData:      "input_data.csv",
		Universe:       "universe.json",
		Selection:      "selection.json",
		OutputTemplate: "output_%d.csv",
	}
}

// InputDataPath joins dir with the input CSV's well-known name.
func (f Files) InputDataPath(dir string) string { return filepath.Join(dir, f.InputData) }

// UniversePath joins dir with universe.json's well-known name.
func (f Files) UniversePath(dir string) string { return filepath.Join(dir, f.Universe) }

// SelectionPath joins dir with selection.json's well-known name.
func (f Files) SelectionPath(dir string) string { return filepath.Join(dir, f.Selection) }

// OutputPath joins dir with one selection's output file name
// (spec.md §6: "output_{selection_id}.csv").
func (f Files) OutputPath(dir string, selectionID int) string {
	return filepath.Join(dir, fmt.Sprintf(f.OutputTemplate, selectionID))
}
