// Package shaper implements the output shaper (spec.md §4.6, C7):
// projecting the requested columns and, optionally, filtering to
// surviving rows of a fully-executed plan.
package shaper

import (
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/planner"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/selection"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

// Column is one output column: a name and its projected values, one per
// surviving row.
type Column struct {
	Name   string
	Values []value.Value
}

// Shape projects rs according to settings, producing columns in the
// order of spec.md §4.6: key, then attributes, then filters, then
// failed_filters, then is_selected.
func Shape(plan *planner.Plan, keyCode string, settings selection.OutputSettings, rs *rowset.RowSet) ([]Column, error) {
	special := make(map[string]bool)
	special[keyCode] = true
	special[plan.FinalColumn] = true
	special[plan.FailedFilters] = true
	for _, c := range plan.LevelMaskColumns {
		special[c] = true
	}
	for _, c := range plan.FilterColumns {
		special[c] = true
	}

	names := []string{keyCode}
	if settings.AddAttributes {
		for _, c := range rs.ColumnOrder() {
			if special[c] {
				continue
			}
			names = append(names, c)
		}
	}
	if settings.AddFilters {
		names = append(names, plan.FilterColumns...)
		if settings.AddFailedFilters {
			names = append(names, plan.FailedFilters)
		}
	}
	if settings.ShowAll {
		names = append(names, plan.FinalColumn)
	}

	rowIdx, err := selectedRows(plan, settings, rs)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, len(names))
	for ci, name := range names {
		vals, err := rs.Column(name)
		if err != nil {
			return nil, err
		}
		projected := make([]value.Value, len(rowIdx))
		for j, ri := range rowIdx {
			projected[j] = vals[ri]
		}
		cols[ci] = Column{Name: name, Values: projected}
	}
	return cols, nil
}

// selectedRows returns the row indices to emit: every row when
// show_all, otherwise only rows where is_selected is true. A selection
// with no filters at all trivially selects every row, since is_selected
// is the empty conjunction (spec.md §9's resolved Open Question).
func selectedRows(plan *planner.Plan, settings selection.OutputSettings, rs *rowset.RowSet) ([]int, error) {
	n := rs.Len()
	if settings.ShowAll {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	isSelected, err := rs.Column(plan.FinalColumn)
	if err != nil {
		return nil, err
	}
	var idx []int
	for i := 0; i < n; i++ {
		if isSelected[i].Truthy() {
			idx = append(idx, i)
		}
	}
	return idx, nil
}
