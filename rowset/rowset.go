// Package rowset implements the row set (spec.md §3 "Row set"): an
// ordered table of records keyed by stable row index, to which derived
// columns are appended during a selection's execution. Columns are
// never mutated in place, only appended, so a RowSet can be shared by
// reference across parallel selection workers (spec.md §5) as long as
// each worker appends into its own Clone.
package rowset

import (
	"fmt"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/errs"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

// RowSet is a column-major table: each column is a slice of exactly Len
// values, one per row, addressed by name.
type RowSet struct {
	rows  int
	order []string
	cols  map[string][]value.Value
}

// New creates an empty RowSet with the given row count. Columns are
// added with AppendColumn.
func New(rows int) *RowSet {
	return &RowSet{rows: rows, cols: make(map[string][]value.Value)}
}

// Len returns the number of rows.
func (rs *RowSet) Len() int { return rs.rows }

// Has reports whether a column has been materialized.
func (rs *RowSet) Has(name string) bool {
	_, ok := rs.cols[name]
	return ok
}

// ColumnOrder returns the materialized column names in append order.
func (rs *RowSet) ColumnOrder() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Column returns the values of a materialized column.
func (rs *RowSet) Column(name string) ([]value.Value, error) {
	col, ok := rs.cols[name]
	if !ok {
		return nil, errs.DataError.New(fmt.Sprintf("column %q not found", name))
	}
	return col, nil
}

// Get returns a single cell.
func (rs *RowSet) Get(name string, row int) (value.Value, error) {
	col, err := rs.Column(name)
	if err != nil {
		return value.Value{}, err
	}
	if row < 0 || row >= len(col) {
		return value.Value{}, errs.DataError.New(fmt.Sprintf("row %d out of range for column %q", row, name))
	}
	return col[row], nil
}

// AppendColumn materializes a new column. Re-appending an existing
// column name is a no-op if the values are identical, and a
// ColumnConflict otherwise (spec.md §4.5: "idempotent on a given (row
// set, column name)").
func (rs *RowSet) AppendColumn(name string, vals []value.Value) error {
	if len(vals) != rs.rows {
		return errs.DataError.New(fmt.Sprintf("column %q has %d values, want %d", name, len(vals), rs.rows))
	}
	if existing, ok := rs.cols[name]; ok {
		if sameColumn(existing, vals) {
			return nil
		}
		return errs.ColumnConflict.New(name, "differing definition materialized twice")
	}
	rs.cols[name] = vals
	rs.order = append(rs.order, name)
	return nil
}

// Clone returns a RowSet sharing this one's materialized columns by
// reference (columns are never mutated after AppendColumn, only added),
// suitable as a private working copy for one selection's execution
// (spec.md §5: "each worker materializes derived columns into its own
// side table").
func (rs *RowSet) Clone() *RowSet {
	cols := make(map[string][]value.Value, len(rs.cols))
	for k, v := range rs.cols {
		cols[k] = v
	}
	order := make([]string, len(rs.order))
	copy(order, rs.order)
	return &RowSet{rows: rs.rows, order: order, cols: cols}
}

func sameColumn(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !value.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
