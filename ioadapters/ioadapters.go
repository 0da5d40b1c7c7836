// Package ioadapters names the two out-of-scope external collaborators
// of spec.md §1 (the CSV reader and writer) as Go interfaces, and ships
// one minimal concrete implementation of each built on encoding/csv so
// that cmd/slct is runnable end to end. Neither implementation attempts
// the streaming, encoding-validation, or error-recovery a production
// file-transfer/session-management layer would add — those remain
// explicitly out of scope (spec.md §1).
package ioadapters

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/errs"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/shaper"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

// TableReader loads the input row set.
type TableReader interface {
	ReadTable(path string) (*rowset.RowSet, error)
}

// TableWriter flushes one selection's shaped output.
type TableWriter interface {
	WriteTable(path string, cols []shaper.Column) error
}

// CSVReader is the concrete TableReader: standard comma-separated, a
// required header row, column names matched case-insensitively by
// upper-casing (spec.md §6).
type CSVReader struct{}

// ReadTable parses path into a RowSet whose columns are named by the
// upper-cased header and whose cells are dynamically typed: a cell that
// parses as a decimal is a number, an empty cell is null, everything
// else is a string (spec.md §3's dynamically typed row values).
func (CSVReader) ReadTable(path string) (*rowset.RowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.DataError.New("cannot open input CSV: " + err.Error())
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errs.DataError.New("cannot read input CSV header: " + err.Error())
	}
	for i, h := range header {
		header[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	var raw [][]string
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		raw = append(raw, row)
	}

	rs := rowset.New(len(raw))
	for ci, name := range header {
		col := make([]value.Value, len(raw))
		for ri, row := range raw {
			if ci < len(row) {
				col[ri] = value.ParseCell(strings.TrimSpace(row[ci]))
			} else {
				col[ri] = value.NullValue
			}
		}
		if err := rs.AppendColumn(name, col); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// CSVWriter is the concrete TableWriter: UTF-8, newline-terminated rows,
// a header row (spec.md §6).
type CSVWriter struct{}

// WriteTable flushes cols to path as one CSV file.
func (CSVWriter) WriteTable(path string, cols []shaper.Column) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.DataError.New("cannot create output CSV: " + err.Error())
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		return errs.DataError.New("cannot write output CSV header: " + err.Error())
	}

	rowCount := 0
	if len(cols) > 0 {
		rowCount = len(cols[0].Values)
	}
	for r := 0; r < rowCount; r++ {
		record := make([]string, len(cols))
		for c := range cols {
			record[c] = cols[c].Values[r].String()
		}
		if err := w.Write(record); err != nil {
			return errs.DataError.New("cannot write output CSV row: " + err.Error())
		}
	}
	w.Flush()
	return w.Error()
}
