// Package ingest reads uploaded spreadsheet and CSV exports into the
// RawRow sequences consumed by the reconciliation engine. The first
// sheet's first line is the header; every following non-empty line
// becomes one RawRow, with empty cells omitted so column presence
// checks work the same for both formats.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fias/marcaciones/internal/reconcile"
)

// ErrNoHeader indicates an input with no header line.
var ErrNoHeader = errors.New("input has no header row")

// ReadWorkbook reads the first sheet of an .xlsx/.xlsm workbook.
func ReadWorkbook(r io.Reader) ([]reconcile.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	return fromCells(rows)
}

// ReadCSV reads delimiter-separated text. The delimiter comes from the
// per-source file configuration (";" for Teams exports, "," for the
// biometric terminal).
func ReadCSV(r io.Reader, delimiter rune) ([]reconcile.RawRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return fromCells(records)
}

// ReadFile dispatches on the uploaded file's extension.
func ReadFile(name string, r io.Reader, csvDelimiter rune) ([]reconcile.RawRow, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return ReadCSV(r, csvDelimiter)
	}
	return ReadWorkbook(r)
}

func fromCells(lines [][]string) ([]reconcile.RawRow, error) {
	if len(lines) == 0 {
		return nil, ErrNoHeader
	}

	header := lines[0]
	out := make([]reconcile.RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := reconcile.RawRow{}
		for j, cell := range line {
			if j >= len(header) {
				break
			}
			name := strings.TrimSpace(header[j])
			if name == "" || cell == "" {
				continue
			}
			row[name] = cell
		}
		if len(row) == 0 {
			continue // blank line
		}
		out = append(out, row)
	}
	return out, nil
}
