package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mawngo/gower/internal/gower"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoHeader indicates an input without a header row.
	ErrNoHeader = errors.New("table: input has no header row")
	// ErrWideRow indicates a spreadsheet row with more cells than the header.
	ErrWideRow = errors.New("table: row is wider than the header")
)

// DefaultMissing are the cell values read as missing.
var DefaultMissing = []string{"", "NA", "NaN", "null"}

type reader struct {
	missing   []string
	delimiter rune
	sheet     string
}

type ReadOption func(*reader)

// WithMissing sets the cell values read as missing. Cells are trimmed first.
func WithMissing(tokens ...string) ReadOption {
	return func(r *reader) {
		r.missing = tokens
	}
}

// WithDelimiter sets the CSV field delimiter.
func WithDelimiter(d rune) ReadOption {
	return func(r *reader) {
		r.delimiter = d
	}
}

// WithSheet selects the spreadsheet sheet. The first sheet is used by default.
func WithSheet(name string) ReadOption {
	return func(r *reader) {
		r.sheet = name
	}
}

func newReader(options []ReadOption) *reader {
	r := &reader{
		missing:   DefaultMissing,
		delimiter: ',',
	}
	for i := range options {
		options[i](r)
	}
	return r
}

// ReadFile loads a table from path. Files ending in .xlsx are read as
// spreadsheets, .tsv as tab separated, anything else as CSV.
func ReadFile(path string, options ...ReadOption) (*Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, options...)
	case ".tsv":
		options = append([]ReadOption{WithDelimiter('\t')}, options...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, options...)
}

// ReadCSV loads a table whose first record is the header.
func ReadCSV(in io.Reader, options ...ReadOption) (*Frame, error) {
	r := newReader(options)
	cr := csv.NewReader(in)
	cr.Comma = r.delimiter
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: read csv: %w", err)
	}
	return r.build(records)
}

// ReadXLSX loads a table from a spreadsheet whose first row is the header.
func ReadXLSX(path string, options ...ReadOption) (*Frame, error) {
	r := newReader(options)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: open xlsx: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("table: read sheet %q: %w", sheet, err)
	}
	if len(rows) > 0 {
		// GetRows drops trailing empty cells.
		width := len(rows[0])
		for i := range rows {
			if len(rows[i]) > width {
				return nil, fmt.Errorf("%w: sheet %q row %d has %d cells, header has %d", ErrWideRow, sheet, i+1, len(rows[i]), width)
			}
			for len(rows[i]) < width {
				rows[i] = append(rows[i], "")
			}
		}
	}
	return r.build(rows)
}

func (r *reader) build(records [][]string) (*Frame, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := records[0]
	body := records[1:]
	cols := make([]gower.Column, len(header))
	cells := make([]string, len(body))
	for k, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "column" + strconv.Itoa(k+1)
		}
		for i, rec := range body {
			cells[i] = strings.TrimSpace(rec[k])
		}
		cols[k] = r.parse(name, cells)
	}
	return New(cols...)
}

// parse converts cells to the narrowest column kind holding every
// non-missing value: int, then float, then bool, then string.
func (r *reader) parse(name string, cells []string) gower.Column {
	missing := make([]bool, len(cells))
	observed := 0
	for i, s := range cells {
		missing[i] = slices.Contains(r.missing, s)
		if !missing[i] {
			observed++
		}
	}
	if observed == 0 {
		return NewString(name, slices.Clone(cells), missing)
	}

	if ints, ok := parseAll(cells, missing, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}); ok {
		return NewInt(name, ints, missing)
	}
	if floats, ok := parseAll(cells, missing, func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err == nil && math.IsInf(v, 0) {
			err = fmt.Errorf("table: infinite value %q", s)
		}
		return v, err
	}); ok {
		for i := range floats {
			if missing[i] {
				floats[i] = math.NaN()
			}
		}
		return NewFloat(name, floats, missing)
	}
	if bools, ok := parseAll(cells, missing, parseBool); ok {
		return NewBool(name, bools, missing)
	}
	return NewString(name, slices.Clone(cells), missing)
}

func parseAll[T any](cells []string, missing []bool, parse func(string) (T, error)) ([]T, bool) {
	out := make([]T, len(cells))
	for i, s := range cells {
		if missing[i] {
			continue
		}
		v, err := parse(s)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// parseBool accepts only spelled-out booleans so 0/1 columns stay numeric.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("table: not a bool: %q", s)
}
