package table

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mawngo/gower/internal/gower"
)

var (
	// ErrRagged indicates columns of differing lengths.
	ErrRagged = errors.New("table: all columns must have the same length")
	// ErrDuplicateColumn indicates two columns sharing a name.
	ErrDuplicateColumn = errors.New("table: duplicate column name")
	// ErrNoColumn indicates a lookup of a column that does not exist.
	ErrNoColumn = errors.New("table: no such column")
)

// Frame is an in-memory column-typed table.
type Frame struct {
	rows  int
	cols  []gower.Column
	index map[string]int
}

// New creates a Frame from columns of equal length.
func New(cols ...gower.Column) (*Frame, error) {
	f := &Frame{
		cols:  cols,
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrRagged, c.Name(), c.Len(), f.rows)
		}
		if _, ok := f.index[c.Name()]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name())
		}
		f.index[c.Name()] = i
	}
	return f, nil
}

func (f *Frame) Len() int {
	return f.rows
}

func (f *Frame) Columns() []gower.Column {
	return f.cols
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Column returns the named column.
func (f *Frame) Column(name string) (gower.Column, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return f.cols[i], nil
}

// Drop returns a Frame without the named columns. The receiver is unchanged.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	for _, name := range names {
		if _, ok := f.index[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
		}
	}
	kept := make([]gower.Column, 0, len(f.cols))
	for _, c := range f.cols {
		if !slices.Contains(names, c.Name()) {
			kept = append(kept, c)
		}
	}
	out, err := New(kept...)
	if err != nil {
		return nil, err
	}
	if len(kept) == 0 {
		out.rows = f.rows
	}
	return out, nil
}
