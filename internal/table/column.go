package table

import (
	"math"
	"strconv"

	"github.com/mawngo/gower/internal/gower"
)

type column[T comparable] struct {
	name    string
	values  []T
	missing []bool
}

func newColumn[T comparable](name string, values []T, missing []bool) column[T] {
	mask := make([]bool, len(values))
	copy(mask, missing)
	return column[T]{name: name, values: values, missing: mask}
}

func (c *column[T]) Name() string {
	return c.name
}

func (c *column[T]) Len() int {
	return len(c.values)
}

func (c *column[T]) Missing(i int) bool {
	return c.missing[i]
}

func (c *column[T]) Equal(i, j int) bool {
	return c.values[i] == c.values[j]
}

// BoolColumn stores true/false values.
type BoolColumn struct {
	column[bool]
}

// NewBool creates a bool column. missing may be nil.
func NewBool(name string, values []bool, missing []bool) *BoolColumn {
	return &BoolColumn{newColumn(name, values, missing)}
}

func (c *BoolColumn) Kind() gower.Kind {
	return gower.Bool
}

func (c *BoolColumn) Float(i int) float64 {
	if c.values[i] {
		return 1
	}
	return 0
}

func (c *BoolColumn) Text(i int) string {
	return strconv.FormatBool(c.values[i])
}

// IntColumn stores signed integers.
type IntColumn struct {
	column[int64]
}

// NewInt creates a signed integer column. missing may be nil.
func NewInt(name string, values []int64, missing []bool) *IntColumn {
	return &IntColumn{newColumn(name, values, missing)}
}

func (c *IntColumn) Kind() gower.Kind {
	return gower.Int
}

func (c *IntColumn) Float(i int) float64 {
	return float64(c.values[i])
}

func (c *IntColumn) Text(i int) string {
	return strconv.FormatInt(c.values[i], 10)
}

// UintColumn stores unsigned integers.
type UintColumn struct {
	column[uint64]
}

// NewUint creates an unsigned integer column. missing may be nil.
func NewUint(name string, values []uint64, missing []bool) *UintColumn {
	return &UintColumn{newColumn(name, values, missing)}
}

func (c *UintColumn) Kind() gower.Kind {
	return gower.Uint
}

func (c *UintColumn) Float(i int) float64 {
	return float64(c.values[i])
}

func (c *UintColumn) Text(i int) string {
	return strconv.FormatUint(c.values[i], 10)
}

// FloatColumn stores floating point values. NaN is always missing.
type FloatColumn struct {
	column[float64]
}

// NewFloat creates a float column. missing may be nil.
func NewFloat(name string, values []float64, missing []bool) *FloatColumn {
	c := newColumn(name, values, missing)
	for i, v := range values {
		if math.IsNaN(v) {
			c.missing[i] = true
		}
	}
	return &FloatColumn{c}
}

func (c *FloatColumn) Kind() gower.Kind {
	return gower.Float
}

func (c *FloatColumn) Float(i int) float64 {
	return c.values[i]
}

func (c *FloatColumn) Text(i int) string {
	return strconv.FormatFloat(c.values[i], 'g', -1, 64)
}

// StringColumn stores arbitrary text.
type StringColumn struct {
	column[string]
}

// NewString creates a string column. missing may be nil.
func NewString(name string, values []string, missing []bool) *StringColumn {
	return &StringColumn{newColumn(name, values, missing)}
}

func (c *StringColumn) Kind() gower.Kind {
	return gower.String
}

func (c *StringColumn) Float(int) float64 {
	return math.NaN()
}

func (c *StringColumn) Text(i int) string {
	return c.values[i]
}
