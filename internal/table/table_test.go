package table

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mawngo/gower/internal/gower"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sample = `id,age,height,smoker,color,count
a,31,1.80,true,red,0
b,NA,1.65,false,blue,1
c,45,,TRUE,red,1
d,28,1.72,NA,,0
`

func TestReadCSVKinds(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, []string{"id", "age", "height", "smoker", "color", "count"}, f.Names())

	kinds := map[string]gower.Kind{}
	for _, c := range f.Columns() {
		kinds[c.Name()] = c.Kind()
	}
	assert.Equal(t, map[string]gower.Kind{
		"id":     gower.String,
		"age":    gower.Int,
		"height": gower.Float,
		"smoker": gower.Bool,
		"color":  gower.String,
		"count":  gower.Int,
	}, kinds)

	age, err := f.Column("age")
	require.NoError(t, err)
	assert.True(t, age.Missing(1))
	assert.Equal(t, 45.0, age.Float(2))

	height, err := f.Column("height")
	require.NoError(t, err)
	assert.True(t, height.Missing(2))
	assert.Equal(t, "1.65", height.Text(1))

	smoker, err := f.Column("smoker")
	require.NoError(t, err)
	assert.Equal(t, 1.0, smoker.Float(2))
	assert.True(t, smoker.Missing(3))

	color, err := f.Column("color")
	require.NoError(t, err)
	assert.True(t, color.Equal(0, 2))
	assert.False(t, color.Equal(0, 1))
	assert.True(t, color.Missing(3))
	assert.True(t, math.IsNaN(color.Float(0)))
}

func TestReadCSVMissingTokens(t *testing.T) {
	in := "x,y\n1,?\n2,b\n?,c\n"
	f, err := ReadCSV(strings.NewReader(in), WithMissing("?"))
	require.NoError(t, err)

	x, err := f.Column("x")
	require.NoError(t, err)
	assert.Equal(t, gower.Int, x.Kind())
	assert.True(t, x.Missing(2))

	y, err := f.Column("y")
	require.NoError(t, err)
	assert.True(t, y.Missing(0))
	assert.False(t, y.Missing(1))
}

func TestReadCSVDelimiterAndBlankHeader(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a;\n1;x\n"), WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "column2"}, f.Names())
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = ReadCSV(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,a\n1,2\n"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestReadInfinityIsText(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("x\n1\nInf\n"))
	require.NoError(t, err)
	assert.Equal(t, gower.String, f.Columns()[0].Kind())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\tx\n2\ty\n"), 0o644))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"a", "b"}, f.Names())

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	x := excelize.NewFile()
	sheet := "Data"
	require.NoError(t, x.SetSheetName(x.GetSheetName(0), sheet))
	rows := [][]interface{}{
		{"name", "score", "passed", "note"},
		{"a", 1.5, true, "x"},
		{"b", 3, false},
		{"c", nil, true, "y"},
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, x.SetCellValue(sheet, cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, x.SaveAs(path))

	f, err := ReadFile(path, WithSheet(sheet))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	score, err := f.Column("score")
	require.NoError(t, err)
	assert.Equal(t, gower.Float, score.Kind())
	assert.True(t, score.Missing(2))
	assert.Equal(t, 3.0, score.Float(1))

	passed, err := f.Column("passed")
	require.NoError(t, err)
	assert.Equal(t, gower.Bool, passed.Kind())

	note, err := f.Column("note")
	require.NoError(t, err)
	assert.True(t, note.Missing(1))

	_, err = ReadXLSX(path, WithSheet("nope"))
	assert.Error(t, err)
}

func TestReadXLSXWideRow(t *testing.T) {
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]interface{}{"a", "b"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]interface{}{1, 2}))
	require.NoError(t, x.SetSheetRow(sheet, "A3", &[]interface{}{3, 4, 5}))
	path := filepath.Join(t.TempDir(), "wide.xlsx")
	require.NoError(t, x.SaveAs(path))

	_, err := ReadXLSX(path)
	assert.ErrorIs(t, err, ErrWideRow)
}

func TestFrame(t *testing.T) {
	a := NewInt("a", []int64{1, 2}, nil)
	b := NewUint("b", []uint64{3, 4}, []bool{true})
	f, err := New(a, b)
	require.NoError(t, err)
	assert.True(t, b.Missing(0))
	assert.False(t, b.Missing(1))
	assert.Equal(t, "4", b.Text(1))

	rest, err := f.Drop("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, rest.Names())
	assert.Equal(t, []string{"a", "b"}, f.Names())

	none, err := f.Drop("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, none.Len())

	_, err = f.Drop("c")
	assert.ErrorIs(t, err, ErrNoColumn)
	_, err = f.Column("c")
	assert.ErrorIs(t, err, ErrNoColumn)

	_, err = New(a, NewInt("c", []int64{1}, nil))
	assert.ErrorIs(t, err, ErrRagged)
}

func TestFloatColumnNaNIsMissing(t *testing.T) {
	c := NewFloat("x", []float64{1, math.NaN()}, nil)
	assert.False(t, c.Missing(0))
	assert.True(t, c.Missing(1))
	assert.Equal(t, "1", c.Text(0))
}
