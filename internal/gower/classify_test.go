package gower_test

import (
	"math"
	"testing"

	"github.com/mawngo/gower/internal/gower"
	"github.com/mawngo/gower/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFeatures(t *testing.T) {
	frame, err := table.New(
		table.NewBool("b", []bool{true, false}, nil),
		table.NewInt("i", []int64{1, 2}, nil),
		table.NewUint("u", []uint64{1, 2}, nil),
		table.NewFloat("f", []float64{1.5, 2}, nil),
		table.NewString("s", []string{"x", "y"}, nil),
	)
	require.NoError(t, err)

	types, err := gower.ClassifyFeatures(frame, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]gower.FeatureType{
		"b": gower.Numeric,
		"i": gower.Numeric,
		"u": gower.Numeric,
		"f": gower.Numeric,
		"s": gower.Categorical,
	}, types)

	types, err = gower.ClassifyFeatures(frame, map[string]gower.FeatureType{
		"b": gower.AsymmetricBinary,
		"i": gower.Categorical,
		"s": gower.SymmetricBinary,
	})
	require.NoError(t, err)
	assert.Equal(t, gower.AsymmetricBinary, types["b"])
	assert.Equal(t, gower.Categorical, types["i"])
	assert.Equal(t, gower.SymmetricBinary, types["s"])
	assert.Equal(t, gower.Numeric, types["f"])
}

func TestClassifyFeaturesErrors(t *testing.T) {
	frame, err := table.New(table.NewString("s", []string{"x"}, nil))
	require.NoError(t, err)

	_, err = gower.ClassifyFeatures(frame, map[string]gower.FeatureType{"missing": gower.Numeric})
	assert.ErrorIs(t, err, gower.ErrUnknownFeature)
	_, err = gower.ClassifyFeatures(frame, map[string]gower.FeatureType{"s": gower.FeatureType(4)})
	assert.ErrorIs(t, err, gower.ErrUnknownType)
	_, err = gower.ClassifyFeatures(frame, map[string]gower.FeatureType{"s": gower.Numeric})
	assert.ErrorIs(t, err, gower.ErrNotNumeric)
}

func TestFeatureRanges(t *testing.T) {
	frame := referenceTable(t, nil, nil)
	types, err := gower.ClassifyFeatures(frame, nil)
	require.NoError(t, err)

	ranges, err := gower.FeatureRanges(frame, types)
	require.NoError(t, err)
	assert.Equal(t, gower.RangeMap{"a": 3, "b": 4, "c": 7, "d": 10, "e": 13}, ranges)
}

func TestFeatureRangesMissing(t *testing.T) {
	frame, err := table.New(
		table.NewFloat("x", []float64{math.NaN(), -2, 5, math.NaN()}, nil),
		table.NewFloat("empty", []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}, nil),
		table.NewInt("n", []int64{100, 1, 2, 3}, []bool{true, false, false, false}),
	)
	require.NoError(t, err)
	types, err := gower.ClassifyFeatures(frame, nil)
	require.NoError(t, err)

	ranges, err := gower.FeatureRanges(frame, types)
	require.NoError(t, err)
	assert.Equal(t, 7.0, ranges["x"])
	assert.Equal(t, 2.0, ranges["n"])
	assert.True(t, math.IsNaN(ranges["empty"]))
}

func TestFeatureRangesOnlyNumeric(t *testing.T) {
	frame := referenceTable(t, nil, nil)
	types, err := gower.ClassifyFeatures(frame, map[string]gower.FeatureType{"a": gower.Categorical})
	require.NoError(t, err)

	ranges, err := gower.FeatureRanges(frame, types)
	require.NoError(t, err)
	assert.NotContains(t, ranges, "a")
	assert.NotContains(t, ranges, "f")
	assert.Len(t, ranges, 4)

	_, err = gower.FeatureRanges(frame, map[string]gower.FeatureType{"a": gower.Numeric})
	assert.ErrorIs(t, err, gower.ErrUnknownFeature)
}

func TestParseFeatureType(t *testing.T) {
	for _, ft := range []gower.FeatureType{gower.Numeric, gower.Categorical, gower.SymmetricBinary, gower.AsymmetricBinary} {
		parsed, err := gower.ParseFeatureType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, parsed)
	}
	_, err := gower.ParseFeatureType("ordinal")
	assert.ErrorIs(t, err, gower.ErrUnknownType)
	assert.Equal(t, "FeatureType(7)", gower.FeatureType(7).String())
	assert.True(t, gower.AsymmetricBinary.Binary())
	assert.False(t, gower.Categorical.Binary())
}

func TestParseZeroRangePolicy(t *testing.T) {
	p, err := gower.ParseZeroRangePolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, gower.ZeroRangeSkip, p)
	_, err = gower.ParseZeroRangePolicy("ignore")
	assert.Error(t, err)
}
