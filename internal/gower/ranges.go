package gower

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// FeatureRanges computes max - min of every Numeric feature, ignoring missing
// values. A feature without any observed value gets a NaN range; no pair ever
// reads it since every comparison of that feature is missing.
func FeatureRanges(t Table, types map[string]FeatureType) (RangeMap, error) {
	ranges := make(RangeMap)
	for _, c := range t.Columns() {
		ft, ok := types[c.Name()]
		if !ok {
			return nil, fmt.Errorf("%w: no type for %q", ErrUnknownFeature, c.Name())
		}
		if ft != Numeric {
			continue
		}
		ranges[c.Name()] = columnRange(c)
	}
	return ranges, nil
}

func columnRange(c Column) float64 {
	values := observed(c)
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Max(values) - floats.Min(values)
}

// observed returns the numeric view of every non-missing row.
func observed(c Column) []float64 {
	values := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.Missing(i) {
			continue
		}
		values = append(values, c.Float(i))
	}
	return values
}
