package gower

import (
	"fmt"
	"math"
	"strconv"
)

// feature is the read-only view of one column shared by every pair.
type feature struct {
	name    string
	ftype   FeatureType
	weight  float64
	span    float64
	skip    bool
	col     Column
	missing []bool
	values  []float64 // Numeric only
	present []bool    // AsymmetricBinary only
}

func newFeature(c Column, ft FeatureType, weight, span float64) (*feature, error) {
	n := c.Len()
	f := &feature{
		name:    c.Name(),
		ftype:   ft,
		weight:  weight,
		span:    span,
		col:     c,
		missing: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		f.missing[i] = c.Missing(i)
	}

	switch ft {
	case Numeric:
		f.values = make([]float64, n)
		for i := 0; i < n; i++ {
			if f.missing[i] {
				continue
			}
			f.values[i] = c.Float(i)
			if !finite(f.values[i]) {
				return nil, fmt.Errorf("%w: %q has value %s", ErrNotNumeric, f.name, c.Text(i))
			}
		}
	case SymmetricBinary:
		if err := twoValued(c, f.missing); err != nil {
			return nil, err
		}
	case AsymmetricBinary:
		f.present = make([]bool, n)
		for i := 0; i < n; i++ {
			if f.missing[i] {
				continue
			}
			v, err := truth(c, i)
			if err != nil {
				return nil, err
			}
			f.present[i] = v
		}
	}
	return f, nil
}

// twoValued checks that the observed values of c take at most two distinct values.
func twoValued(c Column, missing []bool) error {
	var seen []int
	for i := range missing {
		if missing[i] {
			continue
		}
		known := false
		for _, j := range seen {
			if c.Equal(i, j) {
				known = true
				break
			}
		}
		if known {
			continue
		}
		if len(seen) == 2 {
			return fmt.Errorf("%w: %q has a third value %q", ErrNotBinary, c.Name(), c.Text(i))
		}
		seen = append(seen, i)
	}
	return nil
}

// truth reads row i of a binary column: 0/1 for numeric storage,
// strconv.ParseBool forms for strings.
func truth(c Column, i int) (bool, error) {
	if !c.Kind().Numeric() {
		v, err := strconv.ParseBool(c.Text(i))
		if err != nil {
			return false, fmt.Errorf("%w: %q has value %q", ErrNotBinary, c.Name(), c.Text(i))
		}
		return v, nil
	}
	switch c.Float(i) {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%w: %q has value %s", ErrNotBinary, c.Name(), c.Text(i))
}

// valid is the delta indicator of the feature for rows i and j.
func (f *feature) valid(i, j int) bool {
	if f.missing[i] || f.missing[j] {
		return false
	}
	switch f.ftype {
	case Numeric:
		return !f.skip
	case AsymmetricBinary:
		return f.present[i] || f.present[j]
	}
	return true
}

// distance is the per-feature dissimilarity of rows i and j, in [0, 1].
func (f *feature) distance(i, j int) float64 {
	switch f.ftype {
	case Numeric:
		if f.span == 0 {
			return 0
		}
		return math.Abs(f.values[i]-f.values[j]) / f.span
	case Categorical, SymmetricBinary:
		return mismatch(f.col.Equal(i, j))
	case AsymmetricBinary:
		return mismatch(f.present[i] == f.present[j])
	}
	panic(fmt.Sprintf("gower: unhandled feature type %s", f.ftype))
}

func mismatch(equal bool) float64 {
	if equal {
		return 0
	}
	return 1
}

// sum is the running weighted numerator and denominator of a pair.
type sum struct {
	num, den float64
}

func (s sum) add(weight, d float64) sum {
	return sum{num: s.num + weight*d, den: s.den + weight}
}

// value is the weighted mean, NaN when no feature was comparable.
func (s sum) value() float64 {
	if s.den == 0 {
		return math.NaN()
	}
	return s.num / s.den
}
