package gower

import (
	"fmt"
	"maps"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Calculator holds the configuration of a Gower distance computation.
type Calculator struct {
	weights     map[string]float64
	types       map[string]FeatureType
	zeroRange   ZeroRangePolicy
	concurrency int
}

type Option func(*Calculator)

// Model is a table prepared for pairwise comparison: feature types, ranges
// and weights are resolved once and shared read-only by every pair.
type Model struct {
	rows        int
	features    []*feature
	types       map[string]FeatureType
	ranges      RangeMap
	weights     map[string]float64
	concurrency int
}

// NewCalculator create new Calculator. Every feature weighs 1 unless
// overridden.
func NewCalculator(options ...Option) Calculator {
	c := Calculator{
		zeroRange:   ZeroRangeMatch,
		concurrency: runtime.NumCPU(),
	}
	for i := range options {
		options[i](&c)
	}
	return c
}

// WithWeights sets per-feature weights. Features absent from weights keep weight 1.
func WithWeights(weights map[string]float64) Option {
	return func(c *Calculator) {
		c.weights = maps.Clone(weights)
	}
}

// WithTypes overrides the inferred type of the named features.
func WithTypes(types map[string]FeatureType) Option {
	return func(c *Calculator) {
		c.types = maps.Clone(types)
	}
}

// WithZeroRange sets how constant numeric features are handled.
func WithZeroRange(p ZeroRangePolicy) Option {
	return func(c *Calculator) {
		c.zeroRange = p
	}
}

// WithConcurrency sets the number of goroutines building the matrix.
// Values below 1 fall back to the number of CPUs.
func WithConcurrency(n int) Option {
	return func(c *Calculator) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		c.concurrency = n
	}
}

// Distances computes the n x n Gower distance matrix of t.
func (c Calculator) Distances(t Table) (*mat.SymDense, error) {
	m, err := c.Fit(t)
	if err != nil {
		return nil, err
	}
	return m.Matrix(), nil
}

// Fit validates t against the configuration, classifies its features and
// computes the numeric ranges.
func (c Calculator) Fit(t Table) (*Model, error) {
	n := t.Len()
	if n < 1 {
		return nil, ErrEmptyTable
	}
	if int(c.zeroRange) >= len(zeroRangeNames) {
		return nil, fmt.Errorf("gower: unknown zero range policy %s", c.zeroRange)
	}
	cols := t.Columns()
	for _, col := range cols {
		if col.Len() != n {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrShape, col.Name(), col.Len(), n)
		}
	}

	types, err := ClassifyFeatures(t, c.types)
	if err != nil {
		return nil, err
	}
	weights, err := c.resolveWeights(cols, types)
	if err != nil {
		return nil, err
	}
	ranges, err := FeatureRanges(t, types)
	if err != nil {
		return nil, err
	}

	m := &Model{
		rows:        n,
		features:    make([]*feature, 0, len(cols)),
		types:       types,
		ranges:      ranges,
		weights:     weights,
		concurrency: max(1, c.concurrency),
	}
	for _, col := range cols {
		name := col.Name()
		f, err := newFeature(col, types[name], weights[name], ranges[name])
		if err != nil {
			return nil, err
		}
		if f.ftype == Numeric && f.span == 0 {
			switch c.zeroRange {
			case ZeroRangeSkip:
				f.skip = true
			case ZeroRangeError:
				if len(observed(col)) > 1 {
					return nil, fmt.Errorf("%w: %q", ErrZeroRange, name)
				}
			}
		}
		m.features = append(m.features, f)
	}
	return m, nil
}

func (c Calculator) resolveWeights(cols []Column, types map[string]FeatureType) (map[string]float64, error) {
	for name, w := range c.weights {
		if _, ok := types[name]; !ok {
			return nil, fmt.Errorf("%w: weight for %q", ErrUnknownFeature, name)
		}
		if !finite(w) || w < 0 {
			return nil, fmt.Errorf("%w: %q = %v", ErrInvalidWeight, name, w)
		}
	}
	weights := make(map[string]float64, len(cols))
	for _, col := range cols {
		w, ok := c.weights[col.Name()]
		if !ok {
			w = 1
		}
		weights[col.Name()] = w
	}
	return weights, nil
}

// Len returns the number of observations.
func (m *Model) Len() int {
	return m.rows
}

// Types returns the resolved feature types.
func (m *Model) Types() map[string]FeatureType {
	return maps.Clone(m.types)
}

// Ranges returns the range of every numeric feature.
func (m *Model) Ranges() RangeMap {
	return maps.Clone(m.ranges)
}

// Weights returns the weight of every feature, defaults included.
func (m *Model) Weights() map[string]float64 {
	return maps.Clone(m.weights)
}

// Distance returns the Gower distance between rows i and j: the weighted
// mean of per-feature distances over the features comparable for the pair.
// It is NaN when no feature is comparable. Distance(i, i) is always 0.
func (m *Model) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	var s sum
	for _, f := range m.features {
		if !f.valid(i, j) {
			continue
		}
		s = s.add(f.weight, f.distance(i, j))
	}
	return s.value()
}

// Matrix computes the distance of every pair of rows. Rows are split across
// goroutines by stride; each pair is computed once and mirrored.
func (m *Model) Matrix() *mat.SymDense {
	n := m.rows
	d := mat.NewSymDense(n, nil)
	concurrency := min(m.concurrency, n)

	ch := make(chan int, concurrency)
	for num := range concurrency {
		go func() {
			defer func() {
				ch <- num
			}()
			for i := num; i < n; i += concurrency {
				for j := i + 1; j < n; j++ {
					d.SetSym(i, j, m.Distance(i, j))
				}
			}
		}()
	}
	for range concurrency {
		<-ch
	}
	return d
}
