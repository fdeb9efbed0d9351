// Package gower computes Gower (1971) dissimilarities between the rows of a
// mixed-type table.
//
// For rows i and j the distance is
//
//	d(i, j) = Σ w_k δ_k d_k / Σ w_k δ_k
//
// where δ_k is 0 when feature k is missing in either row (or, for asymmetric
// binary features, absent in both) and d_k is the range-normalized absolute
// difference for numeric features or a 0/1 mismatch otherwise.
//
// A pair without any comparable feature has distance NaN. Constant numeric
// features follow the configured ZeroRangePolicy.
package gower
