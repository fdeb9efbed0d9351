package gower

import (
	"fmt"
	"math"
)

// FeatureType is the semantic type of a feature, driving how two values are compared.
type FeatureType uint8

const (
	// Numeric features contribute |x-y| / range.
	Numeric FeatureType = iota
	// Categorical features contribute 0 on equal values and 1 otherwise.
	Categorical
	// SymmetricBinary features behave like Categorical.
	SymmetricBinary
	// AsymmetricBinary features ignore pairs where both values are absent.
	AsymmetricBinary
)

var featureTypeNames = [...]string{
	Numeric:          "numeric",
	Categorical:      "categorical",
	SymmetricBinary:  "symmetric-binary",
	AsymmetricBinary: "asymmetric-binary",
}

// Valid reports whether t is one of the recognized feature types.
func (t FeatureType) Valid() bool {
	return int(t) < len(featureTypeNames)
}

func (t FeatureType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("FeatureType(%d)", uint8(t))
	}
	return featureTypeNames[t]
}

// Binary reports whether t is one of the two binary types.
func (t FeatureType) Binary() bool {
	return t == SymmetricBinary || t == AsymmetricBinary
}

// ParseFeatureType converts the text form of a feature type.
func ParseFeatureType(s string) (FeatureType, error) {
	for i, name := range featureTypeNames {
		if name == s {
			return FeatureType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Kind is the storage kind of a column.
type Kind uint8

const (
	Bool Kind = iota
	Int
	Uint
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Numeric reports whether values of this kind have a numeric view.
func (k Kind) Numeric() bool {
	return k <= Float
}

// Column is a single named feature of a Table.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	// Missing reports whether row i has no value.
	Missing(i int) bool
	// Float returns the numeric view of row i, bool true being 1.
	// Columns of kind String return NaN.
	Float(i int) float64
	// Text returns the textual form of row i.
	Text(i int) string
	// Equal reports whether rows i and j hold the same value.
	Equal(i, j int) bool
}

// Table is a rectangular collection of observations over named columns.
// Row order is preserved in the distance matrix; column order fixes the
// summation order of every pair.
type Table interface {
	Len() int
	Columns() []Column
}

// RangeMap maps each numeric feature to max - min over its observed values.
type RangeMap map[string]float64

// ZeroRangePolicy decides how a numeric feature with zero range is compared.
type ZeroRangePolicy uint8

const (
	// ZeroRangeMatch treats the feature as a valid match with distance 0.
	ZeroRangeMatch ZeroRangePolicy = iota
	// ZeroRangeSkip excludes the feature from every pair.
	ZeroRangeSkip
	// ZeroRangeError rejects the table.
	ZeroRangeError
)

var zeroRangeNames = [...]string{
	ZeroRangeMatch: "match",
	ZeroRangeSkip:  "skip",
	ZeroRangeError: "error",
}

func (p ZeroRangePolicy) String() string {
	if int(p) >= len(zeroRangeNames) {
		return fmt.Sprintf("ZeroRangePolicy(%d)", uint8(p))
	}
	return zeroRangeNames[p]
}

// ParseZeroRangePolicy converts the text form of a zero range policy.
func ParseZeroRangePolicy(s string) (ZeroRangePolicy, error) {
	for i, name := range zeroRangeNames {
		if name == s {
			return ZeroRangePolicy(i), nil
		}
	}
	return 0, fmt.Errorf("gower: unknown zero range policy %q", s)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
