package gower

import "errors"

var (
	// ErrEmptyTable indicates the table has no rows.
	ErrEmptyTable = errors.New("gower: table must have at least one row")
	// ErrShape indicates a column whose length differs from the table's.
	ErrShape = errors.New("gower: column length does not match table")
	// ErrUnknownFeature indicates a weight or type override naming a missing column.
	ErrUnknownFeature = errors.New("gower: unknown feature")
	// ErrUnknownType indicates a feature type outside the recognized set.
	ErrUnknownType = errors.New("gower: unknown feature type")
	// ErrInvalidWeight indicates a negative or non-finite weight.
	ErrInvalidWeight = errors.New("gower: weight must be finite and non-negative")
	// ErrZeroRange indicates a constant numeric feature under ZeroRangeError.
	ErrZeroRange = errors.New("gower: numeric feature has zero range")
	// ErrNotBinary indicates a binary-typed feature with more than two values
	// or values without a truth reading.
	ErrNotBinary = errors.New("gower: feature is not binary")
	// ErrNotNumeric indicates a numeric override on a column without a numeric view.
	ErrNotNumeric = errors.New("gower: feature has no numeric values")
)
