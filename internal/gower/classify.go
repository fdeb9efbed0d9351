package gower

import "fmt"

// ClassifyFeatures assigns a FeatureType to every column of t.
// Columns whose storage kind is bool, int, uint or float are Numeric,
// everything else is Categorical. Entries of overrides take precedence
// and must name existing columns.
func ClassifyFeatures(t Table, overrides map[string]FeatureType) (map[string]FeatureType, error) {
	cols := t.Columns()
	types := make(map[string]FeatureType, len(cols))
	for _, c := range cols {
		name := c.Name()
		if _, ok := types[name]; ok {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrShape, name)
		}
		types[name] = inferType(c.Kind())
	}

	for name, ft := range overrides {
		if _, ok := types[name]; !ok {
			return nil, fmt.Errorf("%w: type override for %q", ErrUnknownFeature, name)
		}
		if !ft.Valid() {
			return nil, fmt.Errorf("%w: %s for %q", ErrUnknownType, ft, name)
		}
		types[name] = ft
	}

	for _, c := range cols {
		if types[c.Name()] == Numeric && !c.Kind().Numeric() {
			return nil, fmt.Errorf("%w: %q is stored as %s", ErrNotNumeric, c.Name(), c.Kind())
		}
	}
	return types, nil
}

func inferType(k Kind) FeatureType {
	if k.Numeric() {
		return Numeric
	}
	return Categorical
}
