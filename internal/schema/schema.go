// Package schema defines the declarative column contract a delimited file is
// validated against. A Schema is an ordered list of columns; order never
// changes the validation outcome (the structural comparison is set-based) but
// is preserved so error reporting stays deterministic across runs.
package schema

// CheckFunc is a caller-supplied semantic check for a single cell value. It
// receives the trimmed raw text and reports whether the value is acceptable.
// A non-nil error means the check itself failed (as opposed to rejecting the
// value); the validator converts either outcome into a custom-kind error and
// never lets it escape the run.
type CheckFunc func(value string) (bool, error)

// Column describes the expected shape of a single column.
type Column struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`

	// Required and Nullable are tri-state so a schema file can leave them
	// unset. When both are absent the column is required. When only Nullable
	// is given, required = !nullable. When both are given they must be
	// logical complements (the config linter flags contradictions).
	Required *bool `json:"required,omitempty"`
	Nullable *bool `json:"nullable,omitempty"`

	// Enum restricts non-empty values to an exact-match list. It compiles to
	// a custom check, so violations surface as custom-kind errors.
	Enum []string `json:"enum,omitempty"`

	// Pattern is an optional RE2 expression a non-empty value must match.
	// Like Enum it runs as a custom check.
	Pattern string `json:"pattern,omitempty"`

	// Check is a programmatic custom validator. It is not representable in a
	// schema file; callers constructing schemas in code set it directly.
	Check CheckFunc `json:"-"`
}

// IsRequired resolves the tri-state Required/Nullable pair into the effective
// required flag for this column.
func (c Column) IsRequired() bool {
	if c.Required != nil {
		return *c.Required
	}
	if c.Nullable != nil {
		return !*c.Nullable
	}
	return true
}

// Schema is the full contract for one file.
type Schema struct {
	Name    string   `json:"name,omitempty"`
	Columns []Column `json:"columns"`
}

// ColumnNames returns the declared column names in schema order.
func (s Schema) ColumnNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// Bool is a convenience for building tri-state flags in literal schemas.
func Bool(v bool) *bool { return &v }
