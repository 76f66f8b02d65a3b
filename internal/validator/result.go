package validator

import (
	"encoding/json"

	"github.com/zeebo/xxh3"
)

// Kind classifies a validation error. file and structural are early-halt
// classes: the pipeline stops as soon as one is recorded. type, required and
// custom are row-local and never stop the run on their own.
type Kind string

const (
	KindFile       Kind = "file"
	KindStructural Kind = "structural"
	KindType       Kind = "type"
	KindRequired   Kind = "required"
	KindCustom     Kind = "custom"
)

// kinds lists every Kind in reporting order. Summary maps are seeded with all
// of them so consumers never have to nil-check a kind.
var kinds = [...]Kind{KindFile, KindStructural, KindType, KindRequired, KindCustom}

// Error is a single validation finding. Line 0 means file level, 1 the header
// row, and >= 2 a data row. Column is empty for findings not tied to a
// column. Value carries the offending raw cell text when one exists. Errors
// are append-only; none is mutated after being added to a Result.
type Error struct {
	Line    int    `json:"line"`
	Column  string `json:"column"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Result is the complete outcome of one validation run. It is created empty
// when a run starts, grows monotonically (errors appended, counters
// incremented) while the stages execute, and is immutable once returned.
//
// Invariants, held at every point of a run:
//
//	Valid == (ErrorCount == 0)
//	ErrorCount == len(Errors) == sum over Summary
//	RowsValidated <= TotalRows
type Result struct {
	Valid         bool         `json:"valid"`
	FilePath      string       `json:"file_path"`
	TotalRows     int          `json:"total_rows"`
	RowsValidated int          `json:"rows_validated"`
	ErrorCount    int          `json:"error_count"`
	Summary       map[Kind]int `json:"summary"`
	Errors        []Error      `json:"errors"`
}

// newResult returns an empty, valid Result with all summary kinds present.
func newResult(path string) Result {
	summary := make(map[Kind]int, len(kinds))
	for _, k := range kinds {
		summary[k] = 0
	}
	return Result{
		Valid:    true,
		FilePath: path,
		Summary:  summary,
	}
}

// addError appends a finding and keeps the counters in step with it.
func (r *Result) addError(line int, column string, kind Kind, message, value string) {
	r.Errors = append(r.Errors, Error{
		Line:    line,
		Column:  column,
		Kind:    kind,
		Message: message,
		Value:   value,
	})
	r.ErrorCount++
	r.Summary[kind]++
	r.Valid = false
}

// Fingerprint returns a cheap content hash of the Result over its canonical
// JSON encoding. Two runs over the same file and schema produce the same
// fingerprint, which makes it useful for change detection between runs and
// for asserting idempotence in tests.
func (r Result) Fingerprint() uint64 {
	b, err := json.Marshal(r)
	if err != nil {
		// Result contains only marshalable fields; this cannot happen.
		return 0
	}
	return xxh3.Hash(b)
}
