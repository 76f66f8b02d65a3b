// Package report renders a finished validation Result as human-readable
// text. It is a pure consumer: it reads the Result, writes to the supplied
// writer, and holds no validation logic of its own.
package report

import (
	"fmt"
	"io"
	"strings"

	"csvlint/internal/validator"
)

// defaultMaxDisplay caps the number of individual errors verbose mode prints
// when the caller does not choose a limit.
const defaultMaxDisplay = 100

// rule widths for the section separators.
const ruleWidth = 70

// summaryOrder fixes the order error kinds appear in the summary table.
var summaryOrder = []validator.Kind{
	validator.KindFile,
	validator.KindStructural,
	validator.KindType,
	validator.KindRequired,
	validator.KindCustom,
}

// summaryLabels maps kinds to their display names.
var summaryLabels = map[validator.Kind]string{
	validator.KindFile:       "File Errors",
	validator.KindStructural: "Structural Errors",
	validator.KindType:       "Type Errors",
	validator.KindRequired:   "Required Errors",
	validator.KindCustom:     "Custom Errors",
}

// Renderer formats Results. The zero value prints the summary only.
type Renderer struct {
	// Verbose adds per-error detail lines, capped at MaxDisplay.
	Verbose bool

	// MaxDisplay caps verbose output; 0 selects the default of 100.
	MaxDisplay int
}

// Render writes the report for res to w. The Result is taken by value and
// never mutated.
func (r Renderer) Render(w io.Writer, res validator.Result) {
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(w, "\n%s\n", heavy)
	fmt.Fprintln(w, "CSV VALIDATION REPORT")
	fmt.Fprintln(w, heavy)
	fmt.Fprintf(w, "File: %s\n", res.FilePath)
	fmt.Fprintf(w, "Status: %s\n", status(res.Valid))
	fmt.Fprintf(w, "Total Rows: %d\n", res.TotalRows)
	fmt.Fprintf(w, "Rows Validated: %d\n", res.RowsValidated)
	fmt.Fprintf(w, "Total Errors: %d\n", res.ErrorCount)

	if res.ErrorCount > 0 {
		fmt.Fprintf(w, "\n%s\n", light)
		fmt.Fprintln(w, "ERROR SUMMARY")
		fmt.Fprintln(w, light)
		for _, k := range summaryOrder {
			if n := res.Summary[k]; n > 0 {
				fmt.Fprintf(w, "%s: %d\n", summaryLabels[k], n)
			}
		}

		if r.Verbose && len(res.Errors) > 0 {
			limit := r.MaxDisplay
			if limit <= 0 {
				limit = defaultMaxDisplay
			}

			fmt.Fprintf(w, "\n%s\n", light)
			fmt.Fprintln(w, "DETAILED ERRORS")
			fmt.Fprintln(w, light)

			shown := res.Errors
			if len(shown) > limit {
				shown = shown[:limit]
			}
			for i, e := range shown {
				fmt.Fprintf(w, "\n%d. Line %d, Column '%s'\n", i+1, e.Line, e.Column)
				fmt.Fprintf(w, "   Type: %s\n", e.Kind)
				fmt.Fprintf(w, "   Message: %s\n", e.Message)
				if e.Value != "" {
					fmt.Fprintf(w, "   Value: %s\n", e.Value)
				}
			}
			if rest := len(res.Errors) - limit; rest > 0 {
				fmt.Fprintf(w, "\n... and %d more errors\n", rest)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", heavy)
}

func status(valid bool) string {
	if valid {
		return "VALID"
	}
	return "INVALID"
}
