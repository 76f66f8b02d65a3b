// This file adds a lightweight linter for Document values. It performs
// static checks over a decoded Document and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests before
// any file is validated.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"csvlint/internal/textenc"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block a run.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users
	// but does not necessarily block a run.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single lint finding for a Document.
//
// Path is a dotted path into the document (e.g. "options.delimiter",
// "schema.columns[1].pattern"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a run document. It does not mutate
// the document; callers decide whether warnings are fatal.
func Validate(d Document) []Issue {
	var issues []Issue
	issues = append(issues, validateSchema(d)...)
	issues = append(issues, validateOptions(d.Options)...)
	issues = append(issues, validateReport(d.Report)...)
	return issues
}

// validateSchema checks the column contract for shape problems the validator
// itself would only surface per cell, or not at all.
func validateSchema(d Document) []Issue {
	var issues []Issue

	if len(d.Schema.Columns) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "schema.columns",
			Message:  "schema declares no columns; every row will validate",
		})
		return issues
	}

	seen := make(map[string]int, len(d.Schema.Columns))
	for i, c := range d.Schema.Columns {
		path := fmt.Sprintf("schema.columns[%d]", i)

		if strings.TrimSpace(c.Name) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".name",
				Message:  "column name must not be empty",
			})
		}
		if first, dup := seen[c.Name]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".name",
				Message:  fmt.Sprintf("duplicate column %q (first declared at schema.columns[%d])", c.Name, first),
			})
		} else {
			seen[c.Name] = i
		}

		// required and nullable are complements; flag contradictions where
		// both are given and agree.
		if c.Required != nil && c.Nullable != nil && *c.Required == *c.Nullable {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("required=%v contradicts nullable=%v", *c.Required, *c.Nullable),
			})
		}

		if c.Pattern != "" {
			if _, err := regexp.Compile(c.Pattern); err != nil {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".pattern",
					Message:  fmt.Sprintf("pattern does not compile: %v", err),
				})
			}
		}
	}

	return issues
}

// validateOptions checks the run options.
func validateOptions(o Options) []Issue {
	var issues []Issue

	if o.Delimiter != "" && utf8.RuneCountInString(o.Delimiter) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "options.delimiter",
			Message:  fmt.Sprintf("delimiter must be a single character, got %q", o.Delimiter),
		})
	}
	if o.MaxErrors < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "options.max_errors",
			Message:  "max_errors must not be negative; use 0 for unlimited",
		})
	}
	if _, err := textenc.Lookup(o.Encoding); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "options.encoding",
			Message:  err.Error(),
		})
	}

	return issues
}

// validateReport checks renderer settings.
func validateReport(r Report) []Issue {
	var issues []Issue
	if r.MaxDisplay < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.max_display",
			Message:  "max_display must not be negative; use 0 for the default",
		})
	}
	return issues
}
