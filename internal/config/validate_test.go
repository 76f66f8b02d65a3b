package config

import (
	"strings"
	"testing"

	"csvlint/internal/schema"
)

// hasIssue reports whether any issue matches the path and severity.
func hasIssue(issues []Issue, severity IssueSeverity, pathFragment string) bool {
	for _, i := range issues {
		if i.Severity == severity && strings.Contains(i.Path, pathFragment) {
			return true
		}
	}
	return false
}

/*
TestValidate_CleanDocument verifies a well-formed document produces no
findings.
*/
func TestValidate_CleanDocument(t *testing.T) {
	d := Document{
		Schema: schema.Schema{Columns: []schema.Column{
			{Name: "id", Type: schema.TypeInteger, Required: schema.Bool(true)},
			{Name: "email", Type: schema.TypeString, Pattern: `^[^@\s]+@[^@\s]+$`},
		}},
		Options: Options{Encoding: "utf-8", Delimiter: ",", MaxErrors: 0},
	}
	if issues := Validate(d); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

/*
TestValidate_SchemaFindings covers the schema lint rules: empty names,
duplicates, contradictory flags and broken patterns are errors; an empty
column list is only a warning.
*/
func TestValidate_SchemaFindings(t *testing.T) {
	d := Document{
		Schema: schema.Schema{Columns: []schema.Column{
			{Name: ""},
			{Name: "a"},
			{Name: "a"},
			{Name: "b", Required: schema.Bool(true), Nullable: schema.Bool(true)},
			{Name: "c", Pattern: "("},
		}},
	}
	issues := Validate(d)

	if !hasIssue(issues, SeverityError, "columns[0].name") {
		t.Error("empty name not flagged")
	}
	if !hasIssue(issues, SeverityError, "columns[2].name") {
		t.Error("duplicate name not flagged")
	}
	if !hasIssue(issues, SeverityError, "columns[3]") {
		t.Error("required/nullable contradiction not flagged")
	}
	if !hasIssue(issues, SeverityError, "columns[4].pattern") {
		t.Error("broken pattern not flagged")
	}

	empty := Document{}
	if !hasIssue(Validate(empty), SeverityWarning, "schema.columns") {
		t.Error("empty schema not warned about")
	}
}

/*
TestValidate_OptionFindings covers the option lint rules.
*/
func TestValidate_OptionFindings(t *testing.T) {
	d := Document{
		Schema:  schema.Schema{Columns: []schema.Column{{Name: "a"}}},
		Options: Options{Encoding: "nope", Delimiter: ",,", MaxErrors: -1},
		Report:  Report{MaxDisplay: -5},
	}
	issues := Validate(d)

	if !hasIssue(issues, SeverityError, "options.delimiter") {
		t.Error("multi-rune delimiter not flagged")
	}
	if !hasIssue(issues, SeverityError, "options.max_errors") {
		t.Error("negative max_errors not flagged")
	}
	if !hasIssue(issues, SeverityError, "options.encoding") {
		t.Error("unknown encoding not flagged")
	}
	if !hasIssue(issues, SeverityError, "report.max_display") {
		t.Error("negative max_display not flagged")
	}
}
