package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"csvlint/internal/schema"
	"csvlint/internal/validator"
)

// runOn validates content against a one-column integer schema and returns
// the Result, giving report tests realistic inputs without fixtures.
func runOn(t *testing.T, content string, maxErrors int) validator.Result {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v := &validator.Validator{
		Schema:    schema.Schema{Columns: []schema.Column{{Name: "n", Type: schema.TypeInteger}}},
		MaxErrors: maxErrors,
	}
	return v.Validate(context.Background(), path)
}

/*
TestRender_ValidFile verifies the summary-only layout for a clean run: status
VALID, the counters, and no error sections.
*/
func TestRender_ValidFile(t *testing.T) {
	res := runOn(t, "n\n1\n2\n", 0)

	var sb strings.Builder
	Renderer{}.Render(&sb, res)
	out := sb.String()

	for _, want := range []string{
		"CSV VALIDATION REPORT",
		"Status: VALID",
		"Total Rows: 2",
		"Rows Validated: 2",
		"Total Errors: 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ERROR SUMMARY") || strings.Contains(out, "DETAILED ERRORS") {
		t.Errorf("error sections printed for a valid run:\n%s", out)
	}
}

/*
TestRender_InvalidSummaryOnly verifies a non-verbose render of a failing run:
the summary table appears with per-kind counts, but no detail lines.
*/
func TestRender_InvalidSummaryOnly(t *testing.T) {
	res := runOn(t, "n\nabc\n2\n", 0)

	var sb strings.Builder
	Renderer{}.Render(&sb, res)
	out := sb.String()

	if !strings.Contains(out, "Status: INVALID") {
		t.Errorf("missing INVALID status:\n%s", out)
	}
	if !strings.Contains(out, "ERROR SUMMARY") || !strings.Contains(out, "Type Errors: 1") {
		t.Errorf("missing summary section:\n%s", out)
	}
	if strings.Contains(out, "DETAILED ERRORS") {
		t.Errorf("detail section printed without verbose:\n%s", out)
	}
}

/*
TestRender_VerboseDetailAndCap verifies verbose mode prints numbered detail
entries including the offending value, and truncates past MaxDisplay with a
trailing count of hidden errors.
*/
func TestRender_VerboseDetailAndCap(t *testing.T) {
	res := runOn(t, "n\na\nb\nc\n", 0) // three type errors

	var sb strings.Builder
	Renderer{Verbose: true, MaxDisplay: 2}.Render(&sb, res)
	out := sb.String()

	if !strings.Contains(out, "DETAILED ERRORS") {
		t.Fatalf("missing detail section:\n%s", out)
	}
	if !strings.Contains(out, "1. Line 2, Column 'n'") {
		t.Errorf("missing first detail entry:\n%s", out)
	}
	if !strings.Contains(out, "Value: a") {
		t.Errorf("missing value line:\n%s", out)
	}
	if !strings.Contains(out, "... and 1 more errors") {
		t.Errorf("missing truncation marker:\n%s", out)
	}
	if strings.Contains(out, "3. Line 4") {
		t.Errorf("entry past the display cap printed:\n%s", out)
	}
}
