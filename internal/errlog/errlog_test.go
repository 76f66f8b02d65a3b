package errlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"csvlint/internal/validator"
)

/*
TestSink_WritesHeaderAndRows opens a sink in a nested directory that does not
exist yet, records a couple of errors, and reads the file back as CSV.
*/
func TestSink_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "errors.csv")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Record("a.csv", validator.Error{
		Line: 2, Column: "age", Kind: validator.KindType,
		Message: "Invalid type for 'age'. Expected integer, got 'x'", Value: "x",
	})
	s.Record("a.csv", validator.Error{
		Line: 3, Column: "email", Kind: validator.KindRequired,
		Message: "Required field 'email' is empty or missing",
	})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := [][]string{
		{"file", "line", "column", "kind", "message", "value"},
		{"a.csv", "2", "age", "type", "Invalid type for 'age'. Expected integer, got 'x'", "x"},
		{"a.csv", "3", "email", "required", "Required field 'email' is empty or missing", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %v, want %v", rows, want)
	}
}

/*
TestSink_NilSafe verifies every method tolerates a nil receiver, the contract
that lets callers degrade gracefully when the log cannot be opened.
*/
func TestSink_NilSafe(t *testing.T) {
	var s *Sink
	s.Record("a.csv", validator.Error{})
	s.RecordResult(validator.Result{})
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil sink: %v", err)
	}
}

/*
TestSink_RecordResult verifies all errors of a Result land in the log with
the result's file path.
*/
func TestSink_RecordResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.csv")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	res := validator.Result{
		FilePath: "users.csv",
		Errors: []validator.Error{
			{Line: 0, Kind: validator.KindFile, Message: "File is empty"},
			{Line: 1, Column: "age", Kind: validator.KindStructural, Message: "Required column 'age' not found in CSV headers"},
		},
	}
	s.RecordResult(res)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "users.csv" || rows[2][0] != "users.csv" {
		t.Errorf("file column not propagated: %v", rows)
	}
}
