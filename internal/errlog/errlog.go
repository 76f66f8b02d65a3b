// Package errlog writes a per-error CSV log for validation runs. The sink is
// strictly secondary: callers that fail to open it are expected to log the
// failure and carry on with a nil *Sink, which every method tolerates. A
// validation run never aborts because its error log could not be written.
package errlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"csvlint/internal/validator"
)

// header names the columns of the error log.
var header = []string{"file", "line", "column", "kind", "message", "value"}

// Sink appends validation errors to a CSV file.
type Sink struct {
	f *os.File
	w *csv.Writer
}

// Open creates (or truncates) the log at path, creating parent directories
// as needed, and writes the header row.
func Open(path string) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create error log dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create error log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write error log header: %w", err)
	}
	return &Sink{f: f, w: w}, nil
}

// Record appends one error from the run against file. Calling Record on a
// nil Sink is a no-op.
func (s *Sink) Record(file string, e validator.Error) {
	if s == nil {
		return
	}
	_ = s.w.Write([]string{file, strconv.Itoa(e.Line), e.Column, string(e.Kind), e.Message, e.Value})
}

// RecordResult appends every error in res.
func (s *Sink) RecordResult(res validator.Result) {
	if s == nil {
		return
	}
	for _, e := range res.Errors {
		s.Record(res.FilePath, e)
	}
}

// Close flushes buffered rows and closes the file. Safe on a nil Sink.
func (s *Sink) Close() error {
	if s == nil {
		return nil
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
