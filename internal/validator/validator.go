// Package validator implements the schema-driven validation pipeline for
// delimited tabular text files. A run moves through four stages, each of
// which can short-circuit: file access checks, an encoding probe on the
// first line, header reconciliation against the schema, and per-row cell
// validation. Every failure, from a missing file to a panicking custom
// check, is converted into a ValidationError on the Result at its origin;
// Validate always returns a completed Result and never an error.
package validator

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"csvlint/internal/datasource"
	"csvlint/internal/datasource/file"
	"csvlint/internal/schema"
	"csvlint/internal/textenc"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// probeLimit caps how many bytes of the first line the encoding probe reads.
const probeLimit = 64 * 1024

// Validator validates files against a single schema. It is safe to reuse
// across files and for concurrent Validate calls: per-column metadata is
// compiled once, behind a sync.Once that blocks racing callers, and every
// field is read-only afterwards.
type Validator struct {
	Schema schema.Schema

	// Encoding is the IANA name of the file's text encoding. Empty means
	// UTF-8.
	Encoding string

	// Delimiter is the field separator. Zero means ','.
	Delimiter rune

	// MaxErrors caps how many errors are collected before the run stops
	// early. Zero or negative means unlimited. The cap is cooperative: it is
	// checked after each emission, so a row being processed when it fires
	// contributes its errors up to that point.
	MaxErrors int

	metaOnce sync.Once
	meta     []columnMeta
}

// columnMeta is the precomputed hot-path view of one schema column.
type columnMeta struct {
	name     string
	ftype    schema.FieldType
	required bool
	parse    parseFunc
	checks   []schema.CheckFunc
}

// buildMeta compiles the schema into per-column metadata: the effective
// required flag, the type dispatch entry, and the custom check chain (enum,
// pattern, programmatic check, in that order).
func (v *Validator) buildMeta() {
	v.metaOnce.Do(func() {
		v.meta = make([]columnMeta, 0, len(v.Schema.Columns))
		for _, c := range v.Schema.Columns {
			m := columnMeta{
				name:     c.Name,
				ftype:    c.Type,
				required: c.IsRequired(),
				parse:    parserFor(c.Type),
			}
			if len(c.Enum) > 0 {
				m.checks = append(m.checks, enumCheck(c.Enum))
			}
			if c.Pattern != "" {
				m.checks = append(m.checks, patternCheck(c.Pattern))
			}
			if c.Check != nil {
				m.checks = append(m.checks, c.Check)
			}
			v.meta = append(v.meta, m)
		}
	})
}

// enumCheck builds a membership check over an exact-match value list.
func enumCheck(values []string) schema.CheckFunc {
	set := make(map[string]struct{}, len(values))
	for _, s := range values {
		set[s] = struct{}{}
	}
	return func(value string) (bool, error) {
		_, ok := set[value]
		return ok, nil
	}
}

// patternCheck builds a full-match regexp check. Compilation is deferred to
// first use so a bad pattern degrades into a per-cell custom error instead
// of failing the run; the config linter catches it earlier for file-loaded
// schemas.
func patternCheck(expr string) schema.CheckFunc {
	re, err := regexp.Compile(expr)
	if err != nil {
		return func(string) (bool, error) {
			return false, fmt.Errorf("invalid pattern %q: %v", expr, err)
		}
	}
	return func(value string) (bool, error) {
		return re.MatchString(value), nil
	}
}

// runCheck invokes a custom check, converting a panic inside the callable
// into an ordinary check failure so it can never abort the run.
func runCheck(fn schema.CheckFunc, value string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("validator panicked: %v", r)
		}
	}()
	return fn(value)
}

// delimiter returns the configured field separator, defaulting to ','.
func (v *Validator) delimiter() rune {
	if v.Delimiter != 0 {
		return v.Delimiter
	}
	return ','
}

// capReached reports whether the error cap has been hit for this run.
func (v *Validator) capReached(res *Result) bool {
	return v.MaxErrors > 0 && res.ErrorCount >= v.MaxErrors
}

// Validate runs the full pipeline against the file at path and returns the
// completed Result. The Result is owned by the caller once returned; the
// validator keeps no reference to it.
func (v *Validator) Validate(ctx context.Context, path string) Result {
	v.buildMeta()
	res := newResult(path)

	if !v.checkFile(&res, path) {
		return res
	}

	enc, ok := v.probeEncoding(ctx, &res, path)
	if !ok {
		return res
	}

	v.validateRows(ctx, &res, path, enc)
	return res
}

// checkFile is the accessor stage: existence, regular-file-ness and non-zero
// size, in that order. The first failing check records one file-kind error
// at line 0 and stops the run.
func (v *Validator) checkFile(res *Result, path string) bool {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.addError(0, "", KindFile, fmt.Sprintf("File not found: %s", path), "")
		return false
	case err != nil:
		res.addError(0, "", KindFile, fmt.Sprintf("File access error: %v", err), "")
		return false
	case !info.Mode().IsRegular():
		res.addError(0, "", KindFile, fmt.Sprintf("Path is not a file: %s", path), "")
		return false
	case info.Size() == 0:
		res.addError(0, "", KindFile, "File is empty", "")
		return false
	}
	return true
}

// probeEncoding resolves the declared encoding and verifies the first line
// of the file decodes under it. Any failure here, including plain I/O
// errors, is a file-kind error that halts the pipeline.
func (v *Validator) probeEncoding(ctx context.Context, res *Result, path string) (enc encodingHandle, ok bool) {
	e, err := textenc.Lookup(v.Encoding)
	if err != nil {
		res.addError(0, "", KindFile, fmt.Sprintf("Error opening file: %v", err), "")
		return encodingHandle{}, false
	}
	enc = encodingHandle{enc: e, name: v.encodingName()}

	var src datasource.Source = file.NewLocal(path)
	rc, err := src.Open(ctx)
	if err != nil {
		res.addError(0, "", KindFile, fmt.Sprintf("Error opening file: %v", err), "")
		return encodingHandle{}, false
	}
	defer rc.Close()

	// Decode before splitting the line: finding a raw 0x0A first would cut
	// multi-byte encodings mid code unit (UTF-16 encodes LF as two bytes).
	var reader io.Reader = rc
	dec := enc.decoder()
	if dec != nil {
		reader = transform.NewReader(rc, dec)
	}
	line, cut, err := firstLine(reader)
	if err != nil {
		res.addError(0, "", KindFile, fmt.Sprintf("Error opening file: %v", err), "")
		return encodingHandle{}, false
	}
	if cut {
		line = textenc.TrimPartialRune(line)
	}
	var checkErr error
	if dec == nil {
		checkErr = textenc.Check(line, e)
	} else {
		// line already decoded; replacement runes mark unrepresentable bytes.
		checkErr = textenc.CheckDecoded(line)
	}
	if checkErr != nil {
		res.addError(0, "", KindFile,
			fmt.Sprintf("Encoding error: unable to read file with %s encoding: %v", enc.name, checkErr), "")
		return encodingHandle{}, false
	}
	return enc, true
}

// encodingHandle pairs a resolved encoding with its user-facing name for
// error messages and decoder construction.
type encodingHandle struct {
	enc  encoding.Encoding
	name string
}

// decoder returns a transformer for non-UTF-8 encodings, or nil when the
// file can be read as-is.
func (h encodingHandle) decoder() *encoding.Decoder {
	if h.enc == nil || textenc.IsUTF8(h.enc) {
		return nil
	}
	return h.enc.NewDecoder()
}

// encodingName returns the declared encoding name, defaulting to utf-8.
func (v *Validator) encodingName() string {
	if strings.TrimSpace(v.Encoding) == "" {
		return "utf-8"
	}
	return v.Encoding
}

// firstLine reads up to the first newline (or probeLimit bytes, whichever
// comes first). A file whose first line exceeds the limit is probed on the
// prefix, which is sufficient to catch an encoding mismatch early; cut
// reports that the limit, not a newline or EOF, ended the read, so callers
// can discard a rune the cut point may have split.
func firstLine(r io.Reader) (line []byte, cut bool, err error) {
	br := bufio.NewReader(io.LimitReader(r, probeLimit))
	line, err = br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, false, err
	}
	return line, err == io.EOF && len(line) == probeLimit, nil
}

// validateRows is the structural checker plus the row state machine. It
// opens the file once, reads the header, reconciles it against the schema,
// then walks data rows applying the per-column rule chain.
func (v *Validator) validateRows(ctx context.Context, res *Result, path string, enc encodingHandle) {
	var src datasource.Source = file.NewLocal(path)
	rc, err := src.Open(ctx)
	if err != nil {
		res.addError(0, "", KindFile, fmt.Sprintf("Error opening file: %v", err), "")
		return
	}
	defer rc.Close()

	var reader io.Reader = rc
	if dec := enc.decoder(); dec != nil {
		reader = transform.NewReader(rc, dec)
	}

	cr := csv.NewReader(reader)
	cr.Comma = v.delimiter()
	cr.FieldsPerRecord = -1 // short rows are handled per cell, not rejected

	header, err := cr.Read()
	if err == io.EOF {
		res.addError(1, "", KindStructural, "No headers found in CSV file", "")
		return
	}
	if err != nil {
		res.addError(0, "", KindStructural, fmt.Sprintf("CSV parsing error: %v", err), "")
		return
	}
	headerIdx := indexHeader(header)

	// Missing columns are reported in schema order so runs are
	// deterministic. Header columns the schema does not mention are
	// out-of-band extra data and stay silent.
	for _, m := range v.meta {
		if _, ok := headerIdx[m.name]; !ok {
			res.addError(1, m.name, KindStructural,
				fmt.Sprintf("Required column '%s' not found in CSV headers", m.name), "")
		}
	}
	if res.Summary[KindStructural] > 0 {
		return
	}

	// Data rows start at line 2; line 1 is the header.
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.addError(0, "", KindStructural, fmt.Sprintf("CSV parsing error: %v", err), "")
			return
		}
		line++
		if v.capReached(res) {
			// Cap fired on a previous row: this row is not counted.
			break
		}
		res.TotalRows++
		if v.validateRow(res, headerIdx, row, line) {
			res.RowsValidated++
		}
	}
}

// validateRow applies the rule chain to one data row and reports whether the
// row produced zero errors. Within a column the checks are strictly ordered:
// a required failure skips the type check, a type failure skips the custom
// checks. A failure in one column never prevents checking the others, except
// when the error cap fires.
func (v *Validator) validateRow(res *Result, headerIdx map[string]int, row []string, line int) bool {
	rowValid := true
	for i := range v.meta {
		m := &v.meta[i]

		value := ""
		if idx, ok := headerIdx[m.name]; ok && idx < len(row) {
			value = row[idx]
		}
		value = strings.TrimSpace(value)

		if value == "" {
			if m.required {
				res.addError(line, m.name, KindRequired,
					fmt.Sprintf("Required field '%s' is empty or missing", m.name), "")
				rowValid = false
				if v.capReached(res) {
					break
				}
			}
			// Empty is valid for nullable fields; nothing else to check.
			continue
		}

		if !m.parse(value) {
			res.addError(line, m.name, KindType,
				fmt.Sprintf("Invalid type for '%s'. Expected %s, got '%s'", m.name, m.ftype, value), value)
			rowValid = false
			if v.capReached(res) {
				break
			}
			continue
		}

		failed := false
		for _, chk := range m.checks {
			ok, cerr := runCheck(chk, value)
			if cerr != nil {
				res.addError(line, m.name, KindCustom,
					fmt.Sprintf("Custom validator error for '%s': %v", m.name, cerr), value)
				failed = true
			} else if !ok {
				res.addError(line, m.name, KindCustom,
					fmt.Sprintf("Custom validation failed for '%s' with value '%s'", m.name, value), value)
				failed = true
			}
			if failed {
				break
			}
		}
		if failed {
			rowValid = false
			if v.capReached(res) {
				break
			}
		}
	}
	return rowValid
}

// indexHeader maps header names to their first column index, stripping a
// UTF-8 BOM from the first cell. Later duplicates are ignored, matching the
// first-occurrence-wins behavior of common dict-based CSV readers.
func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}
