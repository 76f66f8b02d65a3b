// Package config defines the canonical, JSON-serializable run document for
// the csvlint CLI. It is intentionally small and explicit so that validation
// runs can be described on disk and passed through the program without glue
// code.
//
// Example (trimmed):
//
//	{
//	  "schema": {
//	    "name": "users",
//	    "columns": [
//	      { "name": "user_id", "type": "integer", "required": true },
//	      { "name": "email",   "type": "string",  "required": true,
//	        "pattern": "^[^@\\s]+@[^@\\s]+$" },
//	      { "name": "age",     "type": "integer", "nullable": true }
//	    ]
//	  },
//	  "options":   { "encoding": "utf-8", "delimiter": ",", "max_errors": 0 },
//	  "report":    { "verbose": true, "max_display": 100 },
//	  "error_log": { "path": "out/errors.csv" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"csvlint/internal/schema"
)

// Document is the top-level object decoded from a run file.
type Document struct {
	// Schema is the column contract files are validated against.
	Schema schema.Schema `json:"schema"`

	// Options tune how files are read and when a run stops early.
	Options Options `json:"options"`

	// Report configures the human-readable renderer.
	Report Report `json:"report"`

	// ErrorLog optionally names a CSV sink that receives one row per
	// validation error.
	ErrorLog ErrorLog `json:"error_log"`
}

// Options mirror the validator knobs. Zero values select the defaults
// (UTF-8, comma, unlimited errors).
type Options struct {
	// Encoding is the IANA name of the input text encoding.
	Encoding string `json:"encoding"`

	// Delimiter is the field separator; decoded as a string for JSON
	// friendliness, the first rune is used.
	Delimiter string `json:"delimiter"`

	// MaxErrors caps error collection; 0 means unlimited.
	MaxErrors int `json:"max_errors"`
}

// DelimiterRune returns the configured delimiter as a rune, defaulting to ','.
func (o Options) DelimiterRune() rune {
	for _, r := range o.Delimiter {
		return r
	}
	return ','
}

// Report configures the renderer.
type Report struct {
	// Verbose enables per-error detail lines.
	Verbose bool `json:"verbose"`

	// MaxDisplay caps how many individual errors verbose mode prints;
	// 0 selects the default.
	MaxDisplay int `json:"max_display"`
}

// ErrorLog names an optional per-error CSV sink. An empty path disables it.
type ErrorLog struct {
	Path string `json:"path"`
}

// Load reads and decodes a run document from path.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var d Document
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return d, nil
}
