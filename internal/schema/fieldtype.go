package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType is the closed set of cell types the validator understands. Values
// are compared by equality against this enumeration only; there is no
// runtime type inspection anywhere in the pipeline.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeFloat   FieldType = "float"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
)

// ParseFieldType maps user-facing type names onto the closed enumeration.
// It accepts the database-ish aliases that show up in real contracts
// (bigint, text, timestamp, ...) and rejects everything else.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "text", "str", "varchar":
		return TypeString, nil
	case "integer", "int", "bigint", "int4", "int8":
		return TypeInteger, nil
	case "float", "real", "double", "numeric":
		return TypeFloat, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "date", "datetime", "timestamp":
		return TypeDate, nil
	default:
		return "", fmt.Errorf("unknown field type %q", s)
	}
}

// UnmarshalJSON decodes a type name from a schema file, normalizing aliases
// through ParseFieldType so a Column never holds an out-of-enum value.
func (t *FieldType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ft, err := ParseFieldType(s)
	if err != nil {
		return err
	}
	*t = ft
	return nil
}
