package validator

import (
	"strconv"
	"strings"
	"time"

	"csvlint/internal/schema"
)

// parseFunc reports whether a trimmed, non-empty cell value conforms to a
// declared field type. Empty values never reach a parseFunc; the
// required/nullable logic handles them first.
type parseFunc func(string) bool

// parsers is the exhaustive dispatch table over the closed FieldType
// enumeration. Types are selected by enum equality only.
var parsers = map[schema.FieldType]parseFunc{
	schema.TypeString:  parseString,
	schema.TypeInteger: parseInteger,
	schema.TypeFloat:   parseFloat,
	schema.TypeBoolean: parseBoolean,
	schema.TypeDate:    parseDate,
}

// parserFor resolves the parse function for t. A zero-valued type (a column
// built in code without an explicit Type) behaves as string.
func parserFor(t schema.FieldType) parseFunc {
	if p, ok := parsers[t]; ok {
		return p
	}
	return parseString
}

// parseString accepts any non-empty value.
func parseString(string) bool { return true }

// parseInteger requires a base-10 integer with an optional leading sign and
// no fractional part.
func parseInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// parseFloat accepts fixed and exponential notation.
func parseFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// boolValues is the accepted boolean vocabulary, matched case-insensitively.
var boolValues = map[string]struct{}{
	"true": {}, "false": {}, "1": {}, "0": {}, "yes": {}, "no": {},
}

func parseBoolean(s string) bool {
	_, ok := boolValues[strings.ToLower(s)]
	return ok
}

// dateLayouts are tried in this exact order with first-match-wins. A value
// like "01/02/2024" is ambiguous between the two slash layouts; the MDY
// layout is listed first and silently wins. The order is a compatibility
// contract, not a preference ranking.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
}

func parseDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
