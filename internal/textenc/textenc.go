// Package textenc resolves declared text encoding names and performs strict
// decode checks on sampled bytes. The validator probes the first line of a
// file through this package before parsing anything, so a mis-declared
// encoding fails once at file level instead of producing a flood of garbled
// per-cell type errors.
package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Lookup resolves an encoding by its IANA name ("utf-8", "windows-1250",
// "iso-8859-2", ...). An empty name defaults to UTF-8. Names the index does
// not know, or knows but has no decoder for, are an error.
func Lookup(name string) (encoding.Encoding, error) {
	n := strings.TrimSpace(name)
	if n == "" || isUTF8Name(n) {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// IsUTF8 reports whether enc is the identity UTF-8 encoding, for which no
// decoding reader is needed.
func IsUTF8(enc encoding.Encoding) bool { return enc == unicode.UTF8 }

// isUTF8Name matches the common spellings of UTF-8 so they short-circuit to
// the canonical unicode.UTF8 value regardless of index quirks.
func isUTF8Name(n string) bool {
	switch strings.ToLower(n) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// Check reports whether sample decodes cleanly under enc. For UTF-8 this is
// an exact byte-sequence validation. For other encodings the sample is run
// through the decoder; bytes the encoding cannot represent surface as the
// Unicode replacement character, which Check treats as a mismatch. The sample
// must cover whole code units of enc; samples cut at an arbitrary raw byte
// offset should be decoded through a streaming reader and checked with
// CheckDecoded instead.
func Check(sample []byte, enc encoding.Encoding) error {
	if IsUTF8(enc) {
		if !utf8.Valid(sample) {
			return fmt.Errorf("invalid UTF-8 byte sequence at offset %d", invalidOffset(sample))
		}
		return nil
	}
	decoded, err := enc.NewDecoder().Bytes(sample)
	if err != nil {
		return err
	}
	return CheckDecoded(decoded)
}

// CheckDecoded checks a sample that has already passed through a decoder.
// Source bytes the encoding could not represent arrive as the Unicode
// replacement character, which is treated as a mismatch.
func CheckDecoded(sample []byte) error {
	if bytes.ContainsRune(sample, utf8.RuneError) {
		return fmt.Errorf("byte sequence not representable in declared encoding")
	}
	return nil
}

// TrimPartialRune removes a trailing byte sequence that is the valid prefix
// of a multi-byte rune a byte-limit cut has split. Complete sequences, valid
// or not, are left in place so genuine corruption is still reported.
func TrimPartialRune(sample []byte) []byte {
	for i := len(sample) - 1; i >= 0 && len(sample)-i < utf8.UTFMax; i-- {
		if !utf8.RuneStart(sample[i]) {
			continue
		}
		if runeLen(sample[i]) > len(sample)-i {
			return sample[:i]
		}
		break
	}
	return sample
}

// runeLen returns the encoded length a UTF-8 lead byte announces; ASCII and
// malformed lead bytes count as 1.
func runeLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 1
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
