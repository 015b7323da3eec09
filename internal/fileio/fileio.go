// Package fileio reads and writes document files with text-encoding and
// line-ending detection.
//
// Reads accept BOM-prefixed UTF-8, plain UTF-8, and Shift_JIS, tried in
// that order; anything else is rejected rather than decoded lossily.
// Writes encode back to the recorded encoding and replace the target
// atomically through a temp file in the same directory.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding identifies the on-disk text encoding of a document.
type Encoding string

const (
	// EncodingUTF8 is UTF-8, with or without BOM.
	EncodingUTF8 Encoding = "UTF-8"

	// EncodingShiftJIS is Shift_JIS.
	EncodingShiftJIS Encoding = "Shift_JIS"
)

// LineEnding identifies the on-disk line-ending style of a document.
type LineEnding string

const (
	// LineEndingLF is Unix-style "\n".
	LineEndingLF LineEnding = "LF"

	// LineEndingCRLF is Windows-style "\r\n".
	LineEndingCRLF LineEnding = "CRLF"
)

// ErrUnsupportedEncoding is returned when a file decodes as neither
// UTF-8 nor Shift_JIS. Forcing a decode would risk corrupting the file
// on a later save, so the open is refused instead.
var ErrUnsupportedEncoding = errors.New("unsupported encoding: only UTF-8 and Shift_JIS can be opened")

// Document is the result of reading a file: LF-normalized content plus
// the detected encoding and line-ending style needed to write it back.
type Document struct {
	Content    string
	Encoding   Encoding
	LineEnding LineEnding
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read loads and decodes the file at path.
func Read(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
		if !utf8.Valid(raw) {
			return Document{}, fmt.Errorf("%s: BOM present but content is not UTF-8: %w", path, ErrUnsupportedEncoding)
		}
		return newDocument(string(raw), EncodingUTF8), nil
	}

	if utf8.Valid(raw) {
		return newDocument(string(raw), EncodingUTF8), nil
	}

	decoded, err := decodeShiftJIS(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, ErrUnsupportedEncoding)
	}
	return newDocument(decoded, EncodingShiftJIS), nil
}

// Write encodes content and atomically replaces the file at path.
// Content is expected LF-normalized; the requested line-ending style is
// applied before encoding.
func Write(path, content string, enc Encoding, le LineEnding) error {
	out := content
	if le == LineEndingCRLF {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}

	data := []byte(out)
	if enc == EncodingShiftJIS {
		encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), data)
		if err != nil {
			return fmt.Errorf("encode %s as Shift_JIS: %w", path, err)
		}
		data = encoded
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func newDocument(content string, enc Encoding) Document {
	le := LineEndingLF
	if strings.Contains(content, "\r\n") {
		le = LineEndingCRLF
	}
	return Document{
		Content:    strings.ReplaceAll(content, "\r\n", "\n"),
		Encoding:   enc,
		LineEnding: le,
	}
}

// decodeShiftJIS decodes raw strictly: the x/text decoder substitutes
// U+FFFD for invalid input rather than failing, and no valid Shift_JIS
// sequence maps to U+FFFD, so its presence marks a decode failure.
func decodeShiftJIS(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(decoded) || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", errors.New("invalid Shift_JIS input")
	}
	return string(decoded), nil
}
