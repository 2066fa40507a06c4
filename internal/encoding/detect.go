// Package encoding turns spreadsheet exports of unknown charset into UTF-8.
// Household CSVs arrive from assorted tools: some emit UTF-8 with or without
// a BOM, some UTF-16, and older ones Latin-1 variants with accented category
// names (Alimentação, Saúde) mangled.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	decoder func() *encoding.Decoder
	skip    int
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, decoder: nil, skip: 3}, // UTF-8 BOM: strip and pass through
	{prefix: []byte{0xFF, 0xFE}, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{prefix: []byte{0xFE, 0xFF}, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// charsets maps chardet results to decoders for the charsets we expect from
// Brazilian/Portuguese spreadsheet tools.
var charsets = map[string]*charmap.Charmap{
	"ISO-8859-1":   charmap.ISO8859_1,
	"ISO-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
}

// NewUTF8Reader wraps r so that reads yield UTF-8 text regardless of the
// source charset. Detection: BOM first, then UTF-8 validity of a sniff
// buffer, then chardet heuristics, with Windows-1252 as the final fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	sniff, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(sniff, bom.prefix) {
			continue
		}

		if bom.decoder == nil {
			_, _ = br.Discard(bom.skip)
			return br, nil
		}

		return transform.NewReader(br, bom.decoder()), nil
	}

	if utf8.Valid(sniff) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(sniff); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if cm, ok := charsets[result.Charset]; ok {
			return transform.NewReader(br, cm.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
