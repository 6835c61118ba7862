package source

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	apperrors "racidash/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV decodes CSV bytes trying encodings in order of likelihood
// (UTF-8 with or without BOM, then Windows-1252, then Latin-1) and sniffs
// the delimiter from the first chunk.
func readCSV(data []byte) ([][]string, error) {
	for _, text := range decodeCandidates(data) {
		rows, err := parseCSVText(text)
		if err != nil {
			continue
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, apperrors.SourceUnreadable("could not read CSV file with any supported encoding")
}

func decodeCandidates(data []byte) []string {
	var out []string
	trimmed := bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(trimmed) {
		out = append(out, string(trimmed))
	}
	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		if s, ok := decodeWith(cm.NewDecoder(), data); ok {
			out = append(out, s)
		}
	}
	return out
}

func decodeWith(dec *encoding.Decoder, data []byte) (string, bool) {
	decoded, err := dec.Bytes(data)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

// sniffDelimiter picks the separator that appears most often in the first
// 4 KB, among comma, semicolon, tab and pipe. Comma wins ties.
func sniffDelimiter(text string) rune {
	sample := text
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	best := ','
	bestCount := strings.Count(sample, ",")
	for _, cand := range []rune{';', '\t', '|'} {
		if n := strings.Count(sample, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

func parseCSVText(text string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}
