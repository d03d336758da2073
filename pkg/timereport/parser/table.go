// Package parser reads time report CSV files and turns them into typed rows.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Supported input encodings.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8Sig = "utf-8-sig"
	EncodingLatin1  = "latin-1"
	EncodingCP1252  = "cp1252"
)

// DefaultEncodings is the order encodings are tried in.
var DefaultEncodings = []string{EncodingUTF8, EncodingUTF8Sig, EncodingLatin1, EncodingCP1252}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errDecode = errors.New("invalid byte sequence")

// Table is a decoded CSV file. Cells missing from ragged records read as "".
type Table struct {
	// Headers are the column names from the first record.
	Headers []string
	// Records are the data records.
	Records [][]string
	// Encoding is the encoding that decoded the file.
	Encoding string
}

// Index returns the position of the first header equal to name ignoring
// case, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// Cell returns the cell at row, col or "" when the record is short.
func (t *Table) Cell(row, col int) string {
	rec := t.Records[row]
	if col < 0 || col >= len(rec) {
		return ""
	}
	return rec[col]
}

// ReadTable reads path, decoding it with the first encoding that succeeds.
// A nil encodings list uses DefaultEncodings.
func ReadTable(path string, encodings []string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	for _, enc := range encodings {
		text, err := decode(data, enc)
		if errors.Is(err, errDecode) {
			log.Debug().Str("encoding", enc).Msg("Encoding did not decode input")
			continue
		}
		if err != nil {
			return nil, err
		}
		t, err := parseCSV(text)
		if err != nil {
			return nil, err
		}
		t.Encoding = enc
		log.Info().Str("encoding", enc).Msg("Decoded CSV")
		return t, nil
	}
	return nil, ErrUndecodable
}

func decode(data []byte, enc string) (string, error) {
	switch strings.ToLower(enc) {
	case EncodingUTF8, "utf8":
		if bytes.HasPrefix(data, utf8BOM) || !utf8.Valid(data) {
			return "", errDecode
		}
		return string(data), nil
	case EncodingUTF8Sig:
		if !utf8.Valid(data) {
			return "", errDecode
		}
		out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
		if err != nil {
			return "", errDecode
		}
		return string(out), nil
	case EncodingLatin1, "iso-8859-1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", errDecode
		}
		return string(out), nil
	case EncodingCP1252, "windows-1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", errDecode
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
}

func parseCSV(text string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("parse CSV header: %w", err)
	}
	t := &Table{Headers: make([]string, len(header))}
	for i, h := range header {
		t.Headers[i] = strings.TrimSpace(h)
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse CSV: %w", err)
		}
		t.Records = append(t.Records, rec)
	}
	if len(t.Records) == 0 {
		return nil, ErrEmptyInput
	}
	return t, nil
}
