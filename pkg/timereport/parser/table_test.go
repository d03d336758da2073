package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestReadTableEncodings(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		header   string
		cell     string
	}{
		{"utf-8", []byte("Week,Description\n24,café\n"), EncodingUTF8, "Week", "café"},
		{"utf-8 with BOM", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Week,Description\n24,café\n")...), EncodingUTF8Sig, "Week", "café"},
		{"latin-1", []byte("Week,Description\n24,caf\xe9\n"), EncodingLatin1, "Week", "café"},
	}

	for _, tt := range tests {
		path := writeFile(t, "report.csv", tt.data)
		table, err := ReadTable(path, nil)
		if err != nil {
			t.Errorf("%s: ReadTable failed: %v", tt.name, err)
			continue
		}
		if table.Encoding != tt.encoding {
			t.Errorf("%s: encoding = %s, expected %s", tt.name, table.Encoding, tt.encoding)
		}
		if table.Headers[0] != tt.header {
			t.Errorf("%s: first header = %q, expected %q", tt.name, table.Headers[0], tt.header)
		}
		if got := table.Cell(0, 1); got != tt.cell {
			t.Errorf("%s: cell = %q, expected %q", tt.name, got, tt.cell)
		}
	}
}

func TestReadTableCP1252Only(t *testing.T) {
	path := writeFile(t, "report.csv", []byte("Week,Description\n24,\x80 fee\n"))
	table, err := ReadTable(path, []string{EncodingUTF8, EncodingCP1252})
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.Encoding != EncodingCP1252 {
		t.Errorf("encoding = %s, expected cp1252", table.Encoding)
	}
	if got := table.Cell(0, 1); got != "€ fee" {
		t.Errorf("cell = %q, expected %q", got, "€ fee")
	}
}

func TestReadTableUndecodable(t *testing.T) {
	path := writeFile(t, "report.csv", []byte("Week\n\xff\n"))
	_, err := ReadTable(path, []string{EncodingUTF8, EncodingUTF8Sig})
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("expected ErrUndecodable, got %v", err)
	}
}

func TestReadTableEmpty(t *testing.T) {
	for _, data := range []string{"", "Week,Date\n", "\n\n"} {
		path := writeFile(t, "report.csv", []byte(data))
		if _, err := ReadTable(path, nil); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ReadTable(%q) error = %v, expected ErrEmptyInput", data, err)
		}
	}
}

func TestReadTableRagged(t *testing.T) {
	path := writeFile(t, "report.csv", []byte("Week,Date,Hours\n24,2024-06-10\n25,2024-06-17,8,extra\n"))
	table, err := ReadTable(path, nil)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(table.Records))
	}
	if got := table.Cell(0, 2); got != "" {
		t.Errorf("missing cell = %q, expected empty", got)
	}
	if got := table.Cell(1, 2); got != "8" {
		t.Errorf("cell = %q, expected 8", got)
	}
}

func TestReadTableUnknownEncoding(t *testing.T) {
	path := writeFile(t, "report.csv", []byte("Week\n1\n"))
	if _, err := ReadTable(path, []string{"ebcdic"}); err == nil || errors.Is(err, ErrUndecodable) {
		t.Errorf("expected unsupported encoding error, got %v", err)
	}
}
