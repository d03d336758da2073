package models

import "strings"

// MaxSheetNameLength is the longest sheet name a workbook accepts.
const MaxSheetNameLength = 31

// Sheet is one named partition of the archive holding rows of a single kind.
type Sheet struct {
	// Name is the sheet name, e.g. weekly_2024 or a project name.
	Name string
	// Kind is the report kind of every row in the sheet.
	Kind Kind
	// Columns lists the canonical columns the stored header carries.
	// Nil means the full stored schema.
	Columns []string
	// Rows holds the rows sorted by the kind's date column.
	Rows []Row
}

// NewSheet creates an empty sheet with the full stored schema.
func NewSheet(name string, kind Kind) *Sheet {
	return &Sheet{Name: name, Kind: kind}
}

// Len returns the number of rows.
func (s *Sheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// HasColumn reports whether the stored header carries column.
func (s *Sheet) HasColumn(column string) bool {
	if s.Columns == nil {
		for _, c := range StoredColumns(s.Kind) {
			if c == column {
				return true
			}
		}
		return false
	}
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Clone returns a copy whose row slice can be modified independently.
func (s *Sheet) Clone() *Sheet {
	c := *s
	c.Rows = append([]Row(nil), s.Rows...)
	if s.Columns != nil {
		c.Columns = append([]string(nil), s.Columns...)
	}
	return &c
}

var sheetNameReplacer = strings.NewReplacer(
	`\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_", ":", "_",
)

// SanitizeSheetName makes name usable as a sheet name: forbidden characters
// become underscores and the result is cut to MaxSheetNameLength runes.
func SanitizeSheetName(name string) string {
	if name == "" {
		name = "Project"
	}
	name = sheetNameReplacer.Replace(name)
	if r := []rune(name); len(r) > MaxSheetNameLength {
		name = string(r[:MaxSheetNameLength])
	}
	return name
}
