package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/time-butler/timereport/pkg/timereport/models"
	"github.com/xuri/excelize/v2"
)

// MaxColumnWidth caps the width set for a column.
const MaxColumnWidth = 50

const (
	dateNumFmt      = "yyyy-mm-dd"
	timestampNumFmt = "yyyy-mm-dd hh:mm:ss"
)

// styles holds the style ids shared by all sheets of one file.
type styles struct {
	header    int
	date      int
	timestamp int
}

// Save writes every non-empty sheet of wb to path, replacing the file
// atomically: the workbook is written to a temporary file in the same
// directory which is then renamed over path.
func Save(path string, wb *models.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return &StoreError{Path: path, Op: "save", Err: err}
	}

	written := 0
	for _, sheet := range wb.Sheets() {
		if sheet.Len() == 0 {
			continue
		}
		if written == 0 {
			err = f.SetSheetName(f.GetSheetName(0), sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err == nil {
			err = writeSheet(f, sheet, st)
		}
		if err != nil {
			return &StoreError{Path: path, Op: "save", Err: fmt.Errorf("sheet %q: %w", sheet.Name, err)}
		}
		written++
	}
	if written == 0 {
		return ErrNothingToSave
	}
	f.SetActiveSheet(0)

	if err := writeAtomic(f, path); err != nil {
		return &StoreError{Path: path, Op: "save", Err: err}
	}
	log.Info().Str("path", path).Int("sheets", written).Msg("Saved archive")
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	dateFmt, tsFmt := dateNumFmt, timestampNumFmt
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return st, err
	}
	st.timestamp, err = f.NewStyle(&excelize.Style{CustomNumFmt: &tsFmt})
	return st, err
}

func writeSheet(f *excelize.File, sheet *models.Sheet, st styles) error {
	columns := models.StoredColumns(sheet.Kind)
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := timeSerials(row.Values())
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", st.header); err != nil {
		return err
	}

	lastRow := sheet.Len() + 1
	for i, col := range columns {
		style := 0
		switch col {
		case models.ColDate:
			style = st.date
		case models.ColProjectCreated, models.ColImportDate:
			style = st.timestamp
		}
		if style == 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellStyle(sheet.Name, name+"2", fmt.Sprintf("%s%d", name, lastRow), style); err != nil {
			return err
		}
	}

	for i, width := range columnWidths(columns, sheet.Rows) {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// timeSerials replaces time values with date serials carrying
// models.TimePrecision.
func timeSerials(values []any) []any {
	for i, v := range values {
		if t, ok := v.(time.Time); ok {
			if serial, ok := excelSerial(t); ok {
				values[i] = serial
			}
		}
	}
	return values
}

// columnWidths sizes each column to its longest rendered cell plus two,
// capped at MaxColumnWidth.
func columnWidths(columns []string, rows []models.Row) []float64 {
	widths := make([]float64, len(columns))
	for i, col := range columns {
		longest := utf8.RuneCountInString(col)
		for _, r := range rows {
			if v := r.Field(col); !v.Null {
				longest = max(longest, utf8.RuneCountInString(v.Text))
			}
		}
		widths[i] = float64(min(longest+2, MaxColumnWidth))
	}
	return widths
}

func writeAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
