package store

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/time-butler/timereport/pkg/timereport/models"
	"github.com/time-butler/timereport/pkg/timereport/parser"
	"github.com/xuri/excelize/v2"
)

// readSheet reads a sheet whose first row is the header. The sheet kind is
// classified from the header, falling back to the sheet name. Header names
// are matched case-insensitively against the stored schema of that kind;
// unknown columns are dropped.
func readSheet(f *excelize.File, name string) (*models.Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return models.NewSheet(name, models.KindForSheet(name)), nil
	}
	kind := sheetKind(name, rows[0])
	sheet := models.NewSheet(name, kind)

	stored := models.StoredColumns(kind)
	colIndex := make(map[string]int)
	for idx, header := range rows[0] {
		matched := false
		for _, col := range stored {
			if strings.EqualFold(strings.TrimSpace(header), col) {
				if _, dup := colIndex[col]; !dup {
					colIndex[col] = idx
				}
				matched = true
				break
			}
		}
		if !matched && header != "" {
			log.Warn().Str("sheet", name).Str("column", header).Msg("Dropping column not in the sheet schema")
		}
	}
	if len(colIndex) < len(stored) {
		for _, col := range stored {
			if _, ok := colIndex[col]; ok {
				sheet.Columns = append(sheet.Columns, col)
			}
		}
		if sheet.Columns == nil {
			sheet.Columns = []string{}
		}
	}

	for _, raw := range rows[1:] {
		c := cells{raw: raw, index: colIndex}
		if !c.hasData() {
			continue
		}
		sheet.Rows = append(sheet.Rows, c.row(kind))
	}
	return sheet, nil
}

// sheetKind classifies a stored header like an input header. A project
// sheet may carry a weekly_ or monthly_ name, so the name only decides
// for headers that match no schema.
func sheetKind(name string, header []string) models.Kind {
	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}
	if c, err := parser.Classify(trimmed, name); err == nil {
		return c.Kind
	}
	return models.KindForSheet(name)
}

// cells is one raw worksheet row addressed by column name.
type cells struct {
	raw   []string
	index map[string]int
}

func (c cells) hasData() bool {
	for _, v := range c.raw {
		if v != "" {
			return true
		}
	}
	return false
}

func (c cells) get(col string) (string, bool) {
	idx, ok := c.index[col]
	if !ok || idx >= len(c.raw) || c.raw[idx] == "" {
		return "", false
	}
	return c.raw[idx], true
}

func (c cells) row(kind models.Kind) models.Row {
	meta := models.Import{
		Date:       c.timestamp(models.ColImportDate),
		SourceFile: c.text(models.ColSourceFile),
	}
	switch kind {
	case models.KindWeekly:
		return models.WeeklyRow{Entry: c.entry(), Import: meta}
	case models.KindMonthly:
		return models.MonthlyRow{Month: c.number(models.ColMonth), Entry: c.entry(), Import: meta}
	default:
		r := models.ProjectRow{
			Hours:       c.hours(models.ColProjectHours),
			Description: c.text(models.ColProjectDescription),
			Created:     c.timestamp(models.ColProjectCreated),
			Import:      meta,
		}
		if s, ok := c.get(models.ColProjectID); ok {
			r.ID = models.Some(parser.NormalizeID(s))
		}
		return r
	}
}

func (c cells) entry() models.Entry {
	return models.Entry{
		Week:         c.number(models.ColWeek),
		Date:         c.date(models.ColDate),
		StartingTime: c.text(models.ColStartingTime),
		EndingTime:   c.text(models.ColEndingTime),
		Hours:        c.hours(models.ColHours),
		Description:  c.text(models.ColDescription),
		Closed:       c.flag(models.ColClosed),
	}
}

func (c cells) text(col string) sql.Null[string] {
	s, ok := c.get(col)
	if !ok {
		return sql.Null[string]{}
	}
	return models.Some(s)
}

func (c cells) number(col string) sql.Null[float64] {
	s, ok := c.get(col)
	if !ok {
		return sql.Null[float64]{}
	}
	if f, ok := parser.ParseNumber(s); ok {
		return models.Some(f)
	}
	return sql.Null[float64]{}
}

func (c cells) hours(col string) decimal.NullDecimal {
	s, ok := c.get(col)
	if !ok {
		return decimal.NullDecimal{}
	}
	if d, ok := parser.ParseHours(s); ok {
		return decimal.NewNullDecimal(d)
	}
	return decimal.NullDecimal{}
}

func (c cells) flag(col string) sql.Null[bool] {
	s, ok := c.get(col)
	if !ok {
		return sql.Null[bool]{}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return models.Some(true)
	case "0", "false":
		return models.Some(false)
	}
	return sql.Null[bool]{}
}

func (c cells) date(col string) sql.Null[time.Time] {
	s, ok := c.get(col)
	if !ok {
		return sql.Null[time.Time]{}
	}
	if t, ok := serialTime(s); ok {
		return models.Some(models.Day(t))
	}
	if t, ok := parser.ParseDate(s); ok {
		return models.Some(t)
	}
	return sql.Null[time.Time]{}
}

func (c cells) timestamp(col string) sql.Null[time.Time] {
	s, ok := c.get(col)
	if !ok {
		return sql.Null[time.Time]{}
	}
	if t, ok := serialTime(s); ok {
		return models.Some(t)
	}
	if t, ok := parser.ParseTimestamp(s); ok {
		return models.Some(t)
	}
	return sql.Null[time.Time]{}
}

// serialEpoch is day zero of the 1900 date system for serials after the
// phantom 1900-02-29.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// firstExactSerial is the serial of 1900-03-01.
const firstExactSerial = 61

// serialTime converts a raw Excel date serial to a naive time, rounded to
// models.TimePrecision.
func serialTime(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if f < firstExactSerial {
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, false
		}
		return models.Naive(t).Round(models.TimePrecision), true
	}
	days := math.Floor(f)
	frac := time.Duration(math.Round((f - days) * float64(24*time.Hour/models.TimePrecision)))
	return serialEpoch.AddDate(0, 0, int(days)).Add(frac * models.TimePrecision), true
}

// excelSerial is the inverse of serialTime for naive times from 1900-03-01
// on. Earlier times are left to excelize.
func excelSerial(t time.Time) (float64, bool) {
	t = models.Naive(t)
	if t.Before(serialEpoch.AddDate(0, 0, firstExactSerial)) {
		return 0, false
	}
	day := models.Day(t)
	days := (day.Unix() - serialEpoch.Unix()) / 86400
	frac := float64(t.Sub(day)) / float64(24*time.Hour)
	return float64(days) + frac, true
}
