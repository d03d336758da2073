package parser

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/time-butler/timereport/pkg/timereport/models"
)

// Warning is a non-fatal problem found while normalizing.
type Warning struct {
	Column  string
	Message string
}

func (w Warning) String() string {
	return w.Column + ": " + w.Message
}

// normalizer aligns one table onto a kind's schema and counts bad cells.
type normalizer struct {
	table    *Table
	index    map[string]int
	invalid  map[string]int
	warnings []Warning
}

// Normalize converts the records of t into rows of kind. Columns are
// matched case-insensitively; missing columns become null. Cells that do not
// coerce to the column type become null and are reported as warnings.
func Normalize(t *Table, kind models.Kind) ([]models.Row, []Warning) {
	n := &normalizer{table: t, index: make(map[string]int), invalid: make(map[string]int)}
	for _, col := range models.Columns(kind) {
		idx := t.Index(col)
		n.index[col] = idx
		if idx < 0 {
			n.warn(col, fmt.Sprintf("expected column not found (available: %s); filled with nulls", strings.Join(t.Headers, ", ")))
		}
	}

	rows := make([]models.Row, 0, len(t.Records))
	for i := range t.Records {
		switch kind {
		case models.KindWeekly:
			rows = append(rows, models.WeeklyRow{Entry: n.entry(i)})
		case models.KindMonthly:
			rows = append(rows, models.MonthlyRow{Month: n.number(i, models.ColMonth), Entry: n.entry(i)})
		case models.KindProject:
			rows = append(rows, n.project(i))
		}
	}

	for _, col := range models.Columns(kind) {
		if c := n.invalid[col]; c > 0 {
			n.warn(col, fmt.Sprintf("%d value(s) could not be converted and were set to null", c))
		}
	}
	return rows, n.warnings
}

func (n *normalizer) warn(col, msg string) {
	w := Warning{Column: col, Message: msg}
	log.Warn().Str("column", col).Msg(msg)
	n.warnings = append(n.warnings, w)
}

func (n *normalizer) raw(row int, col string) (string, bool) {
	idx := n.index[col]
	if idx < 0 {
		return "", false
	}
	s := n.table.Cell(row, idx)
	if s == "" {
		return "", false
	}
	return s, true
}

func (n *normalizer) entry(row int) models.Entry {
	return models.Entry{
		Week:         n.number(row, models.ColWeek),
		Date:         n.date(row, models.ColDate),
		StartingTime: n.text(row, models.ColStartingTime),
		EndingTime:   n.text(row, models.ColEndingTime),
		Hours:        n.hours(row, models.ColHours),
		Description:  n.text(row, models.ColDescription),
		Closed:       n.closed(row, models.ColClosed),
	}
}

func (n *normalizer) project(row int) models.ProjectRow {
	r := models.ProjectRow{
		Hours:       n.hours(row, models.ColProjectHours),
		Description: n.text(row, models.ColProjectDescription),
		Created:     n.timestamp(row, models.ColProjectCreated),
	}
	if s, ok := n.raw(row, models.ColProjectID); ok {
		r.ID = models.Some(NormalizeID(s))
	}
	return r
}

func (n *normalizer) text(row int, col string) sql.Null[string] {
	s, ok := n.raw(row, col)
	if !ok {
		return sql.Null[string]{}
	}
	return models.Some(s)
}

func (n *normalizer) number(row int, col string) sql.Null[float64] {
	s, ok := n.raw(row, col)
	if !ok {
		return sql.Null[float64]{}
	}
	f, ok := ParseNumber(s)
	if !ok {
		n.invalid[col]++
		return sql.Null[float64]{}
	}
	return models.Some(f)
}

func (n *normalizer) hours(row int, col string) decimal.NullDecimal {
	s, ok := n.raw(row, col)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, ok := ParseHours(s)
	if !ok {
		n.invalid[col]++
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func (n *normalizer) date(row int, col string) sql.Null[time.Time] {
	s, ok := n.raw(row, col)
	if !ok {
		return sql.Null[time.Time]{}
	}
	t, ok := ParseDate(s)
	if !ok {
		n.invalid[col]++
		return sql.Null[time.Time]{}
	}
	return models.Some(t)
}

func (n *normalizer) timestamp(row int, col string) sql.Null[time.Time] {
	s, ok := n.raw(row, col)
	if !ok {
		return sql.Null[time.Time]{}
	}
	t, ok := ParseTimestamp(s)
	if !ok {
		n.invalid[col]++
		return sql.Null[time.Time]{}
	}
	return models.Some(t)
}

func (n *normalizer) closed(row int, col string) sql.Null[bool] {
	s, ok := n.raw(row, col)
	if !ok {
		return sql.Null[bool]{}
	}
	b, ok := ParseClosed(s)
	if !ok {
		n.invalid[col]++
		return sql.Null[bool]{}
	}
	return models.Some(b)
}
