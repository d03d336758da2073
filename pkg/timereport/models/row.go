package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one typed report line. It is implemented by WeeklyRow, MonthlyRow
// and ProjectRow; callers switch on the concrete type or on Kind.
type Row interface {
	// Kind returns the report kind of the row.
	Kind() Kind
	// Field renders the named stored column for key comparison.
	Field(column string) Value
	// Date returns the value of the kind's date column.
	Date() sql.Null[time.Time]
	// HoursValue returns the worked hours.
	HoursValue() decimal.NullDecimal
	// Meta returns the import metadata.
	Meta() Import
	// Stamped returns a copy of the row carrying meta.
	Stamped(meta Import) Row
	// Values returns the cells in StoredColumns order, nil for null.
	Values() []any
}

// Import is the metadata added to a row when it is merged into a sheet.
type Import struct {
	// Date is the wall-clock time of the run that imported the row.
	Date sql.Null[time.Time]
	// SourceFile is the base name of the input file.
	SourceFile sql.Null[string]
}

func (m Import) field(column string) (Value, bool) {
	switch column {
	case ColImportDate:
		return timeValue(m.Date, TimestampLayout), true
	case ColSourceFile:
		return stringValue(m.SourceFile), true
	}
	return NullValue, false
}

func (m Import) values() []any {
	return []any{cell(m.Date), cell(m.SourceFile)}
}

// Entry holds the columns weekly and monthly reports share.
type Entry struct {
	Week         sql.Null[float64]
	Date         sql.Null[time.Time]
	StartingTime sql.Null[string]
	EndingTime   sql.Null[string]
	Hours        decimal.NullDecimal
	Description  sql.Null[string]
	Closed       sql.Null[bool]
}

func (e Entry) field(column string) (Value, bool) {
	switch column {
	case ColWeek:
		return numberValue(e.Week), true
	case ColDate:
		return timeValue(e.Date, DateLayout), true
	case ColStartingTime:
		return stringValue(e.StartingTime), true
	case ColEndingTime:
		return stringValue(e.EndingTime), true
	case ColHours:
		return decimalValue(e.Hours), true
	case ColDescription:
		return stringValue(e.Description), true
	case ColClosed:
		return boolValue(e.Closed), true
	}
	return NullValue, false
}

func (e Entry) values() []any {
	return []any{
		cell(e.Week),
		cell(e.Date),
		cell(e.StartingTime),
		cell(e.EndingTime),
		decimalCell(e.Hours),
		cell(e.Description),
		cell(e.Closed),
	}
}

// WeeklyRow is a row of a weekly report.
type WeeklyRow struct {
	Entry
	Import Import
}

func (r WeeklyRow) Kind() Kind                      { return KindWeekly }
func (r WeeklyRow) Date() sql.Null[time.Time]       { return r.Entry.Date }
func (r WeeklyRow) HoursValue() decimal.NullDecimal { return r.Hours }
func (r WeeklyRow) Meta() Import                    { return r.Import }

func (r WeeklyRow) Stamped(meta Import) Row {
	r.Import = meta
	return r
}

func (r WeeklyRow) Field(column string) Value {
	if v, ok := r.Entry.field(column); ok {
		return v
	}
	v, _ := r.Import.field(column)
	return v
}

func (r WeeklyRow) Values() []any {
	return append(r.Entry.values(), r.Import.values()...)
}

// MonthlyRow is a row of a monthly report.
type MonthlyRow struct {
	Month sql.Null[float64]
	Entry
	Import Import
}

func (r MonthlyRow) Kind() Kind                      { return KindMonthly }
func (r MonthlyRow) Date() sql.Null[time.Time]       { return r.Entry.Date }
func (r MonthlyRow) HoursValue() decimal.NullDecimal { return r.Hours }
func (r MonthlyRow) Meta() Import                    { return r.Import }

func (r MonthlyRow) Stamped(meta Import) Row {
	r.Import = meta
	return r
}

func (r MonthlyRow) Field(column string) Value {
	if column == ColMonth {
		return numberValue(r.Month)
	}
	if v, ok := r.Entry.field(column); ok {
		return v
	}
	v, _ := r.Import.field(column)
	return v
}

func (r MonthlyRow) Values() []any {
	values := append([]any{cell(r.Month)}, r.Entry.values()...)
	return append(values, r.Import.values()...)
}

// ProjectRow is a row of a project export.
type ProjectRow struct {
	Hours       decimal.NullDecimal
	Description sql.Null[string]
	// Created is timezone-naive; zoned inputs are converted to UTC first.
	Created sql.Null[time.Time]
	// ID is always a string so numeric and textual ids compare equal.
	ID     sql.Null[string]
	Import Import
}

func (r ProjectRow) Kind() Kind                      { return KindProject }
func (r ProjectRow) Date() sql.Null[time.Time]       { return r.Created }
func (r ProjectRow) HoursValue() decimal.NullDecimal { return r.Hours }
func (r ProjectRow) Meta() Import                    { return r.Import }

func (r ProjectRow) Stamped(meta Import) Row {
	r.Import = meta
	return r
}

func (r ProjectRow) Field(column string) Value {
	switch column {
	case ColProjectHours:
		return decimalValue(r.Hours)
	case ColProjectDescription:
		return stringValue(r.Description)
	case ColProjectCreated:
		return timeValue(r.Created, "2006-01-02 15:04:05.999999999")
	case ColProjectID:
		return stringValue(r.ID)
	}
	v, _ := r.Import.field(column)
	return v
}

func (r ProjectRow) Values() []any {
	return append([]any{
		decimalCell(r.Hours),
		cell(r.Description),
		cell(r.Created),
		cell(r.ID),
	}, r.Import.values()...)
}
