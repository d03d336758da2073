package models

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts used when rendering dates for keys and reports.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// TimePrecision is the finest time resolution a stored workbook keeps.
const TimePrecision = time.Millisecond

// Value is the key-comparable rendering of one cell.
// Two null cells compare equal, matching a join on null keys.
type Value struct {
	Text string
	Null bool
}

// NullValue is the rendering of an absent cell.
var NullValue = Value{Null: true}

// String returns the text, or "<null>" for a null value.
func (v Value) String() string {
	if v.Null {
		return "<null>"
	}
	return v.Text
}

// Some wraps a present value in sql.Null.
func Some[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}

// Hours builds a present decimal hours value from a float.
func Hours(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func stringValue(v sql.Null[string]) Value {
	if !v.Valid {
		return NullValue
	}
	return Value{Text: v.V}
}

func numberValue(v sql.Null[float64]) Value {
	if !v.Valid {
		return NullValue
	}
	return Value{Text: strconv.FormatFloat(v.V, 'f', -1, 64)}
}

func decimalValue(v decimal.NullDecimal) Value {
	if !v.Valid {
		return NullValue
	}
	return Value{Text: v.Decimal.String()}
}

func boolValue(v sql.Null[bool]) Value {
	if !v.Valid {
		return NullValue
	}
	return Value{Text: strconv.FormatBool(v.V)}
}

func timeValue(v sql.Null[time.Time], layout string) Value {
	if !v.Valid {
		return NullValue
	}
	return Value{Text: v.V.Format(layout)}
}

// cell converts a nullable value to what a spreadsheet cell holds; nil is empty.
func cell[T any](v sql.Null[T]) any {
	if !v.Valid {
		return nil
	}
	return v.V
}

func decimalCell(v decimal.NullDecimal) any {
	if !v.Valid {
		return nil
	}
	return v.Decimal.InexactFloat64()
}

// Naive drops the zone of t, keeping its wall clock. Naive times are
// represented in UTC because workbooks cannot store a zone.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Day truncates t to its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
