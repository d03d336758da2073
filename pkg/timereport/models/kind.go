// Package models defines the typed rows, sheets and workbook of a time report archive.
package models

import (
	"fmt"
	"strings"
)

// Kind is the shape of a time report, decided once per input file.
type Kind string

const (
	// KindWeekly is a weekly report partitioned into weekly_<year> sheets.
	KindWeekly Kind = "weekly"
	// KindMonthly is a monthly report partitioned into monthly_<year> sheets.
	KindMonthly Kind = "monthly"
	// KindProject is a project export stored in a sheet named after the project.
	KindProject Kind = "project"
)

// Column names shared by the schemas.
const (
	ColWeek         = "Week"
	ColMonth        = "Month"
	ColDate         = "Date"
	ColStartingTime = "StartingTime"
	ColEndingTime   = "EndingTime"
	ColHours        = "Hours"
	ColDescription  = "Description"
	ColClosed       = "Closed"

	ColProjectHours       = "hours"
	ColProjectDescription = "description"
	ColProjectCreated     = "created"
	ColProjectID          = "id"

	ColImportDate = "Import_Date"
	ColSourceFile = "Source_File"
)

var schemas = map[Kind][]string{
	KindWeekly:  {ColWeek, ColDate, ColStartingTime, ColEndingTime, ColHours, ColDescription, ColClosed},
	KindMonthly: {ColMonth, ColWeek, ColDate, ColStartingTime, ColEndingTime, ColHours, ColDescription, ColClosed},
	KindProject: {ColProjectHours, ColProjectDescription, ColProjectCreated, ColProjectID},
}

var keyColumns = map[Kind][]string{
	KindWeekly:  {ColWeek, ColDate, ColStartingTime, ColEndingTime},
	KindMonthly: {ColMonth, ColWeek, ColDate, ColStartingTime, ColEndingTime},
	KindProject: {ColProjectID},
}

// DerivedColumns are appended to every stored row at merge time.
var DerivedColumns = []string{ColImportDate, ColSourceFile}

// Kinds lists the report kinds in classification precedence order.
var Kinds = []Kind{KindProject, KindMonthly, KindWeekly}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schemas[k]; !ok {
		return "", fmt.Errorf("unknown report kind %q", s)
	}
	return k, nil
}

// KindForSheet infers the report kind stored in a sheet from its name.
// Unpartitioned "weekly" and "monthly" sheets from older archives are recognised.
func KindForSheet(name string) Kind {
	switch {
	case name == string(KindWeekly) || strings.HasPrefix(name, "weekly_"):
		return KindWeekly
	case name == string(KindMonthly) || strings.HasPrefix(name, "monthly_"):
		return KindMonthly
	default:
		return KindProject
	}
}

// Columns returns the canonical column order for kind.
func Columns(kind Kind) []string {
	return append([]string(nil), schemas[kind]...)
}

// StoredColumns returns the canonical columns followed by the derived columns.
func StoredColumns(kind Kind) []string {
	return append(Columns(kind), DerivedColumns...)
}

// KeyColumns returns the composite dedup key columns for kind.
func KeyColumns(kind Kind) []string {
	return append([]string(nil), keyColumns[kind]...)
}

// DateColumn returns the column rows of kind are sorted by.
func DateColumn(kind Kind) string {
	if kind == KindProject {
		return ColProjectCreated
	}
	return ColDate
}

// HoursColumn returns the column holding worked hours for kind.
func HoursColumn(kind Kind) string {
	if kind == KindProject {
		return ColProjectHours
	}
	return ColHours
}
