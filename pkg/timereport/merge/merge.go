package merge

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/time-butler/timereport/pkg/timereport/models"
)

// Batch is one normalized input file.
type Batch struct {
	Kind models.Kind
	// Project names the target sheet of project reports.
	Project string
	// SourceFile is the input file's base name.
	SourceFile string
	Rows       []models.Row
}

// Result describes what a merge did to its target sheet.
type Result struct {
	Sheet     string
	Incoming  int
	Appended  int
	Discarded int
	// Before and After are the sheet's row counts around the merge.
	Before int
	After  int
	// Rows are the appended rows as stored, import metadata included.
	Rows []models.Row
}

// SheetName resolves the sheet a batch belongs to. Weekly and monthly
// batches go to <kind>_<year> where year is the most frequent year in the
// dates (the smaller one on a tie), or now's year when no date is present.
func SheetName(kind models.Kind, project string, rows []models.Row, now time.Time) string {
	if kind == models.KindProject {
		return models.SanitizeSheetName(project)
	}
	return fmt.Sprintf("%s_%d", kind, ModeYear(rows, now.Year()))
}

// ModeYear returns the most frequent year among the rows' dates, or def.
func ModeYear(rows []models.Row, def int) int {
	counts := make(map[int]int)
	for _, r := range rows {
		if d := r.Date(); d.Valid {
			counts[d.V.Year()]++
		}
	}
	year, best := def, 0
	for y, c := range counts {
		if c > best || (c == best && y < year) {
			year, best = y, c
		}
	}
	return year
}

// Merge returns a copy of wb with the batch's new rows appended to their
// sheet, stamped with the import time and source file, and the sheet
// re-sorted by date. wb itself is not modified.
func Merge(wb *models.Workbook, b Batch, now time.Time) (*models.Workbook, Result) {
	name := SheetName(b.Kind, b.Project, b.Rows, now)
	existing := wb.Sheet(name)
	if existing != nil && existing.Kind != b.Kind {
		log.Warn().
			Str("sheet", name).
			Str("kind", string(existing.Kind)).
			Str("using", kindedName(name, b.Kind)).
			Msg("Sheet name holds another report kind")
		name = kindedName(name, b.Kind)
		existing = wb.Sheet(name)
	}
	res := Result{Sheet: name, Incoming: len(b.Rows)}

	if existing == nil {
		existing = models.NewSheet(name, b.Kind)
		log.Info().Str("sheet", name).Msg("Created new sheet")
	}
	res.Before = existing.Len()

	kept, discarded := Dedup(b.Rows, existing)
	res.Discarded = discarded
	res.Appended = len(kept)

	meta := models.Import{
		Date:       models.Some(models.Naive(now).Truncate(time.Second)),
		SourceFile: models.Some(b.SourceFile),
	}
	sheet := existing.Clone()
	sheet.Columns = nil
	for _, r := range kept {
		stamped := r.Stamped(meta)
		res.Rows = append(res.Rows, stamped)
		sheet.Rows = append(sheet.Rows, stamped)
	}
	SortRows(sheet.Rows)
	res.After = sheet.Len()

	out := wb.Clone()
	out.Put(sheet)

	log.Info().
		Int("appended", res.Appended).
		Int("discarded", res.Discarded).
		Str("sheet", name).
		Msg("Appended rows")
	return out, res
}

// kindedName suffixes name with kind, keeping it within the sheet name limit.
func kindedName(name string, kind models.Kind) string {
	suffix := "_" + string(kind)
	r := []rune(name)
	if limit := models.MaxSheetNameLength - len(suffix); len(r) > limit {
		r = r[:limit]
	}
	return string(r) + suffix
}

// SortRows orders rows ascending by date; rows without a date go last and
// keep their relative order.
func SortRows(rows []models.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Date(), rows[j].Date()
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		return a.V.Before(b.V)
	})
}
