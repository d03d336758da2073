package merge

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/time-butler/timereport/pkg/timereport/models"
)

// Summary holds read-only statistics over a set of rows.
type Summary struct {
	Sheet     string      `json:"sheet,omitempty"`
	Kind      models.Kind `json:"kind"`
	Records   int         `json:"records"`
	Hours     *HoursStats `json:"hours,omitempty"`
	DateRange *DateRange  `json:"date_range,omitempty"`
	Weeks     []float64   `json:"weeks,omitempty"`
	Months    []float64   `json:"months,omitempty"`
}

// HoursStats aggregates the non-null hours values.
type HoursStats struct {
	Total decimal.Decimal `json:"total"`
	Mean  decimal.Decimal `json:"mean"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

// DateRange is the span of the non-null date column values.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TotalHours returns the summed hours, zero when no hours are present.
func (s Summary) TotalHours() decimal.Decimal {
	if s.Hours == nil {
		return decimal.Zero
	}
	return s.Hours.Total
}

// Summarize computes statistics for rows of kind.
func Summarize(kind models.Kind, rows []models.Row) Summary {
	s := Summary{Kind: kind, Records: len(rows)}
	if len(rows) == 0 {
		return s
	}

	var hours []decimal.Decimal
	weeks := map[float64]bool{}
	months := map[float64]bool{}
	var first, last models.Row

	for _, r := range rows {
		if h := r.HoursValue(); h.Valid {
			hours = append(hours, h.Decimal)
		}
		if d := r.Date(); d.Valid {
			if first == nil || d.V.Before(first.Date().V) {
				first = r
			}
			if last == nil || d.V.After(last.Date().V) {
				last = r
			}
		}
		switch v := r.(type) {
		case models.WeeklyRow:
			if v.Week.Valid {
				weeks[v.Week.V] = true
			}
		case models.MonthlyRow:
			if v.Week.Valid {
				weeks[v.Week.V] = true
			}
			if v.Month.Valid {
				months[v.Month.V] = true
			}
		}
	}

	if len(hours) > 0 {
		total := decimal.Sum(hours[0], hours[1:]...)
		s.Hours = &HoursStats{
			Total: total,
			Mean:  total.Div(decimal.NewFromInt(int64(len(hours)))),
			Min:   decimal.Min(hours[0], hours[1:]...),
			Max:   decimal.Max(hours[0], hours[1:]...),
		}
	}
	if first != nil {
		s.DateRange = &DateRange{
			Start: first.Date().V.Format(models.DateLayout),
			End:   last.Date().V.Format(models.DateLayout),
		}
	}
	s.Weeks = sortedKeys(weeks)
	s.Months = sortedKeys(months)
	return s
}

// SummarizeWorkbook summarizes every non-empty sheet in file order.
func SummarizeWorkbook(wb *models.Workbook) []Summary {
	var out []Summary
	for _, sheet := range wb.Sheets() {
		if sheet.Len() == 0 {
			continue
		}
		s := Summarize(sheet.Kind, sheet.Rows)
		s.Sheet = sheet.Name
		out = append(out, s)
	}
	return out
}

func sortedKeys(m map[float64]bool) []float64 {
	if len(m) == 0 {
		return nil
	}
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}
