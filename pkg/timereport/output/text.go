package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/time-butler/timereport/pkg/timereport"
	"github.com/time-butler/timereport/pkg/timereport/merge"
)

const bullet = "   • "

// WriteReport prints the multi-section report of a processing run.
func WriteReport(w io.Writer, r *timereport.Report) error {
	p := &printer{w: w}

	if r.Discarded > 0 {
		p.linef("%d duplicate entries found and discarded.", r.Discarded)
	}
	p.linef("\nProcessing completed successfully!")
	p.linef("Summary:")
	p.linef(bullet+"Processed: %s (%s report)", r.Input, r.Kind)
	if r.Project != "" {
		p.linef(bullet+"Project: %s", r.Project)
	}
	p.linef(bullet+"Added: %d entries", r.Appended)
	if r.Discarded > 0 {
		p.linef(bullet+"Duplicates discarded: %d", r.Discarded)
	}
	if a := r.Added; a != nil {
		if a.Hours != nil && !a.Hours.Total.IsZero() {
			p.linef(bullet+"Hours added: %s", a.Hours.Total.StringFixed(2))
			p.linef(bullet+"Avg hours/entry: %s", a.Hours.Mean.StringFixed(2))
		}
		if a.DateRange != nil {
			p.linef(bullet+"Date range: %s to %s", a.DateRange.Start, a.DateRange.End)
		}
		if len(a.Weeks) > 0 {
			p.linef(bullet+"Weeks: %s", numbers(a.Weeks))
		}
		if len(a.Months) > 0 {
			p.linef(bullet+"Months: %s", numbers(a.Months))
		}
	}
	if len(r.Warnings) > 0 {
		p.linef(bullet+"Warnings: %d", len(r.Warnings))
	}

	if t := r.Target; t != nil {
		p.linef("\nTotal Records in '%s' sheet:", r.Sheet)
		p.linef(bullet+"Records: %d", t.Records)
		if total := t.TotalHours(); !total.IsZero() {
			p.linef(bullet+"Total hours: %s", total.StringFixed(2))
		}
	}

	p.sheets(r)
	return p.err
}

// WriteSummary prints the per-sheet overview of the archive.
func WriteSummary(w io.Writer, r *timereport.Report) error {
	p := &printer{w: w}
	p.sheets(r)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) sheets(r *timereport.Report) {
	p.linef("\nAll Sheets:")
	for _, s := range r.Sheets {
		p.linef(bullet+"%s", sheetLine(s))
	}
	p.linef(bullet+"Output file: %s", r.StorePath)
}

func sheetLine(s merge.Summary) string {
	line := fmt.Sprintf("%s: %d records", s.Sheet, s.Records)
	if total := s.TotalHours(); total.IsPositive() {
		line += fmt.Sprintf(", %s hours", total.StringFixed(2))
	}
	return line
}

func numbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
