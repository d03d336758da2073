package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/time-butler/timereport/pkg/timereport"
	"github.com/time-butler/timereport/pkg/timereport/merge"
	"github.com/time-butler/timereport/pkg/timereport/models"
)

func sampleReport() *timereport.Report {
	eight := decimal.NewFromInt(8)
	hours := &merge.HoursStats{Total: eight, Mean: eight, Min: eight, Max: eight}
	added := merge.Summary{
		Kind:      models.KindWeekly,
		Records:   1,
		Hours:     hours,
		DateRange: &merge.DateRange{Start: "2024-06-10", End: "2024-06-10"},
		Weeks:     []float64{24},
	}
	target := added
	target.Sheet = "weekly_2024"
	return &timereport.Report{
		Input:     "week24.csv",
		Kind:      models.KindWeekly,
		Sheet:     "weekly_2024",
		Incoming:  1,
		Appended:  1,
		Added:     &added,
		Target:    &target,
		Sheets:    []merge.Summary{target, {Sheet: "Alpha", Kind: models.KindProject, Records: 2}},
		StorePath: "time_reports_archive.xlsx",
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport()))
	out := buf.String()

	for _, want := range []string{
		"Processing completed successfully!",
		"Processed: week24.csv (weekly report)",
		"Added: 1 entries",
		"Hours added: 8.00",
		"Avg hours/entry: 8.00",
		"Date range: 2024-06-10 to 2024-06-10",
		"Weeks: [24]",
		"Total Records in 'weekly_2024' sheet:",
		"Total hours: 8.00",
		"weekly_2024: 1 records, 8.00 hours",
		"Alpha: 2 records\n",
		"Output file: time_reports_archive.xlsx",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "duplicate")
}

func TestWriteReportDuplicates(t *testing.T) {
	r := sampleReport()
	r.Appended, r.Discarded = 0, 1
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r))
	assert.Contains(t, buf.String(), "1 duplicate entries found and discarded.")
	assert.Contains(t, buf.String(), "Duplicates discarded: 1")
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleReport()))
	assert.NotContains(t, buf.String(), "Processing completed")
	assert.Contains(t, buf.String(), "All Sheets:")
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "weekly_2024", decoded["sheet"])
	assert.Equal(t, float64(1), decoded["appended"])

	pretty, err := ToJSON(sampleReport(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"input\": \"week24.csv\"")
}
