package timereport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/time-butler/timereport/pkg/timereport/models"
	"github.com/time-butler/timereport/pkg/timereport/store"
)

const weeklyCSV = "Week,Date,StartingTime,EndingTime,Hours,Description,Closed\n" +
	"24,2024-06-10,08:00,16:00,8,dev work,true\n"

func newTestProcessor(t *testing.T) (*Processor, string) {
	t.Helper()
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.StorePath = filepath.Join(dir, "archive.xlsx")
	opts.Now = func() time.Time { return time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC) }
	return NewProcessor(opts), dir
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessWeeklyIntoEmptyStore(t *testing.T) {
	p, dir := newTestProcessor(t)
	input := writeCSV(t, dir, "week24.csv", weeklyCSV)

	report, err := p.Process(input)
	require.NoError(t, err)
	assert.Equal(t, models.KindWeekly, report.Kind)
	assert.Equal(t, "weekly_2024", report.Sheet)
	assert.Equal(t, 1, report.Appended)
	assert.Zero(t, report.Discarded)

	wb, err := store.Load(p.opts.StorePath, store.PolicyFail, p.opts.now())
	require.NoError(t, err)
	assert.Equal(t, []string{"weekly_2024"}, wb.Names())
	sheet := wb.Sheet("weekly_2024")
	require.Equal(t, 1, sheet.Len())

	row := sheet.Rows[0].(models.WeeklyRow)
	assert.Equal(t, "8", row.Hours.Decimal.String())
	assert.True(t, row.Closed.Valid && row.Closed.V)
	assert.Equal(t, "week24.csv", row.Import.SourceFile.V)
	assert.Equal(t, "2025-01-15 09:30:00", row.Field(models.ColImportDate).Text)
}

func TestProcessSameFileTwice(t *testing.T) {
	p, dir := newTestProcessor(t)
	input := writeCSV(t, dir, "week24.csv", weeklyCSV)

	_, err := p.Process(input)
	require.NoError(t, err)
	report, err := p.Process(input)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Discarded)
	assert.Zero(t, report.Appended)
	assert.Equal(t, 1, report.Target.Records)
}

func TestProcessProjectWithBadHours(t *testing.T) {
	p, dir := newTestProcessor(t)
	input := writeCSV(t, dir, "SPA2-Generic_2024-06-10_08-30-00_time_report.csv",
		"hours,description,created,id\nabc,planning,2024-06-10T08:00:00Z,7\n")

	report, err := p.Process(input)
	require.NoError(t, err)
	assert.Equal(t, "SPA2-Generic", report.Project)
	assert.Equal(t, "SPA2-Generic", report.Sheet)
	assert.Len(t, report.Warnings, 1)

	wb, err := store.Load(p.opts.StorePath, store.PolicyFail, p.opts.now())
	require.NoError(t, err)
	row := wb.Sheet("SPA2-Generic").Rows[0].(models.ProjectRow)
	assert.False(t, row.Hours.Valid)
	assert.Equal(t, "7", row.ID.V)
}

func TestProcessInputErrorsLeaveStoreAlone(t *testing.T) {
	p, dir := newTestProcessor(t)
	seed := writeCSV(t, dir, "week24.csv", weeklyCSV)
	_, err := p.Process(seed)
	require.NoError(t, err)
	before, err := os.ReadFile(p.opts.StorePath)
	require.NoError(t, err)

	_, err = p.Process(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = p.Process(writeCSV(t, dir, "empty.csv", "Week,Date\n"))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = p.Process(writeCSV(t, dir, "odd.csv", "Foo,Bar\n1,2\n"))
	var ce *ClassificationError
	assert.True(t, errors.As(err, &ce))
	var ie *InputError
	assert.True(t, errors.As(err, &ie))

	after, err := os.ReadFile(p.opts.StorePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProcessCorruptStoreFailPolicy(t *testing.T) {
	p, dir := newTestProcessor(t)
	p.opts.OnCorrupt = store.PolicyFail
	require.NoError(t, os.WriteFile(p.opts.StorePath, []byte("garbage"), 0644))

	_, err := p.Process(writeCSV(t, dir, "week24.csv", weeklyCSV))
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	data, _ := os.ReadFile(p.opts.StorePath)
	assert.Equal(t, "garbage", string(data))
}

func TestSummaryDoesNotModifyStore(t *testing.T) {
	p, dir := newTestProcessor(t)
	_, err := p.Process(writeCSV(t, dir, "week24.csv", weeklyCSV))
	require.NoError(t, err)
	_, err = p.Process(writeCSV(t, dir, "may.csv",
		"Month,Week,Date,StartingTime,EndingTime,Hours,Description,Closed\n5,19,2023-05-08,09:00,12:00,3,ops,FALSE\n"))
	require.NoError(t, err)

	info, err := os.Stat(p.opts.StorePath)
	require.NoError(t, err)

	report, err := p.Summary()
	require.NoError(t, err)
	require.Len(t, report.Sheets, 2)
	assert.Equal(t, "weekly_2024", report.Sheets[0].Sheet)
	assert.Equal(t, "monthly_2023", report.Sheets[1].Sheet)
	assert.Equal(t, "3", report.Sheets[1].TotalHours().String())

	after, err := os.Stat(p.opts.StorePath)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestProcessProjectNamedLikeMonthlySheetTwice(t *testing.T) {
	p, dir := newTestProcessor(t)
	input := writeCSV(t, dir, "monthly_sync_time_report.csv",
		"hours,description,created,id\n2,plan,2024-06-10T08:00:00.123456Z,7\n")

	first, err := p.Process(input)
	require.NoError(t, err)
	assert.Equal(t, models.KindProject, first.Kind)
	assert.Equal(t, "monthly_sync", first.Sheet)
	assert.Equal(t, 1, first.Appended)

	second, err := p.Process(input)
	require.NoError(t, err)
	assert.Zero(t, second.Appended)
	assert.Equal(t, 1, second.Discarded)

	wb, err := store.Load(p.opts.StorePath, store.PolicyFail, p.opts.now())
	require.NoError(t, err)
	sheet := wb.Sheet("monthly_sync")
	require.NotNil(t, sheet)
	assert.Equal(t, models.KindProject, sheet.Kind)
	require.Equal(t, 1, sheet.Len())
	row, ok := sheet.Rows[0].(models.ProjectRow)
	require.True(t, ok, "got %T", sheet.Rows[0])
	assert.Equal(t, "7", row.ID.V)
	assert.Equal(t, "2024-06-10 08:00:00.123", row.Field(models.ColProjectCreated).Text)
}

func TestProcessCorruptStoreBackupUsesRunClock(t *testing.T) {
	p, dir := newTestProcessor(t)
	p.opts.OnCorrupt = store.PolicyBackup
	require.NoError(t, os.WriteFile(p.opts.StorePath, []byte("garbage"), 0644))

	report, err := p.Process(writeCSV(t, dir, "week24.csv", weeklyCSV))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Appended)

	data, err := os.ReadFile(p.opts.StorePath + ".corrupt-20250115-093000")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data))
}
