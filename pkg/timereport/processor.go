package timereport

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/time-butler/timereport/pkg/timereport/merge"
	"github.com/time-butler/timereport/pkg/timereport/models"
	"github.com/time-butler/timereport/pkg/timereport/parser"
	"github.com/time-butler/timereport/pkg/timereport/store"
)

// Processor runs the classify, normalize, merge and persist stages against
// one archive. It is not safe to run two processors on the same archive at
// once.
type Processor struct {
	opts Options
}

// NewProcessor creates a Processor.
func NewProcessor(opts Options) *Processor {
	return &Processor{opts: opts}
}

// Report is the outcome of a run.
type Report struct {
	// Input is the processed file's base name; empty for summary runs.
	Input     string      `json:"input,omitempty"`
	Kind      models.Kind `json:"kind,omitempty"`
	Project   string      `json:"project,omitempty"`
	Encoding  string      `json:"encoding,omitempty"`
	Sheet     string      `json:"sheet,omitempty"`
	Incoming  int         `json:"incoming,omitempty"`
	Appended  int         `json:"appended"`
	Discarded int         `json:"discarded"`
	Warnings  []string    `json:"warnings,omitempty"`
	// Added summarizes the appended rows.
	Added *merge.Summary `json:"added,omitempty"`
	// Target summarizes the whole target sheet after the merge.
	Target *merge.Summary `json:"target,omitempty"`
	// Sheets summarizes every non-empty sheet in the archive.
	Sheets    []merge.Summary `json:"sheets"`
	StorePath string          `json:"store"`
}

// Batch reads, classifies and normalizes a CSV file.
func (p *Processor) Batch(csvPath string) (merge.Batch, *parser.Table, []parser.Warning, error) {
	if _, err := os.Stat(csvPath); errors.Is(err, os.ErrNotExist) {
		return merge.Batch{}, nil, nil, &InputError{Path: csvPath, Err: ErrFileNotFound}
	}

	table, err := parser.ReadTable(csvPath, p.opts.Encodings)
	if err != nil {
		return merge.Batch{}, nil, nil, &InputError{Path: csvPath, Err: err}
	}
	log.Info().
		Int("rows", len(table.Records)).
		Strs("columns", table.Headers).
		Msg("Loaded CSV")

	name := filepath.Base(csvPath)
	class, err := parser.Classify(table.Headers, name)
	if err != nil {
		return merge.Batch{}, nil, nil, &InputError{Path: csvPath, Err: err}
	}
	log.Info().Str("kind", string(class.Kind)).Str("project", class.Project).Msg("Detected report type")

	rows, warnings := parser.Normalize(table, class.Kind)
	return merge.Batch{
		Kind:       class.Kind,
		Project:    class.Project,
		SourceFile: name,
		Rows:       rows,
	}, table, warnings, nil
}

// Process merges csvPath into the archive and saves it.
func (p *Processor) Process(csvPath string) (*Report, error) {
	log.Info().Str("input", csvPath).Msg("Starting processing")

	batch, table, warnings, err := p.Batch(csvPath)
	if err != nil {
		return nil, err
	}

	now := p.opts.now()
	path := p.opts.storePath()
	wb, err := store.Load(path, p.opts.OnCorrupt, now)
	if err != nil {
		return nil, err
	}

	merged, res := merge.Merge(wb, batch, now)
	if err := store.Save(path, merged); err != nil {
		return nil, err
	}

	added := merge.Summarize(batch.Kind, res.Rows)
	target := merge.Summarize(batch.Kind, merged.Sheet(res.Sheet).Rows)
	target.Sheet = res.Sheet

	r := &Report{
		Input:     batch.SourceFile,
		Kind:      batch.Kind,
		Project:   batch.Project,
		Encoding:  table.Encoding,
		Sheet:     res.Sheet,
		Incoming:  res.Incoming,
		Appended:  res.Appended,
		Discarded: res.Discarded,
		Added:     &added,
		Target:    &target,
		Sheets:    merge.SummarizeWorkbook(merged),
		StorePath: path,
	}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r, nil
}

// Summary reports on the archive without modifying it.
func (p *Processor) Summary() (*Report, error) {
	path := p.opts.storePath()
	wb, err := store.Load(path, p.opts.OnCorrupt, p.opts.now())
	if err != nil {
		return nil, err
	}
	return &Report{Sheets: merge.SummarizeWorkbook(wb), StorePath: path}, nil
}
