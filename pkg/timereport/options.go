// Package timereport appends weekly, monthly and project time reports from
// CSV files to a single xlsx archive.
package timereport

import (
	"time"

	"github.com/time-butler/timereport/pkg/timereport/parser"
	"github.com/time-butler/timereport/pkg/timereport/store"
)

// DefaultStorePath is the archive used when none is given.
const DefaultStorePath = "time_reports_archive.xlsx"

// Options configures a Processor.
type Options struct {
	// StorePath is the xlsx archive to merge into.
	StorePath string
	// OnCorrupt decides what happens when the archive cannot be read.
	OnCorrupt store.CorruptPolicy
	// Encodings are tried in order when decoding the input.
	// If nil, parser.DefaultEncodings is used.
	Encodings []string
	// Now returns the run's wall-clock time. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		StorePath: DefaultStorePath,
		OnCorrupt: store.PolicyFallback,
		Encodings: parser.DefaultEncodings,
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) storePath() string {
	if o.StorePath == "" {
		return DefaultStorePath
	}
	return o.StorePath
}
