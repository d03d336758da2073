package timereport

import (
	"errors"
	"fmt"

	"github.com/time-butler/timereport/pkg/timereport/parser"
	"github.com/time-butler/timereport/pkg/timereport/store"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// Input errors raised while reading the CSV file.
var (
	ErrEmptyInput  = parser.ErrEmptyInput
	ErrUndecodable = parser.ErrUndecodable
)

// ClassificationError reports an input whose header matches no report kind.
type ClassificationError = parser.ClassificationError

// StoreError reports a failure reading or writing the archive.
type StoreError = store.StoreError

// InputError represents a fatal problem with the input file. The archive is
// never modified when one is returned.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
