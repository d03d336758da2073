// Package store persists the time report archive as an xlsx workbook.
package store

import (
	"errors"
	"fmt"
)

// ErrNothingToSave indicates a workbook without any non-empty sheet.
var ErrNothingToSave = errors.New("workbook has no rows to save")

// StoreError represents a failure reading or writing the archive.
type StoreError struct {
	Path string
	Op   string // "load", "save", "backup"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
