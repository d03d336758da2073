package store

import (
	"fmt"
	"strings"
)

// CorruptPolicy decides what Load does with an archive it cannot read.
type CorruptPolicy string

const (
	// PolicyFallback logs the error and continues with an empty workbook.
	// The next save replaces the unreadable file.
	PolicyFallback CorruptPolicy = "fallback"
	// PolicyBackup copies the unreadable file aside, then falls back.
	PolicyBackup CorruptPolicy = "backup"
	// PolicyFail returns the error and leaves the file untouched.
	PolicyFail CorruptPolicy = "fail"
)

// ParseCorruptPolicy parses a policy name; "" selects PolicyFallback.
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	switch p := CorruptPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFallback, nil
	case PolicyFallback, PolicyBackup, PolicyFail:
		return p, nil
	}
	return "", fmt.Errorf("invalid corrupt-store policy %q (must be fallback, backup, or fail)", s)
}
