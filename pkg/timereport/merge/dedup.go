// Package merge deduplicates normalized rows against the archive and merges
// them into year or project partitioned sheets.
package merge

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/time-butler/timereport/pkg/timereport/models"
)

// Dedup returns the incoming rows whose composite key matches no row of
// existing, and how many were discarded. Key columns missing from the
// existing sheet's header are left out of the key; when none remain every
// row is kept.
func Dedup(incoming []models.Row, existing *models.Sheet) ([]models.Row, int) {
	if existing.Len() == 0 || len(incoming) == 0 {
		return incoming, 0
	}

	var cols []string
	for _, col := range models.KeyColumns(incoming[0].Kind()) {
		if existing.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		log.Warn().Str("sheet", existing.Name).Msg("No common key columns found for duplicate detection")
		return incoming, 0
	}

	seen := make(map[string]struct{}, existing.Len())
	for _, r := range existing.Rows {
		seen[Key(r, cols)] = struct{}{}
	}

	kept := make([]models.Row, 0, len(incoming))
	for _, r := range incoming {
		if _, dup := seen[Key(r, cols)]; dup {
			continue
		}
		kept = append(kept, r)
	}

	discarded := len(incoming) - len(kept)
	if discarded > 0 {
		log.Warn().
			Int("duplicates", discarded).
			Str("sheet", existing.Name).
			Msg("Duplicate entries discarded")
	}
	return kept, discarded
}

// Key renders the values of cols in r as one comparable string.
func Key(r models.Row, cols []string) string {
	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		v := r.Field(col)
		if v.Null {
			b.WriteByte(0)
			continue
		}
		b.WriteString(v.Text)
	}
	return b.String()
}
