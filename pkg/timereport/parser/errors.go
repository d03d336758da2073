package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/time-butler/timereport/pkg/timereport/models"
)

// ErrEmptyInput indicates the input table has no data rows.
var ErrEmptyInput = errors.New("CSV file is empty")

// ErrUndecodable indicates no supported text encoding could decode the input.
var ErrUndecodable = errors.New("could not read CSV file with any supported encoding")

// ClassificationError reports a header that matches no report schema.
type ClassificationError struct {
	Found []string
}

func (e *ClassificationError) Error() string {
	var b strings.Builder
	b.WriteString("cannot determine report type. Expected columns for:\n")
	for _, kind := range []models.Kind{models.KindWeekly, models.KindMonthly, models.KindProject} {
		fmt.Fprintf(&b, "- %s: %s\n", strings.ToUpper(string(kind[:1]))+string(kind[1:]), strings.Join(models.Columns(kind), ", "))
	}
	fmt.Fprintf(&b, "Found columns: %q", e.Found)
	return b.String()
}
