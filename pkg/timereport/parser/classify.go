package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/time-butler/timereport/pkg/timereport/models"
)

var (
	timestampedReport = regexp.MustCompile(`^([^_]+(?:-[^_]+)*)_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}_time_report$`)
	plainReport       = regexp.MustCompile(`^([^_]+(?:-[^_]+)*)_time_report$`)
)

// Classification is the outcome of inspecting a table's header.
type Classification struct {
	Kind models.Kind
	// Project is set for project reports only.
	Project string
}

// Classify decides the report kind from the header names. A header that
// satisfies several schemas resolves as project, then monthly, then weekly.
func Classify(headers []string, filename string) (Classification, error) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.ToLower(h)] = true
	}

	isProject := true
	for _, col := range models.Columns(models.KindProject) {
		if !present[col] {
			isProject = false
			break
		}
	}

	switch {
	case isProject:
		return Classification{Kind: models.KindProject, Project: ProjectName(filename)}, nil
	case present["month"]:
		return Classification{Kind: models.KindMonthly}, nil
	case present["week"]:
		return Classification{Kind: models.KindWeekly}, nil
	}
	return Classification{}, &ClassificationError{Found: append([]string(nil), headers...)}
}

// ProjectName derives a project name from a report file name by removing a
// "_<date>_<time>_time_report" or "_time_report" suffix. Names matching
// neither pattern are returned as the bare file stem.
func ProjectName(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if m := timestampedReport.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	if m := plainReport.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	return stem
}
