package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/time-butler/timereport/pkg/timereport/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		filename string
		kind     models.Kind
		project  string
	}{
		{"weekly", []string{"Week", "Date", "StartingTime", "EndingTime", "Hours", "Description", "Closed"}, "week24.csv", models.KindWeekly, ""},
		{"monthly", []string{"Month", "Week", "Date", "Hours"}, "may.csv", models.KindMonthly, ""},
		{"lowercase monthly", []string{"month", "date"}, "may.csv", models.KindMonthly, ""},
		{"project", []string{"hours", "description", "created", "id"}, "SPA2-Generic_time_report.csv", models.KindProject, "SPA2-Generic"},
		{"project case-insensitive", []string{"Hours", "Description", "Created", "ID", "extra"}, "x.csv", models.KindProject, "x"},
		{"project wins over monthly", []string{"hours", "description", "created", "id", "Month", "Week"}, "p.csv", models.KindProject, "p"},
		{"monthly wins over weekly", []string{"Week", "Month"}, "m.csv", models.KindMonthly, ""},
	}

	for _, tt := range tests {
		got, err := Classify(tt.headers, tt.filename)
		if err != nil {
			t.Errorf("%s: Classify returned error: %v", tt.name, err)
			continue
		}
		if got.Kind != tt.kind || got.Project != tt.project {
			t.Errorf("%s: Classify = %+v, expected kind %s project %q", tt.name, got, tt.kind, tt.project)
		}
		again, _ := Classify(tt.headers, tt.filename)
		if again != got {
			t.Errorf("%s: Classify not deterministic: %+v then %+v", tt.name, got, again)
		}
	}
}

func TestClassifyFailure(t *testing.T) {
	_, err := Classify([]string{"Date", "Hours"}, "x.csv")
	var ce *ClassificationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}
	if len(ce.Found) != 2 {
		t.Errorf("expected found columns to be reported, got %v", ce.Found)
	}
	msg := err.Error()
	for _, want := range []string{"Weekly:", "Monthly:", "Project:", `"Date"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"SPA2-Generic_2024-06-10_08-30-00_time_report.csv", "SPA2-Generic"},
		{"/tmp/reports/SPA2-Generic_time_report.csv", "SPA2-Generic"},
		{"Alpha_time_report.csv", "Alpha"},
		{"my_report.csv", "my_report"},
		{"a_b_time_report.csv", "a_b_time_report"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := ProjectName(tt.filename); got != tt.expected {
			t.Errorf("ProjectName(%q) = %q, expected %q", tt.filename, got, tt.expected)
		}
	}
}
