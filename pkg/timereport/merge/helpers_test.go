package merge

import (
	"time"

	"github.com/time-butler/timereport/pkg/timereport/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekly(week float64, date time.Time, start, end string, hours float64) models.WeeklyRow {
	return models.WeeklyRow{Entry: models.Entry{
		Week:         models.Some(week),
		Date:         models.Some(date),
		StartingTime: models.Some(start),
		EndingTime:   models.Some(end),
		Hours:        models.Hours(hours),
		Description:  models.Some("dev work"),
		Closed:       models.Some(true),
	}}
}

func project(id string, created time.Time, hours float64) models.ProjectRow {
	return models.ProjectRow{
		Hours:       models.Hours(hours),
		Description: models.Some("task " + id),
		Created:     models.Some(created),
		ID:          models.Some(id),
	}
}
