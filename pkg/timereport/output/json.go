// Package output renders run reports as text or JSON.
package output

import (
	"encoding/json"

	"github.com/time-butler/timereport/pkg/timereport"
)

// ToJSON serializes a report.
func ToJSON(r *timereport.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}
