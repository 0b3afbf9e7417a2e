package planner

import (
	"math"
	"time"
)

// Duration returns the inclusive number of calendar days between start and end.
// The order of the arguments does not matter.
func Duration(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// expandDates lists the ISO dates of a trip starting at start.
func expandDates(start time.Time, days int) []string {
	result := make([]string, days)
	for i := 0; i < days; i++ {
		result[i] = start.AddDate(0, 0, i).Format(dateLayout)
	}
	return result
}
