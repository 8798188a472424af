package gamification

import (
	"fmt"
	"math"
	"time"
)

// formatDayLabel renders a date as "2 Jan", the label the dashboard charts
// put on their axes.
func formatDayLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), t.Format("Jan"))
}

// formatWeekRange renders "2-8 Jan" when both ends share a month, and
// "28 Jan - 3 Feb" otherwise.
func formatWeekRange(start, end time.Time) string {
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d-%d %s", start.Day(), end.Day(), start.Format("Jan"))
	}
	return fmt.Sprintf("%d %s - %d %s", start.Day(), start.Format("Jan"), end.Day(), end.Format("Jan"))
}

// roundHours keeps one decimal place, matching the original chart payloads.
func roundHours(h float64) float64 {
	return math.Round(h*10) / 10
}
