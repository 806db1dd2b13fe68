package stats

import "fmt"

// FormatClock renders seconds as H:MM:SS. Negative values, which the timer
// engine produces on overrun, keep their sign.
func FormatClock(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

// FormatHours renders an hour value the way chart axes label it.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// FormatDuration renders seconds as "Xh Ym" for tooltips.
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", h, m)
}
