package helper

import (
	"fmt"
	"strings"
)

// FormatLapTime converts a lap time in seconds to mm:ss.mmm.
func FormatLapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	minutes := int(seconds / 60)
	seconds = seconds - float64(minutes*60)
	wholeSeconds := int(seconds)
	milliseconds := int((seconds-float64(wholeSeconds))*1000 + 0.5)
	if milliseconds >= 1000 {
		milliseconds -= 1000
		wholeSeconds++
	}
	if wholeSeconds >= 60 {
		wholeSeconds -= 60
		minutes++
	}
	return fmt.Sprintf("%d:%02d.%03d", minutes, wholeSeconds, milliseconds)
}

// FormatDelta renders a time delta with millisecond precision.
func FormatDelta(seconds float64) string {
	if seconds < 0 {
		return "-"
	}
	return fmt.Sprintf("+%.3fs", seconds)
}

// FormatSpeed renders a speed in km/h with one decimal.
func FormatSpeed(kmh float64) string {
	return fmt.Sprintf("%.1f km/h", kmh)
}

// NormalizeDriverCode uppercases a driver identifier and trims it to the
// 3-letter code used by the timing API.
func NormalizeDriverCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}
