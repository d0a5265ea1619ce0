package utils

import (
	"log"
	"time"
)

// GetMarketTimeLocation returns the US equity market time zone.
func GetMarketTimeLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

func TimeNowET() time.Time {
	return time.Now().In(GetMarketTimeLocation())
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// PrettyDate formats t in market time for notifications, e.g. "Mon, 10 Jun 2024 11:00 EDT".
func PrettyDate(t time.Time) string {
	return t.In(GetMarketTimeLocation()).Format("Mon, 02 Jan 2006 15:04 MST")
}
