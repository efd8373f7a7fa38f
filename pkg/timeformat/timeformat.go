// Package timeformat renders timestamps the way the Kavun UI shows them:
// inbox date labels and coarse relative ages. Everything is computed at
// display time, nothing is stored.
package timeformat

import (
	"fmt"
	"time"
)

var turkishWeekdays = map[time.Weekday]string{
	time.Sunday:    "Pazar",
	time.Monday:    "Pazartesi",
	time.Tuesday:   "Salı",
	time.Wednesday: "Çarşamba",
	time.Thursday:  "Perşembe",
	time.Friday:    "Cuma",
	time.Saturday:  "Cumartesi",
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ConversationLabel formats a message timestamp for the inbox listing:
// same day, local time; previous day, "Dün"; within the last 7 days, the
// weekday name; anything older, dd/mm/yyyy.
func ConversationLabel(t, now time.Time) string {
	if sameDay(t, now) {
		return t.Format("15:04")
	}

	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Dün"
	}

	if now.Sub(t) < 7*24*time.Hour {
		return turkishWeekdays[t.Weekday()]
	}

	return t.Format("02/01/2006")
}

// RelativeAge buckets an age into minutes, hours or days.
func RelativeAge(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())
	if minutes < 0 {
		minutes = 0
	}

	if minutes < 60 {
		return fmt.Sprintf("%d dakika önce", minutes)
	}
	if minutes < 24*60 {
		return fmt.Sprintf("%d saat önce", minutes/60)
	}
	return fmt.Sprintf("%d gün önce", minutes/(24*60))
}
