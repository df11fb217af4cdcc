package utils

import (
	"log"
	"time"
)

// TimeNowKST returns the current time in the Seoul market timezone.
func TimeNowKST() time.Time {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// LastWeekday walks back from t until it lands on a weekday, formatted
// as the compact trade-date string used by the KRX endpoints.
func LastWeekday(t time.Time) string {
	d := t
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d.Format("20060102")
}

// DaysBack returns the trade-date string n calendar days before the
// given compact date.
func DaysBack(date string, n int) string {
	d, err := time.Parse("20060102", date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, -n).Format("20060102")
}

// WeekdaysBack returns the trade-date string n weekdays before the
// given compact date. Holidays are not modeled; callers treat the
// window as approximate and align on actual trading rows.
func WeekdaysBack(date string, n int) string {
	d, err := time.Parse("20060102", date)
	if err != nil {
		return date
	}
	for i := 0; i < n; {
		d = d.AddDate(0, 0, -1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			i++
		}
	}
	return d.Format("20060102")
}
