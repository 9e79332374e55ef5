package utils

import "time"

const DayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day key used by the usage gate. Counters reset
// implicitly when this value rolls over, because the row for the new date
// does not exist yet.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayKeyLayout)
}

func TodayKey(loc *time.Location) string {
	return DayKey(time.Now(), loc)
}
