package dateutil

import "time"

// DayFormat is the canonical representation of a calendar day. Dates are
// compared and stored as plain YYYY-MM-DD strings, so lexicographic order
// matches chronological order.
const DayFormat = "2006-01-02"

func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// Day truncates t to a timezone-free calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func MonthStart(t time.Time) time.Time {
	d := Day(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

func DaysInMonth(t time.Time) int {
	return MonthEnd(t).Day()
}
