package streak

import (
	"sort"
	"time"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/dateutil"
)

// Current returns the streak the habit holds as of today. Daily habits count
// consecutive completed days ending today or yesterday, weekly habits count
// consecutive Monday-start weeks with at least times-per-week completions.
func Current(habitType entity.HabitType, timesPerWeek *int, dates []time.Time, today time.Time) int {
	if habitType == entity.HabitDaily {
		return CurrentDaily(dates, today)
	}

	return CurrentWeekly(dates, timesPerWeek, today)
}

// Best returns the longest streak the habit has ever held.
func Best(habitType entity.HabitType, timesPerWeek *int, dates []time.Time, today time.Time) int {
	if habitType == entity.HabitDaily {
		return BestDaily(dates)
	}

	return BestWeekly(dates, timesPerWeek, today)
}

func CurrentDaily(dates []time.Time, today time.Time) int {
	desc := uniqueDaysDesc(dates)
	if len(desc) == 0 {
		return 0
	}

	expected := dateutil.Day(today)
	if !desc[0].Equal(expected) {
		// A streak not extended today may still be alive until the end of
		// the day, so a chain ending yesterday counts in full.
		if !desc[0].Equal(expected.AddDate(0, 0, -1)) {
			return 0
		}
		expected = expected.AddDate(0, 0, -1)
	}

	streak := 0
	for _, date := range desc {
		if !date.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak
}

func BestDaily(dates []time.Time) int {
	asc := uniqueDaysAsc(dates)

	best, current := 0, 0
	var prev time.Time
	for i, date := range asc {
		if i == 0 || prev.AddDate(0, 0, 1).Equal(date) {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
		prev = date
	}

	return best
}

func CurrentWeekly(dates []time.Time, timesPerWeek *int, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	set := daySet(dates)
	weekStart := dateutil.WeekStart(today)
	streak := 0
	for isWeekCompleted(set, weekStart, timesPerWeek) {
		streak++
		weekStart = weekStart.AddDate(0, 0, -7)
	}

	return streak
}

func BestWeekly(dates []time.Time, timesPerWeek *int, today time.Time) int {
	asc := uniqueDaysAsc(dates)
	if len(asc) == 0 {
		return 0
	}

	set := daySet(asc)
	cursor := dateutil.WeekStart(asc[0])
	max := dateutil.WeekStart(today)
	best, current := 0, 0
	for !cursor.After(max) {
		if isWeekCompleted(set, cursor, timesPerWeek) {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 0
		}
		cursor = cursor.AddDate(0, 0, 7)
	}

	return best
}

func isWeekCompleted(set map[time.Time]struct{}, weekStart time.Time, timesPerWeek *int) bool {
	if timesPerWeek == nil {
		return false
	}

	count := 0
	for i := 0; i < 7; i++ {
		if _, ok := set[weekStart.AddDate(0, 0, i)]; ok {
			count++
		}
	}

	return count >= *timesPerWeek
}

func daySet(dates []time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(dates))
	for _, date := range dates {
		set[dateutil.Day(date)] = struct{}{}
	}

	return set
}

func uniqueDaysAsc(dates []time.Time) []time.Time {
	set := daySet(dates)
	days := make([]time.Time, 0, len(set))
	for day := range set {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days
}

func uniqueDaysDesc(dates []time.Time) []time.Time {
	days := uniqueDaysAsc(dates)
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}

	return days
}
