package domain

import "time"

const dayKeyLayout = "2006-01-02"

// Streak counts consecutive calendar days with at least one session,
// walking backward from today. A streak is still alive when today has no
// session yet but yesterday does; in that case today itself does not
// contribute to the count. Always recomputed from session start dates,
// never stored.
func Streak(startDates []time.Time, now time.Time) int {
	loc := now.Location()
	days := make(map[string]struct{}, len(startDates))
	for _, started := range startDates {
		days[started.In(loc).Format(dayKeyLayout)] = struct{}{}
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if _, ok := days[day.Format(dayKeyLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := days[day.Format(dayKeyLayout)]; !ok {
			return 0
		}
	}

	count := 0
	for {
		if _, ok := days[day.Format(dayKeyLayout)]; !ok {
			return count
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
}
