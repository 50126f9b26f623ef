// Package streak turns a set of logged workout days into streaks,
// rolling counts and a consistency score. Every function takes the
// current day explicitly; nothing here reads a clock.
package streak

import (
	"github.com/sadopc/gymstreak/internal/calendar"
)

// CurrentStreak counts consecutive logged days ending at now. A run that
// ends yesterday does not count: if now itself is missing the streak is 0.
func CurrentStreak(dates calendar.DateSet, now calendar.Date) int {
	count := 0
	for cursor := now; dates.Has(cursor); cursor = cursor.AddDays(-1) {
		count++
	}
	return count
}

// BestStreak returns the longest run of consecutive days anywhere in dates.
func BestStreak(dates calendar.DateSet) int {
	best, run := 0, 0
	var prev int64
	for i, d := range dates.Sorted() {
		n := d.DayNumber()
		if i > 0 && n == prev+1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
		prev = n
	}
	return best
}

// WeeklyCount counts logged days in the trailing seven days, now included.
func WeeklyCount(dates calendar.DateSet, now calendar.Date) int {
	return countBetween(dates, now.AddDays(-6), now)
}

// MonthlyCount counts logged days in now's calendar month.
func MonthlyCount(dates calendar.DateSet, now calendar.Date) int {
	n := 0
	for d := range dates {
		if d.Year == now.Year && d.Month == now.Month {
			n++
		}
	}
	return n
}

// AvgPerWeek divides the number of logged days by the whole weeks between
// the first and last of them, counting both ends. Histories shorter than a
// week divide by one.
func AvgPerWeek(dates calendar.DateSet) float64 {
	if len(dates) == 0 {
		return 0
	}
	sorted := dates.Sorted()
	span := sorted[len(sorted)-1].DayNumber() - sorted[0].DayNumber() + 1
	weeks := max(1, span/7)
	return float64(len(dates)) / float64(weeks)
}

// WeeklyBuckets returns counts for the n trailing seven-day windows ending
// at now, oldest first.
func WeeklyBuckets(dates calendar.DateSet, now calendar.Date, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		end := now.AddDays(-7 * (n - 1 - i))
		out[i] = countBetween(dates, end.AddDays(-6), end)
	}
	return out
}

func countBetween(dates calendar.DateSet, from, to calendar.Date) int {
	lo, hi := from.DayNumber(), to.DayNumber()
	n := 0
	for d := range dates {
		if dn := d.DayNumber(); dn >= lo && dn <= hi {
			n++
		}
	}
	return n
}
