package store

import (
	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/streak"
)

// Snapshot computes stats for today. When today has not been logged yet
// but yesterday was, the run ending yesterday is attached as the display
// streak so the dashboard does not drop to zero before the user trains.
func (s *Store) Snapshot(today calendar.Date) (streak.Stats, error) {
	dates, err := s.WorkoutDates()
	if err != nil {
		return streak.Stats{}, err
	}
	st := streak.Compute(dates, today)
	if st.CurrentStreak == 0 {
		if yesterday := today.AddDays(-1); dates.Has(yesterday) {
			st = st.WithDisplayStreak(streak.CurrentStreak(dates, yesterday))
		}
	}
	return st, nil
}
