package streak

import "github.com/sadopc/gymstreak/internal/calendar"

// Stats is a snapshot of a workout history as of one day.
type Stats struct {
	CurrentStreak    int
	BestStreak       int
	TotalWorkouts    int
	ThisWeek         int
	ThisMonth        int
	AvgPerWeek       float64
	ConsistencyScore int
	ConsistencyLabel Label
	// NextMilestone is nil until there is a streak to project from.
	NextMilestone *Milestone
	TodayLogged   bool

	// DisplayStreak is supplied by the data layer when it wants a different
	// number shown than CurrentStreak. It never feeds milestone math.
	DisplayStreak *int
}

// Compute builds Stats for dates as of now.
func Compute(dates calendar.DateSet, now calendar.Date) Stats {
	current := CurrentStreak(dates, now)
	best := BestStreak(dates)
	avg := AvgPerWeek(dates)
	score := Score(avg)

	s := Stats{
		CurrentStreak:    current,
		BestStreak:       best,
		TotalWorkouts:    len(dates),
		ThisWeek:         WeeklyCount(dates, now),
		ThisMonth:        MonthlyCount(dates, now),
		AvgPerWeek:       avg,
		ConsistencyScore: score,
		ConsistencyLabel: LabelFor(score),
		TodayLogged:      dates.Has(now),
	}
	if m, ok := NextMilestone(max(current, best), current); ok {
		s.NextMilestone = &m
	}
	return s
}

// WithDisplayStreak returns a copy of s carrying the display override.
func (s Stats) WithDisplayStreak(n int) Stats {
	s.DisplayStreak = &n
	return s
}

// ShownStreak is the streak a view should render.
func (s Stats) ShownStreak() int {
	if s.DisplayStreak != nil {
		return *s.DisplayStreak
	}
	return s.CurrentStreak
}
