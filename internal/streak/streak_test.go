package streak_test

import (
	"math"
	"testing"

	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/streak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

// run returns n consecutive days ending at end.
func run(end calendar.Date, n int) []calendar.Date {
	out := make([]calendar.Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, end.AddDays(-i))
	}
	return out
}

func TestCurrentStreakCountsRunEndingToday(t *testing.T) {
	today := mustDate(t, "2024-03-02")
	for n := 0; n <= 60; n++ {
		dates := calendar.NewDateSet(run(today, n)...)
		assert.Equal(t, n, streak.CurrentStreak(dates, today), "run of %d", n)
	}
}

func TestCurrentStreakZeroWithoutToday(t *testing.T) {
	today := mustDate(t, "2024-03-02")
	dates := calendar.NewDateSet(run(today.AddDays(-1), 40)...)
	assert.Equal(t, 0, streak.CurrentStreak(dates, today))

	dates.Add(today.AddDays(3))
	assert.Equal(t, 0, streak.CurrentStreak(dates, today))
}

func TestCurrentStreakCrossesLeapDayAndYear(t *testing.T) {
	today := mustDate(t, "2024-03-01")
	dates := calendar.NewDateSet(
		mustDate(t, "2024-03-01"),
		mustDate(t, "2024-02-29"),
		mustDate(t, "2024-02-28"),
	)
	assert.Equal(t, 3, streak.CurrentStreak(dates, today))

	newYear := mustDate(t, "2025-01-01")
	dates = calendar.NewDateSet(newYear, mustDate(t, "2024-12-31"), mustDate(t, "2024-12-30"))
	assert.Equal(t, 3, streak.CurrentStreak(dates, newYear))
}

func TestBestStreak(t *testing.T) {
	today := mustDate(t, "2024-03-20")
	assert.Equal(t, 0, streak.BestStreak(calendar.NewDateSet()))
	assert.Equal(t, 1, streak.BestStreak(calendar.NewDateSet(today)))

	dates := calendar.NewDateSet(run(mustDate(t, "2024-02-14"), 5)...)
	for _, d := range run(today, 2) {
		dates.Add(d)
	}
	assert.Equal(t, 5, streak.BestStreak(dates))
	assert.Equal(t, 2, streak.CurrentStreak(dates, today))
}

func TestWeeklyCount(t *testing.T) {
	today := mustDate(t, "2024-03-06")
	dates := calendar.NewDateSet(
		today,
		today.AddDays(-6), // inside the window
		today.AddDays(-7), // just outside
		today.AddDays(1),  // future
	)
	assert.Equal(t, 2, streak.WeeklyCount(dates, today))
}

func TestMonthlyCount(t *testing.T) {
	today := mustDate(t, "2024-03-06")
	dates := calendar.NewDateSet(
		mustDate(t, "2024-03-01"),
		mustDate(t, "2024-03-31"),
		mustDate(t, "2024-02-29"),
		mustDate(t, "2023-03-05"),
	)
	assert.Equal(t, 2, streak.MonthlyCount(dates, today))
}

func TestAvgPerWeek(t *testing.T) {
	assert.Equal(t, 0.0, streak.AvgPerWeek(calendar.NewDateSet()))

	today := mustDate(t, "2024-03-06")
	assert.Equal(t, 1.0, streak.AvgPerWeek(calendar.NewDateSet(today)))

	// Six days inside one week still divide by one.
	assert.Equal(t, 6.0, streak.AvgPerWeek(calendar.NewDateSet(run(today, 6)...)))

	// 28 days span four whole weeks.
	dates := calendar.NewDateSet(today, today.AddDays(-27), today.AddDays(-14), today.AddDays(-7))
	assert.Equal(t, 1.0, streak.AvgPerWeek(dates))

	// 20 days span two whole weeks.
	dates = calendar.NewDateSet(today, today.AddDays(-19))
	assert.Equal(t, 1.0, streak.AvgPerWeek(dates))
}

func TestWeeklyBuckets(t *testing.T) {
	today := mustDate(t, "2024-03-06")
	dates := calendar.NewDateSet(
		today, today.AddDays(-1), // this week
		today.AddDays(-8),  // last week
		today.AddDays(-27), // four weeks back
	)
	assert.Equal(t, []int{1, 0, 1, 2}, streak.WeeklyBuckets(dates, today, 4))
	assert.Nil(t, streak.WeeklyBuckets(dates, today, 0))
}

// ============================================================
// Scoring
// ============================================================

func TestScore(t *testing.T) {
	assert.Equal(t, 0, streak.Score(0))
	assert.Equal(t, 100, streak.Score(4))
	assert.Equal(t, 100, streak.Score(8))
	assert.Equal(t, 0, streak.Score(-3))
	assert.Equal(t, 0, streak.Score(math.NaN()))
	assert.Equal(t, 100, streak.Score(math.Inf(1)))
	assert.Equal(t, 50, streak.Score(2))
	assert.Equal(t, 38, streak.Score(1.5)) // 37.5 rounds half away from zero
	assert.Equal(t, 63, streak.Score(2.5))
}

func TestScoreMonotonic(t *testing.T) {
	prev := streak.Score(0)
	for x := 0.0; x <= 10; x += 0.01 {
		s := streak.Score(x)
		require.GreaterOrEqual(t, s, prev, "Score(%v)", x)
		require.GreaterOrEqual(t, s, 0)
		require.LessOrEqual(t, s, 100)
		prev = s
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score int
		want  streak.Label
	}{
		{0, streak.Starting},
		{39, streak.Starting},
		{40, streak.Building},
		{69, streak.Building},
		{70, streak.DialedIn},
		{100, streak.DialedIn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, streak.LabelFor(tt.score), "LabelFor(%d)", tt.score)
	}
	assert.Equal(t, "Dialed in", streak.DialedIn.String())
	assert.Equal(t, "Unknown", streak.Label(9).String())
}

func TestNextMilestone(t *testing.T) {
	m, ok := streak.NextMilestone(10, 5)
	require.True(t, ok)
	assert.Equal(t, streak.Milestone{Target: 21, Remaining: 16}, m)

	_, ok = streak.NextMilestone(0, 0)
	assert.False(t, ok)

	tests := []struct {
		reference, current int
		want               streak.Milestone
	}{
		{1, 1, streak.Milestone{Target: 7, Remaining: 6}},
		{7, 7, streak.Milestone{Target: 21, Remaining: 14}},
		{21, 0, streak.Milestone{Target: 30, Remaining: 30}},
		{49, 49, streak.Milestone{Target: 50, Remaining: 1}},
		{99, 3, streak.Milestone{Target: 100, Remaining: 97}},
		{100, 100, streak.Milestone{Target: 110, Remaining: 10}},
		{137, 137, streak.Milestone{Target: 147, Remaining: 10}},
	}
	for _, tt := range tests {
		got, ok := streak.NextMilestone(tt.reference, tt.current)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "NextMilestone(%d, %d)", tt.reference, tt.current)
	}
}

// ============================================================
// Stats
// ============================================================

func TestComputeEmpty(t *testing.T) {
	s := streak.Compute(calendar.NewDateSet(), mustDate(t, "2024-03-06"))
	assert.Zero(t, s.CurrentStreak)
	assert.Zero(t, s.BestStreak)
	assert.Zero(t, s.TotalWorkouts)
	assert.Zero(t, s.ConsistencyScore)
	assert.Equal(t, streak.Starting, s.ConsistencyLabel)
	assert.Nil(t, s.NextMilestone)
	assert.False(t, s.TodayLogged)
	assert.Equal(t, 0, s.ShownStreak())
}

func TestComputeUsesBestStreakAsMilestoneReference(t *testing.T) {
	today := mustDate(t, "2024-03-20")
	dates := calendar.NewDateSet(run(mustDate(t, "2024-03-10"), 10)...)
	for _, d := range run(today, 5) {
		dates.Add(d)
	}

	s := streak.Compute(dates, today)
	assert.Equal(t, 5, s.CurrentStreak)
	assert.Equal(t, 10, s.BestStreak)
	assert.Equal(t, 15, s.TotalWorkouts)
	assert.Equal(t, 5, s.ThisWeek)
	assert.Equal(t, 15, s.ThisMonth)
	assert.True(t, s.TodayLogged)
	require.NotNil(t, s.NextMilestone)
	assert.Equal(t, streak.Milestone{Target: 21, Remaining: 16}, *s.NextMilestone)
}

func TestComputeBrokenStreakStillProjects(t *testing.T) {
	today := mustDate(t, "2024-03-20")
	dates := calendar.NewDateSet(run(today.AddDays(-1), 8)...)

	s := streak.Compute(dates, today)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 8, s.BestStreak)
	require.NotNil(t, s.NextMilestone)
	assert.Equal(t, streak.Milestone{Target: 21, Remaining: 21}, *s.NextMilestone)
}

func TestDisplayStreakOverride(t *testing.T) {
	today := mustDate(t, "2024-03-20")
	s := streak.Compute(calendar.NewDateSet(today.AddDays(-1)), today)
	assert.Equal(t, 0, s.ShownStreak())

	shown := s.WithDisplayStreak(1)
	assert.Equal(t, 1, shown.ShownStreak())
	assert.Equal(t, 0, shown.CurrentStreak)
	assert.Nil(t, s.DisplayStreak, "original snapshot must not change")
}
