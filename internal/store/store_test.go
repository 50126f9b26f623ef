package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/streak"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// checkIn logs each date, failing the test on any error.
func checkIn(t *testing.T, s *Store, dates ...string) {
	t.Helper()
	for _, d := range dates {
		if _, err := s.CheckIn(day(t, d), ""); err != nil {
			t.Fatalf("check in %s: %v", d, err)
		}
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/gymstreak.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	checkIn(t, s, "2024-03-01")
	s.Close()

	// Reopen: data survives and migrations do not run again.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	dates, err := s2.WorkoutDates()
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 1 {
		t.Fatalf("expected 1 workout after reopen, got %d", len(dates))
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
	if err := s.migrateV1(); err != nil {
		t.Fatalf("re-running v1 DDL failed: %v", err)
	}
	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM routines`).Scan(&n)
	if n != 7 {
		t.Fatalf("expected 7 routines, got %d", n)
	}
}

// ============================================================
// Workouts
// ============================================================

func TestCheckIn(t *testing.T) {
	s := newTestStore(t)
	w, err := s.CheckIn(day(t, "2024-02-29"), "leg day")
	if err != nil {
		t.Fatal(err)
	}
	if w.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if w.Date.String() != "2024-02-29" || w.Notes != "leg day" {
		t.Fatalf("unexpected workout: %+v", w)
	}
	if w.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-01")

	_, err := s.CheckIn(day(t, "2024-03-01"), "again")
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}

	w, err := s.GetWorkout(day(t, "2024-03-01"))
	if err != nil {
		t.Fatal(err)
	}
	if w.Notes != "" {
		t.Fatalf("duplicate check-in overwrote notes: %q", w.Notes)
	}
}

func TestGetWorkoutNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetWorkout(day(t, "2024-03-01"))
	if !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound, got %v", err)
	}
}

func TestDeleteWorkout(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-01", "2024-03-02")

	if err := s.DeleteWorkout(day(t, "2024-03-02")); err != nil {
		t.Fatal(err)
	}
	dates, _ := s.WorkoutDates()
	if len(dates) != 1 || !dates.Has(day(t, "2024-03-01")) {
		t.Fatalf("unexpected dates after delete: %v", dates.Sorted())
	}

	err := s.DeleteWorkout(day(t, "2024-03-02"))
	if !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound, got %v", err)
	}
}

func TestUpdateWorkoutNotes(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-01")

	if err := s.UpdateWorkoutNotes(day(t, "2024-03-01"), "5x5 squats"); err != nil {
		t.Fatal(err)
	}
	w, _ := s.GetWorkout(day(t, "2024-03-01"))
	if w.Notes != "5x5 squats" {
		t.Fatalf("expected notes updated, got %q", w.Notes)
	}

	err := s.UpdateWorkoutNotes(day(t, "2024-03-09"), "x")
	if !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound, got %v", err)
	}
}

func TestListWorkouts(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-01-15", "2024-03-01", "2024-02-10")

	all, err := s.ListWorkouts(WorkoutFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 workouts, got %d", len(all))
	}
	if all[0].Date.String() != "2024-03-01" || all[2].Date.String() != "2024-01-15" {
		t.Fatalf("expected newest first, got %s .. %s", all[0].Date, all[2].Date)
	}
}

func TestListWorkoutsWithDateFilter(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-01-31", "2024-02-01", "2024-02-29", "2024-03-01")

	from, to := day(t, "2024-02-01"), day(t, "2024-02-29")
	got, err := s.ListWorkouts(WorkoutFilter{From: &from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 workouts in February, got %d", len(got))
	}
}

func TestListWorkoutsWithLimit(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-01", "2024-03-02", "2024-03-03")

	got, err := s.ListWorkouts(WorkoutFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 with limit, got %d", len(got))
	}
}

func TestListWorkoutsEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListWorkouts(WorkoutFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 workouts, got %d", len(got))
	}
}

func TestWorkoutDays(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-02-01", "2024-02-29", "2024-02-14", "2024-03-01", "2023-02-14")

	days, err := s.WorkoutDays(2, 2024)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 14, 29}
	if len(days) != len(want) {
		t.Fatalf("WorkoutDays = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("WorkoutDays = %v, want %v", days, want)
		}
	}
}

func TestWorkoutDaysInvalidMonth(t *testing.T) {
	s := newTestStore(t)
	_, err := s.WorkoutDays(13, 2024)
	if !errors.Is(err, calendar.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

// ============================================================
// Stats snapshot
// ============================================================

func TestSnapshotLoggedToday(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-18", "2024-03-19", "2024-03-20")

	st, err := s.Snapshot(day(t, "2024-03-20"))
	if err != nil {
		t.Fatal(err)
	}
	if st.CurrentStreak != 3 || st.ShownStreak() != 3 {
		t.Fatalf("expected streak 3, got current=%d shown=%d", st.CurrentStreak, st.ShownStreak())
	}
	if st.DisplayStreak != nil {
		t.Fatal("no override expected when today is logged")
	}
	if !st.TodayLogged {
		t.Fatal("expected TodayLogged")
	}
}

func TestSnapshotYesterdayGrace(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-17", "2024-03-18", "2024-03-19")

	st, err := s.Snapshot(day(t, "2024-03-20"))
	if err != nil {
		t.Fatal(err)
	}
	if st.CurrentStreak != 0 {
		t.Fatalf("strict streak should be 0, got %d", st.CurrentStreak)
	}
	if st.ShownStreak() != 3 {
		t.Fatalf("expected display streak 3, got %d", st.ShownStreak())
	}
	// Milestones follow the best streak, not the display override.
	if st.NextMilestone == nil || *st.NextMilestone != (streak.Milestone{Target: 7, Remaining: 7}) {
		t.Fatalf("unexpected milestone: %+v", st.NextMilestone)
	}
}

func TestSnapshotBrokenStreak(t *testing.T) {
	s := newTestStore(t)
	checkIn(t, s, "2024-03-17")

	st, err := s.Snapshot(day(t, "2024-03-20"))
	if err != nil {
		t.Fatal(err)
	}
	if st.ShownStreak() != 0 || st.DisplayStreak != nil {
		t.Fatalf("expected no streak, got shown=%d", st.ShownStreak())
	}
	if st.TotalWorkouts != 1 || st.BestStreak != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	s := newTestStore(t)
	st, err := s.Snapshot(day(t, "2024-03-20"))
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalWorkouts != 0 || st.NextMilestone != nil || st.ConsistencyScore != 0 {
		t.Fatalf("unexpected empty stats: %+v", st)
	}
}

// ============================================================
// Routines
// ============================================================

func TestWeekSeeded(t *testing.T) {
	s := newTestStore(t)
	w, err := s.Week()
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range w {
		if r.Day != i {
			t.Fatalf("routine %d has day %d", i, r.Day)
		}
		if !r.Empty() {
			t.Fatalf("seeded routine %d should be empty: %+v", i, r)
		}
		if r.MuscleGroups == nil {
			t.Fatalf("routine %d muscle groups should be empty, not nil", i)
		}
	}
}

func TestSaveRoutine(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveRoutine(Routine{Day: 1, Name: "  Push ", MuscleGroups: []string{"Chest", "Triceps"}})
	if err != nil {
		t.Fatal(err)
	}

	r, err := s.RoutineFor(time.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "Push" {
		t.Fatalf("expected trimmed name Push, got %q", r.Name)
	}
	if len(r.MuscleGroups) != 2 || r.MuscleGroups[0] != "Chest" || r.MuscleGroups[1] != "Triceps" {
		t.Fatalf("muscle groups out of order: %v", r.MuscleGroups)
	}
	if r.IsRestDay {
		t.Fatal("should not be a rest day")
	}
}

func TestSaveRoutineRestDay(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveRoutine(Routine{Day: 0, IsRestDay: true}); err != nil {
		t.Fatal(err)
	}
	w, _ := s.Week()
	if !w[0].IsRestDay || w[0].Title() != "Rest day" {
		t.Fatalf("expected rest day, got %+v", w[0])
	}
}

func TestSaveRoutineInvalidDay(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []int{-1, 7} {
		err := s.SaveRoutine(Routine{Day: d, Name: "x"})
		if !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("SaveRoutine(day=%d): expected ErrInvalidDay, got %v", d, err)
		}
	}
	if err := s.ClearRoutine(9); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("ClearRoutine(9): expected ErrInvalidDay, got %v", err)
	}
}

func TestClearRoutine(t *testing.T) {
	s := newTestStore(t)
	s.SaveRoutine(Routine{Day: 3, Name: "Legs", MuscleGroups: []string{"Legs"}, IsRestDay: true})

	if err := s.ClearRoutine(3); err != nil {
		t.Fatal(err)
	}
	w, _ := s.Week()
	if !w[3].Empty() {
		t.Fatalf("expected cleared routine, got %+v", w[3])
	}
}

func TestSaveWeek(t *testing.T) {
	s := newTestStore(t)
	var w Week
	for i := range w {
		w[i] = Routine{Day: i, MuscleGroups: []string{"Cardio"}}
	}
	w[6].IsRestDay = true

	if err := s.SaveWeek(w); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Week()
	for i := 0; i < 6; i++ {
		if got[i].Title() != "Cardio" {
			t.Fatalf("day %d title = %q", i, got[i].Title())
		}
	}
	if !got[6].IsRestDay {
		t.Fatal("expected Saturday rest day")
	}
}

func TestRoutineTitle(t *testing.T) {
	tests := []struct {
		groups []string
		want   string
	}{
		{nil, ""},
		{[]string{"chest"}, "Chest"},
		{[]string{"chest", "BACK"}, "Chest and Back"},
		{[]string{"chest", "back", "upper  body"}, "Chest, Back and Upper Body"},
		{[]string{" ", "legs"}, "Legs"},
	}
	for _, tt := range tests {
		if got := RoutineTitle(tt.groups); got != tt.want {
			t.Fatalf("RoutineTitle(%q) = %q, want %q", tt.groups, got, tt.want)
		}
	}
}

func TestDecodeRoutinesObject(t *testing.T) {
	w, err := DecodeRoutines([]byte(`{
		"1": {"name": "Push", "muscle_groups": ["Chest"]},
		"3": null,
		"6": {"is_rest_day": true}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if w[1].Name != "Push" || len(w[1].MuscleGroups) != 1 {
		t.Fatalf("unexpected Monday: %+v", w[1])
	}
	if !w[3].Empty() || !w[0].Empty() {
		t.Fatal("missing and null days should be empty")
	}
	if !w[6].IsRestDay || w[6].MuscleGroups == nil {
		t.Fatalf("unexpected Saturday: %+v", w[6])
	}
	for i, r := range w {
		if r.Day != i {
			t.Fatalf("day %d decoded as %d", i, r.Day)
		}
	}
}

func TestDecodeRoutinesArray(t *testing.T) {
	w, err := DecodeRoutines([]byte(`[{"is_rest_day": true}, {"name": "Pull"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if !w[0].IsRestDay || w[1].Name != "Pull" || !w[2].Empty() {
		t.Fatalf("unexpected week: %+v", w)
	}
}

func TestDecodeRoutinesEmpty(t *testing.T) {
	for _, in := range []string{"", "null", "{}", "[]"} {
		w, err := DecodeRoutines([]byte(in))
		if err != nil {
			t.Fatalf("DecodeRoutines(%q): %v", in, err)
		}
		for _, r := range w {
			if !r.Empty() {
				t.Fatalf("DecodeRoutines(%q) produced %+v", in, r)
			}
		}
	}
}

func TestDecodeRoutinesInvalid(t *testing.T) {
	cases := []string{
		`{"7": {}}`,
		`{"monday": {}}`,
		`[{}, {}, {}, {}, {}, {}, {}, {}]`,
	}
	for _, in := range cases {
		if _, err := DecodeRoutines([]byte(in)); !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("DecodeRoutines(%s): expected ErrInvalidDay, got %v", in, err)
		}
	}
	if _, err := DecodeRoutines([]byte(`"nope"`)); err == nil {
		t.Fatal("expected error for scalar document")
	}
	if _, err := DecodeRoutines([]byte(`{"1": {"name": 5}}`)); err == nil {
		t.Fatal("expected error for bad field type")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		SettingWeekStart:     "sunday",
		SettingConfetti:      "on",
		SettingReportWeeks:   "8",
		SettingFireThreshold: "7",
	}

	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("key", "v1")
	s.SetSetting("key", "v2")
	val, _ := s.GetSetting("key")
	if val != "v2" {
		t.Fatalf("expected v2, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 4 {
		t.Fatalf("expected at least 4 default settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestTypedSettings(t *testing.T) {
	s := newTestStore(t)
	if s.WeekStart() != time.Sunday {
		t.Fatal("expected Sunday week start by default")
	}
	s.SetSetting(SettingWeekStart, "Monday")
	if s.WeekStart() != time.Monday {
		t.Fatal("expected Monday week start")
	}

	if !s.ConfettiEnabled() {
		t.Fatal("confetti should default on")
	}
	s.SetSetting(SettingConfetti, "off")
	if s.ConfettiEnabled() {
		t.Fatal("confetti should be off")
	}

	if got := s.IntSetting(SettingReportWeeks, 4); got != 8 {
		t.Fatalf("IntSetting = %d, want 8", got)
	}
	s.SetSetting(SettingReportWeeks, "lots")
	if got := s.IntSetting(SettingReportWeeks, 4); got != 4 {
		t.Fatalf("IntSetting fallback = %d, want 4", got)
	}
	if got := s.IntSetting("missing", 3); got != 3 {
		t.Fatalf("IntSetting missing = %d, want 3", got)
	}
}

// ============================================================
// Close
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	err := s.Close()
	if err != nil {
		t.Fatalf("first close: %v", err)
	}
}
