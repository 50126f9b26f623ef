package store

import (
	"time"

	"github.com/sadopc/gymstreak/internal/calendar"
)

// Workout is one logged training day. There is at most one per date.
type Workout struct {
	ID        int64
	Date      calendar.Date
	Notes     string
	CreatedAt time.Time
}

// Routine is the plan for one weekday. Day is 0 (Sunday) through 6.
type Routine struct {
	Day          int
	Name         string
	MuscleGroups []string
	IsRestDay    bool
}

// Week holds a routine for every weekday, indexed by Day.
type Week [7]Routine

type Setting struct {
	Key   string
	Value string
}

// WorkoutFilter is used to filter workouts in queries. Bounds are inclusive.
type WorkoutFilter struct {
	From  *calendar.Date
	To    *calendar.Date
	Limit int
}
