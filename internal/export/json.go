package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sadopc/gymstreak/internal/streak"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Stats      jsonStats     `json:"stats"`
	Routines   []jsonRoutine `json:"routines"`
	Workouts   []jsonWorkout `json:"workouts"`
}

type jsonWorkout struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

type jsonRoutine struct {
	Day          int      `json:"day"`
	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscle_groups"`
	IsRestDay    bool     `json:"is_rest_day"`
}

type jsonStats struct {
	CurrentStreak    int            `json:"current_streak"`
	DisplayStreak    int            `json:"display_streak"`
	BestStreak       int            `json:"best_streak"`
	TotalWorkouts    int            `json:"total_workouts"`
	ThisWeek         int            `json:"this_week"`
	ThisMonth        int            `json:"this_month"`
	AvgPerWeek       float64        `json:"avg_per_week"`
	ConsistencyScore int            `json:"consistency_score"`
	ConsistencyLabel string         `json:"consistency_label"`
	NextMilestone    *jsonMilestone `json:"next_milestone"`
	TodayLogged      bool           `json:"today_logged"`
}

type jsonMilestone struct {
	Target    int `json:"target"`
	Remaining int `json:"remaining"`
}

// ToJSON writes workouts, the weekly routine and a stats snapshot. The
// routines array is in the same shape store.DecodeRoutines reads back.
func ToJSON(workouts []store.Workout, week store.Week, stats streak.Stats, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(workouts),
		Stats: jsonStats{
			CurrentStreak:    stats.CurrentStreak,
			DisplayStreak:    stats.ShownStreak(),
			BestStreak:       stats.BestStreak,
			TotalWorkouts:    stats.TotalWorkouts,
			ThisWeek:         stats.ThisWeek,
			ThisMonth:        stats.ThisMonth,
			AvgPerWeek:       stats.AvgPerWeek,
			ConsistencyScore: stats.ConsistencyScore,
			ConsistencyLabel: stats.ConsistencyLabel.String(),
			TodayLogged:      stats.TodayLogged,
		},
	}
	if m := stats.NextMilestone; m != nil {
		export.Stats.NextMilestone = &jsonMilestone{Target: m.Target, Remaining: m.Remaining}
	}

	for _, r := range week {
		groups := r.MuscleGroups
		if groups == nil {
			groups = []string{}
		}
		export.Routines = append(export.Routines, jsonRoutine{
			Day:          r.Day,
			Name:         r.Name,
			MuscleGroups: groups,
			IsRestDay:    r.IsRestDay,
		})
	}

	for _, w := range workouts {
		export.Workouts = append(export.Workouts, jsonWorkout{
			ID:    w.ID,
			Date:  w.Date.String(),
			Notes: w.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
