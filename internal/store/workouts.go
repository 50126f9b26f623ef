package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/gymstreak/internal/calendar"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrWorkoutNotFound  = errors.New("workout not found")
)

// CheckIn logs a workout for d.
func (s *Store) CheckIn(d calendar.Date, notes string) (*Workout, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO workouts (date, notes, created_at) VALUES (?, ?, ?) ON CONFLICT(date) DO NOTHING`,
		d.String(), notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("check in %s: %w", d, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("check in %s: %w", d, ErrAlreadyCheckedIn)
	}
	return s.GetWorkout(d)
}

func (s *Store) GetWorkout(d calendar.Date) (*Workout, error) {
	w := &Workout{}
	var date, createdAt string
	err := s.db.QueryRow(
		`SELECT id, date, notes, created_at FROM workouts WHERE date = ?`, d.String(),
	).Scan(&w.ID, &date, &w.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workout %s: %w", d, ErrWorkoutNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout %s: %w", d, err)
	}
	if w.Date, err = calendar.ParseDate(date); err != nil {
		return nil, fmt.Errorf("get workout %s: %w", d, err)
	}
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return w, nil
}

// DeleteWorkout removes the workout logged for d.
func (s *Store) DeleteWorkout(d calendar.Date) error {
	res, err := s.db.Exec(`DELETE FROM workouts WHERE date = ?`, d.String())
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", d, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete workout %s: %w", d, ErrWorkoutNotFound)
	}
	return nil
}

func (s *Store) UpdateWorkoutNotes(d calendar.Date, notes string) error {
	res, err := s.db.Exec(`UPDATE workouts SET notes = ? WHERE date = ?`, notes, d.String())
	if err != nil {
		return fmt.Errorf("update notes %s: %w", d, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update notes %s: %w", d, ErrWorkoutNotFound)
	}
	return nil
}

// ListWorkouts returns workouts newest first.
func (s *Store) ListWorkouts(f WorkoutFilter) ([]Workout, error) {
	query := `SELECT id, date, notes, created_at FROM workouts WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.String())
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, f.To.String())
	}
	query += ` ORDER BY date DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		var date, createdAt string
		if err := rows.Scan(&w.ID, &date, &w.Notes, &createdAt); err != nil {
			return nil, err
		}
		if w.Date, err = calendar.ParseDate(date); err != nil {
			return nil, fmt.Errorf("list workouts: %w", err)
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// WorkoutDates returns every logged day.
func (s *Store) WorkoutDates() (calendar.DateSet, error) {
	rows, err := s.db.Query(`SELECT date FROM workouts`)
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}
	defer rows.Close()

	dates := calendar.NewDateSet()
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := calendar.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("workout dates: %w", err)
		}
		dates.Add(d)
	}
	return dates, rows.Err()
}

// WorkoutDays returns the days of month (1..31) that have a workout,
// ascending.
func (s *Store) WorkoutDays(month, year int) ([]int, error) {
	if _, err := calendar.DaysInMonth(month, year); err != nil {
		return nil, fmt.Errorf("workout days: %w", err)
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	rows, err := s.db.Query(
		`SELECT CAST(substr(date, 9, 2) AS INTEGER) FROM workouts WHERE date LIKE ? ORDER BY date`,
		prefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("workout days: %w", err)
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
