package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidDay is returned for a routine day outside 0..6.
var ErrInvalidDay = errors.New("invalid routine day")

// MuscleGroups lists the groups offered by the routine editor.
var MuscleGroups = []string{
	"Chest", "Back", "Biceps", "Triceps", "Legs", "Shoulders", "Abs", "Cardio", "Arms", "Glutes",
}

func checkDay(day int) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}

// Title is the name shown for r: its own name, else one built from the
// muscle groups.
func (r Routine) Title() string {
	if r.IsRestDay {
		return "Rest day"
	}
	if r.Name != "" {
		return r.Name
	}
	return RoutineTitle(r.MuscleGroups)
}

// Empty reports whether nothing has been planned for the day.
func (r Routine) Empty() bool {
	return !r.IsRestDay && r.Name == "" && len(r.MuscleGroups) == 0
}

// RoutineTitle joins groups as "A", "A and B" or "A, B and C", title-casing
// each word.
func RoutineTitle(groups []string) string {
	caser := cases.Title(language.English)
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		g = strings.Join(strings.Fields(g), " ")
		if g == "" {
			continue
		}
		names = append(names, caser.String(g))
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// Week returns the routine for every weekday.
func (s *Store) Week() (Week, error) {
	var w Week
	for i := range w {
		w[i] = Routine{Day: i, MuscleGroups: []string{}}
	}

	rows, err := s.db.Query(`SELECT day, name, muscle_groups, is_rest_day FROM routines ORDER BY day`)
	if err != nil {
		return w, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Routine
		var groups string
		var rest int
		if err := rows.Scan(&r.Day, &r.Name, &groups, &rest); err != nil {
			return w, err
		}
		if err := json.Unmarshal([]byte(groups), &r.MuscleGroups); err != nil {
			return w, fmt.Errorf("routine %d muscle groups: %w", r.Day, err)
		}
		if r.MuscleGroups == nil {
			r.MuscleGroups = []string{}
		}
		r.IsRestDay = rest == 1
		if checkDay(r.Day) == nil {
			w[r.Day] = r
		}
	}
	return w, rows.Err()
}

// RoutineFor returns the routine planned for weekday wd.
func (s *Store) RoutineFor(wd time.Weekday) (Routine, error) {
	w, err := s.Week()
	if err != nil {
		return Routine{}, err
	}
	return w[int(wd)%7], nil
}

func (s *Store) SaveRoutine(r Routine) error {
	if err := checkDay(r.Day); err != nil {
		return err
	}
	groups := r.MuscleGroups
	if groups == nil {
		groups = []string{}
	}
	raw, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("encode muscle groups: %w", err)
	}
	rest := 0
	if r.IsRestDay {
		rest = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO routines (day, name, muscle_groups, is_rest_day, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
			name = excluded.name,
			muscle_groups = excluded.muscle_groups,
			is_rest_day = excluded.is_rest_day,
			updated_at = excluded.updated_at`,
		r.Day, strings.TrimSpace(r.Name), string(raw), rest, now,
	)
	if err != nil {
		return fmt.Errorf("save routine %d: %w", r.Day, err)
	}
	return nil
}

// SaveWeek replaces all seven routines in one transaction.
func (s *Store) SaveWeek(w Week) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for day, r := range w {
		groups := r.MuscleGroups
		if groups == nil {
			groups = []string{}
		}
		raw, err := json.Marshal(groups)
		if err != nil {
			return fmt.Errorf("encode muscle groups: %w", err)
		}
		rest := 0
		if r.IsRestDay {
			rest = 1
		}
		_, err = tx.Exec(
			`UPDATE routines SET name = ?, muscle_groups = ?, is_rest_day = ?, updated_at = ? WHERE day = ?`,
			strings.TrimSpace(r.Name), string(raw), rest, now, day,
		)
		if err != nil {
			return fmt.Errorf("save routine %d: %w", day, err)
		}
	}
	return tx.Commit()
}

// ClearRoutine resets a day to an empty, non-rest routine.
func (s *Store) ClearRoutine(day int) error {
	return s.SaveRoutine(Routine{Day: day})
}

// routinePayload is one day in an imported routine document. Every field
// is optional.
type routinePayload struct {
	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscle_groups"`
	IsRestDay    bool     `json:"is_rest_day"`
}

// DecodeRoutines reads a routine document into a full Week. The document is
// either an object keyed by day ("0".."6") or an array in day order. Days
// that are absent or null get an empty routine.
func DecodeRoutines(data []byte) (Week, error) {
	var w Week
	for i := range w {
		w[i] = Routine{Day: i, MuscleGroups: []string{}}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return w, nil
	}

	var days map[int]*routinePayload
	switch data[0] {
	case '{':
		var byKey map[string]*routinePayload
		if err := json.Unmarshal(data, &byKey); err != nil {
			return w, fmt.Errorf("decode routines: %w", err)
		}
		days = make(map[int]*routinePayload, len(byKey))
		for k, v := range byKey {
			day, err := strconv.Atoi(k)
			if err != nil {
				return w, fmt.Errorf("decode routines: %w: %q", ErrInvalidDay, k)
			}
			if err := checkDay(day); err != nil {
				return w, fmt.Errorf("decode routines: %w", err)
			}
			days[day] = v
		}
	case '[':
		var list []*routinePayload
		if err := json.Unmarshal(data, &list); err != nil {
			return w, fmt.Errorf("decode routines: %w", err)
		}
		if len(list) > len(w) {
			return w, fmt.Errorf("decode routines: %w: %d entries", ErrInvalidDay, len(list))
		}
		days = make(map[int]*routinePayload, len(list))
		for i, v := range list {
			days[i] = v
		}
	default:
		return w, fmt.Errorf("decode routines: expected object or array")
	}

	for day, p := range days {
		if p == nil {
			continue
		}
		r := Routine{Day: day, Name: strings.TrimSpace(p.Name), IsRestDay: p.IsRestDay, MuscleGroups: p.MuscleGroups}
		if r.MuscleGroups == nil {
			r.MuscleGroups = []string{}
		}
		w[day] = r
	}
	return w, nil
}
