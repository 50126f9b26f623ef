package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	SettingWeekStart     = "week_start"
	SettingConfetti      = "confetti"
	SettingReportWeeks   = "report_weeks"
	SettingFireThreshold = "fire_threshold"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// WeekStart reads the week_start setting. Anything but "monday" means Sunday.
func (s *Store) WeekStart() time.Weekday {
	v, err := s.GetSetting(SettingWeekStart)
	if err == nil && strings.EqualFold(v, "monday") {
		return time.Monday
	}
	return time.Sunday
}

// ConfettiEnabled reads the confetti toggle. Defaults to on.
func (s *Store) ConfettiEnabled() bool {
	v, err := s.GetSetting(SettingConfetti)
	return err != nil || v != "off"
}

// IntSetting reads key as an int, falling back to def when unset or malformed.
func (s *Store) IntSetting(key string, def int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
