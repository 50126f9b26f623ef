package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weekStart     *string
	confetti      *string
	reportWeeks   *string
	fireThreshold *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ws, cf, rw, ft := "", "", "", ""
	return settingsModel{
		store:         s,
		weekStart:     &ws,
		confetti:      &cf,
		reportWeeks:   &rw,
		fireThreshold: &ft,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			logrus.WithError(err).Error("load settings")
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func validPositive(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return errors.New("enter a whole number above zero")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.weekStart = s.getVal(store.SettingWeekStart, "sunday")
	*s.confetti = s.getVal(store.SettingConfetti, "on")
	*s.reportWeeks = s.getVal(store.SettingReportWeeks, "8")
	*s.fireThreshold = s.getVal(store.SettingFireThreshold, "7")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).Value(s.weekStart),
			huh.NewSelect[string]().Title("Confetti on check-in").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.confetti),
		).Title("General"),
		huh.NewGroup(
			huh.NewInput().Title("Weeks in report").Value(s.reportWeeks).Validate(validPositive),
			huh.NewInput().Title("Streak for fire badge (days)").Value(s.fireThreshold).Validate(validPositive),
		).Title("Streaks"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			logrus.WithError(err).Error("save settings")
			return s, tea.Batch(s.refresh(), func() tea.Msg { return errStatus("Settings error", err) })
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	var err error
	err = multierr.Append(err, s.store.SetSetting(store.SettingWeekStart, *s.weekStart))
	err = multierr.Append(err, s.store.SetSetting(store.SettingConfetti, *s.confetti))
	err = multierr.Append(err, s.store.SetSetting(store.SettingReportWeeks, strings.TrimSpace(*s.reportWeeks)))
	err = multierr.Append(err, s.store.SetSetting(store.SettingFireThreshold, strings.TrimSpace(*s.fireThreshold)))
	return err
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingLabel(k string) string {
	switch k {
	case store.SettingWeekStart:
		return "Week starts on"
	case store.SettingConfetti:
		return "Confetti"
	case store.SettingReportWeeks:
		return "Report length"
	case store.SettingFireThreshold:
		return "Fire badge at"
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingWeekStart:
		if v == "" {
			return v
		}
		return strings.ToUpper(v[:1]) + v[1:]
	case store.SettingReportWeeks:
		if n, err := strconv.Atoi(v); err == nil {
			return plural(n, "week", "weeks")
		}
	case store.SettingFireThreshold:
		if n, err := strconv.Atoi(v); err == nil {
			return plural(n, "day", "days")
		}
	}
	return v
}
