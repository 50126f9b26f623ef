package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sadopc/gymstreak/internal/streak"
	"github.com/sirupsen/logrus"
)

const recentLimit = 5

type dashboardModel struct {
	store  *store.Store
	clock  clock
	width  int
	height int

	today         calendar.Date
	stats         streak.Stats
	routine       store.Routine
	recent        []store.Workout
	fireThreshold int
	loaded        bool
}

func newDashboardModel(s *store.Store, c clock) dashboardModel {
	return dashboardModel{
		store:         s,
		clock:         c,
		fireThreshold: 7,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	today         calendar.Date
	stats         streak.Stats
	routine       store.Routine
	recent        []store.Workout
	fireThreshold int
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := d.clock.today()
		stats, err := d.store.Snapshot(today)
		if err != nil {
			logrus.WithError(err).Error("load stats")
			return errStatus("Load error", err)
		}
		routine, err := d.store.RoutineFor(today.Weekday())
		if err != nil {
			logrus.WithError(err).Warn("load routine")
		}
		recent, _ := d.store.ListWorkouts(store.WorkoutFilter{Limit: recentLimit})

		return dashboardDataMsg{
			today:         today,
			stats:         stats,
			routine:       routine,
			recent:        recent,
			fireThreshold: d.store.IntSetting(store.SettingFireThreshold, 7),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.today = msg.today
		d.stats = msg.stats
		d.routine = msg.routine
		d.recent = msg.recent
		d.fireThreshold = msg.fireThreshold
		d.loaded = true
		return d, nil

	case tickMsg:
		// Day rolled over while the app was open.
		if d.loaded && d.clock.today() != d.today {
			return d, d.loadData()
		}
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) checkIn() tea.Cmd {
	return func() tea.Msg {
		today := d.clock.today()
		w, err := d.store.CheckIn(today, "")
		if errors.Is(err, store.ErrAlreadyCheckedIn) {
			return statusMsg{text: "Already checked in today"}
		}
		if err != nil {
			logrus.WithError(err).WithField("date", today.String()).Error("check in")
			return errStatus("Check-in error", err)
		}
		logrus.WithField("date", today.String()).Info("checked in")
		return checkedInMsg{workout: w}
	}
}

func (d dashboardModel) undo() tea.Cmd {
	return func() tea.Msg {
		today := d.clock.today()
		err := d.store.DeleteWorkout(today)
		if errors.Is(err, store.ErrWorkoutNotFound) {
			return statusMsg{text: "Nothing to undo today"}
		}
		if err != nil {
			logrus.WithError(err).WithField("date", today.String()).Error("undo check-in")
			return errStatus("Undo error", err)
		}
		logrus.WithField("date", today.String()).Info("check-in undone")
		return undoneMsg{date: today}
	}
}

func (d dashboardModel) onFire() bool {
	return d.stats.ShownStreak() >= d.fireThreshold
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	streakPanel := d.renderStreakPanel(contentWidth)
	statsPanel := d.renderStatsPanel(contentWidth)
	bottomPanel := d.renderTodayPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, streakPanel, statsPanel, bottomPanel)
}

func (d dashboardModel) renderStreakPanel(w int) string {
	shown := d.stats.ShownStreak()

	style := streakStyle
	badge := ""
	if d.onFire() {
		style = streakFireStyle
		badge = " 🔥"
	}
	number := style.Width(w - 6).Render(fmt.Sprintf("%d%s", shown, badge))
	caption := mutedStyle.Render("DAY STREAK")

	var status string
	switch {
	case d.stats.TodayLogged:
		status = successStyle.Render("✓  Checked in today")
	case d.stats.DisplayStreak != nil:
		status = warningStyle.Render("Check in today to keep the streak alive")
	default:
		status = mutedStyle.Render("Press c to check in")
	}

	lines := []string{number, caption, status}
	if m := d.stats.NextMilestone; m != nil {
		lines = append(lines, highlightStyle.Render(
			fmt.Sprintf("%s to %d", plural(m.Remaining, "day", "days"), m.Target),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if d.stats.TodayLogged {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	st := d.stats
	cell := lipgloss.NewStyle().Width(16)

	row := func(label, value string) string {
		return cell.Render(mutedStyle.Render(label)) + highlightStyle.Render(value)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		row("Best streak", fmt.Sprint(st.BestStreak)),
		row("Total", fmt.Sprint(st.TotalWorkouts)),
		row("Avg / week", formatAvg(st.AvgPerWeek)),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		row("This week", fmt.Sprintf("%d / %d", st.ThisWeek, int(streak.WeeklyGoal))),
		row("This month", fmt.Sprint(st.ThisMonth)),
		cell.Render(mutedStyle.Render("Consistency"))+
			labelStyle(st.ConsistencyScore).Render(fmt.Sprintf("%d%% %s", st.ConsistencyScore, st.ConsistencyLabel)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Stats"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right),
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	if d.loaded {
		title += "  " + mutedStyle.Render(d.today.Weekday().String())
	}

	routine := mutedStyle.Render("No routine planned")
	switch {
	case d.routine.IsRestDay:
		routine = lipgloss.NewStyle().Foreground(colorSecondary).Render("Rest day")
	case !d.routine.Empty():
		routine = highlightStyle.Render(d.routine.Title())
		if d.routine.Name != "" && len(d.routine.MuscleGroups) > 0 {
			routine += mutedStyle.Render("  " + strings.Join(d.routine.MuscleGroups, " · "))
		}
	}

	rows := []string{title, routine, "", titleStyle.Render("Recent")}
	if len(d.recent) == 0 {
		rows = append(rows, mutedStyle.Render("No workouts yet"))
	}
	for _, wk := range d.recent {
		line := fmt.Sprintf("  %s  %s", wk.Date.String(), mutedStyle.Render(wk.Date.Weekday().String()[:3]))
		if wk.Notes != "" {
			line += "  " + wk.Notes
		}
		rows = append(rows, line)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
