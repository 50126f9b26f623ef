package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/export"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sirupsen/logrus"
)

// Options configures an App. Zero values fall back to the defaults.
type Options struct {
	Now      func() time.Time
	Location *time.Location
	// WeekStart pins the calendar's first column, overriding the setting.
	WeekStart *time.Weekday

	ConfettiCount int
	ConfettiSeed  uint64
	FrameInterval time.Duration
	// ExportDir is where exports are written. Defaults to the home directory.
	ExportDir string
}

var exportFormats = []string{"CSV", "JSON", "ICS"}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	clock  clock
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	dashboard dashboardModel
	calendar  calendarModel
	routines  routinesModel
	reports   reportsModel
	settings  settingsModel

	confetti *celebration

	help    help.Model
	status  string
	isError bool
}

func NewApp(s *store.Store, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}

	h := help.New()
	h.ShowAll = false

	c := clock{now: opts.Now, loc: opts.Location}
	return App{
		store:      s,
		clock:      c,
		activeView: viewDashboard,
		exportDir:  opts.ExportDir,
		dashboard:  newDashboardModel(s, c),
		calendar:   newCalendarModel(s, c, opts.WeekStart),
		routines:   newRoutinesModel(s, c),
		reports:    newReportsModel(s, c),
		settings:   newSettingsModel(s),
		confetti:   newCelebration(opts.ConfettiCount, opts.ConfettiSeed, opts.FrameInterval),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.routines.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.confetti.resize(a.width)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.CheckIn):
			return a, a.dashboard.checkIn()
		case key.Matches(msg, keys.Undo):
			return a, a.dashboard.undo()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCalendar
			return a, a.calendar.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewRoutines
			return a, a.routines.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Always route ticks to the dashboard so it notices midnight.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case confettiFrameMsg:
		return a, a.confetti.frame()

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		return a, nil

	case checkedInMsg:
		a.status = "Checked in for " + msg.workout.Date.String()
		a.isError = false
		cmds = append(cmds, a.dashboard.loadData(), a.refreshCurrentView())
		if a.store.ConfettiEnabled() {
			cmds = append(cmds, a.confetti.burst())
		}
		return a, tea.Batch(cmds...)

	case undoneMsg:
		a.status = "Removed check-in for " + msg.date.String()
		a.isError = false
		return a, tea.Batch(a.dashboard.loadData(), a.refreshCurrentView())

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isError = false
		a.exportPicking = false
		return a, nil

	case dashboardDataMsg:
		// Data loads can land while another view is active.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewRoutines:
		a.routines, cmd = a.routines.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewRoutines:
		return a.routines.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewCalendar:
		return a.calendar.refresh()
	case viewRoutines:
		return a.routines.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewRoutines:
		content = a.routines.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	if a.confetti.running() {
		content = lipgloss.JoinVertical(lipgloss.Left, a.confetti.view(), content)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("gymstreak")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Streak indicator in footer
	streakInfo := ""
	if a.dashboard.loaded {
		n := a.dashboard.stats.ShownStreak()
		if a.dashboard.stats.TodayLogged {
			streakInfo = successStyle.Render(fmt.Sprintf(" ● %d", n))
		} else {
			streakInfo = warningStyle.Render(fmt.Sprintf(" ○ %d", n))
		}
	}

	left := footerStyle.Render(helpView)
	right := streakInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		workouts, err := a.store.ListWorkouts(store.WorkoutFilter{})
		if err != nil {
			logrus.WithError(err).Error("export: list workouts")
			return errStatus("Export error", err)
		}
		week, err := a.store.Week()
		if err != nil {
			logrus.WithError(err).Error("export: load routines")
			return errStatus("Export error", err)
		}

		dir := a.exportDir
		if dir == "" {
			dir, _ = os.UserHomeDir()
		}
		today := a.clock.today()
		base := filepath.Join(dir, "gymstreak-export-"+today.String())

		var path string
		switch format {
		case 0:
			path = base + ".csv"
			err = export.ToCSV(workouts, week, path)
		case 1:
			path = base + ".json"
			stats, serr := a.store.Snapshot(today)
			if serr != nil {
				err = serr
				break
			}
			err = export.ToJSON(workouts, week, stats, path)
		default:
			path = base + ".ics"
			err = export.ToICS(workouts, week, path)
		}
		if err != nil {
			logrus.WithError(err).WithField("path", path).Error("export")
			return errStatus(exportFormats[min(format, len(exportFormats)-1)]+" error", err)
		}

		logrus.WithField("path", path).WithField("workouts", len(workouts)).Info("exported")
		return exportDoneMsg{path: path}
	}
}
