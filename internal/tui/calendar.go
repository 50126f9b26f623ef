package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sirupsen/logrus"
)

type calendarModel struct {
	store  *store.Store
	clock  clock
	width  int
	height int

	// weekStart pins the first column when set from the config file;
	// otherwise the week_start setting decides.
	weekStart *time.Weekday

	month, year int
	builder     calendar.GridBuilder
	days        []int
	today       calendar.Date
	err         error
}

func newCalendarModel(s *store.Store, c clock, weekStart *time.Weekday) calendarModel {
	today := c.today()
	return calendarModel{
		store:     s,
		clock:     c,
		weekStart: weekStart,
		month:     int(today.Month),
		year:      today.Year,
		today:     today,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	month, year int
	days        []int
	weekStart   time.Weekday
	today       calendar.Date
	err         error
}

func (c calendarModel) refresh() tea.Cmd {
	month, year := c.month, c.year
	return func() tea.Msg {
		days, err := c.store.WorkoutDays(month, year)
		if err != nil {
			logrus.WithError(err).WithField("month", month).WithField("year", year).Error("load calendar")
		}
		ws := c.store.WeekStart()
		if c.weekStart != nil {
			ws = *c.weekStart
		}
		return calendarDataMsg{
			month:     month,
			year:      year,
			days:      days,
			weekStart: ws,
			today:     c.clock.today(),
			err:       err,
		}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		// Ignore results for a month we have already moved away from.
		if msg.month != c.month || msg.year != c.year {
			return c, nil
		}
		c.days = msg.days
		c.builder = calendar.GridBuilder{WeekStart: msg.weekStart}
		c.today = msg.today
		c.err = msg.err
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.month, c.year = calendar.ShiftMonth(c.month, c.year, -1)
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			c.month, c.year = calendar.ShiftMonth(c.month, c.year, 1)
			return c, c.refresh()
		case key.Matches(msg, keys.Up):
			c.year--
			return c, c.refresh()
		case key.Matches(msg, keys.Down):
			c.year++
			return c, c.refresh()
		case key.Matches(msg, keys.Today):
			today := c.clock.today()
			c.month, c.year = int(today.Month), today.Year
			return c, c.refresh()
		}
	}
	return c, nil
}

func (c calendarModel) view() string {
	w := c.width - 4

	name, _ := calendar.MonthName(c.month)
	title := titleStyle.Render(fmt.Sprintf("%s %d", name, c.year))

	grid, err := c.renderGrid()
	if err == nil {
		err = c.err
	}
	if err != nil {
		grid = errorStyle.Render(err.Error())
	}

	summary := mutedStyle.Render(plural(len(c.days), "workout", "workouts") + " this month")
	legend := successStyle.Render("●") + mutedStyle.Render(" workout  ") +
		dayTodayStyle.UnsetWidth().Render("12") + mutedStyle.Render(" today")
	nav := mutedStyle.Render("  ←/→: month  ↑/↓: year  t: today")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", grid, "", summary, legend, "", nav,
		),
	)
}

func (c calendarModel) renderGrid() (string, error) {
	cells, err := c.builder.Build(c.month, c.year, c.days, calendar.TodayFor(c.month, c.year, c.today))
	if err != nil {
		return "", err
	}

	var rows []string
	var header []string
	for _, h := range c.builder.Headers() {
		header = append(header, dayHeaderStyle.Render(h))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, week := range calendar.Weeks(cells) {
		var line []string
		for _, cell := range week {
			line = append(line, renderCell(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return strings.Join(rows, "\n"), nil
}

func renderCell(cell calendar.Cell) string {
	if cell.Blank {
		return dayStyle.Render("")
	}
	text := fmt.Sprintf("%2d", cell.Day)
	switch {
	case cell.HasWorkout && cell.IsToday:
		return dayTodayStyle.Foreground(colorSuccess).Render(text + "●")
	case cell.HasWorkout:
		return dayWorkoutStyle.Render(text + "●")
	case cell.IsToday:
		return dayTodayStyle.Render(text)
	}
	return dayStyle.Render(text)
}
