package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sadopc/gymstreak/internal/streak"
	"github.com/sirupsen/logrus"
)

const defaultReportWeeks = 8

type reportsModel struct {
	store  *store.Store
	clock  clock
	width  int
	height int

	weeks   int
	offset  int // weeks back from today (0 = ending today)
	end     calendar.Date
	buckets []int
	stats   streak.Stats

	chart barchart.Model
}

func newReportsModel(s *store.Store, c clock) reportsModel {
	return reportsModel{
		store: s,
		clock: c,
		weeks: defaultReportWeeks,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	weeks   int
	end     calendar.Date
	buckets []int
	stats   streak.Stats
}

func (r reportsModel) refresh() tea.Cmd {
	offset := r.offset
	return func() tea.Msg {
		weeks := r.store.IntSetting(store.SettingReportWeeks, defaultReportWeeks)
		today := r.clock.today()
		end := today.AddDays(-7 * offset)

		dates, err := r.store.WorkoutDates()
		if err != nil {
			logrus.WithError(err).Error("load report")
			return errStatus("Report error", err)
		}
		return reportsDataMsg{
			weeks:   weeks,
			end:     end,
			buckets: streak.WeeklyBuckets(dates, end, weeks),
			stats:   streak.Compute(dates, today),
		}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.weeks = msg.weeks
		r.end = msg.end
		r.buckets = msg.buckets
		r.stats = msg.stats
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Today):
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

// weekStart is the first day of bucket i.
func (r reportsModel) weekStart(i int) calendar.Date {
	return r.end.AddDays(-7*(len(r.buckets)-1-i) - 6)
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, n := range r.buckets {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if n >= streak.WeeklyGoal {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}
		start := r.weekStart(i)
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%s %02d", start.Month.String()[:3], start.Day),
			Values: []barchart.BarValue{{
				Name:  "workouts",
				Value: float64(n),
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	header := titleStyle.Render("Reports")
	if len(r.buckets) > 0 {
		from := r.weekStart(0)
		header = lipgloss.JoinHorizontal(lipgloss.Bottom,
			header, "  ",
			mutedStyle.Render(fmt.Sprintf("%s – %s", from.String(), r.end.String())),
		)
	}

	if len(r.buckets) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("  No data for this period")),
		)
	}

	chartView := r.chart.View()
	tableView := r.renderTable(w)
	score := fmt.Sprintf("  Consistency %s  %s",
		labelStyle(r.stats.ConsistencyScore).Render(fmt.Sprintf("%d%%", r.stats.ConsistencyScore)),
		mutedStyle.Render(fmt.Sprintf("%s · %s per week · goal %d",
			r.stats.ConsistencyLabel, formatAvg(r.stats.AvgPerWeek), streak.WeeklyGoal)),
	)
	nav := mutedStyle.Render("  ←/→: navigate  t: latest")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", score, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-12s %8s", "From", "To", "Workouts")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 34))))

	total := 0
	for i, n := range r.buckets {
		start := r.weekStart(i)
		end := start.AddDays(6)
		count := fmt.Sprintf("%8d", n)
		if n >= streak.WeeklyGoal {
			count = successStyle.Render(count)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %-12s %s", start.String(), end.String(), count))
		total += n
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-25s %8d", "Total", total)))

	return strings.Join(rows, "\n")
}
