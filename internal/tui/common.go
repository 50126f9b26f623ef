package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCalendar
	viewRoutines
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Calendar", "Routines", "Reports", "Settings"}

// --- Messages ---

type checkedInMsg struct {
	workout *store.Workout
}

type undoneMsg struct {
	date calendar.Date
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type confettiFrameMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatAvg(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

// clock yields "today" in the configured zone.
type clock struct {
	now func() time.Time
	loc *time.Location
}

func (c clock) today() calendar.Date {
	return calendar.DateOf(c.now().In(c.loc))
}
