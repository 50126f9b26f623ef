package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/spf13/cobra"
)

func (a *app) newCalendarCmd() *cobra.Command {
	var month, year int

	c := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month with workout days marked",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today := a.today()
			if month == 0 {
				month = int(today.Month)
			}
			if year == 0 {
				year = today.Year
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			days, err := s.WorkoutDays(month, year)
			if err != nil {
				return err
			}
			b := calendar.GridBuilder{WeekStart: a.weekStart(s)}
			cells, err := b.Build(month, year, days, calendar.TodayFor(month, year, today))
			if err != nil {
				return err
			}

			name, _ := calendar.MonthName(month)
			printMonth(cmd.OutOrStdout(), fmt.Sprintf("%s %d", name, year), b.Headers(), cells)
			fmt.Fprintf(cmd.OutOrStdout(), "\n  %d %s\n", len(days), pluralWorkouts(len(days)))
			return nil
		},
	}
	c.Flags().IntVarP(&month, "month", "m", 0, "month 1-12 (default current)")
	c.Flags().IntVarP(&year, "year", "y", 0, "year (default current)")
	return c
}

func pluralWorkouts(n int) string {
	if n == 1 {
		return "workout"
	}
	return "workouts"
}

// printMonth renders a grid with four columns per day. Workout days carry a
// trailing '*' so the marker survives uncolored output.
func printMonth(w io.Writer, title string, headers []string, cells []calendar.Cell) {
	header(w, title)

	var hdr []string
	for _, h := range headers {
		hdr = append(hdr, fmt.Sprintf("%4s", h[:2]))
	}
	fmt.Fprintln(w, mutedStyle.Render(strings.Join(hdr, "")))

	for _, week := range calendar.Weeks(cells) {
		var line strings.Builder
		for _, cell := range week {
			if cell.Blank {
				line.WriteString("    ")
				continue
			}
			text := fmt.Sprintf("%3d", cell.Day)
			mark := " "
			if cell.HasWorkout {
				mark = "*"
			}
			switch {
			case cell.IsToday:
				line.WriteString(todayStyle.Render(text + mark))
			case cell.HasWorkout:
				line.WriteString(successStyle.Render(text + mark))
			default:
				line.WriteString(text + mark)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
