package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newRoutinesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "routines",
		Short: "Show or import the weekly routine",
		Args:  cobra.NoArgs,
		RunE:  a.runRoutinesList,
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the routine for each weekday",
			Args:  cobra.NoArgs,
			RunE:  a.runRoutinesList,
		},
		&cobra.Command{
			Use:   "import <file>",
			Short: "Replace the weekly routine from a JSON file",
			Long: `Replace the weekly routine from a JSON file.

The file is either an object keyed by weekday number ("0" is Sunday) or an
array of up to seven days. Each day may set "name", "muscle_groups" and
"is_rest_day"; missing days are cleared.`,
			Args: cobra.ExactArgs(1),
			RunE: a.runRoutinesImport,
		},
	)
	return c
}

func (a *app) runRoutinesList(cmd *cobra.Command, _ []string) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	week, err := s.Week()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header(out, "Weekly Routine")
	today := int(a.today().Weekday())
	for day, r := range week {
		name := time.Weekday(day).String()
		if day == today {
			name += " *"
		}
		fmt.Fprintf(out, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-11s", name)), describeRoutine(r))
	}
	return nil
}

func describeRoutine(r store.Routine) string {
	switch {
	case r.IsRestDay:
		return mutedStyle.Render("Rest day")
	case r.Empty():
		return mutedStyle.Render("-")
	}
	s := r.Title()
	if r.Name != "" && len(r.MuscleGroups) > 0 {
		s += mutedStyle.Render(" (" + strings.Join(r.MuscleGroups, ", ") + ")")
	}
	return s
}

func (a *app) runRoutinesImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read routines: %w", err)
	}
	week, err := store.DecodeRoutines(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveWeek(week); err != nil {
		return err
	}

	planned := 0
	for _, r := range week {
		if !r.Empty() {
			planned++
		}
	}
	logrus.WithField("file", args[0]).WithField("planned", planned).Info("routines imported")
	okf(cmd.OutOrStdout(), "Imported routines: %d of 7 days planned", planned)
	return nil
}
