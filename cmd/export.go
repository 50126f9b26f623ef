package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/gymstreak/internal/export"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newExportCmd() *cobra.Command {
	var format, output string

	c := &cobra.Command{
		Use:   "export",
		Short: "Export workouts as CSV, JSON or iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			switch format {
			case "csv", "json", "ics":
			default:
				return fmt.Errorf("unknown format %q (want csv, json or ics)", format)
			}
			if output == "" {
				output = fmt.Sprintf("gymstreak-export-%s.%s", a.today(), format)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			workouts, err := s.ListWorkouts(store.WorkoutFilter{})
			if err != nil {
				return err
			}
			week, err := s.Week()
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				err = export.ToCSV(workouts, week, output)
			case "json":
				st, serr := s.Snapshot(a.today())
				if serr != nil {
					return serr
				}
				err = export.ToJSON(workouts, week, st, output)
			case "ics":
				err = export.ToICS(workouts, week, output)
			}
			if err != nil {
				return err
			}

			logrus.WithField("path", output).WithField("workouts", len(workouts)).Info("exported")
			okf(cmd.OutOrStdout(), "Exported %d workouts to %s", len(workouts), output)
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "csv", "csv, json or ics")
	c.Flags().StringVarP(&output, "output", "o", "", "output file (default gymstreak-export-DATE.FORMAT)")
	return c
}
