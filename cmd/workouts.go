package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sadopc/gymstreak/internal/streak"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newCheckInCmd() *cobra.Command {
	var date, notes string

	c := &cobra.Command{
		Use:     "checkin",
		Aliases: []string{"ci"},
		Short:   "Log a workout for today",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dateFlag(date)
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			_, err = s.CheckIn(d, notes)
			if errors.Is(err, store.ErrAlreadyCheckedIn) {
				warnf(out, "Already checked in for %s", d)
			} else if err != nil {
				return err
			} else {
				logrus.WithField("date", d.String()).Info("checked in")
				okf(out, "Checked in for %s", d)
			}

			st, err := s.Snapshot(a.today())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, streakLine(st))
			return nil
		},
	}
	c.Flags().StringVar(&date, "date", "", "day to log as YYYY-MM-DD (default today)")
	c.Flags().StringVarP(&notes, "notes", "n", "", "optional notes")
	return c
}

func (a *app) newUndoCmd() *cobra.Command {
	var date string

	c := &cobra.Command{
		Use:   "undo",
		Short: "Remove today's check-in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dateFlag(date)
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteWorkout(d); err != nil {
				if errors.Is(err, store.ErrWorkoutNotFound) {
					return fmt.Errorf("no check-in on %s", d)
				}
				return err
			}
			logrus.WithField("date", d.String()).Info("check-in removed")
			okf(cmd.OutOrStdout(), "Removed check-in for %s", d)
			return nil
		},
	}
	c.Flags().StringVar(&date, "date", "", "day to remove as YYYY-MM-DD (default today)")
	return c
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.Snapshot(a.today())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), st, s.IntSetting(store.SettingFireThreshold, 7))
			return nil
		},
	}
}

func streakLine(st streak.Stats) string {
	n := st.ShownStreak()
	line := fmt.Sprintf("Streak: %d %s", n, days(n))
	if !st.TodayLogged && st.DisplayStreak != nil {
		line += mutedStyle.Render(" (check in today to keep it)")
	}
	return line
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func printStats(w io.Writer, st streak.Stats, fireThreshold int) {
	header(w, "Stats")

	shown := st.ShownStreak()
	cur := fmt.Sprintf("%d %s", shown, days(shown))
	if shown >= fireThreshold {
		cur = fireStyle.Render(cur + " " + iconFire)
	}
	if !st.TodayLogged {
		cur += mutedStyle.Render("  not logged today")
	}

	kv(w, "Streak", cur)
	kv(w, "Best streak", fmt.Sprintf("%d %s", st.BestStreak, days(st.BestStreak)))
	kv(w, "Total", fmt.Sprint(st.TotalWorkouts))
	kv(w, "This week", fmt.Sprintf("%d / %d", st.ThisWeek, streak.WeeklyGoal))
	kv(w, "This month", fmt.Sprint(st.ThisMonth))
	kv(w, "Avg per week", fmt.Sprintf("%.1f", st.AvgPerWeek))
	kv(w, "Consistency", fmt.Sprintf("%d%% %s", st.ConsistencyScore, st.ConsistencyLabel))
	if m := st.NextMilestone; m != nil {
		kv(w, "Next milestone", fmt.Sprintf("%d (%d to go)", m.Target, m.Remaining))
	}
}
