// Package cmd wires the gymstreak command line.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/gymstreak/internal/calendar"
	"github.com/sadopc/gymstreak/internal/config"
	"github.com/sadopc/gymstreak/internal/logging"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sadopc/gymstreak/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// now is swapped out in tests.
var now = time.Now

// app is the state shared by every subcommand once the root pre-run has
// loaded the config.
type app struct {
	configPath string
	dbPath     string
	verbose    bool
	noColor    bool

	cfg    *config.Config
	loc    *time.Location
	closer io.Closer
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gymstreak",
		Short: "Track daily workouts and keep the streak alive",
		Long: `gymstreak logs one check-in per day, tracks your streak and weekly
consistency, and plans a routine for each weekday.

Run without a subcommand to open the dashboard.`,
		RunE:              a.runDashboard,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.config/gymstreak/config.toml)")
	pf.StringVar(&a.dbPath, "db", "", "database file, overrides db_path from the config")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.newCheckInCmd(),
		a.newUndoCmd(),
		a.newStatsCmd(),
		a.newCalendarCmd(),
		a.newExportCmd(),
		a.newRoutinesCmd(),
		a.newConfigCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printErr(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("database path: %w", err)
		}
		cfg.DBPath = p
	}

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	closer, err := logging.Setup(logging.Params{
		File:   cfg.Log.File,
		Level:  level,
		JSON:   cfg.Log.JSON,
		Stderr: a.verbose,
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	a.closer = closer

	for _, k := range cfg.Undecoded {
		logrus.WithField("key", k).Warn("unknown config key")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.loc = loc

	setColor(!a.noColor)
	return nil
}

func (a *app) teardown() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *app) openStore() (*store.Store, error) {
	logrus.WithField("path", a.cfg.DBPath).Debug("opening store")
	s, err := store.New(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.cfg.DBPath, err)
	}
	return s, nil
}

func (a *app) today() calendar.Date {
	return calendar.DateOf(now().In(a.loc))
}

// dateFlag resolves a --date value, defaulting to today.
func (a *app) dateFlag(v string) (calendar.Date, error) {
	if v == "" {
		return a.today(), nil
	}
	d, err := calendar.ParseDate(v)
	if err != nil {
		return calendar.Date{}, err
	}
	if d.After(a.today()) {
		return calendar.Date{}, fmt.Errorf("%s is in the future", d)
	}
	return d, nil
}

// weekStart prefers the config file over the stored setting.
func (a *app) weekStart(s *store.Store) time.Weekday {
	if wd, ok := a.cfg.WeekStart(); ok {
		return wd
	}
	return s.WeekStart()
}

func (a *app) runDashboard(_ *cobra.Command, _ []string) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	opts := tui.Options{
		Now:           now,
		Location:      a.loc,
		ConfettiCount: a.cfg.Confetti.Count,
		ConfettiSeed:  a.cfg.Confetti.Seed,
		FrameInterval: a.cfg.FrameInterval(),
	}
	if wd, ok := a.cfg.WeekStart(); ok {
		opts.WeekStart = &wd
	}

	logrus.Info("starting dashboard")
	p := tea.NewProgram(tui.NewApp(s, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
