package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/gymstreak/internal/store"
	"github.com/sirupsen/logrus"
)

type routinesModel struct {
	store  *store.Store
	clock  clock
	width  int
	height int

	week   store.Week
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName   *string
	formGroups *[]string
	formRest   *bool
}

func newRoutinesModel(s *store.Store, c clock) routinesModel {
	name, groups, rest := "", []string{}, false
	return routinesModel{
		store:      s,
		clock:      c,
		cursor:     int(c.today().Weekday()),
		formName:   &name,
		formGroups: &groups,
		formRest:   &rest,
	}
}

func (r *routinesModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type routinesDataMsg struct {
	week store.Week
}

func (r routinesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		week, err := r.store.Week()
		if err != nil {
			logrus.WithError(err).Error("load routines")
			return errStatus("Load error", err)
		}
		return routinesDataMsg{week: week}
	}
}

func (r routinesModel) update(msg tea.Msg) (routinesModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case routinesDataMsg:
		r.week = msg.week
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.week)-1 {
				r.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return r.showForm()
		case key.Matches(msg, keys.Delete):
			day := r.cursor
			return r, func() tea.Msg {
				if err := r.store.ClearRoutine(day); err != nil {
					logrus.WithError(err).WithField("day", day).Error("clear routine")
					return errStatus("Clear error", err)
				}
				return routinesDataMsg{week: r.mustWeek()}
			}
		}
	}
	return r, nil
}

func (r routinesModel) mustWeek() store.Week {
	week, err := r.store.Week()
	if err != nil {
		logrus.WithError(err).Error("reload routines")
		return r.week
	}
	return week
}

func (r routinesModel) showForm() (routinesModel, tea.Cmd) {
	cur := r.week[r.cursor]
	*r.formName = cur.Name
	*r.formGroups = append([]string(nil), cur.MuscleGroups...)
	*r.formRest = cur.IsRestDay

	options := make([]huh.Option[string], len(store.MuscleGroups))
	for i, g := range store.MuscleGroups {
		options[i] = huh.NewOption(g, g)
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Rest day?").Value(r.formRest),
			huh.NewInput().Title("Routine name").
				Placeholder("leave blank to name it after the muscle groups").
				Value(r.formName),
			huh.NewMultiSelect[string]().Title("Muscle groups").
				Options(options...).
				Value(r.formGroups),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) updateForm(msg tea.Msg) (routinesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		routine := store.Routine{
			Day:          r.cursor,
			Name:         *r.formName,
			MuscleGroups: *r.formGroups,
			IsRestDay:    *r.formRest,
		}
		if routine.IsRestDay {
			routine.Name = ""
			routine.MuscleGroups = nil
		}
		if err := r.store.SaveRoutine(routine); err != nil {
			logrus.WithError(err).WithField("day", r.cursor).Error("save routine")
			return r, func() tea.Msg { return errStatus("Save error", err) }
		}
		return r, r.refresh()
	}

	return r, cmd
}

func (r routinesModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		title := titleStyle.Render("Edit " + time.Weekday(r.cursor).String())
		formView := r.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Weekly Routine")
	today := int(r.clock.today().Weekday())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, routine := range r.week {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		day := fmt.Sprintf("%-10s", time.Weekday(i).String())
		if i == today {
			day = fmt.Sprintf("%-10s", time.Weekday(i).String()+" •")
		}

		var detail string
		switch {
		case routine.IsRestDay:
			detail = lipgloss.NewStyle().Foreground(colorSecondary).Render("Rest day")
		case routine.Empty():
			detail = mutedStyle.Render("-")
		default:
			detail = highlightStyle.Render(routine.Title())
			if routine.Name != "" && len(routine.MuscleGroups) > 0 {
				detail += mutedStyle.Render("  " + strings.Join(routine.MuscleGroups, ", "))
			}
		}
		rows = append(rows, style.Render(cursor+day)+" "+detail)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  d: clear  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
