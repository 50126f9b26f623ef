package calendar

import "time"

// Cell is one slot of a month grid. Blank cells pad the first week and
// carry no day.
type Cell struct {
	Day        int
	Blank      bool
	HasWorkout bool
	IsToday    bool
}

// Today marks which day, if any, gets the today highlight.
type Today struct {
	IsCurrentMonth bool
	Day            int
}

// TodayFor builds the Today marker for the month being displayed.
func TodayFor(month, year int, today Date) Today {
	if today.Year == year && int(today.Month) == month {
		return Today{IsCurrentMonth: true, Day: today.Day}
	}
	return Today{}
}

// GridBuilder lays out months starting the week on WeekStart. The zero
// value starts weeks on Sunday.
type GridBuilder struct {
	WeekStart time.Weekday
}

// BuildGrid lays out a Sunday-first month.
func BuildGrid(month, year int, workoutDays []int, today Today) ([]Cell, error) {
	return GridBuilder{}.Build(month, year, workoutDays, today)
}

func (b GridBuilder) Build(month, year int, workoutDays []int, today Today) ([]Cell, error) {
	first, err := WeekdayOfFirst(month, year)
	if err != nil {
		return nil, err
	}
	n, err := DaysInMonth(month, year)
	if err != nil {
		return nil, err
	}

	logged := make(map[int]bool, len(workoutDays))
	for _, d := range workoutDays {
		logged[d] = true
	}

	blanks := int(floorMod(int64(first-int(b.WeekStart)), 7))
	cells := make([]Cell, 0, blanks+n)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= n; day++ {
		cells = append(cells, Cell{
			Day:        day,
			HasWorkout: logged[day],
			IsToday:    today.IsCurrentMonth && day == today.Day,
		})
	}
	return cells, nil
}

// Headers returns weekday abbreviations in grid column order.
func (b GridBuilder) Headers() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = weekdayAbbr[(int(b.WeekStart)+i)%7]
	}
	return out
}

// Weeks splits cells into rows of seven. The last row may be short.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for len(cells) > 7 {
		rows = append(rows, cells[:7])
		cells = cells[7:]
	}
	if len(cells) > 0 {
		rows = append(rows, cells)
	}
	return rows
}
