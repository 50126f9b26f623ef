package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidMonth is returned when a month falls outside 1..12.
var ErrInvalidMonth = errors.New("invalid month")

// ErrInvalidDate is returned for dates that do not exist on the calendar.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// Date is a calendar day with no time or location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates y-m-d against the proleptic Gregorian calendar.
func NewDate(year, month, day int) (Date, error) {
	n, err := DaysInMonth(month, year)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > n {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// DateOf returns the calendar day of t in t's own location. Convert t with
// In before calling when a specific zone is wanted.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DayNumber counts days since 1970-01-01. Negative before the epoch.
func (d Date) DayNumber() int64 {
	return daysFromCivil(int64(d.Year), int64(d.Month), int64(d.Day))
}

// FromDayNumber is the inverse of DayNumber.
func FromDayNumber(n int64) Date {
	y, m, d := civilFromDays(n)
	return Date{Year: int(y), Month: time.Month(m), Day: int(d)}
}

// AddDays moves d by n days, crossing month and year boundaries.
func (d Date) AddDays(n int) Date {
	return FromDayNumber(d.DayNumber() + int64(n))
}

// Weekday of d, Sunday = 0.
func (d Date) Weekday() time.Weekday {
	return time.Weekday(floorMod(d.DayNumber()+4, 7)) // 1970-01-01 was a Thursday
}

func (d Date) Before(o Date) bool { return d.DayNumber() < o.DayNumber() }
func (d Date) After(o Date) bool  { return d.DayNumber() > o.DayNumber() }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// DateSet holds logged days. Membership only; order is irrelevant.
type DateSet map[Date]struct{}

func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Add(d Date) { s[d] = struct{}{} }

func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the members oldest first.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber() < out[j].DayNumber() })
	return out
}

// daysFromCivil and civilFromDays follow Howard Hinnant's chrono algorithms.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func civilFromDays(z int64) (y, m, d int64) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
