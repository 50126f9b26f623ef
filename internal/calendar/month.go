package calendar

import "fmt"

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayAbbr = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return nil
}

// IsLeap reports whether year has a February 29th.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns 28..31 for month in year.
func DaysInMonth(month, year int) (int, error) {
	if err := checkMonth(month); err != nil {
		return 0, err
	}
	switch month {
	case 2:
		if IsLeap(year) {
			return 29, nil
		}
		return 28, nil
	case 4, 6, 9, 11:
		return 30, nil
	}
	return 31, nil
}

// WeekdayOfFirst returns the weekday of the 1st of month, Sunday = 0.
func WeekdayOfFirst(month, year int) (int, error) {
	if err := checkMonth(month); err != nil {
		return 0, err
	}
	first := daysFromCivil(int64(year), int64(month), 1)
	return int(floorMod(first+4, 7)), nil
}

// ShiftMonth moves month/year by delta months. The result is always a
// valid month, carrying into the year as needed.
func ShiftMonth(month, year, delta int) (int, int) {
	idx := int64(year)*12 + int64(month-1) + int64(delta)
	return int(floorMod(idx, 12)) + 1, int(floorDiv(idx, 12))
}

// MonthName returns the English month name.
func MonthName(month int) (string, error) {
	if err := checkMonth(month); err != nil {
		return "", err
	}
	return monthNames[month-1], nil
}
