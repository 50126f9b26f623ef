package export

import (
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/sadopc/gymstreak/internal/store"
)

const productID = "-//gymstreak//workouts//EN"

// uidNamespace keeps event UIDs stable across exports so calendar apps
// update events instead of duplicating them.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/sadopc/gymstreak"))

// EventUID returns the UID used for the workout on date (YYYY-MM-DD).
func EventUID(date string) string {
	return uuid.NewSHA1(uidNamespace, []byte(date)).String() + "@gymstreak"
}

// ToICS writes one all-day event per workout.
func ToICS(workouts []store.Workout, week store.Week, path string) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("Workouts")

	stamp := time.Now().UTC()
	for _, w := range workouts {
		day := w.Date.Time(time.UTC)
		summary := "Workout"
		if title := week[int(w.Date.Weekday())].Title(); title != "" {
			summary = "Workout: " + title
		}

		ev := cal.AddEvent(EventUID(w.Date.String()))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetSummary(summary)
		if w.Notes != "" {
			ev.SetDescription(w.Notes)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ics file: %w", err)
	}
	defer f.Close()

	if err := cal.SerializeTo(f); err != nil {
		return fmt.Errorf("write ics file: %w", err)
	}
	return nil
}
