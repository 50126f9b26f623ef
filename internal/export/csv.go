package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/gymstreak/internal/store"
)

// ToCSV writes one row per workout. The routine column is the plan that
// was set for that weekday at export time.
func ToCSV(workouts []store.Workout, week store.Week, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Weekday", "Routine", "Notes"}); err != nil {
		return err
	}

	for _, wo := range workouts {
		wd := wo.Date.Weekday()
		row := []string{
			fmt.Sprintf("%d", wo.ID),
			wo.Date.String(),
			wd.String(),
			week[int(wd)].Title(),
			wo.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
