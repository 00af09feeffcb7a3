package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/dutylog/dutylog/internal/models"
	"github.com/dutylog/dutylog/internal/timeutil"
	"github.com/dutylog/dutylog/internal/ui"
)

func printShiftsTable(w io.Writer, recs []models.ShiftRecord) {
	data := [][]string{
		{"#", "START", "END", "WORK", "BREAKS", "DRIVING", "SCORE"},
	}

	for i := range recs {
		rec := recs[i]

		endDate := rec.EndTime.Format("January 02, 2006 03:04 PM")
		if rec.EndTime.IsZero() {
			endDate = ""
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			rec.StartTime.Format("January 02, 2006 03:04 PM"),
			endDate,
			timeutil.FormatMins(rec.WorkMinutes),
			timeutil.FormatMins(rec.BreakMinutes),
			timeutil.FormatMins(rec.DrivingMinutes),
			scoreLabel(rec.Score),
		}

		data = append(data, row)
	}

	ui.PrintTable(data, w)
}

// List prints out a table of all the shifts that were completed within the
// specified time range.
func List(w io.Writer, asJSON bool) error {
	defer db.Close()

	recs, err := db.GetShifts(opts.StartTime, opts.EndTime)
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		pterm.Info.Println(noShiftsMsg)
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(recs)
	}

	printShiftsTable(w, recs)

	return nil
}
