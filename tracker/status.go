package tracker

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pterm/pterm"
	bolt "go.etcd.io/bbolt"

	"github.com/dutylog/dutylog/internal/config"
	"github.com/dutylog/dutylog/internal/timeutil"
	"github.com/dutylog/dutylog/shift"
)

// Status is what the dashboard publishes for other processes, such as
// status-bar integrations, to read.
type Status struct {
	UpdatedAt          time.Time `json:"updated_at"`
	Status             string    `json:"status"`
	Mode               string    `json:"mode"`
	WorkSecs           int64     `json:"work_secs"`
	POASecs            int64     `json:"poa_secs"`
	BreakSecs          int64     `json:"break_secs"`
	DrivingSecs        int64     `json:"driving_secs"`
	WorkRemainingSecs  int64     `json:"work_remaining_secs"`
	DriveRemainingSecs int64     `json:"drive_remaining_secs"`
	IsDriving          bool      `json:"is_driving"`
}

func (t *Tracker) writeStatusFile() error {
	s := Status{
		UpdatedAt:          time.Now(),
		Status:             string(t.display.Status),
		Mode:               string(t.display.Mode),
		WorkSecs:           int64(t.display.Work.Seconds()),
		POASecs:            int64(t.display.POA.Seconds()),
		BreakSecs:          int64(t.display.Break.Seconds()),
		DrivingSecs:        int64(t.display.Driving.Seconds()),
		WorkRemainingSecs:  int64(t.display.WorkRemaining.Seconds()),
		DriveRemainingSecs: int64(t.display.DriveRemaining.Seconds()),
		IsDriving:          t.display.IsDriving,
	}

	statusFile, err := os.Create(t.opts.System.StatusPath)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReportStatus prints a one-line summary of the running dashboard for
// status bars and shell prompts.
func ReportStatus(cfg *config.Config) error {
	var fileMode fs.FileMode = 0o600

	_, err := bolt.Open(cfg.System.DBPath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// the database is lockable, so dutylog is not running and there is no
	// status to report
	if err == nil {
		return nil
	}

	if !errors.Is(err, bolt.ErrDatabaseOpen) &&
		!errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(cfg.System.StatusPath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	var text string

	switch shift.Status(s.Status) {
	case shift.Working:
		text = fmt.Sprintf("[Working %s]", s.Mode)
	case shift.POA:
		text = "[POA]"
	case shift.Break:
		text = "[Break]"
	default:
		text = "[Off duty]"
	}

	if s.IsDriving {
		text += " [driving]"
	}

	pterm.Printfln("%s work %s | remaining %s | driving left %s",
		text,
		timeutil.FormatDuration(time.Duration(s.WorkSecs)*time.Second),
		timeutil.FormatDuration(time.Duration(s.WorkRemainingSecs)*time.Second),
		timeutil.FormatDuration(time.Duration(s.DriveRemainingSecs)*time.Second),
	)

	return nil
}
