// Package stats reports daily compliance over stored shift records
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/dutylog/dutylog/compliance"
	"github.com/dutylog/dutylog/internal/config"
	"github.com/dutylog/dutylog/internal/models"
	"github.com/dutylog/dutylog/internal/timeutil"
	"github.com/dutylog/dutylog/internal/ui"
	"github.com/dutylog/dutylog/store"
)

var (
	opts *config.FilterConfig
	db   store.DB
)

const (
	barChartChar = "▇"
	noShiftsMsg  = "No shifts found for the specified time range"

	// historyDays is how far before the reporting window shifts are
	// fetched, enough to compute fortnightly sums and rest gaps for the
	// first reported day.
	historyDays = 14

	dailyDrivingMins = 9 * 60
)

// day is one calendar day's activity aggregated over its shifts.
type day struct {
	date       string
	totals     compliance.DayTotals
	poaMinutes int
	firstStart time.Time
	lastEnd    time.Time
	shifts     int
}

// buildDays groups finalized shifts by their local calendar date.
func buildDays(recs []models.ShiftRecord) map[string]*day {
	days := make(map[string]*day)

	for i := range recs {
		rec := recs[i]

		d, ok := days[rec.Date]
		if !ok {
			d = &day{date: rec.Date}
			days[rec.Date] = d
		}

		d.totals.WorkMinutes += rec.WorkMinutes
		d.totals.DrivingMinutes += rec.DrivingMinutes
		d.totals.BreakMinutes += rec.BreakMinutes
		d.poaMinutes += rec.POAMinutes
		d.shifts++

		if d.firstStart.IsZero() || rec.StartTime.Before(d.firstStart) {
			d.firstStart = rec.StartTime
		}

		if rec.EndTime.After(d.lastEnd) {
			d.lastEnd = rec.EndTime
		}
	}

	return days
}

// evaluateDay scores one date against the surrounding history.
func evaluateDay(days map[string]*day, date string) compliance.Result {
	d, ok := days[date]
	if !ok {
		return compliance.Evaluate(compliance.Input{})
	}

	return compliance.Evaluate(compliance.Input{
		Day:                     d.totals,
		FirstStart:              d.firstStart,
		PrevDayEnd:              prevDayEnd(days, date),
		FortnightDrivingMinutes: fortnightDriving(days, date),
		WeeklyExtensionsUsed:    weeklyExtensions(days, date),
		HasSessions:             true,
	})
}

// prevDayEnd finds the last shift end on the most recent earlier day with
// activity, looking back through the fetched history.
func prevDayEnd(days map[string]*day, date string) time.Time {
	cur := timeutil.PrevDate(date)

	for range historyDays {
		if d, ok := days[cur]; ok {
			return d.lastEnd
		}

		cur = timeutil.PrevDate(cur)
	}

	return time.Time{}
}

// fortnightDriving sums driving minutes over the fourteen calendar days
// ending on date.
func fortnightDriving(days map[string]*day, date string) int {
	total := 0
	cur := date

	for range historyDays {
		if d, ok := days[cur]; ok {
			total += d.totals.DrivingMinutes
		}

		cur = timeutil.PrevDate(cur)
	}

	return total
}

// weeklyExtensions counts earlier days in date's ISO week whose driving
// exceeded the nine-hour limit, which is what consumes an extension.
func weeklyExtensions(days map[string]*day, date string) int {
	year, week := timeutil.ISOWeekOf(date)

	count := 0
	cur := timeutil.PrevDate(date)

	for {
		y, w := timeutil.ISOWeekOf(cur)
		if y != year || w != week {
			break
		}

		if d, ok := days[cur]; ok && d.totals.DrivingMinutes > dailyDrivingMins {
			count++
		}

		cur = timeutil.PrevDate(cur)
	}

	return count
}

func violationLabels(result compliance.Result) []string {
	var labels []string

	for _, v := range result.Violations {
		label := string(v.Code)
		if v.Overage > 0 {
			label = fmt.Sprintf("%s (%s over)",
				v.Code, durafmt.Parse(v.Overage).LimitFirstN(2))
		}

		labels = append(labels, label)
	}

	sort.SliceStable(labels, func(i, j int) bool {
		return natural.Less(labels[i], labels[j])
	})

	return labels
}

func scoreLabel(score int) string {
	s := strconv.Itoa(score)

	switch {
	case score == 100:
		return ui.Green(s)
	case score >= 60:
		return ui.Yellow(s)
	default:
		return ui.Red(s)
	}
}

// reportedDates returns the dates inside the reporting window, oldest
// first. History fetched only for context is excluded.
func reportedDates(days map[string]*day) []string {
	first := ""
	if !opts.StartTime.IsZero() {
		first = timeutil.DateOf(opts.StartTime)
	}

	var dates []string

	for date := range days {
		if date >= first {
			dates = append(dates, date)
		}
	}

	sort.Strings(dates)

	return dates
}

func getDaysTable(days map[string]*day, dates []string, w io.Writer) {
	data := [][]string{
		{"#", "DATE", "WORK", "POA", "BREAKS", "DRIVING", "SCORE", "VIOLATIONS"},
	}

	for _, date := range dates {
		result := evaluateDay(days, date)
		d := days[date]

		data = append(data, []string{
			strconv.Itoa(len(data)),
			date,
			timeutil.FormatMins(d.totals.WorkMinutes),
			timeutil.FormatMins(d.poaMinutes),
			timeutil.FormatMins(d.totals.BreakMinutes),
			timeutil.FormatMins(d.totals.DrivingMinutes),
			scoreLabel(result.Score),
			strings.Join(violationLabels(result), ", "),
		})
	}

	ui.PrintTable(data, w)
}

func getSummary(days map[string]*day, dates []string) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	var work, driving, breaks, shifts int

	for _, date := range dates {
		d := days[date]
		work += d.totals.WorkMinutes
		driving += d.totals.DrivingMinutes
		breaks += d.totals.BreakMinutes
		shifts += d.shifts
	}

	workLine := fmt.Sprintf(
		"Work time: %s\n",
		ui.Green(durafmt.Parse(time.Duration(work)*time.Minute).
			LimitToUnit("hours").LimitFirstN(2)),
	)

	drivingLine := fmt.Sprintf(
		"Driving time: %s\n",
		ui.Green(durafmt.Parse(time.Duration(driving)*time.Minute).
			LimitToUnit("hours").LimitFirstN(2)),
	)

	breakLine := fmt.Sprintf(
		"Break time: %s\n",
		ui.Green(durafmt.Parse(time.Duration(breaks)*time.Minute).
			LimitToUnit("hours").LimitFirstN(2)),
	)

	shiftLine := fmt.Sprintln("Shifts completed:", ui.Green(shifts))

	return header + workLine + drivingLine + breakLine + shiftLine
}

func getBarChart(days map[string]*day, dates []string) string {
	if len(dates) == 0 {
		return ""
	}

	header := ui.Blue("\nDaily driving (minutes)")

	var bars pterm.Bars

	for _, date := range dates {
		bars = append(bars, pterm.Bar{
			Value: days[date].totals.DrivingMinutes,
			Label: date,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// dayReport is the JSON shape of one reported day.
type dayReport struct {
	Date           string   `json:"date"`
	Shifts         int      `json:"shifts"`
	WorkMinutes    int      `json:"work_minutes"`
	POAMinutes     int      `json:"poa_minutes"`
	BreakMinutes   int      `json:"break_minutes"`
	DrivingMinutes int      `json:"driving_minutes"`
	Score          int      `json:"score"`
	Violations     []string `json:"violations"`
}

func writeJSONReport(w io.Writer, days map[string]*day, dates []string) error {
	reports := make([]dayReport, 0, len(dates))

	for _, date := range dates {
		d := days[date]
		result := evaluateDay(days, date)

		reports = append(reports, dayReport{
			Date:           date,
			Shifts:         d.shifts,
			WorkMinutes:    d.totals.WorkMinutes,
			POAMinutes:     d.poaMinutes,
			BreakMinutes:   d.totals.BreakMinutes,
			DrivingMinutes: d.totals.DrivingMinutes,
			Score:          result.Score,
			Violations:     violationLabels(result),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(reports)
}

// Show displays daily compliance for the set time period.
func Show(w io.Writer, asJSON bool) error {
	defer db.Close()

	historyStart := opts.StartTime
	if !historyStart.IsZero() {
		historyStart = historyStart.AddDate(0, 0, -historyDays)
	}

	recs, err := db.GetShifts(historyStart, opts.EndTime)
	if err != nil {
		return err
	}

	days := buildDays(recs)
	dates := reportedDates(days)

	if len(dates) == 0 {
		fmt.Fprintln(w, noShiftsMsg)
		return nil
	}

	if asJSON {
		return writeJSONReport(w, days, dates)
	}

	reportingStart := opts.StartTime.Format("January 02, 2006")
	reportingEnd := opts.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	fmt.Fprint(w, header)

	getDaysTable(days, dates, w)

	fmt.Fprintln(w, strings.TrimSpace(
		getSummary(days, dates)+getBarChart(days, dates),
	))

	return nil
}

// Finalize scores a just-ended shift against its day's history and stores
// the result on the record. The engine has already saved the raw record;
// this pass attaches the compliance outcome.
func Finalize(rec *models.ShiftRecord) error {
	date, err := time.Parse(time.DateOnly, rec.Date)
	if err != nil {
		return err
	}

	recs, err := db.GetShifts(
		timeutil.RoundToStart(date.AddDate(0, 0, -historyDays)),
		rec.EndTime,
	)
	if err != nil {
		return err
	}

	days := buildDays(recs)

	result := evaluateDay(days, rec.Date)

	rec.Score = result.Score
	rec.Violations = violationLabels(result)

	return db.SaveShift(rec)
}

func Init(dbClient store.DB, cfg *config.FilterConfig) {
	db = dbClient
	opts = cfg
}
