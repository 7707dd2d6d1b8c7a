package schedule

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/schedview/schedview/internal/apperror"
	"github.com/schedview/schedview/internal/planner"
)

// errNoSnapshot guards against mapping before any fetch has completed.
var errNoSnapshot = errors.New("no snapshot loaded")

// Title prefixes for the all-day deadline markers.
const (
	duePrefix  = "DUE: "
	testPrefix = "TEST: "
)

// MapEvents converts a snapshot into the normalized event list for the
// 7-day window starting at rangeStart. Within a category, source order is
// preserved; categories are emitted in plan/task/test/class order, though
// the calendar does not depend on any cross-category ordering.
//
// The window is always exactly 7 consecutive days starting at rangeStart,
// so each recurring class entry is materialized exactly once per call.
//
// A snapshot carrying an error field aborts with no partial events.
// Individual entries with unparseable dates or times are skipped.
func MapEvents(snap *planner.Snapshot, rangeStart time.Time) ([]Event, error) {
	if snap == nil {
		return nil, apperror.NewInternal(errNoSnapshot)
	}
	if snap.Error != "" {
		return nil, apperror.NewUpstream(snap.Error)
	}

	events := make([]Event, 0,
		len(snap.GeneratedPlan)+len(snap.Tasks)+len(snap.Tests)+len(snap.Schedule))

	// Generated plan sessions: concrete, non-recurring study blocks.
	for _, s := range snap.GeneratedPlan {
		start, okStart := combineDateTime(s.Date, s.StartTime)
		end, okEnd := combineDateTime(s.Date, s.EndTime)
		if !okStart || !okEnd {
			slog.Warn("skipping unparseable plan session",
				slog.String("task", s.Task), slog.String("date", s.Date))
			continue
		}
		color := colorPending
		if s.Completed {
			color = colorDone
		}
		events = append(events, Event{
			Title:  s.Task,
			Start:  start,
			End:    end,
			Color:  color,
			Type:   TypePlan,
			IsDone: s.Completed,
		})
	}

	// Tasks: all-day marker on the deadline's date, time-of-day discarded.
	// Tasks without a deadline produce no event.
	for _, t := range snap.Tasks {
		if t.Deadline == "" {
			continue
		}
		day, ok := parseDatePart(t.Deadline)
		if !ok {
			slog.Warn("skipping task with unparseable deadline",
				slog.String("name", t.Name), slog.String("deadline", t.Deadline))
			continue
		}
		events = append(events, Event{
			Title:  duePrefix + t.Name,
			Start:  day,
			AllDay: true,
			Color:  colorTask,
			Type:   TypeTask,
		})
	}

	// Tests: all-day marker on the test date.
	for _, t := range snap.Tests {
		if t.Date == "" {
			continue
		}
		day, ok := parseDatePart(t.Date)
		if !ok {
			slog.Warn("skipping test with unparseable date",
				slog.String("name", t.Name), slog.String("date", t.Date))
			continue
		}
		events = append(events, Event{
			Title:  testPrefix + t.Name,
			Start:  day,
			AllDay: true,
			Color:  colorTest,
			Type:   TypeTest,
		})
	}

	// Classes: materialize each weekly entry onto the window days whose
	// weekday matches its day name.
	windowStart := truncateToDay(rangeStart)
	for _, cls := range snap.Schedule {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(cls.Day))]
		if !ok {
			slog.Warn("skipping class with unknown weekday",
				slog.String("subject", cls.Subject), slog.String("day", cls.Day))
			continue
		}
		for d := 0; d < 7; d++ {
			day := windowStart.AddDate(0, 0, d)
			if day.Weekday() != wd {
				continue
			}
			dateStr := day.Format("2006-01-02")
			start, okStart := combineDateTime(dateStr, cls.StartTime)
			end, okEnd := combineDateTime(dateStr, cls.EndTime)
			if !okStart || !okEnd {
				slog.Warn("skipping class with unparseable times",
					slog.String("subject", cls.Subject))
				break
			}
			events = append(events, Event{
				Title: cls.Subject,
				Start: start,
				End:   end,
				Color: colorClass,
				Type:  TypeClass,
			})
		}
	}

	return events, nil
}

// combineDateTime joins "YYYY-MM-DD" and "HH:MM" into a local datetime.
func combineDateTime(date, clock string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+clock, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseDatePart extracts the calendar date from an ISO date or datetime
// string, discarding any time-of-day component.
func parseDatePart(value string) (time.Time, bool) {
	if len(value) > 10 {
		value = value[:10]
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncateToDay drops the time-of-day from the range start so day stepping
// is stable regardless of what instant the calendar reported.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
