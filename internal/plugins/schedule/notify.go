package schedule

import (
	"sort"
	"time"

	"github.com/schedview/schedview/internal/planner"
)

// PlaceholderLine is shown when no task has an upcoming deadline.
const PlaceholderLine = "No pending tasks. You're all caught up!"

// UpcomingTasks builds the notification dropdown lines: tasks whose
// deadline is strictly in the future relative to now, soonest first. When
// nothing qualifies it returns the single placeholder line rather than an
// empty list, so the dropdown always has content.
func UpcomingTasks(snap *planner.Snapshot, now time.Time) []TaskLine {
	type pending struct {
		name     string
		deadline time.Time
	}

	var upcoming []pending
	if snap != nil {
		for _, t := range snap.Tasks {
			dl, ok := parseDeadline(t.Deadline)
			if !ok || !dl.After(now) {
				continue
			}
			upcoming = append(upcoming, pending{name: t.Name, deadline: dl})
		}
	}

	if len(upcoming) == 0 {
		return []TaskLine{{Title: PlaceholderLine}}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].deadline.Before(upcoming[j].deadline)
	})

	lines := make([]TaskLine, len(upcoming))
	for i, p := range upcoming {
		lines[i] = TaskLine{
			Title:    p.name,
			Deadline: p.deadline.Format(time.RFC3339),
		}
	}
	return lines
}

// parseDeadline accepts the backend's deadline shapes: a full ISO datetime,
// or a bare date which the backend treats as end-of-day.
func parseDeadline(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t.Add(23*time.Hour + 59*time.Minute + 59*time.Second), true
	}
	return time.Time{}, false
}
