// Package schedule derives the calendar presentation from planner snapshots:
// the normalized event list, the visible time window, and the upcoming-task
// notification list. All substantive decisions (plan generation, conflict
// detection, deadline math) happen in the planner backend; this package is
// pure derivation plus the snapshot store feeding it.
package schedule

import (
	"encoding/json"
	"time"
)

// Event type tags. The UI uses them to pick per-category rendering and to
// build EventRefs for delete/mark-done actions.
const (
	TypePlan  = "plan"
	TypeTask  = "task"
	TypeTest  = "test"
	TypeClass = "class"
)

// Presentation colors. Only the pending/done pair for plan sessions is
// contractual; the rest are cosmetic defaults.
const (
	colorPending = "#3f51b5"
	colorDone    = "#8bc34a"
	colorTask    = "#e53935"
	colorTest    = "#fb8c00"
	colorClass   = "#546e7a"
)

// Event is one normalized calendar entry. All-day events carry a date-only
// Start and no End; timed events carry local datetimes.
type Event struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
	Color  string
	Type   string
	IsDone bool
}

// eventJSON is the wire shape the calendar consumes.
type eventJSON struct {
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	AllDay bool   `json:"allDay"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type"`
	IsDone bool   `json:"isDone"`
}

// MarshalJSON formats all-day events as bare dates (occupying a full date
// cell) and timed events as local datetimes without a zone designator; the
// calendar interprets them in the browser's zone, matching how the backend
// stores them.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		Title:  e.Title,
		AllDay: e.AllDay,
		Color:  e.Color,
		Type:   e.Type,
		IsDone: e.IsDone,
	}
	if e.AllDay {
		out.Start = e.Start.Format("2006-01-02")
	} else {
		out.Start = e.Start.Format("2006-01-02T15:04:05")
		if !e.End.IsZero() {
			out.End = e.End.Format("2006-01-02T15:04:05")
		}
	}
	return json.Marshal(out)
}

// ViewWindow is the visible vertical range of the day-grid calendar.
// Times are "HH:MM:SS"; MaxTime may be the end-of-day sentinel "24:00:00".
type ViewWindow struct {
	MinTime string `json:"minTime"`
	MaxTime string `json:"maxTime"`
}

// TaskLine is one row of the notification bell dropdown. Deadline is empty
// on the placeholder line shown when nothing is pending; its exact display
// formatting is up to the UI.
type TaskLine struct {
	Title    string `json:"title"`
	Deadline string `json:"deadline,omitempty"`
}

// weekdayNames maps the backend's weekday-name strings (lowercased) to Go's
// time.Weekday, which already counts 0=Sunday..6=Saturday.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}
