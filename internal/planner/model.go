// Package planner is the HTTP client for the planner backend. The backend
// owns users, persistence, chat/LLM handling, and plan generation; this
// package only marshals requests, unmarshals responses, and reports errors.
// Field names match the backend's JSON wire format exactly.
package planner

// Preferences are the user's wake/sleep times in "HH:MM" 24h format.
// Both fields are optional; the view applies defaults when absent.
type Preferences struct {
	AwakeTime string `json:"awake_time,omitempty"`
	SleepTime string `json:"sleep_time,omitempty"`
}

// ClassEntry is a weekly recurring class. Day is a weekday name
// ("Monday".."Sunday"); times are "HH:MM".
type ClassEntry struct {
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TaskEntry is an assignment/project with an optional ISO datetime deadline.
type TaskEntry struct {
	Name     string `json:"name"`
	TaskType string `json:"task_type,omitempty"`
	Deadline string `json:"deadline,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// TestEntry is a quiz or exam on a specific ISO date. The backend also
// normalizes Date into a Deadline ("<date>T23:59:59") for planning.
type TestEntry struct {
	Name     string `json:"name"`
	TestType string `json:"test_type,omitempty"`
	Date     string `json:"date"`
	Deadline string `json:"deadline,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// PlanSession is one concrete study block the backend planner generated.
// Date is "YYYY-MM-DD"; times are "HH:MM".
type PlanSession struct {
	Task      string `json:"task"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Completed bool   `json:"completed"`
}

// Snapshot is the full state payload returned by /get_schedule. It is the
// sole input to the view: the view never mutates it, and every UI-triggered
// change is observed only through a re-fetch.
type Snapshot struct {
	Preferences        Preferences   `json:"preferences"`
	Schedule           []ClassEntry  `json:"schedule"`
	Tasks              []TaskEntry   `json:"tasks"`
	Tests              []TestEntry   `json:"tests"`
	GeneratedPlan      []PlanSession `json:"generated_plan"`
	OnboardingComplete bool          `json:"onboarding_complete"`
	SetupComplete      bool          `json:"setup_complete"`

	// Error is set on failure payloads ("Not logged in", "User not found").
	// A snapshot carrying it must never be rendered.
	Error string `json:"error,omitempty"`
}

// UI actions the backend can request alongside a chat reply.
const (
	ActionShowPriorityModal = "show_priority_modal"
	ActionLockUI            = "lock_ui"
)

// ChatReply is the response shape of /chat and /save_personalization.
type ChatReply struct {
	Reply   string   `json:"reply"`
	Action  string   `json:"action,omitempty"`
	Options []string `json:"options,omitempty"`
}

// ManualItem is the body of /api/manual_save_item, used by the manual-add
// form as an escape hatch from the chat flow.
type ManualItem struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
}

// EventRef identifies a rendered calendar event for delete/mark-done
// actions. The backend resolves it back to the underlying record.
type EventRef struct {
	Title string `json:"title"`
	Start string `json:"start"`
	Type  string `json:"type"`
}

// actionResult is the response shape of the item action endpoints.
type actionResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// errorBody is the generic error payload the backend returns on non-2xx.
type errorBody struct {
	Error string `json:"error"`
	Reply string `json:"reply"`
}

// message returns whichever user-facing text the backend provided.
func (e *errorBody) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Reply
}
