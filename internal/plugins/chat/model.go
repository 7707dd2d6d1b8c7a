// Package chat relays the transcript between the browser and the planner
// backend's assistant. The NLP itself is entirely backend-owned; this
// plugin validates input, forwards it with the client's time anchor, and
// sanitizes the reply HTML before the transcript renders it.
package chat

// Reply is what the transcript renders after a message or settings save.
// Action and Options pass through untouched: the UI maps Action onto its
// modal state (show_priority_modal opens the priority picker, lock_ui
// freezes input) and renders Options as quick-reply buttons.
type Reply struct {
	Reply   string   `json:"reply"`
	Action  string   `json:"action,omitempty"`
	Options []string `json:"options,omitempty"`
}

// messageRequest is the JSON body of POST /api/chat.
type messageRequest struct {
	Message string `json:"message"`
	Year    string `json:"year"`
}

// personalizationRequest is the JSON body of POST /api/personalization.
type personalizationRequest struct {
	AwakeTime string `json:"awake_time"`
	SleepTime string `json:"sleep_time"`
}
