package schedule

import (
	"fmt"

	"github.com/schedview/schedview/internal/planner"
)

// Defaults applied when a preference is absent or unparseable.
const (
	defaultAwakeTime = "07:00"
	defaultSleepTime = "23:00"
)

// ComputeViewWindow derives the calendar's visible vertical range from the
// user's wake/sleep preferences: one hour of margin on each side, wrapped
// modulo 24h. Pure function; the caller reinitializes the calendar whenever
// stored preferences change between fetches.
//
// Special case: sleeping at exactly 23:00 wraps the margin to hour 00, which
// would collapse the grid to midnight of the same day. The "24:00:00"
// sentinel extends it to end-of-day instead.
func ComputeViewWindow(prefs planner.Preferences) ViewWindow {
	// Absent or malformed preferences collapse to the defaults before any
	// arithmetic, so the sentinel check below sees the effective value.
	awake := prefs.AwakeTime
	if _, _, ok := parseClock(awake); !ok {
		awake = defaultAwakeTime
	}
	sleep := prefs.SleepTime
	if _, _, ok := parseClock(sleep); !ok {
		sleep = defaultSleepTime
	}

	awakeH, awakeM, _ := parseClock(awake)
	sleepH, sleepM, _ := parseClock(sleep)

	minH := (awakeH + 23) % 24
	maxH := (sleepH + 1) % 24

	w := ViewWindow{
		MinTime: fmt.Sprintf("%02d:%02d:00", minH, awakeM),
		MaxTime: fmt.Sprintf("%02d:%02d:00", maxH, sleepM),
	}
	if maxH == 0 && sleep == defaultSleepTime {
		w.MaxTime = "24:00:00"
	}
	return w
}

// parseClock parses "HH:MM" into hour and minute.
func parseClock(value string) (hour, minute int, ok bool) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
