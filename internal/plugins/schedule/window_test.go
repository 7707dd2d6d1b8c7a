package schedule

import (
	"testing"

	"github.com/schedview/schedview/internal/planner"
)

func TestComputeViewWindow(t *testing.T) {
	tests := []struct {
		name    string
		prefs   planner.Preferences
		wantMin string
		wantMax string
	}{
		{
			name:    "standard day",
			prefs:   planner.Preferences{AwakeTime: "07:00", SleepTime: "23:00"},
			wantMin: "06:00:00",
			wantMax: "24:00:00",
		},
		{
			name:    "awake at midnight wraps min backwards",
			prefs:   planner.Preferences{AwakeTime: "00:00", SleepTime: "23:00"},
			wantMin: "23:00:00",
			wantMax: "24:00:00",
		},
		{
			name:    "early sleeper",
			prefs:   planner.Preferences{AwakeTime: "09:00", SleepTime: "22:00"},
			wantMin: "08:00:00",
			wantMax: "23:00:00",
		},
		{
			name:    "defaults when preferences absent",
			prefs:   planner.Preferences{},
			wantMin: "06:00:00",
			wantMax: "24:00:00",
		},
		{
			name:    "sentinel only applies to 23:00 exactly",
			prefs:   planner.Preferences{AwakeTime: "07:00", SleepTime: "23:30"},
			wantMin: "06:00:00",
			wantMax: "00:30:00",
		},
		{
			name:    "minutes preserved",
			prefs:   planner.Preferences{AwakeTime: "07:45", SleepTime: "21:15"},
			wantMin: "06:45:00",
			wantMax: "22:15:00",
		},
		{
			name:    "malformed times fall back to defaults",
			prefs:   planner.Preferences{AwakeTime: "sevenish", SleepTime: "25:99"},
			wantMin: "06:00:00",
			wantMax: "24:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeViewWindow(tt.prefs)
			if got.MinTime != tt.wantMin {
				t.Errorf("MinTime = %q, want %q", got.MinTime, tt.wantMin)
			}
			if got.MaxTime != tt.wantMax {
				t.Errorf("MaxTime = %q, want %q", got.MaxTime, tt.wantMax)
			}
		})
	}
}

func TestComputeViewWindow_Pure(t *testing.T) {
	prefs := planner.Preferences{AwakeTime: "08:00", SleepTime: "22:00"}
	first := ComputeViewWindow(prefs)
	second := ComputeViewWindow(prefs)
	if first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}
