package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/schedview/schedview/internal/apperror"
	"github.com/schedview/schedview/internal/planner"
)

// --- Mock Planner Gateway ---

// mockGateway implements PlannerGateway for testing.
type mockGateway struct {
	getScheduleFn    func(ctx context.Context, now time.Time) (*planner.Snapshot, error)
	saveManualItemFn func(ctx context.Context, item planner.ManualItem, now time.Time) error
	deleteEventFn    func(ctx context.Context, ref planner.EventRef) error
	markEventDoneFn  func(ctx context.Context, ref planner.EventRef) error
}

func (m *mockGateway) GetSchedule(ctx context.Context, now time.Time) (*planner.Snapshot, error) {
	if m.getScheduleFn != nil {
		return m.getScheduleFn(ctx, now)
	}
	return &planner.Snapshot{}, nil
}

func (m *mockGateway) SaveManualItem(ctx context.Context, item planner.ManualItem, now time.Time) error {
	if m.saveManualItemFn != nil {
		return m.saveManualItemFn(ctx, item, now)
	}
	return nil
}

func (m *mockGateway) DeleteEvent(ctx context.Context, ref planner.EventRef) error {
	if m.deleteEventFn != nil {
		return m.deleteEventFn(ctx, ref)
	}
	return nil
}

func (m *mockGateway) MarkEventDone(ctx context.Context, ref planner.EventRef) error {
	if m.markEventDoneFn != nil {
		return m.markEventDoneFn(ctx, ref)
	}
	return nil
}

// --- Test Helpers ---

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

// --- WeekEvents ---

func TestWeekEvents_Success(t *testing.T) {
	gw := &mockGateway{
		getScheduleFn: func(ctx context.Context, now time.Time) (*planner.Snapshot, error) {
			return &planner.Snapshot{
				GeneratedPlan: []planner.PlanSession{
					{Task: "Work on Essay", Date: "2025-03-11", StartTime: "16:00", EndTime: "17:00"},
				},
			}, nil
		},
	}
	store := NewStore(nil, 0)
	svc := NewService(gw, store)

	events, err := svc.WeekEvents(context.Background(), monday, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Work on Essay" {
		t.Errorf("unexpected events: %+v", events)
	}

	if snap, rev := store.Snapshot(); snap == nil || rev != 1 {
		t.Errorf("fetch did not install the snapshot: rev=%d", rev)
	}
}

func TestWeekEvents_FetchFailureKeepsStore(t *testing.T) {
	calls := 0
	gw := &mockGateway{
		getScheduleFn: func(ctx context.Context, now time.Time) (*planner.Snapshot, error) {
			calls++
			if calls == 1 {
				return &planner.Snapshot{OnboardingComplete: true}, nil
			}
			return nil, apperror.NewUnavailable("planner backend unreachable", errors.New("dial refused"))
		},
	}
	store := NewStore(nil, 0)
	svc := NewService(gw, store)

	if _, err := svc.WeekEvents(context.Background(), monday, testNow); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	events, err := svc.WeekEvents(context.Background(), monday, testNow)
	assertAppError(t, err, 503)
	if len(events) != 0 {
		t.Errorf("failed fetch produced events: %+v", events)
	}

	snap, rev := store.Snapshot()
	if snap == nil || !snap.OnboardingComplete || rev != 1 {
		t.Error("failed fetch must leave the previous snapshot in place")
	}
}

func TestWeekEvents_SnapshotError(t *testing.T) {
	gw := &mockGateway{
		getScheduleFn: func(ctx context.Context, now time.Time) (*planner.Snapshot, error) {
			return nil, apperror.NewUpstream("User not found")
		},
	}
	svc := NewService(gw, NewStore(nil, 0))

	_, err := svc.WeekEvents(context.Background(), monday, testNow)
	assertAppError(t, err, 502)
}

// --- Window ---

func TestWindow_RevisionBumpsOnPrefsChange(t *testing.T) {
	prefs := planner.Preferences{AwakeTime: "07:00", SleepTime: "23:00"}
	gw := &mockGateway{
		getScheduleFn: func(ctx context.Context, now time.Time) (*planner.Snapshot, error) {
			return &planner.Snapshot{Preferences: prefs}, nil
		},
	}
	svc := NewService(gw, NewStore(nil, 0))

	if _, err := svc.WeekEvents(context.Background(), monday, testNow); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	w, rev := svc.Window()
	if w.MinTime != "06:00:00" || w.MaxTime != "24:00:00" {
		t.Errorf("window = %+v", w)
	}
	if rev != 1 {
		t.Errorf("first install revision = %d, want 1", rev)
	}

	// Same preferences again: no bump.
	if _, err := svc.WeekEvents(context.Background(), monday, testNow); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if _, rev = svc.Window(); rev != 1 {
		t.Errorf("unchanged preferences bumped revision to %d", rev)
	}

	// Changed preferences: bump and new window.
	prefs = planner.Preferences{AwakeTime: "09:00", SleepTime: "22:00"}
	if _, err := svc.WeekEvents(context.Background(), monday, testNow); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	w, rev = svc.Window()
	if rev != 2 {
		t.Errorf("changed preferences revision = %d, want 2", rev)
	}
	if w.MinTime != "08:00:00" || w.MaxTime != "23:00:00" {
		t.Errorf("window = %+v", w)
	}
}

func TestWindow_DefaultsBeforeFirstFetch(t *testing.T) {
	svc := NewService(&mockGateway{}, NewStore(nil, 0))

	w, rev := svc.Window()
	if w.MinTime != "06:00:00" || w.MaxTime != "24:00:00" {
		t.Errorf("empty store must yield the default window, got %+v", w)
	}
	if rev != 0 {
		t.Errorf("revision = %d, want 0", rev)
	}
}

// --- Notifications / State ---

func TestNotifications_FromStoredSnapshot(t *testing.T) {
	gw := &mockGateway{
		getScheduleFn: func(ctx context.Context, now time.Time) (*planner.Snapshot, error) {
			return &planner.Snapshot{
				Tasks: []planner.TaskEntry{{Name: "Essay", Deadline: "2025-03-12T17:00:00"}},
			}, nil
		},
	}
	svc := NewService(gw, NewStore(nil, 0))

	if lines := svc.Notifications(testNow); len(lines) != 1 || lines[0].Title != PlaceholderLine {
		t.Errorf("empty store must yield the placeholder, got %+v", lines)
	}

	if _, err := svc.WeekEvents(context.Background(), monday, testNow); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	lines := svc.Notifications(testNow)
	if len(lines) != 1 || lines[0].Title != "Essay" {
		t.Errorf("unexpected notifications: %+v", lines)
	}
}

func TestState(t *testing.T) {
	store := NewStore(nil, 0)
	svc := NewService(&mockGateway{}, store)

	if st := svc.State(); st.Loaded {
		t.Error("empty store reported loaded")
	}

	store.Replace(context.Background(), &planner.Snapshot{
		OnboardingComplete: true,
		SetupComplete:      false,
	})
	st := svc.State()
	if !st.Loaded || !st.OnboardingComplete || st.SetupComplete {
		t.Errorf("state = %+v", st)
	}
}

// --- Relayed Actions ---

func TestSaveItem_Validation(t *testing.T) {
	svc := NewService(&mockGateway{}, NewStore(nil, 0))

	err := svc.SaveItem(context.Background(), planner.ManualItem{Type: "task"}, testNow)
	assertAppError(t, err, 400)

	err = svc.SaveItem(context.Background(), planner.ManualItem{Name: "Essay"}, testNow)
	assertAppError(t, err, 400)
}

func TestSaveItem_Relays(t *testing.T) {
	var got planner.ManualItem
	gw := &mockGateway{
		saveManualItemFn: func(ctx context.Context, item planner.ManualItem, now time.Time) error {
			got = item
			return nil
		},
	}
	svc := NewService(gw, NewStore(nil, 0))

	item := planner.ManualItem{Name: "Essay", Type: "task", Deadline: "2025-03-12"}
	if err := svc.SaveItem(context.Background(), item, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != item {
		t.Errorf("relayed item = %+v, want %+v", got, item)
	}
}

func TestDeleteEvent_Validation(t *testing.T) {
	svc := NewService(&mockGateway{}, NewStore(nil, 0))

	err := svc.DeleteEvent(context.Background(), planner.EventRef{Type: TypeTask})
	assertAppError(t, err, 400)

	err = svc.DeleteEvent(context.Background(), planner.EventRef{Title: "DUE: Essay"})
	assertAppError(t, err, 400)
}

func TestMarkDone_OnlyPlanSessions(t *testing.T) {
	called := false
	gw := &mockGateway{
		markEventDoneFn: func(ctx context.Context, ref planner.EventRef) error {
			called = true
			return nil
		},
	}
	svc := NewService(gw, NewStore(nil, 0))

	err := svc.MarkDone(context.Background(), planner.EventRef{Title: "Math", Type: TypeClass})
	assertAppError(t, err, 400)
	if called {
		t.Error("non-plan event reached the gateway")
	}

	err = svc.MarkDone(context.Background(), planner.EventRef{
		Title: "Work on Essay", Start: "2025-03-11T16:00:00", Type: TypePlan,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("plan event did not reach the gateway")
	}
}
