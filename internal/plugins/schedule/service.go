package schedule

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/schedview/schedview/internal/apperror"
	"github.com/schedview/schedview/internal/planner"
)

// PlannerGateway is the subset of the planner client this plugin depends
// on. Defined here so tests can substitute a mock.
type PlannerGateway interface {
	GetSchedule(ctx context.Context, now time.Time) (*planner.Snapshot, error)
	SaveManualItem(ctx context.Context, item planner.ManualItem, now time.Time) error
	DeleteEvent(ctx context.Context, ref planner.EventRef) error
	MarkEventDone(ctx context.Context, ref planner.EventRef) error
}

// ScheduleService defines the business logic contract for the calendar
// view. Handlers call these methods and never touch the planner client
// or the store directly.
type ScheduleService interface {
	// WeekEvents re-fetches the snapshot and maps it onto the 7-day window
	// starting at rangeStart. On failure no events are produced and the
	// previously stored snapshot is left in place, so everything already
	// rendered stays rendered.
	WeekEvents(ctx context.Context, rangeStart, now time.Time) ([]Event, error)

	// Window returns the visible time range for the current preferences,
	// plus a revision that changes only when preferences change. The UI
	// reinitializes the calendar when it observes a new revision.
	Window() (ViewWindow, uint64)

	// Notifications builds the upcoming-task lines from the stored snapshot.
	Notifications(now time.Time) []TaskLine

	// State reports the flags driving the onboarding banner and setup modal.
	State() ViewState

	SaveItem(ctx context.Context, item planner.ManualItem, now time.Time) error
	DeleteEvent(ctx context.Context, ref planner.EventRef) error
	MarkDone(ctx context.Context, ref planner.EventRef) error
}

// ViewState is the /api/state payload.
type ViewState struct {
	Loaded             bool `json:"loaded"`
	OnboardingComplete bool `json:"onboarding_complete"`
	SetupComplete      bool `json:"setup_complete"`
}

// scheduleService implements ScheduleService on top of the planner gateway
// and the snapshot store.
type scheduleService struct {
	gw    PlannerGateway
	store *Store

	// windowRev increments only when a replace changed preferences.
	windowRev atomic.Uint64
}

// NewService creates the schedule service.
func NewService(gw PlannerGateway, store *Store) ScheduleService {
	return &scheduleService{gw: gw, store: store}
}

func (s *scheduleService) WeekEvents(ctx context.Context, rangeStart, now time.Time) ([]Event, error) {
	snap, err := s.gw.GetSchedule(ctx, now)
	if err != nil {
		// The store keeps its previous value: a failed fetch never
		// partially updates, and the calendar keeps what it last drew.
		slog.Error("snapshot fetch failed", slog.Any("error", err))
		return nil, err
	}

	// Whichever fetch completes last wins, regardless of issue order.
	if _, prefsChanged := s.store.Replace(ctx, snap); prefsChanged {
		rev := s.windowRev.Add(1)
		slog.Info("preferences changed, view window invalidated",
			slog.Uint64("window_revision", rev))
	}

	return MapEvents(snap, rangeStart)
}

func (s *scheduleService) Window() (ViewWindow, uint64) {
	var prefs planner.Preferences
	if snap, _ := s.store.Snapshot(); snap != nil {
		prefs = snap.Preferences
	}
	return ComputeViewWindow(prefs), s.windowRev.Load()
}

func (s *scheduleService) Notifications(now time.Time) []TaskLine {
	snap, _ := s.store.Snapshot()
	return UpcomingTasks(snap, now)
}

func (s *scheduleService) State() ViewState {
	snap, _ := s.store.Snapshot()
	if snap == nil {
		return ViewState{}
	}
	return ViewState{
		Loaded:             true,
		OnboardingComplete: snap.OnboardingComplete,
		SetupComplete:      snap.SetupComplete,
	}
}

func (s *scheduleService) SaveItem(ctx context.Context, item planner.ManualItem, now time.Time) error {
	if strings.TrimSpace(item.Name) == "" {
		return apperror.NewBadRequest("item name is required")
	}
	if strings.TrimSpace(item.Type) == "" {
		return apperror.NewBadRequest("item type is required")
	}
	return s.gw.SaveManualItem(ctx, item, now)
}

func (s *scheduleService) DeleteEvent(ctx context.Context, ref planner.EventRef) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	return s.gw.DeleteEvent(ctx, ref)
}

func (s *scheduleService) MarkDone(ctx context.Context, ref planner.EventRef) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	if ref.Type != TypePlan {
		return apperror.NewBadRequest("only plan sessions can be marked done")
	}
	return s.gw.MarkEventDone(ctx, ref)
}

// validateRef checks the fields the backend needs to resolve an event back
// to its record.
func validateRef(ref planner.EventRef) error {
	if strings.TrimSpace(ref.Title) == "" {
		return apperror.NewBadRequest("event title is required")
	}
	if strings.TrimSpace(ref.Type) == "" {
		return apperror.NewBadRequest("event type is required")
	}
	return nil
}
