package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/schedview/schedview/internal/apperror"
	"github.com/schedview/schedview/internal/planner"
	"github.com/schedview/schedview/internal/sanitize"
)

// maxMessageLen caps a single chat message; the backend forwards messages
// to an LLM, so unbounded input is both a cost and an abuse problem.
const maxMessageLen = 2000

// PlannerGateway is the subset of the planner client this plugin depends on.
type PlannerGateway interface {
	Chat(ctx context.Context, message, year string, now time.Time) (*planner.ChatReply, error)
	SavePersonalization(ctx context.Context, prefs planner.Preferences, now time.Time) (*planner.ChatReply, error)
	DismissOnboarding(ctx context.Context) error
}

// ChatService defines the relay contract.
type ChatService interface {
	// Send relays one user message. Year is the UI's selected year hint;
	// empty defaults to the current year.
	Send(ctx context.Context, message, year string, now time.Time) (*Reply, error)

	// SavePersonalization stores wake/sleep preferences. The backend
	// replans immediately, so the response is reply-shaped.
	SavePersonalization(ctx context.Context, awake, sleep string, now time.Time) (*Reply, error)

	// DismissOnboarding acknowledges the onboarding banner.
	DismissOnboarding(ctx context.Context) error
}

type chatService struct {
	gw PlannerGateway
}

// NewService creates the chat relay service.
func NewService(gw PlannerGateway) ChatService {
	return &chatService{gw: gw}
}

func (s *chatService) Send(ctx context.Context, message, year string, now time.Time) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.NewBadRequest("message must not be empty")
	}
	if len(message) > maxMessageLen {
		return nil, apperror.NewBadRequest(
			fmt.Sprintf("message must be at most %d characters", maxMessageLen))
	}
	if year == "" {
		year = strconv.Itoa(now.Year())
	}

	reply, err := s.gw.Chat(ctx, message, year, now)
	if err != nil {
		return nil, err
	}
	return sanitized(reply), nil
}

func (s *chatService) SavePersonalization(ctx context.Context, awake, sleep string, now time.Time) (*Reply, error) {
	if !validClock(awake) || !validClock(sleep) {
		return nil, apperror.NewBadRequest("awake_time and sleep_time must be HH:MM")
	}

	reply, err := s.gw.SavePersonalization(ctx, planner.Preferences{
		AwakeTime: awake,
		SleepTime: sleep,
	}, now)
	if err != nil {
		return nil, err
	}
	return sanitized(reply), nil
}

func (s *chatService) DismissOnboarding(ctx context.Context) error {
	return s.gw.DismissOnboarding(ctx)
}

// sanitized strips dangerous HTML from the reply text while passing the
// action and options through untouched.
func sanitized(reply *planner.ChatReply) *Reply {
	return &Reply{
		Reply:   sanitize.HTML(reply.Reply),
		Action:  reply.Action,
		Options: reply.Options,
	}
}

// validClock reports whether value is a well-formed "HH:MM" 24h time.
func validClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}
