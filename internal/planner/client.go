package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/schedview/schedview/internal/apperror"
	"github.com/schedview/schedview/internal/config"
)

// Client is the typed HTTP client for the planner backend. Every request
// carries a client_timestamp (ISO-8601 of the caller's "now") which the
// backend uses as its time anchor; it is an opaque required field here.
//
// The underlying transport timeout comes from config, so callers waiting on
// a stalled backend always resolve eventually.
type Client struct {
	http *resty.Client
}

// NewClient creates a planner client for the given backend config.
func NewClient(cfg config.PlannerConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout),
	}
}

// GetSchedule fetches the full state snapshot. A transport failure or an
// error-carrying payload both return a non-nil error and no snapshot, so
// callers never see partial state.
func (c *Client) GetSchedule(ctx context.Context, now time.Time) (*Snapshot, error) {
	var snap Snapshot
	var errBody errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("client_timestamp", now.Format(time.RFC3339)).
		SetResult(&snap).
		SetError(&errBody).
		Get("/get_schedule")
	if err != nil {
		return nil, apperror.NewUnavailable("the planner backend is unreachable", err)
	}
	if resp.IsError() {
		return nil, apperror.NewUpstream(backendMessage(&errBody, resp.StatusCode()))
	}
	if snap.Error != "" {
		return nil, apperror.NewUpstream(snap.Error)
	}

	return &snap, nil
}

// Chat relays one user message to the backend assistant. Year is the UI's
// selected year hint for resolving bare dates.
func (c *Client) Chat(ctx context.Context, message, year string, now time.Time) (*ChatReply, error) {
	body := map[string]string{
		"message":          message,
		"year":             year,
		"client_timestamp": now.Format(time.RFC3339),
	}
	return c.postForReply(ctx, "/chat", body)
}

// SavePersonalization stores wake/sleep preferences and triggers a replan.
func (c *Client) SavePersonalization(ctx context.Context, prefs Preferences, now time.Time) (*ChatReply, error) {
	body := map[string]any{
		"preferences":      prefs,
		"client_timestamp": now.Format(time.RFC3339),
	}
	return c.postForReply(ctx, "/save_personalization", body)
}

// DismissOnboarding acknowledges the onboarding banner. Side effect only.
func (c *Client) DismissOnboarding(ctx context.Context) error {
	var errBody errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&errBody).
		Post("/onboarding_dismiss")
	if err != nil {
		return apperror.NewUnavailable("the planner backend is unreachable", err)
	}
	if resp.IsError() {
		return apperror.NewUpstream(backendMessage(&errBody, resp.StatusCode()))
	}
	return nil
}

// SaveManualItem creates a task or test through the manual-add form path.
func (c *Client) SaveManualItem(ctx context.Context, item ManualItem, now time.Time) error {
	body := map[string]string{
		"name":             item.Name,
		"type":             item.Type,
		"deadline":         item.Deadline,
		"priority":         item.Priority,
		"client_timestamp": now.Format(time.RFC3339),
	}
	return c.postAction(ctx, "/api/manual_save_item", body)
}

// DeleteEvent removes the record behind a rendered calendar event.
func (c *Client) DeleteEvent(ctx context.Context, ref EventRef) error {
	return c.postAction(ctx, "/api/delete_event", ref)
}

// MarkEventDone flags the record behind a plan session as completed.
func (c *Client) MarkEventDone(ctx context.Context, ref EventRef) error {
	return c.postAction(ctx, "/api/mark_event_done", ref)
}

// postForReply POSTs a JSON body and decodes a reply-shaped response.
func (c *Client) postForReply(ctx context.Context, path string, body any) (*ChatReply, error) {
	var reply ChatReply
	var errBody errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&reply).
		SetError(&errBody).
		Post(path)
	if err != nil {
		return nil, apperror.NewUnavailable("the planner backend is unreachable", err)
	}
	if resp.IsError() {
		return nil, apperror.NewUpstream(backendMessage(&errBody, resp.StatusCode()))
	}

	return &reply, nil
}

// postAction POSTs a JSON body to an action endpoint and interprets the
// {status}/{error} result shape.
func (c *Client) postAction(ctx context.Context, path string, body any) error {
	var result actionResult
	var errBody errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&errBody).
		Post(path)
	if err != nil {
		return apperror.NewUnavailable("the planner backend is unreachable", err)
	}
	if resp.IsError() {
		return apperror.NewUpstream(backendMessage(&errBody, resp.StatusCode()))
	}
	if result.Error != "" {
		return apperror.NewUpstream(result.Error)
	}
	return nil
}

// backendMessage extracts the backend's user-facing message from an error
// body, falling back to the HTTP status.
func backendMessage(body *errorBody, status int) string {
	if msg := body.message(); msg != "" {
		return msg
	}
	return fmt.Sprintf("planner backend returned HTTP %d", status)
}
