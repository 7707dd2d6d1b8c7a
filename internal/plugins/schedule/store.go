package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schedview/schedview/internal/planner"
)

// snapshotKey is the Redis key for the mirrored snapshot.
const snapshotKey = "schedview:snapshot"

// Store holds the latest planner snapshot. It is replaced wholesale on each
// successful fetch and never field-updated; readers always see the current
// value. Overlapping fetches resolve last-completed-wins: whichever response
// reaches Replace later overwrites, regardless of request issue order. The
// revision counter only lets readers notice that a replacement happened.
//
// Replacements are mirrored to Redis with a TTL so a restarted server can
// serve the last known state before its first backend round-trip. The
// mirror is advisory: write failures are logged, never propagated, and a
// fresh fetch always overwrites a restored snapshot.
type Store struct {
	mu       sync.RWMutex
	snap     *planner.Snapshot
	revision uint64

	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a snapshot store. rdb may be nil to disable mirroring.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Replace installs a newly completed snapshot and mirrors it. It reports
// the new revision and whether preferences changed relative to the previous
// snapshot (true on the first install, since the calendar must initialize).
// The caller recomputes the view window and reinitializes the calendar when
// prefsChanged is true.
func (s *Store) Replace(ctx context.Context, snap *planner.Snapshot) (revision uint64, prefsChanged bool) {
	s.mu.Lock()
	prefsChanged = s.snap == nil || s.snap.Preferences != snap.Preferences
	s.snap = snap
	s.revision++
	revision = s.revision
	s.mu.Unlock()

	s.mirror(ctx, snap)
	return revision, prefsChanged
}

// Snapshot returns the current snapshot and its revision. The snapshot is
// nil until the first Replace or Restore. Callers must treat it as
// immutable.
func (s *Store) Snapshot() (*planner.Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.revision
}

// Restore loads the mirrored snapshot from Redis into an empty store.
// A missing key is not an error; a store that already holds a snapshot is
// left untouched.
func (s *Store) Restore(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}

	data, err := s.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading snapshot mirror: %w", err)
	}

	var snap planner.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot mirror: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil {
		return nil
	}
	s.snap = &snap
	s.revision++
	return nil
}

// mirror writes the snapshot to Redis. Failures are logged only.
func (s *Store) mirror(ctx context.Context, snap *planner.Snapshot) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		slog.Warn("failed to encode snapshot mirror", slog.Any("error", err))
		return
	}
	if err := s.rdb.Set(ctx, snapshotKey, data, s.ttl).Err(); err != nil {
		slog.Warn("failed to write snapshot mirror", slog.Any("error", err))
	}
}
