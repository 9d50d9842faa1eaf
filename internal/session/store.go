package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store keeps sessions in a mutex-guarded map. Expiry is enforced lazily on
// access and proactively by a periodic sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*UserSession
	timeout  time.Duration
	logger   *slog.Logger

	now func() time.Time
}

func NewStore(timeout time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[int64]*UserSession),
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOrCreate returns the user's live session, silently replacing it with a
// fresh one if it has been idle longer than the timeout. Every access
// refreshes the idle clock.
func (st *Store) GetOrCreate(userID int64) *UserSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	s, ok := st.sessions[userID]
	if ok && now.Sub(s.LastActivityAt) > st.timeout {
		st.logger.Debug("session expired, starting fresh", "user_id", userID)
		ok = false
	}
	if !ok {
		s = newSession(userID, now)
		st.sessions[userID] = s
	}
	s.LastActivityAt = now
	return s
}

// SweepExpired drops every session idle longer than the timeout and returns
// how many were removed. Live sessions are never touched.
func (st *Store) SweepExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.LastActivityAt) > st.timeout {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of sessions currently held, expired or not.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Run sweeps expired sessions on the given interval until ctx is cancelled.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.SweepExpired(); n > 0 {
				st.logger.Info("swept expired sessions", "count", n)
			}
		}
	}
}
