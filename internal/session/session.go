// Package session holds short-lived per-user conversational state. Sessions
// live in memory only and self-destruct after a configured idle timeout; they
// are never written to disk.
package session

import (
	"slices"
	"time"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// DialogState tracks where a user is in the dish-analysis conversation.
type DialogState int

const (
	StateIdle DialogState = iota
	StateAwaitingConfirmation
	StateAwaitingWeight
	StateAwaitingCookingMethod
	StateAwaitingCorrection
)

// UserSession is one user's conversational state. Handlers mutate it as the
// dialog advances; the chat platform serializes messages per chat, so no
// per-session locking is needed.
type UserSession struct {
	UserID         int64
	CreatedAt      time.Time
	LastActivityAt time.Time

	State DialogState

	CurrentDish          string
	CurrentIngredients   []string
	CurrentWeight        int
	CurrentCookingMethod string
	Suggestions          []string

	LastEstimate *domain.NutrientEstimate

	shownFactTexts []string
	shownQuotes    []string
}

func newSession(userID int64, now time.Time) *UserSession {
	return &UserSession{
		UserID:         userID,
		CreatedAt:      now,
		LastActivityAt: now,
		State:          StateIdle,
	}
}

// ResetDishState clears the current analysis and returns the dialog to idle.
// Shown-fact history survives a reset: repeats stay suppressed for the
// session's whole lifetime.
func (s *UserSession) ResetDishState() {
	s.State = StateIdle
	s.CurrentDish = ""
	s.CurrentIngredients = nil
	s.CurrentWeight = 0
	s.CurrentCookingMethod = ""
	s.Suggestions = nil
	s.LastEstimate = nil
}

// AddShownFact records a fact text so it is excluded from later requests.
// The shown set only grows within a session's lifetime.
func (s *UserSession) AddShownFact(text string) {
	if !slices.Contains(s.shownFactTexts, text) {
		s.shownFactTexts = append(s.shownFactTexts, text)
	}
}

// ExcludeFacts returns a copy of the shown-fact texts.
func (s *UserSession) ExcludeFacts() []string {
	return slices.Clone(s.shownFactTexts)
}

// AddShownQuote records a served quote for the composition-advice flow.
func (s *UserSession) AddShownQuote(text string) {
	if !slices.Contains(s.shownQuotes, text) {
		s.shownQuotes = append(s.shownQuotes, text)
	}
}

// ExcludeQuotes returns a copy of the served quote texts.
func (s *UserSession) ExcludeQuotes() []string {
	return slices.Clone(s.shownQuotes)
}
