package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/showmyfood/internal/domain"
)

func testStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(30*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	st.now = func() time.Time { return now }
	return st, &now
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	st, _ := testStore(t)

	a := st.GetOrCreate(42)
	b := st.GetOrCreate(42)

	assert.Same(t, a, b)
	assert.Equal(t, 1, st.Len())
}

func TestGetOrCreateSeparatesUsers(t *testing.T) {
	st, _ := testStore(t)

	a := st.GetOrCreate(1)
	a.CurrentDish = "борщ"
	b := st.GetOrCreate(2)

	assert.Empty(t, b.CurrentDish)
	assert.Equal(t, 2, st.Len())
}

func TestSessionSurvivesWithinTimeout(t *testing.T) {
	st, now := testStore(t)

	s := st.GetOrCreate(42)
	s.CurrentDish = "паста карбонара"
	s.State = StateAwaitingWeight

	*now = now.Add(29 * time.Minute)
	again := st.GetOrCreate(42)

	require.Same(t, s, again)
	assert.Equal(t, "паста карбонара", again.CurrentDish)
	assert.Equal(t, StateAwaitingWeight, again.State)
}

func TestSessionReplacedAfterTimeout(t *testing.T) {
	st, now := testStore(t)

	s := st.GetOrCreate(42)
	s.CurrentDish = "паста карбонара"

	// 29 minutes in: still alive, and the access refreshes the idle clock.
	*now = now.Add(29 * time.Minute)
	st.GetOrCreate(42)

	// 31 more minutes of silence: the session is silently replaced.
	*now = now.Add(31 * time.Minute)
	fresh := st.GetOrCreate(42)

	assert.NotSame(t, s, fresh)
	assert.Empty(t, fresh.CurrentDish)
	assert.Equal(t, StateIdle, fresh.State)
}

func TestSweepExpired(t *testing.T) {
	st, now := testStore(t)

	st.GetOrCreate(1)
	*now = now.Add(20 * time.Minute)
	st.GetOrCreate(2)
	*now = now.Add(15 * time.Minute)

	removed := st.SweepExpired()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, st.Len())
	assert.Zero(t, st.SweepExpired())
}

func TestResetDishStateKeepsShownFacts(t *testing.T) {
	st, _ := testStore(t)

	s := st.GetOrCreate(42)
	s.CurrentDish = "борщ"
	s.CurrentWeight = 300
	s.CurrentCookingMethod = "варка"
	s.LastEstimate = &domain.NutrientEstimate{DishName: "борщ"}
	s.State = StateAwaitingCookingMethod
	s.AddShownFact("борщ известен с XVI века")

	s.ResetDishState()

	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.CurrentDish)
	assert.Zero(t, s.CurrentWeight)
	assert.Nil(t, s.LastEstimate)
	assert.Equal(t, []string{"борщ известен с XVI века"}, s.ExcludeFacts())
}

func TestShownFactsDeduplicated(t *testing.T) {
	st, _ := testStore(t)

	s := st.GetOrCreate(42)
	s.AddShownFact("факт")
	s.AddShownFact("факт")
	s.AddShownFact("другой факт")

	assert.Len(t, s.ExcludeFacts(), 2)
}

func TestExcludeFactsReturnsCopy(t *testing.T) {
	st, _ := testStore(t)

	s := st.GetOrCreate(42)
	s.AddShownFact("факт")

	got := s.ExcludeFacts()
	got[0] = "mutated"

	assert.Equal(t, []string{"факт"}, s.ExcludeFacts())
}
