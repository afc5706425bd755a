// Package session owns the CheerLink state aggregate for one running play
// session. It loads persisted state with a default fallback, applies the
// daily reset, and saves synchronously after every mutation.
package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cheerlink/cheerlink/internal/domain"
)

// Default settings for a brand-new state.
const (
	defaultSensitivity    = 50
	defaultHapticStrength = 60
)

// Session is the explicit state owner. All mutations go through Update, which
// serializes them and persists the new aggregate before returning. There is
// no finer-grained locking: the core is event-driven and every operation is a
// short, terminating computation.
type Session struct {
	mu     sync.Mutex
	store  domain.StateStore
	state  *domain.RootState
	paused bool
}

// Open loads the persisted state (or the default state when absent or
// unreadable), replaces DailyProgress if the stored date key is not today,
// applies the one-time equip fallback, and persists the result.
func Open(store domain.StateStore, now time.Time) (*Session, error) {
	st, found, err := store.LoadRoot()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !found {
		st = DefaultState(now)
	}
	normalize(st)

	if st.Daily.DateKey != domain.DateKey(now) {
		st.Daily = freshDaily(now)
	}

	// Equip fallback runs once at load, not on every read.
	if st.EquippedItemID == "" && len(st.Inventory) > 0 {
		st.EquippedItemID = st.Inventory[0].ItemID
	}

	s := &Session{store: store, state: st}
	if err := store.SaveRoot(st); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return s, nil
}

// DefaultState is the fully-specified fresh aggregate.
func DefaultState(now time.Time) *domain.RootState {
	return &domain.RootState{
		Tickets:     0,
		GlitterDust: 0,
		Inventory:   []domain.OwnedItem{},
		Wishlist:    []string{},
		Settings: domain.Settings{
			Sensitivity:    defaultSensitivity,
			HapticStrength: defaultHapticStrength,
		},
		Daily: freshDaily(now),
	}
}

// BuildDailyMissions returns the day's mission set, all unachieved.
func BuildDailyMissions() []domain.Mission {
	return []domain.Mission{
		{ID: "m_window_10", Title: "Beat 10 in 30 seconds", Desc: "10 or more hits in the last 30 seconds", Reward: 2},
		{ID: "m_total_50", Title: "Drum 50 times", Desc: "50 total hits today", Reward: 1},
		{ID: "m_level_3", Title: "Reach heat Lv3", Desc: "Heat level 3 or higher", Reward: 2},
	}
}

func freshDaily(now time.Time) domain.DailyProgress {
	return domain.DailyProgress{
		DateKey:  domain.DateKey(now),
		HitTimes: []int64{},
		Missions: BuildDailyMissions(),
	}
}

// normalize repairs partially-missing stored fields so the rest of the code
// never sees nil slices or an absent mission set.
func normalize(st *domain.RootState) {
	if st.Inventory == nil {
		st.Inventory = []domain.OwnedItem{}
	}
	if st.Wishlist == nil {
		st.Wishlist = []string{}
	}
	if st.Daily.HitTimes == nil {
		st.Daily.HitTimes = []int64{}
	}
	if len(st.Daily.Missions) == 0 {
		st.Daily.Missions = BuildDailyMissions()
	}
	if st.Settings == (domain.Settings{}) {
		st.Settings = domain.Settings{
			Sensitivity:    defaultSensitivity,
			HapticStrength: defaultHapticStrength,
		}
	}
}

// Update runs fn against the live state and persists the result. When fn
// returns an error the state is assumed untouched and nothing is saved —
// operations check their preconditions before mutating.
func (s *Session) Update(fn func(st *domain.RootState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		return err
	}
	if err := s.store.SaveRoot(s.state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// View runs fn with read access to the live state.
func (s *Session) View(fn func(st *domain.RootState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Snapshot returns a deep copy of the current aggregate.
func (s *Session) Snapshot() domain.RootState {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, _ := json.Marshal(s.state)
	var out domain.RootState
	_ = json.Unmarshal(raw, &out)
	return out
}

// SetPaused gates hit processing. Pause is caller policy: the engagement
// machine itself never checks it.
func (s *Session) SetPaused(p bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = p
}

// Paused reports whether hit processing is gated.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}
