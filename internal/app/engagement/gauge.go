// Package engagement implements the CheerLink heat engine.
// A stream of drum hits becomes a discrete heat level with asymmetric
// hysteresis: rises are instant, drops are debounced and re-sampled. The
// mission tracker and first-time bonus live here too.
package engagement

import (
	"sync"
	"time"

	"github.com/cheerlink/cheerlink/internal/app/session"
	"github.com/cheerlink/cheerlink/internal/domain"
)

// Tuning holds the window and hysteresis parameters. The defaults are the
// shipped behavior; the config file can override them.
type Tuning struct {
	Window         time.Duration
	LevelDownDelay time.Duration
	Thresholds     [4]int // window counts for levels 1–4, ascending
}

// DefaultTuning returns the shipped 30-second window with instant-up,
// 3-second-debounced-down hysteresis.
func DefaultTuning() Tuning {
	return Tuning{
		Window:         30 * time.Second,
		LevelDownDelay: 3 * time.Second,
		Thresholds:     [4]int{10, 15, 20, 25},
	}
}

// LevelForWindow derives the heat level from a window hit count.
// Thresholds are checked descending; the highest one met wins.
func LevelForWindow(windowHits int, thresholds [4]int) int {
	for lvl := 4; lvl >= 1; lvl-- {
		if windowHits >= thresholds[lvl-1] {
			return lvl
		}
	}
	return 0
}

// pruneFront drops log entries older than limit. Timestamps are ascending by
// construction, so a single pass from the front is enough.
func pruneFront(times []int64, limit int64) []int64 {
	i := 0
	for i < len(times) && times[i] < limit {
		i++
	}
	return times[i:]
}

// Service is the engagement state machine. The pending level-down check is an
// explicit two-state machine (idle / pending with a deadline) so the
// at-most-one-outstanding invariant is enforceable without real timers.
type Service struct {
	sess   *session.Session
	tuning Tuning

	trigger  *Trigger
	schedule func(d time.Duration, fn func())

	mu       sync.Mutex
	pending  bool
	deadline time.Time
}

// NewService creates the engagement engine for a session.
func NewService(sess *session.Session, tuning Tuning) *Service {
	return &Service{sess: sess, tuning: tuning}
}

// SetTrigger attaches the haptic feedback trigger fired on level raises.
func (s *Service) SetTrigger(t *Trigger) { s.trigger = t }

// SetScheduler attaches the shell's timer. When set, a newly scheduled
// level-down check arms fn after the configured delay. Tests leave it unset
// and drive ConfirmLevelDown with explicit times.
func (s *Service) SetScheduler(fn func(d time.Duration, cb func())) { s.schedule = fn }

// HitResult describes what one recorded hit did.
type HitResult struct {
	WindowHits    int                     `json:"window_hits"`
	Level         int                     `json:"level"`
	Raised        bool                    `json:"raised"`
	Feedback      *domain.FeedbackCommand `json:"feedback,omitempty"`
	DownScheduled bool                    `json:"down_scheduled"`
	DownCheckAt   time.Time               `json:"down_check_at,omitzero"`
}

// DownResult describes the outcome of a level-down confirmation.
type DownResult struct {
	Dropped    bool `json:"dropped"`
	Level      int  `json:"level"`
	WindowHits int  `json:"window_hits"`
}

// RecordHit appends a hit at now, recomputes the trailing window, and applies
// the hysteresis policy: a higher candidate level commits immediately and
// cancels any pending drop; an equal-or-lower candidate schedules a single
// level-down confirmation if none is outstanding. Level 0 has nowhere to
// drop to, so nothing is scheduled there.
func (s *Service) RecordHit(now time.Time) (*HitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res HitResult
	err := s.sess.Update(func(st *domain.RootState) error {
		d := &st.Daily
		d.TotalHits++
		d.HitTimes = append(d.HitTimes, now.UnixMilli())
		d.HitTimes = pruneFront(d.HitTimes, now.Add(-s.tuning.Window).UnixMilli())

		windowHits := len(d.HitTimes)
		candidate := LevelForWindow(windowHits, s.tuning.Thresholds)

		if candidate > d.Level {
			d.Level = candidate
			s.pending = false // a rise cancels the pending drop
			res.Raised = true
			cmd := raiseCommand(st.Settings.HapticStrength)
			res.Feedback = &cmd
		} else if d.Level > 0 && !s.pending {
			s.pending = true
			s.deadline = now.Add(s.tuning.LevelDownDelay)
			res.DownScheduled = true
			res.DownCheckAt = s.deadline
		}

		res.WindowHits = windowHits
		res.Level = d.Level
		refreshMissions(st, windowHits)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Raised && s.trigger != nil {
		s.trigger.Fire(*res.Feedback)
	}
	if res.DownScheduled && s.schedule != nil {
		s.schedule(s.tuning.LevelDownDelay, func() {
			_, _ = s.ConfirmLevelDown(time.Now())
		})
	}
	return &res, nil
}

// ConfirmLevelDown fires the pending level-down check. It re-samples the
// window at fire time — hits that arrived during the delay count — and
// commits the drop only if the true level is still strictly lower. A stale
// call (no pending check, or before the deadline) is a no-op.
func (s *Service) ConfirmLevelDown(now time.Time) (*DownResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res DownResult
	if !s.pending || now.Before(s.deadline) {
		s.sess.View(func(st *domain.RootState) { res.Level = st.Daily.Level })
		return &res, nil
	}
	s.pending = false

	err := s.sess.Update(func(st *domain.RootState) error {
		d := &st.Daily
		d.HitTimes = pruneFront(d.HitTimes, now.Add(-s.tuning.Window).UnixMilli())
		windowHits := len(d.HitTimes)
		trueLevel := LevelForWindow(windowHits, s.tuning.Thresholds)

		if trueLevel < d.Level {
			d.Level = trueLevel
			res.Dropped = true
		}
		res.Level = d.Level
		res.WindowHits = windowHits
		refreshMissions(st, windowHits)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DownCheckPending reports whether a level-down confirmation is outstanding.
func (s *Service) DownCheckPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// WindowCount returns the current window hit count without mutating the log.
func (s *Service) WindowCount(now time.Time) int {
	limit := now.Add(-s.tuning.Window).UnixMilli()
	n := 0
	s.sess.View(func(st *domain.RootState) {
		for _, ts := range st.Daily.HitTimes {
			if ts >= limit {
				n++
			}
		}
	})
	return n
}

// Tuning returns the active window and hysteresis parameters.
func (s *Service) Tuning() Tuning { return s.tuning }
