package api

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cheerlink/cheerlink/internal/app/engagement"
	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/health"
	"github.com/cheerlink/cheerlink/internal/infra/catalog"
	"github.com/cheerlink/cheerlink/internal/infra/metrics"
)

// maxHitsPerRequest caps one shell batch; anything above is a misbehaving
// sensor and gets clamped rather than rejected.
const maxHitsPerRequest = 50

// statusForError maps domain sentinels to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissionNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissionNotAchieved),
		errors.Is(err, domain.ErrMissionClaimed),
		errors.Is(err, domain.ErrBonusClaimed),
		errors.Is(err, domain.ErrNoTickets),
		errors.Is(err, domain.ErrNotEnoughDust),
		errors.Is(err, domain.ErrItemNotOwned),
		errors.Is(err, domain.ErrPaletteExhausted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ─── Engagement ─────────────────────────────────────────────────────────────

type hitsRequest struct {
	Count int `json:"count"`
}

// handleHits ingests a batch of drum hits from the shell. Malformed input and
// paused sessions are dropped silently: the sensor stream is noisy and a
// rejected hit must never disturb the toy.
func (s *Server) handleHits(w http.ResponseWriter, r *http.Request) {
	var req hitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Count < 1 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if s.sess.Paused() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if req.Count > maxHitsPerRequest {
		req.Count = maxHitsPerRequest
	}

	var last *engagement.HitResult
	for i := 0; i < req.Count; i++ {
		res, err := s.engine.RecordHit(time.Now())
		if err != nil {
			log.Printf("[api] record hit: %v", err)
			writeError(w, http.StatusInternalServerError, "hit recording failed")
			return
		}
		last = res
	}

	metrics.HitsTotal.Add(float64(req.Count))
	metrics.HeatLevel.Set(float64(last.Level))
	metrics.WindowHits.Set(float64(last.WindowHits))
	writeJSON(w, http.StatusOK, last)
}

// handleHitsRaw ingests the toy's raw notification payload: a 4-byte
// little-endian cumulative hit counter. The delta against the last seen
// counter becomes the hit batch; the first notification only seeds the
// baseline. Anything unparseable is dropped silently.
func (s *Server) handleHitsRaw(w http.ResponseWriter, r *http.Request) {
	payload := make([]byte, 5)
	n, _ := io.ReadFull(r.Body, payload)
	if n != 4 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	counter := binary.LittleEndian.Uint32(payload[:4])

	s.counterMu.Lock()
	delta := 0
	if s.counterSeen && counter > s.lastCounter {
		delta = int(counter - s.lastCounter)
	}
	s.lastCounter = counter
	s.counterSeen = true
	s.counterMu.Unlock()

	if delta == 0 || s.sess.Paused() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if delta > maxHitsPerRequest {
		delta = maxHitsPerRequest
	}

	var last *engagement.HitResult
	for i := 0; i < delta; i++ {
		res, err := s.engine.RecordHit(time.Now())
		if err != nil {
			log.Printf("[api] record hit: %v", err)
			writeError(w, http.StatusInternalServerError, "hit recording failed")
			return
		}
		last = res
	}

	metrics.HitsTotal.Add(float64(delta))
	metrics.HeatLevel.Set(float64(last.Level))
	metrics.WindowHits.Set(float64(last.WindowHits))
	writeJSON(w, http.StatusOK, last)
}

// handleState returns the full companion-app view: the persisted aggregate
// plus the derived window count and pause flag.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.sess.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":       st,
		"window_hits": s.engine.WindowCount(time.Now()),
		"paused":      s.sess.Paused(),
	})
}

// handleCatalog returns the static charm catalog.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": catalog.Items,
	})
}

// ─── Missions ───────────────────────────────────────────────────────────────

func (s *Server) handleClaimMission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reward, err := s.engine.ClaimMission(id)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	metrics.MissionsClaimedTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mission_id": id,
		"reward":     reward,
		"tickets":    s.sess.Snapshot().Tickets,
	})
}

func (s *Server) handleClaimBonus(w http.ResponseWriter, r *http.Request) {
	bonus, err := s.engine.ClaimFirstBonus()
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bonus":   bonus,
		"tickets": s.sess.Snapshot().Tickets,
	})
}

// ─── Gacha ──────────────────────────────────────────────────────────────────

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	out, err := s.gacha.DrawOnce(time.Now())
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	metrics.DrawsTotal.WithLabelValues(string(out.Item.Rarity)).Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDrawHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	recs, err := s.gacha.DrawHistory(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recs == nil {
		recs = []domain.DrawRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"draws": recs,
	})
}

// ─── Collection ─────────────────────────────────────────────────────────────

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.gacha.Equip(itemID); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"equipped_item_id": itemID,
	})
}

func (s *Server) handleUnlockColor(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	color, err := s.gacha.UnlockColor(itemID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item_id":      itemID,
		"color":        color,
		"glitter_dust": s.sess.Snapshot().GlitterDust,
	})
}

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	wished, err := s.gacha.ToggleWishlist(itemID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item_id":    itemID,
		"wishlisted": wished,
	})
}

// ─── Settings and Session ───────────────────────────────────────────────────

type settingsRequest struct {
	Sensitivity    *int `json:"sensitivity"`
	HapticStrength *int `json:"haptic_strength"`
}

// handleSettings updates the user scalars. Absent fields are left alone;
// values are clamped to 0-100.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var updated domain.Settings
	err := s.sess.Update(func(st *domain.RootState) error {
		if req.Sensitivity != nil {
			st.Settings.Sensitivity = engagement.ClampIntensity(*req.Sensitivity)
		}
		if req.HapticStrength != nil {
			st.Settings.HapticStrength = engagement.ClampIntensity(*req.HapticStrength)
		}
		updated = st.Settings
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.sess.SetPaused(req.Paused)
	writeJSON(w, http.StatusOK, map[string]bool{
		"paused": req.Paused,
	})
}

type feedbackTestRequest struct {
	Pattern   int  `json:"pattern"`
	Intensity *int `json:"intensity"`
}

// handleFeedbackTest fires one haptic command at the toy so the user can
// tune their strength setting. Delivery is fire-and-forget.
func (s *Server) handleFeedbackTest(w http.ResponseWriter, r *http.Request) {
	if s.sink == nil {
		writeError(w, http.StatusServiceUnavailable, "no feedback transport configured")
		return
	}

	var req feedbackTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Pattern < int(domain.PatternScore) || req.Pattern > int(domain.PatternPinch) {
		writeError(w, http.StatusBadRequest, "unknown pattern")
		return
	}

	intensity := s.sess.Snapshot().Settings.HapticStrength
	if req.Intensity != nil {
		intensity = *req.Intensity
	}
	cmd := domain.FeedbackCommand{
		Pattern:   domain.FeedbackPattern(req.Pattern),
		Intensity: engagement.ClampIntensity(intensity),
	}
	go func() {
		if err := s.sink.Send(cmd); err != nil {
			log.Printf("[api] feedback test send failed: %v", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, cmd)
}

// ─── Health ─────────────────────────────────────────────────────────────────

func (s *Server) handleHealthDetail(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"healthy": true,
			"checks":  []health.Status{},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"healthy": s.checker.IsHealthy(),
		"checks":  s.checker.Statuses(),
	})
}
