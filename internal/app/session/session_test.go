package session_test

import (
	"testing"
	"time"

	"github.com/cheerlink/cheerlink/internal/app/session"
	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/infra/sqlite"
)

func testStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_FreshStoreGetsDefaults(t *testing.T) {
	db := testStore(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	s, err := session.Open(db, now)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	st := s.Snapshot()
	if st.Tickets != 0 || st.GlitterDust != 0 {
		t.Errorf("fresh currencies = %d/%d, want 0/0", st.Tickets, st.GlitterDust)
	}
	if len(st.Inventory) != 0 {
		t.Errorf("fresh inventory should be empty, got %d items", len(st.Inventory))
	}
	if st.FirstBonusClaimed {
		t.Error("fresh state should not have bonus claimed")
	}
	if st.Daily.DateKey != "2026-09-01" {
		t.Errorf("date key = %q, want 2026-09-01", st.Daily.DateKey)
	}
	if len(st.Daily.Missions) != 3 {
		t.Errorf("expected 3 daily missions, got %d", len(st.Daily.Missions))
	}
	if st.Settings.Sensitivity != 50 || st.Settings.HapticStrength != 60 {
		t.Errorf("default settings = %+v", st.Settings)
	}
}

func TestOpen_DailyResetKeepsEconomy(t *testing.T) {
	db := testStore(t)
	yesterday := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)

	stored := session.DefaultState(yesterday)
	stored.Tickets = 5
	stored.GlitterDust = 9
	stored.Inventory = []domain.OwnedItem{
		{ItemID: "mascot_01", Name: "Smiley Star", OwnedCount: 1, UnlockedColors: []string{"yellow"}},
	}
	stored.EquippedItemID = "mascot_01"
	stored.Daily.TotalHits = 120
	stored.Daily.Level = 3
	stored.Daily.HitTimes = []int64{1, 2, 3}
	stored.Daily.Missions[0].Achieved = true
	stored.Daily.Missions[0].Claimed = true
	if err := db.SaveRoot(stored); err != nil {
		t.Fatalf("seed: %v", err)
	}

	today := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	s, err := session.Open(db, today)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	st := s.Snapshot()
	if st.Tickets != 5 || st.GlitterDust != 9 {
		t.Errorf("economy should survive reset, got %d/%d", st.Tickets, st.GlitterDust)
	}
	if len(st.Inventory) != 1 || st.EquippedItemID != "mascot_01" {
		t.Error("inventory and equip should survive reset")
	}
	if st.Daily.DateKey != "2026-09-01" {
		t.Errorf("date key = %q, want today", st.Daily.DateKey)
	}
	if st.Daily.TotalHits != 0 || st.Daily.Level != 0 || len(st.Daily.HitTimes) != 0 {
		t.Errorf("daily progress should reset, got %+v", st.Daily)
	}
	for _, m := range st.Daily.Missions {
		if m.Achieved || m.Claimed {
			t.Errorf("mission %s should reset, got %+v", m.ID, m)
		}
	}
}

func TestOpen_SameDayKeepsProgress(t *testing.T) {
	db := testStore(t)
	morning := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	stored := session.DefaultState(morning)
	stored.Daily.TotalHits = 30
	stored.Daily.Level = 1
	if err := db.SaveRoot(stored); err != nil {
		t.Fatalf("seed: %v", err)
	}

	evening := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	s, err := session.Open(db, evening)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	st := s.Snapshot()
	if st.Daily.TotalHits != 30 || st.Daily.Level != 1 {
		t.Errorf("same-day progress should survive, got %+v", st.Daily)
	}
}

func TestOpen_EquipFallback(t *testing.T) {
	db := testStore(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	stored := session.DefaultState(now)
	stored.Inventory = []domain.OwnedItem{
		{ItemID: "cap_fun_01", Name: "Fluffy Cap", OwnedCount: 1, UnlockedColors: []string{"pink"}},
		{ItemID: "mecha_01", Name: "Mecha Cap", OwnedCount: 1, UnlockedColors: []string{"silver"}},
	}
	stored.EquippedItemID = ""
	if err := db.SaveRoot(stored); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, err := session.Open(db, now)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	st := s.Snapshot()
	if st.EquippedItemID != "cap_fun_01" {
		t.Errorf("equip fallback = %q, want first inventory entry cap_fun_01", st.EquippedItemID)
	}
}

func TestUpdate_PersistsAcrossReopen(t *testing.T) {
	db := testStore(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	s, err := session.Open(db, now)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = s.Update(func(st *domain.RootState) error {
		st.Tickets = 4
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	s2, err := session.Open(db, now)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := s2.Snapshot().Tickets; got != 4 {
		t.Errorf("tickets after reopen = %d, want 4", got)
	}
}

func TestUpdate_ErrorDoesNotSave(t *testing.T) {
	db := testStore(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	s, err := session.Open(db, now)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	wantErr := domain.ErrNoTickets
	err = s.Update(func(st *domain.RootState) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected sentinel error back, got %v", err)
	}
}

func TestPause_Toggle(t *testing.T) {
	db := testStore(t)
	s, err := session.Open(db, time.Now())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if s.Paused() {
		t.Error("fresh session should not be paused")
	}
	s.SetPaused(true)
	if !s.Paused() {
		t.Error("expected paused after SetPaused(true)")
	}
	s.SetPaused(false)
	if s.Paused() {
		t.Error("expected running after SetPaused(false)")
	}
}
