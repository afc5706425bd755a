package sqlite_test

import (
	"testing"
	"time"

	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRootState_AbsentReturnsNotFound(t *testing.T) {
	db := testDB(t)

	st, found, err := db.LoadRoot()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Error("expected found=false for fresh database")
	}
	if st != nil {
		t.Error("expected nil state for fresh database")
	}
}

func TestRootState_Roundtrip(t *testing.T) {
	db := testDB(t)

	in := &domain.RootState{
		Tickets:     7,
		GlitterDust: 3,
		Inventory: []domain.OwnedItem{
			{ItemID: "mascot_01", Name: "Smiley Star", OwnedCount: 2, UnlockedColors: []string{"yellow", "white"}},
		},
		EquippedItemID:    "mascot_01",
		Wishlist:          []string{"mecha_03"},
		FirstBonusClaimed: true,
		Settings:          domain.Settings{Sensitivity: 40, HapticStrength: 70},
		Daily: domain.DailyProgress{
			DateKey:   "2026-09-01",
			TotalHits: 42,
			HitTimes:  []int64{1000, 2000, 3000},
			Level:     2,
			Missions: []domain.Mission{
				{ID: "m_window_10", Title: "Beat 10 in 30s", Reward: 2, Achieved: true},
			},
		},
	}

	if err := db.SaveRoot(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, found, err := db.LoadRoot()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected found=true after save")
	}
	if out.Tickets != 7 || out.GlitterDust != 3 {
		t.Errorf("currencies = %d/%d, want 7/3", out.Tickets, out.GlitterDust)
	}
	if len(out.Inventory) != 1 || out.Inventory[0].OwnedCount != 2 {
		t.Errorf("inventory not preserved: %+v", out.Inventory)
	}
	if out.Daily.DateKey != "2026-09-01" || out.Daily.Level != 2 {
		t.Errorf("daily progress not preserved: %+v", out.Daily)
	}
	if len(out.Daily.HitTimes) != 3 || out.Daily.HitTimes[2] != 3000 {
		t.Errorf("hit log not preserved: %v", out.Daily.HitTimes)
	}
}

func TestRootState_SaveOverwrites(t *testing.T) {
	db := testDB(t)

	_ = db.SaveRoot(&domain.RootState{Tickets: 1})
	_ = db.SaveRoot(&domain.RootState{Tickets: 9})

	out, _, err := db.LoadRoot()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Tickets != 9 {
		t.Errorf("tickets = %d, want 9 (latest save wins)", out.Tickets)
	}
}

func TestDraws_InsertAndList(t *testing.T) {
	db := testDB(t)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	recs := []domain.DrawRecord{
		{ID: "d1", ItemID: "mascot_01", Name: "Smiley Star", Rarity: domain.RarityN, DrawnAt: base},
		{ID: "d2", ItemID: "mascot_01", Name: "Smiley Star", Rarity: domain.RarityN, Duplicate: true, DrawnAt: base.Add(time.Minute)},
		{ID: "d3", ItemID: "mecha_03", Name: "Jet Cap", Rarity: domain.RaritySR, DrawnAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range recs {
		if err := db.InsertDraw(rec); err != nil {
			t.Fatalf("insert %s: %v", rec.ID, err)
		}
	}

	list, err := db.ListDraws(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(list))
	}
	if list[0].ID != "d3" {
		t.Errorf("expected newest first, got %s", list[0].ID)
	}
	if !list[1].Duplicate {
		t.Error("expected d2 marked as duplicate")
	}
	if list[0].Rarity != domain.RaritySR {
		t.Errorf("rarity = %s, want SR", list[0].Rarity)
	}

	n, err := db.DrawCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestDraws_ListLimit(t *testing.T) {
	db := testDB(t)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := domain.DrawRecord{
			ID:      string(rune('a' + i)),
			ItemID:  "cap_flame_01",
			Name:    "Flame Cap",
			Rarity:  domain.RarityN,
			DrawnAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := db.InsertDraw(rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	list, err := db.ListDraws(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected limit 2, got %d", len(list))
	}
}
