// Package domain holds the pure CheerLink types.
// The engagement engine turns a noisy stream of drum hits into a smoothed
// heat level; the progression economy rewards sustained play with tickets,
// gacha draws, and cosmetic unlocks. Nothing in here touches storage or I/O.
package domain

import "time"

// ─── Catalog Types ──────────────────────────────────────────────────────────

// Rarity tiers for drawable charms. SR is 40× rarer than N.
type Rarity string

const (
	RarityN  Rarity = "N"
	RarityR  Rarity = "R"
	RaritySR Rarity = "SR"
)

// ItemDef describes a drawable charm in the static catalog.
// The palette order is fixed: colors unlock front to back.
type ItemDef struct {
	ItemID  string   `json:"item_id"`
	Name    string   `json:"name"`
	Rarity  Rarity   `json:"rarity"`
	Palette []string `json:"palette"`
}

// ─── Engagement Types ───────────────────────────────────────────────────────

// Mission is a daily challenge. Achieved is always recomputed from current
// engagement state; Claimed is sticky once set.
type Mission struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Reward   int    `json:"reward"`
	Achieved bool   `json:"achieved"`
	Claimed  bool   `json:"claimed"`
}

// DailyProgress resets every calendar day; the economy survives across days.
// HitTimes is the hit log in unix milliseconds, ascending, pruned from the
// front to the trailing window.
type DailyProgress struct {
	DateKey   string    `json:"date_key"`
	TotalHits int       `json:"total_hits"`
	HitTimes  []int64   `json:"hit_times"`
	Level     int       `json:"level"`
	Missions  []Mission `json:"missions"`
}

// Settings are the user-facing scalars: sensor sensitivity and haptic
// strength, both 0–100.
type Settings struct {
	Sensitivity    int `json:"sensitivity"`
	HapticStrength int `json:"haptic_strength"`
}

// ─── Economy Types ──────────────────────────────────────────────────────────

// OwnedItem is an inventory entry. UnlockedColors is an ordered subset of the
// catalog palette and is non-empty from the moment the item is owned.
type OwnedItem struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	OwnedCount     int      `json:"owned_count"`
	UnlockedColors []string `json:"unlocked_colors"`
}

// RootState is the whole persisted aggregate. Inventory is a slice rather
// than a map: ItemIDs are unique and insertion order drives the equip
// fallback.
type RootState struct {
	Tickets           int           `json:"tickets"`
	GlitterDust       int           `json:"glitter_dust"`
	Inventory         []OwnedItem   `json:"inventory"`
	EquippedItemID    string        `json:"equipped_item_id"`
	Wishlist          []string      `json:"wishlist"`
	FirstBonusClaimed bool          `json:"first_bonus_claimed"`
	Settings          Settings      `json:"settings"`
	Daily             DailyProgress `json:"daily"`
}

// FindOwned returns the inventory entry for itemID, or nil.
func (st *RootState) FindOwned(itemID string) *OwnedItem {
	for i := range st.Inventory {
		if st.Inventory[i].ItemID == itemID {
			return &st.Inventory[i]
		}
	}
	return nil
}

// FindMission returns the daily mission with the given id, or nil.
func (st *RootState) FindMission(id string) *Mission {
	for i := range st.Daily.Missions {
		if st.Daily.Missions[i].ID == id {
			return &st.Daily.Missions[i]
		}
	}
	return nil
}

// Wishlisted reports whether itemID is on the make-it-real wishlist.
func (st *RootState) Wishlisted(itemID string) bool {
	for _, id := range st.Wishlist {
		if id == itemID {
			return true
		}
	}
	return false
}

// ─── Feedback Types ─────────────────────────────────────────────────────────

// FeedbackPattern selects a haptic pattern on the toy firmware.
type FeedbackPattern int

const (
	PatternScore  FeedbackPattern = 0
	PatternChance FeedbackPattern = 1
	PatternPinch  FeedbackPattern = 2
)

// FeedbackCommand is the abstract haptic command handed to the transport.
// Intensity is clamped to 0–100 before sending.
type FeedbackCommand struct {
	Pattern   FeedbackPattern `json:"pattern"`
	Intensity int             `json:"intensity"`
}

// ─── Draw Log Types ─────────────────────────────────────────────────────────

// DrawRecord is one gacha draw in the audit log.
type DrawRecord struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Name      string    `json:"name"`
	Rarity    Rarity    `json:"rarity"`
	Duplicate bool      `json:"duplicate"`
	DrawnAt   time.Time `json:"drawn_at"`
}

// DateKey formats t as the local calendar date used for daily resets.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
