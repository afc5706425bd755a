// Package gacha implements the collection economy: ticket draws over the
// weighted item catalog, glitter-dust color unlocks, equipping, and the
// wishlist.
package gacha

import (
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/cheerlink/cheerlink/internal/app/session"
	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/infra/catalog"
	"github.com/cheerlink/cheerlink/internal/infra/sqlite"
)

// ColorUnlockCost is the glitter-dust price of one palette color.
const ColorUnlockCost = 5

// Service runs draws and collection mutations against the session state.
// The draw log in SQLite is an audit trail: a failed log write is logged
// and never rolls back the draw itself.
type Service struct {
	sess *session.Session
	db   *sqlite.DB
	rng  *rand.Rand
}

// NewService creates a gacha service with a time-seeded RNG.
func NewService(sess *session.Session, db *sqlite.DB) *Service {
	return NewServiceWithRand(sess, db, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewServiceWithRand creates a gacha service with the given RNG. Tests pass a
// fixed seed to make draw sequences reproducible.
func NewServiceWithRand(sess *session.Session, db *sqlite.DB, rng *rand.Rand) *Service {
	return &Service{sess: sess, db: db, rng: rng}
}

// DrawOutcome describes a single completed draw.
type DrawOutcome struct {
	Item      domain.ItemDef `json:"item"`
	Duplicate bool           `json:"duplicate"`
	DustGain  int            `json:"dust_gain"`
	Tickets   int            `json:"tickets"`
}

// weightedPick selects an item by rarity weight in catalog order.
func (s *Service) weightedPick() *domain.ItemDef {
	remaining := int(s.rng.Float64() * float64(catalog.TotalWeight()))
	for i := range catalog.Items {
		remaining -= catalog.Weight(catalog.Items[i].Rarity)
		if remaining < 0 {
			return &catalog.Items[i]
		}
	}
	return &catalog.Items[0]
}

// DrawOnce spends one ticket and draws one item. A new item enters the
// inventory with its first palette color unlocked; a duplicate converts to
// one glitter dust. The first item ever drawn is auto-equipped.
func (s *Service) DrawOnce(now time.Time) (*DrawOutcome, error) {
	var out DrawOutcome
	err := s.sess.Update(func(st *domain.RootState) error {
		if st.Tickets < 1 {
			return domain.ErrNoTickets
		}
		st.Tickets--

		item := s.weightedPick()
		out.Item = *item

		if owned := st.FindOwned(item.ItemID); owned != nil {
			owned.OwnedCount++
			st.GlitterDust++
			out.Duplicate = true
			out.DustGain = 1
		} else {
			st.Inventory = append(st.Inventory, domain.OwnedItem{
				ItemID:         item.ItemID,
				Name:           item.Name,
				OwnedCount:     1,
				UnlockedColors: []string{item.Palette[0]},
			})
			if st.EquippedItemID == "" {
				st.EquippedItemID = item.ItemID
			}
		}
		out.Tickets = st.Tickets
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec := domain.DrawRecord{
		ID:        uuid.NewString(),
		ItemID:    out.Item.ItemID,
		Name:      out.Item.Name,
		Rarity:    out.Item.Rarity,
		Duplicate: out.Duplicate,
		DrawnAt:   now,
	}
	if err := s.db.InsertDraw(rec); err != nil {
		log.Printf("[gacha] draw log write failed: %v", err)
	}
	return &out, nil
}

// UnlockColor spends glitter dust to unlock the next color of an owned
// item's palette. Colors unlock strictly in palette order.
func (s *Service) UnlockColor(itemID string) (string, error) {
	var color string
	err := s.sess.Update(func(st *domain.RootState) error {
		if st.GlitterDust < ColorUnlockCost {
			return domain.ErrNotEnoughDust
		}
		def := catalog.Lookup(itemID)
		if def == nil {
			return domain.ErrItemNotFound
		}
		owned := st.FindOwned(itemID)
		if owned == nil {
			return domain.ErrItemNotOwned
		}

		color = nextLockedColor(def.Palette, owned.UnlockedColors)
		if color == "" {
			return domain.ErrPaletteExhausted
		}
		st.GlitterDust -= ColorUnlockCost
		owned.UnlockedColors = append(owned.UnlockedColors, color)
		return nil
	})
	if err != nil {
		return "", err
	}
	return color, nil
}

// nextLockedColor returns the first palette color not yet unlocked, or ""
// when the palette is complete.
func nextLockedColor(palette, unlocked []string) string {
	for _, c := range palette {
		found := false
		for _, u := range unlocked {
			if u == c {
				found = true
				break
			}
		}
		if !found {
			return c
		}
	}
	return ""
}

// Equip sets the equipped item. Only owned items can be equipped.
func (s *Service) Equip(itemID string) error {
	return s.sess.Update(func(st *domain.RootState) error {
		if st.FindOwned(itemID) == nil {
			return domain.ErrItemNotOwned
		}
		st.EquippedItemID = itemID
		return nil
	})
}

// ToggleWishlist flips an item's wishlist membership and reports the new
// state. Any catalog item may be wishlisted, owned or not.
func (s *Service) ToggleWishlist(itemID string) (bool, error) {
	var wished bool
	err := s.sess.Update(func(st *domain.RootState) error {
		if catalog.Lookup(itemID) == nil {
			return domain.ErrItemNotFound
		}
		for i, id := range st.Wishlist {
			if id == itemID {
				st.Wishlist = append(st.Wishlist[:i], st.Wishlist[i+1:]...)
				return nil
			}
		}
		st.Wishlist = append(st.Wishlist, itemID)
		wished = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return wished, nil
}

// DrawHistory returns the most recent draws, newest first.
func (s *Service) DrawHistory(limit int) ([]domain.DrawRecord, error) {
	return s.db.ListDraws(limit)
}
