// Package catalog is the built-in list of drawable charms.
// This is CheerLink's "prize book" — an immutable, build-time catalog with
// fixed rarity tiers and color palettes. Not user-editable, not persisted.
package catalog

import "github.com/cheerlink/cheerlink/internal/domain"

// Items is the full charm catalog: 19 entries across three rarity tiers
// (10 N, 6 R, 3 SR). Palette order is the unlock order.
var Items = []domain.ItemDef{
	{ItemID: "cap_flame_01", Name: "Flame Cap", Rarity: domain.RarityN, Palette: []string{"orange", "red", "yellow"}},
	{ItemID: "cap_flame_02", Name: "Sparkle Flame Cap", Rarity: domain.RarityR, Palette: []string{"orange", "pink", "white"}},
	{ItemID: "cap_flame_03", Name: "Smoke Puff Cap", Rarity: domain.RarityN, Palette: []string{"gray", "white", "blue"}},
	{ItemID: "mascot_01", Name: "Smiley Star", Rarity: domain.RarityN, Palette: []string{"yellow", "white", "pink"}},
	{ItemID: "mascot_02", Name: "Little Lion", Rarity: domain.RarityR, Palette: []string{"yellow", "orange", "white"}},
	{ItemID: "mascot_03", Name: "Roly-Poly Panda", Rarity: domain.RarityN, Palette: []string{"white", "black", "sky blue"}},
	{ItemID: "mecha_01", Name: "Mecha Cap", Rarity: domain.RarityN, Palette: []string{"silver", "blue", "purple"}},
	{ItemID: "mecha_02", Name: "Light Mecha", Rarity: domain.RarityR, Palette: []string{"silver", "green", "blue"}},
	{ItemID: "mecha_03", Name: "Jet Cap", Rarity: domain.RaritySR, Palette: []string{"silver", "red", "blue"}},
	{ItemID: "cap_fun_01", Name: "Fluffy Cap", Rarity: domain.RarityN, Palette: []string{"pink", "white", "sky blue"}},
	{ItemID: "cap_fun_02", Name: "Spark Cap", Rarity: domain.RarityR, Palette: []string{"red", "yellow", "white"}},
	{ItemID: "cap_fun_03", Name: "Dotty Cap", Rarity: domain.RarityN, Palette: []string{"green", "yellow", "white"}},
	{ItemID: "mascot_04", Name: "Heart Buddy", Rarity: domain.RarityN, Palette: []string{"pink", "purple", "white"}},
	{ItemID: "mascot_05", Name: "Cheer Robo", Rarity: domain.RarityR, Palette: []string{"blue", "green", "white"}},
	{ItemID: "mascot_06", Name: "Mini Dragon", Rarity: domain.RaritySR, Palette: []string{"red", "purple", "black"}},
	{ItemID: "mecha_04", Name: "Gear Cap", Rarity: domain.RarityN, Palette: []string{"silver", "black", "white"}},
	{ItemID: "mecha_05", Name: "Neon Cap", Rarity: domain.RarityR, Palette: []string{"green", "purple", "blue"}},
	{ItemID: "cap_flame_04", Name: "Flame Horns", Rarity: domain.RaritySR, Palette: []string{"orange", "red", "black"}},
	{ItemID: "cap_flame_05", Name: "Droplet Flame", Rarity: domain.RarityN, Palette: []string{"sky blue", "white", "blue"}},
}

// Lookup finds a catalog entry by item id. Returns nil if not found.
func Lookup(itemID string) *domain.ItemDef {
	for i := range Items {
		if Items[i].ItemID == itemID {
			return &Items[i]
		}
	}
	return nil
}

// Weight returns the draw weight for a rarity tier (SR=2, R=18, N=80).
func Weight(r domain.Rarity) int {
	switch r {
	case domain.RaritySR:
		return 2
	case domain.RarityR:
		return 18
	default:
		return 80
	}
}

// TotalWeight is the sum of draw weights over the whole catalog.
func TotalWeight() int {
	sum := 0
	for i := range Items {
		sum += Weight(Items[i].Rarity)
	}
	return sum
}
