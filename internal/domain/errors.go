package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Every economy operation either succeeds with a well-defined new state or
// leaves state untouched and returns one of these. They are advisory — meant
// for user feedback, not exceptional control flow.

var (
	// Currency errors
	ErrNoTickets     = errors.New("no tickets left")
	ErrNotEnoughDust = errors.New("not enough glitter dust")

	// Mission errors
	ErrMissionNotFound    = errors.New("mission not found")
	ErrMissionNotAchieved = errors.New("mission not achieved yet")
	ErrMissionClaimed     = errors.New("mission reward already claimed")
	ErrBonusClaimed       = errors.New("first-time bonus already claimed")

	// Collection errors
	ErrItemNotFound     = errors.New("item not in catalog")
	ErrItemNotOwned     = errors.New("item not owned")
	ErrPaletteExhausted = errors.New("all colors already unlocked")
)
