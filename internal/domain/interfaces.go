package domain

// ─── Gateway Interfaces ─────────────────────────────────────────────────────
// Implemented by infra packages; the app layer depends only on these.

// StateStore loads and saves the RootState aggregate.
// LoadRoot returns found=false for both absent and unreadable stored state —
// the caller substitutes the default state, never a hard failure.
type StateStore interface {
	LoadRoot() (st *RootState, found bool, err error)
	SaveRoot(st *RootState) error
}

// FeedbackSink delivers a haptic command to the external transport.
// Delivery is fire-and-forget: a failed send is reported to the user as a
// transient notice and never rolls back the state transition that caused it.
type FeedbackSink interface {
	Send(cmd FeedbackCommand) error
}
