package engagement

import (
	"log"

	"github.com/cheerlink/cheerlink/internal/domain"
)

// Trigger hands haptic commands to the external transport. It knows nothing
// about delivery success: a failed send is logged and never touches state.
type Trigger struct {
	sink domain.FeedbackSink
}

// NewTrigger creates a feedback trigger for the given sink.
func NewTrigger(sink domain.FeedbackSink) *Trigger {
	return &Trigger{sink: sink}
}

// raiseCommand is the command fired on a level raise: the "chance" pattern at
// the user's configured strength. Drops and steady state issue nothing.
func raiseCommand(strength int) domain.FeedbackCommand {
	return domain.FeedbackCommand{
		Pattern:   domain.PatternChance,
		Intensity: ClampIntensity(strength),
	}
}

// ClampIntensity bounds a haptic strength to the 0–100 wire range.
func ClampIntensity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Fire delivers a command without blocking the caller.
func (t *Trigger) Fire(cmd domain.FeedbackCommand) {
	go func() {
		if err := t.sink.Send(cmd); err != nil {
			log.Printf("[feedback] send failed: %v", err)
		}
	}()
}
