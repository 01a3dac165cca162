// Package notify delivers match events to whatever transports are configured.
// Delivery is best effort: a failed dispatch is logged and never rolls back the
// roster change that produced it.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventMatchCancelled EventType = "match_cancelled"
	EventSpotOpened     EventType = "spot_opened"
)

type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	MatchID    uint      `json:"match_id"`
	TeamID     uint      `json:"team_id,omitempty"`
	Position   int       `json:"position,omitempty"`
	UserIDs    []string  `json:"user_ids,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh id and time on an event.
func NewEvent(t EventType, matchID uint) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		MatchID:    matchID,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// Dispatcher accepts an event for delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt Event) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, evt Event) error

func (f DispatcherFunc) Dispatch(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}
