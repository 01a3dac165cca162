package notify

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// LogDispatcher writes events to the log. It is the default transport.
type LogDispatcher struct {
	logger hclog.Logger
}

func NewLogDispatcher(logger hclog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(_ context.Context, evt Event) error {
	d.logger.Info("match event",
		"event_id", evt.ID,
		"type", string(evt.Type),
		"match_id", evt.MatchID,
		"team_id", evt.TeamID,
		"position", evt.Position,
		"recipients", len(evt.UserIDs),
	)
	return nil
}
