package session

import (
	"context"
	"log/slog"

	"github.com/nathoo/abysscore/types"
)

// LogPublisher writes presence snapshots to a structured logger. It stands
// in for a leaderboard when no remote service is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

// Publish logs p at info level.
func (l LogPublisher) Publish(ctx context.Context, p types.Presence) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "presence",
		"name", p.Name,
		"depth", p.Depth,
		"max_depth", p.MaxDepth,
		"gold", p.Gold,
		"level", p.Level,
		"hp", p.HP,
		"hunger", p.Hunger,
	)
	return nil
}
