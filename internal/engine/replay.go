package engine

import (
	"context"
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Replay заново проигрывает записанную партию. dungeon должен быть создан
// с тем же сидом, что записан в session: тогда мир получится идентичным.
func Replay(ctx context.Context, cfg Config, dungeon Dungeon, session *domain.ReplaySession) (*Game, error) {
	cfg.Seed = session.Seed

	g, err := NewGame(ctx, cfg, dungeon, NewMemoryPersistence())
	if err != nil {
		return nil, fmt.Errorf("replay setup: %w", err)
	}

	for i, act := range session.Actions {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		if err := g.Submit(ctx, Command{Action: act.Action, Payload: act.Payload}); err != nil {
			return g, fmt.Errorf("replay action %d (%s, turn %d): %w", i, act.Action, act.Turn, err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      session.Seed,
		"actions":   len(session.Actions),
		"turn":      g.Turn(),
		"state":     g.State(),
	}).Info("Replay finished")

	return g, nil
}
