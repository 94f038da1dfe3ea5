package actions

import (
	"rogue-server/internal/engine/handlers"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
)

// HandleMove - шаг игрока. Шаг в существо превращается в атаку.
// Ход заканчивается в любом случае, даже если шаг уперся в стену.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	systems.TryMove(ctx.World, ctx.Actor, p.Dx, p.Dy)
	return handlers.Transition(handlers.EventPlayerActed), nil
}
