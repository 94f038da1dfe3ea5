package actions

import (
	"errors"

	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
)

// HandleTarget - выбор клетки для предмета дальнего действия.
func HandleTarget(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	if ctx.Aim == nil {
		return handlers.Result{}, errors.New("no item is being aimed")
	}

	target := domain.Position{X: p.X, Y: p.Y}
	if err := systems.ValidateRangedTarget(ctx.World, ctx.Actor, target, ctx.Aim.Range); err != nil {
		return handlers.Result{Msg: "That target is out of range."}, nil
	}

	ctx.World.WantsToUse.Insert(ctx.Actor, domain.WantsToUseItem{Item: ctx.Aim.Item, Target: &target})
	return handlers.Transition(handlers.EventPlayerActed), nil
}
