package actions

import (
	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
)

// HandleDescend - спуск по лестнице. Без лестницы под ногами ход не тратится.
func HandleDescend(ctx handlers.Context) (handlers.Result, error) {
	w := ctx.World
	pos, ok := w.Positions.Get(ctx.Actor)
	if !ok || w.Map.Tiles[w.Map.IndexOf(*pos)] != domain.TileDownStairs {
		return handlers.Result{Msg: "There is no way down from here."}, nil
	}
	return handlers.Transition(handlers.EventDescend), nil
}
