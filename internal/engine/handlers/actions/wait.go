package actions

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
)

// HandleWait пропускает ход. Если рядом нет врагов, игрок восстанавливает 1 hp.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	w := ctx.World

	if !monsterInSight(w, ctx.Actor) {
		if stats, ok := w.CombatStats.Get(ctx.Actor); ok {
			stats.Heal(1)
		}
	}

	return handlers.Transition(handlers.EventPlayerActed), nil
}

func monsterInSight(w *domain.World, actor types.EntityID) bool {
	vs, ok := w.Viewsheds.Get(actor)
	if !ok {
		return false
	}
	for _, p := range vs.Tiles {
		if !w.Map.InBounds(p.X, p.Y) {
			continue
		}
		for _, id := range w.Map.TileContent[w.Map.IndexOf(p)] {
			if w.Monsters.Has(id) {
				return true
			}
		}
	}
	return false
}
