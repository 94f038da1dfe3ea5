package actions

import (
	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
)

// HandlePickup обрабатывает команду PICKUP - подбор предмета с земли
func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	w := ctx.World

	pos, ok := w.Positions.Get(ctx.Actor)
	if !ok {
		return handlers.EmptyResult(), nil
	}

	for _, item := range w.Items.Entities() {
		itemPos, ok := w.Positions.Get(item)
		if !ok || *itemPos != *pos {
			continue
		}
		w.WantsToPickup.Insert(ctx.Actor, domain.WantsToPickupItem{CollectedBy: ctx.Actor, Item: item})
		return handlers.Transition(handlers.EventPlayerActed), nil
	}

	return handlers.Result{Msg: "There is nothing here to pick up.", Event: handlers.EventPlayerActed}, nil
}
