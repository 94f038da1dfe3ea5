package actions

import (
	"fmt"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
	"rogue-server/pkg/api"
)

// HandleSelect - выбор предмета в открытом меню. Смысл зависит от меню:
// инвентарь - применить (или прицелиться), выброс - выбросить, снятие - снять.
func HandleSelect(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	item, err := types.ParseEntityID(p.ItemID)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("select: %w", err)
	}

	w := ctx.World

	switch ctx.State {
	case domain.StateShowInventory:
		if !inBackpackOf(w, item, ctx.Actor) {
			return handlers.Result{Msg: "You don't have that item."}, nil
		}
		if ranged, ok := w.Ranged.Get(item); ok {
			return handlers.Result{
				Event: handlers.EventAim,
				Aim:   &handlers.Aim{Item: item, Range: ranged.Range},
			}, nil
		}
		w.WantsToUse.Insert(ctx.Actor, domain.WantsToUseItem{Item: item})
		return handlers.Transition(handlers.EventPlayerActed), nil

	case domain.StateShowDropItem:
		if !inBackpackOf(w, item, ctx.Actor) {
			return handlers.Result{Msg: "You don't have that item."}, nil
		}
		w.WantsToDrop.Insert(ctx.Actor, domain.WantsToDropItem{Item: item})
		return handlers.Transition(handlers.EventPlayerActed), nil

	case domain.StateShowRemoveItem:
		eq, ok := w.Equipped.Get(item)
		if !ok || eq.Owner != ctx.Actor {
			return handlers.Result{Msg: "You are not wearing that."}, nil
		}
		w.WantsToRemove.Insert(ctx.Actor, domain.WantsToRemoveItem{Item: item})
		return handlers.Transition(handlers.EventPlayerActed), nil
	}

	return handlers.Result{}, fmt.Errorf("select is not available in %s", ctx.State)
}

func inBackpackOf(w *domain.World, item, owner types.EntityID) bool {
	bp, ok := w.InBackpack.Get(item)
	return ok && bp.Owner == owner
}
