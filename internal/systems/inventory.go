package systems

import (
	"fmt"

	"rogue-server/internal/core/types"
	"rogue-server/internal/core/types/enums"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ItemEffectPhase выполняет подфазы предметов по порядку. Каждая очищает свой ящик.
func ItemEffectPhase(w *domain.World) {
	ItemCollectionPhase(w)
	ItemUsePhase(w)
	ItemDropPhase(w)
	ItemRemovePhase(w)
	TeleportPhase(w)
}

func inventoryLogger(actor, item types.EntityID) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor_id":  actor,
		"item_id":   item,
	})
}

// --- PICKUP ---

func ItemCollectionPhase(w *domain.World) {
	for _, id := range w.WantsToPickup.Entities() {
		intent, _ := w.WantsToPickup.Get(id)
		log := inventoryLogger(intent.CollectedBy, intent.Item)

		if !w.Alive(intent.Item) || !w.Items.Has(intent.Item) {
			log.Warn("Pickup skipped: not an item.")
			continue
		}
		pos, ok := w.Positions.Get(intent.Item)
		if !ok {
			log.Warn("Pickup skipped: item is not on the ground.")
			continue
		}

		if w.Map.InBounds(pos.X, pos.Y) {
			w.Map.RemoveContent(w.Map.IndexOf(*pos), intent.Item)
		}
		w.Positions.Remove(intent.Item)
		w.Equipped.Remove(intent.Item)
		w.InBackpack.Insert(intent.Item, domain.InBackpack{Owner: intent.CollectedBy})

		if intent.CollectedBy == w.PlayerID {
			w.Log.Add(fmt.Sprintf("You pick up the %s.", w.NameOf(intent.Item)))
		}
		log.Info("Item picked up.")
	}
	w.WantsToPickup.Clear()
}

// --- USE ---

func ItemUsePhase(w *domain.World) {
	for _, user := range w.WantsToUse.Entities() {
		intent, _ := w.WantsToUse.Get(user)
		useItem(w, user, intent.Item, intent.Target)
	}
	w.WantsToUse.Clear()
}

func useItem(w *domain.World, user, item types.EntityID, target *domain.Position) {
	log := inventoryLogger(user, item)

	if !w.Alive(item) || !w.Items.Has(item) {
		log.Warn("Use skipped: not an item.")
		return
	}
	if !ownedBy(w, item, user) {
		log.Warn("Use skipped: item is not carried by the user.")
		return
	}

	targets := ResolveTargets(w, user, item, target)
	isPlayer := user == w.PlayerID
	itemName := w.NameOf(item)
	applied := false

	if eq, ok := w.Equippable.Get(item); ok {
		equip(w, user, item, eq.Slot)
	}

	if heal, ok := w.ProvidesHealing.Get(item); ok {
		for _, t := range targets {
			stats, ok := w.CombatStats.Get(t)
			if !ok {
				continue
			}
			healed := stats.Heal(heal.HealAmount)
			applied = true
			if isPlayer {
				w.Log.Add(fmt.Sprintf("You use the %s, healing %d hp.", itemName, healed))
			}
		}
	}

	if dmg, ok := w.InflictsDamage.Get(item); ok {
		for _, t := range targets {
			if !w.CombatStats.Has(t) {
				continue
			}
			QueueDamage(w, t, dmg.Damage)
			applied = true
			if isPlayer {
				w.Log.Add(fmt.Sprintf("You use %s on %s, inflicting %d hp.", itemName, w.NameOf(t), dmg.Damage))
			}
		}
	}

	if w.InflictsTeleport.Has(item) {
		if origin, ok := w.Positions.Get(user); ok {
			for _, t := range targets {
				if t == user || !w.CombatStats.Has(t) {
					continue
				}
				w.TeleportsSymmetry.Insert(t, domain.TeleportsSymmetrically{From: user, Origin: *origin})
				applied = true
			}
		}
	}

	if conf, ok := w.InflictsConfuse.Get(item); ok {
		for _, t := range targets {
			if !w.CombatStats.Has(t) {
				continue
			}
			w.Confusion.Insert(t, domain.Confusion{Turns: conf.Turns})
			applied = true
			if isPlayer {
				w.Log.Add(fmt.Sprintf("You use %s on %s, confusing them.", itemName, w.NameOf(t)))
			}
		}
	}

	if applied && w.Consumables.Has(item) {
		w.QueueDelete(item)
	}

	log.WithFields(logrus.Fields{
		"targets":  len(targets),
		"applied":  applied,
		"consumed": applied && w.Consumables.Has(item),
	}).Info("Item used.")
}

// equip надевает предмет на пользователя, возвращая в рюкзак то, что занимало слот.
func equip(w *domain.World, owner, item types.EntityID, slot enums.EquipmentSlot) {
	isPlayer := owner == w.PlayerID

	for _, other := range w.EquippedBy(owner) {
		eq, _ := w.Equipped.Get(other)
		if eq.Slot != slot || other == item {
			continue
		}
		w.Equipped.Remove(other)
		w.InBackpack.Insert(other, domain.InBackpack{Owner: owner})
		if isPlayer {
			w.Log.Add(fmt.Sprintf("You unequip %s.", w.NameOf(other)))
		}
	}

	w.InBackpack.Remove(item)
	w.Equipped.Insert(item, domain.Equipped{Owner: owner, Slot: slot})
	if isPlayer {
		w.Log.Add(fmt.Sprintf("You equip %s.", w.NameOf(item)))
	}
}

func ownedBy(w *domain.World, item, owner types.EntityID) bool {
	if bp, ok := w.InBackpack.Get(item); ok && bp.Owner == owner {
		return true
	}
	if eq, ok := w.Equipped.Get(item); ok && eq.Owner == owner {
		return true
	}
	return false
}

// --- DROP ---

func ItemDropPhase(w *domain.World) {
	for _, dropper := range w.WantsToDrop.Entities() {
		intent, _ := w.WantsToDrop.Get(dropper)
		log := inventoryLogger(dropper, intent.Item)

		bp, ok := w.InBackpack.Get(intent.Item)
		if !ok || bp.Owner != dropper {
			log.Warn("Drop skipped: item is not in the dropper's backpack.")
			continue
		}
		pos, ok := w.Positions.Get(dropper)
		if !ok {
			log.Warn("Drop skipped: dropper has no position.")
			continue
		}

		w.InBackpack.Remove(intent.Item)
		w.Positions.Insert(intent.Item, *pos)
		idx := w.Map.IndexOf(*pos)
		w.Map.TileContent[idx] = append(w.Map.TileContent[idx], intent.Item)

		if dropper == w.PlayerID {
			w.Log.Add(fmt.Sprintf("You drop the %s.", w.NameOf(intent.Item)))
		}
		log.Info("Item dropped.")
	}
	w.WantsToDrop.Clear()
}

// --- REMOVE ---

func ItemRemovePhase(w *domain.World) {
	for _, owner := range w.WantsToRemove.Entities() {
		intent, _ := w.WantsToRemove.Get(owner)
		log := inventoryLogger(owner, intent.Item)

		eq, ok := w.Equipped.Get(intent.Item)
		if !ok || eq.Owner != owner {
			log.Warn("Remove skipped: item is not equipped by the owner.")
			continue
		}

		w.Equipped.Remove(intent.Item)
		w.InBackpack.Insert(intent.Item, domain.InBackpack{Owner: owner})

		if owner == w.PlayerID {
			w.Log.Add(fmt.Sprintf("You unequip %s.", w.NameOf(intent.Item)))
		}
		log.Info("Item removed.")
	}
	w.WantsToRemove.Clear()
}
