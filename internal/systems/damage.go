package systems

import (
	"fmt"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// QueueDamage добавляет урон в накопитель цели.
func QueueDamage(w *domain.World, target types.EntityID, amount int) {
	if acc, ok := w.SufferDamage.Get(target); ok {
		acc.Amounts = append(acc.Amounts, amount)
		return
	}
	w.SufferDamage.Insert(target, domain.SufferDamage{Amounts: []int{amount}})
}

// DamageApplicationPhase - единственная точка потребления SufferDamage.
// HP не опускается ниже нуля; на клетке жертвы остается кровь.
func DamageApplicationPhase(w *domain.World) {
	for _, id := range w.SufferDamage.Entities() {
		acc, _ := w.SufferDamage.Get(id)
		stats, ok := w.CombatStats.Get(id)
		if !ok {
			continue
		}

		total := acc.Total()
		hpBefore := stats.HP
		stats.TakeDamage(total)

		if pos, ok := w.Positions.Get(id); ok {
			w.Map.AddBloodstain(*pos)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "damage_system",
			"entity_id": id,
			"damage":    total,
			"hp_before": hpBefore,
			"hp_after":  stats.HP,
		}).Info("Damage applied.")
	}
	w.SufferDamage.Clear()
}

// DeleteTheDead ставит погибших в очередь на удаление. Игрок не удаляется:
// его смерть переводит симуляцию в GameOver.
func DeleteTheDead(w *domain.World) {
	for _, id := range w.CombatStats.Entities() {
		stats, _ := w.CombatStats.Get(id)
		if !stats.IsDead() {
			continue
		}

		if w.Players.Has(id) {
			if w.State != domain.StateGameOver {
				logger.Log.WithFields(logrus.Fields{
					"component": "damage_system",
					"entity_id": id,
				}).Info("Player died.")
			}
			w.State = domain.StateGameOver
			continue
		}

		if w.IsQueuedForDeletion(id) {
			continue
		}
		if name, ok := w.Names.Get(id); ok {
			w.Log.Add(fmt.Sprintf("%s is dead", name.Name))
		}
		w.QueueDelete(id)
	}
}
