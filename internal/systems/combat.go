package systems

import (
	"fmt"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CombatResolutionPhase превращает намерения WantsToMelee в отложенный урон.
// Намерения очищаются всегда, даже при промахе.
func CombatResolutionPhase(w *domain.World) {
	for _, attacker := range w.WantsToMelee.Entities() {
		intent, _ := w.WantsToMelee.Get(attacker)
		resolveMelee(w, attacker, intent.Target)
	}
	w.WantsToMelee.Clear()
}

func resolveMelee(w *domain.World, attacker, target types.EntityID) {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker,
		"attacker_name": w.NameOf(attacker),
		"target_id":     target,
		"target_name":   w.NameOf(target),
	})

	aStats, ok := w.CombatStats.Get(attacker)
	if !ok {
		combatLogger.Warn("Attack skipped: attacker has no CombatStats.")
		return
	}
	if aStats.IsDead() {
		combatLogger.Debug("Attack skipped: attacker is dead.")
		return
	}

	tStats, ok := w.CombatStats.Get(target)
	if !ok {
		combatLogger.Warn("Attack skipped: target has no CombatStats.")
		return
	}
	if tStats.IsDead() {
		combatLogger.Debug("Attack skipped: target is already dead.")
		return
	}

	power := aStats.Power + MeleePowerBonus(w, attacker)
	defense := tStats.Defense + DefenseBonus(w, target)

	damage := power - defense
	if damage < 0 {
		damage = 0
	}

	combatLogger.WithFields(logrus.Fields{
		"power":   power,
		"defense": defense,
		"damage":  damage,
	}).Info("Attack resolved.")

	if damage == 0 {
		w.Log.Add(fmt.Sprintf("%s is unable to hurt %s.", w.NameOf(attacker), w.NameOf(target)))
		return
	}

	w.Log.Add(fmt.Sprintf("%s hits %s, for %d hp.", w.NameOf(attacker), w.NameOf(target), damage))
	QueueDamage(w, target, damage)
}

// MeleePowerBonus суммирует бонусы атаки надетых предметов.
func MeleePowerBonus(w *domain.World, owner types.EntityID) int {
	total := 0
	for _, item := range w.EquippedBy(owner) {
		if b, ok := w.MeleePowerBonus.Get(item); ok {
			total += b.Power
		}
	}
	return total
}

// DefenseBonus суммирует бонусы защиты надетых предметов.
func DefenseBonus(w *domain.World, owner types.EntityID) int {
	total := 0
	for _, item := range w.EquippedBy(owner) {
		if b, ok := w.DefenseBonus.Get(item); ok {
			total += b.Defense
		}
	}
	return total
}
