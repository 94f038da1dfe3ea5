package engine

import (
	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
)

// RunSystems - один тик симуляции. Каждая фаза видит только
// зафиксированные результаты предыдущих фаз этого же тика.
func RunSystems(w *domain.World) {
	systems.VisibilityPhase(w)
	systems.OccupancyIndexPhase(w)
	systems.DecisionPhase(w)
	systems.CombatResolutionPhase(w)
	systems.DamageApplicationPhase(w)
	systems.DeleteTheDead(w)
	systems.ItemEffectPhase(w)

	// Предметы могли нанести урон уже после фазы урона.
	systems.DamageApplicationPhase(w)
	systems.DeleteTheDead(w)
	w.Maintain()
}
