package systems

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Position
	HasMoved  bool
	BlockedBy types.EntityID // Если врезались в кого-то (для атаки)
	IsWall    bool           // Если врезались в стену или край карты
}

// CalculateMove вычисляет результат шага. Не меняет состояние мира!
// Клетки на внешней рамке карты недостижимы.
func CalculateMove(w *domain.World, id types.EntityID, dx, dy int) MovementResult {
	pos, ok := w.Positions.Get(id)
	if !ok {
		return MovementResult{IsWall: true}
	}

	target := pos.Shift(dx, dy)
	res := MovementResult{Target: target}

	if !w.Map.InInterior(target.X, target.Y) {
		res.IsWall = true
		return res
	}

	idx := w.Map.IndexOf(target)
	for _, other := range w.Map.TileContent[idx] {
		if other == id {
			continue
		}
		if w.CombatStats.Has(other) {
			res.BlockedBy = other
			return res
		}
	}

	if w.Map.IsBlocked(idx) {
		res.IsWall = true
		return res
	}

	res.HasMoved = true
	return res
}

// TryMove двигает сущность или превращает шаг в атаку по стоящему на пути.
func TryMove(w *domain.World, id types.EntityID, dx, dy int) MovementResult {
	res := CalculateMove(w, id, dx, dy)

	moveLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"entity_id": id,
		"target":    res.Target,
	})

	switch {
	case !res.BlockedBy.IsNil():
		w.WantsToMelee.Insert(id, domain.WantsToMelee{Target: res.BlockedBy})
		moveLogger.WithField("blocked_by", res.BlockedBy).Debug("Bump attack.")
	case res.HasMoved:
		pos, _ := w.Positions.Get(id)
		if w.BlocksTile.Has(id) {
			w.Map.MoveBlocker(id, *pos, res.Target)
		}
		*pos = res.Target
		if vs, ok := w.Viewsheds.Get(id); ok {
			vs.Dirty = true
		}
		moveLogger.Debug("Entity moved.")
	}
	return res
}
