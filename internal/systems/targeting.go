package systems

import (
	"errors"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
)

var (
	ErrTargetNotVisible = errors.New("target not visible")
	ErrTargetOutOfRange = errors.New("target out of range")
	ErrNoLineOfFire     = errors.New("no line of fire")
)

// BlastTiles - клетки взрыва: FOV из точки цели, обрезанный внутренней областью карты.
func BlastTiles(m *domain.SpatialMap, center domain.Position, radius int) []domain.Position {
	tiles := ComputeFOV(m, center, radius)
	out := tiles[:0]
	for _, p := range tiles {
		if m.InInterior(p.X, p.Y) {
			out = append(out, p)
		}
	}
	return out
}

// ResolveTargets определяет, на кого действует предмет:
//   - без точки - на самого пользователя;
//   - точка без AreaOfEffect - все обитатели клетки;
//   - точка с AreaOfEffect - обитатели всех клеток взрыва.
func ResolveTargets(w *domain.World, user, item types.EntityID, target *domain.Position) []types.EntityID {
	if target == nil {
		return []types.EntityID{user}
	}
	if !w.Map.InBounds(target.X, target.Y) {
		return nil
	}

	aoe, ok := w.AreaOfEffect.Get(item)
	if !ok {
		content := w.Map.TileContent[w.Map.IndexOf(*target)]
		out := make([]types.EntityID, len(content))
		copy(out, content)
		return out
	}

	var out []types.EntityID
	for _, p := range BlastTiles(w.Map, *target, aoe.Radius) {
		out = append(out, w.Map.TileContent[w.Map.IndexOf(p)]...)
	}
	return out
}

// ValidateRangedTarget проверяет, что точка видна стрелку, лежит в пределах дальности
// и до нее есть прямая линия без стен.
func ValidateRangedTarget(w *domain.World, user types.EntityID, target domain.Position, rangeLimit int) error {
	vs, ok := w.Viewsheds.Get(user)
	if !ok || !vs.CanSee(target) {
		return ErrTargetNotVisible
	}
	pos, ok := w.Positions.Get(user)
	if !ok {
		return ErrTargetNotVisible
	}
	if pos.DistanceTo(target) > float64(rangeLimit) {
		return ErrTargetOutOfRange
	}
	if !HasLineOfSight(w.Map, *pos, target) {
		return ErrNoLineOfFire
	}
	return nil
}

// TargetableTiles - все клетки, по которым можно выстрелить (для подсветки на клиенте).
func TargetableTiles(w *domain.World, user types.EntityID, rangeLimit int) []domain.Position {
	vs, ok := w.Viewsheds.Get(user)
	if !ok {
		return nil
	}
	var out []domain.Position
	for _, p := range vs.Tiles {
		if ValidateRangedTarget(w, user, p, rangeLimit) == nil {
			out = append(out, p)
		}
	}
	return out
}
