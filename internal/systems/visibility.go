package systems

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// VisibilityPhase пересчитывает "грязные" поля зрения.
// Чистые поля зрения не трогаются, поэтому повторный вызов без движения - no-op.
func VisibilityPhase(w *domain.World) {
	for _, id := range w.Viewsheds.Entities() {
		vs, _ := w.Viewsheds.Get(id)
		if !vs.Dirty {
			continue
		}
		pos, ok := w.Positions.Get(id)
		if !ok {
			continue
		}

		vs.Tiles = ComputeFOV(w.Map, *pos, vs.Range)
		vs.VisibleTiles = mapset.New[domain.Position]()
		for _, p := range vs.Tiles {
			vs.VisibleTiles.Put(p)
		}
		vs.Dirty = false

		if w.Players.Has(id) {
			revealPlayerView(w.Map, vs.Tiles)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "visibility_system",
			"entity_id": id,
			"visible":   len(vs.Tiles),
		}).Debug("Viewshed recomputed.")
	}
}

// revealPlayerView обновляет видимость игрока. Revealed только растет.
func revealPlayerView(m *domain.SpatialMap, tiles []domain.Position) {
	m.ResetVisible()
	for _, p := range tiles {
		idx := m.IndexOf(p)
		m.Visible[idx] = true
		m.Revealed[idx] = true
	}
}
