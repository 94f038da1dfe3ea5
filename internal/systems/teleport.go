package systems

import (
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TeleportPhase отражает жертв относительно позиции применившего,
// зафиксированной в момент применения: new = origin - (pos - origin).
func TeleportPhase(w *domain.World) {
	for _, id := range w.TeleportsSymmetry.Entities() {
		intent, _ := w.TeleportsSymmetry.Get(id)

		tpLogger := logger.Log.WithFields(logrus.Fields{
			"component": "teleport_system",
			"entity_id": id,
			"from_id":   intent.From,
			"origin":    intent.Origin,
		})

		pos, ok := w.Positions.Get(id)
		if !ok {
			tpLogger.Warn("Teleport skipped: entity has no position.")
			continue
		}

		dest := pos.MirrorAround(intent.Origin)
		if dest == *pos {
			continue
		}

		if !w.Map.InBounds(dest.X, dest.Y) || w.Map.Tiles[w.Map.IndexOf(dest)] == domain.TileWall {
			w.Log.Add(fmt.Sprintf("The teleport around %s fizzles.", w.NameOf(id)))
			tpLogger.WithField("dest", dest).Info("Teleport fizzled: destination is solid.")
			continue
		}
		if w.Map.IsBlocked(w.Map.IndexOf(dest)) {
			w.Log.Add(fmt.Sprintf("The teleport around %s fizzles.", w.NameOf(id)))
			tpLogger.WithField("dest", dest).Info("Teleport fizzled: destination is occupied.")
			continue
		}

		if w.BlocksTile.Has(id) {
			w.Map.MoveBlocker(id, *pos, dest)
		} else {
			w.Map.RemoveContent(w.Map.IndexOf(*pos), id)
			w.Map.TileContent[w.Map.IndexOf(dest)] = append(w.Map.TileContent[w.Map.IndexOf(dest)], id)
		}
		*pos = dest

		if vs, ok := w.Viewsheds.Get(id); ok {
			vs.Dirty = true
		}

		w.Log.Add(fmt.Sprintf("%s is flung to the other side.", w.NameOf(id)))
		tpLogger.WithField("dest", dest).Info("Entity teleported.")
	}
	w.TeleportsSymmetry.Clear()
}
