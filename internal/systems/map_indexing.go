package systems

import (
	"rogue-server/internal/domain"
)

// OccupancyIndexPhase полностью перестраивает Blocked и TileContent
// по текущим позициям. Точечные патчи прошлого тика при этом забываются.
func OccupancyIndexPhase(w *domain.World) {
	w.Map.RebuildOccupancy(w.Occupants())
}
