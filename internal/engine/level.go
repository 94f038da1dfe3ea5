package engine

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

const welcomeMessage = "Welcome to the dungeon. Find the stairs and go deeper."

// newWorld строит новую партию: уровень 1, монстры и предметы, свежий игрок.
func (g *Game) newWorld() *domain.World {
	w := domain.NewWorld(g.dungeon.NewMap(1))
	g.populate(w)
	g.placePlayer(w, g.dungeon.SpawnPlayer(w, startPosition(w.Map)))
	w.Log.Reset(welcomeMessage)
	return w
}

// goToNextLevel удаляет все, кроме игрока и его вещей, и строит уровень глубже.
func (g *Game) goToNextLevel() {
	w := g.World
	player, ok := w.Player()
	if !ok {
		return
	}

	removed := 0
	for _, id := range w.Registry.Entities() {
		if g.keepOnLevelChange(player, id) {
			continue
		}
		if w.DeleteEntity(id) {
			removed++
		}
	}
	w.ClearIntents()

	depth := w.Map.Depth + 1
	w.Map = g.dungeon.NewMap(depth)
	g.populate(w)
	g.placePlayer(w, player)

	w.Log.Add("You descend to the next level.")

	logger.Log.WithFields(logrus.Fields{
		"component": "level",
		"depth":     depth,
		"removed":   removed,
		"rooms":     len(w.Map.Rooms),
	}).Info("Level changed")
}

func (g *Game) keepOnLevelChange(player, id types.EntityID) bool {
	w := g.World
	if id == player {
		return true
	}
	if bp, ok := w.InBackpack.Get(id); ok && bp.Owner == player {
		return true
	}
	if eq, ok := w.Equipped.Get(id); ok && eq.Owner == player {
		return true
	}
	return false
}

// resetAfterGameOver - полная очистка и новая партия с начала.
func (g *Game) resetAfterGameOver() {
	g.replaceWorld(g.newWorld(), 0)
	g.stale = false

	logger.Log.WithField("component", "level").Info("World reset")
}

// populate заселяет все комнаты, кроме первой (в ней появляется игрок).
func (g *Game) populate(w *domain.World) {
	rooms := w.Map.Rooms
	for i := 1; i < len(rooms); i++ {
		g.dungeon.SpawnRoom(w, rooms[i], w.Map.Depth)
	}
}

// placePlayer ставит игрока в центр первой комнаты и помечает его поле зрения.
func (g *Game) placePlayer(w *domain.World, player types.EntityID) {
	w.PlayerID = player
	start := startPosition(w.Map)

	if pos, ok := w.Positions.Get(player); ok {
		*pos = start
	} else {
		w.Positions.Insert(player, start)
	}
	if vs, ok := w.Viewsheds.Get(player); ok {
		vs.Dirty = true
	}
}

func startPosition(m *domain.SpatialMap) domain.Position {
	if len(m.Rooms) == 0 {
		return domain.Position{X: m.Width / 2, Y: m.Height / 2}
	}
	return m.Rooms[0].Center()
}
