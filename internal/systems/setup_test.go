package systems

import (
	"os"
	"testing"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// newTestWorld - карта w×h: рамка из стен, внутри пол.
func newTestWorld(width, height int) *domain.World {
	m := domain.NewSpatialMap(width, height, 1)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			m.Tiles[m.Index(x, y)] = domain.TileFloor
		}
	}
	m.PopulateBlocked()
	return domain.NewWorld(m)
}

func setWall(w *domain.World, x, y int) {
	w.Map.Tiles[w.Map.Index(x, y)] = domain.TileWall
	w.Map.Blocked[w.Map.Index(x, y)] = true
}

func spawnPlayer(w *domain.World, pos domain.Position, stats domain.CombatStats) types.EntityID {
	id := w.CreateEntity()
	w.PlayerID = id
	w.Players.Insert(id, domain.Player{})
	w.Names.Insert(id, domain.Name{Name: "Player"})
	w.Positions.Insert(id, pos)
	w.BlocksTile.Insert(id, domain.BlocksTile{})
	w.CombatStats.Insert(id, stats)
	w.Viewsheds.Insert(id, domain.NewViewshed(8))
	return id
}

func spawnMonster(w *domain.World, name string, pos domain.Position, stats domain.CombatStats) types.EntityID {
	id := w.CreateEntity()
	w.Monsters.Insert(id, domain.Monster{})
	w.Names.Insert(id, domain.Name{Name: name})
	w.Positions.Insert(id, pos)
	w.BlocksTile.Insert(id, domain.BlocksTile{})
	w.CombatStats.Insert(id, stats)
	w.Viewsheds.Insert(id, domain.NewViewshed(8))
	return id
}

func spawnItem(w *domain.World, name string) types.EntityID {
	id := w.CreateEntity()
	w.Items.Insert(id, domain.Item{})
	w.Names.Insert(id, domain.Name{Name: name})
	return id
}

// prepare выполняет фазы 2 и 3, как в начале тика.
func prepare(w *domain.World) {
	VisibilityPhase(w)
	OccupancyIndexPhase(w)
}

func hpOf(t *testing.T, w *domain.World, id types.EntityID) int {
	t.Helper()
	stats, ok := w.CombatStats.Get(id)
	if !ok {
		t.Fatalf("entity %v has no CombatStats", id)
	}
	return stats.HP
}
