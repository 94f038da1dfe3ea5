package dungeon

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"
	"rogue-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Params - параметры генерации уровней и стартовые характеристики игрока.
type Params struct {
	Width       int
	Height      int
	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int

	PlayerHP      int
	PlayerDefense int
	PlayerPower   int
	PlayerVision  int
	MonsterVision int
}

// DefaultParams - значения по умолчанию (совпадают с engine.NewConfig).
func DefaultParams() Params {
	return Params{
		Width:         80,
		Height:        43,
		MaxRooms:      30,
		MinRoomSize:   6,
		MaxRoomSize:   10,
		PlayerHP:      30,
		PlayerDefense: 2,
		PlayerPower:   5,
		PlayerVision:  8,
		MonsterVision: 8,
	}
}

// Generator строит уровни "комнаты и коридоры" и заселяет их.
// Все броски идут через один Dice: одинаковый сид и одинаковый порядок
// вызовов дают одинаковые уровни (на этом держится воспроизведение реплеев).
type Generator struct {
	dice   *utils.Dice
	params Params
}

func NewGenerator(seed int64, params Params) *Generator {
	return &Generator{
		dice:   utils.NewDice(seed),
		params: params,
	}
}

// NewMap создает новый уровень
func (g *Generator) NewMap(depth int) *domain.SpatialMap {
	b := NewLevel(depth, g.dice).
		WithSize(g.params.Width, g.params.Height).
		WithRoomSize(g.params.MinRoomSize, g.params.MaxRoomSize).
		WithRooms(g.params.MaxRooms).
		PlaceDownStairs()

	m := b.Build()

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"depth":     depth,
		"rooms":     len(m.Rooms),
	}).Debug("Level generated")

	return m
}

// SpawnRoom заселяет комнату монстрами и предметами по таблице спавна глубины depth.
func (g *Generator) SpawnRoom(w *domain.World, room domain.Rect, depth int) {
	table := SpawnTable(depth)

	// 1d(maxSpawns+3) + (depth-1) - 3: на первых уровнях часть комнат пустая.
	count := g.dice.Roll(1, maxSpawnsPerRoom+3) + (depth - 1) - 3
	if count <= 0 {
		return
	}

	taken := make(map[domain.Position]struct{}, count)
	for i := 0; i < count; i++ {
		pos, ok := g.freeTileIn(w.Map, room, taken)
		if !ok {
			break
		}
		taken[pos] = struct{}{}

		name := table.Roll(g.dice)
		if name == "" {
			continue
		}
		g.spawnNamed(w, name, pos)
	}
}

// SpawnPlayer создает игрока со стартовыми характеристиками.
func (g *Generator) SpawnPlayer(w *domain.World, pos domain.Position) types.EntityID {
	return CreatePlayer(w, pos, g.params)
}

func (g *Generator) spawnNamed(w *domain.World, name string, pos domain.Position) {
	if t, ok := MonsterTemplates[name]; ok {
		t.Spawn(w, pos, g.params.MonsterVision)
		return
	}
	if t, ok := ItemTemplates[name]; ok {
		t.Spawn(w, pos)
		return
	}
	logger.Log.WithFields(logrus.Fields{"component": "dungeon", "template": name}).Warn("Unknown spawn template")
}

// freeTileIn ищет клетку пола внутри комнаты, еще не занятую спавном (максимум 20 попыток).
func (g *Generator) freeTileIn(m *domain.SpatialMap, room domain.Rect, taken map[domain.Position]struct{}) (domain.Position, bool) {
	for attempt := 0; attempt < 20; attempt++ {
		p := domain.Position{
			X: room.X + 1 + g.dice.Range(0, room.W),
			Y: room.Y + 1 + g.dice.Range(0, room.H),
		}
		if !m.InBounds(p.X, p.Y) || m.Tiles[m.IndexOf(p)] == domain.TileWall {
			continue
		}
		if _, busy := taken[p]; busy {
			continue
		}
		return p, true
	}
	return domain.Position{}, false
}
