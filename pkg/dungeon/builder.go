package dungeon

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/utils"
)

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	depth   int
	width   int
	height  int
	minSize int
	maxSize int
	rooms   []domain.Rect
	gameMap *domain.SpatialMap
	dice    *utils.Dice
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, dice *utils.Dice) *LevelBuilder {
	p := DefaultParams()
	return &LevelBuilder{
		depth:   depth,
		width:   p.Width,
		height:  p.Height,
		minSize: p.MinRoomSize,
		maxSize: p.MaxRoomSize,
		dice:    dice,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithRoomSize задает диапазон [min, max) сторон комнаты.
func (b *LevelBuilder) WithRoomSize(min, max int) *LevelBuilder {
	b.minSize = min
	b.maxSize = max
	return b
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	// Карта изначально целиком из стен
	b.gameMap = domain.NewSpatialMap(b.width, b.height, b.depth)

	b.rooms = make([]domain.Rect, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		w := b.dice.Range(b.minSize, b.maxSize)
		h := b.dice.Range(b.minSize, b.maxSize)
		// Пол комнаты занимает X+1..X+W, поэтому X+W должно оставаться внутри рамки.
		x := b.dice.Range(0, b.width-w-1)
		y := b.dice.Range(0, b.height-h-1)

		newRoom := domain.Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.gameMap, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prev := b.rooms[len(b.rooms)-1].Center()
			curr := newRoom.Center()

			if b.dice.Chance(50) {
				createHCorridor(b.gameMap, prev.X, curr.X, prev.Y)
				createVCorridor(b.gameMap, prev.Y, curr.Y, curr.X)
			} else {
				createVCorridor(b.gameMap, prev.Y, curr.Y, prev.X)
				createHCorridor(b.gameMap, prev.X, curr.X, curr.Y)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// PlaceDownStairs ставит лестницу вниз в центр последней комнаты.
func (b *LevelBuilder) PlaceDownStairs() *LevelBuilder {
	if b.gameMap == nil || len(b.rooms) == 0 {
		return b
	}
	c := b.rooms[len(b.rooms)-1].Center()
	b.gameMap.Tiles[b.gameMap.IndexOf(c)] = domain.TileDownStairs
	return b
}

// Build собирает и возвращает готовую карту
func (b *LevelBuilder) Build() *domain.SpatialMap {
	if b.gameMap == nil {
		b.gameMap = domain.NewSpatialMap(b.width, b.height, b.depth)
	}
	b.gameMap.Rooms = b.rooms
	b.gameMap.PopulateBlocked()
	return b.gameMap
}

func createRoom(m *domain.SpatialMap, room domain.Rect) {
	for y := room.Y + 1; y <= room.Y+room.H; y++ {
		for x := room.X + 1; x <= room.X+room.W; x++ {
			if m.InInterior(x, y) {
				m.Tiles[m.Index(x, y)] = domain.TileFloor
			}
		}
	}
}

func createHCorridor(m *domain.SpatialMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if m.InInterior(x, y) {
			m.Tiles[m.Index(x, y)] = domain.TileFloor
		}
	}
}

func createVCorridor(m *domain.SpatialMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if m.InInterior(x, y) {
			m.Tiles[m.Index(x, y)] = domain.TileFloor
		}
	}
}
