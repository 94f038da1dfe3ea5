package domain

import (
	"math"

	"rogue-server/internal/core/types"

	"github.com/zyedidia/generic/mapset"
)

// TileType - тип клетки карты
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
	TileDownStairs
)

var tileTypeToString = map[TileType]string{
	TileWall:       "WALL",
	TileFloor:      "FLOOR",
	TileDownStairs: "DOWN_STAIRS",
}

func (t TileType) String() string {
	if val, ok := tileTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// Rect - прямоугольная комната
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Exit - переход в соседнюю клетку со стоимостью шага
type Exit struct {
	Idx  int
	Cost float64
}

const (
	CostOrthogonal = 1.0
	CostDiagonal   = 1.45
)

// SpatialMap - общая карта уровня.
//
// Blocked и TileContent - производный кэш: OccupancyIndexPhase полностью
// перестраивает их каждый тик, остальные фазы лишь точечно патчат одну клетку.
type SpatialMap struct {
	Tiles       []TileType
	Width       int
	Height      int
	Blocked     []bool
	TileContent [][]types.EntityID
	Revealed    []bool
	Visible     []bool
	Bloodstains mapset.Set[int]
	Rooms       []Rect
	Depth       int
}

// NewSpatialMap создает карту, целиком залитую стенами.
func NewSpatialMap(width, height, depth int) *SpatialMap {
	n := width * height
	tiles := make([]TileType, n)
	for i := range tiles {
		tiles[i] = TileWall
	}
	return &SpatialMap{
		Tiles:       tiles,
		Width:       width,
		Height:      height,
		Blocked:     make([]bool, n),
		TileContent: make([][]types.EntityID, n),
		Revealed:    make([]bool, n),
		Visible:     make([]bool, n),
		Bloodstains: mapset.New[int](),
		Depth:       depth,
	}
}

// Index - индекс клетки (row-major, без проверки границ)
func (m *SpatialMap) Index(x, y int) int {
	return y*m.Width + x
}

func (m *SpatialMap) IndexOf(p Position) int {
	return m.Index(p.X, p.Y)
}

func (m *SpatialMap) XY(idx int) Position {
	return Position{X: idx % m.Width, Y: idx / m.Width}
}

func (m *SpatialMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// InInterior - клетка не лежит на внешней рамке карты
func (m *SpatialMap) InInterior(x, y int) bool {
	return x >= 1 && x < m.Width-1 && y >= 1 && y < m.Height-1
}

func (m *SpatialMap) IsBlocked(idx int) bool {
	return m.Blocked[idx]
}

// IsOpaque - стены перекрывают обзор
func (m *SpatialMap) IsOpaque(idx int) bool {
	return m.Tiles[idx] == TileWall
}

// IsWalkable - стоимость шага конечна: клетка в границах и не заблокирована
func (m *SpatialMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return !m.Blocked[m.Index(x, y)]
}

// PopulateBlocked выставляет блокировку только по стенам.
func (m *SpatialMap) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = t == TileWall
	}
}

// ClearContentIndex опустошает списки обитателей клеток.
func (m *SpatialMap) ClearContentIndex() {
	for i := range m.TileContent {
		m.TileContent[i] = m.TileContent[i][:0]
	}
}

// Occupant - запись для перестроения индекса занятости
type Occupant struct {
	ID     types.EntityID
	Pos    Position
	Blocks bool
}

// RebuildOccupancy полностью перестраивает Blocked и TileContent.
// После вызова TileContent[idx] содержит ровно тех, чья позиция указывает на idx.
func (m *SpatialMap) RebuildOccupancy(occupants []Occupant) {
	m.PopulateBlocked()
	m.ClearContentIndex()

	for _, o := range occupants {
		if !m.InBounds(o.Pos.X, o.Pos.Y) {
			continue
		}
		idx := m.IndexOf(o.Pos)
		if o.Blocks {
			m.Blocked[idx] = true
		}
		m.TileContent[idx] = append(m.TileContent[idx], o.ID)
	}
}

// RemoveContent убирает сущность из списка обитателей клетки.
func (m *SpatialMap) RemoveContent(idx int, id types.EntityID) {
	content := m.TileContent[idx]
	for i, other := range content {
		if other == id {
			m.TileContent[idx] = append(content[:i], content[i+1:]...)
			return
		}
	}
}

// MoveBlocker точечно патчит индекс при перемещении блокирующей сущности.
func (m *SpatialMap) MoveBlocker(id types.EntityID, from, to Position) {
	fromIdx := m.IndexOf(from)
	toIdx := m.IndexOf(to)

	m.Blocked[fromIdx] = m.Tiles[fromIdx] == TileWall
	m.RemoveContent(fromIdx, id)

	m.Blocked[toIdx] = true
	m.TileContent[toIdx] = append(m.TileContent[toIdx], id)
}

// AvailableExits - 8 соседей с конечной стоимостью шага.
func (m *SpatialMap) AvailableExits(idx int) []Exit {
	exits := make([]Exit, 0, 8)
	p := m.XY(idx)

	for _, d := range neighbourOffsets {
		x, y := p.X+d.X, p.Y+d.Y
		if !m.IsWalkable(x, y) {
			continue
		}
		cost := CostOrthogonal
		if d.X != 0 && d.Y != 0 {
			cost = CostDiagonal
		}
		exits = append(exits, Exit{Idx: m.Index(x, y), Cost: cost})
	}
	return exits
}

// Distance - эвристика A*: евклидово расстояние между клетками
func (m *SpatialMap) Distance(a, b int) float64 {
	pa, pb := m.XY(a), m.XY(b)
	return math.Hypot(float64(pa.X-pb.X), float64(pa.Y-pb.Y))
}

// ResetVisible гасит видимость игрока перед пересчетом.
func (m *SpatialMap) ResetVisible() {
	for i := range m.Visible {
		m.Visible[i] = false
	}
}

func (m *SpatialMap) AddBloodstain(p Position) {
	if m.InBounds(p.X, p.Y) {
		m.Bloodstains.Put(m.IndexOf(p))
	}
}

var neighbourOffsets = [8]Position{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
}
