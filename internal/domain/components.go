package domain

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/core/types/enums"

	"github.com/zyedidia/generic/mapset"
)

// --- КОМПОНЕНТЫ ---
// Любой компонент опционален. Способность сущности проверяется наличием
// компонента в соответствующем хранилище мира.

// Player - маркер игрока
type Player struct{}

// Monster - маркер монстра (участвует в DecisionPhase)
type Monster struct{}

// Name - отображаемое имя для игрового лога
type Name struct {
	Name string `json:"name"`
}

// BlocksTile - сущность занимает клетку (монстры, игрок)
type BlocksTile struct{}

// Renderable - Визуализация (Клиент)
type Renderable struct {
	Glyph       types.Glyph `json:"glyph"` // символ + цвет переднего плана
	BG          uint32      `json:"bg"`
	RenderOrder int         `json:"renderOrder"` // меньше - рисуется поверх
}

// Viewshed - поле зрения
type Viewshed struct {
	Range int  `json:"range"`
	Dirty bool `json:"-"` // флаг для пересчета

	// Tiles - видимые клетки в порядке обхода FOV (детерминированно).
	Tiles []Position `json:"-"`
	// VisibleTiles - те же клетки для быстрых проверок принадлежности.
	VisibleTiles mapset.Set[Position] `json:"-"`
}

// NewViewshed создает грязное поле зрения, которое пересчитается на ближайшем тике.
func NewViewshed(rng int) Viewshed {
	return Viewshed{
		Range:        rng,
		Dirty:        true,
		VisibleTiles: mapset.New[Position](),
	}
}

// CanSee проверяет, входит ли клетка в последнее вычисленное поле зрения.
func (v *Viewshed) CanSee(p Position) bool {
	return v.VisibleTiles.Has(p)
}

// --- ПРЕДМЕТЫ ---

// Item - маркер предмета
type Item struct{}

// Consumable - предмет исчезает после успешного применения
type Consumable struct{}

type ProvidesHealing struct {
	HealAmount int `json:"healAmount"`
}

type InflictsDamage struct {
	Damage int `json:"damage"`
}

// Ranged - предмет требует выбора цели на расстоянии Range
type Ranged struct {
	Range int `json:"range"`
}

type AreaOfEffect struct {
	Radius int `json:"radius"`
}

// InflictsConfusion - способность предмета накладывать замешательство
type InflictsConfusion struct {
	Turns int `json:"turns"`
}

// Confusion - статус на жертве: пропускает ходы, пока Turns > 0
type Confusion struct {
	Turns int `json:"turns"`
}

// InflictsTeleportSymmetrically - отражает цель относительно применившего
type InflictsTeleportSymmetrically struct{}

type Equippable struct {
	Slot enums.EquipmentSlot `json:"slot"`
}

type MeleePowerBonus struct {
	Power int `json:"power"`
}

type DefenseBonus struct {
	Defense int `json:"defense"`
}

// --- МЕСТОНАХОЖДЕНИЕ ПРЕДМЕТА ---
// У предмета одновременно не больше одного из: Position, InBackpack, Equipped.

type InBackpack struct {
	Owner types.EntityID `json:"owner"`
}

type Equipped struct {
	Owner types.EntityID      `json:"owner"`
	Slot  enums.EquipmentSlot `json:"slot"`
}
