package dungeon

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/core/types/enums"
	"rogue-server/internal/domain"
	"rogue-server/pkg/utils"
)

// Порядок отрисовки: меньше - поверх.
const (
	renderOrderPlayer  = 0
	renderOrderMonster = 1
	renderOrderItem    = 2
)

const maxSpawnsPerRoom = 4

// MonsterTemplate определяет шаблон для создания монстра
type MonsterTemplate struct {
	Name    string
	Glyph   types.Glyph
	HP      int
	Defense int
	Power   int
}

// Spawn создает монстра из шаблона на заданной позиции
func (t MonsterTemplate) Spawn(w *domain.World, pos domain.Position, vision int) types.EntityID {
	id := w.CreateEntity()
	w.Positions.Insert(id, pos)
	w.Renderables.Insert(id, domain.Renderable{Glyph: t.Glyph, RenderOrder: renderOrderMonster})
	w.Viewsheds.Insert(id, domain.NewViewshed(vision))
	w.Monsters.Insert(id, domain.Monster{})
	w.Names.Insert(id, domain.Name{Name: t.Name})
	w.BlocksTile.Insert(id, domain.BlocksTile{})
	w.CombatStats.Insert(id, domain.CombatStats{
		MaxHP:   t.HP,
		HP:      t.HP,
		Defense: t.Defense,
		Power:   t.Power,
	})
	return id
}

// --- ВРАГИ ---

var Goblin = MonsterTemplate{
	Name:    "Goblin",
	Glyph:   types.MakeGlyph(0xFF0000, 'g'),
	HP:      16,
	Defense: 1,
	Power:   4,
}

var Orc = MonsterTemplate{
	Name:    "Orc",
	Glyph:   types.MakeGlyph(0xFF0000, 'o'),
	HP:      16,
	Defense: 1,
	Power:   4,
}

// MonsterTemplates - карта всех доступных врагов
var MonsterTemplates = map[string]MonsterTemplate{
	"goblin": Goblin,
	"orc":    Orc,
}

// --- ПРЕДМЕТЫ ---

// ItemTemplate определяет шаблон предмета. Нулевые поля означают
// отсутствие соответствующего компонента.
type ItemTemplate struct {
	Name  string
	Glyph types.Glyph

	Consumable bool
	Heal       int
	Damage     int
	Range      int
	Radius     int
	Confusion  int
	Teleport   bool

	Slot         enums.EquipmentSlot
	PowerBonus   int
	DefenseBonus int
}

// Spawn создает предмет-сущность из шаблона
func (t ItemTemplate) Spawn(w *domain.World, pos domain.Position) types.EntityID {
	id := w.CreateEntity()
	w.Positions.Insert(id, pos)
	w.Renderables.Insert(id, domain.Renderable{Glyph: t.Glyph, RenderOrder: renderOrderItem})
	w.Names.Insert(id, domain.Name{Name: t.Name})
	w.Items.Insert(id, domain.Item{})

	if t.Consumable {
		w.Consumables.Insert(id, domain.Consumable{})
	}
	if t.Heal > 0 {
		w.ProvidesHealing.Insert(id, domain.ProvidesHealing{HealAmount: t.Heal})
	}
	if t.Damage > 0 {
		w.InflictsDamage.Insert(id, domain.InflictsDamage{Damage: t.Damage})
	}
	if t.Range > 0 {
		w.Ranged.Insert(id, domain.Ranged{Range: t.Range})
	}
	if t.Radius > 0 {
		w.AreaOfEffect.Insert(id, domain.AreaOfEffect{Radius: t.Radius})
	}
	if t.Confusion > 0 {
		w.InflictsConfuse.Insert(id, domain.InflictsConfusion{Turns: t.Confusion})
	}
	if t.Teleport {
		w.InflictsTeleport.Insert(id, domain.InflictsTeleportSymmetrically{})
	}
	if t.Slot != enums.SlotUnknown {
		w.Equippable.Insert(id, domain.Equippable{Slot: t.Slot})
	}
	if t.PowerBonus > 0 {
		w.MeleePowerBonus.Insert(id, domain.MeleePowerBonus{Power: t.PowerBonus})
	}
	if t.DefenseBonus > 0 {
		w.DefenseBonus.Insert(id, domain.DefenseBonus{Defense: t.DefenseBonus})
	}
	return id
}

// --- ЗЕЛЬЯ И СВИТКИ ---

var HealthPotion = ItemTemplate{
	Name:       "Health Potion",
	Glyph:      types.MakeGlyph(0xFF00FF, '¡'),
	Consumable: true,
	Heal:       8,
}

var MagicMissileScroll = ItemTemplate{
	Name:       "Magic Missile Scroll",
	Glyph:      types.MakeGlyph(0x00FFFF, ')'),
	Consumable: true,
	Damage:     8,
	Range:      6,
}

var FireballScroll = ItemTemplate{
	Name:       "Fireball Scroll",
	Glyph:      types.MakeGlyph(0xFFA500, ')'),
	Consumable: true,
	Damage:     20,
	Range:      6,
	Radius:     3,
}

var ConfusionScroll = ItemTemplate{
	Name:       "Confusion Scroll",
	Glyph:      types.MakeGlyph(0xFFC0CB, ')'),
	Consumable: true,
	Range:      6,
	Confusion:  4,
}

var TeleportScroll = ItemTemplate{
	Name:       "Symmetric Teleport Scroll",
	Glyph:      types.MakeGlyph(0x8A2BE2, ')'),
	Consumable: true,
	Range:      6,
	Teleport:   true,
}

// --- СНАРЯЖЕНИЕ ---

var Dagger = ItemTemplate{
	Name:       "Dagger",
	Glyph:      types.MakeGlyph(0x00FFFF, '/'),
	Slot:       enums.SlotMelee,
	PowerBonus: 2,
}

var Shield = ItemTemplate{
	Name:         "Shield",
	Glyph:        types.MakeGlyph(0x00FFFF, '('),
	Slot:         enums.SlotShield,
	DefenseBonus: 1,
}

// ItemTemplates - карта всех доступных предметов
var ItemTemplates = map[string]ItemTemplate{
	"health_potion": HealthPotion,
	"magic_missile": MagicMissileScroll,
	"fireball":      FireballScroll,
	"confusion":     ConfusionScroll,
	"teleport":      TeleportScroll,
	"dagger":        Dagger,
	"shield":        Shield,
}

// --- ТАБЛИЦА СПАВНА ---

type spawnEntry struct {
	Name   string
	Weight int
}

// Table - взвешенная таблица спавна. Порядок записей фиксирован.
type Table struct {
	entries []spawnEntry
	total   int
}

func (t *Table) Add(name string, weight int) *Table {
	if weight > 0 {
		t.entries = append(t.entries, spawnEntry{Name: name, Weight: weight})
		t.total += weight
	}
	return t
}

// Roll выбирает имя шаблона. Пустая таблица дает "".
func (t *Table) Roll(dice *utils.Dice) string {
	if t.total == 0 {
		return ""
	}
	roll := dice.Range(0, t.total)
	for _, e := range t.entries {
		if roll < e.Weight {
			return e.Name
		}
		roll -= e.Weight
	}
	return ""
}

// SpawnTable - что и с каким весом появляется на глубине depth.
// Орки и сильные свитки чаще встречаются глубже.
func SpawnTable(depth int) *Table {
	t := &Table{}
	return t.
		Add("goblin", 10).
		Add("orc", 1+depth).
		Add("health_potion", 7).
		Add("fireball", 2+depth).
		Add("confusion", 2+depth).
		Add("magic_missile", 4).
		Add("teleport", 2).
		Add("dagger", 3).
		Add("shield", 3)
}
