package domain

import (
	"rogue-server/internal/core/types"
)

// World - явный контекст симуляции. Передается в каждую фазу по указателю;
// глобального состояния нет.
type World struct {
	Registry *types.Registry
	Map      *SpatialMap
	PlayerID types.EntityID
	State    RunState
	Log      GameLog

	// Компоненты
	Positions        *Store[Position]
	CombatStats      *Store[CombatStats]
	Viewsheds        *Store[Viewshed]
	Players          *Store[Player]
	Monsters         *Store[Monster]
	Names            *Store[Name]
	BlocksTile       *Store[BlocksTile]
	Renderables      *Store[Renderable]
	Items            *Store[Item]
	Consumables      *Store[Consumable]
	ProvidesHealing  *Store[ProvidesHealing]
	InflictsDamage   *Store[InflictsDamage]
	Ranged           *Store[Ranged]
	AreaOfEffect     *Store[AreaOfEffect]
	InflictsConfuse  *Store[InflictsConfusion]
	Confusion        *Store[Confusion]
	Equippable       *Store[Equippable]
	Equipped         *Store[Equipped]
	InBackpack       *Store[InBackpack]
	MeleePowerBonus  *Store[MeleePowerBonus]
	DefenseBonus     *Store[DefenseBonus]
	InflictsTeleport *Store[InflictsTeleportSymmetrically]

	// Намерения
	SufferDamage      *Store[SufferDamage]
	WantsToMelee      *Store[WantsToMelee]
	WantsToPickup     *Store[WantsToPickupItem]
	WantsToUse        *Store[WantsToUseItem]
	WantsToDrop       *Store[WantsToDropItem]
	WantsToRemove     *Store[WantsToRemoveItem]
	TeleportsSymmetry *Store[TeleportsSymmetrically]

	stores  []AnyStore
	pending []types.EntityID
	queued  map[types.EntityID]struct{}
}

func NewWorld(m *SpatialMap) *World {
	w := &World{
		Registry: types.NewRegistry(),
		Map:      m,
		State:    StatePreTurn,

		Positions:        NewStore[Position](),
		CombatStats:      NewStore[CombatStats](),
		Viewsheds:        NewStore[Viewshed](),
		Players:          NewStore[Player](),
		Monsters:         NewStore[Monster](),
		Names:            NewStore[Name](),
		BlocksTile:       NewStore[BlocksTile](),
		Renderables:      NewStore[Renderable](),
		Items:            NewStore[Item](),
		Consumables:      NewStore[Consumable](),
		ProvidesHealing:  NewStore[ProvidesHealing](),
		InflictsDamage:   NewStore[InflictsDamage](),
		Ranged:           NewStore[Ranged](),
		AreaOfEffect:     NewStore[AreaOfEffect](),
		InflictsConfuse:  NewStore[InflictsConfusion](),
		Confusion:        NewStore[Confusion](),
		Equippable:       NewStore[Equippable](),
		Equipped:         NewStore[Equipped](),
		InBackpack:       NewStore[InBackpack](),
		MeleePowerBonus:  NewStore[MeleePowerBonus](),
		DefenseBonus:     NewStore[DefenseBonus](),
		InflictsTeleport: NewStore[InflictsTeleportSymmetrically](),

		SufferDamage:      NewStore[SufferDamage](),
		WantsToMelee:      NewStore[WantsToMelee](),
		WantsToPickup:     NewStore[WantsToPickupItem](),
		WantsToUse:        NewStore[WantsToUseItem](),
		WantsToDrop:       NewStore[WantsToDropItem](),
		WantsToRemove:     NewStore[WantsToRemoveItem](),
		TeleportsSymmetry: NewStore[TeleportsSymmetrically](),

		queued: make(map[types.EntityID]struct{}),
	}

	w.stores = []AnyStore{
		w.Positions, w.CombatStats, w.Viewsheds, w.Players, w.Monsters, w.Names,
		w.BlocksTile, w.Renderables, w.Items, w.Consumables, w.ProvidesHealing,
		w.InflictsDamage, w.Ranged, w.AreaOfEffect, w.InflictsConfuse, w.Confusion,
		w.Equippable, w.Equipped, w.InBackpack, w.MeleePowerBonus, w.DefenseBonus,
		w.InflictsTeleport,
		w.SufferDamage, w.WantsToMelee, w.WantsToPickup, w.WantsToUse, w.WantsToDrop,
		w.WantsToRemove, w.TeleportsSymmetry,
	}
	return w
}

// CreateEntity выделяет новую пустую сущность.
func (w *World) CreateEntity() types.EntityID {
	return w.Registry.Create()
}

func (w *World) Alive(id types.EntityID) bool {
	return w.Registry.Alive(id)
}

// QueueDelete откладывает удаление до конца тика. Повторная постановка игнорируется.
func (w *World) QueueDelete(id types.EntityID) {
	if _, ok := w.queued[id]; ok {
		return
	}
	w.queued[id] = struct{}{}
	w.pending = append(w.pending, id)
}

// IsQueuedForDeletion сообщает, ждет ли сущность удаления.
func (w *World) IsQueuedForDeletion(id types.EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// Maintain выполняет отложенные удаления. Возвращает удаленные сущности.
func (w *World) Maintain() []types.EntityID {
	if len(w.pending) == 0 {
		return nil
	}
	deleted := make([]types.EntityID, 0, len(w.pending))
	for _, id := range w.pending {
		if w.DeleteEntity(id) {
			deleted = append(deleted, id)
		}
	}
	w.pending = w.pending[:0]
	w.queued = make(map[types.EntityID]struct{})
	return deleted
}

// DeleteEntity немедленно удаляет сущность из всех хранилищ.
// Нельзя вызывать из фаз во время обхода хранилищ: для этого есть QueueDelete.
func (w *World) DeleteEntity(id types.EntityID) bool {
	if !w.Registry.Alive(id) {
		return false
	}
	if pos, ok := w.Positions.Get(id); ok && w.Map.InBounds(pos.X, pos.Y) {
		w.Map.RemoveContent(w.Map.IndexOf(*pos), id)
	}
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.Registry.Destroy(id)
	if id == w.PlayerID {
		w.PlayerID = types.NilEntityID
	}
	return true
}

// Player возвращает игрока, если он жив.
func (w *World) Player() (types.EntityID, bool) {
	if w.PlayerID.IsNil() || !w.Registry.Alive(w.PlayerID) {
		return types.NilEntityID, false
	}
	return w.PlayerID, true
}

// PlayerPosition - позиция игрока, если она есть.
func (w *World) PlayerPosition() (Position, bool) {
	id, ok := w.Player()
	if !ok {
		return Position{}, false
	}
	pos, ok := w.Positions.Get(id)
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// NameOf возвращает имя для игрового лога.
func (w *World) NameOf(id types.EntityID) string {
	if n, ok := w.Names.Get(id); ok && n.Name != "" {
		return n.Name
	}
	return "Something"
}

// Occupants собирает всех, у кого есть позиция, для перестроения индекса занятости.
func (w *World) Occupants() []Occupant {
	ids := w.Positions.Entities()
	out := make([]Occupant, 0, len(ids))
	for _, id := range ids {
		pos, _ := w.Positions.Get(id)
		out = append(out, Occupant{ID: id, Pos: *pos, Blocks: w.BlocksTile.Has(id)})
	}
	return out
}

// BackpackOf - предметы в рюкзаке владельца (в порядке подбора).
func (w *World) BackpackOf(owner types.EntityID) []types.EntityID {
	var out []types.EntityID
	for _, id := range w.InBackpack.Entities() {
		if bp, _ := w.InBackpack.Get(id); bp.Owner == owner {
			out = append(out, id)
		}
	}
	return out
}

// EquippedBy - предметы, надетые владельцем.
func (w *World) EquippedBy(owner types.EntityID) []types.EntityID {
	var out []types.EntityID
	for _, id := range w.Equipped.Entities() {
		if eq, _ := w.Equipped.Get(id); eq.Owner == owner {
			out = append(out, id)
		}
	}
	return out
}

// ClearIntents очищает все входящие ящики (используется при смене уровня).
func (w *World) ClearIntents() {
	w.SufferDamage.Clear()
	w.WantsToMelee.Clear()
	w.WantsToPickup.Clear()
	w.WantsToUse.Clear()
	w.WantsToDrop.Clear()
	w.WantsToRemove.Clear()
	w.TeleportsSymmetry.Clear()
}
