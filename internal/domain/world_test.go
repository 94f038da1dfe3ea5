package domain

import (
	"testing"

	"rogue-server/internal/core/types"
)

func newTestWorld() *World {
	m := NewSpatialMap(10, 10, 1)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			m.Tiles[m.Index(x, y)] = TileFloor
		}
	}
	return NewWorld(m)
}

func TestWorld_DeferredDeletion(t *testing.T) {
	w := newTestWorld()

	goblin := w.CreateEntity()
	w.Positions.Insert(goblin, Position{X: 5, Y: 5})
	w.Names.Insert(goblin, Name{Name: "Goblin"})
	w.CombatStats.Insert(goblin, CombatStats{MaxHP: 10})
	w.Map.RebuildOccupancy(w.Occupants())

	w.QueueDelete(goblin)
	w.QueueDelete(goblin)

	if !w.Alive(goblin) {
		t.Fatalf("entity must stay alive until Maintain")
	}
	if !w.IsQueuedForDeletion(goblin) {
		t.Errorf("entity must be reported as queued")
	}

	deleted := w.Maintain()
	if len(deleted) != 1 || deleted[0] != goblin {
		t.Fatalf("Maintain() = %v, want [%v]", deleted, goblin)
	}
	if w.Alive(goblin) {
		t.Errorf("entity alive after Maintain")
	}
	if w.Names.Has(goblin) || w.Positions.Has(goblin) || w.CombatStats.Has(goblin) {
		t.Errorf("components leaked after deletion")
	}
	if len(w.Map.TileContent[w.Map.Index(5, 5)]) != 0 {
		t.Errorf("occupancy still references deleted entity")
	}
	if len(w.Maintain()) != 0 {
		t.Errorf("second Maintain must be a no-op")
	}
}

func TestWorld_StaleIDDoesNotSeeNewComponents(t *testing.T) {
	w := newTestWorld()

	old := w.CreateEntity()
	w.Names.Insert(old, Name{Name: "Old"})
	w.DeleteEntity(old)

	fresh := w.CreateEntity()
	w.Names.Insert(fresh, Name{Name: "Fresh"})

	if fresh.Index() != old.Index() {
		t.Fatalf("slot should be reused")
	}
	if w.Names.Has(old) {
		t.Errorf("stale id resolved to a component of the new entity")
	}
}

func TestWorld_BackpackAndEquipment(t *testing.T) {
	w := newTestWorld()
	owner := w.CreateEntity()
	other := w.CreateEntity()

	potion := w.CreateEntity()
	sword := w.CreateEntity()
	foreign := w.CreateEntity()

	w.InBackpack.Insert(potion, InBackpack{Owner: owner})
	w.Equipped.Insert(sword, Equipped{Owner: owner})
	w.InBackpack.Insert(foreign, InBackpack{Owner: other})

	if got := w.BackpackOf(owner); len(got) != 1 || got[0] != potion {
		t.Errorf("BackpackOf() = %v, want [%v]", got, potion)
	}
	if got := w.EquippedBy(owner); len(got) != 1 || got[0] != sword {
		t.Errorf("EquippedBy() = %v, want [%v]", got, sword)
	}
}

func TestWorld_PlayerHandleClearedOnDelete(t *testing.T) {
	w := newTestWorld()
	w.PlayerID = w.CreateEntity()

	if _, ok := w.Player(); !ok {
		t.Fatalf("player must be resolvable")
	}
	w.DeleteEntity(w.PlayerID)
	if id, ok := w.Player(); ok || id != types.NilEntityID {
		t.Errorf("Player() = %v, %v after deletion", id, ok)
	}
}
