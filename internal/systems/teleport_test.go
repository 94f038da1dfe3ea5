package systems

import (
	"testing"

	"rogue-server/internal/domain"
)

func TestTeleport_MirrorsAroundCaster(t *testing.T) {
	w := newTestWorld(12, 12)
	player := spawnPlayer(w, domain.Position{X: 5, Y: 5}, domain.CombatStats{MaxHP: 30, HP: 30})
	orc := spawnMonster(w, "Orc", domain.Position{X: 7, Y: 6}, domain.CombatStats{MaxHP: 10, HP: 10})

	wand := giveItem(w, player, "Wand of Reflection")
	w.InflictsTeleport.Insert(wand, domain.InflictsTeleportSymmetrically{})
	w.Consumables.Insert(wand, domain.Consumable{})
	prepare(w)

	tile := domain.Position{X: 7, Y: 6}
	w.WantsToUse.Insert(player, domain.WantsToUseItem{Item: wand, Target: &tile})
	ItemEffectPhase(w)

	pos, _ := w.Positions.Get(orc)
	if *pos != (domain.Position{X: 3, Y: 4}) {
		t.Fatalf("orc at %v, want {3 4}", *pos)
	}
	if w.Map.IsBlocked(w.Map.Index(7, 6)) {
		t.Errorf("old tile must be released")
	}
	if !w.Map.IsBlocked(w.Map.Index(3, 4)) {
		t.Errorf("destination must be blocked")
	}
	found := false
	for _, id := range w.Map.TileContent[w.Map.Index(3, 4)] {
		if id == orc {
			found = true
		}
	}
	if !found {
		t.Errorf("orc missing from destination content")
	}
	if vs, _ := w.Viewsheds.Get(orc); !vs.Dirty {
		t.Errorf("viewshed must be dirty")
	}
	if w.TeleportsSymmetry.Len() != 0 {
		t.Errorf("teleport intents must be drained")
	}
	if !w.IsQueuedForDeletion(wand) {
		t.Errorf("wand must be consumed")
	}
}

func TestTeleport_UsesSnapshottedOrigin(t *testing.T) {
	w := newTestWorld(12, 12)
	player := spawnPlayer(w, domain.Position{X: 5, Y: 5}, domain.CombatStats{MaxHP: 30, HP: 30})
	orc := spawnMonster(w, "Orc", domain.Position{X: 6, Y: 5}, domain.CombatStats{MaxHP: 10, HP: 10})
	prepare(w)

	w.TeleportsSymmetry.Insert(orc, domain.TeleportsSymmetrically{From: player, Origin: domain.Position{X: 5, Y: 5}})

	// Заклинатель успел уйти до разрешения телепорта.
	ppos, _ := w.Positions.Get(player)
	*ppos = domain.Position{X: 9, Y: 9}
	OccupancyIndexPhase(w)

	TeleportPhase(w)

	pos, _ := w.Positions.Get(orc)
	if *pos != (domain.Position{X: 4, Y: 5}) {
		t.Errorf("orc at %v, want {4 5}", *pos)
	}
}

func TestTeleport_FizzlesIntoWall(t *testing.T) {
	w := newTestWorld(12, 12)
	player := spawnPlayer(w, domain.Position{X: 3, Y: 5}, domain.CombatStats{MaxHP: 30, HP: 30})
	orc := spawnMonster(w, "Orc", domain.Position{X: 6, Y: 5}, domain.CombatStats{MaxHP: 10, HP: 10})
	prepare(w)

	w.TeleportsSymmetry.Insert(orc, domain.TeleportsSymmetrically{From: player, Origin: domain.Position{X: 3, Y: 5}})
	TeleportPhase(w)

	pos, _ := w.Positions.Get(orc)
	if *pos != (domain.Position{X: 6, Y: 5}) {
		t.Errorf("orc moved to %v, teleport into the wall must fizzle", *pos)
	}
	if !w.Map.IsBlocked(w.Map.Index(6, 5)) {
		t.Errorf("orc tile must stay blocked")
	}
}
