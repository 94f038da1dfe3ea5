package systems

import (
	"testing"

	"rogue-server/internal/domain"
)

func TestTryMove(t *testing.T) {
	w := newTestWorld(10, 10)
	player := spawnPlayer(w, domain.Position{X: 1, Y: 1}, domain.CombatStats{MaxHP: 30, HP: 30, Power: 5})
	orc := spawnMonster(w, "Orc", domain.Position{X: 3, Y: 2}, domain.CombatStats{MaxHP: 10, HP: 10})
	prepare(w)

	t.Run("Border is ignored", func(t *testing.T) {
		res := TryMove(w, player, -1, 0)
		if res.HasMoved || !res.IsWall {
			t.Errorf("move into the border must be refused: %+v", res)
		}
		pos, _ := w.Positions.Get(player)
		if *pos != (domain.Position{X: 1, Y: 1}) {
			t.Errorf("player moved to %v", *pos)
		}
	})

	t.Run("Free tile moves and dirties viewshed", func(t *testing.T) {
		vs, _ := w.Viewsheds.Get(player)
		vs.Dirty = false

		res := TryMove(w, player, 1, 1)
		if !res.HasMoved {
			t.Fatalf("move refused: %+v", res)
		}
		pos, _ := w.Positions.Get(player)
		if *pos != (domain.Position{X: 2, Y: 2}) {
			t.Errorf("player at %v, want {2 2}", *pos)
		}
		if !vs.Dirty {
			t.Errorf("viewshed must be dirty after a move")
		}
		if !w.Map.IsBlocked(w.Map.Index(2, 2)) || w.Map.IsBlocked(w.Map.Index(1, 1)) {
			t.Errorf("occupancy not patched")
		}
	})

	t.Run("Occupied tile becomes a bump attack", func(t *testing.T) {
		res := TryMove(w, player, 1, 0)
		if res.BlockedBy != orc {
			t.Fatalf("BlockedBy = %v, want %v", res.BlockedBy, orc)
		}
		intent, ok := w.WantsToMelee.Get(player)
		if !ok || intent.Target != orc {
			t.Errorf("bump must queue a melee intent on the orc")
		}
	})
}
