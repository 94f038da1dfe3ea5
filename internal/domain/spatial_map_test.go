package domain

import (
	"testing"

	"rogue-server/internal/core/types"
)

func TestSpatialMap_RebuildOccupancyDropsStaleEntries(t *testing.T) {
	w := newTestWorld()
	m := w.Map

	orc := w.CreateEntity()
	w.Positions.Insert(orc, Position{X: 2, Y: 2})
	w.BlocksTile.Insert(orc, BlocksTile{})

	potion := w.CreateEntity()
	w.Positions.Insert(potion, Position{X: 2, Y: 2})

	m.RebuildOccupancy(w.Occupants())
	if !m.IsBlocked(m.Index(2, 2)) {
		t.Fatalf("tile with a blocker must be blocked")
	}
	if got := m.TileContent[m.Index(2, 2)]; len(got) != 2 {
		t.Fatalf("TileContent = %v, want 2 occupants", got)
	}

	pos, _ := w.Positions.Get(orc)
	*pos = Position{X: 3, Y: 2}
	m.RebuildOccupancy(w.Occupants())

	if m.IsBlocked(m.Index(2, 2)) {
		t.Errorf("old tile still blocked")
	}
	if got := m.TileContent[m.Index(2, 2)]; len(got) != 1 || got[0] != potion {
		t.Errorf("old tile content = %v, want [%v]", got, potion)
	}

	for idx, content := range m.TileContent {
		for _, id := range content {
			p, ok := w.Positions.Get(id)
			if !ok || m.IndexOf(*p) != idx {
				t.Errorf("stale occupant %v at %d", id, idx)
			}
		}
	}
}

func TestSpatialMap_WallsBlock(t *testing.T) {
	m := newTestWorld().Map
	m.PopulateBlocked()

	if !m.IsBlocked(m.Index(0, 0)) || !m.IsOpaque(m.Index(0, 0)) {
		t.Errorf("border wall must block and be opaque")
	}
	if m.IsBlocked(m.Index(4, 4)) || m.IsOpaque(m.Index(4, 4)) {
		t.Errorf("floor must be passable and transparent")
	}
}

func TestSpatialMap_AvailableExits(t *testing.T) {
	m := newTestWorld().Map
	m.PopulateBlocked()

	t.Run("Open floor has 8 exits", func(t *testing.T) {
		exits := m.AvailableExits(m.Index(4, 4))
		if len(exits) != 8 {
			t.Fatalf("len(exits) = %d, want 8", len(exits))
		}
		for _, e := range exits {
			p := m.XY(e.Idx)
			diagonal := p.X != 4 && p.Y != 4
			if diagonal && e.Cost != CostDiagonal {
				t.Errorf("diagonal exit %v cost %v", p, e.Cost)
			}
			if !diagonal && e.Cost != CostOrthogonal {
				t.Errorf("orthogonal exit %v cost %v", p, e.Cost)
			}
		}
	})

	t.Run("Corner skips walls", func(t *testing.T) {
		if exits := m.AvailableExits(m.Index(1, 1)); len(exits) != 3 {
			t.Errorf("len(exits) = %d, want 3", len(exits))
		}
	})
}

func TestSpatialMap_MoveBlocker(t *testing.T) {
	m := newTestWorld().Map
	m.PopulateBlocked()
	id := types.PackEntityID(1, 0)

	from, to := Position{X: 2, Y: 2}, Position{X: 3, Y: 3}
	m.Blocked[m.IndexOf(from)] = true
	m.TileContent[m.IndexOf(from)] = []types.EntityID{id}

	m.MoveBlocker(id, from, to)

	if m.IsBlocked(m.IndexOf(from)) || len(m.TileContent[m.IndexOf(from)]) != 0 {
		t.Errorf("origin tile not released")
	}
	if !m.IsBlocked(m.IndexOf(to)) || len(m.TileContent[m.IndexOf(to)]) != 1 {
		t.Errorf("destination tile not claimed")
	}
}

func TestPosition_MirrorAround(t *testing.T) {
	got := Position{X: 5, Y: 3}.MirrorAround(Position{X: 4, Y: 4})
	if got != (Position{X: 3, Y: 5}) {
		t.Errorf("MirrorAround() = %v, want {3 5}", got)
	}
}
