package systems

import (
	"testing"

	"rogue-server/internal/domain"
)

func TestComputeFOV_RadiusIsInclusive(t *testing.T) {
	w := newTestWorld(11, 11)
	center := domain.Position{X: 5, Y: 5}

	tiles := ComputeFOV(w.Map, center, 1)
	got := map[domain.Position]bool{}
	for _, p := range tiles {
		got[p] = true
	}

	want := []domain.Position{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 6}}
	for _, p := range want {
		if !got[p] {
			t.Errorf("tile %v must be visible at radius 1", p)
		}
	}
	if got[(domain.Position{X: 6, Y: 6})] {
		t.Errorf("diagonal tile lies outside radius 1")
	}
	if len(tiles) != len(want) {
		t.Errorf("len(tiles) = %d, want %d", len(tiles), len(want))
	}
}

func TestComputeFOV_WallsCastShadows(t *testing.T) {
	w := newTestWorld(11, 11)
	for y := 1; y < 10; y++ {
		setWall(w, 6, y)
	}

	tiles := ComputeFOV(w.Map, domain.Position{X: 3, Y: 5}, 8)
	seen := map[domain.Position]bool{}
	for _, p := range tiles {
		seen[p] = true
	}

	if !seen[(domain.Position{X: 6, Y: 5})] {
		t.Errorf("the wall itself must be visible")
	}
	if seen[(domain.Position{X: 8, Y: 5})] {
		t.Errorf("tile behind the wall must be hidden")
	}
}

func TestComputeFOV_NoDuplicatesAndInBounds(t *testing.T) {
	w := newTestWorld(8, 8)
	tiles := ComputeFOV(w.Map, domain.Position{X: 1, Y: 1}, 20)

	seen := map[domain.Position]bool{}
	for _, p := range tiles {
		if seen[p] {
			t.Fatalf("duplicate tile %v", p)
		}
		seen[p] = true
		if !w.Map.InBounds(p.X, p.Y) {
			t.Fatalf("tile %v out of bounds", p)
		}
	}
}

func TestHasLineOfSight(t *testing.T) {
	// Карта 7x7, рамка - стены
	// . . . . .
	// . . # . .  (3,2) - стена
	// . # # # .  (2,3), (3,3), (4,3) - стена
	// . . # . .  (3,4) - стена
	// . . . . .
	w := newTestWorld(7, 7)
	setWall(w, 3, 2)
	setWall(w, 2, 3)
	setWall(w, 3, 3)
	setWall(w, 4, 3)
	setWall(w, 3, 4)

	tests := []struct {
		name string
		p1   domain.Position
		p2   domain.Position
		want bool
	}{
		{"Clear horizontal", domain.Position{X: 1, Y: 1}, domain.Position{X: 5, Y: 1}, true},
		{"Blocked horizontal", domain.Position{X: 1, Y: 3}, domain.Position{X: 5, Y: 3}, false},
		{"Clear diagonal", domain.Position{X: 1, Y: 1}, domain.Position{X: 2, Y: 2}, true},
		{"Blocked diagonal", domain.Position{X: 1, Y: 1}, domain.Position{X: 5, Y: 5}, false},
		{"Adjacent wall", domain.Position{X: 3, Y: 1}, domain.Position{X: 3, Y: 2}, true},
		{"Behind wall", domain.Position{X: 3, Y: 1}, domain.Position{X: 3, Y: 5}, false},
		{"Same point", domain.Position{X: 2, Y: 2}, domain.Position{X: 2, Y: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(w.Map, tt.p1, tt.p2); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}
