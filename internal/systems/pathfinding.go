package systems

import (
	"container/heap"

	"rogue-server/internal/domain"
)

// navGraph - граф проходимости поверх карты с зафиксированным снимком блокировок.
// Снимок берется в начале фазы решений: ходы других монстров в этом же тике
// не влияют на планирование.
type navGraph struct {
	m       *domain.SpatialMap
	blocked []bool
}

func newNavGraph(m *domain.SpatialMap) *navGraph {
	snapshot := make([]bool, len(m.Blocked))
	copy(snapshot, m.Blocked)
	return &navGraph{m: m, blocked: snapshot}
}

var navOffsets = [8]domain.Position{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// exits - соседи с конечной стоимостью. Цель пропускается даже если занята:
// на ней стоит тот, к кому идем.
func (g *navGraph) exits(idx, goal int) []domain.Exit {
	out := make([]domain.Exit, 0, 8)
	p := g.m.XY(idx)
	for _, d := range navOffsets {
		x, y := p.X+d.X, p.Y+d.Y
		if !g.m.InBounds(x, y) {
			continue
		}
		n := g.m.Index(x, y)
		if g.m.Tiles[n] == domain.TileWall {
			continue
		}
		if g.blocked[n] && n != goal {
			continue
		}
		cost := domain.CostOrthogonal
		if d.X != 0 && d.Y != 0 {
			cost = domain.CostDiagonal
		}
		out = append(out, domain.Exit{Idx: n, Cost: cost})
	}
	return out
}

type pathNode struct {
	idx    int
	g      float64
	f      float64
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

// Less: при равном f выигрывает меньший индекс клетки, чтобы путь был детерминирован.
func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f == pq[j].f {
		return pq[i].idx < pq[j].idx
	}
	return pq[i].f < pq[j].f
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// astar ищет кратчайший путь. Путь включает стартовую клетку.
func (g *navGraph) astar(start, goal int) ([]int, bool) {
	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{idx: start, f: g.m.Distance(start, goal)})

	gScore := map[int]float64{start: 0}
	closed := make(map[int]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.idx]; seen {
			continue
		}
		closed[current.idx] = struct{}{}
		if current.idx == goal {
			return reconstructPath(current), true
		}

		for _, exit := range g.exits(current.idx, goal) {
			if _, seen := closed[exit.Idx]; seen {
				continue
			}
			tentativeG := current.g + exit.Cost
			if prev, ok := gScore[exit.Idx]; ok && tentativeG >= prev {
				continue
			}
			gScore[exit.Idx] = tentativeG
			heap.Push(open, &pathNode{
				idx:    exit.Idx,
				g:      tentativeG,
				f:      tentativeG + g.m.Distance(exit.Idx, goal),
				parent: current,
			})
		}
	}
	return nil, false
}

func reconstructPath(end *pathNode) []int {
	path := make([]int, 0)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.idx)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindPath - A* по текущей карте (без снимка). Используется вне фазы решений.
func FindPath(m *domain.SpatialMap, from, to domain.Position) ([]domain.Position, bool) {
	if !m.InBounds(from.X, from.Y) || !m.InBounds(to.X, to.Y) {
		return nil, false
	}
	steps, ok := newNavGraph(m).astar(m.IndexOf(from), m.IndexOf(to))
	if !ok {
		return nil, false
	}
	out := make([]domain.Position, len(steps))
	for i, idx := range steps {
		out[i] = m.XY(idx)
	}
	return out, true
}
