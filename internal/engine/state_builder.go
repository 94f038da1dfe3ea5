package engine

import (
	"sort"
	"strconv"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
)

// Цвета тайлов для клиента.
const (
	colorWall   = 0x00FF00
	colorFloor  = 0x00FFFF
	colorStairs = 0x00FFFF
	colorBlood  = 0xBF0000
	colorFogged = 0x808080
)

// Snapshot создает "снимок" мира глазами игрока и сдвигает курсор игрового лога:
// каждая строка лога попадает ровно в один снимок.
func (g *Game) Snapshot() *api.ServerResponse {
	resp := g.buildState()
	resp.Logs = g.World.Log.Since(g.logCursor)
	g.logCursor = g.World.Log.Len()
	return resp
}

// ErrorResponse - ответ на отклоненную команду. Лог не сдвигается.
func (g *Game) ErrorResponse(err error) *api.ServerResponse {
	return &api.ServerResponse{
		Type:  "ERROR",
		Turn:  g.turn,
		State: g.State().String(),
		Depth: g.World.Map.Depth,
		Error: err.Error(),
	}
}

func (g *Game) buildState() *api.ServerResponse {
	w := g.World
	m := w.Map

	resp := &api.ServerResponse{
		Type:  "UPDATE",
		Turn:  g.turn,
		State: g.State().String(),
		Depth: m.Depth,
		Grid:  &api.GridMeta{Width: m.Width, Height: m.Height},
		Map:   buildTiles(m),
	}

	resp.Entities = buildEntities(w)

	player, ok := w.Player()
	if !ok {
		return resp
	}
	resp.MyEntityID = strconv.FormatUint(uint64(player), 10)

	if stats, ok := w.CombatStats.Get(player); ok {
		resp.Player = &api.StatsView{
			HP:      stats.HP,
			MaxHP:   stats.MaxHP,
			Power:   stats.Power + systems.MeleePowerBonus(w, player),
			Defense: stats.Defense + systems.DefenseBonus(w, player),
			IsDead:  stats.IsDead(),
		}
	}

	for _, id := range w.BackpackOf(player) {
		resp.Inventory = append(resp.Inventory, toItemView(w, id))
	}
	for _, id := range w.EquippedBy(player) {
		resp.Equipment = append(resp.Equipment, toItemView(w, id))
	}

	if g.State() == domain.StateShowTargeting && g.aim != nil {
		for _, p := range systems.TargetableTiles(w, player, g.aim.Range) {
			resp.Targets = append(resp.Targets, api.PositionPayload{X: p.X, Y: p.Y})
		}
	}

	return resp
}

// buildTiles отдает только исследованные тайлы (туман войны).
func buildTiles(m *domain.SpatialMap) []api.TileView {
	var tiles []api.TileView
	for idx, revealed := range m.Revealed {
		if !revealed {
			continue
		}
		p := m.XY(idx)
		t := api.TileView{
			X:         p.X,
			Y:         p.Y,
			IsWall:    m.Tiles[idx] == domain.TileWall,
			IsVisible: m.Visible[idx],
			HasBlood:  m.Bloodstains.Has(idx),
		}

		color := uint32(colorFloor)
		switch m.Tiles[idx] {
		case domain.TileWall:
			t.Symbol, color = "#", colorWall
		case domain.TileDownStairs:
			t.Symbol, color = ">", colorStairs
		default:
			t.Symbol = "."
			if t.HasBlood {
				color = colorBlood
			}
		}
		if !t.IsVisible {
			color = colorFogged
		}
		t.Color = types.HexColor(color)
		tiles = append(tiles, t)
	}
	return tiles
}

// buildEntities - видимые игроку сущности на карте. Меньший RenderOrder рисуется поверх,
// поэтому клиенту отдаем их от большего к меньшему.
func buildEntities(w *domain.World) []api.EntityView {
	var views []api.EntityView
	for _, id := range w.Renderables.Entities() {
		pos, ok := w.Positions.Get(id)
		if !ok || !w.Map.InBounds(pos.X, pos.Y) || !w.Map.Visible[w.Map.IndexOf(*pos)] {
			continue
		}
		views = append(views, toEntityView(w, id, *pos))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Render.Order > views[j].Render.Order
	})
	return views
}

// toEntityView конвертирует сущность в DTO для отправки клиенту.
func toEntityView(w *domain.World, id types.EntityID, pos domain.Position) api.EntityView {
	view := api.EntityView{
		ID:   strconv.FormatUint(uint64(id), 10),
		Name: w.NameOf(id),
	}
	view.Pos.X = pos.X
	view.Pos.Y = pos.Y

	if r, ok := w.Renderables.Get(id); ok {
		view.Render.Symbol = string(r.Glyph.Char())
		view.Render.Color = r.Glyph.HexColor()
		if r.BG != 0 {
			view.Render.BG = types.HexColor(r.BG)
		}
		view.Render.Order = r.RenderOrder
	}

	if stats, ok := w.CombatStats.Get(id); ok {
		view.Stats = &api.StatsView{
			HP:     stats.HP,
			MaxHP:  stats.MaxHP,
			IsDead: stats.IsDead(),
		}
	}
	return view
}

func toItemView(w *domain.World, id types.EntityID) api.ItemView {
	view := api.ItemView{
		ID:   strconv.FormatUint(uint64(id), 10),
		Name: w.NameOf(id),
	}
	if r, ok := w.Renderables.Get(id); ok {
		view.Symbol = string(r.Glyph.Char())
		view.Color = r.Glyph.HexColor()
	}
	if eq, ok := w.Equippable.Get(id); ok {
		view.Slot = eq.Slot.String()
	}
	if rng, ok := w.Ranged.Get(id); ok {
		view.Range = rng.Range
	}
	return view
}
