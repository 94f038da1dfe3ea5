package dungeon

import (
	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
)

// CreatePlayer создает сущность игрока с параметрами из конфигурации.
func CreatePlayer(w *domain.World, pos domain.Position, p Params) types.EntityID {
	id := w.CreateEntity()
	w.Positions.Insert(id, pos)
	w.Renderables.Insert(id, domain.Renderable{
		Glyph:       types.MakeGlyph(0xFFFF00, '@'),
		RenderOrder: renderOrderPlayer,
	})
	w.Players.Insert(id, domain.Player{})
	w.Viewsheds.Insert(id, domain.NewViewshed(p.PlayerVision))
	w.Names.Insert(id, domain.Name{Name: "Player"})
	w.BlocksTile.Insert(id, domain.BlocksTile{})
	w.CombatStats.Insert(id, domain.CombatStats{
		MaxHP:   p.PlayerHP,
		HP:      p.PlayerHP,
		Defense: p.PlayerDefense,
		Power:   p.PlayerPower,
	})
	return id
}
