package agent

import (
	"context"
	"encoding/json"

	"rogue-server/internal/domain"
	"rogue-server/internal/engine"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Бот подключается к GameService так же, как WebSocket-клиент: получает снимки
// мира через хаб и отвечает командами. Он видит только то, что видит игрок.
//
// Жизненный цикл:
//  1. NewBot -> Подписка на сервис, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. На каждый снимок, где ожидается ввод, вызывается decide.
type Bot struct {
	ClientID string
	Service  *engine.GameService
	Inbox    chan api.ServerResponse

	// MaxCommands - сколько команд отправить до остановки (0 - без лимита).
	MaxCommands int
	sent        int
}

func NewBot(clientID string, service *engine.GameService, maxCommands int) *Bot {
	return &Bot{
		ClientID:    clientID,
		Service:     service,
		Inbox:       service.Join(clientID),
		MaxCommands: maxCommands,
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Leave(b.ClientID)

	log := logger.Log.WithFields(logrus.Fields{"component": "bot", "client_id": b.ClientID})
	log.Info("Bot started")

	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-b.Inbox:
			if !ok {
				return
			}
			if b.MaxCommands > 0 && b.sent >= b.MaxCommands {
				log.WithField("commands", b.sent).Info("Bot finished")
				return
			}
			action, payload := b.decide(state)
			if action == domain.ActionUnknown {
				continue
			}
			b.send(action, payload)
		}
	}
}

// decide - мозг бота. Возвращает ActionUnknown, если отвечать не нужно.
func (b *Bot) decide(state api.ServerResponse) (domain.ActionType, any) {
	switch domain.ParseRunState(state.State) {
	case domain.StateMainMenu:
		return domain.ActionNewGame, nil
	case domain.StateGameOver:
		return domain.ActionQuitToMenu, nil
	case domain.StateShowInventory, domain.StateShowDropItem, domain.StateShowRemoveItem, domain.StateShowTargeting:
		return domain.ActionCancel, nil
	case domain.StateAwaitingInput:
	default:
		return domain.ActionUnknown, nil
	}

	if state.Type == "ERROR" {
		return domain.ActionWait, nil
	}

	me, ok := findSelf(state)
	if !ok {
		return domain.ActionWait, nil
	}

	local := buildLocalMap(state)

	// 1. Враг в поле зрения: бьем, если рядом, иначе идем к нему.
	if enemy, ok := nearestEnemy(state, me); ok {
		if step, ok := stepToward(local, me, enemy); ok {
			return domain.ActionMove, api.DirectionPayload{Dx: step.X - me.X, Dy: step.Y - me.Y}
		}
	}

	// 2. Предмет под ногами.
	for _, ev := range state.Entities {
		if ev.Stats == nil && ev.ID != state.MyEntityID && ev.Pos.X == me.X && ev.Pos.Y == me.Y {
			return domain.ActionPickup, nil
		}
	}

	// 3. Лестница: спускаемся или идем к ней.
	if stairs, ok := findStairs(state); ok {
		if stairs == me {
			return domain.ActionDescend, nil
		}
		if step, ok := stepToward(local, me, stairs); ok {
			return domain.ActionMove, api.DirectionPayload{Dx: step.X - me.X, Dy: step.Y - me.Y}
		}
	}

	return domain.ActionWait, nil
}

func (b *Bot) send(action domain.ActionType, payload any) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).WithField("component", "bot").Warn("Failed to marshal payload")
			return
		}
		raw = data
	}
	b.sent++
	b.Service.ProcessCommand(b.ClientID, api.ClientCommand{Action: action.String(), Payload: raw})
}

func findSelf(state api.ServerResponse) (domain.Position, bool) {
	for _, ev := range state.Entities {
		if ev.ID == state.MyEntityID {
			return domain.Position{X: ev.Pos.X, Y: ev.Pos.Y}, true
		}
	}
	return domain.Position{}, false
}

func nearestEnemy(state api.ServerResponse, me domain.Position) (domain.Position, bool) {
	best, found := domain.Position{}, false
	bestDist := 0.0
	for _, ev := range state.Entities {
		if ev.ID == state.MyEntityID || ev.Stats == nil || ev.Stats.IsDead {
			continue
		}
		p := domain.Position{X: ev.Pos.X, Y: ev.Pos.Y}
		if d := me.DistanceTo(p); !found || d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

func findStairs(state api.ServerResponse) (domain.Position, bool) {
	for _, t := range state.Map {
		if t.Symbol == ">" {
			return domain.Position{X: t.X, Y: t.Y}, true
		}
	}
	return domain.Position{}, false
}

// buildLocalMap восстанавливает карту из снимка. Неисследованное считается стеной,
// чтобы не строить пути в неизвестность.
func buildLocalMap(state api.ServerResponse) *domain.SpatialMap {
	width, height := 1, 1
	if state.Grid != nil {
		width, height = state.Grid.Width, state.Grid.Height
	}
	m := domain.NewSpatialMap(width, height, state.Depth)
	for _, t := range state.Map {
		if !m.InBounds(t.X, t.Y) || t.IsWall {
			continue
		}
		tile := domain.TileFloor
		if t.Symbol == ">" {
			tile = domain.TileDownStairs
		}
		m.Tiles[m.Index(t.X, t.Y)] = tile
	}
	m.PopulateBlocked()
	return m
}

// stepToward - первый шаг пути к цели.
func stepToward(m *domain.SpatialMap, from, to domain.Position) (domain.Position, bool) {
	if from.IsAdjacent(to) {
		return to, true
	}
	path, ok := systems.FindPath(m, from, to)
	if !ok || len(path) < 2 {
		return domain.Position{}, false
	}
	return path[1], true
}
