package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
	"rogue-server/internal/engine/handlers/actions"
	"rogue-server/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

var (
	ErrIllegalCommand = errors.New("command is not allowed in the current state")
	ErrUnknownAction  = errors.New("unknown action")
)

// maxSettleSteps ограничивает число автоматических переходов за одну команду.
const maxSettleSteps = 16

// Dungeon - генератор уровней и наполнитель комнат.
type Dungeon interface {
	NewMap(depth int) *domain.SpatialMap
	SpawnRoom(w *domain.World, room domain.Rect, depth int)
	SpawnPlayer(w *domain.World, pos domain.Position) types.EntityID
}

// Persistence - хранилище сохраненной партии (опционально).
type Persistence interface {
	Save(w *domain.World) error
	Load() (*domain.World, error)
}

// Command - действие игрока, уже переведенное во внутренний тип.
type Command struct {
	Action  domain.ActionType
	Payload json.RawMessage
}

type route struct {
	states  []domain.RunState
	handler handlers.HandlerFunc
}

// Game владеет миром и автоматом состояний. Не потокобезопасна:
// все вызовы должны идти из одной горутины (см. GameService).
type Game struct {
	World *domain.World

	cfg         Config
	machine     *fsm.FSM
	dungeon     Dungeon
	persistence Persistence
	routes      map[domain.ActionType]route

	aim       *handlers.Aim
	turn      int
	logCursor int
	stale     bool // мир был сохранен и больше не должен продолжаться
	journal   *domain.ReplaySession
}

// NewGame строит первый уровень и прогоняет стартовый тик.
// persistence может быть nil.
func NewGame(ctx context.Context, cfg Config, dungeon Dungeon, persistence Persistence) (*Game, error) {
	g := &Game{
		cfg:         cfg,
		dungeon:     dungeon,
		persistence: persistence,
		routes:      make(map[domain.ActionType]route),
		journal: &domain.ReplaySession{
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
	}
	g.World = g.newWorld()
	g.machine = newRunStateMachine(domain.StatePreTurn, func(s domain.RunState) {
		g.World.State = s
	})
	g.registerHandlers()

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"seed":      cfg.Seed,
	}).Info("Game created")

	if err := g.settle(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) registerHandlers() {
	awaiting := []domain.RunState{domain.StateAwaitingInput}

	g.handle(domain.ActionMove, awaiting, handlers.WithPayload(actions.HandleMove))
	g.handle(domain.ActionWait, awaiting, handlers.WithEmptyPayload(actions.HandleWait))
	g.handle(domain.ActionPickup, awaiting, handlers.WithEmptyPayload(actions.HandlePickup))
	g.handle(domain.ActionDescend, awaiting, handlers.WithEmptyPayload(actions.HandleDescend))
	g.handle(domain.ActionInventory, awaiting, handlers.WithEmptyPayload(actions.HandleOpenInventory))
	g.handle(domain.ActionDropMenu, awaiting, handlers.WithEmptyPayload(actions.HandleOpenDrop))
	g.handle(domain.ActionRemoveMenu, awaiting, handlers.WithEmptyPayload(actions.HandleOpenRemove))
	g.handle(domain.ActionSave, awaiting, handlers.WithEmptyPayload(actions.HandleSave))

	g.handle(domain.ActionSelect,
		[]domain.RunState{domain.StateShowInventory, domain.StateShowDropItem, domain.StateShowRemoveItem},
		handlers.WithPayload(actions.HandleSelect))
	g.handle(domain.ActionTarget, []domain.RunState{domain.StateShowTargeting}, handlers.WithPayload(actions.HandleTarget))
	g.handle(domain.ActionCancel, menuStates, handlers.WithEmptyPayload(actions.HandleCancel))

	mainMenu := []domain.RunState{domain.StateMainMenu}
	g.handle(domain.ActionNewGame, mainMenu, handlers.WithEmptyPayload(g.handleNewGame))
	g.handle(domain.ActionLoadGame, mainMenu, handlers.WithEmptyPayload(g.handleLoadGame))
	g.handle(domain.ActionQuitToMenu, []domain.RunState{domain.StateGameOver}, handlers.WithEmptyPayload(g.handleQuitToMenu))
}

func (g *Game) handle(action domain.ActionType, states []domain.RunState, h handlers.HandlerFunc) {
	g.routes[action] = route{states: states, handler: h}
}

// State - текущее состояние автомата.
func (g *Game) State() domain.RunState {
	return domain.ParseRunState(g.machine.Current())
}

func (g *Game) Turn() int {
	return g.turn
}

// Journal - запись всех принятых команд партии.
func (g *Game) Journal() *domain.ReplaySession {
	return g.journal
}

// Submit выполняет команду игрока и прогоняет симуляцию до следующего ожидания ввода.
func (g *Game) Submit(ctx context.Context, cmd Command) error {
	r, ok := g.routes[cmd.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
	}

	state := g.State()
	if !slices.Contains(r.states, state) {
		return fmt.Errorf("%w: %s in %s", ErrIllegalCommand, cmd.Action, state)
	}

	hctx := handlers.Context{
		World: g.World,
		Actor: g.World.PlayerID,
		State: state,
		Aim:   g.aim,
	}

	res, err := r.handler(hctx, cmd.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Action, err)
	}
	g.record(cmd)

	if res.Msg != "" {
		g.World.Log.Add(res.Msg)
	}
	if res.Aim != nil {
		g.aim = res.Aim
	}
	if res.Event != "" {
		if err := g.fire(ctx, res.Event); err != nil {
			return err
		}
	}
	if g.State() != domain.StateShowTargeting {
		g.aim = nil
	}

	return g.settle(ctx)
}

func (g *Game) record(cmd Command) {
	g.journal.Actions = append(g.journal.Actions, domain.ReplayAction{
		Turn:    g.turn,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

func (g *Game) fire(ctx context.Context, event string) error {
	if err := g.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("run state %s on %s: %w", g.machine.Current(), event, err)
	}
	return nil
}

// settle крутит автоматические состояния (ходы, переход уровня, сохранение),
// пока симуляция не остановится на ожидании ввода, меню или GameOver.
func (g *Game) settle(ctx context.Context) error {
	for step := 0; step < maxSettleSteps; step++ {
		state := g.State()

		switch {
		case state.Simulates():
			RunSystems(g.World)
			if state == domain.StatePlayerTurn {
				g.turn++
			}
			event := advanceEvent(state)
			if g.World.State == domain.StateGameOver {
				event = handlers.EventDie
			}
			if err := g.fire(ctx, event); err != nil {
				return err
			}

		case state == domain.StateNextLevel:
			g.goToNextLevel()
			if err := g.fire(ctx, handlers.EventLevelReady); err != nil {
				return err
			}

		case state == domain.StateSaveGame:
			g.saveGame()
			if err := g.fire(ctx, handlers.EventSaved); err != nil {
				return err
			}

		default:
			return nil
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"state":     g.State(),
	}).Warn("Settle step limit reached")
	return nil
}

func (g *Game) saveGame() {
	g.stale = true
	if g.persistence == nil {
		g.World.Log.Add("Saving is not available.")
		return
	}
	if err := g.persistence.Save(g.World); err != nil {
		logger.Log.WithError(err).WithField("component", "game").Error("Save failed")
		g.World.Log.Add("The game could not be saved.")
		return
	}
	logger.Log.WithField("component", "game").Info("Game saved")
}

// replaceWorld подменяет мир и синхронизирует его состояние с автоматом.
func (g *Game) replaceWorld(w *domain.World, logCursor int) {
	w.State = g.State()
	g.World = w
	g.logCursor = logCursor
	g.aim = nil
}
