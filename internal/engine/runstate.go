package engine

import (
	"context"

	"rogue-server/internal/domain"
	"rogue-server/internal/engine/handlers"
	"rogue-server/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

func states(list ...domain.RunState) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.String()
	}
	return out
}

var menuStates = []domain.RunState{
	domain.StateShowInventory,
	domain.StateShowDropItem,
	domain.StateShowTargeting,
	domain.StateShowRemoveItem,
}

// runStateEvents - все допустимые переходы симуляции.
var runStateEvents = fsm.Events{
	{Name: handlers.EventNewGame, Src: states(domain.StateMainMenu), Dst: domain.StatePreTurn.String()},
	{Name: handlers.EventLoadGame, Src: states(domain.StateMainMenu), Dst: domain.StateAwaitingInput.String()},
	{Name: handlers.EventPreTurnDone, Src: states(domain.StatePreTurn), Dst: domain.StateAwaitingInput.String()},
	{
		Name: handlers.EventPlayerActed,
		Src:  states(append([]domain.RunState{domain.StateAwaitingInput}, menuStates...)...),
		Dst:  domain.StatePlayerTurn.String(),
	},
	{Name: handlers.EventPlayerTurnDone, Src: states(domain.StatePlayerTurn), Dst: domain.StateMonsterTurn.String()},
	{Name: handlers.EventMonsterTurnDone, Src: states(domain.StateMonsterTurn), Dst: domain.StateAwaitingInput.String()},
	{Name: handlers.EventOpenInventory, Src: states(domain.StateAwaitingInput), Dst: domain.StateShowInventory.String()},
	{Name: handlers.EventOpenDrop, Src: states(domain.StateAwaitingInput), Dst: domain.StateShowDropItem.String()},
	{Name: handlers.EventOpenRemove, Src: states(domain.StateAwaitingInput), Dst: domain.StateShowRemoveItem.String()},
	{Name: handlers.EventAim, Src: states(domain.StateShowInventory), Dst: domain.StateShowTargeting.String()},
	{Name: handlers.EventCancel, Src: states(menuStates...), Dst: domain.StateAwaitingInput.String()},
	{Name: handlers.EventSave, Src: states(domain.StateAwaitingInput), Dst: domain.StateSaveGame.String()},
	{Name: handlers.EventSaved, Src: states(domain.StateSaveGame), Dst: domain.StateMainMenu.String()},
	{Name: handlers.EventDescend, Src: states(domain.StateAwaitingInput), Dst: domain.StateNextLevel.String()},
	{Name: handlers.EventLevelReady, Src: states(domain.StateNextLevel), Dst: domain.StatePreTurn.String()},
	{
		Name: handlers.EventDie,
		Src:  states(domain.StatePreTurn, domain.StatePlayerTurn, domain.StateMonsterTurn),
		Dst:  domain.StateGameOver.String(),
	},
	{Name: handlers.EventQuitToMenu, Src: states(domain.StateGameOver), Dst: domain.StateMainMenu.String()},
}

// newRunStateMachine создает автомат. onEnter вызывается после каждого перехода
// и синхронизирует состояние мира с автоматом.
func newRunStateMachine(initial domain.RunState, onEnter func(domain.RunState)) *fsm.FSM {
	return fsm.NewFSM(
		initial.String(),
		runStateEvents,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{
					"component": "run_state",
					"event":     e.Event,
					"from":      e.Src,
					"to":        e.Dst,
				}).Debug("Run state changed.")
				onEnter(domain.ParseRunState(e.Dst))
			},
		},
	)
}

// advanceEvent - событие, которым заканчивается прогон конвейера в данном состоянии.
func advanceEvent(s domain.RunState) string {
	switch s {
	case domain.StatePreTurn:
		return handlers.EventPreTurnDone
	case domain.StatePlayerTurn:
		return handlers.EventPlayerTurnDone
	case domain.StateMonsterTurn:
		return handlers.EventMonsterTurnDone
	}
	return ""
}
