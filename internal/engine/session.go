package engine

import (
	"rogue-server/internal/engine/handlers"
	"rogue-server/pkg/logger"
)

// handleNewGame - новая партия из главного меню. Сохраненный мир не продолжается.
func (g *Game) handleNewGame(_ handlers.Context) (handlers.Result, error) {
	if g.stale {
		g.resetAfterGameOver()
	}
	return handlers.Transition(handlers.EventNewGame), nil
}

func (g *Game) handleLoadGame(_ handlers.Context) (handlers.Result, error) {
	if g.persistence == nil {
		return handlers.Result{Msg: "There is no saved game."}, nil
	}

	w, err := g.persistence.Load()
	if err != nil {
		logger.Log.WithError(err).WithField("component", "game").Warn("Load failed")
		return handlers.Result{Msg: "There is no saved game."}, nil
	}

	g.replaceWorld(w, w.Log.Len())
	g.stale = false
	return handlers.Transition(handlers.EventLoadGame), nil
}

// handleQuitToMenu - выход из GameOver. Мир пересоздается сразу.
func (g *Game) handleQuitToMenu(_ handlers.Context) (handlers.Result, error) {
	g.resetAfterGameOver()
	return handlers.Transition(handlers.EventQuitToMenu), nil
}
