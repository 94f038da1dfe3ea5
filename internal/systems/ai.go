package systems

import (
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MeleeReach - дистанция, с которой монстр атакует вместо движения
const MeleeReach = 1.5

// DecisionPhase решает за монстров: атаковать или идти к игроку.
// Работает только в MonsterTurn.
//
// Планирование пути читает снимок занятости, снятый в начале фазы.
// Сам шаг проверяет живой флаг Blocked, чтобы два монстра не встали на одну клетку.
func DecisionPhase(w *domain.World) {
	if w.State != domain.StateMonsterTurn {
		return
	}

	playerID, ok := w.Player()
	if !ok {
		return
	}
	playerPos, ok := w.PlayerPosition()
	if !ok {
		return
	}

	graph := newNavGraph(w.Map)

	for _, id := range w.Monsters.Entities() {
		vs, ok := w.Viewsheds.Get(id)
		if !ok {
			continue
		}
		pos, ok := w.Positions.Get(id)
		if !ok {
			continue
		}

		aiLogger := logger.Log.WithFields(logrus.Fields{
			"component":  "ai_system",
			"entity_id":  id,
			"entity_pos": *pos,
		})

		if conf, confused := w.Confusion.Get(id); confused {
			conf.Turns--
			if conf.Turns <= 0 {
				w.Confusion.Remove(id)
			}
			w.Log.Add(fmt.Sprintf("%s is confused.", w.NameOf(id)))
			aiLogger.WithField("turns_left", conf.Turns).Debug("Monster skips turn: confused.")
			continue
		}

		if pos.DistanceTo(playerPos) < MeleeReach {
			w.WantsToMelee.Insert(id, domain.WantsToMelee{Target: playerID})
			aiLogger.Debug("Monster decides to attack.")
			continue
		}

		if !vs.CanSee(playerPos) {
			continue
		}

		path, found := graph.astar(w.Map.IndexOf(*pos), w.Map.IndexOf(playerPos))
		if !found || len(path) <= 1 {
			aiLogger.Debug("No path to player.")
			continue
		}

		next := w.Map.XY(path[1])
		if next == playerPos {
			continue
		}
		if w.Map.IsBlocked(path[1]) {
			aiLogger.WithField("next_pos", next).Debug("Step blocked by a move committed this tick.")
			continue
		}

		w.Map.MoveBlocker(id, *pos, next)
		*pos = next
		vs.Dirty = true
		aiLogger.WithField("next_pos", next).Debug("Monster moves toward player.")
	}
}
