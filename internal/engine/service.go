package engine

import (
	"context"
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/internal/network"
	"rogue-server/pkg/api"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// JournalSink сохраняет запись партии (реализация - storage.ReplayService).
type JournalSink interface {
	Save(session *domain.ReplaySession) (string, error)
}

type request struct {
	clientID string
	cmd      api.ClientCommand
	sync     bool // только прислать снимок этому клиенту
	inspect  chan DebugInfo
}

// DebugInfo - внутреннее состояние игры для /debug/state.
type DebugInfo struct {
	Turn        int              `json:"turn"`
	State       string           `json:"state"`
	Depth       int              `json:"depth"`
	Seed        int64            `json:"seed"`
	Entities    int              `json:"entities"`
	Player      *domain.Position `json:"player,omitempty"`
	LogLines    int              `json:"log_lines"`
	Journal     int              `json:"journal_actions"`
	Subscribers int              `json:"subscribers"`
}

// GameService сериализует команды всех клиентов в одну горутину
// и рассылает снимки после каждой принятой команды.
type GameService struct {
	Hub *network.Broadcaster

	game     *Game
	commands chan request
	journal  JournalSink
}

func NewService(game *Game, hub *network.Broadcaster, journal JournalSink) *GameService {
	return &GameService{
		Hub:      hub,
		game:     game,
		commands: make(chan request, 100),
		journal:  journal,
	}
}

// Join подписывает клиента и ставит в очередь отправку ему текущего снимка.
func (s *GameService) Join(clientID string) chan api.ServerResponse {
	ch := s.Hub.Register(clientID)
	s.commands <- request{clientID: clientID, sync: true}
	return ch
}

func (s *GameService) Leave(clientID string) {
	s.Hub.Unregister(clientID)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
func (s *GameService) ProcessCommand(clientID string, cmd api.ClientCommand) {
	s.commands <- request{clientID: clientID, cmd: cmd}
}

// Inspect запрашивает DebugInfo у игровой горутины.
func (s *GameService) Inspect(ctx context.Context) (DebugInfo, error) {
	reply := make(chan DebugInfo, 1)
	select {
	case s.commands <- request{inspect: reply}:
	case <-ctx.Done():
		return DebugInfo{}, ctx.Err()
	}
	select {
	case info := <-reply:
		return info, nil
	case <-ctx.Done():
		return DebugInfo{}, ctx.Err()
	}
}

// Run - единственная горутина, которая трогает Game. Завершается по ctx.
func (s *GameService) Run(ctx context.Context) error {
	logger.Log.WithField("component", "game_service").Info("Game loop started")

	for {
		select {
		case <-ctx.Done():
			s.saveJournal()
			return ctx.Err()
		case req := <-s.commands:
			s.handle(ctx, req)
		}
	}
}

func (s *GameService) handle(ctx context.Context, req request) {
	if req.inspect != nil {
		req.inspect <- s.debugInfo()
		return
	}
	if req.sync {
		s.Hub.SendTo(req.clientID, *s.game.Snapshot())
		return
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"client_id": req.clientID,
		"action":    req.cmd.Action,
	})

	action := domain.ParseAction(req.cmd.Action)
	if action == domain.ActionUnknown {
		err := fmt.Errorf("%w: %q", ErrUnknownAction, req.cmd.Action)
		log.Warn("Unknown action")
		s.Hub.SendTo(req.clientID, *s.game.ErrorResponse(err))
		return
	}

	if err := s.game.Submit(ctx, Command{Action: action, Payload: req.cmd.Payload}); err != nil {
		log.WithError(err).Warn("Command rejected")
		s.Hub.SendTo(req.clientID, *s.game.ErrorResponse(err))
		return
	}

	log.WithField("state", s.game.State()).Debug("Command applied")
	s.Hub.Broadcast(*s.game.Snapshot())
}

func (s *GameService) debugInfo() DebugInfo {
	g := s.game
	info := DebugInfo{
		Turn:        g.Turn(),
		State:       g.State().String(),
		Depth:       g.World.Map.Depth,
		Seed:        g.cfg.Seed,
		Entities:    len(g.World.Positions.Entities()),
		LogLines:    g.World.Log.Len(),
		Journal:     len(g.journal.Actions),
		Subscribers: s.Hub.SubscriberCount(),
	}
	if pos, ok := g.World.PlayerPosition(); ok {
		info.Player = &pos
	}
	return info
}

func (s *GameService) saveJournal() {
	if s.journal == nil {
		return
	}
	path, err := s.journal.Save(s.game.Journal())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
		return
	}
	logger.Log.WithField("path", path).Info("Replay saved")
}
