package handlers

import (
	"encoding/json"

	"rogue-server/internal/core/types"
	"rogue-server/internal/domain"
)

// События автомата состояний. Хендлер возвращает событие, движок выполняет переход.
const (
	EventNewGame         = "new_game"
	EventLoadGame        = "load_game"
	EventPreTurnDone     = "pre_turn_done"
	EventPlayerActed     = "player_acted"
	EventPlayerTurnDone  = "player_turn_done"
	EventMonsterTurnDone = "monster_turn_done"
	EventOpenInventory   = "open_inventory"
	EventOpenDrop        = "open_drop"
	EventOpenRemove      = "open_remove"
	EventAim             = "aim"
	EventCancel          = "cancel"
	EventSave            = "save"
	EventSaved           = "saved"
	EventDescend         = "descend"
	EventLevelReady      = "level_ready"
	EventDie             = "die"
	EventQuitToMenu      = "quit_to_menu"
)

// Aim - предмет, ожидающий выбора цели в ShowTargeting.
type Aim struct {
	Item  types.EntityID
	Range int
}

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (вставлять намерения).
type Context struct {
	World *domain.World
	Actor types.EntityID  // Тот, кто выполняет команду (игрок)
	State domain.RunState // Состояние, в котором пришла команда
	Aim   *Aim            // Заполнен только в ShowTargeting
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в игровой лог напрямую, он возвращает данные.
type Result struct {
	Msg   string // Строка для игрового лога
	Event string // Событие автомата; пусто - состояние не меняется
	Aim   *Aim   // Запрос на выбор цели (вместе с EventAim)
}

// HandlerFunc - это контракт для любой команды (MOVE, SELECT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Transition - результат, который только переключает состояние.
func Transition(event string) Result {
	return Result{Event: event}
}
