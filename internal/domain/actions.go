package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionWait
	ActionPickup
	ActionDescend
	ActionInventory
	ActionDropMenu
	ActionRemoveMenu
	ActionSave
	ActionSelect
	ActionTarget
	ActionCancel
	ActionNewGame
	ActionLoadGame
	ActionQuitToMenu
)

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:       "MOVE",
	ActionWait:       "WAIT",
	ActionPickup:     "PICKUP",
	ActionDescend:    "DESCEND",
	ActionInventory:  "INVENTORY",
	ActionDropMenu:   "DROP_MENU",
	ActionRemoveMenu: "REMOVE_MENU",
	ActionSave:       "SAVE",
	ActionSelect:     "SELECT",
	ActionTarget:     "TARGET",
	ActionCancel:     "CANCEL",
	ActionNewGame:    "NEW_GAME",
	ActionLoadGame:   "LOAD_GAME",
	ActionQuitToMenu: "QUIT_TO_MENU",
}

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = func() map[string]ActionType {
	m := make(map[string]ActionType, len(actionCmdToString))
	for k, v := range actionCmdToString {
		m[v] = k
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
