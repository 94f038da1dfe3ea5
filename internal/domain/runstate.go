package domain

import "strings"

// RunState - состояние цикла симуляции. Определяет, какие фазы запускаются.
type RunState uint8

const (
	StateUnknown RunState = iota
	StateAwaitingInput
	StatePreTurn
	StatePlayerTurn
	StateMonsterTurn
	StateShowInventory
	StateShowDropItem
	StateShowTargeting
	StateShowRemoveItem
	StateMainMenu
	StateSaveGame
	StateNextLevel
	StateGameOver
)

var runStateToString = map[RunState]string{
	StateAwaitingInput:  "AWAITING_INPUT",
	StatePreTurn:        "PRE_TURN",
	StatePlayerTurn:     "PLAYER_TURN",
	StateMonsterTurn:    "MONSTER_TURN",
	StateShowInventory:  "SHOW_INVENTORY",
	StateShowDropItem:   "SHOW_DROP_ITEM",
	StateShowTargeting:  "SHOW_TARGETING",
	StateShowRemoveItem: "SHOW_REMOVE_ITEM",
	StateMainMenu:       "MAIN_MENU",
	StateSaveGame:       "SAVE_GAME",
	StateNextLevel:      "NEXT_LEVEL",
	StateGameOver:       "GAME_OVER",
}

var runStateStringToType = func() map[string]RunState {
	m := make(map[string]RunState, len(runStateToString))
	for k, v := range runStateToString {
		m[v] = k
	}
	return m
}()

func (s RunState) String() string {
	if val, ok := runStateToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseRunState конвертирует имя состояния (например, из fsm) в RunState
func ParseRunState(s string) RunState {
	if val, ok := runStateStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return StateUnknown
}

// IsMenu - состояния, в которых игрок выбирает предмет или цель
func (s RunState) IsMenu() bool {
	switch s {
	case StateShowInventory, StateShowDropItem, StateShowTargeting, StateShowRemoveItem:
		return true
	}
	return false
}

// Simulates - состояния, в которых выполняется конвейер фаз
func (s RunState) Simulates() bool {
	return s == StatePreTurn || s == StatePlayerTurn || s == StateMonsterTurn
}
