package actions

import (
	"rogue-server/internal/engine/handlers"
)

func HandleOpenInventory(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Transition(handlers.EventOpenInventory), nil
}

func HandleOpenDrop(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Transition(handlers.EventOpenDrop), nil
}

func HandleOpenRemove(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Transition(handlers.EventOpenRemove), nil
}

// HandleCancel закрывает любое меню без траты хода.
func HandleCancel(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Transition(handlers.EventCancel), nil
}

func HandleSave(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Transition(handlers.EventSave), nil
}
