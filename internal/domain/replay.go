package domain

import "encoding/json"

// ReplayAction - запись одного принятого действия игрока
type ReplayAction struct {
	Turn    int             `json:"turn"`
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись партии. Одинаковые Seed и Actions
// воспроизводят одинаковый мир.
type ReplaySession struct {
	Seed      int64          `json:"seed"` // Зерно генерации мира
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
