package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой "снимок" мира глазами игрока после обработки команды.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Turn номер хода (количество завершенных ходов игрока).
	Turn int `json:"turn"`

	// State текущее состояние симуляции (AWAITING_INPUT, SHOW_INVENTORY, ...).
	// Клиент принимает ввод только в AWAITING_INPUT и меню.
	State string `json:"state"`

	// MyEntityID ID сущности игрока.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Depth глубина текущего уровня, начиная с 1.
	Depth int `json:"depth"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Entities срез всех видимых сущностей (в порядке отрисовки).
	Entities []EntityView `json:"entities,omitempty"`

	// Player характеристики игрока.
	Player *StatsView `json:"player,omitempty"`

	// Inventory содержимое рюкзака игрока.
	Inventory []ItemView `json:"inventory,omitempty"`

	// Equipment надетые предметы.
	Equipment []ItemView `json:"equipment,omitempty"`

	// Targets клетки, доступные для выстрела (только в SHOW_TARGETING).
	Targets []PositionPayload `json:"targets,omitempty"`

	// Logs новые строки игрового лога с прошлого снимка.
	Logs []string `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление тайла (e.g. "#" для стены).
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	// Если IsVisible=false, тайл когда-то был увиден и рендерится тускло.
	IsVisible bool `json:"isVisible"`

	// HasBlood на тайле остались следы крови.
	HasBlood bool `json:"hasBlood,omitempty"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
		BG     string `json:"bg,omitempty"`
		Order  int    `json:"order"`
	} `json:"render"`

	// Stats присутствует только у существ.
	Stats *StatsView `json:"stats,omitempty"`
}

// StatsView это DTO для боевых характеристик.
type StatsView struct {
	HP      int  `json:"hp"`
	MaxHP   int  `json:"maxHp"`
	Power   int  `json:"power,omitempty"`
	Defense int  `json:"defense,omitempty"`
	IsDead  bool `json:"isDead"`
}

// ItemView представляет предмет для клиента
type ItemView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
	Slot   string `json:"slot,omitempty"`
	Range  int    `json:"range,omitempty"` // > 0 для предметов, требующих цели
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для TARGET и для подсветки клеток.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemPayload используется для выбора предмета в меню (SELECT).
type ItemPayload struct {
	ItemID string `json:"itemId"`
}
