package engine

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни партии.
	Seed int64 `yaml:"seed"`

	Map           MapConfig    `yaml:"map"`
	Player        PlayerConfig `yaml:"player"`
	MonsterVision int          `yaml:"monster_vision"`
	Server        ServerConfig `yaml:"server"`
	Replay        ReplayConfig `yaml:"replay"`
	Log           LogConfig    `yaml:"log"`
}

type MapConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MaxRooms    int `yaml:"max_rooms"`
	MinRoomSize int `yaml:"min_room_size"`
	MaxRoomSize int `yaml:"max_room_size"`
}

// PlayerConfig - стартовые характеристики героя.
type PlayerConfig struct {
	HP          int `yaml:"hp"`
	Defense     int `yaml:"defense"`
	Power       int `yaml:"power"`
	VisionRange int `yaml:"vision_range"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type ReplayConfig struct {
	Dir    string `yaml:"dir"`
	Record bool   `yaml:"record"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed: time.Now().UnixNano(),
		Map: MapConfig{
			Width:       80,
			Height:      43,
			MaxRooms:    30,
			MinRoomSize: 6,
			MaxRoomSize: 10,
		},
		Player: PlayerConfig{
			HP:          30,
			Defense:     2,
			Power:       5,
			VisionRange: 8,
		},
		MonsterVision: 8,
		Server:        ServerConfig{Port: "8080"},
		Replay:        ReplayConfig{Dir: "replays", Record: true},
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig накладывает YAML-файл поверх значений по умолчанию.
// Отсутствующие в файле поля сохраняют дефолты.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv переопределяет поля из переменных окружения (LOG_LEVEL, LOG_FORMAT, CD_PORT, CD_SEED).
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv("CD_PORT"); ok && v != "" {
		c.Server.Port = v
	}
	if v, ok := os.LookupEnv("CD_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CD_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}

// Validate отсекает конфиги, на которых генератор не сможет построить карту.
func (c Config) Validate() error {
	m := c.Map
	if m.Width < 10 || m.Height < 10 {
		return fmt.Errorf("map %dx%d is too small", m.Width, m.Height)
	}
	if m.MinRoomSize < 3 || m.MaxRoomSize < m.MinRoomSize {
		return fmt.Errorf("invalid room size range %d..%d", m.MinRoomSize, m.MaxRoomSize)
	}
	if m.MaxRoomSize >= m.Width-2 || m.MaxRoomSize >= m.Height-2 {
		return fmt.Errorf("room size %d does not fit into %dx%d map", m.MaxRoomSize, m.Width, m.Height)
	}
	if m.MaxRooms < 1 {
		return fmt.Errorf("max_rooms must be positive")
	}
	if c.Player.HP <= 0 {
		return fmt.Errorf("player hp must be positive")
	}
	return nil
}
