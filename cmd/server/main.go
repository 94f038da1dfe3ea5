package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"rogue-server/internal/agent"
	"rogue-server/internal/engine"
	"rogue-server/internal/infrastructure/storage"
	"rogue-server/internal/network"
	"rogue-server/internal/server"
	"rogue-server/pkg/dungeon"
	"rogue-server/pkg/logger"

	"github.com/joho/godotenv"
)

func init() {
	logger.Init()
}

func main() {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.WithError(err).Warn("Failed to read .env")
	}

	// 1. Парсинг флагов
	var (
		seed       int64
		configPath string
		replayPath string
		botSteps   int
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps config/env/random)")
	flag.StringVar(&configPath, "config", os.Getenv("CD_CONFIG"), "Path to YAML config")
	flag.StringVar(&replayPath, "replay", "", "Path to .cdrp replay file to simulate")
	flag.IntVar(&botSteps, "bot", 0, "Run a headless bot for N commands")
	flag.Parse()

	// 2. Конфиг: дефолты -> YAML -> env -> флаги
	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load config")
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		logger.Log.WithError(err).Fatal("Invalid environment")
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger.Log.Info("Starting rogue server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		runReplay(ctx, cfg, replayPath)
		return
	}

	logger.Log.Infof("Using master seed: %d", cfg.Seed)

	// 3. Инициализация ядра
	game, err := engine.NewGame(ctx, cfg, dungeon.NewGenerator(cfg.Seed, dungeonParams(cfg)), engine.NewMemoryPersistence())
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create game")
	}

	var journal engine.JournalSink
	if cfg.Replay.Record {
		replays, err := storage.NewReplayService(cfg.Replay.Dir)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to prepare replay storage")
		}
		journal = replays
	}

	service := engine.NewService(game, network.NewBroadcaster(), journal)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.WithError(err).Error("Game loop stopped")
		}
	}()

	if botSteps > 0 {
		bot := agent.NewBot("bot_local", service, botSteps)
		go bot.Run(ctx)
	}

	// 4. Запуск сервера (блокируется до сигнала)
	srv := server.New(service, cfg.Server.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server stopped")
		stop()
	}

	logger.Log.Info("Shutting down...")
	wg.Wait()
	logger.Log.Info("Done.")
}

func runReplay(ctx context.Context, cfg engine.Config, path string) {
	logger.Log.Info("Mode: Replay Simulation")

	replays := &storage.ReplayService{}
	session, err := replays.Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay")
	}

	gen := dungeon.NewGenerator(session.Seed, dungeonParams(cfg))
	if _, err := engine.Replay(ctx, cfg, gen, session); err != nil {
		logger.Log.WithError(err).Fatal("Replay failed")
	}
}

func dungeonParams(cfg engine.Config) dungeon.Params {
	return dungeon.Params{
		Width:         cfg.Map.Width,
		Height:        cfg.Map.Height,
		MaxRooms:      cfg.Map.MaxRooms,
		MinRoomSize:   cfg.Map.MinRoomSize,
		MaxRoomSize:   cfg.Map.MaxRoomSize,
		PlayerHP:      cfg.Player.HP,
		PlayerDefense: cfg.Player.Defense,
		PlayerPower:   cfg.Player.Power,
		PlayerVision:  cfg.Player.VisionRange,
		MonsterVision: cfg.MonsterVision,
	}
}
