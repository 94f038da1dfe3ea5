package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Options - параметры логгера из конфига.
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // "text" или "json"
	Output io.Writer // по умолчанию os.Stdout
}

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	// По умолчанию - "info". Для отладки можно выставить LOG_LEVEL=debug.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	Setup(Options{
		Level:  logLevel,
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// Setup (пере)настраивает глобальный логгер. Неизвестный уровень трактуется как info.
func Setup(opts Options) {
	Log = logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	Log.SetOutput(out)
}
