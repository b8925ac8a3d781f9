package logger

import (
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Options описывает настройки логгера из переменных окружения.
type Options struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	// File — дополнительный файл для логов (пусто = только stdout).
	File string `env:"LOG_FILE"`
}

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	opts := Options{Level: "info", Format: "text"}
	// Ошибка парсинга окружения не должна мешать запуску: остаёмся на дефолтах.
	_ = env.Parse(&opts)
	InitWith(opts)
}

// InitWith инициализирует логгер с явными настройками.
func InitWith(opts Options) {
	Log = logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" - для сбора логов, "text" - для разработки.
	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		// Файл логов не обязателен: если открыть не удалось, пишем только в stdout.
		if f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	Log.SetOutput(out)
}

// Discard глушит вывод (удобно в бенчмарках и длинных тестах).
func Discard() {
	if Log == nil {
		Init()
	}
	Log.SetOutput(io.Discard)
}
