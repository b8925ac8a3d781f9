package engine

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"dose-response/internal/core/types"
	"dose-response/internal/domain"
	"dose-response/internal/infrastructure/storage"
	"dose-response/pkg/utils"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все чанки и все вытягивания сессии.
	Seed uint32 `env:"DOSE_SEED"`

	ChunkSize int `env:"DOSE_CHUNK_SIZE" envDefault:"32"`
	WorldSize int `env:"DOSE_WORLD_SIZE" envDefault:"1073741824"`

	// ReplayDir - куда пишутся логи реплеев. ReplayFile задаёт точное имя файла.
	ReplayDir  string `env:"DOSE_REPLAY_DIR" envDefault:"replays"`
	ReplayFile string `env:"DOSE_REPLAY_FILE"`
	SavePath   string `env:"DOSE_SAVE_PATH" envDefault:"SAVEDGAME.sav"`

	// VerifyEvery - каждые сколько ходов писать снимок проверки.
	VerifyEvery int `env:"DOSE_VERIFY_EVERY" envDefault:"1"`

	// MaxResidentChunks - сколько чанков держать в памяти (0 = без ограничения).
	MaxResidentChunks int `env:"DOSE_MAX_RESIDENT_CHUNKS" envDefault:"0"`
	// ChunkStorePath - файл SQLite для вытесненных чанков. Пусто = хранилище в памяти.
	ChunkStorePath string `env:"DOSE_CHUNK_STORE"`

	HaltOnDesync bool `env:"DOSE_HALT_ON_DESYNC" envDefault:"false"`
	Invincible   bool `env:"DOSE_INVINCIBLE" envDefault:"false"`

	// DebugAddr - адрес отладочного сервера. Пусто = сервер не запускается.
	DebugAddr string `env:"DOSE_DEBUG_ADDR"`

	VisionRadius int `env:"DOSE_VISION_RADIUS" envDefault:"8"`
	ActiveRadius int `env:"DOSE_ACTIVE_RADIUS" envDefault:"16"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         utils.RandomSeed(),
		ChunkSize:    domain.DefaultChunkSize,
		WorldSize:    domain.DefaultWorldSize,
		ReplayDir:    "replays",
		SavePath:     storage.DefaultSaveFile,
		VerifyEvery:  1,
		VisionRadius: domain.VisionRadius,
		ActiveRadius: domain.ActiveRadius,
	}
}

// LoadConfig читает конфиг из окружения. Если DOSE_SEED не задан, сид случайный.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = utils.RandomSeed()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет ограничения упаковки MonsterID и прочие инварианты.
func (c Config) Validate() error {
	var errs []error
	if c.ChunkSize < 1 || c.ChunkSize > 63 {
		errs = append(errs, fmt.Errorf("chunk size %d out of range 1..63", c.ChunkSize))
	}
	if c.WorldSize < 1 || c.WorldSize > domain.DefaultWorldSize {
		errs = append(errs, fmt.Errorf("world size %d out of range 1..%d", c.WorldSize, domain.DefaultWorldSize))
	}
	// Крайний чанк слева имеет координату -ceil(half/size), она должна влезть в MonsterID.
	if half := c.WorldSize / 2; c.ChunkSize >= 1 && (half+c.ChunkSize-1)/c.ChunkSize > types.MaxChunkCoord+1 {
		errs = append(errs, fmt.Errorf("world size %d needs chunk coordinates beyond %d", c.WorldSize, types.MaxChunkCoord))
	}
	if c.VerifyEvery < 1 {
		errs = append(errs, fmt.Errorf("verify interval %d must be positive", c.VerifyEvery))
	}
	if c.MaxResidentChunks < 0 {
		errs = append(errs, fmt.Errorf("max resident chunks %d is negative", c.MaxResidentChunks))
	}
	if c.VisionRadius < 1 || c.ActiveRadius < 1 {
		errs = append(errs, errors.New("vision and active radius must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
