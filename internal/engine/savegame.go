package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/internal/infrastructure/storage"
	"dose-response/pkg/logger"
	"dose-response/pkg/rng"
)

// savedState — всё, что нужно, чтобы продолжить сессию. Эффекты, лог и рекордер не сохраняются.
type savedState struct {
	Seed           uint32               `cbor:"1,keyasint"`
	Turn           int                  `cbor:"2,keyasint"`
	TickID         int                  `cbor:"3,keyasint"`
	Rng            []byte               `cbor:"4,keyasint"`
	Player         domain.Player        `cbor:"5,keyasint"`
	World          domain.WorldState    `cbor:"6,keyasint"`
	Companion      types.MonsterID      `cbor:"7,keyasint"`
	CompanionBonus enums.CompanionBonus `cbor:"8,keyasint"`
	Side           Side                 `cbor:"9,keyasint"`
	Status         Status               `cbor:"10,keyasint"`
	Visible        []domain.Point       `cbor:"11,keyasint"`
	Commands       []domain.Command     `cbor:"12,keyasint"`
}

func (g *Game) state() (savedState, error) {
	rngState, err := g.Rng.MarshalBinary()
	if err != nil {
		return savedState{}, fmt.Errorf("rng state: %w", err)
	}
	return savedState{
		Seed:           g.Seed,
		Turn:           g.Turn,
		TickID:         g.TickID,
		Rng:            rngState,
		Player:         *g.Player,
		World:          g.World.State(),
		Companion:      g.Companion,
		CompanionBonus: g.CompanionBonus,
		Side:           g.Side,
		Status:         g.Status,
		Visible:        g.visible,
		Commands:       g.Commands,
	}, nil
}

// SaveGame записывает игру в файл сохранения.
func SaveGame(g *Game, svc *storage.SaveService) error {
	st, err := g.state()
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	if err := svc.Save(st); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// LoadGame поднимает игру из сохранения. Сид и параметры мира берутся из файла,
// остальное (лимиты памяти, радиусы) — из cfg. Если файла нет, возвращает storage.ErrNoSave.
// При любой ошибке файл сохранения остаётся на месте.
func LoadGame(cfg Config, svc *storage.SaveService) (*Game, error) {
	var st savedState
	if err := svc.Load(&st); err != nil {
		return nil, err
	}

	cfg.Seed = st.Seed
	cfg.ChunkSize = st.World.ChunkSize
	cfg.WorldSize = st.World.WorldSize
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	r := &rng.Random{}
	if err := r.UnmarshalBinary(st.Rng); err != nil {
		return nil, fmt.Errorf("load game: rng state: %w", err)
	}

	store, closer, err := openChunkStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	world, err := restoreWorld(cfg, st.World, store)
	if err != nil {
		_ = closer()
		return nil, fmt.Errorf("load game: %w", err)
	}

	player := st.Player
	g := &Game{
		Seed:           st.Seed,
		Config:         cfg,
		World:          world,
		Player:         &player,
		Rng:            r,
		AudioRng:       r.Clone(),
		Turn:           st.Turn,
		TickID:         st.TickID,
		Side:           st.Side,
		Status:         st.Status,
		Companion:      st.Companion,
		CompanionBonus: st.CompanionBonus,
		Commands:       st.Commands,
		visible:        st.Visible,
		closer:         closer,
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "savegame",
		"seed":      g.Seed,
		"turn":      g.Turn,
		"chunks":    g.World.ChunkCount(),
	})
	// Сохранение одноразовое: файл удаляется только после того, как игра поднята целиком.
	if err := svc.Remove(); err != nil {
		log.WithError(err).Warn("Failed to remove loaded save")
	}
	log.Info("Game loaded")
	return g, nil
}
