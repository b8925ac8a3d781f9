package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/internal/infrastructure/storage"
	"dose-response/pkg/dungeon"
	"dose-response/pkg/logger"
)

// openChunkStore выбирает хранилище вытесненных чанков.
// Без лимита резидентных чанков хранилище не нужно: мир всё держит в памяти.
func openChunkStore(cfg Config) (domain.ChunkStore, func() error, error) {
	noop := func() error { return nil }
	if cfg.MaxResidentChunks == 0 {
		return nil, noop, nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component":    "chunk_store",
		"max_resident": cfg.MaxResidentChunks,
	})

	if cfg.ChunkStorePath == "" {
		log.Info("Spilling evicted chunks to memory")
		s := storage.NewMemoryChunkStore()
		return s, s.Close, nil
	}

	s, err := storage.OpenSQLiteChunkStore(cfg.ChunkStorePath, cfg.Seed)
	if err != nil {
		return nil, noop, fmt.Errorf("open chunk store: %w", err)
	}
	log.WithField("path", cfg.ChunkStorePath).Info("Spilling evicted chunks to sqlite")
	return s, s.Close, nil
}

// buildWorld создаёт пустой мир с генератором леса.
func buildWorld(cfg Config, spawn domain.Point, store domain.ChunkStore) *domain.World {
	return domain.NewWorld(domain.WorldOptions{
		Seed:        cfg.Seed,
		ChunkSize:   cfg.ChunkSize,
		WorldSize:   cfg.WorldSize,
		Spawn:       spawn,
		Generator:   dungeon.GenerateChunk,
		Store:       store,
		MaxResident: cfg.MaxResidentChunks,
	})
}

// restoreWorld поднимает мир из сохранения.
func restoreWorld(cfg Config, st domain.WorldState, store domain.ChunkStore) (*domain.World, error) {
	return domain.RestoreWorld(st, dungeon.GenerateChunk, store, cfg.MaxResidentChunks)
}
