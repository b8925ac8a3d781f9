package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"dose-response/internal/domain"

	_ "modernc.org/sqlite"
)

const chunkSchema = `CREATE TABLE IF NOT EXISTS chunks (
	seed INTEGER NOT NULL,
	cx   INTEGER NOT NULL,
	cy   INTEGER NOT NULL,
	data BLOB    NOT NULL,
	PRIMARY KEY (seed, cx, cy)
)`

// SQLiteChunkStore хранит вытесненные чанки в SQLite. Один файл может обслуживать несколько сессий:
// чанки разделены по сиду.
type SQLiteChunkStore struct {
	db   *sql.DB
	seed uint32
}

// OpenSQLiteChunkStore открывает (или создаёт) хранилище. Путь ":memory:" создаёт временную базу.
func OpenSQLiteChunkStore(path string, seed uint32) (*SQLiteChunkStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("chunk store path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Симуляция однопоточна; одно соединение нужно и для ":memory:".
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(chunkSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create chunks table: %w", err)
	}
	// Чанки прошлой сессии с тем же сидом не относятся к новой игре.
	if _, err := db.Exec(`DELETE FROM chunks WHERE seed = ?`, int64(seed)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reset chunks: %w", err)
	}
	return &SQLiteChunkStore{db: db, seed: seed}, nil
}

func (s *SQLiteChunkStore) SaveChunk(c *domain.Chunk) error {
	blob, err := EncodeBlob(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO chunks (seed, cx, cy, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT (seed, cx, cy) DO UPDATE SET data = excluded.data`,
		int64(s.seed), c.Coord.X, c.Coord.Y, blob,
	)
	if err != nil {
		return fmt.Errorf("save %v: %w", c.Coord, err)
	}
	return nil
}

func (s *SQLiteChunkStore) LoadChunk(coord domain.ChunkCoord) (*domain.Chunk, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT data FROM chunks WHERE seed = ? AND cx = ? AND cy = ?`,
		int64(s.seed), coord.X, coord.Y,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChunkNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", coord, err)
	}

	var c domain.Chunk
	if err := DecodeBlob(blob, &c); err != nil {
		return nil, fmt.Errorf("load %v: %w", coord, err)
	}
	return &c, nil
}

func (s *SQLiteChunkStore) DeleteChunk(coord domain.ChunkCoord) error {
	_, err := s.db.Exec(
		`DELETE FROM chunks WHERE seed = ? AND cx = ? AND cy = ?`,
		int64(s.seed), coord.X, coord.Y,
	)
	if err != nil {
		return fmt.Errorf("delete %v: %w", coord, err)
	}
	return nil
}

// Len — количество чанков этой сессии в базе.
func (s *SQLiteChunkStore) Len() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks WHERE seed = ?`, int64(s.seed)).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (s *SQLiteChunkStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
