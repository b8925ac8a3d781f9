package storage

import (
	"sync"

	"dose-response/internal/domain"
)

// MemoryChunkStore держит вытесненные чанки в памяти в закодированном виде.
// Сжатие делает вытеснение полезным даже без диска.
type MemoryChunkStore struct {
	mu     sync.Mutex
	chunks map[domain.ChunkCoord][]byte
}

func NewMemoryChunkStore() *MemoryChunkStore {
	return &MemoryChunkStore{chunks: make(map[domain.ChunkCoord][]byte)}
}

func (s *MemoryChunkStore) SaveChunk(c *domain.Chunk) error {
	blob, err := EncodeBlob(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[c.Coord] = blob
	return nil
}

func (s *MemoryChunkStore) LoadChunk(coord domain.ChunkCoord) (*domain.Chunk, error) {
	s.mu.Lock()
	blob, ok := s.chunks[coord]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrChunkNotStored
	}

	var c domain.Chunk
	if err := DecodeBlob(blob, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MemoryChunkStore) DeleteChunk(coord domain.ChunkCoord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, coord)
	return nil
}

// Len — количество хранимых чанков.
func (s *MemoryChunkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks)
}

func (s *MemoryChunkStore) Close() error { return nil }
