package domain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/pkg/logger"
)

func (w *World) admit(c *Chunk) {
	w.chunks[c.Coord] = c
	w.known[c.Coord] = chunkResident
	w.lruPos[c.Coord] = w.lru.PushFront(c.Coord)
}

func (w *World) touch(coord ChunkCoord) {
	if el, ok := w.lruPos[coord]; ok {
		w.lru.MoveToFront(el)
	}
}

func (w *World) reload(coord ChunkCoord) *Chunk {
	c, err := w.store.LoadChunk(coord)
	if err != nil {
		// Без вытесненного чанка мир нельзя продолжить согласованно.
		panic(fmt.Errorf("reload %v: %w", coord, err))
	}
	c.Modified = true
	// Чанк снова в памяти; при следующем вытеснении он будет записан заново.
	if err := w.store.DeleteChunk(coord); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "world",
			"chunk":     coord.String(),
			"error":     err,
		}).Warn("Failed to drop reloaded chunk from store")
	}
	return c
}

// Compact вытесняет давно не использованные чанки, пока их в памяти не больше MaxResident.
// Вызывается между тиками: во время операции мира ссылки на чанки должны оставаться живыми.
// Вытеснение не меняет наблюдаемого поведения мира.
func (w *World) Compact() {
	if w.maxResident <= 0 {
		return
	}

	el := w.lru.Back()
	for len(w.chunks) > w.maxResident && el != nil {
		prev := el.Prev()
		coord := el.Value.(ChunkCoord)
		if w.evict(coord) {
			w.lru.Remove(el)
			delete(w.lruPos, coord)
		}
		el = prev
	}
}

func (w *World) evict(coord ChunkCoord) bool {
	c := w.chunks[coord]
	if !c.Modified {
		delete(w.chunks, coord)
		w.known[coord] = chunkDropped
		return true
	}

	if w.store == nil {
		return false
	}
	if err := w.store.SaveChunk(c); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "world",
			"chunk":     coord.String(),
			"error":     err,
		}).Error("Failed to spill chunk, keeping it resident")
		return false
	}
	delete(w.chunks, coord)
	w.known[coord] = chunkSpilled
	return true
}

// IsResident — находится ли чанк в памяти.
func (w *World) IsResident(coord ChunkCoord) bool {
	_, ok := w.chunks[coord]
	return ok
}

// WorldState — полное содержимое мира для сохранения.
type WorldState struct {
	Seed      uint32   `cbor:"1,keyasint"`
	ChunkSize int      `cbor:"2,keyasint"`
	WorldSize int      `cbor:"3,keyasint"`
	Spawn     Point    `cbor:"4,keyasint"`
	Chunks    []*Chunk `cbor:"5,keyasint"`
}

// State собирает все созданные чанки, включая вытесненные, в каноническом порядке.
func (w *World) State() WorldState {
	st := WorldState{
		Seed:      w.seed,
		ChunkSize: w.chunkSize,
		WorldSize: w.worldSize,
		Spawn:     w.spawn,
	}
	for _, coord := range w.PositionsOfAllChunks() {
		st.Chunks = append(st.Chunks, w.Chunk(coord))
	}
	return st
}

// RestoreWorld собирает мир из сохранённого состояния.
func RestoreWorld(st WorldState, gen ChunkGenerator, store ChunkStore, maxResident int) (*World, error) {
	w := NewWorld(WorldOptions{
		Seed:        st.Seed,
		ChunkSize:   st.ChunkSize,
		WorldSize:   st.WorldSize,
		Spawn:       st.Spawn,
		Generator:   gen,
		Store:       store,
		MaxResident: maxResident,
	})

	for _, c := range st.Chunks {
		if c == nil {
			return nil, errors.New("restore world: nil chunk")
		}
		if _, dup := w.known[c.Coord]; dup {
			return nil, fmt.Errorf("restore world: duplicate %v", c.Coord)
		}
		if len(c.Tiles) != w.chunkSize*w.chunkSize {
			return nil, fmt.Errorf("restore world: %v has %d tiles", c.Coord, len(c.Tiles))
		}
		for _, m := range c.Monsters {
			if _, dup := w.monsters[m.ID]; dup {
				return nil, fmt.Errorf("restore world: duplicate monster %v", m.ID)
			}
			w.monsters[m.ID] = &monsterRef{Chunk: c.Coord, Pos: m.Pos, Kind: m.Kind, Dead: m.Dead}
		}
		w.admit(c)
	}
	return w, nil
}
