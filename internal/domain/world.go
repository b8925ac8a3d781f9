package domain

import (
	"container/list"
	"errors"

	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/pkg/rng"
)

var (
	ErrUnknownMonster = errors.New("unknown monster")
	ErrDeadMonster    = errors.New("monster is dead")
	// ErrChunkNotStored возвращается хранилищем, если чанк в нём не сохранялся.
	ErrChunkNotStored = errors.New("chunk not stored")
)

// Tile — одна клетка карты.
type Tile struct {
	Kind     enums.TileKind `json:"kind" cbor:"1,keyasint"`
	Color    types.Color    `json:"color" cbor:"2,keyasint,omitempty"`
	Explored bool           `json:"explored" cbor:"3,keyasint,omitempty"`
	Visible  bool           `json:"visible" cbor:"4,keyasint,omitempty"`
}

// Chunk — квадрат клеток со своими монстрами и предметами.
type Chunk struct {
	Coord    ChunkCoord `json:"coord" cbor:"1,keyasint"`
	Size     int        `json:"size" cbor:"2,keyasint"`
	Tiles    []Tile     `json:"tiles" cbor:"3,keyasint"`
	Monsters []*Monster `json:"monsters" cbor:"4,keyasint"`
	Items    []ItemSlot `json:"items" cbor:"5,keyasint"`
	// Modified — чанк отличается от результата генерации.
	// Немодифицированный чанк можно выбросить из памяти и сгенерировать заново.
	Modified bool `json:"modified" cbor:"6,keyasint"`
}

// Origin — мировая позиция левого верхнего угла.
func (c *Chunk) Origin() Point {
	return c.Coord.Origin(c.Size)
}

// Contains — лежит ли мировая позиция внутри чанка.
func (c *Chunk) Contains(p Point) bool {
	return ChunkCoordOf(p, c.Size) == c.Coord
}

// Tile возвращает клетку по мировой позиции внутри чанка.
func (c *Chunk) Tile(p Point) *Tile {
	return &c.Tiles[LocalIndex(p, c.Size)]
}

func (c *Chunk) monsterIndex(id types.MonsterID) int {
	for i, m := range c.Monsters {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (c *Chunk) itemIndex(p Point) int {
	for i, it := range c.Items {
		if it.Pos == p {
			return i
		}
	}
	return -1
}

// ChunkGenerator строит содержимое чанка из выделенных ему потоков RNG.
// Функция обязана быть чистой: результат зависит только от аргументов.
type ChunkGenerator func(r, flavor *rng.Random, coord ChunkCoord, size int, spawn Point) *Chunk

// ChunkStore хранит вытесненные из памяти модифицированные чанки.
type ChunkStore interface {
	SaveChunk(c *Chunk) error
	// LoadChunk возвращает ErrChunkNotStored, если чанк не сохранялся.
	LoadChunk(coord ChunkCoord) (*Chunk, error)
	DeleteChunk(coord ChunkCoord) error
}

type chunkState uint8

const (
	chunkResident chunkState = iota
	chunkSpilled
	chunkDropped
)

// WorldOptions — параметры создания мира.
type WorldOptions struct {
	Seed      uint32
	ChunkSize int
	WorldSize int
	Spawn     Point
	Generator ChunkGenerator
	// Store — куда вытесняются модифицированные чанки. Без него они всегда остаются в памяти.
	Store ChunkStore
	// MaxResident — сколько чанков держать в памяти (0 = без ограничения).
	MaxResident int
}

// World — бесконечная карта, разбитая на лениво создаваемые чанки.
//
// Мир однопоточный: им владеет симуляция, внешние наблюдатели получают только копии снимков.
type World struct {
	seed      uint32
	chunkSize int
	worldSize int
	spawn     Point
	generate  ChunkGenerator

	// chunks — чанки в памяти.
	chunks map[ChunkCoord]*Chunk
	// known — все когда-либо созданные чанки, включая вытесненные.
	known map[ChunkCoord]chunkState
	// monsters — индекс монстров по ID. Сводка позволяет не загружать чанк ради снимка.
	monsters map[types.MonsterID]*monsterRef

	store       ChunkStore
	maxResident int
	lru         *list.List
	lruPos      map[ChunkCoord]*list.Element
}

// NewWorld создаёт пустой мир. Чанки появятся при первом обращении.
func NewWorld(opts WorldOptions) *World {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.WorldSize <= 0 {
		opts.WorldSize = DefaultWorldSize
	}
	return &World{
		seed:        opts.Seed,
		chunkSize:   opts.ChunkSize,
		worldSize:   opts.WorldSize,
		spawn:       opts.Spawn,
		generate:    opts.Generator,
		chunks:      make(map[ChunkCoord]*Chunk),
		known:       make(map[ChunkCoord]chunkState),
		monsters:    make(map[types.MonsterID]*monsterRef),
		store:       opts.Store,
		maxResident: opts.MaxResident,
		lru:         list.New(),
		lruPos:      make(map[ChunkCoord]*list.Element),
	}
}

func (w *World) Seed() uint32       { return w.seed }
func (w *World) ChunkSize() int     { return w.chunkSize }
func (w *World) WorldSize() int     { return w.worldSize }
func (w *World) Spawn() Point       { return w.spawn }
func (w *World) ChunkCount() int    { return len(w.known) }
func (w *World) ResidentCount() int { return len(w.chunks) }

// IsInBounds — лежит ли позиция внутри мира [-size/2, size/2).
func (w *World) IsInBounds(p Point) bool {
	half := w.worldSize / 2
	return p.X >= -half && p.X < half && p.Y >= -half && p.Y < half
}
