package domain

import (
	"fmt"
	"slices"

	"dose-response/internal/core/types"
	"dose-response/pkg/rng"
)

// Chunk возвращает чанк по координате, создавая или подгружая его при необходимости.
func (w *World) Chunk(coord ChunkCoord) *Chunk {
	if c, ok := w.chunks[coord]; ok {
		w.touch(coord)
		return c
	}

	state, seen := w.known[coord]
	if seen && state == chunkSpilled {
		c := w.reload(coord)
		w.admit(c)
		return c
	}

	c := w.generateChunk(coord)
	if !seen {
		// Монстры выброшенного немодифицированного чанка уже в индексе и совпадают с новыми.
		for _, m := range c.Monsters {
			w.monsters[m.ID] = &monsterRef{Chunk: coord, Pos: m.Pos, Kind: m.Kind, Dead: m.Dead}
		}
	}
	w.admit(c)
	return c
}

func (w *World) generateChunk(coord ChunkCoord) *Chunk {
	primary := rng.FromSeed(rng.DeriveSeed(w.seed, coord.X, coord.Y, rng.StreamGameplay))
	flavor := rng.FromSeed(rng.DeriveSeed(w.seed, coord.X, coord.Y, rng.StreamFlavor))
	return w.generate(primary, flavor, coord, w.chunkSize, w.spawn)
}

// ChunkAt возвращает чанк, содержащий мировую позицию.
func (w *World) ChunkAt(p Point) *Chunk {
	return w.Chunk(ChunkCoordOf(p, w.chunkSize))
}

// TileAt возвращает копию клетки.
func (w *World) TileAt(p Point) Tile {
	return *w.ChunkAt(p).Tile(p)
}

// SetVisible обновляет флаги видимости. Видимая клетка становится исследованной.
func (w *World) SetVisible(p Point, visible bool) {
	c := w.ChunkAt(p)
	t := c.Tile(p)
	explored := t.Explored || visible
	if t.Visible == visible && t.Explored == explored {
		return
	}
	t.Visible = visible
	t.Explored = explored
	c.Modified = true
}

// PositionsOfAllChunks возвращает координаты всех созданных чанков в каноническом порядке.
func (w *World) PositionsOfAllChunks() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(w.known))
	for c := range w.known {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, compareCoords)
	return coords
}

func compareCoords(a, b ChunkCoord) int {
	if a.Less(b) {
		return -1
	}
	if b.Less(a) {
		return 1
	}
	return 0
}

// MonstersInChunk возвращает копии монстров чанка (включая мёртвых).
// Менять мир можно только через MoveMonster и KillMonster.
func (w *World) MonstersInChunk(coord ChunkCoord) []Monster {
	ms := w.Chunk(coord).Monsters
	out := make([]Monster, len(ms))
	for i, m := range ms {
		out[i] = *m
	}
	return out
}

// Monster находит монстра по ID, где бы он ни находился. Возвращает nil для неизвестного ID.
func (w *World) Monster(id types.MonsterID) *Monster {
	ref, ok := w.monsters[id]
	if !ok {
		return nil
	}
	c := w.Chunk(ref.Chunk)
	if i := c.monsterIndex(id); i >= 0 {
		return c.Monsters[i]
	}
	return nil
}

// MonsterAt возвращает живого монстра в клетке.
func (w *World) MonsterAt(p Point) *Monster {
	for _, m := range w.ChunkAt(p).Monsters {
		if !m.Dead && m.Pos == p {
			return m
		}
	}
	return nil
}

// MonstersNear возвращает живых монстров в квадрате радиуса r вокруг center, упорядоченных по ID.
func (w *World) MonstersNear(center Point, r int) []*Monster {
	lo := ChunkCoordOf(center.Shift(-r, -r), w.chunkSize)
	hi := ChunkCoordOf(center.Shift(r, r), w.chunkSize)

	var found []*Monster
	for cx := lo.X; cx <= hi.X; cx++ {
		for cy := lo.Y; cy <= hi.Y; cy++ {
			for _, m := range w.Chunk(ChunkCoord{X: cx, Y: cy}).Monsters {
				if !m.Dead && m.Pos.ChebyshevTo(center) <= r {
					found = append(found, m)
				}
			}
		}
	}
	slices.SortFunc(found, func(a, b *Monster) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return found
}

// MoveMonster переносит монстра в новую клетку, при необходимости в другой чанк.
// Операция атомарна: при ошибке мир не меняется.
func (w *World) MoveMonster(id types.MonsterID, to Point) error {
	ref, ok := w.monsters[id]
	if !ok {
		return fmt.Errorf("move %v: %w", id, ErrUnknownMonster)
	}
	if ref.Dead {
		return fmt.Errorf("move %v: %w", id, ErrDeadMonster)
	}

	src := w.Chunk(ref.Chunk)
	i := src.monsterIndex(id)
	if i < 0 {
		return fmt.Errorf("move %v: index points to %v but monster is missing: %w", id, ref.Chunk, ErrUnknownMonster)
	}

	dstCoord := ChunkCoordOf(to, w.chunkSize)
	if dstCoord == ref.Chunk {
		src.Monsters[i].Pos = to
		src.Modified = true
		ref.Pos = to
		return nil
	}

	// Чанк назначения создаётся до любых изменений источника.
	dst := w.Chunk(dstCoord)

	m := src.Monsters[i]
	src.Monsters = slices.Delete(src.Monsters, i, i+1)
	m.Pos = to
	dst.Monsters = append(dst.Monsters, m)
	src.Modified = true
	dst.Modified = true

	ref.Chunk = dstCoord
	ref.Pos = to
	return nil
}

// KillMonster помечает монстра мёртвым. Тело остаётся в чанке.
func (w *World) KillMonster(id types.MonsterID) error {
	ref, ok := w.monsters[id]
	if !ok {
		return fmt.Errorf("kill %v: %w", id, ErrUnknownMonster)
	}
	if ref.Dead {
		return fmt.Errorf("kill %v: %w", id, ErrDeadMonster)
	}
	c := w.Chunk(ref.Chunk)
	i := c.monsterIndex(id)
	if i < 0 {
		return fmt.Errorf("kill %v: %w", id, ErrUnknownMonster)
	}
	c.Monsters[i].Dead = true
	c.Modified = true
	ref.Dead = true
	return nil
}

// ItemAt возвращает предмет в клетке.
func (w *World) ItemAt(p Point) (Item, bool) {
	c := w.ChunkAt(p)
	if i := c.itemIndex(p); i >= 0 {
		return c.Items[i].Item, true
	}
	return Item{}, false
}

// TakeItem убирает предмет из клетки и возвращает его.
func (w *World) TakeItem(p Point) (Item, bool) {
	c := w.ChunkAt(p)
	i := c.itemIndex(p)
	if i < 0 {
		return Item{}, false
	}
	it := c.Items[i].Item
	c.Items = slices.Delete(c.Items, i, i+1)
	c.Modified = true
	return it, true
}

// LivingMonsters возвращает снимки живых монстров в каноническом порядке.
// Читает только индекс и не создаёт и не подгружает чанки.
func (w *World) LivingMonsters() []MonsterSnapshot {
	out := make([]MonsterSnapshot, 0, len(w.monsters))
	for _, ref := range w.monsters {
		if ref.Dead {
			continue
		}
		out = append(out, MonsterSnapshot{
			Pos:      ref.Pos,
			ChunkPos: ref.Chunk.Origin(w.chunkSize),
			Kind:     ref.Kind,
		})
	}
	v := Verification{Monsters: out}
	v.SortMonsters()
	return v.Monsters
}
