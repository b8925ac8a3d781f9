package dungeon

import (
	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/pkg/rng"
)

// GenerateChunk строит лесной чанк.
//
// Порядок вытягиваний из r фиксирован и входит в формат реплеев:
//  1. карта, построчно сверху вниз, слева направо;
//  2. монстры на пустых клетках в том же порядке;
//  3. предметы на пустых клетках в том же порядке.
//
// flavor используется только для косметики (цвет деревьев) и не влияет на r.
// Клетка появления игрока всегда пустая, без монстров и предметов, и для неё ничего не вытягивается.
func GenerateChunk(r, flavor *rng.Random, coord domain.ChunkCoord, size int, spawn domain.Point) *domain.Chunk {
	c := &domain.Chunk{
		Coord: coord,
		Size:  size,
		Tiles: make([]domain.Tile, size*size),
	}
	origin := coord.Origin(size)

	generateMap(c, r, flavor, origin, spawn)
	generateMonsters(c, r, origin, spawn)
	generateItems(c, r, origin, spawn)
	return c
}

func generateMap(c *domain.Chunk, r, flavor *rng.Random, origin, spawn domain.Point) {
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			p := origin.Shift(x, y)
			kind := enums.TileEmpty
			if p != spawn {
				kind = rng.WeightedChoice(r, terrainWeights)
			}

			tile := domain.Tile{Kind: kind, Color: types.ColorEmpty}
			if kind == enums.TileTree {
				tile.Color = rng.ChooseWithFallback(flavor, treeColors, types.ColorTree1)
			}
			c.Tiles[y*c.Size+x] = tile
		}
	}
}

func generateMonsters(c *domain.Chunk, r *rng.Random, origin, spawn domain.Point) {
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			p := origin.Shift(x, y)
			if p == spawn || c.Tiles[y*c.Size+x].Kind != enums.TileEmpty {
				continue
			}

			pick := rng.WeightedChoice(r, monsterWeights)
			if !pick.ok {
				continue
			}

			m := &domain.Monster{
				ID:    types.PackMonsterID(c.Coord.X, c.Coord.Y, len(c.Monsters)),
				Kind:  pick.kind,
				Pos:   p,
				Glyph: MonsterGlyphs[pick.kind],
			}
			if pick.kind == enums.MonsterNpc {
				m.Bonus = rng.ChooseWithFallback(r, companionBonuses, enums.BonusDoubleWillGrowth)
				m.Glyph = m.Glyph.WithColor(npcColors[m.Bonus])
			}
			c.Monsters = append(c.Monsters, m)
		}
	}
}

// Предметы могут лежать в одной клетке с монстром.
func generateItems(c *domain.Chunk, r *rng.Random, origin, spawn domain.Point) {
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			p := origin.Shift(x, y)
			if p == spawn || c.Tiles[y*c.Size+x].Kind != enums.TileEmpty {
				continue
			}

			pick := rng.WeightedChoice(r, itemWeights)
			if !pick.ok {
				continue
			}
			c.Items = append(c.Items, domain.ItemSlot{Pos: p, Item: NewItem(pick.kind, r)})
		}
	}
}
