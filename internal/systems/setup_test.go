package systems

import (
	"os"
	"testing"

	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/pkg/logger"
	"dose-response/pkg/rng"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()
	logger.Discard()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// fixture описывает рукотворный мир: пустая земля, деревья, монстры и предметы в заданных клетках.
type fixture struct {
	trees    []domain.Point
	monsters []placedMonster
	items    []domain.ItemSlot
	size     int
}

type placedMonster struct {
	pos  domain.Point
	kind enums.MonsterKind
}

func (f fixture) generate(_, _ *rng.Random, coord domain.ChunkCoord, size int, _ domain.Point) *domain.Chunk {
	c := &domain.Chunk{Coord: coord, Size: size, Tiles: make([]domain.Tile, size*size)}
	for _, p := range f.trees {
		if c.Contains(p) {
			c.Tile(p).Kind = enums.TileTree
		}
	}
	for _, pm := range f.monsters {
		if c.Contains(pm.pos) {
			c.Monsters = append(c.Monsters, &domain.Monster{
				ID:   types.PackMonsterID(coord.X, coord.Y, len(c.Monsters)),
				Kind: pm.kind,
				Pos:  pm.pos,
			})
		}
	}
	for _, it := range f.items {
		if c.Contains(it.Pos) {
			c.Items = append(c.Items, it)
		}
	}
	return c
}

func (f fixture) world() *domain.World {
	return domain.NewWorld(domain.WorldOptions{
		Seed:      1,
		ChunkSize: 16,
		WorldSize: f.size,
		Generator: f.generate,
	})
}

func pt(x, y int) domain.Point {
	return domain.Point{X: x, Y: y}
}
