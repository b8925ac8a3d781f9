package domain

import (
	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
)

// Monster — существо, живущее в чанке. Принадлежит ровно одному чанку в каждый момент.
type Monster struct {
	ID    types.MonsterID      `json:"id"`
	Kind  enums.MonsterKind    `json:"kind"`
	Pos   Point                `json:"pos"`
	Dead  bool                 `json:"dead"`
	Glyph types.Glyph          `json:"glyph"`
	Bonus enums.CompanionBonus `json:"bonus,omitempty"`
}

// IsAlive — жив ли монстр.
func (m *Monster) IsAlive() bool {
	return m != nil && !m.Dead
}

// IsHostile — атакует ли монстр игрока.
func (m *Monster) IsHostile() bool {
	return m.Kind.IsHostile()
}

// monsterRef — сводка о монстре в индексе мира.
// Позволяет строить снимки состояния без загрузки чанков.
type monsterRef struct {
	Chunk ChunkCoord
	Pos   Point
	Kind  enums.MonsterKind
	Dead  bool
}
