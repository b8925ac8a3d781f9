package dungeon

import (
	"dose-response/internal/core/types"
	"dose-response/internal/domain"
	"dose-response/pkg/rng"
)

var playerChars = []byte{'@', '&', 'Q'}

// CreatePlayer создаёт игрока в точке появления.
// Внешний вид выбирается из основного потока: это первые вытягивания сессии.
func CreatePlayer(pos domain.Point, r *rng.Random, invincible bool) *domain.Player {
	char := rng.ChooseWithFallback(r, playerChars, '@')
	colorIndex := r.RangeInclusive(0, len(types.PlayerColors)-1)

	return &domain.Player{
		Pos:        pos,
		Glyph:      types.MakeGlyph(types.PlayerColors[colorIndex], char),
		ColorIndex: colorIndex,
		Will:       domain.PlayerStartWill,
		MaxWill:    domain.PlayerMaxWill,
		Mind:       domain.PlayerStartMind,
		Inventory:  []domain.Item{},
		Invincible: invincible,
	}
}
