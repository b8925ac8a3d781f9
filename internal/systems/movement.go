package systems

import (
	"dose-response/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	To       domain.Point
	HasMoved bool
	// BlockedBy — живой монстр в клетке назначения (для атаки или встречи с NPC).
	BlockedBy *domain.Monster
	// BlockedByPlayer — в клетке стоит игрок (для ходов монстров).
	BlockedByPlayer bool
	// IsBlocked — дерево или край мира.
	IsBlocked bool
}

// CalculateMove вычисляет шаг из from в направлении dir. Не меняет состояние мира!
// Клетка назначения может создать новый чанк: это часть детерминированного хода.
func CalculateMove(w *domain.World, from, dir, playerPos domain.Point) MovementResult {
	to := from.Add(dir)
	res := MovementResult{To: to}

	// 1. Край мира
	if !w.IsInBounds(to) {
		res.IsBlocked = true
		return res
	}

	// 2. Деревья
	if !w.TileAt(to).Kind.IsWalkable() {
		res.IsBlocked = true
		return res
	}

	// 3. Игрок и монстры
	if to == playerPos && from != playerPos {
		res.BlockedByPlayer = true
		return res
	}
	if m := w.MonsterAt(to); m != nil {
		res.BlockedBy = m
		return res
	}

	res.HasMoved = true
	return res
}
