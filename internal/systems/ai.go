package systems

import (
	"github.com/sirupsen/logrus"

	"dose-response/internal/core/types"
	"dose-response/internal/domain"
	"dose-response/pkg/logger"
	"dose-response/pkg/rng"
)

// ActionType — решение монстра на ход.
type ActionType uint8

const (
	ActionWait ActionType = iota
	ActionMove
	ActionAttack
)

var actionNames = map[ActionType]string{
	ActionWait:   "wait",
	ActionMove:   "move",
	ActionAttack: "attack",
}

func (a ActionType) String() string {
	return actionNames[a]
}

// Decision — что монстр собирается сделать и куда.
type Decision struct {
	Action ActionType
	To     domain.Point
}

// ComputeMonsterAction решает, что делать монстру.
//
// Враждебный монстр в радиусе агрессии, видящий игрока, идёт к нему и атакует вплотную.
// Компаньон следует за игроком. Остальные бродят: ровно одно вытягивание из r на ход,
// чтобы число вытягиваний не зависело от исхода шага.
func ComputeMonsterAction(w *domain.World, m *domain.Monster, player *domain.Player, companion types.MonsterID, r *rng.Random) Decision {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "ai_system",
		"monster_id": m.ID,
		"kind":       m.Kind,
		"pos":        m.Pos,
	})

	if !m.IsAlive() {
		return Decision{Action: ActionWait}
	}

	dist := m.Pos.ChebyshevTo(player.Pos)

	if m.ID == companion {
		if dist <= 1 {
			return Decision{Action: ActionWait}
		}
		return moveOrWait(w, m, player.Pos, calculateSmartMove(w, m.Pos, player.Pos))
	}

	if m.IsHostile() && player.IsAlive() && dist <= domain.AggroRadius && HasLineOfSight(w, m.Pos, player.Pos) {
		if dist <= 1 {
			aiLogger.Trace("Target in attack range")
			return Decision{Action: ActionAttack, To: player.Pos}
		}
		step := calculateSmartMove(w, m.Pos, player.Pos)
		aiLogger.WithField("step", step).Trace("Pursuing player")
		return moveOrWait(w, m, player.Pos, step)
	}

	// Бродяжничество: индекс 8 означает "стоять на месте".
	idx := r.RangeInclusive(0, len(domain.Directions))
	if idx == len(domain.Directions) {
		return Decision{Action: ActionWait}
	}
	return moveOrWait(w, m, player.Pos, domain.Directions[idx])
}

func moveOrWait(w *domain.World, m *domain.Monster, playerPos, step domain.Point) Decision {
	if step == (domain.Point{}) {
		return Decision{Action: ActionWait}
	}
	res := CalculateMove(w, m.Pos, step, playerPos)
	if !res.HasMoved {
		return Decision{Action: ActionWait}
	}
	return Decision{Action: ActionMove, To: res.To}
}

// Внутренние утилиты (приватные для пакета systems)

// calculateSmartMove возвращает шаг к цели. Если прямой путь закрыт, пробует скользить вдоль оси,
// по которой до цели дальше.
func calculateSmartMove(w *domain.World, from, target domain.Point) domain.Point {
	dxRaw := target.X - from.X
	dyRaw := target.Y - from.Y

	stepX := sign(dxRaw)
	stepY := sign(dyRaw)

	// Попытка 1: Идеальный путь
	if checkMove(w, from, domain.Point{X: stepX, Y: stepY}, target) {
		return domain.Point{X: stepX, Y: stepY}
	}

	// Попытка 2: Smart Sliding (выбор приоритетной оси)
	if abs(dxRaw) > abs(dyRaw) {
		if stepX != 0 && checkMove(w, from, domain.Point{X: stepX}, target) {
			return domain.Point{X: stepX}
		}
		if stepY != 0 && checkMove(w, from, domain.Point{Y: stepY}, target) {
			return domain.Point{Y: stepY}
		}
	} else {
		if stepY != 0 && checkMove(w, from, domain.Point{Y: stepY}, target) {
			return domain.Point{Y: stepY}
		}
		if stepX != 0 && checkMove(w, from, domain.Point{X: stepX}, target) {
			return domain.Point{X: stepX}
		}
	}

	return domain.Point{} // Тупик
}

func checkMove(w *domain.World, from, dir, playerPos domain.Point) bool {
	if dir == (domain.Point{}) {
		return false
	}
	return CalculateMove(w, from, dir, playerPos).HasMoved
}
