package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/internal/core/types"
	"dose-response/internal/domain"
	"dose-response/pkg/logger"
)

// PlayerAttack — игрок врезался во враждебного монстра. Один удар убивает.
func PlayerAttack(w *domain.World, player *domain.Player, target *domain.Monster) error {
	if !target.IsHostile() {
		return fmt.Errorf("attack %v: %s is not hostile", target.ID, target.Kind)
	}
	if err := w.KillMonster(target.ID); err != nil {
		return fmt.Errorf("attack: %w", err)
	}
	player.Kills++

	logger.Log.WithFields(logrus.Fields{
		"component":  "combat_system",
		"monster_id": target.ID,
		"kind":       target.Kind,
		"pos":        target.Pos,
		"kills":      player.Kills,
	}).Debug("Monster killed by player")
	return nil
}

// MonsterAttack — монстр бьёт игрока. Каждый удар отнимает единицу воли.
func MonsterAttack(player *domain.Player, attacker *domain.Monster) {
	willBefore := player.Will
	player.LoseWill(1)

	logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"monster_id":  attacker.ID,
		"kind":        attacker.Kind,
		"will_before": willBefore,
		"will_after":  player.Will,
		"player_dead": player.Dead,
	}).Debug("Player attacked")
}

// Explode убивает враждебных монстров в зоне эффекта. NPC взрыв не задевает.
// Возвращает ID убитых в порядке обхода зоны.
func Explode(w *domain.World, player *domain.Player, e domain.Effect) []types.MonsterID {
	var killed []types.MonsterID
	for _, p := range e.Affected() {
		if !w.IsInBounds(p) {
			continue
		}
		m := w.MonsterAt(p)
		if m == nil || !m.IsHostile() {
			continue
		}
		if err := w.KillMonster(m.ID); err != nil {
			// MonsterAt возвращает только живых, так что это нарушение индекса.
			panic(err)
		}
		player.Kills++
		killed = append(killed, m.ID)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"center":    e.Center,
		"radius":    e.Radius,
		"killed":    len(killed),
	}).Debug("Explosion resolved")
	return killed
}
