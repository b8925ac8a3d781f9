package engine

import (
	"github.com/sirupsen/logrus"

	"dose-response/internal/engine/handlers"
	"dose-response/internal/systems"
	"dose-response/pkg/logger"
)

// processMonsterTurns даёт сходить живым монстрам в активной зоне вокруг игрока.
// Порядок — по MonsterID, так что он не зависит от того, где монстры хранятся.
func (g *Game) processMonsterTurns() {
	near := g.World.MonstersNear(g.Player.Pos, g.Config.ActiveRadius)
	for _, m := range near {
		// Монстр мог погибнуть или переместиться за время хода предыдущих.
		m = g.World.Monster(m.ID)
		if !m.IsAlive() {
			continue
		}

		d := systems.ComputeMonsterAction(g.World, m, g.Player, g.Companion, g.Rng)
		switch d.Action {
		case systems.ActionMove:
			if err := g.World.MoveMonster(m.ID, d.To); err != nil {
				// Решение построено по живому монстру, так что это нарушение индекса мира.
				panic(err)
			}
		case systems.ActionAttack:
			systems.MonsterAttack(g.Player, m)
			g.AddLog(m.Kind.String()+" настигает вас.", handlers.MsgCombat)
		}

		if g.Player.Dead {
			logger.Log.WithFields(logrus.Fields{
				"component":  "ai_turn_processor",
				"monster_id": m.ID,
				"turn":       g.Turn,
			}).Debug("Monster turns stopped: player is dead")
			return
		}
	}
}
