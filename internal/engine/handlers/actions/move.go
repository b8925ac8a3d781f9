package actions

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/internal/engine/handlers"
	"dose-response/internal/systems"
	"dose-response/pkg/logger"
)

// HandleMove двигает игрока. Удар по враждебному монстру убивает его,
// встреча с NPC делает его компаньоном.
func HandleMove(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	dir, ok := cmd.Direction()
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("move: %s is not a direction", cmd.Kind)
	}
	p := ctx.Player

	// В ломке доза рядом сильнее воли: игрок идёт к ней, куда бы ни хотел.
	if target, pulled := systems.IrresistibleDose(ctx.World, p); pulled {
		dir = stepTowards(p.Pos, target)
	}

	res := systems.CalculateMove(ctx.World, p.Pos, dir, p.Pos)

	if m := res.BlockedBy; m != nil {
		if m.IsHostile() {
			if err := systems.PlayerAttack(ctx.World, p, m); err != nil {
				return handlers.EmptyResult(), err
			}
			return handlers.Result{Msg: fmt.Sprintf("Вы прогоняете %s.", m.Kind), MsgType: handlers.MsgCombat, Acted: true}, nil
		}
		return meetNPC(ctx, m), nil
	}

	if res.IsBlocked {
		return handlers.Result{Msg: "Путь прегражден.", MsgType: handlers.MsgError}, nil
	}

	p.Pos = res.To
	if it, picked := systems.TryPickup(ctx.World, p); picked {
		return handlers.Result{Msg: fmt.Sprintf("Вы подбираете %s.", it.Kind), MsgType: handlers.MsgItem, Acted: true}, nil
	}
	return handlers.Result{Acted: true}, nil
}

func meetNPC(ctx handlers.Context, m *domain.Monster) handlers.Result {
	if *ctx.Companion == m.ID {
		return handlers.EmptyResult()
	}
	if !ctx.Companion.IsNil() {
		return handlers.Result{Msg: "У вас уже есть спутник.", MsgType: handlers.MsgInfo}
	}

	*ctx.Companion = m.ID
	*ctx.Bonus = m.Bonus
	logger.Log.WithFields(logrus.Fields{
		"component":  "move_handler",
		"monster_id": m.ID,
		"bonus":      m.Bonus,
	}).Info("Companion joined")
	return handlers.Result{Msg: fmt.Sprintf("Спутник присоединяется к вам (%s).", m.Bonus), MsgType: handlers.MsgInfo, Acted: true}
}

func stepTowards(from, to domain.Point) domain.Point {
	return domain.Point{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
