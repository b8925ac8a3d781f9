package actions

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/internal/engine/handlers"
	"dose-response/internal/systems"
	"dose-response/pkg/logger"
)

// HandleUse обрабатывает команду использования предмета (дозы, еда)
func HandleUse(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	kind, ok := cmd.UsedItem()
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("use: %s does not use an item", cmd.Kind)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "use_handler",
		"item":      kind,
	})

	willBefore := ctx.Player.Will
	res, err := systems.UseItem(ctx.World, ctx.Player, kind)
	if errors.Is(err, systems.ErrNoItem) {
		log.Debug("Item not found in inventory")
		return handlers.Result{Msg: "Предмет не найден в инвентаре.", MsgType: handlers.MsgError}, nil
	}
	if err != nil {
		return handlers.EmptyResult(), err
	}

	// Спутник с этим бонусом удваивает прирост воли от еды.
	if kind == enums.ItemFood && *ctx.Bonus == enums.BonusDoubleWillGrowth {
		gained := ctx.Player.Will - willBefore
		ctx.Player.Will = min(ctx.Player.Will+gained, ctx.Player.MaxWill)
	}

	log.WithFields(logrus.Fields{
		"mind":      ctx.Player.Mind,
		"tolerance": ctx.Player.Tolerance,
		"killed":    res.Killed,
	}).Debug("Item used")

	msg := fmt.Sprintf("Вы используете %s.", kind)
	if res.Killed > 0 {
		msg += fmt.Sprintf(" Взрыв прогоняет монстров: %d.", res.Killed)
	}
	return handlers.Result{Msg: msg, MsgType: handlers.MsgItem, Acted: true, Effect: res.Effect}, nil
}
