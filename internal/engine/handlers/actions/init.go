package actions

import (
	"dose-response/internal/domain"
	"dose-response/internal/engine/handlers"
)

// Registry сопоставляет команду и её хендлер.
var Registry = map[domain.CommandKind]handlers.HandlerFunc{
	domain.CommandN:               HandleMove,
	domain.CommandNE:              HandleMove,
	domain.CommandE:               HandleMove,
	domain.CommandSE:              HandleMove,
	domain.CommandS:               HandleMove,
	domain.CommandSW:              HandleMove,
	domain.CommandW:               HandleMove,
	domain.CommandNW:              HandleMove,
	domain.CommandUseFood:         HandleUse,
	domain.CommandUseDose:         HandleUse,
	domain.CommandUseCardinalDose: HandleUse,
	domain.CommandUseDiagonalDose: HandleUse,
	domain.CommandUseStrongDose:   HandleUse,
	domain.CommandShowMessageBox:  HandleMessageBox,
}

// HandleMessageBox — запрос интерфейса. На мир не влияет и хода не тратит.
func HandleMessageBox(_ handlers.Context, cmd domain.Command) (handlers.Result, error) {
	return handlers.Result{Msg: cmd.Title + ": " + cmd.Message, MsgType: handlers.MsgInfo}, nil
}
