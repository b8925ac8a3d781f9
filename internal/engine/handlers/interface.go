package handlers

import (
	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/pkg/rng"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World  *domain.World
	Player *domain.Player
	Rng    *rng.Random

	// Companion — NPC, идущий за игроком. Хендлер может назначить его.
	Companion *types.MonsterID
	// Bonus — бонус компаньона (BonusNone, пока компаньона нет).
	Bonus *enums.CompanionBonus
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи игры напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ITEM, ERROR)

	// Acted — игрок потратил ход: после команды ходят монстры.
	Acted bool
	// Effect — анимация, которую нужно проиграть.
	Effect *domain.Effect
}

// HandlerFunc - это контракт для любой команды игрока.
type HandlerFunc func(ctx Context, cmd domain.Command) (Result, error)

// EmptyResult - вспомогательная функция для пустого ответа
func EmptyResult() Result {
	return Result{}
}

// Типы сообщений лога
const (
	MsgInfo   = "INFO"
	MsgCombat = "COMBAT"
	MsgItem   = "ITEM"
	MsgError  = "ERROR"
)
