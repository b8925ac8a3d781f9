package engine

import (
	"dose-response/internal/domain"
)

// keyCommands — раскладка: стрелки, цифровой блок и vi-клавиши для движения, 1..5 для предметов.
var keyCommands = map[domain.KeyCode]domain.CommandKind{
	domain.KeyUp:    domain.CommandN,
	domain.KeyDown:  domain.CommandS,
	domain.KeyLeft:  domain.CommandW,
	domain.KeyRight: domain.CommandE,

	domain.KeyNumPad8: domain.CommandN,
	domain.KeyNumPad9: domain.CommandNE,
	domain.KeyNumPad6: domain.CommandE,
	domain.KeyNumPad3: domain.CommandSE,
	domain.KeyNumPad2: domain.CommandS,
	domain.KeyNumPad1: domain.CommandSW,
	domain.KeyNumPad4: domain.CommandW,
	domain.KeyNumPad7: domain.CommandNW,

	domain.KeyK: domain.CommandN,
	domain.KeyU: domain.CommandNE,
	domain.KeyL: domain.CommandE,
	domain.KeyN: domain.CommandSE,
	domain.KeyJ: domain.CommandS,
	domain.KeyB: domain.CommandSW,
	domain.KeyH: domain.CommandW,
	domain.KeyY: domain.CommandNW,

	domain.KeyD1: domain.CommandUseFood,
	domain.KeyD2: domain.CommandUseDose,
	domain.KeyD3: domain.CommandUseCardinalDose,
	domain.KeyD4: domain.CommandUseDiagonalDose,
	domain.KeyD5: domain.CommandUseStrongDose,
}

// DecodeInput превращает сырой ввод тика в команды. Порядок клавиш сохраняется.
// Неизвестные клавиши и клавиши с Ctrl/Alt игнорируются. Левый клик по соседней клетке — шаг туда.
func DecodeInput(in domain.Input, playerPos domain.Point) []domain.Command {
	var cmds []domain.Command
	for _, k := range in.Keys {
		if k.Ctrl || k.Alt {
			continue
		}
		if kind, ok := keyCommands[k.Code]; ok {
			cmds = append(cmds, domain.Command{Kind: kind})
		}
	}

	if in.Mouse.LeftClicked && in.Mouse.TilePos.IsAdjacent(playerPos) {
		if cmd, ok := domain.MoveCommand(in.Mouse.TilePos.Sub(playerPos)); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
