package domain

import "dose-response/internal/core/types/enums"

// CommandKind — тип команды игрока.
type CommandKind uint8

const (
	CommandN CommandKind = iota
	CommandNE
	CommandE
	CommandSE
	CommandS
	CommandSW
	CommandW
	CommandNW
	CommandUseFood
	CommandUseDose
	CommandUseCardinalDose
	CommandUseDiagonalDose
	CommandUseStrongDose
	// CommandShowMessageBox — запрос к интерфейсу, на мир не влияет.
	CommandShowMessageBox
)

var commandNames = map[CommandKind]string{
	CommandN:               "N",
	CommandNE:              "NE",
	CommandE:               "E",
	CommandSE:              "SE",
	CommandS:               "S",
	CommandSW:              "SW",
	CommandW:               "W",
	CommandNW:              "NW",
	CommandUseFood:         "UseFood",
	CommandUseDose:         "UseDose",
	CommandUseCardinalDose: "UseCardinalDose",
	CommandUseDiagonalDose: "UseDiagonalDose",
	CommandUseStrongDose:   "UseStrongDose",
	CommandShowMessageBox:  "ShowMessageBox",
}

func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Command — решённое намерение игрока.
type Command struct {
	Kind    CommandKind `json:"kind"`
	Title   string      `json:"title,omitempty"`
	Message string      `json:"message,omitempty"`
	TTL     int         `json:"ttl,omitempty"`
}

// MoveCommand возвращает команду шага для направления из Directions.
func MoveCommand(dir Point) (Command, bool) {
	for i, d := range Directions {
		if d == dir {
			return Command{Kind: CommandKind(i)}, true
		}
	}
	return Command{}, false
}

// Direction возвращает смещение для команд движения.
func (c Command) Direction() (Point, bool) {
	if c.Kind > CommandNW {
		return Point{}, false
	}
	return Directions[c.Kind], true
}

// UsedItem возвращает предмет, который расходует команда.
func (c Command) UsedItem() (enums.ItemKind, bool) {
	switch c.Kind {
	case CommandUseFood:
		return enums.ItemFood, true
	case CommandUseDose:
		return enums.ItemDose, true
	case CommandUseCardinalDose:
		return enums.ItemCardinalDose, true
	case CommandUseDiagonalDose:
		return enums.ItemDiagonalDose, true
	case CommandUseStrongDose:
		return enums.ItemStrongDose, true
	}
	return 0, false
}
