package domain

import (
	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
)

type ModifierKind uint8

const (
	// ModifierIntoxication — меняет состояние сознания и толерантность.
	ModifierIntoxication ModifierKind = iota
	// ModifierAttribute — меняет волю и состояние сознания.
	ModifierAttribute
)

// Modifier описывает эффект от использования предмета.
type Modifier struct {
	Kind              ModifierKind `json:"kind"`
	StateOfMind       int          `json:"stateOfMind"`
	ToleranceIncrease int          `json:"toleranceIncrease,omitempty"`
	Will              int          `json:"will,omitempty"`
}

// Item — предмет на земле или в инвентаре.
type Item struct {
	Kind     enums.ItemKind `json:"kind"`
	Glyph    types.Glyph    `json:"glyph"`
	Modifier Modifier       `json:"modifier"`
	// Irresistible — радиус, в котором игрок не может пройти мимо дозы.
	Irresistible int `json:"irresistible"`
}

// ItemSlot — предмет, лежащий в конкретной клетке.
type ItemSlot struct {
	Pos  Point `json:"pos"`
	Item Item  `json:"item"`
}
